package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/case-report-service/internal/domain"
)

// Enrichment column names on the report payload.
const (
	ColTriage       = "Triage Status"
	ColTicketNumber = "Ticket Number"
	ColType         = "Type"
	ColAgeDays      = "Age (Days)"
	ColCreatedToday = "Created Today"
	ColReconStatus  = "Status"
	ColLastUpdate   = "Last Update"
	ColBreach       = "Breach Passed"
	ColPendingWith  = "Pending With"
	ColCaseCount    = "Case Count"
)

// addedColumns in their default trailing order.
var addedColumns = []string{
	ColTriage, ColTicketNumber, ColType, ColAgeDays, ColCreatedToday,
	ColReconStatus, ColLastUpdate, ColBreach, ColPendingWith, ColCaseCount,
}

// promotedColumns lead the report when a type filter narrows to one ticket
// type: identifier and type first, then the reconciled fields.
var promotedColumns = []string{
	ColType, ColTicketNumber,
	ColReconStatus, ColLastUpdate, ColBreach, ColPendingWith, ColCaseCount,
}

// Filter selects report rows by enriched field values. Nil/empty members
// match everything.
type Filter struct {
	TicketType *domain.TicketType
	Triage     *domain.TriageStatus
	Status     string
	User       string
}

func (f Filter) matches(record *domain.CaseRecord) bool {
	if f.TicketType != nil {
		if record.TicketType == nil || *record.TicketType != *f.TicketType {
			return false
		}
	}
	if f.Triage != nil && record.Triage != *f.Triage {
		return false
	}
	if f.Status != "" && !strings.EqualFold(record.EffectiveStatus(), f.Status) {
		return false
	}
	if f.User != "" && !strings.EqualFold(record.AssignedUser, f.User) {
		return false
	}
	return true
}

// Report is the enriched tabular record set handed to the display layer.
type Report struct {
	Columns     []string     `json:"columns"`
	Rows        []domain.Row `json:"rows"`
	Notices     []string     `json:"notices,omitempty"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// Assemble turns enriched records into a report table, applying the filter
// and the column-ordering convention: a type-narrowed report promotes the
// type/identifier and reconciled columns to the front, with the remaining
// original columns keeping their order.
func Assemble(records []domain.CaseRecord, originalColumns []string, filter Filter, notices []string, generatedAt time.Time) *Report {
	columns := orderColumns(originalColumns, filter.TicketType != nil)

	rows := make([]domain.Row, 0, len(records))
	for i := range records {
		if !filter.matches(&records[i]) {
			continue
		}
		rows = append(rows, displayRow(&records[i], columns))
	}

	return &Report{
		Columns:     columns,
		Rows:        rows,
		Notices:     notices,
		GeneratedAt: generatedAt,
	}
}

func orderColumns(originalColumns []string, typeNarrowed bool) []string {
	added := make(map[string]struct{}, len(addedColumns))
	for _, col := range addedColumns {
		added[col] = struct{}{}
	}

	// Enrichment columns shadow same-named originals.
	originals := make([]string, 0, len(originalColumns))
	for _, col := range originalColumns {
		if _, clash := added[col]; clash {
			continue
		}
		originals = append(originals, col)
	}

	if !typeNarrowed {
		return append(originals, addedColumns...)
	}

	columns := make([]string, 0, len(originals)+len(addedColumns))
	columns = append(columns, promotedColumns...)
	columns = append(columns, originals...)
	promoted := make(map[string]struct{}, len(promotedColumns))
	for _, col := range promotedColumns {
		promoted[col] = struct{}{}
	}
	for _, col := range addedColumns {
		if _, ok := promoted[col]; !ok {
			columns = append(columns, col)
		}
	}
	return columns
}

func displayRow(record *domain.CaseRecord, columns []string) domain.Row {
	row := make(domain.Row, len(columns))
	for _, col := range columns {
		row[col] = displayCell(record, col)
	}
	return row
}

func displayCell(record *domain.CaseRecord, column string) string {
	switch column {
	case ColTriage:
		return string(record.Triage)
	case ColTicketNumber:
		if record.TicketNumber == nil {
			return ""
		}
		return strconv.Itoa(*record.TicketNumber)
	case ColType:
		if record.TicketType == nil {
			return ""
		}
		return string(*record.TicketType)
	case ColAgeDays:
		if record.AgeDays == nil {
			return ""
		}
		return strconv.Itoa(*record.AgeDays)
	case ColCreatedToday:
		if record.CreatedToday {
			return "Yes"
		}
		return "No"
	case ColReconStatus:
		if record.ReconStatus == nil {
			return ""
		}
		return *record.ReconStatus
	case ColLastUpdate:
		if record.LastUpdate == nil {
			return ""
		}
		return record.LastUpdate.Format("2006-01-02 15:04:05")
	case ColBreach:
		return string(record.Breach)
	case ColPendingWith:
		if record.PendingWith == nil {
			return ""
		}
		return *record.PendingWith
	case ColCaseCount:
		if record.CaseCount == nil {
			return ""
		}
		return strconv.Itoa(*record.CaseCount)
	default:
		return record.Raw[column]
	}
}
