// Package reconcile joins classified case records against independently
// sourced status tables and copies status fields onto matching cases, gated
// strictly by ticket type.
package reconcile

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/spec-kit/case-report-service/internal/domain"
	"github.com/spec-kit/case-report-service/internal/enrich"
)

// Options names the columns each source table is expected to carry. Incident
// exports do not agree on an identifier or last-update column name, so those
// resolve through ordered alias lists — data, not code, so a new source
// format is a config change.
type Options struct {
	SRIDColumn      string
	SRStatusColumn  string
	SRUpdatedColumn string
	SRBreachColumn  string
	SROwnerColumn   string

	IncidentIDColumns      []string
	IncidentStatusColumn   string
	IncidentUpdatedColumns []string
	IncidentBreachColumn   string
}

// DefaultOptions matches the column shapes of the known tracker exports.
func DefaultOptions() Options {
	return Options{
		SRIDColumn:      "Service Request",
		SRStatusColumn:  "Status",
		SRUpdatedColumn: "LastModDateTime",
		SRBreachColumn:  "Breach Passed",
		SROwnerColumn:   "Approval Pending with",

		IncidentIDColumns:      []string{"Incident ID", "Incident", "Number", "Ref"},
		IncidentStatusColumn:   "Status",
		IncidentUpdatedColumns: []string{"LastModDateTime", "Last Update", "Updated On", "Modified Date"},
		IncidentBreachColumn:   "Breach Passed",
	}
}

// Reconciler performs per-type left joins of cases against status tables.
type Reconciler struct {
	opts Options
}

// New builds a reconciler.
func New(opts Options) *Reconciler {
	return &Reconciler{opts: opts}
}

// delta holds the reconciled fields one source pass owns for one case. Each
// pass produces deltas immutably and they are applied once, keyed by ticket
// type, so adding a third source cannot introduce order-dependent writes.
type delta struct {
	status      *string
	lastUpdate  *time.Time
	breach      domain.BreachState
	pendingWith *string
}

var digitRun = regexp.MustCompile(`\d{4,}`)

// Reconcile enriches the case set from the optional status tables and
// returns the enriched copy plus user-visible notices for degraded
// computations. Either table may be nil; that half is skipped, which is not
// an error. The input slice is not mutated.
func (r *Reconciler) Reconcile(cases []domain.CaseRecord, srTable, incidentTable *domain.Table) ([]domain.CaseRecord, []string) {
	out := make([]domain.CaseRecord, len(cases))
	copy(out, cases)
	for i := range out {
		if out[i].Breach == "" {
			out[i].Breach = domain.BreachUnknown
		}
	}

	var notices []string
	if srTable != nil {
		notices = append(notices, r.applyServiceRequests(out, srTable)...)
	}
	if incidentTable != nil {
		notices = append(notices, r.applyIncidents(out, incidentTable)...)
	}
	return out, notices
}

func (r *Reconciler) applyServiceRequests(cases []domain.CaseRecord, table *domain.Table) []string {
	var notices []string
	if !table.HasColumn(r.opts.SRIDColumn) {
		return []string{fmt.Sprintf("service-request table has no %q column; service-request reconciliation skipped", r.opts.SRIDColumn)}
	}

	hasStatus := table.HasColumn(r.opts.SRStatusColumn)
	hasUpdated := table.HasColumn(r.opts.SRUpdatedColumn)
	hasBreach := table.HasColumn(r.opts.SRBreachColumn)
	hasOwner := table.HasColumn(r.opts.SROwnerColumn)
	if !hasBreach {
		notices = append(notices, fmt.Sprintf("service-request table has no %q column; breach flag left unknown", r.opts.SRBreachColumn))
	}

	index := indexByIdentifier(table, r.opts.SRIDColumn)
	deltas := make(map[int]delta)
	for i := range cases {
		if cases[i].TicketType == nil || *cases[i].TicketType != domain.TicketTypeServiceRequest {
			continue
		}
		if cases[i].TicketNumber == nil {
			continue
		}
		row, ok := index[*cases[i].TicketNumber]
		if !ok {
			continue
		}
		d := delta{breach: domain.BreachUnknown}
		if hasStatus {
			status := row[r.opts.SRStatusColumn]
			d.status = &status
		}
		if hasUpdated {
			d.lastUpdate = enrich.ParseTime(row[r.opts.SRUpdatedColumn])
		}
		if hasBreach {
			d.breach = NormalizeServiceRequestBreach(row[r.opts.SRBreachColumn])
		}
		if hasOwner {
			d.pendingWith = NormalizePendingOwner(row[r.opts.SROwnerColumn])
		}
		deltas[i] = d
	}

	applyDeltas(cases, deltas, domain.TicketTypeServiceRequest)
	return notices
}

func (r *Reconciler) applyIncidents(cases []domain.CaseRecord, table *domain.Table) []string {
	var notices []string
	idColumn, ok := table.FirstColumn(r.opts.IncidentIDColumns)
	if !ok {
		return []string{"incident table has no recognized identifier column; incident reconciliation skipped"}
	}
	updatedColumn, hasUpdated := table.FirstColumn(r.opts.IncidentUpdatedColumns)
	hasStatus := table.HasColumn(r.opts.IncidentStatusColumn)
	hasBreach := table.HasColumn(r.opts.IncidentBreachColumn)
	if !hasBreach {
		notices = append(notices, fmt.Sprintf("incident table has no %q column; breach flag left unknown", r.opts.IncidentBreachColumn))
	}

	index := indexByIdentifier(table, idColumn)
	deltas := make(map[int]delta)
	for i := range cases {
		if cases[i].TicketType == nil || *cases[i].TicketType != domain.TicketTypeIncident {
			continue
		}
		if cases[i].TicketNumber == nil {
			continue
		}
		row, ok := index[*cases[i].TicketNumber]
		if !ok {
			continue
		}
		d := delta{breach: domain.BreachUnknown}
		if hasStatus {
			status := row[r.opts.IncidentStatusColumn]
			d.status = &status
		}
		if hasUpdated {
			d.lastUpdate = enrich.ParseTime(row[updatedColumn])
		}
		if hasBreach {
			d.breach = NormalizeIncidentBreach(row[r.opts.IncidentBreachColumn])
		}
		deltas[i] = d
	}

	applyDeltas(cases, deltas, domain.TicketTypeIncident)
	return notices
}

// indexByIdentifier maps the first 4+ digit run of each row's identifier
// cell to the row. Rows whose cell carries no such run cannot match any case
// and are dropped from the join silently. Later rows with a duplicate
// identifier win, matching last-write semantics.
func indexByIdentifier(table *domain.Table, column string) map[int]domain.Row {
	index := make(map[int]domain.Row, len(table.Rows))
	for _, row := range table.Rows {
		run := digitRun.FindString(row[column])
		if run == "" {
			continue
		}
		id, err := strconv.Atoi(run)
		if err != nil {
			continue
		}
		index[id] = row
	}
	return index
}

// applyDeltas writes one pass's fields onto its own type's cases only. A
// record is never touched by the pass of the other type, for any input
// combination including identifiers present in both tables.
func applyDeltas(cases []domain.CaseRecord, deltas map[int]delta, ticketType domain.TicketType) {
	for i, d := range deltas {
		if cases[i].TicketType == nil || *cases[i].TicketType != ticketType {
			continue
		}
		cases[i].ReconStatus = d.status
		cases[i].LastUpdate = d.lastUpdate
		cases[i].Breach = d.breach
		cases[i].PendingWith = d.pendingWith
	}
}
