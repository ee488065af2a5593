// Package report runs the enrichment pipeline over a session's uploaded
// tables and assembles filterable report payloads.
package report

import (
	"fmt"
	"time"

	"github.com/spec-kit/case-report-service/internal/aggregate"
	"github.com/spec-kit/case-report-service/internal/classify"
	"github.com/spec-kit/case-report-service/internal/domain"
	"github.com/spec-kit/case-report-service/internal/enrich"
	"github.com/spec-kit/case-report-service/internal/reconcile"
)

// Case export column names.
const (
	ColCaseID   = "Case ID"
	ColUser     = "Current User Id"
	ColNote     = "Last Note"
	ColStart    = "Case Start Date"
	ColNoteDate = "Last Note Date"
	ColTeam     = "Team"
	ColChannel  = "Channel"
)

// Pipeline is the classification, enrichment and reconciliation chain. It is
// pure over its inputs: status tables are read-only and the same tables
// produce the same enriched set for a fixed clock.
type Pipeline struct {
	classifier     *classify.Classifier
	reconciler     *reconcile.Reconciler
	closedStatuses []string
	now            func() time.Time
}

// NewPipeline assembles the chain. A nil clock uses the wall clock.
func NewPipeline(classifier *classify.Classifier, reconciler *reconcile.Reconciler, closedStatuses []string, now func() time.Time) *Pipeline {
	if now == nil {
		now = time.Now
	}
	if len(closedStatuses) == 0 {
		closedStatuses = aggregate.DefaultClosedStatuses
	}
	return &Pipeline{
		classifier:     classifier,
		reconciler:     reconciler,
		closedStatuses: closedStatuses,
		now:            now,
	}
}

// ClosedStatuses exposes the closed-equivalent status set for rollups.
func (p *Pipeline) ClosedStatuses() []string {
	return p.closedStatuses
}

// Enrich runs the full pass: per-row classification, age derivation,
// per-type reconciliation against the optional status tables, and linkage
// counts. Notices describe degraded computations; they never abort the run.
func (p *Pipeline) Enrich(cases *domain.Table, srTable, incidentTable *domain.Table) ([]domain.CaseRecord, []string) {
	var notices []string
	if cases == nil {
		return nil, []string{"no case file uploaded"}
	}
	for _, required := range []string{ColUser, ColNote, ColStart} {
		if !cases.HasColumn(required) {
			notices = append(notices, fmt.Sprintf("case file has no %q column; dependent fields left empty", required))
		}
	}

	now := p.now()
	records := make([]domain.CaseRecord, 0, len(cases.Rows))
	for _, row := range cases.Rows {
		record := domain.CaseRecord{
			CaseID:       row[ColCaseID],
			AssignedUser: row[ColUser],
			Team:         row[ColTeam],
			Channel:      row[ColChannel],
			Note:         row[ColNote],
			StartedAt:    enrich.ParseTime(row[ColStart]),
			NoteAt:       enrich.ParseTime(row[ColNoteDate]),
			Raw:          row,
			Breach:       domain.BreachUnknown,
		}

		result := p.classifier.Classify(record.Note)
		record.Triage = result.Status
		record.TicketNumber = result.TicketNumber
		record.TicketType = result.TicketType

		record.AgeDays = enrich.AgeDays(record.StartedAt, now)
		record.CreatedToday = enrich.CreatedToday(record.StartedAt, now)

		records = append(records, record)
	}

	records, reconNotices := p.reconciler.Reconcile(records, srTable, incidentTable)
	notices = append(notices, reconNotices...)

	records = aggregate.AttachLinkageCounts(records)
	return records, notices
}
