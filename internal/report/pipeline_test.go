package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/case-report-service/internal/classify"
	"github.com/spec-kit/case-report-service/internal/domain"
	"github.com/spec-kit/case-report-service/internal/reconcile"
)

func fixedClock() time.Time {
	return time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
}

func testPipeline() *Pipeline {
	return NewPipeline(
		classify.New(classify.DefaultOptions()),
		reconcile.New(reconcile.DefaultOptions()),
		nil,
		fixedClock,
	)
}

func caseTable() *domain.Table {
	return &domain.Table{
		Columns: []string{ColCaseID, ColUser, ColNote, ColStart, ColNoteDate, ColTeam, ColChannel},
		Rows: []domain.Row{
			{ColCaseID: "C-1", ColUser: "u1", ColNote: "SR 15001 raised", ColStart: "2024-05-20 09:00:00", ColNoteDate: "2024-05-20 09:30:00", ColTeam: "Pensions", ColChannel: "Portal"},
			{ColCaseID: "C-2", ColUser: "u2", ColNote: "follow up on SR 15001", ColStart: "2024-05-10 09:00:00", ColTeam: "Pensions", ColChannel: "Phone"},
			{ColCaseID: "C-3", ColUser: "u3", ColNote: "inc 20345 outage", ColStart: "2024-05-18 09:00:00", ColTeam: "Claims", ColChannel: "Portal"},
			{ColCaseID: "C-4", ColUser: "u4", ColNote: "general question", ColStart: "bad date", ColTeam: "Claims", ColChannel: "Phone"},
		},
	}
}

func TestEnrichFullPass(t *testing.T) {
	p := testPipeline()
	sr := &domain.Table{
		Columns: []string{"Service Request", "Status", "LastModDateTime", "Breach Passed", "Approval Pending with"},
		Rows: []domain.Row{
			{"Service Request": "SR15001", "Status": "In Progress", "LastModDateTime": "2024-05-19 08:00:00", "Breach Passed": "Yes", "Approval Pending with": "ali.babiker@gpssa.gov.ae"},
		},
	}
	incident := &domain.Table{
		Columns: []string{"Incident ID", "Status", "Last Update", "Breach Passed"},
		Rows: []domain.Row{
			{"Incident ID": "20345", "Status": "Assigned", "Last Update": "2024-05-17 08:00:00", "Breach Passed": "breached"},
		},
	}

	records, notices := p.Enrich(caseTable(), sr, incident)
	require.Len(t, records, 4)
	assert.Empty(t, notices)

	// C-1: classified, reconciled from SR source, created today, linked twice.
	c1 := records[0]
	assert.Equal(t, domain.TriagePendingReference, c1.Triage)
	require.NotNil(t, c1.TicketNumber)
	assert.Equal(t, 15001, *c1.TicketNumber)
	require.NotNil(t, c1.TicketType)
	assert.Equal(t, domain.TicketTypeServiceRequest, *c1.TicketType)
	require.NotNil(t, c1.ReconStatus)
	assert.Equal(t, "In Progress", *c1.ReconStatus)
	assert.Equal(t, domain.BreachTrue, c1.Breach)
	require.NotNil(t, c1.PendingWith)
	assert.Equal(t, "ali babiker", *c1.PendingWith)
	assert.True(t, c1.CreatedToday)
	require.NotNil(t, c1.AgeDays)
	assert.Equal(t, 0, *c1.AgeDays)
	require.NotNil(t, c1.CaseCount)
	assert.Equal(t, 2, *c1.CaseCount)

	// C-2 references the same ticket: same linkage count, own age.
	c2 := records[1]
	require.NotNil(t, c2.CaseCount)
	assert.Equal(t, 2, *c2.CaseCount)
	require.NotNil(t, c2.AgeDays)
	assert.Equal(t, 10, *c2.AgeDays)
	assert.False(t, c2.CreatedToday)

	// C-3: incident, reconciled from incident source.
	c3 := records[2]
	require.NotNil(t, c3.TicketType)
	assert.Equal(t, domain.TicketTypeIncident, *c3.TicketType)
	require.NotNil(t, c3.ReconStatus)
	assert.Equal(t, "Assigned", *c3.ReconStatus)
	assert.Equal(t, domain.BreachTrue, c3.Breach)

	// C-4: no reference, bad date; row survives with absent derived values.
	c4 := records[3]
	assert.Equal(t, domain.TriageNotTriaged, c4.Triage)
	assert.Nil(t, c4.TicketNumber)
	assert.Nil(t, c4.TicketType)
	assert.Nil(t, c4.AgeDays)
	assert.Nil(t, c4.CaseCount)
	assert.Equal(t, domain.BreachUnknown, c4.Breach)
}

func TestEnrichMissingRequiredColumn(t *testing.T) {
	p := testPipeline()
	table := &domain.Table{
		Columns: []string{ColUser, ColStart},
		Rows:    []domain.Row{{ColUser: "u1", ColStart: "2024-05-01"}},
	}

	records, notices := p.Enrich(table, nil, nil)
	require.Len(t, records, 1)
	assert.Equal(t, domain.TriageNotTriaged, records[0].Triage)
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0], ColNote)
}

func TestEnrichNilCaseTable(t *testing.T) {
	p := testPipeline()
	records, notices := p.Enrich(nil, nil, nil)
	assert.Nil(t, records)
	assert.NotEmpty(t, notices)
}
