package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/case-report-service/internal/domain"
)

func caseWithTicket(number int, ticketType domain.TicketType) domain.CaseRecord {
	return domain.CaseRecord{
		Triage:       domain.TriagePendingReference,
		TicketNumber: &number,
		TicketType:   &ticketType,
	}
}

func srTable(rows ...domain.Row) *domain.Table {
	return &domain.Table{
		Columns: []string{"Service Request", "Status", "LastModDateTime", "Breach Passed", "Approval Pending with"},
		Rows:    rows,
	}
}

func TestReconcileServiceRequests(t *testing.T) {
	r := New(DefaultOptions())
	cases := []domain.CaseRecord{
		caseWithTicket(14001, domain.TicketTypeServiceRequest),
		caseWithTicket(14002, domain.TicketTypeServiceRequest),
	}
	table := srTable(
		domain.Row{"Service Request": "SR-14001", "Status": "In Progress", "LastModDateTime": "2024-05-18 09:00:00", "Breach Passed": "Yes", "Approval Pending with": "ali.babiker@gpssa.gov.ae"},
		domain.Row{"Service Request": "SR-14002", "Status": "Closed", "LastModDateTime": "2024-05-19 10:30:00", "Breach Passed": "no", "Approval Pending with": ""},
	)

	out, notices := r.Reconcile(cases, table, nil)
	require.Len(t, out, 2)
	assert.Empty(t, notices)

	require.NotNil(t, out[0].ReconStatus)
	assert.Equal(t, "In Progress", *out[0].ReconStatus)
	assert.Equal(t, domain.BreachTrue, out[0].Breach)
	require.NotNil(t, out[0].PendingWith)
	assert.Equal(t, "ali babiker", *out[0].PendingWith)
	require.NotNil(t, out[0].LastUpdate)
	assert.Equal(t, time.Date(2024, 5, 18, 9, 0, 0, 0, time.UTC), *out[0].LastUpdate)

	assert.Equal(t, domain.BreachFalse, out[1].Breach)
	assert.Nil(t, out[1].PendingWith)
}

func TestReconcileMissingBreachColumn(t *testing.T) {
	r := New(DefaultOptions())
	cases := []domain.CaseRecord{caseWithTicket(14001, domain.TicketTypeServiceRequest)}
	table := &domain.Table{
		Columns: []string{"Service Request", "Status"},
		Rows:    []domain.Row{{"Service Request": "14001", "Status": "Open"}},
	}

	out, notices := r.Reconcile(cases, table, nil)
	assert.Equal(t, domain.BreachUnknown, out[0].Breach)
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0], "Breach Passed")
}

func TestReconcileMissingIDColumnSkipsPass(t *testing.T) {
	r := New(DefaultOptions())
	cases := []domain.CaseRecord{caseWithTicket(14001, domain.TicketTypeServiceRequest)}
	table := &domain.Table{
		Columns: []string{"Request", "Status"},
		Rows:    []domain.Row{{"Request": "14001", "Status": "Open"}},
	}

	out, notices := r.Reconcile(cases, table, nil)
	assert.Nil(t, out[0].ReconStatus)
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0], "skipped")
}

func TestReconcileTypeGating(t *testing.T) {
	r := New(DefaultOptions())
	// Same identifier appears in both tables with conflicting breach values;
	// the record's type decides which source wins, not arrival order.
	cases := []domain.CaseRecord{
		caseWithTicket(15500, domain.TicketTypeServiceRequest),
		caseWithTicket(15500, domain.TicketTypeIncident),
	}
	sr := srTable(domain.Row{"Service Request": "15500", "Status": "SR Open", "Breach Passed": "yes"})
	incident := &domain.Table{
		Columns: []string{"Incident ID", "Status", "Breach Passed"},
		Rows:    []domain.Row{{"Incident ID": "INC15500", "Status": "Inc Open", "Breach Passed": "not breached"}},
	}

	out, _ := r.Reconcile(cases, sr, incident)
	require.NotNil(t, out[0].ReconStatus)
	assert.Equal(t, "SR Open", *out[0].ReconStatus)
	assert.Equal(t, domain.BreachTrue, out[0].Breach)

	require.NotNil(t, out[1].ReconStatus)
	assert.Equal(t, "Inc Open", *out[1].ReconStatus)
	assert.Equal(t, domain.BreachFalse, out[1].Breach)
}

func TestReconcileIncidentColumnProbing(t *testing.T) {
	r := New(DefaultOptions())
	cases := []domain.CaseRecord{caseWithTicket(20345, domain.TicketTypeIncident)}
	// Identifier arrives under the second alias, last update under "Updated On".
	table := &domain.Table{
		Columns: []string{"Incident", "Status", "Updated On"},
		Rows:    []domain.Row{{"Incident": "ref 20345", "Status": "Assigned", "Updated On": "2024-04-01"}},
	}

	out, _ := r.Reconcile(cases, nil, table)
	require.NotNil(t, out[0].ReconStatus)
	assert.Equal(t, "Assigned", *out[0].ReconStatus)
	require.NotNil(t, out[0].LastUpdate)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), *out[0].LastUpdate)
}

func TestReconcileUnparseableIdentifierDropped(t *testing.T) {
	r := New(DefaultOptions())
	cases := []domain.CaseRecord{caseWithTicket(14001, domain.TicketTypeServiceRequest)}
	table := srTable(
		domain.Row{"Service Request": "no number here", "Status": "Ghost"},
		domain.Row{"Service Request": "SR 123", "Status": "Too Short"},
	)

	out, _ := r.Reconcile(cases, table, nil)
	assert.Nil(t, out[0].ReconStatus)
}

func TestReconcileUntypedCasesUntouched(t *testing.T) {
	r := New(DefaultOptions())
	cases := []domain.CaseRecord{{Triage: domain.TriageNotTriaged}}
	table := srTable(domain.Row{"Service Request": "14001", "Status": "Open"})

	out, _ := r.Reconcile(cases, table, nil)
	assert.Nil(t, out[0].ReconStatus)
	assert.Equal(t, domain.BreachUnknown, out[0].Breach)
}

func TestReconcileBothTablesAbsent(t *testing.T) {
	r := New(DefaultOptions())
	cases := []domain.CaseRecord{caseWithTicket(14001, domain.TicketTypeServiceRequest)}

	out, notices := r.Reconcile(cases, nil, nil)
	require.Len(t, out, 1)
	assert.Empty(t, notices)
	assert.Equal(t, domain.BreachUnknown, out[0].Breach)
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	r := New(DefaultOptions())
	cases := []domain.CaseRecord{caseWithTicket(14001, domain.TicketTypeServiceRequest)}
	table := srTable(domain.Row{"Service Request": "14001", "Status": "Open", "Breach Passed": "yes"})

	_, _ = r.Reconcile(cases, table, nil)
	assert.Nil(t, cases[0].ReconStatus)
}
