package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/case-report-service/internal/domain"
)

func enrichedFixture(t *testing.T) ([]domain.CaseRecord, []string) {
	t.Helper()
	p := testPipeline()
	records, notices := p.Enrich(caseTable(), nil, nil)
	require.Len(t, records, 4)
	return records, notices
}

func TestAssembleDefaultColumnOrder(t *testing.T) {
	records, notices := enrichedFixture(t)
	report := Assemble(records, caseTable().Columns, Filter{}, notices, time.Now())

	// Originals first in their order, then the enrichment columns.
	assert.Equal(t, ColCaseID, report.Columns[0])
	assert.Equal(t, ColChannel, report.Columns[6])
	assert.Equal(t, ColTriage, report.Columns[7])
	assert.Len(t, report.Rows, 4)

	row := report.Rows[0]
	assert.Equal(t, "C-1", row[ColCaseID])
	assert.Equal(t, "15001", row[ColTicketNumber])
	assert.Equal(t, string(domain.TicketTypeServiceRequest), row[ColType])
	assert.Equal(t, "Yes", row[ColCreatedToday])
	assert.Equal(t, "unknown", row[ColBreach])
	assert.Equal(t, "2", row[ColCaseCount])

	// Untriaged row renders absent values as empty cells.
	last := report.Rows[3]
	assert.Equal(t, "", last[ColTicketNumber])
	assert.Equal(t, "", last[ColType])
	assert.Equal(t, "", last[ColAgeDays])
	assert.Equal(t, "", last[ColCaseCount])
}

func TestAssembleTypeFilterPromotesColumns(t *testing.T) {
	records, notices := enrichedFixture(t)
	srType := domain.TicketTypeServiceRequest
	report := Assemble(records, caseTable().Columns, Filter{TicketType: &srType}, notices, time.Now())

	assert.Equal(t, ColType, report.Columns[0])
	assert.Equal(t, ColTicketNumber, report.Columns[1])
	assert.Equal(t, ColReconStatus, report.Columns[2])
	assert.Equal(t, ColLastUpdate, report.Columns[3])
	// Remaining originals keep their order after the promoted block.
	idx := indexOf(report.Columns, ColCaseID)
	assert.Greater(t, idx, indexOf(report.Columns, ColCaseCount))

	require.Len(t, report.Rows, 2)
	for _, row := range report.Rows {
		assert.Equal(t, string(srType), row[ColType])
	}
}

func indexOf(columns []string, name string) int {
	for i, col := range columns {
		if col == name {
			return i
		}
	}
	return -1
}

func TestAssembleFilters(t *testing.T) {
	records, notices := enrichedFixture(t)

	notTriaged := domain.TriageNotTriaged
	report := Assemble(records, caseTable().Columns, Filter{Triage: &notTriaged}, notices, time.Now())
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "C-4", report.Rows[0][ColCaseID])

	report = Assemble(records, caseTable().Columns, Filter{User: "U2"}, notices, time.Now())
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "C-2", report.Rows[0][ColCaseID])

	report = Assemble(records, caseTable().Columns, Filter{Status: "pending_reference"}, notices, time.Now())
	require.Len(t, report.Rows, 3)
}

func TestWriteCSV(t *testing.T) {
	records, notices := enrichedFixture(t)
	report := Assemble(records, caseTable().Columns, Filter{}, notices, time.Now())

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, report))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5) // header + 4 rows
	assert.Equal(t, strings.Join(report.Columns, ","), lines[0])
	assert.Contains(t, lines[1], "C-1")
}
