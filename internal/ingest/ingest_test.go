package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable(t *testing.T) {
	input := strings.Join([]string{
		"Current User Id,Last Note,Case Start Date",
		"u1,SR 15001 raised,2024-05-01 09:00:00",
		"u2,calling back,2024-05-02 10:00:00",
	}, "\n")

	table, err := ReadTable(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"Current User Id", "Last Note", "Case Start Date"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "SR 15001 raised", table.Rows[0]["Last Note"])
	assert.Equal(t, "u2", table.Rows[1]["Current User Id"])
}

func TestReadTableRaggedRows(t *testing.T) {
	input := strings.Join([]string{
		"A,B,C",
		"1,2",       // short row padded
		"1,2,3,4,5", // long row truncated
		",,",        // fully empty row skipped
	}, "\n")

	table, err := ReadTable(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "", table.Rows[0]["C"])
	assert.Equal(t, "3", table.Rows[1]["C"])
}

func TestReadTableNoHeader(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestExtractTimestamp(t *testing.T) {
	ts, ok := ExtractTimestamp("CaseExport 2024-05-12 10-30.csv")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 12, 10, 30, 0, 0, time.UTC), ts)

	ts, ok = ExtractTimestamp("backlog_20240512-103000.csv")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 12, 10, 30, 0, 0, time.UTC), ts)

	ts, ok = ExtractTimestamp("incidents-2024-05-12.csv")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC), ts)

	_, ok = ExtractTimestamp("cases.csv")
	assert.False(t, ok)
}
