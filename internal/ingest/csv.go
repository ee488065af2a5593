// Package ingest turns uploaded tabular exports into in-memory tables.
package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/spec-kit/case-report-service/internal/domain"
)

// ErrNoHeader is returned when the upload has no header row.
var ErrNoHeader = errors.New("ingest: table has no header row")

// ReadTable parses a CSV export into a Table. The first row is the header;
// ragged data rows are padded or truncated to the header width so one
// malformed row never aborts the batch. Rows that are entirely empty are
// skipped.
func ReadTable(r io.Reader) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, err
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	table := &domain.Table{Columns: columns}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip unparseable rows; per-row failures are isolated.
			continue
		}
		row := make(domain.Row, len(columns))
		empty := true
		for i, col := range columns {
			val := ""
			if i < len(record) {
				val = strings.TrimSpace(record[i])
			}
			if val != "" {
				empty = false
			}
			row[col] = val
		}
		if empty {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
