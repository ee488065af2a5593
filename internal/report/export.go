package report

import (
	"encoding/csv"
	"io"
)

// WriteCSV renders the report as a downloadable CSV with the report's
// column order.
func WriteCSV(w io.Writer, report *Report) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(report.Columns); err != nil {
		return err
	}
	line := make([]string, len(report.Columns))
	for _, row := range report.Rows {
		for i, col := range report.Columns {
			line[i] = row[col]
		}
		if err := writer.Write(line); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
