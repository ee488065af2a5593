package ingest

import (
	"regexp"
	"time"
)

// Filename timestamp shapes, most specific first. Exports name files like
// "CaseExport 2024-05-12 10-30.csv" or "backlog_20240512-103000.csv".
var filenamePatterns = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}-\d{2}`), "2006-01-02 15-04"},
	{regexp.MustCompile(`\d{8}-\d{6}`), "20060102-150405"},
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}`), "2006-01-02"},
}

// ExtractTimestamp pulls a report-label timestamp out of an uploaded
// filename. It has no interaction with classification or merging; the label
// is purely cosmetic on the report. Returns false when no shape matches.
func ExtractTimestamp(name string) (time.Time, bool) {
	for _, p := range filenamePatterns {
		token := p.re.FindString(name)
		if token == "" {
			continue
		}
		ts, err := time.Parse(p.layout, token)
		if err != nil {
			continue
		}
		return ts, true
	}
	return time.Time{}, false
}
