package enrich

import (
	"strings"
	"time"
)

// timeLayouts covers the timestamp shapes seen in case and status exports.
// Order matters: layouts with a time component come before date-only ones.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
}

// ParseTime interprets a table cell as a timestamp. An empty or unparseable
// cell yields nil; per-row date problems never abort a batch.
func ParseTime(cell string) *time.Time {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, cell); err == nil {
			return &ts
		}
	}
	return nil
}
