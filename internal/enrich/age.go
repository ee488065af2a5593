// Package enrich derives elapsed-time metrics for case records.
package enrich

import "time"

// AgeDays returns the whole days elapsed between the case-start timestamp
// and now, or nil when the start is absent. Negative spans clamp to zero so
// a clock-skewed export cannot produce a negative age.
func AgeDays(start *time.Time, now time.Time) *int {
	if start == nil {
		return nil
	}
	days := int(now.Sub(*start).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}

// CreatedToday reports whether the case-start timestamp falls on the same
// calendar day as now.
func CreatedToday(start *time.Time, now time.Time) bool {
	if start == nil {
		return false
	}
	sy, sm, sd := start.Date()
	ny, nm, nd := now.Date()
	return sy == ny && sm == nm && sd == nd
}
