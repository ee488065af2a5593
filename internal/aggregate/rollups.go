package aggregate

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spec-kit/case-report-service/internal/domain"
)

// DefaultClosedStatuses are the statuses treated as closed-equivalent when a
// rollup needs to separate open work from finished work.
var DefaultClosedStatuses = []string{"closed", "resolved", "cancelled", "completed"}

func isClosedStatus(status string, closedStatuses []string) bool {
	status = strings.ToLower(strings.TrimSpace(status))
	for _, closed := range closedStatuses {
		if status == strings.ToLower(closed) {
			return true
		}
	}
	return false
}

// DailyBacklog cross-tabulates source channel against status for the cases
// created on the target date. Returns an empty table when nothing matches or
// the upload carried no channel information.
func DailyBacklog(cases []domain.CaseRecord, date time.Time) *CrossTab {
	y, m, d := date.Date()
	var pairs [][2]string
	for i := range cases {
		if cases[i].StartedAt == nil || cases[i].Channel == "" {
			continue
		}
		sy, sm, sd := cases[i].StartedAt.Date()
		if sy != y || sm != m || sd != d {
			continue
		}
		pairs = append(pairs, [2]string{cases[i].Channel, cases[i].EffectiveStatus()})
	}
	return buildCrossTab(pairs)
}

// MonthCount is one row of the breached-incidents-by-month rollup.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// BreachedIncidentsByMonth counts still-open incident cases whose breach
// flag resolved to true, grouped by the year-month of the breach date (the
// reconciled last update). Qualifying rows get a trailing Total row; an
// empty result stays empty, with no Total row.
func BreachedIncidentsByMonth(cases []domain.CaseRecord, closedStatuses []string) []MonthCount {
	counts := make(map[string]int)
	for i := range cases {
		if cases[i].Breach != domain.BreachTrue {
			continue
		}
		if cases[i].TicketType == nil || *cases[i].TicketType != domain.TicketTypeIncident {
			continue
		}
		if cases[i].ReconStatus != nil && isClosedStatus(*cases[i].ReconStatus, closedStatuses) {
			continue
		}
		if cases[i].LastUpdate == nil {
			continue
		}
		counts[cases[i].LastUpdate.Format("2006-01")]++
	}
	if len(counts) == 0 {
		return []MonthCount{}
	}

	months := make([]string, 0, len(counts))
	for month := range counts {
		months = append(months, month)
	}
	sort.Strings(months)

	out := make([]MonthCount, 0, len(months)+1)
	grand := 0
	for _, month := range months {
		out = append(out, MonthCount{Month: month, Count: counts[month]})
		grand += counts[month]
	}
	return append(out, MonthCount{Month: TotalLabel, Count: grand})
}

// TeamStatusSummary cross-tabulates team against status with totals. Cases
// without a team are excluded; an upload with no team column produces an
// empty table.
func TeamStatusSummary(cases []domain.CaseRecord) *CrossTab {
	var pairs [][2]string
	for i := range cases {
		if cases[i].Team == "" {
			continue
		}
		pairs = append(pairs, [2]string{cases[i].Team, cases[i].EffectiveStatus()})
	}
	return buildCrossTab(pairs)
}

// WeekPoint is one row of the weekly created/closed series.
type WeekPoint struct {
	Key      string `json:"week"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
	Category string `json:"category"`
}

// Series categories for WeeklyFlow.
const (
	CategoryCreated = "Created"
	CategoryClosed  = "Closed"
)

// WeeklyFlow buckets case creation by ISO year-week under "Created", and
// last-update timestamps of closed-equivalent cases under "Closed",
// producing a long-form series ordered by week then category.
func WeeklyFlow(cases []domain.CaseRecord, closedStatuses []string) []WeekPoint {
	created := make(map[string]int)
	closed := make(map[string]int)
	for i := range cases {
		if cases[i].StartedAt != nil {
			created[isoWeekKey(*cases[i].StartedAt)]++
		}
		if cases[i].LastUpdate != nil && cases[i].ReconStatus != nil &&
			isClosedStatus(*cases[i].ReconStatus, closedStatuses) {
			closed[isoWeekKey(*cases[i].LastUpdate)]++
		}
	}

	out := make([]WeekPoint, 0, len(created)+len(closed))
	for week, n := range created {
		out = append(out, WeekPoint{Key: week, Label: weekLabel(week), Count: n, Category: CategoryCreated})
	}
	for week, n := range closed {
		out = append(out, WeekPoint{Key: week, Label: weekLabel(week), Count: n, Category: CategoryClosed})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		// Created sorts before Closed within a week.
		return out[i].Category > out[j].Category
	})
	return out
}

func isoWeekKey(ts time.Time) string {
	year, week := ts.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func weekLabel(key string) string {
	var year, week int
	if _, err := fmt.Sscanf(key, "%d-W%d", &year, &week); err != nil {
		return key
	}
	return fmt.Sprintf("Week %02d, %d", week, year)
}
