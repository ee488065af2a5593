package dto

import (
	"time"

	"github.com/spec-kit/case-report-service/internal/aggregate"
	"github.com/spec-kit/case-report-service/internal/domain"
)

// SessionResponse returns the identifier of a report session.
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// UploadResponse confirms a stored table.
type UploadResponse struct {
	SessionID string     `json:"session_id"`
	Kind      string     `json:"kind"`
	FileName  string     `json:"file_name"`
	RowCount  int        `json:"row_count"`
	Label     *time.Time `json:"label,omitempty"`
}

// ReportResponse wraps the enriched record set.
type ReportResponse struct {
	Columns     []string     `json:"columns"`
	Rows        []domain.Row `json:"rows"`
	RowCount    int          `json:"row_count"`
	Notices     []string     `json:"notices,omitempty"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// CrossTabResponse renders a labelled counts grid.
type CrossTabResponse struct {
	RowLabels []string `json:"row_labels"`
	ColLabels []string `json:"col_labels"`
	Cells     [][]int  `json:"cells"`
	Notices   []string `json:"notices,omitempty"`
}

// MonthCountsResponse wraps the breached-by-month rollup.
type MonthCountsResponse struct {
	Months  []aggregate.MonthCount `json:"months"`
	Notices []string               `json:"notices,omitempty"`
}

// WeeklyFlowResponse wraps the weekly created/closed series.
type WeeklyFlowResponse struct {
	Points  []aggregate.WeekPoint `json:"points"`
	Notices []string              `json:"notices,omitempty"`
}
