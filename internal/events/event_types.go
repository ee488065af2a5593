package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUploadReceived  EventType = "upload_received"
	EventReportGenerated EventType = "report_generated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id"`
	StaffID   string      `json:"staff_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UploadReceivedPayload payload.
type UploadReceivedPayload struct {
	Kind     string `json:"kind"`
	FileName string `json:"file_name"`
	RowCount int    `json:"row_count"`
}

// ReportGeneratedPayload payload.
type ReportGeneratedPayload struct {
	CaseRows    int `json:"case_rows"`
	NoticeCount int `json:"notice_count"`
}
