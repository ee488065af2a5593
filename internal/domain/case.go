package domain

import "time"

// TriageStatus tells whether a case note yielded an actionable reference.
type TriageStatus string

const (
	TriageNotTriaged       TriageStatus = "NOT_TRIAGED"
	TriagePendingReference TriageStatus = "PENDING_REFERENCE"
	// TriageRegexError flags a misconfigured classification pattern. It is
	// deliberately distinct from NOT_TRIAGED: callers must be able to tell
	// "nothing to triage" apart from "triage is broken".
	TriageRegexError TriageStatus = "REGEX_ERROR"
)

// TicketType classifies an extracted reference by its numeric range.
type TicketType string

const (
	TicketTypeServiceRequest TicketType = "SERVICE_REQUEST"
	TicketTypeIncident       TicketType = "INCIDENT"
)

// BreachState is the tri-state breach-passed flag. The string values double
// as the normalization vocabulary, so re-normalizing a state is a no-op.
type BreachState string

const (
	BreachTrue    BreachState = "true"
	BreachFalse   BreachState = "false"
	BreachUnknown BreachState = "unknown"
)

// CaseRecord is one row of an uploaded case export plus the derived fields
// the enrichment pipeline attaches. Invariant: TicketNumber and TicketType
// are both set or both nil. Raw keeps the original cells so columns the
// pipeline does not model survive into the report.
type CaseRecord struct {
	CaseID       string
	AssignedUser string
	Team         string
	Channel      string
	Note         string
	StartedAt    *time.Time
	NoteAt       *time.Time
	Raw          Row

	// Populated by the classifier.
	Triage       TriageStatus
	TicketNumber *int
	TicketType   *TicketType

	// Populated by the age calculator.
	AgeDays      *int
	CreatedToday bool

	// Populated by the reconciler, gated by TicketType.
	ReconStatus *string
	LastUpdate  *time.Time
	Breach      BreachState
	PendingWith *string

	// Populated by the linkage engine; nil when TicketNumber is nil.
	CaseCount *int
}

// EffectiveStatus is the status used for cross-tabulations: the reconciled
// status when a source table supplied one, otherwise the triage label.
func (c *CaseRecord) EffectiveStatus() string {
	if c.ReconStatus != nil && *c.ReconStatus != "" {
		return *c.ReconStatus
	}
	return string(c.Triage)
}

// ReportRun is the audit record persisted for every generated report.
type ReportRun struct {
	ID          string
	SessionID   string
	GeneratedBy string
	CaseRows    int
	NoticeCount int
	CreatedAt   time.Time
}
