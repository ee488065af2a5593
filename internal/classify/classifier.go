package classify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spec-kit/case-report-service/internal/domain"
)

// DefaultKeywords are the reference cues recognized in case notes. Notes
// arrive in English and Arabic, so both scripts are covered; the list is
// configuration, not a constant.
var DefaultKeywords = []string{
	"tkt", "sr", "inc", "ticket", "incident",
	"تذكرة", "حادث", "طلب",
}

const (
	// DefaultWindow is the maximum number of characters (any content,
	// including newlines) between a keyword and its digit run.
	DefaultWindow = 50
	// DefaultMinDigits is the shortest digit run accepted as a reference.
	// Shorter runs are skipped on purpose: a false negative is cheaper than
	// misclassifying a short reference-like number.
	DefaultMinDigits = 4
)

// Range is an inclusive numeric interval.
type Range struct {
	Min int
	Max int
}

// Contains reports whether n falls inside the range, boundaries included.
func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// Options configures a Classifier. Two call sites in this system use
// different service-request ranges, so the range is always explicit.
type Options struct {
	// Keywords are matched case-insensitively against the lowered note.
	Keywords []string
	// Window caps the keyword-to-digits distance in characters.
	Window int
	// MinDigits is the minimum digit-run length.
	MinDigits int
	// Pattern, when set, overrides the generated expression entirely. An
	// invalid pattern surfaces as TriageRegexError on every call.
	Pattern string
	// ServiceRequestRange decides ServiceRequest vs Incident.
	ServiceRequestRange Range
}

// DefaultOptions returns the primary-flow configuration.
func DefaultOptions() Options {
	return Options{
		Keywords:            DefaultKeywords,
		Window:              DefaultWindow,
		MinDigits:           DefaultMinDigits,
		ServiceRequestRange: Range{Min: 15000, Max: 16000},
	}
}

// Result is the outcome of classifying one note. TicketNumber and TicketType
// are both set or both nil.
type Result struct {
	Status       domain.TriageStatus
	TicketNumber *int
	TicketType   *domain.TicketType
}

// Classifier extracts ticket references from free-text notes.
type Classifier struct {
	re      *regexp.Regexp
	srRange Range
	broken  bool
}

// New compiles the classification pattern. A classifier built from an
// invalid pattern is still usable; every Classify call reports
// TriageRegexError so the caller sees misconfiguration instead of silence.
func New(opts Options) *Classifier {
	if len(opts.Keywords) == 0 {
		opts.Keywords = DefaultKeywords
	}
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.MinDigits <= 0 {
		opts.MinDigits = DefaultMinDigits
	}

	pattern := opts.Pattern
	if pattern == "" {
		quoted := make([]string, 0, len(opts.Keywords))
		for _, kw := range opts.Keywords {
			quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(kw)))
		}
		pattern = fmt.Sprintf(`(?s)(?:%s).{0,%d}?(\d{%d,})`,
			strings.Join(quoted, "|"), opts.Window, opts.MinDigits)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return &Classifier{broken: true, srRange: opts.ServiceRequestRange}
	}
	return &Classifier{re: re, srRange: opts.ServiceRequestRange}
}

// Classify scans a note for the first keyword followed within the window by
// a qualifying digit run. Notes with no qualifying match return NotTriaged
// with absent number and type.
func (c *Classifier) Classify(note string) Result {
	if c.broken {
		return Result{Status: domain.TriageRegexError}
	}
	if strings.TrimSpace(note) == "" {
		return Result{Status: domain.TriageNotTriaged}
	}

	match := c.re.FindStringSubmatch(strings.ToLower(note))
	if match == nil {
		return Result{Status: domain.TriageNotTriaged}
	}
	digits := match[len(match)-1]
	number, err := strconv.Atoi(digits)
	if err != nil {
		// Digit run too long for an int; treat as no usable reference.
		return Result{Status: domain.TriageNotTriaged}
	}

	ticketType := domain.TicketTypeIncident
	if c.srRange.Contains(number) {
		ticketType = domain.TicketTypeServiceRequest
	}
	return Result{
		Status:       domain.TriagePendingReference,
		TicketNumber: &number,
		TicketType:   &ticketType,
	}
}
