package reconcile

import (
	"regexp"
	"strings"

	"github.com/spec-kit/case-report-service/internal/domain"
)

// Breach keyword vocabularies. Each source has its own set: the incident
// tracker emits "breached"/"not breached" in addition to the shared values;
// the service-request tracker does not.
var (
	srBreachPositive = []string{"yes", "true", "1", "passed"}
	srBreachNegative = []string{"no", "false", "0", "not passed"}

	incidentBreachPositive = []string{"yes", "true", "1", "passed", "breached"}
	incidentBreachNegative = []string{"no", "false", "0", "not passed", "not breached"}
)

// NormalizeBreach maps a free-text breach cell onto the tri-state flag.
// Matching is case-insensitive; anything outside the keyword sets, including
// an empty cell, is Unknown. The BreachState string values are themselves in
// the vocabulary, so normalizing an already-normalized value is a no-op.
func NormalizeBreach(cell string, positive, negative []string) domain.BreachState {
	val := strings.ToLower(strings.TrimSpace(cell))
	for _, kw := range positive {
		if val == kw {
			return domain.BreachTrue
		}
	}
	for _, kw := range negative {
		if val == kw {
			return domain.BreachFalse
		}
	}
	return domain.BreachUnknown
}

// NormalizeServiceRequestBreach applies the service-request vocabulary.
func NormalizeServiceRequestBreach(cell string) domain.BreachState {
	return NormalizeBreach(cell, srBreachPositive, srBreachNegative)
}

// NormalizeIncidentBreach applies the incident vocabulary.
func NormalizeIncidentBreach(cell string) domain.BreachState {
	return NormalizeBreach(cell, incidentBreachPositive, incidentBreachNegative)
}

var emailLocalPattern = regexp.MustCompile(`([A-Za-z0-9._%+\-]+)@[A-Za-z0-9.\-]+`)

// NormalizePendingOwner extracts an owner name from a pending-with cell,
// which typically embeds an email address ("Pending with ali.babiker@…").
// The email local part is taken and separator punctuation becomes spaces.
// Cells without an email-like token yield nil.
func NormalizePendingOwner(cell string) *string {
	match := emailLocalPattern.FindStringSubmatch(cell)
	if match == nil {
		return nil
	}
	name := match[1]
	name = strings.Map(func(r rune) rune {
		switch r {
		case '.', '_', '-', '+', '%':
			return ' '
		}
		return r
	}, name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return nil
	}
	return &name
}
