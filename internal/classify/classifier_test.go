package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/case-report-service/internal/domain"
)

func TestClassifyNoKeyword(t *testing.T) {
	c := New(DefaultOptions())

	for _, note := range []string{
		"",
		"   ",
		"customer called about pension statement",
		"reference 15001 with no cue word",
		"numbers only 123456789",
	} {
		res := c.Classify(note)
		assert.Equal(t, domain.TriageNotTriaged, res.Status, "note=%q", note)
		assert.Nil(t, res.TicketNumber)
		assert.Nil(t, res.TicketType)
	}
}

func TestClassifyKeywordWithDigits(t *testing.T) {
	c := New(DefaultOptions())

	tests := []struct {
		note     string
		number   int
		ticket   domain.TicketType
	}{
		{"SR 15001 raised for member", 15001, domain.TicketTypeServiceRequest},
		{"escalated to INC 20345 yesterday", 20345, domain.TicketTypeIncident},
		{"tkt#15999 still pending", 15999, domain.TicketTypeServiceRequest},
		{"Ticket number:\n14321 awaiting closure", 14321, domain.TicketTypeIncident},
		{"تذكرة رقم 15500 قيد المعالجة", 15500, domain.TicketTypeServiceRequest},
		{"تم تسجيل حادث 21000", 21000, domain.TicketTypeIncident},
	}
	for _, tt := range tests {
		res := c.Classify(tt.note)
		require.Equal(t, domain.TriagePendingReference, res.Status, "note=%q", tt.note)
		require.NotNil(t, res.TicketNumber)
		require.NotNil(t, res.TicketType)
		assert.Equal(t, tt.number, *res.TicketNumber, "note=%q", tt.note)
		assert.Equal(t, tt.ticket, *res.TicketType, "note=%q", tt.note)
	}
}

func TestClassifyRangeBoundaries(t *testing.T) {
	c := New(DefaultOptions())

	low := c.Classify("sr 15000")
	require.NotNil(t, low.TicketType)
	assert.Equal(t, domain.TicketTypeServiceRequest, *low.TicketType)

	high := c.Classify("sr 16000")
	require.NotNil(t, high.TicketType)
	assert.Equal(t, domain.TicketTypeServiceRequest, *high.TicketType)

	above := c.Classify("sr 16001")
	require.NotNil(t, above.TicketType)
	assert.Equal(t, domain.TicketTypeIncident, *above.TicketType)

	below := c.Classify("sr 14999")
	require.NotNil(t, below.TicketType)
	assert.Equal(t, domain.TicketTypeIncident, *below.TicketType)
}

func TestClassifyCustomRange(t *testing.T) {
	opts := DefaultOptions()
	opts.ServiceRequestRange = Range{Min: 14000, Max: 19000}
	c := New(opts)

	res := c.Classify("inc 14500")
	require.NotNil(t, res.TicketType)
	assert.Equal(t, domain.TicketTypeServiceRequest, *res.TicketType)
}

func TestClassifyShortDigitRun(t *testing.T) {
	c := New(DefaultOptions())

	res := c.Classify("sr 123 logged")
	assert.Equal(t, domain.TriageNotTriaged, res.Status)
	assert.Nil(t, res.TicketNumber)
}

func TestClassifyWindow(t *testing.T) {
	c := New(DefaultOptions())

	inside := "sr " + strings.Repeat("x", 45) + " 15001"
	res := c.Classify(inside)
	assert.Equal(t, domain.TriagePendingReference, res.Status)

	outside := "sr " + strings.Repeat("x", 60) + " 15001"
	res = c.Classify(outside)
	assert.Equal(t, domain.TriageNotTriaged, res.Status)
}

func TestClassifyFirstMatchWins(t *testing.T) {
	c := New(DefaultOptions())

	res := c.Classify("sr 15001 then inc 20000")
	require.NotNil(t, res.TicketNumber)
	assert.Equal(t, 15001, *res.TicketNumber)
}

func TestClassifyInvalidPattern(t *testing.T) {
	opts := DefaultOptions()
	opts.Pattern = "sr[(\\d{4,}"
	c := New(opts)

	res := c.Classify("sr 15001")
	assert.Equal(t, domain.TriageRegexError, res.Status)
	assert.Nil(t, res.TicketNumber)
	assert.Nil(t, res.TicketType)
}

func TestClassifyCaseInsensitive(t *testing.T) {
	c := New(DefaultOptions())

	res := c.Classify("SR 15500 AND CLOSED")
	assert.Equal(t, domain.TriagePendingReference, res.Status)
}
