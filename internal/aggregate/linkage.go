package aggregate

import "github.com/spec-kit/case-report-service/internal/domain"

// linkageKey identifies a linkage group. Records sharing the same
// (identifier, type) pair belong to one group regardless of which file row
// they came from; referenced tickets legitimately appear on multiple rows.
type linkageKey struct {
	number     int
	ticketType domain.TicketType
}

// AttachLinkageCounts sets CaseCount on every record with a non-nil
// (identifier, type) pair to the size of its linkage group. Records missing
// either field keep a nil count, never zero. The input slice is returned
// enriched in a new slice.
func AttachLinkageCounts(cases []domain.CaseRecord) []domain.CaseRecord {
	sizes := make(map[linkageKey]int)
	for i := range cases {
		if cases[i].TicketNumber == nil || cases[i].TicketType == nil {
			continue
		}
		sizes[linkageKey{*cases[i].TicketNumber, *cases[i].TicketType}]++
	}

	out := make([]domain.CaseRecord, len(cases))
	copy(out, cases)
	for i := range out {
		if out[i].TicketNumber == nil || out[i].TicketType == nil {
			continue
		}
		count := sizes[linkageKey{*out[i].TicketNumber, *out[i].TicketType}]
		out[i].CaseCount = &count
	}
	return out
}
