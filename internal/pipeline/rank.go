package pipeline

import (
	"sort"

	"github.com/ignite/support-triage/internal/domain"
)

// Rank orders a processed batch in place: Urgent before Not urgent, then
// most recent first within each priority group. Records without a timestamp
// sort as older than any timestamped record. The sort is stable, so records
// with equal keys keep their input order. This ordering is the external
// contract for "what's shown first".
func Rank(emails []domain.ClassifiedEmail) {
	sort.SliceStable(emails, func(i, j int) bool {
		a, b := &emails[i], &emails[j]
		if ar, br := a.Priority.Rank(), b.Priority.Rank(); ar != br {
			return ar < br
		}
		switch {
		case a.ReceivedAt == nil:
			return false
		case b.ReceivedAt == nil:
			return true
		default:
			return a.ReceivedAt.After(*b.ReceivedAt)
		}
	})
}
