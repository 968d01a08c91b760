package classify

import (
	"strings"

	"github.com/ignite/support-triage/internal/domain"
)

// urgentMarkers are the phrases that escalate an email to Urgent. Matching
// short-circuits on the first hit; there is no scoring.
var urgentMarkers = []string{
	"urgent",
	"immediate",
	"immediately",
	"asap",
	"critical",
	"blocked",
	"cannot access",
	"can't access",
	"can’t access",
	"unable to login",
	"system down",
}

// PriorityLabel classifies urgency from the lowercased subject+body blob.
// Any marker present anywhere in the blob makes the email Urgent.
func PriorityLabel(subject, body string) domain.Priority {
	blob := strings.ToLower(subject + " " + body)
	for _, marker := range urgentMarkers {
		if strings.Contains(blob, marker) {
			return domain.PriorityUrgent
		}
	}
	return domain.PriorityNotUrgent
}
