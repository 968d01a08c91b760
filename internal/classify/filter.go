// Package classify implements the rule engines that label incoming support
// emails: the relevance filter, the lexicon-based sentiment scorer, the
// urgency marker matcher, and the ordered category classifier.
//
// Every engine is a pure function over normalized text. None of them can
// fail: absence of a match always maps to a defined default label
// (Neutral / Not urgent / General Query), never to an error.
package classify

import "strings"

// filterTerms is the keyword gate deciding whether a subject line belongs in
// the triage pipeline at all. Recall-oriented; false positives are expected.
var filterTerms = []string{"support", "query", "request", "help"}

// IsRelevant reports whether the subject line marks the email as a support
// request. Matching is a case-insensitive substring test; an empty subject
// is never relevant.
func IsRelevant(subject string) bool {
	s := strings.ToLower(subject)
	for _, term := range filterTerms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
