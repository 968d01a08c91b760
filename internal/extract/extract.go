// Package extract pulls contact identifiers and requirement sentences out of
// raw email bodies. Extraction is pattern-based and best-effort: no check
// digits, no internationalization beyond the stated digit-count rule, and
// never an error for empty or malformed input.
package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ignite/support-triage/internal/domain"
)

var (
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)

	// Optional + and 1-3 country-code digits, an optional separator, then
	// exactly 10 digits.
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-\s]?)?\d{10}`)
)

// requirementTriggers flag a sentence as a likely customer need or problem.
var requirementTriggers = []string{
	"need", "want", "require", "cannot", "can't", "can’t",
	"unable", "error", "issue",
}

// maxRequirements caps how many requirement sentences are kept per body.
const maxRequirements = 3

// Extract scans body for email addresses, phone numbers, and requirement
// sentences. An empty body yields an Extraction with all fields empty.
func Extract(body string) domain.Extraction {
	return domain.Extraction{
		EmailsFound:  Emails(body),
		PhonesFound:  Phones(body),
		Requirements: Requirements(body),
	}
}

// Emails returns all email addresses in body, deduplicated in order of first
// appearance. The order carries no meaning for callers.
func Emails(body string) []string {
	matches := emailPattern.FindAllString(body, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// Phones returns all phone numbers in body in order of appearance,
// duplicates kept.
func Phones(body string) []string {
	return phonePattern.FindAllString(body, -1)
}

// Requirements returns up to three sentences, in original order, whose
// lowercase form contains a requirement trigger word. Each sentence is
// trimmed of surrounding whitespace.
func Requirements(body string) []string {
	var out []string
	for _, sent := range splitSentences(body) {
		ls := strings.ToLower(sent)
		for _, trigger := range requirementTriggers {
			if strings.Contains(ls, trigger) {
				out = append(out, strings.TrimSpace(sent))
				break
			}
		}
		if len(out) == maxRequirements {
			break
		}
	}
	return out
}

// splitSentences breaks text on ./!/? boundaries, keeping the terminator
// with its sentence. A terminator only ends a sentence when followed by
// whitespace or end-of-text, so dots inside domain names, amounts, and
// addresses never split mid-token.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i, r := range text {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		next := i + utf8.RuneLen(r)
		if next < len(text) {
			nr, _ := utf8.DecodeRuneInString(text[next:])
			if !unicode.IsSpace(nr) {
				continue
			}
		}
		sentences = append(sentences, text[start:next])
		start = next
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}
