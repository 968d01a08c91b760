package pipeline

import (
	"strings"
	"time"
)

// timestampLayouts are tried in order when parsing the locale-ambiguous
// sent_date column. US month-first is tried before day-first, matching how
// the source datasets have been observed to format dates.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"02/01/2006",
	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006 15:04",
	"2 Jan 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// Normalize trims surrounding whitespace; absent or whitespace-only input
// becomes the empty string. It never fails.
func Normalize(text string) string {
	return strings.TrimSpace(text)
}

// ParseTimestamp parses raw with a best-effort layout sweep. It returns nil
// for empty input and nil (not an error) when no layout matches; such
// records stay valid but sort after any timestamped record.
func ParseTimestamp(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return &ts
		}
	}
	return nil
}
