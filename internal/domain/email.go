package domain

import "time"

// EmailRecord is a raw support email as it arrives from the dataset.
// Fields may carry surrounding whitespace and SentDate is an unparsed,
// locale-ambiguous string; nothing downstream may consume an EmailRecord
// without normalization.
type EmailRecord struct {
	Sender   string `json:"sender" db:"sender"`
	Subject  string `json:"subject" db:"subject"`
	Body     string `json:"body" db:"body"`
	SentDate string `json:"sent_date" db:"sent_date"`
}

// NormalizedEmail is an EmailRecord with trimmed text fields and the sent
// date parsed into ReceivedAt. ReceivedAt is nil when the source date string
// was empty or unparsable; such records are valid but unorderable by time.
type NormalizedEmail struct {
	Sender     string     `json:"sender"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
	ReceivedAt *time.Time `json:"received_at"`
}

// Extraction holds the contact and requirement facts pulled from a body.
type Extraction struct {
	// EmailsFound is a deduplicated set of email addresses; order carries
	// no meaning.
	EmailsFound []string `json:"emails_found"`
	// PhonesFound lists phone numbers in order of appearance, duplicates kept.
	PhonesFound []string `json:"phones_found"`
	// Requirements holds up to three requirement/ask sentences in original
	// order, each trimmed.
	Requirements []string `json:"requirements"`
}

// ClassifiedEmail is the fully processed form of a relevant support email:
// normalized fields plus labels, extracted facts, and a drafted reply.
// Instances are immutable once constructed; the batch ranker reorders the
// collection but never mutates individual records.
type ClassifiedEmail struct {
	ID         string     `json:"id" db:"id"`
	Sender     string     `json:"sender" db:"sender"`
	Subject    string     `json:"subject" db:"subject"`
	Body       string     `json:"body" db:"body"`
	ReceivedAt *time.Time `json:"received_at" db:"received_at"`

	Sentiment Sentiment `json:"sentiment" db:"sentiment"`
	Priority  Priority  `json:"priority" db:"priority"`
	Category  Category  `json:"category" db:"category"`

	EmailsFound  []string `json:"emails_found" db:"emails_found"`
	PhonesFound  []string `json:"phones_found" db:"phones_found"`
	Requirements []string `json:"requirements" db:"requirements"`

	DraftReply string `json:"draft_reply" db:"draft_reply"`

	// Status is tracked externally and merged in by the service layer.
	// The zero value means the status has not been merged yet.
	Status Status `json:"status,omitempty" db:"status"`
}

// Key identifies an email for external state merges. The pairing is not
// guaranteed unique in source data; callers merging on it use
// last-write-wins.
type Key struct {
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
}

// Key returns the (sender, subject) merge key for this record.
func (c *ClassifiedEmail) Key() Key {
	return Key{Sender: c.Sender, Subject: c.Subject}
}
