package domain

// Sentiment enumerates the polarity labels the sentiment engine can emit.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// Valid returns true if s is one of the defined sentiment labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// Priority enumerates the urgency labels the priority engine can emit.
type Priority string

const (
	PriorityUrgent    Priority = "Urgent"
	PriorityNotUrgent Priority = "Not urgent"
)

// Valid returns true if p is one of the defined priority labels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityNotUrgent:
		return true
	}
	return false
}

// Rank maps a priority to its sort rank. Urgent sorts before Not urgent.
func (p Priority) Rank() int {
	if p == PriorityUrgent {
		return 0
	}
	return 1
}

// Category enumerates the issue categories the category engine can emit.
type Category string

const (
	CategoryBilling   Category = "Billing Issue"
	CategoryAccount   Category = "Account Issue"
	CategoryTechnical Category = "Technical/Integration"
	CategoryGeneral   Category = "General Query"
)

// Valid returns true if c is one of the defined category labels.
func (c Category) Valid() bool {
	switch c {
	case CategoryBilling, CategoryAccount, CategoryTechnical, CategoryGeneral:
		return true
	}
	return false
}

// Status enumerates the externally tracked resolution states of an email.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusResolved Status = "Resolved"
)

// Valid returns true if st is one of the defined status values.
func (st Status) Valid() bool {
	return st == StatusPending || st == StatusResolved
}
