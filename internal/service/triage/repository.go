package triage

import (
	"context"
	"time"

	"github.com/ignite/support-triage/internal/domain"
)

// Repository defines the data access contract for classified emails.
type Repository interface {
	// SaveBatch upserts classified emails keyed by (sender, subject).
	// Duplicate keys within a batch resolve last-write-wins; an existing
	// row keeps its externally tracked status.
	SaveBatch(ctx context.Context, emails []domain.ClassifiedEmail) error

	// List returns classified emails matching the filter, in ranked order:
	// Urgent first, most recent first within each priority, untimestamped
	// records last within their group.
	List(ctx context.Context, filter ListFilter) ([]domain.ClassifiedEmail, error)

	// UpdateStatus sets the resolution status for every email matching the
	// key. Returns ErrNotFound when no row matches.
	UpdateStatus(ctx context.Context, key domain.Key, status domain.Status) error

	// Stats returns aggregate counts over the stored batch.
	Stats(ctx context.Context) (Stats, error)
}

// ListFilter controls filtering for email lists. Empty slices mean "no
// constraint" for that dimension.
type ListFilter struct {
	Sentiments []domain.Sentiment
	Priorities []domain.Priority
	Categories []domain.Category
	Statuses   []domain.Status
	Since      *time.Time
	Limit      int
	Offset     int
}

// Stats aggregates the stored batch for the dashboard.
type Stats struct {
	Total       int                      `json:"total"`
	Urgent      int                      `json:"urgent"`
	Pending     int                      `json:"pending"`
	Resolved    int                      `json:"resolved"`
	ByCategory  map[domain.Category]int  `json:"by_category"`
	BySentiment map[domain.Sentiment]int `json:"by_sentiment"`
}
