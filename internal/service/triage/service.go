package triage

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ignite/support-triage/internal/domain"
	"github.com/ignite/support-triage/internal/pipeline"
	"github.com/ignite/support-triage/internal/pkg/logger"
)

// Service implements triage business logic on top of the pipeline and a
// repository. Safe for concurrent use.
type Service struct {
	pipe *pipeline.Pipeline
	repo Repository
}

// NewService creates a triage service.
func NewService(pipe *pipeline.Pipeline, repo Repository) *Service {
	return &Service{pipe: pipe, repo: repo}
}

// ProcessAndStore runs the classification pipeline over raw records and
// persists the relevant results. Per-record drafting failures are logged and
// carried in the returned BatchResult; they never abort the batch.
func (s *Service) ProcessAndStore(ctx context.Context, records []domain.EmailRecord) (pipeline.BatchResult, error) {
	result := s.pipe.Process(ctx, records)
	for _, recErr := range result.Errors {
		logger.Warn("dropped record",
			"index", strconv.Itoa(recErr.Index),
			"sender", recErr.Key.Sender,
			"subject", recErr.Key.Subject,
			"error", recErr.Err)
	}

	if len(result.Emails) > 0 {
		if err := s.repo.SaveBatch(ctx, result.Emails); err != nil {
			return result, fmt.Errorf("save batch: %w", err)
		}
	}
	return result, nil
}

// List returns stored emails matching the filter in ranked order.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]domain.ClassifiedEmail, error) {
	return s.repo.List(ctx, filter)
}

// UpdateStatus validates and applies a status change for the (sender,
// subject) key. The key is not unique in source data; all matching rows are
// updated, which is the documented last-write-wins semantics.
func (s *Service) UpdateStatus(ctx context.Context, key domain.Key, status domain.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.repo.UpdateStatus(ctx, key, status)
}

// Stats returns aggregate counts for the dashboard.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}
