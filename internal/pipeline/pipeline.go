// Package pipeline runs the support-email triage batch: normalize, filter,
// label, extract, draft, then rank. Per-record work shares no mutable state,
// so the batch is processed by a bounded worker pool; the ranker imposes the
// final deterministic order after the pool drains.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/ignite/support-triage/internal/classify"
	"github.com/ignite/support-triage/internal/domain"
	"github.com/ignite/support-triage/internal/extract"
	"github.com/ignite/support-triage/internal/reply"
)

// RecordError reports a per-record drafting failure. These indicate a
// contract violation between the label engines and the drafter; the batch
// continues without the record.
type RecordError struct {
	Index int
	Key   domain.Key
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (%s / %s): %v", e.Index, e.Key.Sender, e.Key.Subject, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// BatchResult is the output of one pipeline run.
type BatchResult struct {
	// Emails holds the processed records in final ranked order.
	Emails []domain.ClassifiedEmail
	// Errors lists records dropped for per-record drafting failures.
	Errors []*RecordError
	// Total is the input size; Relevant counts records that passed the
	// relevance filter.
	Total    int
	Relevant int
}

// Pipeline classifies batches of raw email records. Instances are immutable
// after construction and safe for concurrent use.
type Pipeline struct {
	scorer  *classify.SentimentScorer
	drafter reply.Drafter
	workers int
}

// New creates a pipeline using the given reply strategy. workers bounds the
// pool size; zero or negative means one worker per CPU.
func New(drafter reply.Drafter, workers int) *Pipeline {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pipeline{
		scorer:  classify.NewSentimentScorer(),
		drafter: drafter,
		workers: workers,
	}
}

// Process runs the full batch. Irrelevant records are silently skipped;
// records whose drafting fails are reported in BatchResult.Errors. The
// output order follows Rank regardless of worker scheduling.
func (p *Pipeline) Process(ctx context.Context, records []domain.EmailRecord) BatchResult {
	type slot struct {
		email *domain.ClassifiedEmail
		err   *RecordError
	}

	slots := make([]slot, len(records))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				email, err := p.processOne(ctx, records[i])
				slots[i] = slot{email: email, err: err}
			}
		}()
	}

	for i := range records {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	result := BatchResult{Total: len(records)}
	for i := range slots {
		if slots[i].err != nil {
			slots[i].err.Index = i
			result.Relevant++
			result.Errors = append(result.Errors, slots[i].err)
			continue
		}
		if slots[i].email != nil {
			result.Relevant++
			result.Emails = append(result.Emails, *slots[i].email)
		}
	}

	Rank(result.Emails)
	return result
}

// processOne classifies a single record. A nil, nil return means the record
// did not pass the relevance filter.
func (p *Pipeline) processOne(ctx context.Context, rec domain.EmailRecord) (*domain.ClassifiedEmail, *RecordError) {
	norm := domain.NormalizedEmail{
		Sender:     Normalize(rec.Sender),
		Subject:    Normalize(rec.Subject),
		Body:       Normalize(rec.Body),
		ReceivedAt: ParseTimestamp(rec.SentDate),
	}

	if !classify.IsRelevant(norm.Subject) {
		return nil, nil
	}

	sentiment := p.scorer.Label(norm.Subject + " " + norm.Body)
	priority := classify.PriorityLabel(norm.Subject, norm.Body)
	category := classify.CategoryLabel(norm.Subject, norm.Body)
	facts := extract.Extract(norm.Body)

	draft, err := p.drafter.Draft(ctx, reply.DraftRequest{
		Subject:   norm.Subject,
		Body:      norm.Body,
		Category:  category,
		Sentiment: sentiment,
		Priority:  priority,
	})
	if err != nil {
		return nil, &RecordError{
			Key: domain.Key{Sender: norm.Sender, Subject: norm.Subject},
			Err: err,
		}
	}

	return &domain.ClassifiedEmail{
		Sender:       norm.Sender,
		Subject:      norm.Subject,
		Body:         norm.Body,
		ReceivedAt:   norm.ReceivedAt,
		Sentiment:    sentiment,
		Priority:     priority,
		Category:     category,
		EmailsFound:  facts.EmailsFound,
		PhonesFound:  facts.PhonesFound,
		Requirements: facts.Requirements,
		DraftReply:   draft,
	}, nil
}
