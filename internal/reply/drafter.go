// Package reply composes draft replies to classified support emails.
//
// Two strategies satisfy the same Drafter contract: a deterministic Liquid
// template that needs no configuration or network, and a delegated LLM call.
// The template is always available as the fallback, so a batch never loses a
// record to generation unavailability.
package reply

import (
	"context"
	"errors"
	"fmt"

	"github.com/ignite/support-triage/internal/domain"
)

// Sentinel errors for label/contract violations. These signal that the label
// engines and the drafter have drifted out of sync, which is a programmer
// error, not a data-quality problem.
var (
	ErrUnknownSentiment = errors.New("reply: unknown sentiment label")
	ErrUnknownCategory  = errors.New("reply: unknown category label")
	ErrUnknownPriority  = errors.New("reply: unknown priority label")
)

// DraftRequest carries everything a drafter needs to compose a reply. The
// label fields must hold defined enum values; drafters fail fast otherwise.
type DraftRequest struct {
	Subject     string
	Body        string
	Category    domain.Category
	Sentiment   domain.Sentiment
	Priority    domain.Priority
	ProductHint string
}

// Drafter composes a reply document for a classified email.
type Drafter interface {
	Draft(ctx context.Context, req DraftRequest) (string, error)
}

// DrafterFunc adapts a function to the Drafter interface.
type DrafterFunc func(ctx context.Context, req DraftRequest) (string, error)

// Draft calls f.
func (f DrafterFunc) Draft(ctx context.Context, req DraftRequest) (string, error) {
	return f(ctx, req)
}

// opening returns the sentiment-keyed first line of the reply.
func opening(s domain.Sentiment) (string, error) {
	switch s {
	case domain.SentimentPositive:
		return "Thank you for reaching out and for the clear details.", nil
	case domain.SentimentNeutral:
		return "Thank you for contacting our support team.", nil
	case domain.SentimentNegative:
		return "I'm sorry for the trouble you're facing, and I appreciate your patience.", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSentiment, s)
	}
}

// categoryNote returns the category-keyed explanatory line.
func categoryNote(c domain.Category) (string, error) {
	switch c {
	case domain.CategoryBilling:
		return "I understand you're experiencing a billing/pricing issue. I'll help clarify charges and ensure your account reflects the correct amount.", nil
	case domain.CategoryAccount:
		return "It looks like there's an account access issue. I'll guide you through restoring access securely.", nil
	case domain.CategoryTechnical:
		return "I see you have a technical integration question. I'll share the required steps and references.", nil
	case domain.CategoryGeneral:
		return "I'll address your query with the necessary details below.", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
}

// actionItems returns the category-keyed ordered action-item list.
func actionItems(c domain.Category) ([]string, error) {
	switch c {
	case domain.CategoryBilling:
		return []string{
			"Share the last 4 digits of the invoice ID (no sensitive info).",
			"Confirm the billing period and the expected amount.",
			"We'll review and correct any discrepancy.",
		}, nil
	case domain.CategoryAccount:
		return []string{
			"Use the 'Forgot Password' link and follow the instructions.",
			"If still blocked, reply with the email/username used for the account (no passwords).",
			"We'll verify and restore access.",
		}, nil
	case domain.CategoryTechnical:
		return []string{
			"Confirm the API endpoint and the HTTP response you're seeing.",
			"Share a minimal log snippet (without secrets).",
			"We'll provide a working example or patch quickly.",
		}, nil
	case domain.CategoryGeneral:
		return []string{
			"I've summarized key details below.",
			"If I missed anything, reply with specifics and I'll refine the answer.",
			"Happy to help further.",
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
}

// urgencyLine returns the priority-keyed "what happens next" line.
func urgencyLine(p domain.Priority) (string, error) {
	switch p {
	case domain.PriorityUrgent:
		return "We're prioritizing this and will respond first.", nil
	case domain.PriorityNotUrgent:
		return "This will be handled promptly.", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPriority, p)
	}
}
