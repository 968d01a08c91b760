package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ignite/support-triage/internal/domain"
)

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		subject string
		want    bool
	}{
		{"Need help with billing", true},
		{"SUPPORT: login broken", true},
		{"General query about invoices", true},
		{"Request for API access", true},
		{"Meeting notes", false},
		{"", false},
		{"   ", false},
		{"Helpful tips newsletter", true}, // substring match is intentional
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRelevant(tt.subject), "subject=%q", tt.subject)
	}
}

func TestPriorityLabel(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		body    string
		want    domain.Priority
	}{
		{"urgent in subject", "Urgent: billing support", "", domain.PriorityUrgent},
		{"asap in body", "Support request", "please fix asap", domain.PriorityUrgent},
		{"system down", "help", "the system down since 9am", domain.PriorityUrgent},
		{"unable to login", "Support", "I am unable to login today", domain.PriorityUrgent},
		{"curly apostrophe", "Support", "I can’t access my dashboard", domain.PriorityUrgent},
		{"no markers", "Support query", "just wondering about pricing", domain.PriorityNotUrgent},
		{"empty", "", "", domain.PriorityNotUrgent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriorityLabel(tt.subject, tt.body))
		})
	}
}

// Inserting a marker into any text must never downgrade the result.
func TestPriorityLabelMonotonic(t *testing.T) {
	bodies := []string{
		"",
		"just a question about invoices",
		"urgent already present",
	}
	for _, body := range bodies {
		if PriorityLabel("support", body) == domain.PriorityUrgent {
			assert.Equal(t, domain.PriorityUrgent, PriorityLabel("support", body+" critical"))
		}
		assert.Equal(t, domain.PriorityUrgent, PriorityLabel("support", body+" asap"))
	}
}

func TestCategoryLabel(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		body    string
		want    domain.Category
	}{
		{"billing", "Support", "my invoice is wrong", domain.CategoryBilling},
		{"account", "Support", "I forgot my password", domain.CategoryAccount},
		{"technical", "Support", "the webhook returns 500", domain.CategoryTechnical},
		{"general", "Support", "what are your office hours", domain.CategoryGeneral},
		{"empty", "", "", domain.CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryLabel(tt.subject, tt.body))
		})
	}
}

// Billing is checked before Account, so text matching both always lands on
// Billing Issue.
func TestCategoryTieBreak(t *testing.T) {
	assert.Equal(t, domain.CategoryBilling, CategoryLabel("", "invoice and login trouble"))
	assert.Equal(t, domain.CategoryBilling, CategoryLabel("login help", "wrong invoice amount"))
	assert.Equal(t, domain.CategoryAccount, CategoryLabel("", "login and api token"))
}

func TestSentimentLabel(t *testing.T) {
	scorer := NewSentimentScorer()

	tests := []struct {
		name string
		text string
		want domain.Sentiment
	}{
		{"empty", "", domain.SentimentNeutral},
		{"no valence words", "The invoice number is 12345", domain.SentimentNeutral},
		{"positive", "Thanks, the support was great", domain.SentimentPositive},
		{"negative", "This is terrible and frustrating", domain.SentimentNegative},
		{"negation flips positive", "I am not happy with this", domain.SentimentNegative},
		{"booster amplifies", "very happy with the result", domain.SentimentPositive},
		{"contraction negation", "this isn't helpful at all", domain.SentimentNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scorer.Label(tt.text))
		})
	}
}

// The full VADER lexicon backs the scorer, so common support-mail valence
// words score non-neutral rather than falling through a small keyword table.
func TestSentimentLexiconBreadth(t *testing.T) {
	scorer := NewSentimentScorer()

	negatives := []string{
		"I am disappointed with the charges on my invoice",
		"this outage is horrible for our business",
		"your API keeps failing and it is hurting us",
	}
	for _, text := range negatives {
		assert.Negative(t, scorer.Compound(text), "text=%q", text)
	}

	positives := []string{
		"I appreciate the quick turnaround",
		"the onboarding experience was outstanding",
		"your team resolved this perfectly, thanks",
	}
	for _, text := range positives {
		assert.Positive(t, scorer.Compound(text), "text=%q", text)
	}
}

func TestSentimentCompoundRange(t *testing.T) {
	scorer := NewSentimentScorer()

	texts := []string{
		"",
		"plain text with nothing in it",
		strings.Repeat("terrible awful worst ", 50),
		strings.Repeat("great excellent amazing ", 50),
	}
	for _, text := range texts {
		score := scorer.Compound(text)
		assert.GreaterOrEqual(t, score, -1.0)
		assert.LessOrEqual(t, score, 1.0)
	}

	assert.Zero(t, scorer.Compound(""))
	assert.Positive(t, scorer.Compound("great"))
	assert.Negative(t, scorer.Compound("awful"))
}
