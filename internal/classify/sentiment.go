package classify

import (
	"strings"
	"sync"

	"github.com/jonreiter/govader"

	"github.com/ignite/support-triage/internal/domain"
)

// Compound score thresholds separating the three sentiment labels.
const (
	positiveThreshold = 0.2
	negativeThreshold = -0.2
)

// SentimentScorer labels text polarity from VADER compound scores. The zero
// value is not usable; construct with NewSentimentScorer.
type SentimentScorer struct {
	// The analyzer is not documented as safe for concurrent use, so the
	// scorer serializes calls.
	mu       sync.Mutex
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewSentimentScorer builds a scorer over the VADER valence lexicon.
func NewSentimentScorer() *SentimentScorer {
	return &SentimentScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the aggregate polarity of text in [-1, 1]. Empty text and
// text with no valence-bearing words score 0.
func (s *SentimentScorer) Compound(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analyzer.PolarityScores(text).Compound
}

// Label maps the compound score of text onto a sentiment label using the
// fixed thresholds. Empty text is Neutral.
func (s *SentimentScorer) Label(text string) domain.Sentiment {
	score := s.Compound(text)
	switch {
	case score >= positiveThreshold:
		return domain.SentimentPositive
	case score <= negativeThreshold:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}
