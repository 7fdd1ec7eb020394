package recorder

import (
	"time"

	"github.com/google/uuid"

	"CryptoTracker/internal/model"
)

// SuggestionRun is one ranking pass over the cached market.
type SuggestionRun struct {
	ID              uuid.UUID
	AnalyzedAt      time.Time
	Recommendations []model.Recommendation
}

// NewSuggestionRun stamps a ranking with a fresh run id.
func NewSuggestionRun(recs []model.Recommendation) *SuggestionRun {
	return &SuggestionRun{
		ID:              uuid.New(),
		AnalyzedAt:      time.Now(),
		Recommendations: recs,
	}
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordSnapshots(snaps []model.AssetSnapshot) error
	RecordSuggestions(run *SuggestionRun) error
	RecordQuote(q *model.ExchangeQuote) error
	Close() error
}
