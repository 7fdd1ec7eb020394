package recorder

import "CryptoTracker/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSnapshots(_ []model.AssetSnapshot) error { return nil }
func (n *NoopRecorder) RecordSuggestions(_ *SuggestionRun) error      { return nil }
func (n *NoopRecorder) RecordQuote(_ *model.ExchangeQuote) error      { return nil }
func (n *NoopRecorder) Close() error                                  { return nil }
