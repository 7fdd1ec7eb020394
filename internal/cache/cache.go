package cache

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"CryptoTracker/internal/model"
)

// Store keeps the latest market snapshots and ranking between refreshes.
type Store struct {
	mu       sync.RWMutex
	state    *State
	index    map[string]int
	filePath string
	logger   zerolog.Logger
}

// NewStore creates a Store, loading state from filePath when it is set.
// An empty filePath keeps everything in memory.
func NewStore(filePath string) (*Store, error) {
	state := &State{}
	if filePath != "" {
		var err error
		if state, err = LoadState(filePath); err != nil {
			return nil, err
		}
	}
	s := &Store{
		state:    state,
		filePath: filePath,
		logger:   log.With().Str("component", "cache").Logger(),
	}
	s.reindex()
	if len(state.Snapshots) > 0 {
		s.logger.Info().Int("snapshots", len(state.Snapshots)).Time("refreshed_at", state.RefreshedAt).Msg("state restored")
	}
	return s, nil
}

func (s *Store) reindex() {
	s.index = make(map[string]int, len(s.state.Snapshots))
	for i, snap := range s.state.Snapshots {
		s.index[snap.ID] = i
	}
}

// Update merges snapshots by coin id. Known coins are replaced in place and
// new coins are appended, so the first-seen order is kept.
func (s *Store) Update(snaps []model.AssetSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, snap := range snaps {
		if i, ok := s.index[snap.ID]; ok {
			s.state.Snapshots[i] = snap
			continue
		}
		s.index[snap.ID] = len(s.state.Snapshots)
		s.state.Snapshots = append(s.state.Snapshots, snap)
	}
	s.state.RefreshedAt = time.Now()
	s.save()
}

// Snapshots returns a copy of every cached snapshot.
func (s *Store) Snapshots() []model.AssetSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.AssetSnapshot, len(s.state.Snapshots))
	copy(out, s.state.Snapshots)
	return out
}

// Ordered returns the cached snapshots of coins, in coins order. Coins with
// no cached snapshot are left out.
func (s *Store) Ordered(coins []model.Coin) []model.AssetSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.AssetSnapshot, 0, len(coins))
	for _, c := range coins {
		if i, ok := s.index[c.ID]; ok {
			out = append(out, s.state.Snapshots[i])
		}
	}
	return out
}

// Get returns the cached snapshot of a coin id.
func (s *Store) Get(id string) (model.AssetSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return model.AssetSnapshot{}, false
	}
	return s.state.Snapshots[i], true
}

// SetRecommendations stores the latest ranking.
func (s *Store) SetRecommendations(recs []model.Recommendation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Recommendations = append([]model.Recommendation(nil), recs...)
	s.state.AnalyzedAt = time.Now()
	s.save()
}

// Recommendations returns the latest ranking and when it was produced.
func (s *Store) Recommendations() ([]model.Recommendation, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Recommendation(nil), s.state.Recommendations...), s.state.AnalyzedAt
}

// RefreshedAt returns the time of the last Update.
func (s *Store) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.RefreshedAt
}

// save must be called with the write lock held.
func (s *Store) save() {
	if s.filePath == "" {
		return
	}
	if err := SaveState(s.filePath, s.state); err != nil {
		s.logger.Error().Err(err).Str("path", s.filePath).Msg("failed to save cache state")
	}
}
