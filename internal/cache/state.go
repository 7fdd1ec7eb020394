package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"CryptoTracker/internal/model"
)

// State is the persisted form of the market cache.
type State struct {
	Snapshots       []model.AssetSnapshot  `json:"snapshots"`
	Recommendations []model.Recommendation `json:"recommendations"`
	RefreshedAt     time.Time              `json:"refreshed_at"`
	AnalyzedAt      time.Time              `json:"analyzed_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// LoadState reads the cache state from a JSON file. Returns an empty state if the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode state %s: %w", filePath, err)
	}
	return &state, nil
}

// SaveState writes the cache state to a JSON file, creating its directory.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	tmp := filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, filePath)
}
