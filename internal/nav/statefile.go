package nav

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fitforworks/internal/logging"
)

const (
	stateFileName    = "last_view.json"
	stateFileVersion = "1.0"
)

// viewState is the on-disk record of the most recently selected screen.
type viewState struct {
	Version  string `json:"version"`
	LastView string `json:"last_view"`
}

// StateStore persists the last selected view across runs.
type StateStore struct {
	path string
}

// NewStateStore creates a store rooted at dir. The directory is created
// lazily on first save.
func NewStateStore(dir string) *StateStore {
	return &StateStore{path: filepath.Join(dir, stateFileName)}
}

// Load reads the persisted view. A missing, unreadable, or corrupt file is
// reported as absent rather than an error; stale state must never block
// startup.
func (s *StateStore) Load() (ViewId, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}

	var state viewState
	if err := json.Unmarshal(data, &state); err != nil {
		logging.Nav("Discarding corrupt view state file: %v", err)
		return "", false
	}

	view, ok := ParseView(state.LastView)
	if !ok {
		logging.Nav("Discarding unknown persisted view %q", state.LastView)
		return "", false
	}
	return view, true
}

// Save writes view as the persisted last view.
func (s *StateStore) Save(view ViewId) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	state := viewState{Version: stateFileVersion, LastView: string(view)}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling view state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing view state: %w", err)
	}
	return nil
}

// Clear removes the persisted view, if any.
func (s *StateStore) Clear() {
	_ = os.Remove(s.path)
}
