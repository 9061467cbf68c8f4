// Package store owns the single game-state snapshot and its save slot.
// Engine transitions commit replacement snapshots here; nothing else may
// mutate state.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/appengine-ltd/band-it/internal/game"
)

const (
	saveFileName  = "band-it-save.json"
	formatVersion = 2
)

type saveFile struct {
	FormatVersion int             `json:"format_version"`
	State         *game.GameState `json:"state"`
}

type Store struct {
	path      string
	state     *game.GameState
	listeners []func()
}

// New creates a store persisting to dir. The directory is created lazily on
// first save.
func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, saveFileName)}
}

// Get returns the current snapshot, nil before any game has started.
func (s *Store) Get() *game.GameState {
	return s.state
}

// Subscribe registers a listener invoked synchronously after every commit.
// The returned function removes it.
func (s *Store) Subscribe(fn func()) func() {
	s.listeners = append(s.listeners, fn)
	idx := len(s.listeners) - 1
	return func() {
		s.listeners[idx] = nil
	}
}

func (s *Store) notify() {
	for _, fn := range s.listeners {
		if fn != nil {
			fn()
		}
	}
}

// Commit replaces the snapshot wholesale, persists it, then notifies.
// Persistence completes before listeners run, so subscribers always observe
// a durable state.
func (s *Store) Commit(next *game.GameState) {
	s.state = next
	_ = s.Save()
	s.notify()
}

// Save serializes the current state to the save slot.
func (s *Store) Save() error {
	if s.state == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(saveFile{FormatVersion: formatVersion, State: s.state}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Load reads the save slot, migrates older snapshots and replaces the
// in-memory state. Returns false without touching memory when the slot is
// absent or the payload is malformed.
func (s *Store) Load() bool {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}
	var file saveFile
	if err := json.Unmarshal(data, &file); err != nil {
		return false
	}
	if file.State == nil {
		// Oldest saves stored the bare state with no version envelope.
		var legacy game.GameState
		if err := json.Unmarshal(data, &legacy); err != nil || legacy.PlayerName == "" {
			return false
		}
		file.State = &legacy
	}
	migrate(file.State)
	s.state = file.State
	s.notify()
	return true
}

// DeleteSave clears the slot on disk. The in-memory state is untouched.
func (s *Store) DeleteSave() {
	_ = os.Remove(s.path)
}

// migrate fills fields absent in older snapshots so the engine never has to
// branch on missing data.
func migrate(state *game.GameState) {
	if state.Crew == nil {
		state.Crew = []game.CrewMember{}
	}
	for i := range state.Members {
		if state.Members[i].Role == "" {
			state.Members[i].Role = game.RoleMusician
		}
		if state.Members[i].Contract == "" {
			state.Members[i].Contract = game.ContractPro
		}
	}
	if state.Screen == "" {
		state.Screen = game.ScreenHQ
	}
}
