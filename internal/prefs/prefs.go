package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	atomicfile "github.com/natefinch/atomic"
)

// Preferences is the flat-file-backed preference set.
type Preferences struct {
	ScheduleWindowEnabled bool `json:"schedule_window_enabled"`
}

// Store reads and writes Preferences to a single file, atomically.
type Store struct {
	mu   sync.Mutex
	path string
}

// Open returns a Store backed by path. The file need not exist yet; Load
// returns zero-value Preferences in that case.
func Open(path string) *Store {
	return &Store{path: path}
}

// Load reads the current preferences, returning defaults if the file is
// absent.
func (s *Store) Load() (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Preferences{}, nil
		}
		return Preferences{}, fmt.Errorf("prefs: read %s: %w", s.path, err)
	}

	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return Preferences{}, fmt.Errorf("prefs: decode %s: %w", s.path, err)
	}
	return p, nil
}

// Save writes p to the preferences file without a torn-write window.
func (s *Store) Save(p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}
	if err := atomicfile.WriteFile(s.path, strings.NewReader(string(data))); err != nil {
		return fmt.Errorf("prefs: write %s: %w", s.path, err)
	}
	return nil
}

// SetScheduleWindowEnabled is a convenience read-modify-write for the single
// boolean preference.
func (s *Store) SetScheduleWindowEnabled(enabled bool) error {
	p, err := s.Load()
	if err != nil {
		return err
	}
	p.ScheduleWindowEnabled = enabled
	return s.Save(p)
}
