// Package settings is the explicit store for the one persisted UI
// preference, dark mode. It lives in $XDG_STATE_HOME/paperhub/prefs.yaml as
//
//	dark-mode: "true"
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/paperhub/pkg/config"
)

// KeyDarkMode is the only preference key.
const KeyDarkMode = "dark-mode"

// FileName is the preference file name inside the state directory.
const FileName = "prefs.yaml"

type prefs struct {
	DarkMode string `yaml:"dark-mode,omitempty"`
}

// Store loads and saves preferences. It is safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	path  string
	prefs prefs
}

// DefaultPath returns the preference file under the XDG state directory.
func DefaultPath() string {
	dir := config.StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, FileName)
}

// NewStore returns a store backed by path. Nothing is read until Load.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Open returns a loaded store at DefaultPath.
func Open() (*Store, error) {
	path := DefaultPath()
	if path == "" {
		return nil, fmt.Errorf("cannot determine state directory")
	}
	s := NewStore(path)
	return s, s.Load()
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Load reads the preference file. A missing file leaves the defaults.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.mu.Lock()
			s.prefs = prefs{}
			s.mu.Unlock()
			return nil
		}
		return fmt.Errorf("reading preferences: %w", err)
	}
	var p prefs
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("parsing preferences: %w", err)
	}
	s.mu.Lock()
	s.prefs = p
	s.mu.Unlock()
	return nil
}

// Save writes the preference file, creating its directory.
func (s *Store) Save() error {
	s.mu.Lock()
	p := s.prefs
	s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling preferences: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	return nil
}

// DarkMode reports the stored flag. Anything but "true" is false.
func (s *Store) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.EqualFold(strings.TrimSpace(s.prefs.DarkMode), "true")
}

// SetDarkMode updates the flag in memory. Call Save to persist it.
func (s *Store) SetDarkMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.DarkMode = strconv.FormatBool(on)
}

// ToggleDarkMode flips and saves the flag, returning the new value.
func (s *Store) ToggleDarkMode() (bool, error) {
	on := !s.DarkMode()
	s.SetDarkMode(on)
	return on, s.Save()
}

// Get returns the raw stored value for key.
func (s *Store) Get(key string) (string, error) {
	if key != KeyDarkMode {
		return "", fmt.Errorf("unknown preference %q", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prefs.DarkMode == "" {
		return "false", nil
	}
	return s.prefs.DarkMode, nil
}

// Set parses value as a boolean and stores it under key.
func (s *Store) Set(key, value string) error {
	if key != KeyDarkMode {
		return fmt.Errorf("unknown preference %q", key)
	}
	on, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("invalid value %q for %s: want true or false", value, key)
	}
	s.SetDarkMode(on)
	return nil
}
