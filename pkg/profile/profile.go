// Package profile persists the user-facing identity the flow layer keeps in
// sync with answered questions: the display name and the house name.
//
// The profile is kept separate from the memory snapshot. It is the
// cached, presentation-ready projection other subsystems (greeting, TTS,
// device naming) read without going through the memory service.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hearthhq/hearth/pkg/dotdir"
)

const profileFile = "profile.json"

// Profile is the persisted display state.
type Profile struct {
	// DisplayName is what the assistant calls the user.
	DisplayName string `json:"display_name,omitempty"`

	// HouseName is the user's chosen name for their home.
	HouseName string `json:"house_name,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Store reads and writes the profile file under the .hearth/ directory.
type Store struct {
	mu  sync.Mutex
	ddm *dotdir.Manager

	// overrideDir pins the dot directory, used by tests.
	overrideDir string
}

// NewStore creates a profile store using default dotdir resolution.
func NewStore() *Store {
	return &Store{ddm: dotdir.NewManager()}
}

// NewStoreAt creates a profile store pinned to dir.
func NewStoreAt(dir string) *Store {
	return &Store{ddm: dotdir.NewManager(), overrideDir: dir}
}

// Load returns the persisted profile, or an empty profile if none exists.
func (s *Store) Load() (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// SetDisplayName persists a new display name.
func (s *Store) SetDisplayName(name string) error {
	return s.update(func(p *Profile) {
		p.DisplayName = name
	})
}

// SetHouseName persists a new house name.
func (s *Store) SetHouseName(name string) error {
	return s.update(func(p *Profile) {
		p.HouseName = name
	})
}

func (s *Store) update(fn func(*Profile)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load()
	if err != nil {
		return err
	}

	fn(p)
	p.UpdatedAt = time.Now().UTC()
	return s.save(p)
}

func (s *Store) load() (*Profile, error) {
	path, err := s.path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Profile{}, nil
		}
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	p := &Profile{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	return p, nil
}

func (s *Store) save(p *Profile) error {
	path, err := s.path()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

func (s *Store) path() (string, error) {
	dir, err := s.ddm.Target(s.overrideDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, profileFile), nil
}
