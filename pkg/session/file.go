package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/matzehuels/kintree/pkg/cache"
)

// State is what the CLI browser remembers about one data source.
type State struct {
	Source    string    `json:"source"`
	Selected  string    `json:"selected,omitempty"`
	Query     string    `json:"query,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired returns true if the state has expired.
func (s *State) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// FileStore is a file-based state store for the CLI.
// States are stored as JSON files in a config directory, one per source.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based state store.
// If baseDir is empty, defaults to $XDG_CONFIG_HOME/kintree/sessions/.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("get config dir: %w", err)
		}
		baseDir = filepath.Join(dir, "kintree", "sessions")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) statePath(src string) string {
	return filepath.Join(s.baseDir, cache.Hash([]byte(src))[:16]+".json")
}

// Get returns the state of src, or nil when none is stored or it expired.
func (s *FileStore) Get(ctx context.Context, src string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.statePath(src)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}

	if st.IsExpired() || st.Source != src {
		os.Remove(path)
		return nil, nil
	}
	return &st, nil
}

// Set stores st for st.Source. A zero ExpiresAt uses DefaultStateTTL.
func (s *FileStore) Set(ctx context.Context, st *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st.UpdatedAt = time.Now()
	if st.ExpiresAt.IsZero() {
		st.ExpiresAt = st.UpdatedAt.Add(DefaultStateTTL)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.WriteFile(s.statePath(st.Source), data, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Delete removes the state of src.
func (s *FileStore) Delete(ctx context.Context, src string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.statePath(src)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Cleanup removes expired and unreadable state files.
func (s *FileStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return fmt.Errorf("read session dir: %w", err)
	}

	now := time.Now()
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.baseDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var st State
		if err := json.Unmarshal(data, &st); err != nil || now.After(st.ExpiresAt) {
			os.Remove(path)
		}
	}
	return nil
}

// Path returns the base directory for state files.
func (s *FileStore) Path() string {
	return s.baseDir
}
