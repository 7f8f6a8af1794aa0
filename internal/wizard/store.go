package wizard

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNoState is returned by Store.Load when nothing has been saved.
var ErrNoState = errors.New("wizard: no persisted state")

// Envelope is the versioned payload written to a Store.
type Envelope struct {
	Version int             `json:"v"`
	Step    string          `json:"step,omitempty"`
	Input   json.RawMessage `json:"input"`
}

// Store persists a single wizard payload under a fixed key.
type Store interface {
	Load() (Envelope, error)
	Save(Envelope) error
	Clear() error
}

// MemoryStore keeps the payload in memory.
type MemoryStore struct {
	mu  sync.Mutex
	env *Envelope
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Load() (Envelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.env == nil {
		return Envelope{}, ErrNoState
	}
	return *s.env, nil
}

func (s *MemoryStore) Save(env Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.env = &env
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.env = nil
	return nil
}

// FileStore persists the payload as JSON in dir/key.json.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to dir/key.json.
func NewFileStore(dir, key string) *FileStore {
	return &FileStore{path: filepath.Join(dir, key+".json")}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load() (Envelope, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Envelope{}, ErrNoState
	}
	if err != nil {
		return Envelope{}, fmt.Errorf("wizard: read %s: %w", s.path, err)
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return env, nil
}

func (s *FileStore) Save(env Envelope) error {
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("wizard: mkdir: %w", err)
	}
	return os.WriteFile(s.path, raw, 0o600)
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("wizard: remove %s: %w", s.path, err)
	}
	return nil
}
