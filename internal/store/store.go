// Package store persists small user preferences between sessions.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	folioerrors "github.com/zaidlab/folio/pkg/errors"
)

// FileVersion is written into every preference file.
const FileVersion = "1.0"

// Store is a string key-value preference store.
type Store interface {
	// Get returns the stored value and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value and persists it before returning.
	Set(key, value string) error
}

// preferenceFile is the on-disk JSON layout.
type preferenceFile struct {
	Version string            `json:"version"`
	Values  map[string]string `json:"values"`
}

// FileStore persists preferences as a JSON document.
type FileStore struct {
	path   string
	mu     sync.RWMutex
	values map[string]string
}

// NewFileStore opens the preference file at path. A missing file yields an empty store;
// the directory is created lazily on the first write.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, values: make(map[string]string)}
	if err := s.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the preference file from disk.
func (s *FileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return folioerrors.NewStorageError("read", s.path, err)
	}

	var file preferenceFile
	if err := json.Unmarshal(data, &file); err != nil {
		return folioerrors.NewStorageError("decode", s.path, err)
	}

	s.values = file.Values
	if s.values == nil {
		s.values = make(map[string]string)
	}
	return nil
}

// Get returns the cached value for key.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

// Set updates key and writes the file atomically. The in-memory value is kept even when the
// write fails so the current session still sees it.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()

	return s.save()
}

func (s *FileStore) save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := json.MarshalIndent(preferenceFile{Version: FileVersion, Values: s.values}, "", "  ")
	if err != nil {
		return folioerrors.NewStorageError("encode", s.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return folioerrors.NewStorageError("mkdir", filepath.Dir(s.path), err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return folioerrors.NewStorageError("write", tmpPath, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return folioerrors.NewStorageError("rename", s.path, fmt.Errorf("replace preference file: %w", err))
	}

	return nil
}

// Memory is an in-process Store. It backs tests and sessions with no usable state dir.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	writes int
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements Store.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	return value, ok, nil
}

// Set implements Store.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	m.writes++
	return nil
}

// Writes returns how many Set calls the store has received.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
