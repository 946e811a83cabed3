package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type persistedData struct {
	Values map[string]string `json:"values"`
}

// Store is a port.KeyValueStore kept in a single JSON file.
// Every Set rewrites the file.
type Store struct {
	mu       sync.RWMutex
	filePath string
	values   map[string]string
}

// New opens the store at filePath. A missing file is an empty store; a
// corrupt one is an error so the caller can decide whether to start over.
func New(filePath string) (*Store, error) {
	s := &Store{
		filePath: filePath,
		values:   make(map[string]string),
	}
	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	var pd persistedData
	if err := json.Unmarshal(data, &pd); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range pd.Values {
		s.values[k] = v
	}
	return nil
}

func (s *Store) saveLocked() error {
	pd := persistedData{Values: s.values}
	data, err := json.MarshalIndent(pd, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	// Written beside the target and renamed into place
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.filePath)
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.saveLocked()
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.filePath
}
