package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"habitkeep/internal/logger"
)

// JSONStore keeps the whole key-value map in a single JSON file. This is
// the closest analog to the browser-profile storage the data model was
// designed around.
type JSONStore struct {
	path string
	data map[string]string
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: ExpandPath(configPath),
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.data = make(map[string]string)
	return s.save()
}

func (s *JSONStore) Load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'habitkeep init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.data = make(map[string]string)
	if err := json.Unmarshal(raw, &s.data); err != nil {
		// Corrupt state degrades to an empty store rather than refusing
		// to start. Individual values are re-validated by callers anyway.
		logger.Warn("Storage file is not valid JSON, starting empty", "path", s.path, "error", err)
		s.data = make(map[string]string)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Get(key string) (string, bool, error) {
	if s.data == nil {
		return "", false, fmt.Errorf("storage not loaded")
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *JSONStore) Set(key, value string) error {
	if s.data == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.data[key] = value
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	if s.data == nil {
		return fmt.Errorf("storage not loaded")
	}
	delete(s.data, key)
	return s.save()
}

func (s *JSONStore) Keys() ([]string, error) {
	if s.data == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

func (s *JSONStore) ConfigPath() string {
	return s.path
}
