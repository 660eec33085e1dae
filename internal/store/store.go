package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/calltape/calltape/internal/record"
)

// Store is a flat-directory record store. One JSON file per recorded call,
// named record_<identifier>_<timestamp>.json.
type Store struct {
	dir string
}

// Open creates or opens a recordings directory.
// This function is idempotent - safe to call on an existing directory.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("recordings directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create recordings directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the recordings directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Write serializes a record and writes it under the given filename.
// Overwrites silently if the filename already exists; same-microsecond
// filename collisions are not detected.
func (s *Store) Write(rec *record.Record, filename string) error {
	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return fmt.Errorf("serialize record %s: %w", filename, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return fmt.Errorf("write record %s: %w", filename, err)
	}
	return nil
}

// Read deserializes the record stored under filename.
func (s *Store) Read(filename string) (*record.Record, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, fmt.Errorf("read record %s: %w", filename, err)
	}
	var rec record.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse record %s: %w", filename, err)
	}
	return &rec, nil
}

// Find returns the filenames of every stored recording for a function
// identifier. Order is filesystem enumeration order and must be treated as
// unordered by callers.
func (s *Store) Find(identifier string) ([]string, error) {
	return s.glob(record.Pattern(identifier))
}

// FindAll returns the filenames of every recording in the store,
// regardless of identifier.
func (s *Store) FindAll() ([]string, error) {
	return s.glob("record_*" + record.Extension)
}

func (s *Store) glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("enumerate recordings: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	return names, nil
}
