package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taskdeck/backend/internal/domain"
)

// Store persists the whole task list as one JSON array at a well-known path.
// It backs the standalone variant and doubles as the offline cache of the
// server-backed variant.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the saved list. A missing file is an empty list, not an error.
func (s *Store) Load() ([]domain.Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Task{}, nil
		}
		return nil, fmt.Errorf("read task store: %w", err)
	}

	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse task store %s: %w", s.path, err)
	}
	return tasks, nil
}

// Save writes the list wholesale, replacing whatever was there.
func (s *Store) Save(tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode task store: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write task store: %w", err)
	}
	return nil
}
