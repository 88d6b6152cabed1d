package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/brian/letter-agent/internal/types"
)

// FileStore keeps one JSON snapshot per session under a directory.
type FileStore struct {
	Dir string
}

// NewFileStore creates a store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &FileStore{Dir: dir}, nil
}

func (fs *FileStore) path(id string) string {
	return filepath.Join(fs.Dir, "session_"+id+".json")
}

// Save writes the session snapshot, replacing any previous one.
func (fs *FileStore) Save(_ context.Context, s *types.Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(fs.path(s.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write session %s: %w", s.ID, err)
	}
	return nil
}

// Load reads a session snapshot by ID.
func (fs *FileStore) Load(_ context.Context, id string) (*types.Session, error) {
	data, err := os.ReadFile(fs.path(id))
	if err != nil {
		return nil, fmt.Errorf("failed to read session %s: %w", id, err)
	}
	var s types.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", id, err)
	}
	if s.Variants == nil {
		s.Variants = make(map[string]*types.Letter)
	}
	if s.States == nil {
		s.States = make(map[string]types.ReviewState)
	}
	return &s, nil
}

// Latest returns the most recent session ID on disk. Session IDs are
// timestamp-derived, so lexicographic order is chronological.
func (fs *FileStore) Latest() (string, error) {
	entries, err := os.ReadDir(fs.Dir)
	if err != nil {
		return "", fmt.Errorf("failed to list sessions: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "session_") && strings.HasSuffix(name, ".json") {
			ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(name, "session_"), ".json"))
		}
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no saved sessions in %s", fs.Dir)
	}
	sort.Strings(ids)
	return ids[len(ids)-1], nil
}
