package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/brian/letter-agent/internal/types"
)

// MemoryStore is an in-memory Store for tests. Sessions are stored as JSON
// so loads return independent copies, matching the file store's behavior.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]byte)}
}

// Save stores a snapshot of the session.
func (ms *MemoryStore) Save(_ context.Context, s *types.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.sessions[s.ID] = data
	return nil
}

// Load retrieves a stored session by ID.
func (ms *MemoryStore) Load(_ context.Context, id string) (*types.Session, error) {
	ms.mu.Lock()
	data, ok := ms.sessions[id]
	ms.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
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
