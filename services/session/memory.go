package session

import (
	"context"
	"encoding/json"
	"sync"

	"folio/models"
)

// MemoryStore keeps session state in process memory. State lives for the
// process lifetime; ids are never expired or destroyed.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
	locks    *keyedMutex
}

// NewMemoryStore returns an empty in-process session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]byte),
		locks:    newKeyedMutex(),
	}
}

func (s *MemoryStore) Acquire(sessionID string) func() {
	return s.locks.acquire(sessionID)
}

// Get returns a deep copy so callers can mutate freely before Put.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*models.SessionState, error) {
	s.mu.RLock()
	data, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return models.NewSessionState(sessionID), nil
	}

	var state models.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *MemoryStore) Put(ctx context.Context, sessionID string, state *models.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sessions[sessionID] = data
	s.mu.Unlock()
	return nil
}
