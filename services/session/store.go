// Package session holds conversational state keyed by an opaque session id.
//
// Concurrency contract: callers must wrap each read-modify-write turn in
// Acquire/release for the session id they touch. Turns for different ids run
// in parallel; turns for the same id are serialized, so an in-flight turn can
// never race another on the same booking draft.
package session

import (
	"context"
	"sync"

	"folio/models"
)

// Store is the session memory collaborator.
type Store interface {
	// Acquire takes the per-session mutex and returns its release func.
	Acquire(sessionID string) (release func())
	// Get returns the stored state, or a fresh idle state for an unknown id.
	Get(ctx context.Context, sessionID string) (*models.SessionState, error)
	// Put replaces the stored state for the id.
	Put(ctx context.Context, sessionID string, state *models.SessionState) error
}

// keyedMutex hands out one mutex per session id, created on first use.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) acquire(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
