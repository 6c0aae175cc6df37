package session

import (
	"context"
	"encoding/json"
	"time"

	"folio/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "folio:session:"

// RedisStore keeps session state in Redis with a sliding TTL. The per-session
// mutex is process-local, so the serialization contract holds for a single
// server instance; multi-instance deployments must pin a session to one
// instance for the contract to carry over.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	locks  *keyedMutex
}

// NewRedisStore returns a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, locks: newKeyedMutex()}
}

func (s *RedisStore) Acquire(sessionID string) func() {
	return s.locks.acquire(sessionID)
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.SessionState, error) {
	key := sessionKeyPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return models.NewSessionState(sessionID), nil
	}
	if err != nil {
		return nil, err
	}
	var state models.SessionState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *RedisStore) Put(ctx context.Context, sessionID string, state *models.SessionState) error {
	key := sessionKeyPrefix + sessionID
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}
