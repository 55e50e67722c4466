package form

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"acdata/internal/model"
)

type StateStore interface {
	Load(ctx context.Context, sessionID string) (model.FormState, error)
	Save(ctx context.Context, sessionID string, state model.FormState) error
	Delete(ctx context.Context, sessionID string) error
}

const sessionTTL = 30 * time.Minute

// RedisStore keeps the form state as JSON, one key per session.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func stateKey(sessionID string) string {
	return "form:" + sessionID
}

func (s *RedisStore) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return sessionTTL
}

// Load returns an empty state for unknown or expired sessions.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (model.FormState, error) {
	val, err := s.Client.Get(ctx, stateKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return model.FormState{}, nil
	}
	if err != nil {
		return model.FormState{}, err
	}

	var state model.FormState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return model.FormState{}, nil
	}

	// Estende a expiração sempre que o valor é lido
	s.Client.Expire(ctx, stateKey(sessionID), s.ttl())
	return state, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, state model.FormState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, stateKey(sessionID), b, s.ttl()).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, stateKey(sessionID)).Err()
}

// MemoryStore is used when no Redis is configured. States are copied in and
// out so callers never share pointers with the store.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]model.FormState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]model.FormState)}
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) (model.FormState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyState(m.states[sessionID]), nil
}

func (m *MemoryStore) Save(_ context.Context, sessionID string, state model.FormState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[sessionID] = copyState(state)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, sessionID)
	return nil
}

func copyState(s model.FormState) model.FormState {
	if s.Data != nil {
		d := s.Data.Clone()
		s.Data = &d
	}
	return s
}
