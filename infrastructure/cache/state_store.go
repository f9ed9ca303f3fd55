package cache

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"social-publisher/infrastructure/logger"
)

const stateTTL = 10 * time.Minute

// StateStore holds OAuth state nonces for the login round trip. It is
// transient, process-scoped bookkeeping and never authoritative: losing an
// entry only forces the user to restart the OAuth flow. Backed by Redis when
// available so restarts mid-flow survive; otherwise an in-memory map.
type StateStore struct {
	redis *redis.Client

	mu     sync.Mutex
	states map[string]time.Time // state -> expiry
}

func NewStateStore(redisClient *redis.Client) *StateStore {
	return &StateStore{redis: redisClient, states: map[string]time.Time{}}
}

// Issue creates and records a fresh state nonce.
func (s *StateStore) Issue(ctx context.Context) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	state := hex.EncodeToString(b)

	if s.redis != nil {
		if err := s.redis.Set(ctx, stateKey(state), "1", stateTTL).Err(); err == nil {
			return state
		}
		logger.GetLogger().Warn("Redis unavailable for state store, using in-memory fallback")
	}
	s.mu.Lock()
	s.states[state] = time.Now().Add(stateTTL)
	s.mu.Unlock()
	return state
}

// Consume validates a state nonce and removes it. A nonce is single-use.
func (s *StateStore) Consume(ctx context.Context, state string) bool {
	if state == "" {
		return false
	}
	if s.redis != nil {
		n, err := s.redis.Del(ctx, stateKey(state)).Result()
		if err == nil {
			if n > 0 {
				return true
			}
			// Not in redis; fall through to the in-memory map in case it
			// was issued while redis was down.
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.states[state]
	if !ok {
		return false
	}
	delete(s.states, state)
	return time.Now().Before(exp)
}

// Active returns the number of states currently pending. Debug surface only.
func (s *StateStore) Active(ctx context.Context) int {
	s.mu.Lock()
	n := 0
	now := time.Now()
	for _, exp := range s.states {
		if now.Before(exp) {
			n++
		}
	}
	s.mu.Unlock()
	if s.redis != nil {
		keys, err := s.redis.Keys(ctx, "oauth_state:*").Result()
		if err == nil {
			n += len(keys)
		}
	}
	return n
}

func stateKey(state string) string {
	return "oauth_state:" + state
}
