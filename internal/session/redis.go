// internal/session/redis.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"foodfinder/internal/models"
)

const redisKeyPrefix = "conv:"

// RedisStore keeps dialogue state in Redis with the eviction threshold as
// key TTL, so idle conversations expire without a sweeper. Suitable when
// more than one bot instance shares the session space.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, conversationID string) (*models.ConversationState, error) {
	val, err := s.client.Get(ctx, redisKeyPrefix+conversationID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis session get: %w", err)
	}

	var state models.ConversationState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		// A corrupt record is unrecoverable; treat it as absent so the
		// conversation restarts cleanly.
		return nil, ErrNotFound
	}
	return &state, nil
}

func (s *RedisStore) Put(ctx context.Context, state *models.ConversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("redis session encode: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+state.ConversationID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis session put: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, conversationID string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+conversationID).Err(); err != nil {
		return fmt.Errorf("redis session delete: %w", err)
	}
	return nil
}

// EvictOlderThan is a no-op: Redis expires keys by TTL on its own.
func (s *RedisStore) EvictOlderThan(_ context.Context, _ time.Duration, _ time.Time) (int, error) {
	return 0, nil
}
