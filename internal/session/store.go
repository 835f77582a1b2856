// internal/session/store.go
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"foodfinder/internal/common/metrics"
	"foodfinder/internal/models"
)

// ErrNotFound marks a state lookup miss. Callers treat it as "start a new
// conversation", never as a failure.
var ErrNotFound = errors.New("SESSION_NOT_FOUND")

// Store maps conversation ids to dialogue state. Implementations hold at
// most one state per conversation id.
type Store interface {
	Get(ctx context.Context, conversationID string) (*models.ConversationState, error)
	Put(ctx context.Context, state *models.ConversationState) error
	Delete(ctx context.Context, conversationID string) error
	// EvictOlderThan removes states whose last activity predates
	// now-threshold and returns how many were removed.
	EvictOlderThan(ctx context.Context, threshold time.Duration, now time.Time) (int, error)
}

// MemoryStore is the in-process backend. A RWMutex guards the map; states
// are copied in and out so callers never share memory with the store.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]models.ConversationState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states: make(map[string]models.ConversationState),
	}
}

func (s *MemoryStore) Get(_ context.Context, conversationID string) (*models.ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[conversationID]
	if !ok {
		return nil, ErrNotFound
	}
	return &state, nil
}

func (s *MemoryStore) Put(_ context.Context, state *models.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[state.ConversationID] = *state
	metrics.SessionsActive.Set(float64(len(s.states)))
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, conversationID)
	metrics.SessionsActive.Set(float64(len(s.states)))
	return nil
}

func (s *MemoryStore) EvictOlderThan(_ context.Context, threshold time.Duration, now time.Time) (int, error) {
	cutoff := now.Add(-threshold)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, state := range s.states {
		if state.IdleSince(cutoff) {
			delete(s.states, id)
			evicted++
		}
	}

	if evicted > 0 {
		metrics.SessionsEvicted.Add(float64(evicted))
	}
	metrics.SessionsActive.Set(float64(len(s.states)))
	return evicted, nil
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}

// StartSweeper evicts idle sessions on the given interval until the context
// is cancelled.
func StartSweeper(ctx context.Context, store Store, threshold, interval time.Duration, onEvict func(count int)) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				count, err := store.EvictOlderThan(ctx, threshold, time.Now())
				if err == nil && count > 0 && onEvict != nil {
					onEvict(count)
				}
			}
		}
	}()
}
