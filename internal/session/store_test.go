// internal/session/store_test.go
package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodfinder/internal/models"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	state := models.NewConversationState("c1", now)
	state.Step = models.StepAwaitingCuisine
	require.NoError(t, store.Put(ctx, state))

	got, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, models.StepAwaitingCuisine, got.Step)
	assert.Equal(t, now, got.LastActivity)
}

func TestMemoryStoreMiss(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCopiesState(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	state := models.NewConversationState("c1", now)
	require.NoError(t, store.Put(ctx, state))

	// Mutating the caller's copy after Put must not leak into the store.
	state.Step = models.StepDone

	got, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, models.StepAwaitingLocation, got.Step)

	// Nor may mutating what Get returned change what the next Get sees.
	got.Step = models.StepReady
	again, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, models.StepAwaitingLocation, again.Step)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, models.NewConversationState("c1", time.Now())))
	require.NoError(t, store.Delete(ctx, "c1"))

	_, err := store.Get(ctx, "c1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent id is not an error.
	assert.NoError(t, store.Delete(ctx, "c1"))
}

func TestMemoryStoreEvictOlderThan(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	fresh := models.NewConversationState("fresh", now.Add(-10*time.Minute))
	stale := models.NewConversationState("stale", now.Add(-2*time.Hour))
	boundary := models.NewConversationState("boundary", now.Add(-30*time.Minute))
	require.NoError(t, store.Put(ctx, fresh))
	require.NoError(t, store.Put(ctx, stale))
	require.NoError(t, store.Put(ctx, boundary))

	evicted, err := store.EvictOlderThan(ctx, 30*time.Minute, now)
	require.NoError(t, err)
	assert.Equal(t, 1, evicted)

	_, err = store.Get(ctx, "stale")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(ctx, "fresh")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "boundary")
	assert.NoError(t, err, "activity exactly at the threshold survives")

	assert.Equal(t, 2, store.Len())
}

func TestMemoryStoreEvictionStartsConversationOver(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	state := models.NewConversationState("c1", now)
	state.Step = models.StepAwaitingPrice
	require.NoError(t, store.Put(ctx, state))

	_, err := store.EvictOlderThan(ctx, 30*time.Minute, now.Add(time.Hour))
	require.NoError(t, err)

	// The next inbound message sees a miss and the dialogue starts from the
	// beginning, which is the defined recovery for expired sessions.
	_, err = store.Get(ctx, "c1")
	assert.ErrorIs(t, err, ErrNotFound)
}
