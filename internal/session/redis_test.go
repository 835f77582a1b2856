// internal/session/redis_test.go
package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodfinder/internal/models"
)

func newRedisTestStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newRedisTestStore(t, time.Hour)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	state := models.NewConversationState("c1", now)
	state.Step = models.StepAwaitingPrice
	state.Query.CuisineTags = []string{"sushi"}
	state.CuisineResolved = true
	require.NoError(t, store.Put(ctx, state))

	got, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, models.StepAwaitingPrice, got.Step)
	assert.Equal(t, []string{"sushi"}, got.Query.CuisineTags)
	assert.True(t, got.CuisineResolved)
	assert.True(t, got.LastActivity.Equal(now))
}

func TestRedisStoreMiss(t *testing.T) {
	store, _ := newRedisTestStore(t, time.Hour)

	_, err := store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreCorruptRecordTreatedAsMiss(t *testing.T) {
	store, mr := newRedisTestStore(t, time.Hour)

	require.NoError(t, mr.Set("conv:c1", "{not json"))

	_, err := store.Get(context.Background(), "c1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreTTLExpiry(t *testing.T) {
	store, mr := newRedisTestStore(t, 30*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, models.NewConversationState("c1", time.Now())))

	mr.FastForward(29 * time.Minute)
	_, err := store.Get(ctx, "c1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	_, err = store.Get(ctx, "c1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newRedisTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, models.NewConversationState("c1", time.Now())))
	require.NoError(t, store.Delete(ctx, "c1"))

	_, err := store.Get(ctx, "c1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreEvictOlderThanIsNoOp(t *testing.T) {
	store, _ := newRedisTestStore(t, time.Hour)

	count, err := store.EvictOlderThan(context.Background(), time.Minute, time.Now())
	require.NoError(t, err)
	assert.Zero(t, count)
}
