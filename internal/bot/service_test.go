// internal/bot/service_test.go
package bot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodfinder/internal/catalog"
	"foodfinder/internal/common/config"
	stderrors "foodfinder/internal/common/errors"
	"foodfinder/internal/common/logger"
	"foodfinder/internal/common/observability"
	"foodfinder/internal/dialogue"
	"foodfinder/internal/models"
	"foodfinder/internal/search"
	"foodfinder/internal/session"
)

type staticSource struct {
	venues []models.Venue
}

func (s *staticSource) Load(ctx context.Context) ([]models.Venue, error) { return s.venues, nil }
func (s *staticSource) Name() string                                     { return "static" }

// failingStore wraps a real store and fails the chosen operations.
type failingStore struct {
	session.Store
	failGet bool
	failPut bool
}

func (f *failingStore) Get(ctx context.Context, id string) (*models.ConversationState, error) {
	if f.failGet {
		return nil, errors.New("backend unavailable")
	}
	return f.Store.Get(ctx, id)
}

func (f *failingStore) Put(ctx context.Context, state *models.ConversationState) error {
	if f.failPut {
		return errors.New("backend unavailable")
	}
	return f.Store.Put(ctx, state)
}

func newTestService(t *testing.T, store session.Store) *Service {
	t.Helper()

	log := logger.NewTestLogger(t)
	venues := []models.Venue{
		{
			ID:          "v1",
			Name:        "Sakura Sushi",
			Location:    models.Coordinate{Lat: 42.8746, Lon: 74.5698},
			CuisineTags: []string{"sushi"},
			PriceTier:   models.PriceLow,
			Rating:      4.5,
		},
	}
	cat, err := catalog.New(context.Background(), &staticSource{venues: venues}, log)
	require.NoError(t, err)

	engine := search.NewEngine(config.SearchConfig{
		RadiusKm:   5,
		MaxResults: 10,
		Weights:    config.WeightsConfig{Distance: 0.5, Tags: 0.3, Rating: 0.2},
	})
	parsers := dialogue.NewSlotParsers(map[string]config.AreaConfig{
		"downtown": {Lat: 42.8746, Lon: 74.5698},
	})
	machine := dialogue.NewMachine(engine, cat, parsers, log)

	return NewService(machine, store, &observability.Observability{}, log)
}

func TestOnMessageCreatesConversation(t *testing.T) {
	store := session.NewMemoryStore()
	svc := newTestService(t, store)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	resp, err := svc.OnMessage(context.Background(), "conv-1", "hello there", now)
	require.NoError(t, err)
	assert.Equal(t, models.ResponseReprompt, resp.Kind)

	state, err := store.Get(context.Background(), "conv-1")
	require.NoError(t, err)
	assert.Equal(t, models.StepAwaitingLocation, state.Step)
	assert.Equal(t, now, state.LastActivity)
}

func TestOnMessagePersistsProgress(t *testing.T) {
	store := session.NewMemoryStore()
	svc := newTestService(t, store)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	_, err := svc.OnMessage(ctx, "conv-1", "downtown", now)
	require.NoError(t, err)

	state, err := store.Get(ctx, "conv-1")
	require.NoError(t, err)
	require.Equal(t, models.StepAwaitingCuisine, state.Step)

	resp, err := svc.OnMessage(ctx, "conv-1", "cheap sushi", now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, models.ResponseResults, resp.Kind)

	state, err = store.Get(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, models.StepDone, state.Step)
	assert.Equal(t, now.Add(time.Minute), state.LastActivity)
}

func TestOnMessageIsolatesConversations(t *testing.T) {
	store := session.NewMemoryStore()
	svc := newTestService(t, store)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	_, err := svc.OnMessage(ctx, "conv-a", "downtown", now)
	require.NoError(t, err)
	_, err = svc.OnMessage(ctx, "conv-b", "gibberish", now)
	require.NoError(t, err)

	a, err := store.Get(ctx, "conv-a")
	require.NoError(t, err)
	b, err := store.Get(ctx, "conv-b")
	require.NoError(t, err)
	assert.Equal(t, models.StepAwaitingCuisine, a.Step)
	assert.Equal(t, models.StepAwaitingLocation, b.Step)
}

func TestOnMessageStoreFailures(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("get failure surfaces as store error", func(t *testing.T) {
		svc := newTestService(t, &failingStore{Store: session.NewMemoryStore(), failGet: true})

		_, err := svc.OnMessage(context.Background(), "conv-1", "downtown", now)
		require.Error(t, err)
		var std *stderrors.StandardError
		require.ErrorAs(t, err, &std)
		assert.Equal(t, stderrors.ErrCodeSessionStoreFailed, std.Code)
	})

	t.Run("put failure surfaces as store error", func(t *testing.T) {
		svc := newTestService(t, &failingStore{Store: session.NewMemoryStore(), failPut: true})

		_, err := svc.OnMessage(context.Background(), "conv-1", "downtown", now)
		require.Error(t, err)
		var std *stderrors.StandardError
		require.ErrorAs(t, err, &std)
		assert.Equal(t, stderrors.ErrCodeSessionStoreFailed, std.Code)
	})
}

func TestOnMessageConcurrentSameConversation(t *testing.T) {
	store := session.NewMemoryStore()
	svc := newTestService(t, store)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.OnMessage(ctx, "conv-1", "downtown", now)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	state, err := store.Get(ctx, "conv-1")
	require.NoError(t, err)
	// Every turn after the first re-parses "downtown" against a query whose
	// location is already set, so the state converges regardless of order.
	assert.Equal(t, models.StepAwaitingCuisine, state.Step)
}
