// internal/bot/service.go
package bot

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"

	stderrors "foodfinder/internal/common/errors"
	"foodfinder/internal/common/logger"
	"foodfinder/internal/common/metrics"
	"foodfinder/internal/common/observability"
	"foodfinder/internal/dialogue"
	"foodfinder/internal/models"
	"foodfinder/internal/session"
)

const lockStripes = 64

// Service is the inbound surface of the bot. It owns the session round-trip
// around the dialogue machine and serializes turns per conversation, so two
// messages from the same user can never interleave their state updates.
// Different conversations proceed concurrently.
type Service struct {
	machine *dialogue.Machine
	store   session.Store
	obs     *observability.Observability
	logger  logger.Logger
	locks   [lockStripes]sync.Mutex
}

func NewService(machine *dialogue.Machine, store session.Store, obs *observability.Observability, log logger.Logger) *Service {
	return &Service{
		machine: machine,
		store:   store,
		obs:     obs,
		logger:  log.WithFields(map[string]interface{}{"component": "bot"}),
	}
}

// OnMessage processes one inbound message for a conversation and returns the
// response to deliver. An unknown conversation id starts a fresh dialogue.
// The clock is passed in rather than read here so turn handling stays
// deterministic under test.
func (s *Service) OnMessage(ctx context.Context, conversationID, text string, now time.Time) (models.DialogueResponse, error) {
	turnID := uuid.New().String()
	started := time.Now()

	lock := s.lockFor(conversationID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.store.Get(ctx, conversationID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			metrics.MessagesFailed.WithLabelValues(string(stderrors.ErrCodeSessionStoreFailed)).Inc()
			return models.DialogueResponse{}, stderrors.NewSessionStoreFailedError(err)
		}
		state = models.NewConversationState(conversationID, now)
	}

	resp, err := s.machine.HandleInput(state, text, now)
	if err != nil {
		metrics.MessagesFailed.WithLabelValues(errorCode(err)).Inc()
		s.obs.RecordTurn(ctx, "error")
		s.logger.Error("turn failed", map[string]interface{}{
			"turnId":         turnID,
			"conversationId": conversationID,
			"error":          err.Error(),
		})
		return models.DialogueResponse{}, err
	}

	if err := s.store.Put(ctx, state); err != nil {
		metrics.MessagesFailed.WithLabelValues(string(stderrors.ErrCodeSessionStoreFailed)).Inc()
		s.obs.RecordTurn(ctx, "error")
		return models.DialogueResponse{}, stderrors.NewSessionStoreFailedError(err)
	}

	elapsed := time.Since(started)
	metrics.MessagesProcessed.WithLabelValues(string(resp.Kind)).Inc()
	metrics.MessageDuration.WithLabelValues(string(resp.Kind)).Observe(elapsed.Seconds())
	s.obs.RecordTurn(ctx, "ok")
	s.obs.RecordTurnDuration(ctx, elapsed, "ok")

	s.logger.Debug("turn processed", map[string]interface{}{
		"turnId":         turnID,
		"conversationId": conversationID,
		"step":           state.Step.String(),
		"responseKind":   resp.Kind,
		"durationMs":     elapsed.Milliseconds(),
	})
	return resp, nil
}

// lockFor maps a conversation id onto one of a fixed set of stripe locks.
// Colliding conversations serialize needlessly but never deadlock, and the
// lock table stays bounded no matter how many conversations pass through.
func (s *Service) lockFor(conversationID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(conversationID))
	return &s.locks[h.Sum32()%lockStripes]
}

func errorCode(err error) string {
	var std *stderrors.StandardError
	if errors.As(err, &std) {
		return string(std.Code)
	}
	return "INTERNAL"
}
