// internal/transport/telegram/telegram.go
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"foodfinder/internal/bot"
	"foodfinder/internal/common/config"
	stderrors "foodfinder/internal/common/errors"
	"foodfinder/internal/common/logger"
)

// Transport is the Telegram long-polling adapter. It turns updates into
// OnMessage calls and renders the structured responses back as chat
// messages. All dialogue semantics live behind the bot service; this layer
// only moves and formats text.
type Transport struct {
	api     *tgbotapi.BotAPI
	service *bot.Service
	cfg     config.TelegramConfig
	allowed map[string]bool
	logger  logger.Logger
}

func New(cfg config.TelegramConfig, service *bot.Service, log logger.Logger) (*Transport, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram api init: %w", err)
	}
	api.Buffer = cfg.UpdateBuffer

	allowed := make(map[string]bool, len(cfg.AllowedUsers))
	for _, u := range cfg.AllowedUsers {
		allowed[u] = true
	}

	return &Transport{
		api:     api,
		service: service,
		cfg:     cfg,
		allowed: allowed,
		logger:  log.WithFields(map[string]interface{}{"component": "telegram"}),
	}, nil
}

// Run polls for updates and dispatches them to a worker pool until the
// context is cancelled. Per-conversation ordering is preserved by the bot
// service's locking, not here, so workers can drain the queue freely.
func (t *Transport) Run(ctx context.Context) error {
	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = t.cfg.PollTimeout

	updates := t.api.GetUpdatesChan(updateCfg)

	t.logger.Info("telegram transport started", map[string]interface{}{
		"account": t.api.Self.UserName,
		"workers": t.cfg.WorkerPoolSize,
	})

	var wg sync.WaitGroup
	for i := 0; i < t.cfg.WorkerPoolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case update, ok := <-updates:
					if !ok {
						return
					}
					t.handleUpdate(ctx, update)
				}
			}
		}()
	}

	<-ctx.Done()
	t.api.StopReceivingUpdates()
	wg.Wait()
	return ctx.Err()
}

func (t *Transport) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	if len(t.allowed) > 0 && !t.allowed[msg.From.UserName] {
		t.logger.Warn("message from disallowed user dropped", map[string]interface{}{
			"username": msg.From.UserName,
		})
		return
	}

	conversationID := strconv.FormatInt(msg.Chat.ID, 10)
	text := msg.Text
	// A shared location arrives as coordinates, which the location slot
	// parser already understands in text form.
	if msg.Location != nil {
		text = fmt.Sprintf("%f, %f", msg.Location.Latitude, msg.Location.Longitude)
	}

	resp, err := t.service.OnMessage(ctx, conversationID, text, time.Now())
	if err != nil {
		t.logger.Error("message handling failed", map[string]interface{}{
			"conversationId": conversationID,
			"error":          err.Error(),
		})
		t.send(msg.Chat.ID, "Something went wrong. Please try again.")
		return
	}

	t.send(msg.Chat.ID, Render(resp))
}

func (t *Transport) send(chatID int64, text string) {
	out := tgbotapi.NewMessage(chatID, text)
	if _, err := t.api.Send(out); err != nil {
		sendErr := stderrors.NewTransportSendFailedError(err)
		t.logger.Error("send failed", map[string]interface{}{
			"chatId": chatID,
			"error":  sendErr.Error(),
		})
	}
}
