// cmd/bot/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"foodfinder/internal/bot"
	"foodfinder/internal/catalog"
	"foodfinder/internal/common/config"
	"foodfinder/internal/common/database"
	stderrors "foodfinder/internal/common/errors"
	"foodfinder/internal/common/logger"
	"foodfinder/internal/common/observability"
	"foodfinder/internal/dialogue"
	"foodfinder/internal/search"
	"foodfinder/internal/session"
	"foodfinder/internal/transport/telegram"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting food finder bot...",
		zap.String("environment", cfg.App.Environment),
		zap.String("catalogSource", cfg.Catalog.Source),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Catalog source ---
	source, cleanup, err := buildCatalogSource(ctx, cfg, zapLog)
	if err != nil {
		zapLog.Fatal("catalog source init failed", zap.Error(err))
	}
	if cleanup != nil {
		defer cleanup()
	}

	// A failed initial load is fatal: the bot never serves from an empty or
	// partially loaded catalog.
	cat, err := catalog.New(ctx, source, log)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(stderrors.NewCatalogLoadFailedError(source.Name(), err)))
	}
	cat.StartRefresher(ctx, config.GetDuration(cfg.Catalog.RefreshInterval))

	// --- Session store ---
	store, storeCleanup, err := buildSessionStore(ctx, cfg, zapLog)
	if err != nil {
		zapLog.Fatal("session store init failed", zap.Error(err))
	}
	if storeCleanup != nil {
		defer storeCleanup()
	}
	session.StartSweeper(ctx, store,
		config.GetDuration(cfg.Session.EvictionThreshold),
		config.GetDuration(cfg.Session.SweepInterval),
		func(count int) {
			obs.RecordEvictions(ctx, int64(count))
			zapLog.Info("idle sessions evicted", zap.Int("count", count))
		},
	)

	// --- Core wiring ---
	engine := search.NewEngine(cfg.Search)
	parsers := dialogue.NewSlotParsers(cfg.Areas)
	machine := dialogue.NewMachine(engine, cat, parsers, log)
	service := bot.NewService(machine, store, obs, log)

	transport, err := telegram.New(cfg.Telegram, service, log)
	if err != nil {
		zapLog.Fatal("telegram transport init failed", zap.Error(err))
	}

	// --- Health & Metrics Server ---
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
			})
			mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				if cat.Snapshot() == nil {
					w.WriteHeader(http.StatusServiceUnavailable)
					json.NewEncoder(w).Encode(map[string]string{"status": "loading"})
					return
				}
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
			})
			mux.Handle("/metrics", promhttp.Handler())
			zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, mux); err != nil {
				zapLog.Error("Health/Metrics server failed", zap.Error(err))
			}
		}()
	}

	// --- Transport loop with graceful shutdown ---
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		zapLog.Info("Shutdown signal received, stopping...")
		cancel()
	}()

	if err := transport.Run(ctx); err != nil && err != context.Canceled {
		zapLog.Error("transport stopped with error", zap.Error(err))
	}

	zapLog.Info("Food finder bot stopped")
}

// buildCatalogSource picks the venue source from config. The returned
// cleanup closes the backing connection, nil when there is none.
func buildCatalogSource(ctx context.Context, cfg *config.Config, zapLog *zap.Logger) (catalog.Source, func(), error) {
	switch cfg.Catalog.Source {
	case "file":
		return catalog.NewFileSource(cfg.Catalog.Path), nil, nil

	case "postgres":
		var pg *database.PostgresClient
		err := retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			return nil, nil, err
		}
		zapLog.Info("PostgreSQL connected successfully")
		return catalog.NewPostgresSource(pg.GetDB(), cfg.Catalog.Table), func() { pg.Close() }, nil

	case "elasticsearch":
		var es *database.ElasticsearchClient
		err := retryWithBackoff(func() error {
			var err error
			es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return es.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			return nil, nil, err
		}
		zapLog.Info("Elasticsearch connected successfully")
		return catalog.NewElasticSource(es.Client, cfg.Catalog.Index), nil, nil

	default:
		return nil, nil, stderrors.NewCatalogSourceUnknownError(cfg.Catalog.Source)
	}
}

// buildSessionStore picks the session backend from config.
func buildSessionStore(ctx context.Context, cfg *config.Config, zapLog *zap.Logger) (session.Store, func(), error) {
	switch cfg.Session.Backend {
	case "memory":
		return session.NewMemoryStore(), nil, nil

	case "redis":
		var rc *database.RedisClient
		err := retryWithBackoff(func() error {
			var err error
			rc, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rc.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			return nil, nil, err
		}
		zapLog.Info("Redis connected successfully")
		ttl := config.GetDuration(cfg.Session.EvictionThreshold)
		return session.NewRedisStore(rc.GetClient(), ttl), func() { rc.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown session backend: %s", cfg.Session.Backend)
	}
}
