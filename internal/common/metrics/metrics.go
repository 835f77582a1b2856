// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_processed_total",
			Help: "Total number of inbound messages processed",
		},
		[]string{"response_kind"},
	)

	MessagesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_failed_total",
			Help: "Total number of inbound messages that failed processing",
		},
		[]string{"error_code"},
	)

	MessageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "bot_message_duration_seconds",
			Help: "Duration of inbound message handling in seconds",
		},
		[]string{"response_kind"},
	)

	SearchesRun = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_searches_total",
			Help: "Total number of catalog searches executed",
		},
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bot_search_results",
			Help:    "Number of venues returned per search",
			Buckets: prometheus.LinearBuckets(0, 2, 11),
		},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bot_sessions_active",
			Help: "Number of conversation sessions currently held",
		},
	)

	SessionsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_sessions_evicted_total",
			Help: "Total number of sessions evicted for inactivity",
		},
	)

	CatalogVenues = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bot_catalog_venues",
			Help: "Number of venues in the current catalog snapshot",
		},
	)

	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_catalog_reloads_total",
			Help: "Total number of catalog reload attempts",
		},
		[]string{"status"},
	)
)
