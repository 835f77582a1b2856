package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider  *metric.MeterProvider
	meter          otelmetric.Meter
	turnCounter    otelmetric.Int64Counter
	turnDuration   otelmetric.Float64Histogram
	catalogReloads otelmetric.Int64Counter
	sessionEvicts  otelmetric.Int64Counter
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	turnCounter, _ := meter.Int64Counter(
		"dialogue.turns",
		otelmetric.WithDescription("Number of dialogue turns processed"),
	)

	turnDuration, _ := meter.Float64Histogram(
		"dialogue.turn.duration",
		otelmetric.WithDescription("Dialogue turn processing duration"),
		otelmetric.WithUnit("ms"),
	)

	catalogReloads, _ := meter.Int64Counter(
		"catalog.reloads",
		otelmetric.WithDescription("Number of catalog reload attempts"),
	)

	sessionEvicts, _ := meter.Int64Counter(
		"sessions.evicted",
		otelmetric.WithDescription("Number of sessions evicted for inactivity"),
	)

	return &Observability{
		meterProvider:  provider,
		meter:          meter,
		turnCounter:    turnCounter,
		turnDuration:   turnDuration,
		catalogReloads: catalogReloads,
		sessionEvicts:  sessionEvicts,
	}
}

func (o *Observability) RecordTurn(ctx context.Context, status string) {
	if o.turnCounter != nil {
		o.turnCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordTurnDuration(ctx context.Context, duration time.Duration, status string) {
	if o.turnDuration != nil {
		o.turnDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordCatalogReload(ctx context.Context, status string) {
	if o.catalogReloads != nil {
		o.catalogReloads.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordEvictions(ctx context.Context, count int64) {
	if o.sessionEvicts != nil {
		o.sessionEvicts.Add(ctx, count)
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
