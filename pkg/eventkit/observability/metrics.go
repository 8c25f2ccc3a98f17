package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records emitter metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEmit records one dispatch of an event and how many listeners
	// it was delivered to.
	RecordEmit(ctx context.Context, event string, listeners int)

	// RecordHandler records a single handler invocation with its duration
	// and error status.
	RecordHandler(ctx context.Context, event string, async bool, duration time.Duration, err error)

	// RecordAsyncSpawn records that a handler was handed off to its own
	// goroutine.
	RecordAsyncSpawn(ctx context.Context, event string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	emits          metric.Int64Counter
	emitListeners  metric.Int64Histogram
	handlerLatency metric.Float64Histogram
	handlerErrors  metric.Int64Counter
	asyncSpawns    metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("eventkit")

	emits, err := meter.Int64Counter("eventkit.emit.count",
		metric.WithDescription("Number of event dispatches"),
	)
	if err != nil {
		return nil, err
	}

	emitListeners, err := meter.Int64Histogram("eventkit.emit.listeners",
		metric.WithDescription("Listeners matched per dispatch"),
	)
	if err != nil {
		return nil, err
	}

	handlerLatency, err := meter.Float64Histogram("eventkit.handler.latency_ms",
		metric.WithDescription("Handler invocation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	handlerErrors, err := meter.Int64Counter("eventkit.handler.errors",
		metric.WithDescription("Number of contained handler failures"),
	)
	if err != nil {
		return nil, err
	}

	asyncSpawns, err := meter.Int64Counter("eventkit.handler.async_spawns",
		metric.WithDescription("Number of handlers run on their own goroutine"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		emits:          emits,
		emitListeners:  emitListeners,
		handlerLatency: handlerLatency,
		handlerErrors:  handlerErrors,
		asyncSpawns:    asyncSpawns,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordEmit records one dispatch.
func (m *otelMetrics) RecordEmit(ctx context.Context, event string, listeners int) {
	attrs := []attribute.KeyValue{
		attribute.String("event", event),
	}
	m.emits.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.emitListeners.Record(ctx, int64(listeners), metric.WithAttributes(attrs...))
}

// RecordHandler records a handler invocation.
func (m *otelMetrics) RecordHandler(ctx context.Context, event string, async bool, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("event", event),
		attribute.Bool("async", async),
	}

	m.handlerLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.handlerErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordAsyncSpawn records an async handler hand-off.
func (m *otelMetrics) RecordAsyncSpawn(ctx context.Context, event string) {
	m.asyncSpawns.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event", event),
	))
}
