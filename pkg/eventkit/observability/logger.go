// Package observability provides opt-in observability features for
// eventkit: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds emitter context to a logger.
// Returns a new logger with emitter_type and event fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "Connection", "connected")
//	enriched.Debug("dispatching") // includes emitter_type, event
func EnrichLogger(logger *slog.Logger, typeName, event string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("emitter_type", typeName),
		slog.String("event", event),
	)
}

// LogEmit logs the start of a dispatch pass.
func LogEmit(logger *slog.Logger, typeName, event string, listeners int) {
	if logger == nil {
		return
	}
	logger.Debug("dispatching event",
		slog.String("emitter_type", typeName),
		slog.String("event", event),
		slog.Int("listeners", listeners),
	)
}

// LogHandlerError logs a contained handler failure (non-fatal).
func LogHandlerError(logger *slog.Logger, typeName, event string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("handler failed",
		slog.String("emitter_type", typeName),
		slog.String("event", event),
		slog.String("error", err.Error()),
	)
}

// LogAsyncSpawn logs a handler being handed off to its own goroutine.
func LogAsyncSpawn(logger *slog.Logger, typeName, event string) {
	if logger == nil {
		return
	}
	logger.Debug("spawning async handler",
		slog.String("emitter_type", typeName),
		slog.String("event", event),
	)
}

// LogOnceRemoval logs removal of a fire-once listener.
func LogOnceRemoval(logger *slog.Logger, typeName, event, listenerID string) {
	if logger == nil {
		return
	}
	logger.Debug("removed once listener",
		slog.String("emitter_type", typeName),
		slog.String("event", event),
		slog.String("listener_id", listenerID),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	elapsed := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
