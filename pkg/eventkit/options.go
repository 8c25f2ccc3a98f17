package eventkit

import (
	"log/slog"

	"github.com/randalmurphal/eventkit/pkg/eventkit/observability"
)

// Option configures an Emitter at construction time.
type Option func(*Emitter)

// WithLogger attaches a structured logger for dispatch debug logging and
// contained-failure warnings. A nil logger disables logging (the
// default).
func WithLogger(logger *slog.Logger) Option {
	return func(e *Emitter) {
		e.logger = logger
	}
}

// WithMetrics sets the metrics recorder used during dispatch.
// Default: [observability.NoopMetrics].
//
// Example:
//
//	em := eventkit.New("Connection",
//	    eventkit.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(recorder observability.MetricsRecorder) Option {
	return func(e *Emitter) {
		if recorder != nil {
			e.metrics = recorder
		}
	}
}

// WithSpans sets the span manager used to trace dispatch passes.
// Default: [observability.NoopSpanManager].
func WithSpans(spans observability.SpanManager) Option {
	return func(e *Emitter) {
		if spans != nil {
			e.spans = spans
		}
	}
}

// listenerConfig holds per-registration settings.
type listenerConfig struct {
	async   bool
	once    bool
	onError func(error)
}

// ListenerOption configures a single registration made with [Emitter.On].
type ListenerOption func(*listenerConfig)

// Async runs the listener on its own goroutine per invocation.
// Emit does not wait for async listeners and provides no completion
// handle.
func Async() ListenerOption {
	return func(c *listenerConfig) {
		c.async = true
	}
}

// Once removes the listener after its first invocation.
func Once() ListenerOption {
	return func(c *listenerConfig) {
		c.once = true
	}
}

// OnError registers a callback receiving contained failures from this
// listener, wrapped in a [*HandlerError]. A panic inside the callback
// itself is swallowed.
func OnError(fn func(error)) ListenerOption {
	return func(c *listenerConfig) {
		c.onError = fn
	}
}
