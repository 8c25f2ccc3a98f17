package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// setupTracingTest creates a test tracer provider with an in-memory span
// recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	// Update the package-level tracer
	tracer = otel.Tracer("eventkit")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		tracer = otel.Tracer("eventkit")
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func TestStartEmitSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	t.Run("creates span with correct name and attributes", func(t *testing.T) {
		ctx := context.Background()
		_, span := m.StartEmitSpan(ctx, "Connection", "connected")
		require.NotNil(t, span)

		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, "eventkit.emit", s.Name)

		var typeName, event string
		for _, attr := range s.Attributes {
			switch attr.Key {
			case "emitter.type":
				typeName = attr.Value.AsString()
			case "event":
				event = attr.Value.AsString()
			}
		}
		assert.Equal(t, "Connection", typeName)
		assert.Equal(t, "connected", event)
	})

	t.Run("returns context carrying the span", func(t *testing.T) {
		exporter.Reset()

		ctx, span := m.StartEmitSpan(context.Background(), "Connection", "connected")
		assert.Equal(t, span, trace.SpanFromContext(ctx))
		span.End()
	})
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	t.Run("nil span is safe", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.EndSpanWithError(nil, errors.New("boom"))
		})
	})

	t.Run("records error status", func(t *testing.T) {
		exporter.Reset()

		_, span := m.StartEmitSpan(context.Background(), "Connection", "connected")
		m.EndSpanWithError(span, errors.New("boom"))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		assert.Equal(t, "boom", spans[0].Status.Description)
		require.Len(t, spans[0].Events, 1, "expected a recorded error event")
	})

	t.Run("sets ok status without error", func(t *testing.T) {
		exporter.Reset()

		_, span := m.StartEmitSpan(context.Background(), "Connection", "connected")
		m.EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
	})
}

func TestAddSpanEvent(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	t.Run("no-op without a recording span", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.AddSpanEvent(context.Background(), "dispatch")
		})
	})

	t.Run("attaches event to recording span", func(t *testing.T) {
		exporter.Reset()

		ctx, span := m.StartEmitSpan(context.Background(), "Connection", "connected")
		m.AddSpanEvent(ctx, "handler.invoked", attribute.Bool("async", false))
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		require.Len(t, spans[0].Events, 1)
		assert.Equal(t, "handler.invoked", spans[0].Events[0].Name)
	})
}
