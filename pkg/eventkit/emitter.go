package eventkit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/randalmurphal/eventkit/pkg/eventkit/docs"
	"github.com/randalmurphal/eventkit/pkg/eventkit/observability"
)

// Handler processes the arguments of one emitted event. A non-nil error
// is contained per listener and never reaches the Emit caller.
type Handler func(args ...any) error

// ListenerID identifies one registration. The same handler registered
// twice yields two distinct IDs.
type ListenerID string

// listener is one registered handler record. Owned by the per-event
// registry slice; removed by dispatch when once is set, or by Off.
type listener struct {
	id      ListenerID
	handler Handler
	async   bool
	once    bool
	onError func(error)
}

// Emitter holds the per-instance listener registry and documentation
// annotations. Embed a *Emitter to give a type the event capability; the
// promoted On, Emit, DocumentEvent, and BuildDocs methods form its
// public event surface.
//
// Registration and dispatch assume single-goroutine access; see the
// package documentation for the concurrency contract.
type Emitter struct {
	typeName string

	// listeners maps event name to registration-ordered records.
	// Keys are created lazily on first registration.
	listeners map[string][]*listener

	// eventDocs and docOrder form an insertion-ordered annotation store,
	// decoupled from the listener registry.
	eventDocs map[string]docs.EventDoc
	docOrder  []string

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// New creates an Emitter for a type. typeName titles generated
// documentation and annotates spans and log records.
func New(typeName string, opts ...Option) *Emitter {
	e := &Emitter{
		typeName:  typeName,
		listeners: make(map[string][]*listener),
		eventDocs: make(map[string]docs.EventDoc),
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TypeName returns the name the Emitter was created with.
func (e *Emitter) TypeName() string {
	return e.typeName
}

// On registers a handler for an event and returns its registration ID.
// There is no uniqueness constraint: the same handler may be registered
// multiple times and runs once per registration. On never fails.
func (e *Emitter) On(event string, handler Handler, opts ...ListenerOption) ListenerID {
	var cfg listenerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	l := &listener{
		id:      ListenerID("lst-" + uuid.New().String()[:8]),
		handler: handler,
		async:   cfg.async,
		once:    cfg.once,
		onError: cfg.onError,
	}
	e.listeners[event] = append(e.listeners[event], l)
	return l.id
}

// Off removes the registration with the given ID. Returns false when no
// such registration exists (including when it already fired as a once
// listener).
func (e *Emitter) Off(id ListenerID) bool {
	for event, records := range e.listeners {
		for i, l := range records {
			if l.id == id {
				e.listeners[event] = append(records[:i], records[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Listeners returns the number of registrations for an event. Unknown
// events report zero rather than an error.
func (e *Emitter) Listeners(event string) int {
	return len(e.listeners[event])
}

// Emit invokes every listener currently registered for event with args.
//
// Synchronous listeners run inline, in registration order. Async
// listeners are handed to their own goroutine and not waited on. Once
// listeners are removed from the live registry before they are invoked,
// so a failing once listener still never fires twice. Nothing in Emit
// is fatal: handler errors and panics are contained per listener.
func (e *Emitter) Emit(event string, args ...any) {
	live := e.listeners[event]
	if len(live) == 0 {
		return
	}

	ctx, span := e.spans.StartEmitSpan(context.Background(), e.typeName, event)
	defer e.spans.EndSpanWithError(span, nil)
	e.metrics.RecordEmit(ctx, event, len(live))
	observability.LogEmit(e.logger, e.typeName, event, len(live))

	// Dispatch iterates a snapshot so once-removal cannot skip or repeat
	// entries. Each physical removal shifts later live positions left by
	// one, so the live index of snapshot entry i is i minus the number
	// of removals made earlier in this pass.
	snapshot := make([]*listener, len(live))
	copy(snapshot, live)

	removed := 0
	for i, l := range snapshot {
		if l.once {
			cur := e.listeners[event]
			at := i - removed
			e.listeners[event] = append(cur[:at], cur[at+1:]...)
			removed++
			observability.LogOnceRemoval(e.logger, e.typeName, event, string(l.id))
		}

		if l.async {
			e.metrics.RecordAsyncSpawn(ctx, event)
			observability.LogAsyncSpawn(e.logger, e.typeName, event)
			go e.invoke(ctx, event, l, args)
			continue
		}
		e.invoke(ctx, event, l, args)
	}
}

// invoke runs one listener with full containment: the returned error or
// a recovered panic goes to the listener's OnError callback when set and
// is otherwise discarded.
func (e *Emitter) invoke(ctx context.Context, event string, l *listener, args []any) {
	done := observability.TimedOperation()
	err := safeCall(l.handler, args)
	e.metrics.RecordHandler(ctx, event, l.async, done(), err)
	if err == nil {
		return
	}

	herr := &HandlerError{Event: event, Listener: string(l.id), Err: err}
	observability.LogHandlerError(e.logger, e.typeName, event, herr)
	if l.onError == nil {
		return
	}
	func() {
		defer func() {
			// A failing error callback has no further recourse.
			_ = recover()
		}()
		l.onError(herr)
	}()
}

// safeCall invokes a handler, converting a panic into an error so both
// failure modes flow through the same containment path.
func safeCall(h Handler, args []any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(args...)
}

// DocumentEvent annotates an event with a description and per-argument
// descriptions. Annotations are independent of listener registration:
// an event may be documented without listeners and vice versa.
// Re-annotating an event replaces its entry without changing its
// position in the rendered document.
func (e *Emitter) DocumentEvent(event, description string, paramDescriptions ...string) {
	if _, exists := e.eventDocs[event]; !exists {
		e.docOrder = append(e.docOrder, event)
	}
	e.eventDocs[event] = docs.EventDoc{
		Name:        event,
		Description: description,
		Params:      paramDescriptions,
	}
}

// DocumentedEvents returns the annotated event names in annotation
// order.
func (e *Emitter) DocumentedEvents() []string {
	out := make([]string, len(e.docOrder))
	copy(out, e.docOrder)
	return out
}

// BuildDocs renders the annotation store as a document. "markdown" and
// "md" produce Markdown; any other format, including the empty string,
// produces HTML. Output is deterministic for a given annotation state.
func (e *Emitter) BuildDocs(format string) string {
	events := make([]docs.EventDoc, 0, len(e.docOrder))
	for _, name := range e.docOrder {
		events = append(events, e.eventDocs[name])
	}
	return docs.Render(e.typeName, events, format)
}
