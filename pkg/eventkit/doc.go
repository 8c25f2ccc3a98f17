// Package eventkit augments arbitrary Go types with a named-event
// publish/subscribe capability. A type gains the capability by embedding
// an [Emitter], which owns a per-instance registry of listeners and an
// independent store of per-event documentation annotations.
//
// # Registering and raising events
//
// Listeners are registered against string event names with [Emitter.On]
// and invoked by [Emitter.Emit]:
//
//	type Connection struct {
//	    *eventkit.Emitter
//	}
//
//	conn := &Connection{Emitter: eventkit.New("Connection")}
//	conn.On("connected", func(args ...any) error {
//	    fmt.Println("connected to", args[0])
//	    return nil
//	})
//	conn.Emit("connected", "10.0.0.7:4222")
//
// The same handler may be registered any number of times and runs once
// per registration. Synchronous listeners run on the caller's goroutine
// in registration order. A listener registered with [Once] is removed
// after its first invocation. A listener registered with [Async] runs on
// its own goroutine: Emit never waits for it, and no join or await
// handle exists. That is a deliberate limitation carried over from the
// fire-and-forget model this package implements, not an oversight;
// callers that need completion signals should close over their own
// channel or WaitGroup.
//
// # Error containment
//
// Dispatch is error-opaque. A handler that returns an error or panics
// never affects other listeners or the Emit caller. The failure is
// delivered to the listener's [OnError] callback when one was
// registered, wrapped in a [*HandlerError]; otherwise it is discarded
// after a debug log when a logger is configured.
//
// # Documentation
//
// [Emitter.DocumentEvent] records a description and per-argument
// descriptions for an event name, independently of whether any listener
// is registered for it. [Emitter.BuildDocs] renders the annotations as
// HTML or Markdown. The extract subpackage recovers statically declared
// event names from a type's own source, and the manifest subpackage
// loads the same documentation shape from YAML or JSON files.
//
// # Concurrency
//
// An Emitter is not safe for concurrent registration and dispatch. The
// once-removal pass assumes a single goroutine owns the emitter while an
// Emit call is in flight; callers that register or remove listeners
// concurrently with Emit must synchronize. Async listeners only read
// state captured at registration time and never touch the registry.
package eventkit
