package eventkit

import "fmt"

// HandlerError wraps a failure contained during dispatch of a single
// listener. It is passed to the listener's OnError callback and never
// propagated to the Emit caller.
type HandlerError struct {
	Event    string // Event being dispatched
	Listener string // ID of the failing listener
	Err      error  // Returned error, or a recovered panic
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("event %s: listener %s: %v", e.Event, e.Listener, e.Err)
}

// Unwrap returns the underlying error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}
