package server

import "errors"

var (
	// ErrSessionClosed is returned when an event arrives after Close.
	ErrSessionClosed = errors.New("server: session closed")

	// ErrHandlerPanic wraps a panic recovered from a document listener.
	ErrHandlerPanic = errors.New("server: event handler panicked")

	// ErrRenderLoop is returned when the page is still dirty after the
	// re-renders one event is allowed to trigger.
	ErrRenderLoop = errors.New("server: render loop did not settle")
)
