package vango

// Listener is anything that can be notified when a dependency changes.
// Components and effects implement it.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies has changed.
	// For components, this schedules a re-render.
	// For effects, this schedules the effect to re-run.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication during batch processing.
	ID() uint64
}

// Cleanup is a function returned by effects to release what the effect acquired.
// It is called before the effect re-runs and when the effect is disposed.
type Cleanup func()

// sourceTracker is a listener that unsubscribes from its sources itself
// before re-running. Effects and memos implement it.
type sourceTracker interface {
	addSource(source *signalBase)
}
