package vango

// DebugMode enables dev-time validation such as hook order checking.
// It should be set at startup and not changed while sessions are running.
var DebugMode bool

// Batch groups multiple signal updates into a single notification phase.
// Listeners affected by any update inside fn are deduplicated and notified
// once when the outermost batch completes.
//
// Example:
//
//	Batch(func() {
//	    open.Set(false)
//	    selected.Set(item)
//	})
func Batch(fn func()) {
	incrementBatchDepth()

	defer func() {
		if decrementBatchDepth() {
			processPendingUpdates()
		}
	}()

	fn()
}

// processPendingUpdates deduplicates and notifies all pending listeners.
func processPendingUpdates() {
	updates := drainPendingUpdates()
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	unique := make([]Listener, 0, len(updates))
	for _, l := range updates {
		id := l.ID()
		if !seen[id] {
			seen[id] = true
			unique = append(unique, l)
		}
	}

	for _, listener := range unique {
		listener.MarkDirty()
	}
}
