package vango

import "sync/atomic"

// globalIDCounter is the source of unique IDs for owners, effects, signals
// and component instances. IDs are never reused.
var globalIDCounter atomic.Uint64

func nextID() uint64 {
	return globalIDCounter.Add(1)
}
