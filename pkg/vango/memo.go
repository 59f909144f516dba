package vango

import (
	"sync"
	"sync/atomic"
)

// Memo is a cached computation that tracks its dependencies.
// When any dependency changes, the memo is invalidated and recomputes on the
// next read. Memos are lazy and can themselves be read by components,
// effects and other memos.
type Memo[T any] struct {
	base signalBase

	compute func() T

	value   T
	valueMu sync.RWMutex

	// valid is false until the next Get recomputes.
	valid atomic.Bool

	sources   []*signalBase
	sourcesMu sync.Mutex

	// computing guards against circular dependencies.
	computing atomic.Bool
}

var (
	_ Listener      = (*Memo[int])(nil)
	_ sourceTracker = (*Memo[int])(nil)
)

// NewMemo creates a memo computed by compute on first read.
//
// Called during a render it is a hook: the same Memo is returned on every
// render with its compute function replaced by the latest closure.
func NewMemo[T any](compute func() T) *Memo[T] {
	owner := getCurrentOwner()
	if owner != nil {
		owner.TrackHook(HookMemo)
		if slot := owner.UseHookSlot(); slot != nil {
			m := slot.(*Memo[T])
			m.compute = compute
			m.valid.Store(false)
			return m
		}
	}

	m := &Memo[T]{
		base:    signalBase{id: nextID()},
		compute: compute,
	}
	if owner != nil {
		owner.SetHookSlot(m)
	}
	return m
}

// Get returns the memo's value, recomputing if necessary, and subscribes
// the current listener.
func (m *Memo[T]) Get() T {
	if listener := getCurrentListener(); listener != nil {
		m.base.subscribe(listener)
		if t, ok := listener.(sourceTracker); ok {
			t.addSource(&m.base)
		}
	}
	return m.Peek()
}

// Peek returns the memo's value without subscribing.
func (m *Memo[T]) Peek() T {
	if !m.valid.Load() {
		m.recompute()
	}
	m.valueMu.RLock()
	defer m.valueMu.RUnlock()
	return m.value
}

// MarkDirty invalidates the memo and propagates to its subscribers.
func (m *Memo[T]) MarkDirty() {
	if m.valid.CompareAndSwap(true, false) {
		m.base.notifySubscribers()
	}
}

// ID returns the unique identifier for this memo.
func (m *Memo[T]) ID() uint64 {
	return m.base.id
}

func (m *Memo[T]) addSource(source *signalBase) {
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()

	for _, s := range m.sources {
		if s == source {
			return
		}
	}
	m.sources = append(m.sources, source)
}

func (m *Memo[T]) recompute() {
	if m.computing.Swap(true) {
		return
	}
	defer m.computing.Store(false)

	m.sourcesMu.Lock()
	for _, source := range m.sources {
		source.unsubscribe(m)
	}
	m.sources = m.sources[:0]
	m.sourcesMu.Unlock()

	var next T
	WithListener(m, func() {
		next = m.compute()
	})

	m.valueMu.Lock()
	m.value = next
	m.valueMu.Unlock()

	m.valid.Store(true)
}
