package vango

import "sync"

// Ref holds a mutable reference to a value, typically a rendered element.
// A Ref is unset until the runtime attaches it; Current then returns the
// zero value. The identity of a Ref is its pointer.
//
// Ref[T] is safe for concurrent access.
type Ref[T any] struct {
	value T
	isSet bool
	mu    sync.RWMutex
}

// NewRef creates a new, unset Ref with the given initial value.
//
// Called outside a render, it simply allocates. Called during a render, it
// is a hook: the same Ref is returned on every render of the component, so
// its identity stays stable for effect dependencies.
//
// Example:
//
//	menuRef := vango.NewRef[*vdom.VNode](nil)
//	return vdom.Div(vdom.RefAttr(menuRef), ...)
func NewRef[T any](initial T) *Ref[T] {
	owner := getCurrentOwner()
	if owner == nil {
		return &Ref[T]{value: initial}
	}

	owner.TrackHook(HookRef)
	if slot := owner.UseHookSlot(); slot != nil {
		return slot.(*Ref[T])
	}
	r := &Ref[T]{value: initial}
	owner.SetHookSlot(r)
	return r
}

// Current returns the current value of the ref.
func (r *Ref[T]) Current() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Set sets the ref's value and marks it attached.
func (r *Ref[T]) Set(value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value = value
	r.isSet = true
}

// IsSet returns true if the ref has been attached.
func (r *Ref[T]) IsSet() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isSet
}

// Clear resets the ref to its zero value.
func (r *Ref[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	r.value = zero
	r.isSet = false
}
