// Package vango provides the reactive core of the clickaway runtime.
//
// Dependencies are tracked at runtime: reading a signal during a component
// render or an effect run subscribes the running listener to that signal.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	open := NewSignal(false)
//	value := open.Get() // Read (subscribes current listener)
//	open.Set(true)      // Write (notifies subscribers)
//
// Memo[T] is a cached derived computation:
//
//	label := NewMemo(func() string { return "Selected: " + selected.Get() })
//
// Owner is a disposal scope. Every mounted component has one; effects,
// cleanups and hook state created during its render belong to it and are
// released when it is disposed.
//
// # Hooks
//
// Hooks are called unconditionally during render and keep their state in
// the owner's hook slots:
//
//	ref := NewRef[*vdom.VNode](nil)
//	UseEffect(func() Cleanup {
//	    return doc.AddEventListener(protocol.EventKeyDown, onKey)
//	}, doc)
//
// UseEffect re-runs only when one of its dependencies changed identity, and
// runs the previous Cleanup first. With DebugMode set, hook order is
// validated on every render.
//
// # Thread Safety
//
// Tracking state is goroutine-local. A session renders and handles events on
// one goroutine; call ReleaseGoroutine when that goroutine is done.
package vango
