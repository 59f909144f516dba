package vango

import "reflect"

// depsEffect is the hook-slot state of a UseEffect call.
type depsEffect struct {
	deps    []any
	cleanup Cleanup
}

func (d *depsEffect) release() {
	if d.cleanup != nil {
		c := d.cleanup
		d.cleanup = nil
		c()
	}
}

// UseEffect runs fn when the component mounts and again whenever one of deps
// changed identity since the previous render. The Cleanup returned by the
// previous run is called before each re-run and when the owner is disposed.
//
// Dependencies are compared with ==. Values whose type is not comparable,
// including funcs, cannot be compared by identity and always count as changed.
//
// This is a hook-like API and MUST be called unconditionally during render.
//
// Example:
//
//	vango.UseEffect(func() vango.Cleanup {
//	    remove := doc.AddEventListener(protocol.EventKeyDown, onKey)
//	    return remove
//	}, doc)
func UseEffect(fn func() Cleanup, deps ...any) {
	owner := getCurrentOwner()
	if owner == nil {
		panic(ErrNoOwner)
	}
	owner.TrackHook(HookEffect)

	var state *depsEffect
	if slot := owner.UseHookSlot(); slot != nil {
		state = slot.(*depsEffect)
		if !depsChanged(state.deps, deps) {
			return
		}
		state.release()
	} else {
		state = &depsEffect{}
		owner.SetHookSlot(state)
		owner.OnCleanup(state.release)
	}

	state.deps = append(state.deps[:0], deps...)
	Untracked(func() {
		state.cleanup = fn()
	})
}

// depsChanged reports whether next differs from prev by identity.
func depsChanged(prev, next []any) bool {
	if len(prev) != len(next) {
		return true
	}
	for i := range prev {
		if !sameIdentity(prev[i], next[i]) {
			return true
		}
	}
	return false
}

func sameIdentity(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
