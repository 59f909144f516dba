package vango

import (
	"sync/atomic"

	"github.com/vango-dev/clickaway/pkg/vdom"
)

// Component is anything that can render to a VNode tree.
type Component interface {
	Render() *vdom.VNode
}

// Func wraps a render function as a Component.
type Func func() *vdom.VNode

// Render calls the wrapped function.
func (f Func) Render() *vdom.VNode {
	return f()
}

// ComponentInstance is a mounted component: its owner scope, dependency
// tracking and last rendered tree.
type ComponentInstance struct {
	id        uint64
	component Component
	owner     *Owner

	dirty    atomic.Bool
	lastTree *vdom.VNode

	// onDirty is called once each time the instance becomes dirty.
	onDirty func(*ComponentInstance)
}

var _ Listener = (*ComponentInstance)(nil)

// Mount creates a component instance under parent and renders it once.
// onDirty, if non-nil, is called when a signal read during render changes;
// the runtime uses it to schedule a re-render.
func Mount(parent *Owner, c Component, onDirty func(*ComponentInstance)) *ComponentInstance {
	inst := &ComponentInstance{
		id:        nextID(),
		component: c,
		owner:     NewOwner(parent),
		onDirty:   onDirty,
	}
	inst.Render()
	return inst
}

// Render re-renders the component inside its owner scope, binds element refs
// against the new tree and flushes pending effects.
func (c *ComponentInstance) Render() *vdom.VNode {
	if c.component == nil || c.owner.IsDisposed() {
		return c.lastTree
	}

	c.dirty.Store(false)

	var tree *vdom.VNode
	WithOwner(c.owner, func() {
		c.owner.StartRender()
		defer c.owner.EndRender()

		WithListener(c, func() {
			tree = c.component.Render()
		})
	})

	vdom.BindRefs(c.lastTree, tree)
	c.lastTree = tree

	c.owner.RunPendingEffects()
	return tree
}

// MarkDirty marks the component as needing re-render.
func (c *ComponentInstance) MarkDirty() {
	if c.dirty.CompareAndSwap(false, true) && c.onDirty != nil {
		c.onDirty(c)
	}
}

// ID returns the unique identifier for this instance.
func (c *ComponentInstance) ID() uint64 {
	return c.id
}

// IsDirty returns whether the component needs re-rendering.
func (c *ComponentInstance) IsDirty() bool {
	return c.dirty.Load()
}

// Tree returns the last rendered VNode tree.
func (c *ComponentInstance) Tree() *vdom.VNode {
	return c.lastTree
}

// Owner returns the owner scope of the instance.
func (c *ComponentInstance) Owner() *Owner {
	return c.owner
}

// Unmount disposes the instance's owner, releasing every effect and
// listener its hooks acquired, and detaches element refs.
func (c *ComponentInstance) Unmount() {
	c.owner.Dispose()
	vdom.BindRefs(c.lastTree, nil)
	c.lastTree = nil
	c.component = nil
}
