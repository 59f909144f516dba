// Package outside detects interactions that start outside an element.
//
// An outside interaction is a mousedown or touchstart on the document whose
// origin is neither the tracked element nor one of its descendants. Typical
// uses are closing dropdowns, popovers and dialogs:
//
//	ref := vango.NewRef[*vdom.VNode](nil)
//	outside.Use(doc, ref, func() { open.Set(false) })
//	return vdom.Div(vdom.RefAttr(ref), ...)
//
// While the ref is unset, for example before the element first renders,
// every interaction counts as outside.
package outside

import (
	"log/slog"
	"sync"

	"github.com/vango-dev/clickaway/pkg/dom"
	"github.com/vango-dev/clickaway/pkg/protocol"
	"github.com/vango-dev/clickaway/pkg/vango"
	"github.com/vango-dev/clickaway/pkg/vdom"
)

// DefaultEvents are the interaction-start events watched by default.
var DefaultEvents = []protocol.EventType{
	protocol.EventMouseDown,
	protocol.EventTouchStart,
}

type config struct {
	events []protocol.EventType
	logger *slog.Logger
}

// Option configures an outside-interaction subscription.
type Option func(*config)

// WithEvents replaces the watched event types.
func WithEvents(types ...protocol.EventType) Option {
	return func(c *config) {
		c.events = append([]protocol.EventType(nil), types...)
	}
}

// WithLogger logs each outside interaction at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func newConfig(opts []Option) config {
	c := config{events: DefaultEvents}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Subscription is a live set of document listeners installed by Attach.
type Subscription struct {
	mu      sync.Mutex
	removes []func()
}

// Attach listens on target for interaction-start events and calls callback
// for every event whose origin is neither the element held by ref nor one of
// its descendants. While ref is unset every interaction counts as outside.
//
// The ref is read when each event arrives, so it may be attached after
// Attach returns.
func Attach(target dom.EventTarget, ref *vango.Ref[*vdom.VNode], callback func(), opts ...Option) *Subscription {
	cfg := newConfig(opts)

	handler := func(ev *dom.Event) {
		el := ref.Current()
		if el != nil && vdom.Contains(el, ev.Target) {
			return
		}
		if cfg.logger != nil {
			cfg.logger.Debug("outside interaction",
				"type", ev.Type.String(),
				"seq", ev.Seq,
				"ref_set", el != nil)
		}
		callback()
	}

	s := &Subscription{removes: make([]func(), 0, len(cfg.events))}
	for _, typ := range cfg.events {
		s.removes = append(s.removes, target.AddEventListener(typ, handler))
	}
	return s
}

// Detach removes every listener of the subscription. It is safe to call
// more than once.
func (s *Subscription) Detach() {
	s.mu.Lock()
	removes := s.removes
	s.removes = nil
	s.mu.Unlock()

	for _, remove := range removes {
		remove()
	}
}

// Active reports whether the subscription still has listeners installed.
func (s *Subscription) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removes != nil
}

// Use is the component hook form of Attach. Called during render, it
// attaches when the component mounts, re-attaches when target, ref or
// callback changed since the previous render, and detaches when the
// component's owner is disposed.
//
// Go funcs have no comparable identity, so the callback counts as changed on
// every render and the listeners are reinstalled with the newest callback.
//
// Example:
//
//	func Menu(doc dom.EventTarget, open *vango.Signal[bool]) vango.Component {
//	    return vango.Func(func() *vdom.VNode {
//	        ref := vango.NewRef[*vdom.VNode](nil)
//	        outside.Use(doc, ref, func() { open.Set(false) })
//	        return vdom.Div(vdom.RefAttr(ref), ...)
//	    })
//	}
func Use(target dom.EventTarget, ref *vango.Ref[*vdom.VNode], callback func(), opts ...Option) {
	if owner := vango.CurrentOwner(); owner != nil {
		owner.TrackHook(vango.HookListener)
	}
	vango.UseEffect(func() vango.Cleanup {
		return Attach(target, ref, callback, opts...).Detach
	}, target, ref, callback)
}
