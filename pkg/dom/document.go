package dom

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/clickaway/pkg/protocol"
	"github.com/vango-dev/clickaway/pkg/vdom"
)

const defaultTracerName = "clickaway"

// Event is an input event as seen by document listeners.
type Event struct {
	// Context carries the dispatch span.
	Context context.Context

	Seq  uint64
	Type protocol.EventType

	// Target is the element the event originated on. It is nil when the event
	// hit the document itself or an element no longer in the tree.
	Target *vdom.VNode

	ClientX int
	ClientY int
}

// Listener handles a document-level event.
type Listener func(*Event)

// EventTarget is the global input surface listeners register on.
// Document implements it.
type EventTarget interface {
	// AddEventListener registers fn for events of type typ and returns a
	// function that removes it. Removing twice is a no-op.
	AddEventListener(typ protocol.EventType, fn Listener) (remove func())
}

type registration struct {
	fn      Listener
	removed atomic.Bool
}

// Document is the document-level input surface of one client page.
// It holds the rendered tree and the listeners registered on the document;
// Dispatch delivers every input event to the listeners of its type in
// registration order. Listeners only observe events: they cannot stop or
// alter delivery to other listeners.
type Document struct {
	mu        sync.Mutex
	root      *vdom.VNode
	hids      map[string]*vdom.VNode
	gen       *vdom.HIDGenerator
	listeners map[protocol.EventType][]*registration

	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

var _ EventTarget = (*Document)(nil)

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the document logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		d.logger = logger
	}
}

// WithMetrics instruments the document with m.
func WithMetrics(m *Metrics) Option {
	return func(d *Document) {
		d.metrics = m
	}
}

// WithTracerName sets the tracer name resolved from the global provider.
func WithTracerName(name string) Option {
	return func(d *Document) {
		d.tracer = otel.Tracer(name)
	}
}

// New creates an empty Document.
func New(opts ...Option) *Document {
	d := &Document{
		hids:      make(map[string]*vdom.VNode),
		gen:       vdom.NewHIDGenerator(),
		listeners: make(map[protocol.EventType][]*registration),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.tracer == nil {
		d.tracer = otel.Tracer(defaultTracerName)
	}
	return d
}

// SetRoot replaces the rendered tree. Elements that match an element of the
// previous tree keep its hydration ID, so IDs the client already holds stay
// valid across renders. New elements get fresh IDs; an ID is never handed out
// twice, and the IDs of removed elements stop resolving.
func (d *Document) SetRoot(root *vdom.VNode) {
	d.mu.Lock()
	defer d.mu.Unlock()

	prev := d.root
	if root != prev {
		seen := make(map[*vdom.VNode]bool, len(d.hids))
		for _, n := range d.hids {
			seen[n] = true
		}
		vdom.Walk(root, func(n *vdom.VNode) bool {
			if !seen[n] {
				n.HID = ""
			}
			return true
		})
		vdom.CarryHIDs(prev, root)
	}

	taken := make(map[string]bool)
	vdom.Walk(root, func(n *vdom.VNode) bool {
		if n.HID != "" {
			if taken[n.HID] {
				n.HID = ""
			}
			taken[n.HID] = true
		}
		return true
	})
	vdom.AssignAllHIDs(root, d.gen)

	d.root = root
	d.hids = vdom.CollectHIDs(root)
}

// Root returns the current tree.
func (d *Document) Root() *vdom.VNode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.root
}

// Lookup returns the element with the given hydration ID, or nil.
func (d *Document) Lookup(hid string) *vdom.VNode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hids[hid]
}

// AddEventListener registers fn for events of type typ.
func (d *Document) AddEventListener(typ protocol.EventType, fn Listener) func() {
	reg := &registration{fn: fn}

	d.mu.Lock()
	d.listeners[typ] = append(d.listeners[typ], reg)
	d.mu.Unlock()

	d.metrics.listenerAdded(typ.String())
	d.logger.Debug("listener added", "type", typ.String())

	return func() {
		if reg.removed.Swap(true) {
			return
		}

		d.mu.Lock()
		regs := d.listeners[typ]
		for i, r := range regs {
			if r == reg {
				d.listeners[typ] = append(regs[:i:i], regs[i+1:]...)
				break
			}
		}
		if len(d.listeners[typ]) == 0 {
			delete(d.listeners, typ)
		}
		d.mu.Unlock()

		d.metrics.listenerRemoved(typ.String())
		d.logger.Debug("listener removed", "type", typ.String())
	}
}

// ListenerCount returns the number of listeners registered for typ.
func (d *Document) ListenerCount(typ protocol.EventType) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners[typ])
}

// Dispatch delivers an input event to the listeners registered for its type
// and returns how many were called. Listeners removed while the event is in
// flight are skipped. A panicking listener aborts the dispatch and the panic
// propagates to the caller.
func (d *Document) Dispatch(ctx context.Context, pe protocol.Event) int {
	d.mu.Lock()
	target := d.hids[pe.HID]
	regs := make([]*registration, len(d.listeners[pe.Type]))
	copy(regs, d.listeners[pe.Type])
	d.mu.Unlock()

	resolution := "element"
	if target == nil {
		resolution = "document"
		if pe.HID != "" {
			d.logger.Debug("event target not in tree", "hid", pe.HID, "type", pe.Type.String())
		}
	}

	spanCtx, span := d.tracer.Start(ctx, "clickaway.dispatch."+pe.Type.String(),
		trace.WithAttributes(
			attribute.String("clickaway.event_type", pe.Type.String()),
			attribute.String("clickaway.event_target", pe.HID),
			attribute.Int64("clickaway.event_seq", int64(pe.Seq)),
			attribute.Int("clickaway.listeners", len(regs)),
		),
	)
	defer span.End()

	ev := &Event{
		Context: spanCtx,
		Seq:     pe.Seq,
		Type:    pe.Type,
		Target:  target,
		ClientX: pe.ClientX,
		ClientY: pe.ClientY,
	}

	start := time.Now()
	called := 0
	for _, reg := range regs {
		if reg.removed.Load() {
			continue
		}
		reg.fn(ev)
		called++
	}

	d.metrics.recordEvent(pe.Type.String(), resolution)
	d.metrics.recordCalls(pe.Type.String(), called)
	d.metrics.observeDispatch(time.Since(start).Seconds())

	return called
}
