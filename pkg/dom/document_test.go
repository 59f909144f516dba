package dom

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/clickaway/pkg/protocol"
	"github.com/vango-dev/clickaway/pkg/vdom"
)

func mousedown(hid string) protocol.Event {
	return protocol.Event{Seq: 1, Type: protocol.EventMouseDown, HID: hid}
}

func TestDispatchRegistrationOrder(t *testing.T) {
	doc := New()

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		doc.AddEventListener(protocol.EventMouseDown, func(*Event) {
			order = append(order, i)
		})
	}

	if n := doc.Dispatch(context.Background(), mousedown("")); n != 3 {
		t.Errorf("Dispatch() = %d, want 3", n)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
}

func TestDispatchOnlyMatchingType(t *testing.T) {
	doc := New()

	touched := false
	doc.AddEventListener(protocol.EventTouchStart, func(*Event) { touched = true })

	if n := doc.Dispatch(context.Background(), mousedown("")); n != 0 {
		t.Errorf("Dispatch() = %d, want 0", n)
	}
	if touched {
		t.Error("touchstart listener received a mousedown")
	}
}

func TestDispatchResolvesTarget(t *testing.T) {
	doc := New()
	button := vdom.Button("go")
	doc.SetRoot(vdom.Div(vdom.Span(), button))

	var got *vdom.VNode
	doc.AddEventListener(protocol.EventMouseDown, func(ev *Event) {
		got = ev.Target
		if ev.Context == nil {
			t.Error("event should carry a context")
		}
	})

	doc.Dispatch(context.Background(), mousedown(button.HID))
	if got != button {
		t.Errorf("target = %v, want the button", got)
	}

	for _, hid := range []string{"", "h404"} {
		got = button
		doc.Dispatch(context.Background(), mousedown(hid))
		if got != nil {
			t.Errorf("target for hid %q = %v, want nil", hid, got)
		}
	}
}

func TestSetRootKeepsHIDs(t *testing.T) {
	doc := New()

	doc.SetRoot(vdom.Div(vdom.Button("a"), vdom.P("text")))
	if got := doc.Lookup("h3"); got == nil || got.Tag != "p" {
		t.Fatalf("h3 in first tree = %v, want the paragraph", got)
	}

	// The tree grows: a list is inserted between the button and the paragraph.
	next := vdom.Div(vdom.Button("a"), vdom.Ul(vdom.Li("x")), vdom.P("text"))
	doc.SetRoot(next)

	if doc.Root() != next {
		t.Error("Root() should return the new tree")
	}

	tests := []struct {
		hid  string
		want *vdom.VNode
	}{
		{"h1", next},
		{"h2", next.Children[0]},
		{"h3", next.Children[2]},
		{"h4", next.Children[1]},
		{"h5", next.Children[1].Children[0]},
	}
	for _, tt := range tests {
		if got := doc.Lookup(tt.hid); got != tt.want {
			t.Errorf("Lookup(%q) = %v, want %v", tt.hid, got, tt.want)
		}
	}
}

func TestSetRootAppendedElementsGetFreshHIDs(t *testing.T) {
	doc := New()

	closed := func() *vdom.VNode { return vdom.Div(vdom.Div(vdom.Button("a")), vdom.P("text")) }
	open := func() *vdom.VNode {
		return vdom.Div(vdom.Div(vdom.Button("a"), vdom.Ul(vdom.Li("x"))), vdom.P("text"))
	}

	doc.SetRoot(closed())
	p := doc.Lookup("h4")
	if p == nil || p.Tag != "p" {
		t.Fatalf("h4 = %v, want the paragraph", p)
	}

	tree := open()
	doc.SetRoot(tree)
	if doc.Lookup("h4") != tree.Children[1] {
		t.Error("the paragraph should keep h4 after the list is rendered")
	}
	if doc.Lookup("h5") != tree.Children[0].Children[1] {
		t.Error("the new list should get h5")
	}

	doc.SetRoot(closed())
	if doc.Lookup("h5") != nil {
		t.Error("h5 should stop resolving once the list is gone")
	}

	tree = open()
	doc.SetRoot(tree)
	if ul := tree.Children[0].Children[1]; ul.HID != "h7" {
		t.Errorf("re-rendered list HID = %q, want h7", ul.HID)
	}
}

func TestSetRootSameTree(t *testing.T) {
	doc := New()
	tree := vdom.Div(vdom.Button("a"))

	doc.SetRoot(tree)
	doc.SetRoot(tree)

	if tree.HID != "h1" || tree.Children[0].HID != "h2" {
		t.Errorf("HIDs = %q %q, want h1 h2", tree.HID, tree.Children[0].HID)
	}
}

func TestRemoveListener(t *testing.T) {
	doc := New()

	calls := 0
	remove := doc.AddEventListener(protocol.EventMouseDown, func(*Event) { calls++ })
	other := doc.AddEventListener(protocol.EventMouseDown, func(*Event) {})

	if doc.ListenerCount(protocol.EventMouseDown) != 2 {
		t.Fatalf("ListenerCount() = %d, want 2", doc.ListenerCount(protocol.EventMouseDown))
	}

	remove()
	remove()

	if doc.ListenerCount(protocol.EventMouseDown) != 1 {
		t.Errorf("ListenerCount() after double remove = %d, want 1", doc.ListenerCount(protocol.EventMouseDown))
	}

	doc.Dispatch(context.Background(), mousedown(""))
	if calls != 0 {
		t.Errorf("removed listener called %d times", calls)
	}

	other()
	if doc.ListenerCount(protocol.EventMouseDown) != 0 {
		t.Errorf("ListenerCount() = %d, want 0", doc.ListenerCount(protocol.EventMouseDown))
	}
}

func TestRemovedDuringDispatchIsSkipped(t *testing.T) {
	doc := New()

	var removeSecond func()
	secondCalls := 0
	doc.AddEventListener(protocol.EventMouseDown, func(*Event) { removeSecond() })
	removeSecond = doc.AddEventListener(protocol.EventMouseDown, func(*Event) { secondCalls++ })

	if n := doc.Dispatch(context.Background(), mousedown("")); n != 1 {
		t.Errorf("Dispatch() = %d, want 1", n)
	}
	if secondCalls != 0 {
		t.Error("listener removed mid-dispatch should not be called")
	}
}

func TestAddedDuringDispatchWaitsForNextEvent(t *testing.T) {
	doc := New()

	lateCalls := 0
	added := false
	doc.AddEventListener(protocol.EventMouseDown, func(*Event) {
		if !added {
			added = true
			doc.AddEventListener(protocol.EventMouseDown, func(*Event) { lateCalls++ })
		}
	})

	doc.Dispatch(context.Background(), mousedown(""))
	if lateCalls != 0 {
		t.Fatalf("listener added mid-dispatch ran for the same event")
	}

	doc.Dispatch(context.Background(), mousedown(""))
	if lateCalls != 1 {
		t.Errorf("late listener calls = %d, want 1", lateCalls)
	}
}

// metricValue returns the value of the counter or gauge name whose labels
// include labels, or -1 when absent.
func metricValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			match := true
			for _, lp := range m.GetLabel() {
				if v, ok := labels[lp.GetName()]; ok && v != lp.GetValue() {
					match = false
				}
			}
			if !match {
				continue
			}
			if c := m.GetCounter(); c != nil {
				return c.GetValue()
			}
			if g := m.GetGauge(); g != nil {
				return g.GetValue()
			}
		}
	}
	return -1
}

func TestDocumentMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	doc := New(WithMetrics(NewMetrics(MetricsConfig{Registry: reg})))
	doc.SetRoot(vdom.Div())

	remove := doc.AddEventListener(protocol.EventMouseDown, func(*Event) {})
	doc.AddEventListener(protocol.EventMouseDown, func(*Event) {})

	doc.Dispatch(context.Background(), mousedown("h1"))
	doc.Dispatch(context.Background(), mousedown(""))
	remove()

	if v := metricValue(t, reg, "clickaway_dom_events_total", map[string]string{"type": "mousedown", "target": "element"}); v != 1 {
		t.Errorf("element events = %v, want 1", v)
	}
	if v := metricValue(t, reg, "clickaway_dom_events_total", map[string]string{"type": "mousedown", "target": "document"}); v != 1 {
		t.Errorf("document events = %v, want 1", v)
	}
	if v := metricValue(t, reg, "clickaway_dom_listener_calls_total", map[string]string{"type": "mousedown"}); v != 4 {
		t.Errorf("listener calls = %v, want 4", v)
	}
	if v := metricValue(t, reg, "clickaway_dom_listeners_active", map[string]string{"type": "mousedown"}); v != 1 {
		t.Errorf("active listeners = %v, want 1", v)
	}
}

func TestNewMetricsSharesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := New(WithMetrics(NewMetrics(MetricsConfig{Registry: reg})))
	second := New(WithMetrics(NewMetrics(MetricsConfig{Registry: reg})))

	first.AddEventListener(protocol.EventClick, func(*Event) {})
	second.AddEventListener(protocol.EventClick, func(*Event) {})

	if v := metricValue(t, reg, "clickaway_dom_listeners_active", map[string]string{"type": "click"}); v != 2 {
		t.Errorf("active listeners = %v, want 2 across both documents", v)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.recordEvent("click", "document")
	m.recordCalls("click", 2)
	m.listenerAdded("click")
	m.listenerRemoved("click")
	m.observeDispatch(0.1)
}
