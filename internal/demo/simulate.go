package demo

import (
	"context"
	"fmt"
	"strings"

	"github.com/vango-dev/clickaway/internal/errors"
	"github.com/vango-dev/clickaway/pkg/dom"
	"github.com/vango-dev/clickaway/pkg/protocol"
	"github.com/vango-dev/clickaway/pkg/vdom"
)

// Interaction is one scripted input event: an event type and a target selector.
//
// Selectors:
//
//	document    the page background (no element)
//	#id         the element with that id attribute
//	h7          the element with that hydration ID
//	li=Edit     the first <li> whose data-value is Edit
//	button      the first element with that tag
type Interaction struct {
	Type   protocol.EventType
	Target string
}

// String returns the interaction in its parsed form, e.g. "mousedown:#text".
func (in Interaction) String() string {
	return in.Type.String() + ":" + in.Target
}

// ParseInteraction parses "type:target".
func ParseInteraction(s string) (Interaction, error) {
	typ, target, ok := strings.Cut(s, ":")
	if !ok || target == "" {
		return Interaction{}, errors.New("E402").
			WithSuggestion(fmt.Sprintf("write %q as type:target", s))
	}
	et, err := protocol.ParseEventType(typ)
	if err != nil {
		return Interaction{}, errors.New("E202").
			WithDetail(fmt.Sprintf("%q is not a known event type", typ)).
			Wrap(err)
	}
	return Interaction{Type: et, Target: target}, nil
}

// Resolve finds the hydration ID the selector designates in doc.
// "document" resolves to the empty HID.
func Resolve(doc *dom.Document, selector string) (string, error) {
	if selector == "document" {
		return "", nil
	}
	if n := doc.Lookup(selector); n != nil {
		return n.HID, nil
	}

	var match func(*vdom.VNode) bool
	switch {
	case strings.HasPrefix(selector, "#"):
		id := selector[1:]
		match = func(n *vdom.VNode) bool { return n.Attribute("id") == id }
	case strings.Contains(selector, "="):
		tag, value, _ := strings.Cut(selector, "=")
		match = func(n *vdom.VNode) bool { return n.Tag == tag && n.Attribute("data-value") == value }
	default:
		match = func(n *vdom.VNode) bool { return n.Tag == selector }
	}

	var found *vdom.VNode
	vdom.Walk(doc.Root(), func(n *vdom.VNode) bool {
		if found != nil {
			return false
		}
		if n.Kind == vdom.KindElement && match(n) {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return "", errors.New("E401").
			WithSuggestion(fmt.Sprintf("no element matches %q", selector))
	}
	return found.HID, nil
}

// Handler receives events in the simulation. *server.Session implements it.
type Handler interface {
	Document() *dom.Document
	HandleEvent(ctx context.Context, ev protocol.Event) error
}

// Step is the outcome of one simulated interaction.
type Step struct {
	Interaction Interaction
	HID         string
	Open        bool
	Selected    string
	Dismissed   int
}

// Run plays the interactions against h, re-resolving each selector against
// the tree rendered by the previous one.
func Run(ctx context.Context, h Handler, page *Page, interactions []Interaction) ([]Step, error) {
	steps := make([]Step, 0, len(interactions))
	for i, in := range interactions {
		hid, err := Resolve(h.Document(), in.Target)
		if err != nil {
			return steps, err
		}
		ev := protocol.Event{Seq: uint64(i + 1), Type: in.Type, HID: hid}
		if err := h.HandleEvent(ctx, ev); err != nil {
			return steps, err
		}
		steps = append(steps, Step{
			Interaction: in,
			HID:         hid,
			Open:        page.Dropdown.Open.Peek(),
			Selected:    page.Dropdown.Selected.Peek(),
			Dismissed:   page.Dropdown.Dismissed,
		})
	}
	return steps, nil
}
