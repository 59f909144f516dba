// Package demo is the sample page served and simulated by the clickaway CLI:
// a dropdown menu that closes when the user presses anywhere outside it.
package demo

import (
	"log/slog"

	"github.com/vango-dev/clickaway/pkg/dom"
	"github.com/vango-dev/clickaway/pkg/features/outside"
	"github.com/vango-dev/clickaway/pkg/protocol"
	"github.com/vango-dev/clickaway/pkg/vango"
	"github.com/vango-dev/clickaway/pkg/vdom"
)

// Dropdown is a trigger button with a menu of items.
// Pressing outside the dropdown closes the menu.
type Dropdown struct {
	Doc      dom.EventTarget
	Label    string
	Items    []string
	Open     *vango.BoolSignal
	Selected *vango.Signal[string]
	Logger   *slog.Logger

	// Summary is the status line shown under the dropdown.
	Summary *vango.Memo[string]

	// Dismissed counts outside interactions that closed an open menu.
	Dismissed int
}

// NewDropdown creates a closed dropdown bound to doc.
func NewDropdown(doc dom.EventTarget, label string, items ...string) *Dropdown {
	d := &Dropdown{
		Doc:      doc,
		Label:    label,
		Items:    items,
		Open:     vango.NewBoolSignal(false),
		Selected: vango.NewSignal(""),
		Logger:   slog.Default(),
	}
	d.Summary = vango.NewMemo(func() string {
		if sel := d.Selected.Get(); sel != "" {
			return "Selected: " + sel
		}
		return "Nothing selected"
	})
	return d
}

func (d *Dropdown) dismiss() {
	if !d.Open.Peek() {
		return
	}
	d.Dismissed++
	d.Open.SetFalse()
	d.Logger.Info("dropdown dismissed", "label", d.Label)
}

// Render implements vango.Component.
func (d *Dropdown) Render() *vdom.VNode {
	rootRef := vango.NewRef[*vdom.VNode](nil)
	triggerRef := vango.NewRef[*vdom.VNode](nil)

	outside.Use(d.Doc, rootRef, d.dismiss, outside.WithLogger(d.Logger))

	vango.UseEffect(func() vango.Cleanup {
		return d.Doc.AddEventListener(protocol.EventClick, func(ev *dom.Event) {
			switch {
			case vdom.Contains(triggerRef.Current(), ev.Target):
				d.Open.Toggle()
			case ev.Target != nil && ev.Target.Attribute("role") == "menuitem":
				vango.Batch(func() {
					d.Selected.Set(ev.Target.Attribute("data-value"))
					d.Open.Set(false)
				})
			}
		})
	}, d.Doc, triggerRef)

	trigger := vdom.Button(
		vdom.RefAttr(triggerRef),
		vdom.Data("dropdown-trigger", "true"),
		d.Label,
	)

	if !d.Open.Get() {
		return vdom.Div(vdom.RefAttr(rootRef), vdom.Class("dropdown"), trigger)
	}

	items := make([]*vdom.VNode, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, vdom.Li(
			vdom.Attr{Key: "role", Value: "menuitem"},
			vdom.Data("value", item),
			vdom.Key(item),
			item,
		))
	}

	return vdom.Div(
		vdom.RefAttr(rootRef),
		vdom.Class("dropdown"),
		vdom.Data("state", "open"),
		trigger,
		vdom.Ul(vdom.Attr{Key: "role", Value: "menu"}, items),
	)
}

// Page renders a navigation bar, the dropdown and some body text.
type Page struct {
	Dropdown *Dropdown
}

// NewPage builds the demo page for doc.
func NewPage(doc dom.EventTarget, logger *slog.Logger) *Page {
	dd := NewDropdown(doc, "Options", "Edit", "Duplicate", "Archive")
	if logger != nil {
		dd.Logger = logger
	}
	return &Page{Dropdown: dd}
}

// Render implements vango.Component.
func (p *Page) Render() *vdom.VNode {
	return vdom.Body(
		vdom.Nav(vdom.ID("nav"), vdom.Span("clickaway")),
		vdom.Main(
			vdom.ID("main"),
			p.Dropdown.Render(),
			vdom.P(vdom.ID("text"), p.Dropdown.Summary.Get()),
		),
	)
}

// App is the server.AppFunc of the demo page.
func App(logger *slog.Logger) func(doc dom.EventTarget) vango.Component {
	return func(doc dom.EventTarget) vango.Component {
		return NewPage(doc, logger)
	}
}
