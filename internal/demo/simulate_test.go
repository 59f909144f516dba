package demo

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/vango-dev/clickaway/internal/errors"
	"github.com/vango-dev/clickaway/pkg/dom"
	"github.com/vango-dev/clickaway/pkg/protocol"
	"github.com/vango-dev/clickaway/pkg/server"
	"github.com/vango-dev/clickaway/pkg/vango"
)

func newDemoSession(t *testing.T) (*server.Session, *Page) {
	t.Helper()

	var page *Page
	s := server.NewSession(func(doc dom.EventTarget) vango.Component {
		page = NewPage(doc, nil)
		return page
	}, nil)
	t.Cleanup(s.Close)
	return s, page
}

func mustParse(t *testing.T, specs ...string) []Interaction {
	t.Helper()

	out := make([]Interaction, 0, len(specs))
	for _, s := range specs {
		in, err := ParseInteraction(s)
		if err != nil {
			t.Fatalf("ParseInteraction(%q) error = %v", s, err)
		}
		out = append(out, in)
	}
	return out
}

func TestParseInteraction(t *testing.T) {
	in, err := ParseInteraction("mousedown:#text")
	if err != nil {
		t.Fatalf("ParseInteraction() error = %v", err)
	}
	if in.Type != protocol.EventMouseDown || in.Target != "#text" {
		t.Errorf("ParseInteraction() = %+v", in)
	}
	if in.String() != "mousedown:#text" {
		t.Errorf("String() = %q", in.String())
	}

	tests := []struct {
		input string
		code  string
	}{
		{"mousedown", "E402"},
		{"mousedown:", "E402"},
		{"hover:#text", "E202"},
	}
	for _, tt := range tests {
		_, err := ParseInteraction(tt.input)
		if !stderrors.Is(err, errors.New(tt.code)) {
			t.Errorf("ParseInteraction(%q) error = %v, want %s", tt.input, err, tt.code)
		}
	}
}

func TestResolve(t *testing.T) {
	s, _ := newDemoSession(t)
	doc := s.Document()

	tests := []struct {
		selector string
		want     string
	}{
		{"document", ""},
		{"h5", "h5"},
		{"#nav", "h2"},
		{"#text", "h7"},
		{"button", "h6"},
		{"div", "h5"},
	}
	for _, tt := range tests {
		got, err := Resolve(doc, tt.selector)
		if err != nil {
			t.Errorf("Resolve(%q) error = %v", tt.selector, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.selector, got, tt.want)
		}
	}

	for _, missing := range []string{"li=Edit", "#nope", "table"} {
		if _, err := Resolve(doc, missing); !stderrors.Is(err, errors.New("E401")) {
			t.Errorf("Resolve(%q) error = %v, want E401", missing, err)
		}
	}
}

func TestDropdownScenario(t *testing.T) {
	s, page := newDemoSession(t)

	steps, err := Run(context.Background(), s, page, mustParse(t,
		"click:button",
		"mousedown:li=Duplicate",
		"click:li=Duplicate",
		"click:button",
		"mousedown:#text",
		"mousedown:document",
	))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []struct {
		hid       string
		open      bool
		selected  string
		dismissed int
	}{
		{"h6", true, "", 0},
		{"h10", true, "", 0},
		{"h10", false, "Duplicate", 0},
		{"h6", true, "Duplicate", 0},
		{"h7", false, "Duplicate", 1},
		{"", false, "Duplicate", 1},
	}

	if len(steps) != len(want) {
		t.Fatalf("Run() returned %d steps, want %d", len(steps), len(want))
	}
	for i, w := range want {
		st := steps[i]
		if st.HID != w.hid || st.Open != w.open || st.Selected != w.selected || st.Dismissed != w.dismissed {
			t.Errorf("step %d (%s) = hid=%q open=%v selected=%q dismissed=%d, want hid=%q open=%v selected=%q dismissed=%d",
				i+1, st.Interaction, st.HID, st.Open, st.Selected, st.Dismissed,
				w.hid, w.open, w.selected, w.dismissed)
		}
	}
}

func TestHIDsSurviveMenuOpening(t *testing.T) {
	s, page := newDemoSession(t)
	ctx := context.Background()

	// The client only knows the HIDs of the page as first rendered:
	// the trigger is h6 and the paragraph is h7.
	if err := s.HandleEvent(ctx, protocol.Event{Seq: 1, Type: protocol.EventClick, HID: "h6"}); err != nil {
		t.Fatalf("HandleEvent(click h6) error = %v", err)
	}
	if !page.Dropdown.Open.Peek() {
		t.Fatal("clicking the trigger should open the menu")
	}
	if got := s.Document().Lookup("h7"); got == nil || got.Attribute("id") != "text" {
		t.Fatalf("h7 after opening = %v, want the paragraph", got)
	}

	if err := s.HandleEvent(ctx, protocol.Event{Seq: 2, Type: protocol.EventMouseDown, HID: "h7"}); err != nil {
		t.Fatalf("HandleEvent(mousedown h7) error = %v", err)
	}
	if page.Dropdown.Open.Peek() || page.Dropdown.Dismissed != 1 {
		t.Errorf("open=%v dismissed=%d, want the press on the paragraph to dismiss the menu",
			page.Dropdown.Open.Peek(), page.Dropdown.Dismissed)
	}
}

func TestPressInsideMenuKeepsItOpen(t *testing.T) {
	s, page := newDemoSession(t)

	_, err := Run(context.Background(), s, page, mustParse(t,
		"click:button",
		"mousedown:button",
		"touchstart:ul",
		"mousedown:li=Archive",
	))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !page.Dropdown.Open.Peek() {
		t.Error("presses inside the dropdown should not close it")
	}
	if page.Dropdown.Dismissed != 0 {
		t.Errorf("Dismissed = %d, want 0", page.Dropdown.Dismissed)
	}
}

func TestTouchOutsideDismisses(t *testing.T) {
	s, page := newDemoSession(t)

	_, err := Run(context.Background(), s, page, mustParse(t, "click:button", "touchstart:#nav"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if page.Dropdown.Open.Peek() || page.Dropdown.Dismissed != 1 {
		t.Errorf("open=%v dismissed=%d, want closed after one dismissal",
			page.Dropdown.Open.Peek(), page.Dropdown.Dismissed)
	}
}

func TestRunStopsAtUnknownTarget(t *testing.T) {
	s, page := newDemoSession(t)

	steps, err := Run(context.Background(), s, page, mustParse(t, "click:button", "click:#missing", "click:button"))
	if !stderrors.Is(err, errors.New("E401")) {
		t.Fatalf("Run() error = %v, want E401", err)
	}
	if len(steps) != 1 {
		t.Errorf("Run() returned %d steps, want 1", len(steps))
	}
}
