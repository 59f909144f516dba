// Package vdom provides the virtual DOM tree the clickaway runtime renders
// and routes events through.
//
// # Core Types
//
// VNode is the building block representing elements, text and fragments.
// Props holds attributes; Attr builds them.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("dropdown"), RefAttr(menuRef),
//	    Button(Text("Options")),
//	    Ul(Li(Data("value", "Edit"), "Edit")),
//	)
//
// # Hydration
//
// AssignAllHIDs gives every element a hydration ID. The client reports the
// HID of the element an input event originated on, and the server resolves
// it back to the VNode. CarryHIDs moves IDs from one render to the next so an
// element keeps its ID for as long as it stays in the tree.
//
// # Containment
//
// Contains is the structural containment test: a node is contained by an
// element when it is that element or one of its descendants.
package vdom
