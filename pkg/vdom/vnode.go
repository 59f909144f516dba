package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Attributes
	Children []*VNode  // Child nodes
	Key      string    // Reconciliation key
	Text     string    // For KindText
	Ref      RefSetter // Ref bound to this element after render
	HID      string    // Hydration ID (assigned before the tree is sent)
}

// Props holds element attributes.
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// RefSetter is the part of a ref the tree needs to attach and detach it.
// *vango.Ref[*vdom.VNode] satisfies it.
type RefSetter interface {
	Set(*VNode)
	Clear()
}

// refAttr carries a RefSetter through the element argument list.
type refAttr struct {
	ref RefSetter
}

// RefAttr binds ref to the element it is passed to. After each render the
// runtime sets the ref to the rendered node.
func RefAttr(ref RefSetter) any {
	return refAttr{ref: ref}
}

// Attribute returns the string value of an attribute, or "".
func (v *VNode) Attribute(key string) string {
	if v == nil || v.Props == nil {
		return ""
	}
	if s, ok := v.Props[key].(string); ok {
		return s
	}
	return ""
}
