package vdom

// CarryHIDs copies hydration IDs from prev onto the matching nodes of next so
// an element keeps its ID across renders. A child with a key matches the
// previous child with the same key. Other children match the previous sibling
// of the same kind and tag at the same position among those siblings, so
// inserting an element does not shift the IDs of siblings with another tag.
// Matched nodes must also agree on kind and tag. Nodes of next without a match
// keep an empty HID.
func CarryHIDs(prev, next *VNode) {
	if prev == nil || next == nil {
		return
	}
	if prev.Kind != next.Kind || prev.Tag != next.Tag {
		return
	}

	next.HID = prev.HID
	carryChildren(prev.Children, next.Children)
}

func carryChildren(prev, next []*VNode) {
	keyed := make(map[string]*VNode)
	unkeyed := make(map[slot][]*VNode)
	for _, child := range prev {
		if child == nil {
			continue
		}
		if child.Key != "" {
			keyed[child.Key] = child
		} else {
			s := slotOf(child)
			unkeyed[s] = append(unkeyed[s], child)
		}
	}

	for _, child := range next {
		if child == nil {
			continue
		}
		if child.Key != "" {
			if match, ok := keyed[child.Key]; ok {
				CarryHIDs(match, child)
				delete(keyed, child.Key)
			}
			continue
		}
		s := slotOf(child)
		if queue := unkeyed[s]; len(queue) > 0 {
			CarryHIDs(queue[0], child)
			unkeyed[s] = queue[1:]
		}
	}
}

// slot groups unkeyed siblings that can match each other.
type slot struct {
	kind VKind
	tag  string
}

func slotOf(n *VNode) slot {
	return slot{kind: n.Kind, tag: n.Tag}
}
