package vdom

// Contains reports whether node is ancestor itself or a descendant of it.
// A nil ancestor contains nothing.
func Contains(ancestor, node *VNode) bool {
	if ancestor == nil || node == nil {
		return false
	}
	if ancestor == node {
		return true
	}
	for _, child := range ancestor.Children {
		if Contains(child, node) {
			return true
		}
	}
	return false
}

// PathTo returns the chain of nodes from root down to node, both included,
// or nil when node is not in root's tree.
func PathTo(root, node *VNode) []*VNode {
	if root == nil || node == nil {
		return nil
	}
	if root == node {
		return []*VNode{root}
	}
	for _, child := range root.Children {
		if path := PathTo(child, node); path != nil {
			return append([]*VNode{root}, path...)
		}
	}
	return nil
}

// Walk calls fn for every node of the tree in depth-first pre-order.
// Returning false from fn skips the node's children.
func Walk(node *VNode, fn func(*VNode) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for _, child := range node.Children {
		Walk(child, fn)
	}
}

// BindRefs attaches refs after a render. Every ref in next is set to its
// element; refs present in prev whose element is gone from next are cleared.
// Passing a nil next detaches every ref of prev, as on unmount.
func BindRefs(prev, next *VNode) {
	bound := make(map[RefSetter]bool)
	Walk(next, func(n *VNode) bool {
		if n.Ref != nil {
			n.Ref.Set(n)
			bound[n.Ref] = true
		}
		return true
	})
	Walk(prev, func(n *VNode) bool {
		if n.Ref != nil && !bound[n.Ref] {
			n.Ref.Clear()
			bound[n.Ref] = true
		}
		return true
	})
}
