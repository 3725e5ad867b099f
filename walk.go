package htmltree

// WalkNode performs a depth-first traversal of n and its descendants,
// calling visit on each node in document order. If visit returns false for
// an Element node, its children are skipped but its siblings are still
// visited.
func WalkNode(n *Node, visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		WalkNode(c, visit)
	}
}

// WalkFragments walks every node in nodes and their descendants, in order.
func WalkFragments(nodes []*Node, visit func(*Node) bool) {
	for _, n := range nodes {
		WalkNode(n, visit)
	}
}
