package htmltree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWalkNodeVisitsInDocumentOrder(t *testing.T) {
	tree := MustParseElement("<ul><li>A</li><li>B</li></ul>")

	var seen []string
	WalkNode(tree, func(n *Node) bool {
		switch {
		case IsElementNode(n):
			seen = append(seen, n.TagName)
		case IsTextNode(n):
			seen = append(seen, n.Text)
		}
		return true
	})
	require.Equal(t, []string{"ul", "li", "A", "li", "B"}, seen)
}

func TestWalkNodeStopsDescentWhenVisitReturnsFalse(t *testing.T) {
	tree := MustParseElement("<ul><li>A</li></ul>")

	var seen []string
	WalkNode(tree, func(n *Node) bool {
		seen = append(seen, n.TagName)
		return !IsElementNode(n) || n.TagName != "li"
	})
	// li is visited but its text child is skipped.
	require.Equal(t, []string{"ul", "li"}, seen)
}

func TestWalkNodeNilIsNoOp(t *testing.T) {
	require.NotPanics(t, func() {
		WalkNode(nil, func(n *Node) bool { return true })
	})
}

func TestWalkFragmentsVisitsEverySibling(t *testing.T) {
	nodes := MustParseFragments("<br><hr>")
	var seen []string
	WalkFragments(nodes, func(n *Node) bool {
		if IsElementNode(n) {
			seen = append(seen, n.TagName)
		}
		return true
	})
	require.Equal(t, []string{"br", "hr"}, seen)
}
