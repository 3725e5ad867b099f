package htmltree

import "strings"

// SerializeOptions configures serialization (§4.7). The zero value is the
// default: comments are kept.
type SerializeOptions struct {
	// RemoveComments, when true, serializes Comment nodes as the empty
	// string instead of `<!--text-->`.
	RemoveComments bool
}

var booleanAttributes = map[string]bool{
	"allowfullscreen": true, "async": true, "autofocus": true, "autoplay": true,
	"checked": true, "controls": true, "default": true, "defer": true,
	"disabled": true, "formnovalidate": true, "hidden": true, "inert": true,
	"ismap": true, "itemscope": true, "loop": true, "multiple": true,
	"muted": true, "nomodule": true, "novalidate": true, "open": true,
	"readonly": true, "required": true, "reversed": true, "selected": true,
}

// SerializeNode renders a single node (§4.7). An empty SerializeOptions{}
// (the zero value) keeps comments.
func SerializeNode(n *Node, opts ...SerializeOptions) string {
	var o SerializeOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	var b strings.Builder
	writeNode(&b, n, o)
	return b.String()
}

// SerializeFragments renders a sequence of sibling nodes (§6).
func SerializeFragments(nodes []*Node, opts ...SerializeOptions) string {
	var o SerializeOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	var b strings.Builder
	for _, n := range nodes {
		writeNode(&b, n, o)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n *Node, o SerializeOptions) {
	if n == nil {
		return
	}
	switch n.Kind {
	case TextNode:
		b.WriteString(n.Text)
	case CommentNode:
		if o.RemoveComments {
			return
		}
		b.WriteString("<!--")
		b.WriteString(n.Text)
		b.WriteString("-->")
	case CDATANode:
		b.WriteString("<![CDATA[")
		b.WriteString(n.Text)
		b.WriteString("]]>")
	case ElementNode:
		writeElement(b, n, o)
	}
}

func writeElement(b *strings.Builder, n *Node, o SerializeOptions) {
	b.WriteByte('<')
	b.WriteString(n.TagName)
	for _, a := range n.Attributes {
		writeAttribute(b, a)
	}
	b.WriteByte('>')
	// A VOID element never has a closing tag, regardless of whether the
	// node was built with SelfClosing set (§8 invariant 2: both values
	// must serialize the same way).
	if n.ElemKind == VoidKind || n.SelfClosing {
		return
	}
	for _, c := range n.Children {
		writeNode(b, c, o)
	}
	b.WriteString("</")
	b.WriteString(n.TagName)
	b.WriteByte('>')
}

// writeAttribute renders one attribute per §4.7: boolean attributes render
// as a bare name, everything else as `name="value"`, switching to single
// quotes only when the value itself contains a double quote. Values are
// never escaped — they were captured verbatim by the lexer (§9).
func writeAttribute(b *strings.Builder, a Attribute) {
	b.WriteByte(' ')
	b.WriteString(a.Name)
	if booleanAttributes[strings.ToLower(a.Name)] {
		return
	}
	b.WriteByte('=')
	if strings.Contains(a.Value, "\"") {
		b.WriteByte('\'')
		b.WriteString(a.Value)
		b.WriteByte('\'')
		return
	}
	b.WriteByte('"')
	b.WriteString(a.Value)
	b.WriteByte('"')
}
