package htmltree

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// foreignStack tracks the nesting of svg/math subtrees for a single parse
// (§4.3, §5). It is deliberately a plain value threaded through the parser
// struct rather than package-level state, so that a failure partway
// through a foreign subtree cannot leak stack entries into a later,
// unrelated parse.
type foreignStack []string

func (s *foreignStack) push(root string) { *s = append(*s, root) }

func (s *foreignStack) pop() {
	if n := len(*s); n > 0 {
		*s = (*s)[:n-1]
	}
}

func (s foreignStack) inForeign() bool { return len(s) > 0 }

// isForeignRoot reports whether tag is one of the two elements that open a
// foreign subtree.
func isForeignRoot(tag string) bool {
	switch atom.Lookup([]byte(strings.ToLower(tag))) {
	case atom.Svg, atom.Math:
		return true
	default:
		return false
	}
}

// classify implements §4.3's classifier. tag is matched case-insensitively
// against the known HTML element sets via golang.org/x/net/html/atom
// (the same interning trick the teacher's tree builder uses), so that
// classification doesn't allocate a map lookup per tag on the hot path.
func classify(tag string, stack foreignStack) ElementKind {
	switch atom.Lookup([]byte(strings.ToLower(tag))) {
	case atom.Template:
		return TemplateKind
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr,
		atom.Img, atom.Input, atom.Link, atom.Meta, atom.Source, atom.Track, atom.Wbr:
		return VoidKind
	case atom.Script, atom.Style:
		return RawTextKind
	case atom.Textarea, atom.Title:
		return EscapableRawTextKind
	case atom.Svg, atom.Math:
		return ForeignKind
	}
	if stack.inForeign() {
		return ForeignKind
	}
	return NormalKind
}
