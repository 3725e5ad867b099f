package htmltree

import (
	"regexp"
	"strings"

	"github.com/markuplab/htmltree/internal/combinator"
	"github.com/markuplab/htmltree/internal/lex"
)

// parser holds the state for a single parse: just the foreign-namespace
// stack (§5 prefers confining it to a parser instance over process-wide
// state). There is nothing else to track — the grammar is recursive
// descent over an immutable src string and a byte position.
type parser struct {
	src   string
	stack foreignStack
}

// wrapErr converts a failure from internal/combinator or internal/lex (a
// *combinator.Error) into the public *ParseError type, preserving its
// message and position.
func wrapErr(err error, fallbackPos int) *ParseError {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*combinator.Error); ok {
		return wrapParseError(ce.Message, ce.Position, ce)
	}
	return wrapParseError(err.Error(), fallbackPos, err)
}

// ParseElement parses a single element (§6).
func ParseElement(input string) (*Node, error) {
	p := &parser{src: input}
	n, next, err := p.parseElementAt(0)
	if err != nil {
		return nil, err
	}
	if next != len(input) {
		return nil, newParseError("Unexpected trailing content", next)
	}
	return n, nil
}

// ParseFragments parses a sequence of text/element/comment nodes (§4.6)
// with no enclosing element and no doctype.
func ParseFragments(input string) ([]*Node, error) {
	p := &parser{src: input}
	nodes, next, err := p.parseSequence(0, "", omissionRule{}, false)
	if err != nil {
		return nil, err
	}
	if next != len(input) {
		return nil, newParseError("Unexpected closing tag", next)
	}
	return nodes, nil
}

// ParseHtml parses a full document (§4.6): an optional BOM, optional
// whitespace/comments, a required doctype, optional whitespace/comments,
// exactly one root element, and optional trailing whitespace/comments.
func ParseHtml(input string) ([]*Node, error) {
	p := &parser{src: input}
	var out []*Node
	pos := 0

	const bom = "﻿"
	if strings.HasPrefix(input, bom) {
		out = append(out, &Node{Kind: TextNode, Text: bom})
		pos += len(bom)
	}

	pos = p.skipWsAndComments(pos, &out)

	doctypeText, next, err := lex.Doctype(input, pos)
	if err != nil {
		return nil, newParseError("Expected a valid doctype", pos)
	}
	out = append(out, &Node{Kind: TextNode, Text: doctypeText})
	pos = next

	pos = p.skipWsAndComments(pos, &out)

	root, next, perr := p.parseElementAt(pos)
	if perr != nil {
		return nil, perr
	}
	out = append(out, root)
	pos = next

	pos = p.skipWsAndComments(pos, &out)

	if pos != len(input) {
		return nil, newParseError("Unexpected trailing content", pos)
	}
	return out, nil
}

var wsRe = regexp.MustCompile(`^[ \t\n\f\r]+`)

// skipWsAndComments consumes whitespace and comments starting at pos,
// appending any comments encountered (in source order) to *out, and
// returns the position just after the last one consumed.
func (p *parser) skipWsAndComments(pos int, out *[]*Node) int {
	for {
		if m := wsRe.FindString(p.src[pos:]); m != "" {
			pos += len(m)
			continue
		}
		if strings.HasPrefix(p.src[pos:], "<!--") {
			body, next, err := lex.CommentBody(p.src, pos+4)
			if err != nil {
				return pos
			}
			*out = append(*out, &Node{Kind: CommentNode, Text: body})
			pos = next
			continue
		}
		return pos
	}
}

// ParseShadowRoot parses a fragment whose last element must be a
// <template shadowrootmode="open"> (§4.6).
func ParseShadowRoot(input string) ([]*Node, error) {
	nodes, err := ParseFragments(input)
	if err != nil {
		return nil, err
	}
	var lastElem *Node
	for _, n := range nodes {
		if n.Kind == ElementNode {
			lastElem = n
		}
	}
	if lastElem == nil || !strings.EqualFold(lastElem.TagName, "template") {
		return nil, newParseError("Expected a template element", 0)
	}
	mode := ""
	for _, a := range lastElem.Attributes {
		if strings.EqualFold(a.Name, "shadowrootmode") {
			mode = a.Value
		}
	}
	if mode != "open" {
		return nil, newParseError("Expected a declarative shadow root", 0)
	}
	return nodes, nil
}

// parseElementAt parses one element starting at the '<' at pos (§4.4).
func (p *parser) parseElementAt(pos int) (*Node, int, error) {
	src := p.src
	if pos >= len(src) || src[pos] != '<' {
		return nil, pos, newParseError("Invalid start tag", pos)
	}

	tagRes, afterName, err := lex.TagName(src, pos+1)
	if err != nil {
		return nil, pos, wrapErr(err, pos+1)
	}
	rawName := tagRes.Name

	// Attributes: whitespace, then zero or more `name` / `name=value`.
	var attrs []Attribute
	_, cur, _ := skipWhitespace(src, afterName)
	for cur < len(src) && src[cur] != '>' && src[cur] != '/' {
		a, next, aerr := lex.Attribute(src, cur)
		if aerr != nil {
			return nil, pos, newParseError("Expected a valid attribute name", cur)
		}
		attrs = append(attrs, Attribute{Name: a.Name, Value: a.Value})
		cur = next
	}

	selfCloseTokenPos := -1
	var endTokenSelfClose bool
	switch {
	case cur+1 < len(src) && src[cur] == '/' && src[cur+1] == '>':
		selfCloseTokenPos = cur
		endTokenSelfClose = true
		cur += 2
	case cur < len(src) && src[cur] == '>':
		cur++
	default:
		return nil, pos, newParseError("Invalid start tag", cur)
	}

	kind := classify(rawName, p.stack)
	isRoot := isForeignRoot(rawName)

	displayName := rawName
	if kind != ForeignKind {
		displayName = strings.ToLower(rawName)
	}

	selfClosing := endTokenSelfClose || kind == VoidKind
	if selfClosing && kind != VoidKind && kind != ForeignKind {
		epos := selfCloseTokenPos
		if epos < 0 {
			epos = cur
		}
		return nil, pos, newParseError("Unexpected self-closing tag on a non-void element", epos)
	}

	if isRoot {
		p.stack.push(strings.ToLower(rawName))
	}
	popIfRoot := func() {
		if isRoot {
			p.stack.pop()
		}
	}

	n := &Node{
		Kind:        ElementNode,
		TagName:     displayName,
		ElemKind:    kind,
		Attributes:  attrs,
		SelfClosing: selfClosing,
	}

	if selfClosing {
		// §4.4 step 3: void/self-closing elements never have children;
		// an explicit end tag right after is an error.
		_, wsEnd, _ := skipWhitespace(src, cur)
		if ownEndTagRegex(rawName).MatchString(src[wsEnd:]) {
			popIfRoot()
			return nil, pos, newParseError("Unexpected end tag on a void element", wsEnd)
		}
		popIfRoot()
		return n, cur, nil
	}

	var children []*Node
	var stopPos int
	var cerr error

	switch kind {
	case RawTextKind, EscapableRawTextKind:
		children, stopPos, cerr = p.parseRawTextBody(cur, rawName)
	default:
		rule, hasRule := omissionTable[strings.ToLower(rawName)]
		children, stopPos, cerr = p.parseSequence(cur, rawName, rule, hasRule)
	}
	if cerr != nil {
		popIfRoot()
		return nil, pos, cerr
	}
	n.Children = children
	for _, c := range n.Children {
		c.Parent = n
	}

	rule, hasRule := omissionTable[strings.ToLower(rawName)]
	if endPos, ok := p.tryConsumeOwnEndTag(stopPos, rawName); ok {
		popIfRoot()
		return n, endPos, nil
	}
	if stopPos >= len(src) {
		if hasRule && rule.EOF {
			popIfRoot()
			return n, stopPos, nil
		}
		popIfRoot()
		return nil, pos, newParseError("Expected a '</"+displayName+">' end tag", stopPos)
	}
	if hasRule && closeLookaheadSatisfied(src, stopPos, rule) {
		popIfRoot()
		return n, stopPos, nil
	}
	popIfRoot()
	return nil, pos, newParseError("Expected a '</"+displayName+">' end tag", stopPos)
}

// parseRawTextBody consumes a RAW_TEXT/ESCAPABLE_RAW_TEXT body (§4.4 step
// 4): everything up to (not including) the first occurrence of
// "</tagName" followed by a tag-name boundary character.
func (p *parser) parseRawTextBody(pos int, tagName string) ([]*Node, int, error) {
	re := rawTextCloserRegex(tagName)
	loc := re.FindStringIndex(p.src[pos:])
	end := len(p.src)
	if loc != nil {
		end = pos + loc[0]
	}
	if end == pos {
		return nil, pos, nil
	}
	return []*Node{{Kind: TextNode, Text: p.src[pos:end]}}, end, nil
}

// parseSequence parses children (§4.4 step 4, and §4.6 for the no-
// enclosing-element fragment case when hasRule is false and tagName ""):
// alternating Text, Element, Comment, and — inside a foreign subtree —
// CDATA, stopping as soon as input is exhausted or an end tag (our own,
// an omission-table trigger, or anything else starting with "</") is seen.
func (p *parser) parseSequence(pos int, tagName string, rule omissionRule, hasRule bool) ([]*Node, int, error) {
	src := p.src
	var out []*Node
	cur := pos
	for {
		if cur >= len(src) {
			return out, cur, nil
		}
		if src[cur] == '<' {
			if strings.HasPrefix(src[cur:], "<!--") {
				body, next, err := lex.CommentBody(src, cur+4)
				if err != nil {
					return nil, cur, wrapErr(err, cur)
				}
				out = append(out, &Node{Kind: CommentNode, Text: body})
				cur = next
				continue
			}
			if p.stack.inForeign() && strings.HasPrefix(src[cur:], "<![CDATA[") {
				body, next, err := lex.CDATABody(src, cur+len("<![CDATA["))
				if err != nil {
					return nil, cur, wrapErr(err, cur)
				}
				out = append(out, &Node{Kind: CDATANode, Text: body})
				cur = next
				continue
			}
			if strings.HasPrefix(src[cur:], "</") {
				return out, cur, nil
			}
			if hasRule && len(rule.Open) > 0 {
				if name, ok := peekTagName(src, cur+1); ok && containsFold(rule.Open, name) {
					return out, cur, nil
				}
			}
			child, next, err := p.parseElementAt(cur)
			if err != nil {
				return nil, cur, err
			}
			out = append(out, child)
			cur = next
			continue
		}
		txt, next, _ := lex.TextRun(src, cur)
		out = append(out, &Node{Kind: TextNode, Text: txt})
		cur = next
	}
}

// tryConsumeOwnEndTag consumes a literal `</tagName\s*>` at pos, case-
// insensitively, if present.
func (p *parser) tryConsumeOwnEndTag(pos int, tagName string) (int, bool) {
	re := ownEndTagRegex(tagName)
	loc := re.FindStringIndex(p.src[pos:])
	if loc == nil || loc[0] != 0 {
		return pos, false
	}
	return pos + loc[1], true
}

// closeLookaheadSatisfied reports whether pos sits at a token that, per
// rule, implicitly closes the enclosing element without being consumed:
// either a start tag whose name is in rule.Open, or an end tag whose name
// is in rule.Closed.
func closeLookaheadSatisfied(src string, pos int, rule omissionRule) bool {
	if pos >= len(src) || src[pos] != '<' {
		return false
	}
	if strings.HasPrefix(src[pos:], "</") {
		name, ok := peekTagName(src, pos+2)
		return ok && containsFold(rule.Closed, name)
	}
	name, ok := peekTagName(src, pos+1)
	return ok && containsFold(rule.Open, name)
}

var peekTagNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9\-_.]*`)

func peekTagName(src string, pos int) (string, bool) {
	if pos > len(src) {
		return "", false
	}
	m := peekTagNameRe.FindString(src[pos:])
	if m == "" {
		return "", false
	}
	return m, true
}

func containsFold(list []string, name string) bool {
	for _, s := range list {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

var leadingWsRe = regexp.MustCompile(`^[ \t\n\f\r]*`)

func skipWhitespace(src string, pos int) (string, int, error) {
	m := leadingWsRe.FindString(src[pos:])
	return m, pos + len(m), nil
}

var (
	ownEndTagRegexCache = map[string]*regexp.Regexp{}
	rawTextCloserCache  = map[string]*regexp.Regexp{}
)

func ownEndTagRegex(tagName string) *regexp.Regexp {
	key := strings.ToLower(tagName)
	if re, ok := ownEndTagRegexCache[key]; ok {
		return re
	}
	re := regexp.MustCompile(`(?i)^</` + regexp.QuoteMeta(tagName) + `[ \t\n\f\r]*>`)
	ownEndTagRegexCache[key] = re
	return re
}

func rawTextCloserRegex(tagName string) *regexp.Regexp {
	key := strings.ToLower(tagName)
	if re, ok := rawTextCloserCache[key]; ok {
		return re
	}
	re := regexp.MustCompile(`(?i)</` + regexp.QuoteMeta(tagName) + `[ \t\n\f\r/>]`)
	rawTextCloserCache[key] = re
	return re
}
