// Package lex implements the name & attribute lexer (tag names, attribute
// names/values, comment bodies, CDATA bodies, the doctype, and plain text
// runs) on top of internal/combinator's primitives.
package lex

import (
	"regexp"
	"strings"

	"github.com/markuplab/htmltree/internal/combinator"
)

// Attr is a single parsed (name, value) attribute pair, in source order.
type Attr struct {
	Name  string
	Value string
}

var textRunRe = regexp.MustCompile(`[^<]+`)

// TextRun matches the longest non-empty run of characters that aren't '<'.
func TextRun(src string, pos int) (string, int, error) {
	return combinator.Regex(textRunRe, "text")(src, pos)
}

// CommentBody matches the body of a `<!--...-->` comment, given pos pointing
// just after the opening `<!--`. It returns the verbatim body (not
// including the closing `-->`) and the position just after `-->`.
func CommentBody(src string, pos int) (string, int, error) {
	idx := strings.Index(src[pos:], "-->")
	if idx == -1 {
		return "", pos, combinator.Fail(pos, "InvalidComment")
	}
	body := src[pos : pos+idx]
	end := pos + idx + len("-->")

	switch {
	case strings.HasPrefix(body, ">"):
	case strings.HasPrefix(body, "->"):
	case strings.Contains(body, "<!--"):
	case strings.Contains(body, "--!>"):
	case strings.HasSuffix(body, "<!-"):
	default:
		return body, end, nil
	}
	return "", pos, combinator.Fail(pos, "InvalidComment")
}

// Doctype matches a case-insensitive `<!DOCTYPE html>` (with any amount of
// whitespace between DOCTYPE and html, and optional whitespace before the
// closing `>`) and returns the canonical text "<!DOCTYPE html>".
func Doctype(src string, pos int) (string, int, error) {
	p := combinator.Chain(combinator.LiteralFold("<!DOCTYPE"), func(string) combinator.Parser[string] {
		return combinator.Chain(combinator.Whitespace1, func(string) combinator.Parser[string] {
			return combinator.Chain(combinator.LiteralFold("html"), func(string) combinator.Parser[string] {
				return combinator.Chain(combinator.Whitespace, func(string) combinator.Parser[string] {
					return combinator.Literal(">")
				})
			})
		})
	})
	_, next, err := p(src, pos)
	if err != nil {
		return "", pos, combinator.Fail(pos, "Expected a valid doctype")
	}
	return "<!DOCTYPE html>", next, nil
}

// CDATABody matches the body of a `<![CDATA[...]]>` section, given pos
// pointing just after the opening `<![CDATA[`.
func CDATABody(src string, pos int) (string, int, error) {
	idx := strings.Index(src[pos:], "]]>")
	if idx == -1 {
		return "", pos, combinator.Fail(pos, "Unterminated CDATA section")
	}
	return src[pos : pos+idx], pos + idx + len("]]>"), nil
}

// htmlTagNameRe matches a plain HTML tag name: a letter followed by letters
// or digits.
var htmlTagNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*`)

// customTagNameRe matches the practical PCEN (Potential Custom Element
// Name) subset this implementation recognizes: a letter followed by
// letters, digits, hyphens, dots, or underscores. The full PCEN grammar
// also allows a range of non-ASCII code points; §1 of the specification
// scopes this library to a practical subset of the living standard, so
// those ranges are not matched here.
var customTagNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9\-_.]*`)

var forbiddenCustomNames = map[string]bool{
	"annotation-xml":   true,
	"color-profile":    true,
	"font-face":        true,
	"font-face-src":    true,
	"font-face-uri":    true,
	"font-face-format": true,
	"font-face-name":   true,
	"missing-glyph":    true,
}

// TagNameResult is the result of TagName: the matched name text (casing as
// written in the source) and whether it was recognized as a custom-element
// name rather than a plain HTML tag name.
type TagNameResult struct {
	Name   string
	Custom bool
}

// TagName matches a tag name per §4.2: either a custom-element name (must
// contain a hyphen, must not be one of the forbidden SVG/MathML look-alikes)
// or a plain HTML tag name ([A-Za-z][A-Za-z0-9]*).
func TagName(src string, pos int) (TagNameResult, int, error) {
	m := customTagNameRe.FindString(src[pos:])
	if m == "" {
		return TagNameResult{}, pos, combinator.Fail(pos, "Invalid html tag name")
	}
	if htmlTagNameRe.FindString(m) == m {
		// Pure alphanumeric: a plain HTML tag name, not a custom element.
		return TagNameResult{Name: m, Custom: false}, pos + len(m), nil
	}
	if !strings.Contains(m, "-") {
		return TagNameResult{}, pos, combinator.Fail(pos, "Invalid custom element name (should include a dash)")
	}
	if forbiddenCustomNames[strings.ToLower(m)] {
		return TagNameResult{}, pos, combinator.Fail(pos, "Forbidden custom element name")
	}
	return TagNameResult{Name: m, Custom: true}, pos + len(m), nil
}

var attrNameRe = regexp.MustCompile(`^[^ \t\n\f\r\v"'>/=\x{7F}-\x{9F}\x{FDD0}-\x{FDEF}]+`)

// AttrName matches an attribute name, trimming trailing whitespace.
func AttrName(src string, pos int) (string, int, error) {
	m := attrNameRe.FindString(src[pos:])
	if m == "" {
		return "", pos, combinator.Fail(pos, "Expected a valid attribute name")
	}
	_, next, _ := combinator.Whitespace(src, pos+len(m))
	return m, next, nil
}

var (
	singleQuotedRe = regexp.MustCompile(`^'[^']*'`)
	doubleQuotedRe = regexp.MustCompile(`^"[^"]*"`)
	unquotedRe     = regexp.MustCompile(`^[^ \t\n\f\r\v='"<>]+`)
)

// unquote strips a single layer of matching quotes, if present.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// AttrValue matches one of the three attribute-value forms (§4.2): single-
// quoted, double-quoted, or unquoted (which greedily swallows a trailing
// '/', the WHATWG behavior §9 documents and preserves).
func AttrValue(src string, pos int) (string, int, error) {
	for _, re := range []*regexp.Regexp{singleQuotedRe, doubleQuotedRe, unquotedRe} {
		if m := re.FindString(src[pos:]); m != "" {
			_, next, _ := combinator.Whitespace(src, pos+len(m))
			return unquote(m), next, nil
		}
	}
	return "", pos, combinator.Fail(pos, "Expected a valid attribute value")
}

// Attribute matches `name` alone (value "") or `name '=' whitespace* value`,
// consuming trailing whitespace either way.
func Attribute(src string, pos int) (Attr, int, error) {
	name, next, err := AttrName(src, pos)
	if err != nil {
		return Attr{}, pos, err
	}
	eqNext, hasEq := next, false
	if eqNext < len(src) && src[eqNext] == '=' {
		hasEq = true
		eqNext++
		_, eqNext, _ = combinator.Whitespace(src, eqNext)
	}
	if !hasEq {
		return Attr{Name: name, Value: ""}, next, nil
	}
	val, valNext, err := AttrValue(src, eqNext)
	if err != nil {
		return Attr{}, pos, err
	}
	return Attr{Name: name, Value: val}, valNext, nil
}
