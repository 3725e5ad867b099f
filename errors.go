package htmltree

import "fmt"

// ParseError is the failure value every parse entry point returns when the
// input doesn't match (§7: "Failures are first-class values, not
// exceptions"). Position is a 0-based byte offset into the original input.
// cause, when set, is the lower-level failure (typically a
// *combinator.Error) this ParseError was translated from; Unwrap exposes it
// the way chtml.DecodeError wraps an inner cause instead of discarding it.
type ParseError struct {
	Message  string
	Position int

	cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (at byte %d)", e.Message, e.Position)
}

func (e *ParseError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a *ParseError with the same message, so
// callers can match sentinels like ErrUnexpectedSelfClosingTag below (or
// any *ParseError built from the fixed §6 message vocabulary) without
// caring about position.
func (e *ParseError) Is(target error) bool {
	other, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Message == other.Message
}

func newParseError(msg string, pos int) *ParseError {
	return &ParseError{Message: msg, Position: pos}
}

func wrapParseError(msg string, pos int, cause error) *ParseError {
	return &ParseError{Message: msg, Position: pos, cause: cause}
}

// Sentinel errors for the fixed message vocabulary §6 lists, so callers can
// write errors.Is(err, htmltree.ErrUnexpectedSelfClosingTag) instead of
// comparing err.(*ParseError).Message strings by hand. Position is
// meaningless on these values; Is compares Message only.
//
// "Expected a '</tagName>' end tag" is not included here: its message
// embeds the tag name, so there is no single fixed string for it to match
// against. Callers needing to detect that case should check
// err.(*ParseError).Message with a prefix/suffix match instead.
var (
	ErrInvalidStartTag               = &ParseError{Message: "Invalid start tag"}
	ErrInvalidHTMLTagName            = &ParseError{Message: "Invalid html tag name"}
	ErrInvalidCustomElementName      = &ParseError{Message: "Invalid custom element name"}
	ErrCustomElementNameMissingDash  = &ParseError{Message: "Invalid custom element name (should include a dash)"}
	ErrForbiddenCustomElementName    = &ParseError{Message: "Forbidden custom element name"}
	ErrExpectedAttributeName         = &ParseError{Message: "Expected a valid attribute name"}
	ErrExpectedAttributeValue        = &ParseError{Message: "Expected a valid attribute value"}
	ErrExpectedDoctype               = &ParseError{Message: "Expected a valid doctype"}
	ErrUnexpectedSelfClosingTag      = &ParseError{Message: "Unexpected self-closing tag on a non-void element"}
	ErrUnexpectedEndTagOnVoidElement = &ParseError{Message: "Unexpected end tag on a void element"}
	ErrExpectedTemplateElement       = &ParseError{Message: "Expected a template element"}
	ErrExpectedDeclarativeShadowRoot = &ParseError{Message: "Expected a declarative shadow root"}
	ErrInvalidComment                = &ParseError{Message: "InvalidComment"}
	ErrUnterminatedCDATA             = &ParseError{Message: "Unterminated CDATA section"}
	ErrUnexpectedTrailingContent     = &ParseError{Message: "Unexpected trailing content"}
	ErrUnexpectedClosingTag          = &ParseError{Message: "Unexpected closing tag"}
)

// MustParseElement is like ParseElement but panics on failure, mirroring
// the Parse/MustParse pairing the standard library uses (regexp.Compile /
// regexp.MustCompile) for the "throw" variant §7 allows.
func MustParseElement(input string) *Node {
	n, err := ParseElement(input)
	if err != nil {
		panic(err)
	}
	return n
}

// MustParseFragments is the panicking variant of ParseFragments.
func MustParseFragments(input string) []*Node {
	n, err := ParseFragments(input)
	if err != nil {
		panic(err)
	}
	return n
}

// MustParseHtml is the panicking variant of ParseHtml.
func MustParseHtml(input string) []*Node {
	n, err := ParseHtml(input)
	if err != nil {
		panic(err)
	}
	return n
}

// MustParseShadowRoot is the panicking variant of ParseShadowRoot.
func MustParseShadowRoot(input string) []*Node {
	n, err := ParseShadowRoot(input)
	if err != nil {
		panic(err)
	}
	return n
}
