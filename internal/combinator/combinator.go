// Package combinator implements the lexical-primitive layer the rest of
// htmltree is built on: literal and regex matchers plus the handful of
// combinators (map, chain, alt, many, sepBy, between) needed to assemble
// them into recursive-descent grammars, each carrying a byte position so
// failures can be reported precisely.
//
// There is no backtracking across combinators beyond what Alt and Many do
// locally — a parser either consumes input and succeeds, or fails without
// side effects, leaving the caller's position untouched.
package combinator

import (
	"fmt"
	"regexp"
)

// Error is the failure value produced by a Parser. Position is the 0-based
// byte offset into the original source where the failure was detected.
type Error struct {
	Message  string
	Position int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (at byte %d)", e.Message, e.Position)
}

// Fail builds an *Error. It is the only way parsers in this package report
// failure, so that Alt can compare positions across branches.
func Fail(pos int, msg string) error {
	return &Error{Message: msg, Position: pos}
}

// Position extracts the byte offset from err if it is an *Error, or -1
// otherwise. A wrapped *Error is not unwrapped.
func Position(err error) int {
	if e, ok := err.(*Error); ok {
		return e.Position
	}
	return -1
}

// Parser consumes src starting at pos and returns either the parsed value
// and the new position, or an error. Implementations must not advance pos
// on failure.
type Parser[T any] func(src string, pos int) (T, int, error)

// Literal matches the exact string s at the current position.
func Literal(s string) Parser[string] {
	return func(src string, pos int) (string, int, error) {
		if pos+len(s) <= len(src) && src[pos:pos+len(s)] == s {
			return s, pos + len(s), nil
		}
		return "", pos, Fail(pos, fmt.Sprintf("expected %q", s))
	}
}

// LiteralFold matches s case-insensitively (ASCII) and returns the matched
// source text verbatim (not the canonical casing of s).
func LiteralFold(s string) Parser[string] {
	return func(src string, pos int) (string, int, error) {
		if pos+len(s) > len(src) {
			return "", pos, Fail(pos, fmt.Sprintf("expected %q", s))
		}
		cand := src[pos : pos+len(s)]
		if !equalFold(cand, s) {
			return "", pos, Fail(pos, fmt.Sprintf("expected %q", s))
		}
		return cand, pos + len(s), nil
	}
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// Regex anchors re at the current position: it only matches if the regular
// expression matches starting exactly at pos, not somewhere further along.
func Regex(re *regexp.Regexp, label string) Parser[string] {
	return func(src string, pos int) (string, int, error) {
		loc := re.FindStringIndex(src[pos:])
		if loc == nil || loc[0] != 0 {
			return "", pos, Fail(pos, label)
		}
		return src[pos : pos+loc[1]], pos + loc[1], nil
	}
}

var (
	whitespaceRe  = regexp.MustCompile(`^[ \t\n\f\r]*`)
	whitespace1Re = regexp.MustCompile(`^[ \t\n\f\r]+`)
)

// Whitespace matches zero or more ASCII whitespace characters.
func Whitespace(src string, pos int) (string, int, error) {
	return Regex(whitespaceRe, "whitespace")(src, pos)
}

// Whitespace1 matches one or more ASCII whitespace characters.
func Whitespace1(src string, pos int) (string, int, error) {
	return Regex(whitespace1Re, "whitespace")(src, pos)
}

// Map transforms a successful result with f.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return func(src string, pos int) (U, int, error) {
		v, next, err := p(src, pos)
		if err != nil {
			var zero U
			return zero, pos, err
		}
		return f(v), next, nil
	}
}

// Chain runs p, then feeds its result into k to build the next parser
// (monadic bind). It is how productions that depend on an earlier token,
// such as an end tag that must match the start tag's name, are expressed.
func Chain[T, U any](p Parser[T], k func(T) Parser[U]) Parser[U] {
	return func(src string, pos int) (U, int, error) {
		v, next, err := p(src, pos)
		if err != nil {
			var zero U
			return zero, pos, err
		}
		return k(v)(src, next)
	}
}

// WithError replaces the message of a failure from p with msg, keeping the
// failure's position. Used to surface the expected public-facing message
// (e.g. "Expected a valid doctype") instead of the innermost combinator's.
func WithError[T any](p Parser[T], msg string) Parser[T] {
	return func(src string, pos int) (T, int, error) {
		v, next, err := p(src, pos)
		if err != nil {
			return v, pos, Fail(Position(err), msg)
		}
		return v, next, nil
	}
}

// Alt tries each parser in order and returns the first success. If every
// branch fails, Alt returns the failure with the maximal (deepest) position,
// on the assumption that the branch that got furthest was closest to the
// author's intent.
func Alt[T any](ps ...Parser[T]) Parser[T] {
	return func(src string, pos int) (T, int, error) {
		var best error
		for _, p := range ps {
			v, next, err := p(src, pos)
			if err == nil {
				return v, next, nil
			}
			if best == nil || Position(err) > Position(best) {
				best = err
			}
		}
		var zero T
		if best == nil {
			best = Fail(pos, "no alternative matched")
		}
		return zero, pos, best
	}
}

// Many greedily applies p until it fails, collecting every success. A
// zero-width success would loop forever, so Many stops as soon as p stops
// advancing the position even on success.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(src string, pos int) ([]T, int, error) {
		var out []T
		cur := pos
		for {
			v, next, err := p(src, cur)
			if err != nil || next == cur {
				break
			}
			out = append(out, v)
			cur = next
		}
		return out, cur, nil
	}
}

// SepBy matches zero or more p separated by sep, returning just the p
// values.
func SepBy[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return func(src string, pos int) ([]T, int, error) {
		var out []T
		v, next, err := p(src, pos)
		if err != nil {
			return out, pos, nil
		}
		out = append(out, v)
		cur := next
		for {
			_, afterSep, err := sep(src, cur)
			if err != nil {
				break
			}
			v, afterP, err := p(src, afterSep)
			if err != nil {
				break
			}
			out = append(out, v)
			cur = afterP
		}
		return out, cur, nil
	}
}

// Between matches open, then body, then close, and returns only body's
// value.
func Between[O, B, C any](open Parser[O], body Parser[B], close Parser[C]) Parser[B] {
	return func(src string, pos int) (B, int, error) {
		var zero B
		_, next, err := open(src, pos)
		if err != nil {
			return zero, pos, err
		}
		v, next2, err := body(src, next)
		if err != nil {
			return zero, pos, err
		}
		_, next3, err := close(src, next2)
		if err != nil {
			return zero, pos, err
		}
		return v, next3, nil
	}
}

// Pair is the result of Seq2: the values of two parsers run in sequence.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Seq2 runs pa then pb and pairs their results. A variadic `sequence` isn't
// expressible generically in Go, so productions needing more than two
// pieces compose Seq2/Chain directly instead.
func Seq2[A, B any](pa Parser[A], pb Parser[B]) Parser[Pair[A, B]] {
	return func(src string, pos int) (Pair[A, B], int, error) {
		a, next, err := pa(src, pos)
		if err != nil {
			return Pair[A, B]{}, pos, err
		}
		b, next2, err := pb(src, next)
		if err != nil {
			return Pair[A, B]{}, pos, err
		}
		return Pair[A, B]{a, b}, next2, nil
	}
}

// SkipTrailing runs p then discards a trailing ws match.
func SkipTrailing[T, W any](p Parser[T], ws Parser[W]) Parser[T] {
	return func(src string, pos int) (T, int, error) {
		v, next, err := p(src, pos)
		if err != nil {
			var zero T
			return zero, pos, err
		}
		_, next2, _ := ws(src, next)
		return v, next2, nil
	}
}

// Opt makes p optional: if p fails without consuming input, Opt succeeds
// with zero and the original position.
func Opt[T any](p Parser[T]) Parser[T] {
	return func(src string, pos int) (T, int, error) {
		v, next, err := p(src, pos)
		if err != nil {
			var zero T
			return zero, pos, nil
		}
		return v, next, nil
	}
}
