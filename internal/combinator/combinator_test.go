package combinator

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLiteral(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		pos     int
		wantOK  bool
		wantPos int
	}{
		{"match at start", "hello", 0, true, 5},
		{"match mid string", "xxhello", 2, true, 7},
		{"mismatch", "world", 0, false, 0},
		{"too short", "he", 0, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, next, err := Literal("hello")(tc.src, tc.pos)
			if tc.wantOK {
				require.NoError(t, err)
				require.Equal(t, "hello", v)
				require.Equal(t, tc.wantPos, next)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestLiteralFold(t *testing.T) {
	v, next, err := LiteralFold("DOCTYPE")("<!doctype html>", 2)
	require.NoError(t, err)
	require.Equal(t, "doctype", v)
	require.Equal(t, 9, next)
}

func TestRegexAnchored(t *testing.T) {
	re := regexp.MustCompile(`[A-Za-z][A-Za-z0-9]*`)
	p := Regex(re, "tag name")

	v, next, err := p("<div>", 1)
	require.NoError(t, err)
	require.Equal(t, "div", v)
	require.Equal(t, 4, next)

	// The regex must match right at pos, not merely appear later in src.
	_, _, err = p("123abc", 0)
	require.Error(t, err)
}

func TestManyStopsOnZeroWidthMatch(t *testing.T) {
	zeroWidth := func(src string, pos int) (string, int, error) {
		return "", pos, nil
	}
	out, next, err := Many(zeroWidth)("abc", 0)
	require.NoError(t, err)
	require.Equal(t, 0, next)
	require.Len(t, out, 0)
}

func TestAltReturnsDeepestFailure(t *testing.T) {
	shallow := func(src string, pos int) (string, int, error) {
		return "", pos, Fail(pos, "shallow")
	}
	deep := func(src string, pos int) (string, int, error) {
		return "", pos, Fail(pos+5, "deep")
	}
	_, _, err := Alt(shallow, deep)("abcdefghij", 0)
	require.Error(t, err)
	require.Equal(t, 5, Position(err))
	require.Contains(t, err.Error(), "deep")
}

func TestSepBy(t *testing.T) {
	digit := Regex(regexp.MustCompile(`[0-9]+`), "digit")
	comma := Literal(",")
	out, next, err := SepBy(digit, comma)("1,22,333", 0)
	require.NoError(t, err)
	require.Equal(t, []string{"1", "22", "333"}, out)
	require.Equal(t, 8, next)
}

func TestBetween(t *testing.T) {
	body := Regex(regexp.MustCompile(`[^)]*`), "body")
	p := Between(Literal("("), body, Literal(")"))
	v, next, err := p("(abc)rest", 0)
	require.NoError(t, err)
	require.Equal(t, "abc", v)
	require.Equal(t, 5, next)
}

func TestChainReferencesEarlierResult(t *testing.T) {
	name := Regex(regexp.MustCompile(`[a-z]+`), "name")
	p := Chain(name, func(n string) Parser[string] {
		return Literal("</" + n + ">")
	})
	_, next, err := p("div</div>", 0)
	require.NoError(t, err)
	require.Equal(t, 9, next)

	_, _, err = p("div</span>", 0)
	require.Error(t, err)
}

func TestOptSucceedsWhenAbsent(t *testing.T) {
	p := Opt(Literal("/"))
	v, next, err := p("abc", 0)
	require.NoError(t, err)
	require.Equal(t, "", v)
	require.Equal(t, 0, next)
}
