package htmltree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyKnownKinds(t *testing.T) {
	cases := []struct {
		tag  string
		want ElementKind
	}{
		{"div", NormalKind},
		{"br", VoidKind},
		{"INPUT", VoidKind},
		{"script", RawTextKind},
		{"style", RawTextKind},
		{"textarea", EscapableRawTextKind},
		{"title", EscapableRawTextKind},
		{"template", TemplateKind},
		{"svg", ForeignKind},
		{"math", ForeignKind},
	}
	for _, tc := range cases {
		t.Run(tc.tag, func(t *testing.T) {
			require.Equal(t, tc.want, classify(tc.tag, nil))
		})
	}
}

func TestClassifyInheritsForeignFromStack(t *testing.T) {
	var stack foreignStack
	stack.push("svg")
	require.Equal(t, ForeignKind, classify("animateTransform", stack))
	require.Equal(t, ForeignKind, classify("rect", stack))
}

func TestClassifyCustomElementIsNormalOutsideForeign(t *testing.T) {
	require.Equal(t, NormalKind, classify("my-widget", nil))
}

func TestForeignStackPushPop(t *testing.T) {
	var s foreignStack
	require.False(t, s.inForeign())
	s.push("svg")
	require.True(t, s.inForeign())
	s.push("math")
	require.True(t, s.inForeign())
	s.pop()
	require.True(t, s.inForeign())
	s.pop()
	require.False(t, s.inForeign())
	// Popping an empty stack must not panic.
	s.pop()
	require.False(t, s.inForeign())
}

func TestIsForeignRoot(t *testing.T) {
	require.True(t, isForeignRoot("svg"))
	require.True(t, isForeignRoot("MATH"))
	require.False(t, isForeignRoot("div"))
}
