package htmltree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// countTags counts how many Element nodes in the tree (and its descendants)
// have the given tag name.
func countTags(nodes []*Node, tag string) int {
	n := 0
	WalkFragments(nodes, func(node *Node) bool {
		if IsElementNode(node) && node.TagName == tag {
			n++
		}
		return true
	})
	return n
}

// Each case below omits the end tag the omission table allows omitting,
// relying on a later start or end tag to implicitly close the element, per
// §4.5. Every row of omissionTable not already exercised by TestScenarioS1
// (li) or TestParseThenSerializeThenParseIsIdempotent (p) gets a case here.
func TestOmissionTableRowsEndToEnd(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want map[string]int
	}{
		{
			name: "body closes on </html> (Closed)",
			src:  "<html><body>hi</html>",
			want: map[string]int{"html": 1, "body": 1},
		},
		{
			name: "caption closes on <tbody> (Open)",
			src:  "<table><caption>Title<tbody><tr><td>1</td></tr></tbody></table>",
			want: map[string]int{"table": 1, "caption": 1, "tbody": 1, "tr": 1, "td": 1},
		},
		{
			name: "colgroup closes on <tbody> (Open)",
			src:  "<table><colgroup><col><tbody><tr><td>1</td></tr></tbody></table>",
			want: map[string]int{"table": 1, "colgroup": 1, "col": 1, "tbody": 1},
		},
		{
			name: "head closes on <body> (Open)",
			src:  "<html><head><title>T</title><body>B</body></html>",
			want: map[string]int{"html": 1, "head": 1, "title": 1, "body": 1},
		},
		{
			name: "dt closes on <dd>, dd closes on </dl> (Open + Closed)",
			src:  "<dl><dt>Term<dd>Def</dl>",
			want: map[string]int{"dl": 1, "dt": 1, "dd": 1},
		},
		{
			name: "option and optgroup close on sibling <optgroup> and </select> (Open + Closed)",
			src:  "<select><optgroup><option>A<optgroup><option>B</select>",
			want: map[string]int{"select": 1, "optgroup": 2, "option": 2},
		},
		{
			name: "rt closes on <rp>, rp closes on </ruby> (Open + Closed)",
			src:  "<ruby><rt>A<rp>)</ruby>",
			want: map[string]int{"ruby": 1, "rt": 1, "rp": 1},
		},
		{
			name: "thead closes on <tbody> (Open)",
			src:  "<table><thead><tr><td>h</td></tr><tbody><tr><td>1</td></tr></tbody></table>",
			want: map[string]int{"table": 1, "thead": 1, "tbody": 1, "tr": 2, "td": 2},
		},
		{
			name: "tbody closes on sibling <tbody> and on </table> (Open + Closed)",
			src:  "<table><tbody><tr><td>1</td></tr><tbody><tr><td>2</td></tr></table>",
			want: map[string]int{"table": 1, "tbody": 2, "tr": 2, "td": 2},
		},
		{
			name: "tfoot closes on </table> (Closed)",
			src:  "<table><tbody><tr><td>1</td></tr></tbody><tfoot><tr><td>f</td></tr></table>",
			want: map[string]int{"table": 1, "tbody": 1, "tfoot": 1},
		},
		{
			name: "tr/td/th close on sibling and enclosing tags (Open + Closed)",
			src:  "<table><thead><tr><th>H1<th>H2</tr></thead><tbody><tr><td>A<td>B<tr><td>C<td>D</tr></tbody></table>",
			want: map[string]int{"table": 1, "thead": 1, "tbody": 1, "tr": 3, "th": 2, "td": 4},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nodes, err := ParseFragments(tc.src)
			require.NoError(t, err)
			for tag, want := range tc.want {
				require.Equal(t, want, countTags(nodes, tag), "count of <%s>", tag)
			}
		})
	}
}

// §4.5/§9: html and body may also close at end of input, not only via an
// explicit or implicit end tag.
func TestHtmlAndBodyCloseAtEndOfInput(t *testing.T) {
	nodes, err := ParseFragments("<html><body>unterminated")
	require.NoError(t, err)
	require.Equal(t, 1, countTags(nodes, "html"))
	require.Equal(t, 1, countTags(nodes, "body"))

	nodes, err = ParseFragments("<body>unterminated")
	require.NoError(t, err)
	require.Equal(t, 1, countTags(nodes, "body"))
}
