package htmltree

// omissionRule describes, for one element, the follow sets that implicitly
// close it (§4.5): Open holds start-tag names that close it before being
// consumed, Closed holds end-tag names that close it (and are themselves
// consumed by the outer context), and EOF marks elements that may also
// close at end of input.
type omissionRule struct {
	Open   []string
	Closed []string
	EOF    bool
}

var pOpen = []string{
	"address", "article", "aside", "blockquote", "div", "dl", "fieldset",
	"figcaption", "figure", "footer", "form", "h1", "h2", "h3", "h4", "h5", "h6",
	"header", "hgroup", "hr", "main", "menu", "nav", "ol", "p", "pre",
	"section", "table", "ul",
}

var pClosed = []string{
	"address", "article", "aside", "body", "blockquote", "caption", "details",
	"dialog", "div", "dd", "dt", "fieldset", "figure", "figcaption", "footer",
	"form", "header", "hgroup", "li", "main", "nav", "object", "search",
	"section", "td", "th", "template",
}

// omissionTable is the authoritative data of §4.5.
var omissionTable = map[string]omissionRule{
	"body":     {Closed: []string{"html"}, EOF: true},
	"caption":  {Open: []string{"colgroup", "col", "thead", "tbody", "tfoot", "tr", "th", "td"}},
	"colgroup": {Open: []string{"thead", "tbody", "tfoot", "tr"}},
	"head":     {Open: []string{"body"}},
	"html":     {EOF: true},
	"li":       {Open: []string{"li"}, Closed: []string{"ul", "ol", "menu"}},
	"dd":       {Open: []string{"dd", "dt"}, Closed: []string{"dl", "div"}},
	"dt":       {Open: []string{"dd", "dt"}},
	"option":   {Open: []string{"option", "optgroup", "hr"}, Closed: []string{"select", "datalist", "optgroup"}},
	"optgroup": {Open: []string{"optgroup", "hr"}, Closed: []string{"select"}},
	"p":        {Open: pOpen, Closed: pClosed},
	"rt":       {Open: []string{"rt", "rp"}, Closed: []string{"ruby"}},
	"rp":       {Open: []string{"rt", "rp"}, Closed: []string{"ruby"}},
	"thead":    {Open: []string{"tbody", "tfoot"}},
	"tbody":    {Open: []string{"tbody", "tfoot"}, Closed: []string{"table"}},
	"tfoot":    {Closed: []string{"table"}},
	"td":       {Open: []string{"td", "th", "tr"}, Closed: []string{"tr", "table"}},
	"th":       {Open: []string{"td", "th", "tbody"}, Closed: []string{"tr", "thead"}},
	"tr":       {Open: []string{"tr", "tbody"}, Closed: []string{"table", "thead"}},
}
