// Package document defines the canonical, format-agnostic document tree
// shared by all transformers. Elements are created empty when a structural
// scope opens, mutated in place while the scope is open and sealed into
// their parent when it closes, so every variant with mutable state is a
// pointer type.
package document

// Element is the closed set of semantic node variants a document is built
// from. Each element owns its children exclusively - the tree has no
// sharing and no cycles.
type Element interface {
	element()
}

// Header is a leaf heading element. Text accumulates incrementally while
// the heading scope is open.
type Header struct {
	Level int // 1..6
	Text  string
}

// Paragraph holds an ordered sequence of inline elements, typically Text,
// Hyperlink and Image runs.
type Paragraph struct {
	Elements []Element
}

// Text is a leaf run of text.
type Text struct {
	Text string
	Size int
}

// List holds ordered list items. A List nested inside a ListItem element
// represents a sub-list, giving unbounded nesting depth through containment
// alone - there are no parent back-references.
type List struct {
	Elements []ListItem
	Numbered bool
}

// ListItem wraps a single element of a list.
type ListItem struct {
	Element Element
}

// Hyperlink is a leaf link element.
type Hyperlink struct {
	Title string
	URL   string
	Alt   string
	Size  int
}

// Table holds header cells and data rows. Every row is expected to carry
// exactly len(Headers) cells - a row is closed once it reaches that count.
type Table struct {
	Headers []TableHeader
	Rows    []TableRow
}

// TableHeader is a single header cell with its column width.
type TableHeader struct {
	Element Element
	Width   float64
}

// TableRow is an ordered sequence of data cells.
type TableRow struct {
	Cells []TableCell
}

// TableCell wraps a single cell element.
type TableCell struct {
	Element Element
}

func (*Header) element()    {}
func (*Paragraph) element() {}
func (*Text) element()      {}
func (*List) element()      {}
func (*Hyperlink) element() {}
func (*Image) element()     {}
func (*Table) element()     {}
