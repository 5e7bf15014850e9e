// Package mdast models the intermediate markdown AST produced by tree
// lowering. The tree is re-walkable - a downstream serializer (Render in
// this package) turns it into CommonMark bytes, but nothing prevents other
// consumers from walking it directly.
package mdast

// Kind discriminates node variants.
type Kind int

const (
	KindDocument Kind = iota
	KindHeading
	KindParagraph
	KindText
	KindList
	KindItem
	KindLink
	KindImage
	KindTable
	KindTableRow
	KindTableCell
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindText:
		return "text"
	case KindList:
		return "list"
	case KindItem:
		return "item"
	case KindLink:
		return "link"
	case KindImage:
		return "image"
	case KindTable:
		return "table"
	case KindTableRow:
		return "table_row"
	case KindTableCell:
		return "table_cell"
	default:
		return "unknown"
	}
}

// Node is a single AST node. Only the fields relevant to the Kind are
// meaningful, everything else stays at its zero value.
type Node struct {
	Kind     Kind
	Literal  string // KindText
	Level    int    // KindHeading, 1..6
	Ordered  bool   // KindList
	Start    int    // KindList, first ordinal of an ordered list
	URL      string // KindLink, KindImage
	Title    string // KindLink, KindImage
	Columns  int    // KindTable
	Rows     int    // KindTable, data rows plus header row
	Header   bool   // KindTableRow
	Children []*Node
}

// NewNode creates a node of the given kind with no children.
func NewNode(kind Kind) *Node {
	return &Node{Kind: kind}
}

// NewText creates a leaf text node.
func NewText(literal string) *Node {
	return &Node{Kind: KindText, Literal: literal}
}

// Append adds child nodes preserving order.
func (n *Node) Append(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Text returns the concatenated literal content of the node subtree.
func (n *Node) Text() string {
	if n.Kind == KindText {
		return n.Literal
	}
	var out string
	for _, c := range n.Children {
		out += c.Text()
	}
	return out
}
