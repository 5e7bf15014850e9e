// Package markdown converts between markdown bytes and the canonical
// document tree. The concrete syntax is handled by goldmark: Tokenize
// flattens its AST into the structural event stream the tree builder
// consumes, and lowering produces an mdast tree the CommonMark renderer
// serializes back to bytes.
package markdown

import (
	"fmt"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	gtext "github.com/yuin/goldmark/text"

	"shiva/document"
)

// Kind of a structural event.
type Kind int

const (
	KindStart Kind = iota
	KindText
	KindEnd
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindText:
		return "text"
	case KindEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Tag identifies the structural scope a start/end event delimits.
type Tag int

const (
	TagNone Tag = iota
	TagParagraph
	TagHeading
	TagList
	TagItem
	TagTable
	TagTableHead
	TagTableRow
	TagTableCell
	TagLink
	TagImage
	TagOther // recognized by the tokenizer but not by the builder
)

func (t Tag) String() string {
	switch t {
	case TagParagraph:
		return "paragraph"
	case TagHeading:
		return "heading"
	case TagList:
		return "list"
	case TagItem:
		return "item"
	case TagTable:
		return "table"
	case TagTableHead:
		return "table_head"
	case TagTableRow:
		return "table_row"
	case TagTableCell:
		return "table_cell"
	case TagLink:
		return "link"
	case TagImage:
		return "image"
	case TagOther:
		return "other"
	default:
		return "none"
	}
}

// Event is a single flat structural event: a scope start, a text run or a
// scope end. Only fields relevant to the tag carry values.
type Event struct {
	Kind     Kind
	Tag      Tag
	Text     string // KindText
	Level    int    // TagHeading
	Numbered bool   // TagList
	URL      string // TagLink, TagImage
	Title    string // TagLink, TagImage
	Name     string // TagOther, the original node kind for diagnostics
}

// Tokenize parses markdown bytes and flattens the resulting AST into the
// structural event sequence. Adjacent text events are merged so multi-line
// content arrives as single runs. Paragraph wrappers inside list items and
// table cells are transparent - their text flows directly, matching how
// the builder routes list and table content.
func Tokenize(src []byte) ([]Event, error) {
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", document.ErrInvalidEncoding)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))
	root := md.Parser().Parse(gtext.NewReader(src))

	var events []Event
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		events = append(events, nodeEvents(n, entering, src)...)
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to walk markdown tree: %w", err)
	}
	return mergeText(events), nil
}

func nodeEvents(n ast.Node, entering bool, src []byte) []Event {
	boundary := func(ev Event) []Event {
		if entering {
			ev.Kind = KindStart
		} else {
			ev.Kind = KindEnd
		}
		return []Event{ev}
	}

	switch v := n.(type) {
	case *ast.Document:
		return nil
	case *ast.Heading:
		return boundary(Event{Tag: TagHeading, Level: v.Level})
	case *ast.Paragraph:
		if p := n.Parent(); p != nil && p.Kind() == ast.KindListItem {
			// List item content arrives bare, the item itself is the scope.
			return nil
		}
		return boundary(Event{Tag: TagParagraph})
	case *ast.TextBlock:
		return nil
	case *ast.List:
		return boundary(Event{Tag: TagList, Numbered: v.IsOrdered()})
	case *ast.ListItem:
		return boundary(Event{Tag: TagItem})
	case *ast.Link:
		return boundary(Event{Tag: TagLink, URL: string(v.Destination), Title: string(v.Title)})
	case *ast.AutoLink:
		if entering {
			url := string(v.URL(src))
			return []Event{
				{Kind: KindStart, Tag: TagLink, URL: url, Title: string(v.Label(src))},
			}
		}
		return []Event{{Kind: KindEnd, Tag: TagLink}}
	case *ast.Image:
		return boundary(Event{Tag: TagImage, URL: string(v.Destination), Title: string(v.Title)})
	case *extast.Table:
		return boundary(Event{Tag: TagTable})
	case *extast.TableHeader:
		return boundary(Event{Tag: TagTableHead})
	case *extast.TableRow:
		return boundary(Event{Tag: TagTableRow})
	case *extast.TableCell:
		return boundary(Event{Tag: TagTableCell})
	case *ast.Text:
		if !entering {
			return nil
		}
		evs := []Event{{Kind: KindText, Text: string(v.Segment.Value(src))}}
		if v.SoftLineBreak() || v.HardLineBreak() {
			evs = append(evs, Event{Kind: KindText, Text: " "})
		}
		return evs
	case *ast.String:
		if !entering {
			return nil
		}
		return []Event{{Kind: KindText, Text: string(v.Value)}}
	default:
		// Emphasis, code spans, block quotes and the rest: the scope itself
		// is opaque to the builder but its text still flows.
		return boundary(Event{Tag: TagOther, Name: n.Kind().String()})
	}
}

// mergeText concatenates directly adjacent text events. Scope boundaries
// between runs (table cells in particular) keep them separate.
func mergeText(events []Event) []Event {
	out := events[:0]
	for _, ev := range events {
		if ev.Kind == KindText && len(out) > 0 && out[len(out)-1].Kind == KindText {
			out[len(out)-1].Text += ev.Text
			continue
		}
		out = append(out, ev)
	}
	return out
}
