package markdown

import (
	"fmt"

	"go.uber.org/zap"

	"shiva/document"
	"shiva/images"
)

// defaultTextSize is the size assigned to text runs created during
// construction. Sizing is pass-through, nothing here interprets it.
const defaultTextSize = 14

// defaultHeaderWidth is the column width recorded for constructed table
// header cells.
const defaultHeaderWidth = 30.0

// builder assembles a document from the flat event stream in a single
// pass. Exactly one top-level scope is open at a time; nested list scopes
// are addressed through an explicit stack of open list handles, so closing
// events never re-walk the tree and a mismatched close surfaces a typed
// error instead of corrupting sealed elements.
type builder struct {
	elements []document.Element
	current  document.Element // the one open top-level scope
	lists    []*document.List // open list scopes, innermost last
	table    *tableState
	load     document.ImageLoader
	log      *zap.Logger
}

// Tables are assembled on a side channel rather than inside the open
// scope: cell and row assembly closes on cell-count comparison, a rule
// unrelated to generic scope nesting.
type tableState struct {
	inHeader bool
	table    *document.Table
}

// Build consumes structural events and produces a sealed document. The
// image loader resolves every image reference encountered, a loader
// failure aborts the whole build.
func Build(events []Event, load document.ImageLoader, log *zap.Logger) (*document.Document, error) {
	if log == nil {
		log = zap.NewNop()
	}
	b := &builder{load: load, log: log}
	for _, ev := range events {
		var err error
		switch ev.Kind {
		case KindStart:
			err = b.start(ev)
		case KindText:
			err = b.text(ev.Text)
		case KindEnd:
			err = b.end(ev)
		}
		if err != nil {
			return nil, err
		}
	}
	return document.New(b.elements), nil
}

// insert places a freshly opened element. With no open scope it becomes
// the top-level scope; with an open list it becomes the innermost list's
// next item; any other open scope swallows it, which is how stray starts
// inside unrecognized content get dropped.
func (b *builder) insert(el document.Element) {
	if b.current == nil {
		b.current = el
		return
	}
	if _, ok := b.current.(*document.List); !ok {
		return
	}
	target := b.openList()
	if target == nil {
		return
	}

	switch el.(type) {
	case *document.Hyperlink, *document.Header:
		// Links and headers inside list items arrive as a nested start
		// pair, after an item placeholder was already created. Retract the
		// placeholder before inserting the real element.
		if n := len(target.Elements); n > 0 {
			if _, ok := target.Elements[n-1].Element.(*document.Text); ok {
				target.Elements = target.Elements[:n-1]
			}
		}
	}
	target.Elements = append(target.Elements, document.ListItem{Element: el})
}

func (b *builder) openList() *document.List {
	if len(b.lists) == 0 {
		return nil
	}
	return b.lists[len(b.lists)-1]
}

func (b *builder) start(ev Event) error {
	switch ev.Tag {
	case TagParagraph:
		b.insert(&document.Paragraph{})
	case TagHeading:
		b.insert(&document.Header{Level: ev.Level})
	case TagList:
		l := &document.List{Numbered: ev.Numbered}
		b.insert(l)
		b.lists = append(b.lists, l)
	case TagItem:
		b.insert(&document.Text{Size: defaultTextSize})
	case TagLink:
		b.insert(&document.Hyperlink{Title: ev.Title, URL: ev.URL, Alt: "alt", Size: defaultTextSize})
	case TagImage:
		data, err := b.load(ev.URL)
		if err != nil {
			return fmt.Errorf("%w (%s): %w", document.ErrImageLoad, ev.URL, err)
		}
		imgType, dim := images.Recognize(data)
		img := &document.Image{
			Bytes:     data,
			Title:     ev.Title,
			Alt:       ev.Title,
			ImageType: imgType,
			Dimension: dim,
		}
		// The image reference arrives wrapped in what would otherwise
		// become a stray paragraph carrying the caption. Discard that open
		// scope entirely and let the image take its place. The open-list
		// stack stays as is, later list ends pop it with nothing left to
		// seal.
		b.current = nil
		b.insert(img)
	case TagTable:
		b.table = &tableState{table: &document.Table{}}
	case TagTableHead:
		if b.table != nil {
			b.table.inHeader = true
		}
	case TagTableRow, TagTableCell:
		// Row and cell boundaries are implicit in the cell-count rule.
	default:
		b.log.Debug("Skipping unrecognized structural scope", zap.String("scope", ev.Name))
	}
	return nil
}

func (b *builder) text(text string) error {
	switch cur := b.current.(type) {
	case *document.Paragraph:
		cur.Elements = append(cur.Elements, &document.Text{Text: text, Size: defaultTextSize})
	case *document.Header:
		cur.Text += text
	case *document.List:
		if err := b.listText(text); err != nil {
			return err
		}
	case *document.Image:
		cur.SetAlt(text)
	}

	if b.table != nil {
		b.tableText(text)
	}
	return nil
}

// listText routes a text run into the last item of the innermost open
// list. The item shape decides what the text means.
func (b *builder) listText(text string) error {
	target := b.openList()
	if target == nil || len(target.Elements) == 0 {
		return fmt.Errorf("%w: text arrived for a list with no open item", document.ErrStructure)
	}
	li := &target.Elements[len(target.Elements)-1]
	switch e := li.Element.(type) {
	case *document.Text:
		e.Text += text
	case *document.Hyperlink:
		e.Title = text
	case *document.Header:
		e.Text = text
	}
	return nil
}

func (b *builder) tableText(text string) {
	cell := document.TableCell{Element: &document.Text{Text: text, Size: defaultTextSize}}
	t := b.table.table
	if b.table.inHeader {
		t.Headers = append(t.Headers, document.TableHeader{
			Element: cell.Element,
			Width:   defaultHeaderWidth,
		})
		return
	}
	if n := len(t.Rows); n > 0 && len(t.Rows[n-1].Cells) < len(t.Headers) {
		t.Rows[n-1].Cells = append(t.Rows[n-1].Cells, cell)
		return
	}
	t.Rows = append(t.Rows, document.TableRow{Cells: []document.TableCell{cell}})
}

func (b *builder) end(ev Event) error {
	switch ev.Tag {
	case TagParagraph, TagHeading, TagLink, TagImage:
		// A list keeps its scope open until its own dedicated end event.
		if b.current == nil {
			return nil
		}
		if _, ok := b.current.(*document.List); ok {
			return nil
		}
		b.elements = append(b.elements, b.current)
		b.current = nil
	case TagList:
		if len(b.lists) == 0 {
			return fmt.Errorf("%w: list end without matching start", document.ErrStructure)
		}
		b.lists = b.lists[:len(b.lists)-1]
		if len(b.lists) == 0 && b.current != nil {
			// The outermost list closed, seal the whole nested structure.
			b.elements = append(b.elements, b.current)
			b.current = nil
		}
	case TagTableHead:
		if b.table != nil {
			b.table.inHeader = false
		}
	case TagTable:
		if b.table != nil {
			b.elements = append(b.elements, b.table.table)
			b.table = nil
		}
	case TagItem, TagTableRow, TagTableCell:
		// closing is implicit, see start()
	default:
		b.log.Debug("Skipping unrecognized structural scope", zap.String("scope", ev.Name))
	}
	return nil
}
