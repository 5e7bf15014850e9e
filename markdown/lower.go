package markdown

import (
	"fmt"

	"shiva/document"
	"shiva/mdast"
)

// lowering carries per-pass state: the saver callback and the image file
// counter. Each Lower call owns a fresh instance, so concurrent
// conversions never share the counter and generated names always restart
// from image1.
type lowering struct {
	save     document.ImageSaver
	imageNum int
}

// Lower recursively converts a document into the markdown output AST. Page
// header elements come first, then the body, then the page footer. The
// saver is invoked synchronously for every image; a failure aborts the
// whole pass.
func Lower(doc *document.Document, save document.ImageSaver) (*mdast.Node, error) {
	lo := &lowering{save: save}
	root := mdast.NewNode(mdast.KindDocument)

	for _, seq := range [][]document.Element{doc.PageHeader, doc.Elements, doc.PageFooter} {
		for _, el := range seq {
			node, err := lo.element(el)
			if err != nil {
				return nil, err
			}
			root.Append(node)
		}
	}
	return root, nil
}

func (lo *lowering) element(el document.Element) (*mdast.Node, error) {
	switch e := el.(type) {
	case *document.Text:
		return mdast.NewText(e.Text), nil

	case *document.Header:
		heading := mdast.NewNode(mdast.KindHeading)
		heading.Level = e.Level
		heading.Append(mdast.NewText(e.Text))
		return heading, nil

	case *document.Paragraph:
		para := mdast.NewNode(mdast.KindParagraph)
		for _, child := range e.Elements {
			node, err := lo.element(child)
			if err != nil {
				return nil, err
			}
			para.Append(node)
		}
		return para, nil

	case *document.List:
		return lo.list(e)

	case *document.Image:
		lo.imageNum++
		name := fmt.Sprintf("image%d.%s", lo.imageNum, e.ImageType.Ext())
		if err := lo.save(e.Bytes, name); err != nil {
			return nil, fmt.Errorf("%w (%s): %w", document.ErrImageSave, name, err)
		}
		img := mdast.NewNode(mdast.KindImage)
		img.URL = name
		img.Title = e.Title
		para := mdast.NewNode(mdast.KindParagraph)
		para.Append(img)
		return para, nil

	case *document.Hyperlink:
		link := mdast.NewNode(mdast.KindLink)
		link.URL = e.URL
		link.Title = e.Alt
		link.Append(mdast.NewText(e.Title))
		return link, nil

	case *document.Table:
		return lo.table(e)

	default:
		// Defensive fallback, unknown variants degrade to empty text.
		return mdast.NewText(""), nil
	}
}

func (lo *lowering) list(l *document.List) (*mdast.Node, error) {
	list := mdast.NewNode(mdast.KindList)
	list.Ordered = l.Numbered
	if l.Numbered {
		list.Start = 1
	}

	for _, li := range l.Elements {
		item := mdast.NewNode(mdast.KindItem)
		child, err := lo.element(li.Element)
		if err != nil {
			return nil, err
		}
		switch child.Kind {
		case mdast.KindList, mdast.KindParagraph:
			// Nested lists attach directly, paragraphs are already blocks.
			item.Append(child)
		default:
			para := mdast.NewNode(mdast.KindParagraph)
			para.Append(child)
			item.Append(para)
		}
		list.Append(item)
	}
	return list, nil
}

func (lo *lowering) table(t *document.Table) (*mdast.Node, error) {
	table := mdast.NewNode(mdast.KindTable)
	table.Columns = len(t.Headers)
	table.Rows = len(t.Rows) + 1

	header := mdast.NewNode(mdast.KindTableRow)
	header.Header = true
	for _, th := range t.Headers {
		cell := mdast.NewNode(mdast.KindTableCell)
		content, err := lo.element(th.Element)
		if err != nil {
			return nil, err
		}
		cell.Append(content)
		header.Append(cell)
	}
	table.Append(header)

	for _, row := range t.Rows {
		rowNode := mdast.NewNode(mdast.KindTableRow)
		for _, c := range row.Cells {
			cell := mdast.NewNode(mdast.KindTableCell)
			content, err := lo.element(c.Element)
			if err != nil {
				return nil, err
			}
			cell.Append(content)
			rowNode.Append(cell)
		}
		table.Append(rowNode)
	}
	return table, nil
}
