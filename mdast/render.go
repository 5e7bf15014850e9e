package mdast

import (
	"fmt"
	"strings"
)

// Render serializes the AST to CommonMark. Block nodes are separated by a
// single blank line, nested lists are indented by four spaces per level.
func Render(root *Node) ([]byte, error) {
	if root == nil || root.Kind != KindDocument {
		return nil, fmt.Errorf("mdast: render expects a document node, got %v", root)
	}

	var blocks []string
	for _, child := range root.Children {
		b, err := renderBlock(child, "")
		if err != nil {
			return nil, err
		}
		if b != "" {
			blocks = append(blocks, b)
		}
	}

	out := strings.Join(blocks, "\n\n")
	if out != "" {
		out += "\n"
	}
	return []byte(out), nil
}

func renderBlock(n *Node, indent string) (string, error) {
	switch n.Kind {
	case KindHeading:
		level := n.Level
		if level < 1 {
			level = 1
		} else if level > 6 {
			level = 6
		}
		return indent + strings.Repeat("#", level) + " " + renderInlineChildren(n), nil
	case KindParagraph:
		return indent + renderInlineChildren(n), nil
	case KindList:
		return renderList(n, indent)
	case KindTable:
		return renderTable(n, indent)
	case KindText, KindLink, KindImage:
		// Stray inline at block level, render as its own line.
		return indent + renderInline(n), nil
	default:
		return "", fmt.Errorf("mdast: cannot render %s as a block", n.Kind)
	}
}

func renderList(n *Node, indent string) (string, error) {
	var lines []string
	ordinal := n.Start
	if ordinal < 1 {
		ordinal = 1
	}
	for _, item := range n.Children {
		if item.Kind != KindItem {
			return "", fmt.Errorf("mdast: list child is %s, expected item", item.Kind)
		}
		marker := "- "
		if n.Ordered {
			marker = fmt.Sprintf("%d. ", ordinal)
			ordinal++
		}
		first := true
		for _, block := range item.Children {
			if block.Kind == KindList {
				// Sub-list, always on its own indented lines.
				sub, err := renderList(block, indent+"    ")
				if err != nil {
					return "", err
				}
				lines = append(lines, sub)
				first = false
				continue
			}
			b, err := renderBlock(block, "")
			if err != nil {
				return "", err
			}
			if first {
				lines = append(lines, indent+marker+b)
				first = false
			} else {
				lines = append(lines, indent+"    "+b)
			}
		}
		if first {
			// Empty item still occupies a line.
			lines = append(lines, indent+strings.TrimRight(marker, " "))
		}
	}
	return strings.Join(lines, "\n"), nil
}

func renderTable(n *Node, indent string) (string, error) {
	var lines []string
	for i, row := range n.Children {
		if row.Kind != KindTableRow {
			return "", fmt.Errorf("mdast: table child is %s, expected table_row", row.Kind)
		}
		cells := make([]string, 0, len(row.Children))
		for _, cell := range row.Children {
			cells = append(cells, strings.TrimSpace(renderInlineChildren(cell)))
		}
		lines = append(lines, indent+"| "+strings.Join(cells, " | ")+" |")
		if i == 0 {
			// Column alignment is not modeled, emit plain delimiters.
			dashes := make([]string, n.Columns)
			for j := range dashes {
				dashes[j] = "---"
			}
			lines = append(lines, indent+"| "+strings.Join(dashes, " | ")+" |")
		}
	}
	return strings.Join(lines, "\n"), nil
}

func renderInlineChildren(n *Node) string {
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(renderInline(c))
	}
	return sb.String()
}

func renderInline(n *Node) string {
	switch n.Kind {
	case KindText:
		return n.Literal
	case KindLink:
		if n.Title != "" {
			return fmt.Sprintf("[%s](%s %q)", renderInlineChildren(n), n.URL, n.Title)
		}
		return fmt.Sprintf("[%s](%s)", renderInlineChildren(n), n.URL)
	case KindImage:
		return fmt.Sprintf("![%s](%s)", n.Title, n.URL)
	default:
		return renderInlineChildren(n)
	}
}
