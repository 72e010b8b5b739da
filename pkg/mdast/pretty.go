package mdast

import (
	"fmt"
	"strings"
)

// Pretty returns an indented dump of the tree, one node per line.
func Pretty(n Node) string {
	var b strings.Builder
	dump(&b, n, 0)
	return b.String()
}

func dump(b *strings.Builder, n Node, level int) {
	b.WriteString(strings.Repeat("  ", level))
	b.WriteString(n.Kind())
	if attrs := attributes(n); attrs != "" {
		b.WriteString(" ")
		b.WriteString(attrs)
	}
	b.WriteString("\n")
	for _, c := range n.Children() {
		dump(b, c, level+1)
	}
}

func attributes(n Node) string {
	switch n := n.(type) {
	case *Yaml:
		return fmt.Sprintf("%q", n.Value)
	case *Heading:
		return fmt.Sprintf("depth=%d", n.Depth)
	case *Text:
		return fmt.Sprintf("%q", n.Value)
	case *InlineCode:
		return fmt.Sprintf("%q", n.Value)
	case *Code:
		return fmt.Sprintf("lang=%q meta=%q value=%q", n.Lang, n.Meta, n.Value)
	case *Link:
		return fmt.Sprintf("url=%q", n.URL)
	case *Image:
		return fmt.Sprintf("url=%q alt=%q", n.URL, n.Alt)
	case *FootnoteReference:
		return fmt.Sprintf("id=%q", n.Identifier)
	case *FootnoteDefinition:
		return fmt.Sprintf("id=%q", n.Identifier)
	case *List:
		return fmt.Sprintf("ordered=%t start=%d", n.Ordered, n.Start)
	case *ListItem:
		if n.Checked != nil {
			return fmt.Sprintf("checked=%t", *n.Checked)
		}
	case *Html:
		return fmt.Sprintf("%q", n.Value)
	case *Math:
		return fmt.Sprintf("%q", n.Value)
	case *InlineMath:
		return fmt.Sprintf("%q", n.Value)
	case *Definition:
		return fmt.Sprintf("label=%q url=%q", n.Label, n.URL)
	}
	return ""
}
