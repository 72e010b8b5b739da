package markdown

import (
	"strings"

	gast "github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/aretw0/mdfmt/pkg/core"
	"github.com/aretw0/mdfmt/pkg/mdast"
)

// converter walks a goldmark document and builds the equivalent mdast
// nodes. Text keeps its source form, escapes included.
type converter struct {
	source    []byte
	footnotes map[int]string
}

// footnoteLabels maps goldmark's footnote indices back to their labels.
func footnoteLabels(doc gast.Node) map[int]string {
	labels := make(map[int]string)
	_ = gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if fn, ok := n.(*extast.Footnote); ok && entering {
			labels[fn.Index] = string(fn.Ref)
		}
		return gast.WalkContinue, nil
	})
	return labels
}

func (c *converter) blocks(parent gast.Node) ([]mdast.Node, error) {
	var out []mdast.Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		b, err := c.block(n)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (c *converter) block(n gast.Node) (mdast.Node, error) {
	switch n := n.(type) {
	case *gast.Paragraph, *gast.TextBlock:
		children, err := c.inlines(n)
		if err != nil {
			return nil, err
		}
		return mdast.NewParagraph(children...), nil
	case *gast.Heading:
		children, err := c.inlines(n)
		if err != nil {
			return nil, err
		}
		return mdast.NewHeading(n.Level, children...), nil
	case *gast.ThematicBreak:
		return mdast.NewThematicBreak(), nil
	case *gast.FencedCodeBlock:
		lang, meta := c.info(n)
		return mdast.NewCode(lang, meta, c.lines(n.Lines())), nil
	case *gast.CodeBlock:
		return mdast.NewCode("", "", c.lines(n.Lines())), nil
	case *gast.Blockquote:
		children, err := c.blocks(n)
		if err != nil {
			return nil, err
		}
		return mdast.NewBlockQuote(children...), nil
	case *gast.List:
		return c.list(n)
	case *gast.HTMLBlock:
		value := c.lines(n.Lines())
		if n.HasClosure() {
			if value != "" {
				value += "\n"
			}
			value += string(n.ClosureLine.Value(c.source))
		}
		return mdast.NewHtml(strings.TrimRight(value, "\n")), nil
	case *extast.Table:
		return c.table(n)
	case *extast.Footnote:
		children, err := c.blocks(n)
		if err != nil {
			return nil, err
		}
		return mdast.NewFootnoteDefinition(string(n.Ref), children...), nil
	case *MathBlock:
		return mdast.NewMath(n.Value), nil
	}
	return nil, &core.UnsupportedSyntaxError{Kind: n.Kind().String()}
}

func (c *converter) list(n *gast.List) (mdast.Node, error) {
	l := &mdast.List{Ordered: n.IsOrdered(), Start: n.Start, Spread: !n.IsTight}
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		li := mdast.NewListItem(nil)
		if first := item.FirstChild(); first != nil {
			if box, ok := first.FirstChild().(*extast.TaskCheckBox); ok {
				li.Checked = mdast.Checked(box.IsChecked)
			}
		}

		children, err := c.blocks(item)
		if err != nil {
			return nil, err
		}
		li.Append(children...)
		l.Append(li)
	}
	return l, nil
}

func (c *converter) table(n *extast.Table) (mdast.Node, error) {
	align := make([]mdast.Align, len(n.Alignments))
	for i, a := range n.Alignments {
		switch a {
		case extast.AlignLeft:
			align[i] = mdast.AlignLeft
		case extast.AlignCenter:
			align[i] = mdast.AlignCenter
		case extast.AlignRight:
			align[i] = mdast.AlignRight
		}
	}

	t := mdast.NewTable(align)
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		r := mdast.NewTableRow()
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			children, err := c.inlines(cell)
			if err != nil {
				return nil, err
			}
			r.Append(mdast.NewTableCell(children...))
		}
		t.Append(r)
	}
	return t, nil
}

func (c *converter) inlines(parent gast.Node) ([]mdast.Node, error) {
	var out []mdast.Node
	appendText := func(s string) {
		if len(out) > 0 {
			if t, ok := out[len(out)-1].(*mdast.Text); ok {
				t.Value += s
				return
			}
		}
		out = append(out, mdast.NewText(s))
	}

	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *gast.Text:
			s := string(n.Segment.Value(c.source))
			if n.SoftLineBreak() {
				s += "\n"
			}
			appendText(s)
			if n.HardLineBreak() {
				out = append(out, mdast.NewBreak())
			}
		case *gast.String:
			appendText(string(n.Value))
		case *extast.TaskCheckBox:
			// carried by the list item
		default:
			node, err := c.inline(n)
			if err != nil {
				return nil, err
			}
			out = append(out, node)
		}
	}
	return out, nil
}

func (c *converter) inline(n gast.Node) (mdast.Node, error) {
	switch n := n.(type) {
	case *gast.Emphasis:
		children, err := c.inlines(n)
		if err != nil {
			return nil, err
		}
		if n.Level >= 2 {
			return mdast.NewStrong(children...), nil
		}
		return mdast.NewEmphasis(children...), nil
	case *gast.CodeSpan:
		return mdast.NewInlineCode(strings.ReplaceAll(c.plain(n), "\n", " ")), nil
	case *gast.Link:
		children, err := c.inlines(n)
		if err != nil {
			return nil, err
		}
		link := mdast.NewLink(string(n.Destination), children...)
		link.Title = string(n.Title)
		return link, nil
	case *gast.Image:
		img := mdast.NewImage(string(n.Destination), c.plain(n))
		img.Title = string(n.Title)
		return img, nil
	case *gast.AutoLink:
		return mdast.NewLink(string(n.URL(c.source)), mdast.NewText(string(n.Label(c.source)))), nil
	case *gast.RawHTML:
		var b strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(c.source))
		}
		return mdast.NewHtml(b.String()), nil
	case *extast.Strikethrough:
		children, err := c.inlines(n)
		if err != nil {
			return nil, err
		}
		return mdast.NewDelete(children...), nil
	case *extast.FootnoteLink:
		return mdast.NewFootnoteReference(c.footnotes[n.Index]), nil
	case *InlineMath:
		return mdast.NewInlineMath(n.Value), nil
	}
	return nil, &core.UnsupportedSyntaxError{Kind: n.Kind().String()}
}

// plain concatenates the text under n, dropping markup.
func (c *converter) plain(n gast.Node) string {
	var b strings.Builder
	_ = gast.Walk(n, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *gast.Text:
			b.Write(n.Segment.Value(c.source))
			if n.SoftLineBreak() || n.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *gast.String:
			b.Write(n.Value)
		}
		return gast.WalkContinue, nil
	})
	return b.String()
}

func (c *converter) lines(segs *text.Segments) string {
	var b strings.Builder
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(c.source))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// info splits a fence info string into its language and the rest.
func (c *converter) info(n *gast.FencedCodeBlock) (string, string) {
	if n.Info == nil {
		return "", ""
	}
	info := strings.TrimSpace(string(n.Info.Segment.Value(c.source)))
	lang, meta, _ := strings.Cut(info, " ")
	return lang, strings.TrimSpace(meta)
}
