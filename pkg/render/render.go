// Package render turns syntax tree nodes into canonical Markdown fragments.
//
// Rendering is deterministic: the same node always yields the same text.
// List nesting is tracked on a renderer value passed down the recursion.
package render

import (
	"strconv"
	"strings"

	"github.com/aretw0/mdfmt/pkg/core"
	"github.com/aretw0/mdfmt/pkg/mdast"
)

// Indent is one level of list nesting.
const Indent = "    "

// trailingSeparators never get a space inserted before them when inline
// fragments are joined.
const trailingSeparators = ",.;:\n"

// Render returns the canonical text of n and its descendants, trimmed.
func Render(n mdast.Node) (string, error) {
	var r renderer
	s, err := r.node(n)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// Inline joins inline nodes the way paragraph content is joined.
func Inline(nodes []mdast.Node) (string, error) {
	var r renderer
	return r.inline(nodes)
}

// Quote prefixes every line of s with "> ", or ">" when the line is blank.
// The result ends with a newline.
func Quote(s string) string {
	s = strings.TrimRight(s, " \t\n")
	if s == "" {
		return ">\n"
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + l
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// Heading returns an ATX heading line.
func Heading(depth int, text string) string {
	return strings.Repeat("#", depth) + " " + text
}

type renderer struct {
	depth int
}

func (r *renderer) node(n mdast.Node) (string, error) {
	switch n := n.(type) {
	case *mdast.Root:
		return r.blocks(n.Nodes, "\n")
	case *mdast.Yaml:
		return "---\n" + n.Value + "\n---\n", nil
	case *mdast.Paragraph:
		s, err := r.inline(n.Nodes)
		return s + "\n", err
	case *mdast.Heading:
		s, err := r.inline(n.Nodes)
		return Heading(n.Depth, s) + "\n", err
	case *mdast.Text:
		return n.Value, nil
	case *mdast.Emphasis:
		return r.wrap("*", n.Nodes)
	case *mdast.Strong:
		return r.wrap("**", n.Nodes)
	case *mdast.Delete:
		return r.wrap("~~", n.Nodes)
	case *mdast.InlineCode:
		return inlineCode(n.Value), nil
	case *mdast.Code:
		return codeBlock(n), nil
	case *mdast.Link:
		return r.link(n)
	case *mdast.Image:
		return "![" + n.Alt + "](" + destination(n.URL, n.Title) + ")", nil
	case *mdast.FootnoteReference:
		return "[^" + n.Identifier + "]", nil
	case *mdast.FootnoteDefinition:
		return r.footnoteDefinition(n)
	case *mdast.List:
		return r.list(n)
	case *mdast.ListItem:
		r.depth++
		defer func() { r.depth-- }()
		return r.listItem(n, "-")
	case *mdast.BlockQuote:
		depth := r.depth
		r.depth = 0
		defer func() { r.depth = depth }()
		s, err := r.blocks(n.Nodes, "\n")
		return Quote(s), err
	case *mdast.Table:
		return r.table(n)
	case *mdast.TableRow:
		return r.row(n)
	case *mdast.TableCell:
		return r.inline(n.Nodes)
	case *mdast.Html:
		return n.Value, nil
	case *mdast.Math:
		return "$$\n" + n.Value + "\n$$\n", nil
	case *mdast.InlineMath:
		return "$" + n.Value + "$", nil
	case *mdast.ThematicBreak:
		return "---\n", nil
	case *mdast.Break:
		return "\n", nil
	}
	return "", &core.UnsupportedSyntaxError{Kind: n.Kind()}
}

// block renders a block-level node and makes sure it ends with a newline.
func (r *renderer) block(n mdast.Node) (string, error) {
	s, err := r.node(n)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s, nil
}

func (r *renderer) blocks(nodes []mdast.Node, sep string) (string, error) {
	parts := make([]string, 0, len(nodes))
	for _, c := range nodes {
		s, err := r.block(c)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep), nil
}

// concat renders nodes back to back.
func (r *renderer) concat(nodes []mdast.Node) (string, error) {
	var b strings.Builder
	for _, c := range nodes {
		s, err := r.node(c)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// inline trims each fragment of spaces and puts a single space between
// fragments, except after whitespace or before a separator.
func (r *renderer) inline(nodes []mdast.Node) (string, error) {
	var b strings.Builder
	for i, c := range nodes {
		s, err := r.node(c)
		if err != nil {
			return "", err
		}
		s = strings.Trim(s, " ")
		if i > 0 && s != "" && !endsWithSpace(b.String()) && !strings.ContainsRune(trailingSeparators, rune(s[0])) {
			b.WriteByte(' ')
		}
		b.WriteString(s)
	}
	return strings.TrimSpace(b.String()), nil
}

func endsWithSpace(s string) bool {
	return s != "" && (s[len(s)-1] == ' ' || s[len(s)-1] == '\n')
}

func (r *renderer) wrap(delim string, nodes []mdast.Node) (string, error) {
	s, err := r.concat(nodes)
	if err != nil {
		return "", err
	}
	return delim + s + delim, nil
}

func (r *renderer) link(n *mdast.Link) (string, error) {
	text, err := r.concat(n.Nodes)
	if err != nil {
		return "", err
	}
	if text == n.URL && n.Title == "" {
		return n.URL, nil
	}
	return "[" + text + "](" + destination(n.URL, n.Title) + ")", nil
}

func destination(url, title string) string {
	if strings.ContainsAny(url, " \t") {
		url = "<" + url + ">"
	}
	if title == "" {
		return url
	}
	return url + ` "` + strings.ReplaceAll(title, `"`, `\"`) + `"`
}

func (r *renderer) footnoteDefinition(n *mdast.FootnoteDefinition) (string, error) {
	s, err := r.blocks(n.Nodes, "\n")
	if err != nil {
		return "", err
	}
	body := indentLines(strings.TrimRight(s, "\n"), Indent, true)
	return "[^" + n.Identifier + "]: " + body + "\n", nil
}

func (r *renderer) list(n *mdast.List) (string, error) {
	r.depth++
	defer func() { r.depth-- }()

	var b strings.Builder
	for i, c := range n.Nodes {
		item, ok := c.(*mdast.ListItem)
		if !ok {
			return "", &core.UnsupportedSyntaxError{Kind: c.Kind()}
		}
		marker := "-"
		if n.Ordered {
			marker = strconv.Itoa(n.Start+i) + "."
		}
		s, err := r.listItem(item, marker)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// listItem renders one item at the current depth. Continuation lines are
// aligned to the content column of the marker; nested lists carry their own
// indentation.
func (r *renderer) listItem(item *mdast.ListItem, marker string) (string, error) {
	prefix := strings.Repeat(Indent, max(r.depth-1, 0))
	head := prefix + marker + " "
	if item.Checked != nil {
		head = prefix + "- [ ] "
		if *item.Checked {
			head = prefix + "- [x] "
		}
		marker = "-"
	}
	cont := strings.Repeat(" ", len(prefix)+len(marker)+1)
	if len(item.Nodes) == 0 {
		return strings.TrimRight(head, " ") + "\n", nil
	}

	var b strings.Builder
	b.WriteString(head)
	prevText := false
	for i, c := range item.Nodes {
		if l, ok := c.(*mdast.List); ok {
			s, err := r.list(l)
			if err != nil {
				return "", err
			}
			if !strings.HasSuffix(b.String(), "\n") {
				b.WriteString("\n")
			}
			b.WriteString(s)
			prevText = false
			continue
		}

		s, err := r.block(c)
		if err != nil {
			return "", err
		}
		if prevText {
			b.WriteString("\n")
		}
		b.WriteString(indentLines(s, cont, i == 0))
		prevText = true
	}

	out := b.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

// indentLines prefixes every non-empty line of s with pad.
func indentLines(s, pad string, skipFirst bool) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" || (i == 0 && skipFirst) {
			continue
		}
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

func (r *renderer) table(n *mdast.Table) (string, error) {
	lines := make([]string, 0, len(n.Nodes)+1)
	for i, c := range n.Nodes {
		row, ok := c.(*mdast.TableRow)
		if !ok {
			return "", &core.UnsupportedSyntaxError{Kind: c.Kind()}
		}
		s, err := r.row(row)
		if err != nil {
			return "", err
		}
		lines = append(lines, s)
		if i == 0 {
			lines = append(lines, separator(n.Align, len(row.Nodes)))
		}
	}
	return strings.Join(lines, "\n") + "\n", nil
}

func (r *renderer) row(n *mdast.TableRow) (string, error) {
	cells := make([]string, 0, len(n.Nodes))
	for _, c := range n.Nodes {
		s, err := r.node(c)
		if err != nil {
			return "", err
		}
		cells = append(cells, s)
	}
	return "| " + strings.Join(cells, " | ") + " |", nil
}

func separator(align []mdast.Align, columns int) string {
	columns = max(columns, len(align))
	cells := make([]string, columns)
	for i := range cells {
		a := mdast.AlignNone
		if i < len(align) {
			a = align[i]
		}
		switch a {
		case mdast.AlignLeft:
			cells[i] = ":--"
		case mdast.AlignCenter:
			cells[i] = ":-:"
		case mdast.AlignRight:
			cells[i] = "--:"
		default:
			cells[i] = "---"
		}
	}
	return "| " + strings.Join(cells, " | ") + " |"
}

func inlineCode(v string) string {
	fence := strings.Repeat("`", longestRun(v, '`')+1)
	pad := strings.HasPrefix(v, "`") || strings.HasSuffix(v, "`") ||
		(len(v) > 1 && v[0] == ' ' && v[len(v)-1] == ' ' && strings.TrimSpace(v) != "")
	if pad {
		return fence + " " + v + " " + fence
	}
	return fence + v + fence
}

func codeBlock(n *mdast.Code) string {
	fence := strings.Repeat("`", max(3, longestRun(n.Value, '`')+1))
	info := n.Lang
	if n.Meta != "" {
		info += " " + n.Meta
	}
	return fence + info + "\n" + n.Value + "\n" + fence + "\n"
}

func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}
