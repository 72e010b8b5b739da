package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mdfmt/pkg/core"
	"github.com/aretw0/mdfmt/pkg/mdast"
)

func TestRender(t *testing.T) {
	var (
		p    = mdast.NewParagraph
		text = mdast.NewText
		item = mdast.NewListItem
	)

	tests := []struct {
		name string
		node mdast.Node
		want string
	}{
		{
			name: "paragraph spacing",
			node: p(text("foo "), mdast.NewEmphasis(text("bar")), text(", baz")),
			want: "foo *bar*, baz",
		},
		{
			name: "paragraph adds missing space",
			node: p(text("foo"), mdast.NewStrong(text("bar")), mdast.NewDelete(text("baz"))),
			want: "foo **bar** ~~baz~~",
		},
		{
			name: "hard break",
			node: p(text("a"), mdast.NewBreak(), text("b")),
			want: "a\nb",
		},
		{
			name: "heading",
			node: mdast.NewHeading(2, text("foo "), mdast.NewInlineCode("bar")),
			want: "## foo `bar`",
		},
		{
			name: "link",
			node: mdast.NewLink("https://example.com", text("site")),
			want: "[site](https://example.com)",
		},
		{
			name: "bare link",
			node: mdast.NewLink("https://example.com", text("https://example.com")),
			want: "https://example.com",
		},
		{
			name: "titled link",
			node: &mdast.Link{Parent: mdast.Parent{Nodes: []mdast.Node{text("t")}}, URL: "u", Title: `say "hi"`},
			want: `[t](u "say \"hi\"")`,
		},
		{
			name: "image",
			node: mdast.NewImage("a.png", "alt"),
			want: "![alt](a.png)",
		},
		{
			name: "inline code with backtick",
			node: mdast.NewInlineCode("a`b"),
			want: "``a`b``",
		},
		{
			name: "inline code starting with backtick",
			node: mdast.NewInlineCode("`x`"),
			want: "`` `x` ``",
		},
		{
			name: "code block",
			node: mdast.NewCode("rust", "title=main", "fn main() {}"),
			want: "```rust title=main\nfn main() {}\n```",
		},
		{
			name: "code block containing a fence",
			node: mdast.NewCode("md", "", "```\nx\n```"),
			want: "````md\n```\nx\n```\n````",
		},
		{
			name: "nested bullets",
			node: mdast.NewList(false,
				item(nil, p(text("a")), mdast.NewList(false, item(nil, p(text("b"))))),
				item(nil, p(text("c"))),
			),
			want: "- a\n    - b\n- c",
		},
		{
			name: "ordered",
			node: mdast.NewList(true, item(nil, p(text("a"))), item(nil, p(text("b")))),
			want: "1. a\n2. b",
		},
		{
			name: "ordered with start",
			node: &mdast.List{Parent: mdast.Parent{Nodes: []mdast.Node{item(nil, p(text("a")))}}, Ordered: true, Start: 3},
			want: "3. a",
		},
		{
			name: "task items",
			node: mdast.NewList(true,
				item(mdast.Checked(true), p(text("done"))),
				item(mdast.Checked(false), p(text("open"))),
			),
			want: "- [x] done\n- [ ] open",
		},
		{
			name: "item continuation",
			node: mdast.NewList(false, item(nil, p(text("a\nb")), p(text("c")))),
			want: "- a\n  b\n\n  c",
		},
		{
			name: "block quote",
			node: mdast.NewBlockQuote(p(text("foo")), p(text("bar"))),
			want: "> foo\n>\n> bar",
		},
		{
			name: "list inside quote starts at top level",
			node: mdast.NewList(false, item(nil,
				p(text("a")),
				mdast.NewBlockQuote(mdast.NewList(false, item(nil, p(text("b"))))),
			)),
			want: "- a\n\n  > - b",
		},
		{
			name: "table",
			node: mdast.NewTable([]mdast.Align{mdast.AlignLeft, mdast.AlignNone, mdast.AlignCenter, mdast.AlignRight},
				mdast.NewTableRow(mdast.NewTableCell(text("a")), mdast.NewTableCell(text("b")), mdast.NewTableCell(text("c")), mdast.NewTableCell(text("d"))),
				mdast.NewTableRow(mdast.NewTableCell(text("1")), mdast.NewTableCell(text("2")), mdast.NewTableCell(text("3")), mdast.NewTableCell(text("4"))),
			),
			want: "| a | b | c | d |\n| :-- | --- | :-: | --: |\n| 1 | 2 | 3 | 4 |",
		},
		{
			name: "footnotes",
			node: mdast.NewRoot(
				p(text("see"), mdast.NewFootnoteReference("1")),
				mdast.NewFootnoteDefinition("1", p(text("note")), p(text("more"))),
			),
			want: "see [^1]\n\n[^1]: note\n\n    more",
		},
		{
			name: "math",
			node: mdast.NewRoot(mdast.NewMath("a^2"), p(text("inline"), mdast.NewInlineMath("x"))),
			want: "$$\na^2\n$$\n\ninline $x$",
		},
		{
			name: "thematic break and html",
			node: mdast.NewRoot(mdast.NewThematicBreak(), mdast.NewHtml("<div>x</div>")),
			want: "---\n\n<div>x</div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderUnsupported(t *testing.T) {
	_, err := Render(mdast.NewParagraph(mdast.NewText("a"), &mdast.Definition{Label: "x", URL: "y"}))

	var unsupported *core.UnsupportedSyntaxError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "Definition", unsupported.Kind)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "> a\n>\n> b\n", Quote("a\n\nb\n\n"))
	assert.Equal(t, ">\n", Quote(""))
	assert.Equal(t, "> [!note]\n", Quote("[!note]"))
}

func TestHeading(t *testing.T) {
	assert.Equal(t, "### title", Heading(3, "title"))
}
