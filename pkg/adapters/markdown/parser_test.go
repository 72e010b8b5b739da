package markdown

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark/extension"

	"github.com/aretw0/mdfmt/pkg/core"
	"github.com/aretw0/mdfmt/pkg/mdast"
)

func parse(t *testing.T, src string, opts ...Option) *mdast.Root {
	t.Helper()
	root, err := NewParser(opts...).Parse([]byte(src))
	require.NoError(t, err)
	return root
}

func TestParseBlocks(t *testing.T) {
	root := parse(t, "# Title\n\nfoo\nbar\n\n---\n\n> quoted\n")
	require.Len(t, root.Nodes, 4)

	h := root.Nodes[0].(*mdast.Heading)
	assert.Equal(t, 1, h.Depth)
	assert.Equal(t, []mdast.Node{mdast.NewText("Title")}, h.Nodes)

	p := root.Nodes[1].(*mdast.Paragraph)
	assert.Equal(t, []mdast.Node{mdast.NewText("foo\nbar")}, p.Nodes, "soft breaks stay in the text")

	assert.IsType(t, &mdast.ThematicBreak{}, root.Nodes[2])

	q := root.Nodes[3].(*mdast.BlockQuote)
	require.Len(t, q.Nodes, 1)
	assert.IsType(t, &mdast.Paragraph{}, q.Nodes[0])
}

func TestParseFrontmatter(t *testing.T) {
	t.Run("leading block", func(t *testing.T) {
		root := parse(t, "---\ntitle: foo\n---\nbody\n")
		require.Len(t, root.Nodes, 2)
		assert.Equal(t, mdast.NewYaml("title: foo"), root.Nodes[0])
		assert.IsType(t, &mdast.Paragraph{}, root.Nodes[1])
	})

	t.Run("no frontmatter", func(t *testing.T) {
		root := parse(t, "body\n")
		require.Len(t, root.Nodes, 1)
		assert.IsType(t, &mdast.Paragraph{}, root.Nodes[0])
	})

	t.Run("not at the start", func(t *testing.T) {
		root := parse(t, "intro\n\n---\ntitle: foo\n---\n")
		for _, n := range root.Nodes {
			assert.NotEqual(t, "Yaml", n.Kind())
		}
	})
}

func TestParseCode(t *testing.T) {
	root := parse(t, "```go title=main\nfmt.Println()\n```\n\n    indented\n\nuse `a\nb` here\n")
	require.Len(t, root.Nodes, 3)

	assert.Equal(t, mdast.NewCode("go", "title=main", "fmt.Println()"), root.Nodes[0])
	assert.Equal(t, mdast.NewCode("", "", "indented"), root.Nodes[1])

	p := root.Nodes[2].(*mdast.Paragraph)
	require.Len(t, p.Nodes, 3)
	assert.Equal(t, mdast.NewInlineCode("a b"), p.Nodes[1])
}

func TestParseInlines(t *testing.T) {
	root := parse(t, "*a* **b** ~~c~~ [d](http://x \"t\") ![e](i.png)\n")
	p := root.Nodes[0].(*mdast.Paragraph)

	var kinds []string
	for _, n := range p.Nodes {
		if n.Kind() != "Text" {
			kinds = append(kinds, n.Kind())
		}
	}
	assert.Equal(t, []string{"Emphasis", "Strong", "Delete", "Link", "Image"}, kinds)

	for _, n := range p.Nodes {
		switch n := n.(type) {
		case *mdast.Link:
			assert.Equal(t, "http://x", n.URL)
			assert.Equal(t, "t", n.Title)
		case *mdast.Image:
			assert.Equal(t, "i.png", n.URL)
			assert.Equal(t, "e", n.Alt)
		}
	}
}

func TestParseAutolink(t *testing.T) {
	root := parse(t, "<https://example.com>\n")
	p := root.Nodes[0].(*mdast.Paragraph)
	require.Len(t, p.Nodes, 1)
	assert.Equal(t, mdast.NewLink("https://example.com", mdast.NewText("https://example.com")), p.Nodes[0])
}

func TestParseLists(t *testing.T) {
	root := parse(t, "3. a\n4. b\n\n- [x] done\n- [ ] open\n- plain\n")
	require.Len(t, root.Nodes, 2)

	ordered := root.Nodes[0].(*mdast.List)
	assert.True(t, ordered.Ordered)
	assert.Equal(t, 3, ordered.Start)
	assert.False(t, ordered.Spread)
	assert.Len(t, ordered.Nodes, 2)

	tasks := root.Nodes[1].(*mdast.List)
	require.Len(t, tasks.Nodes, 3)
	done := tasks.Nodes[0].(*mdast.ListItem)
	require.NotNil(t, done.Checked)
	assert.True(t, *done.Checked)
	open := tasks.Nodes[1].(*mdast.ListItem)
	require.NotNil(t, open.Checked)
	assert.False(t, *open.Checked)
	assert.Nil(t, tasks.Nodes[2].(*mdast.ListItem).Checked)

	for _, n := range done.Nodes[0].Children() {
		assert.Equal(t, "Text", n.Kind(), "the check box is not kept inline")
	}
}

func TestParseTable(t *testing.T) {
	root := parse(t, "| a | b | c |\n|:--|--:|:-:|\n| 1 | 2 | 3 |\n")
	table := root.Nodes[0].(*mdast.Table)
	assert.Equal(t, []mdast.Align{mdast.AlignLeft, mdast.AlignRight, mdast.AlignCenter}, table.Align)
	require.Len(t, table.Nodes, 2)
	assert.Len(t, table.Nodes[0].Children(), 3)
	assert.Len(t, table.Nodes[1].Children(), 3)
}

func TestParseFootnotes(t *testing.T) {
	root := parse(t, "a[^note]\n\n[^note]: detail\n")
	require.Len(t, root.Nodes, 2)

	p := root.Nodes[0].(*mdast.Paragraph)
	require.Len(t, p.Nodes, 2)
	assert.Equal(t, mdast.NewFootnoteReference("note"), p.Nodes[1])

	def := root.Nodes[1].(*mdast.FootnoteDefinition)
	assert.Equal(t, "note", def.Identifier)
	require.Len(t, def.Nodes, 1)
	for _, n := range def.Nodes[0].Children() {
		assert.NotEqual(t, "FootnoteBacklink", n.Kind())
	}
}

func TestParseFootnotesInPlace(t *testing.T) {
	root := parse(t, "Intro[^1].\n\n[^1]: def\n\n# H\n\ntext\n\n[^orphan]: kept\n")
	require.Len(t, root.Nodes, 5)

	p := root.Nodes[0].(*mdast.Paragraph)
	assert.Equal(t, mdast.NewFootnoteReference("1"), p.Nodes[1])

	def := root.Nodes[1].(*mdast.FootnoteDefinition)
	assert.Equal(t, "1", def.Identifier)
	assert.IsType(t, &mdast.Heading{}, root.Nodes[2])
	assert.IsType(t, &mdast.Paragraph{}, root.Nodes[3])

	orphan := root.Nodes[4].(*mdast.FootnoteDefinition)
	assert.Equal(t, "orphan", orphan.Identifier)
	assert.Equal(t, []mdast.Node{mdast.NewParagraph(mdast.NewText("kept"))}, orphan.Nodes)
}

func TestParseLinkReferences(t *testing.T) {
	root := parse(t, "see [a][ref]\n\n[unused]: http://y\n[ref]: http://x\n")
	require.Len(t, root.Nodes, 3)

	p := root.Nodes[0].(*mdast.Paragraph)
	link := p.Nodes[1].(*mdast.Link)
	assert.Equal(t, "http://x", link.URL)

	assert.Equal(t, []mdast.Node{
		&mdast.Definition{Label: "ref", URL: "http://x"},
		&mdast.Definition{Label: "unused", URL: "http://y"},
	}, root.Nodes[1:])
}

func TestParseMath(t *testing.T) {
	t.Run("block", func(t *testing.T) {
		root := parse(t, "$$\nx^2\n+ 1\n$$\n\nafter\n")
		require.Len(t, root.Nodes, 2)
		assert.Equal(t, mdast.NewMath("x^2\n+ 1"), root.Nodes[0])
		assert.IsType(t, &mdast.Paragraph{}, root.Nodes[1])
	})

	t.Run("single line block", func(t *testing.T) {
		root := parse(t, "$$e = mc^2$$\n")
		require.Len(t, root.Nodes, 1)
		assert.Equal(t, mdast.NewMath("e = mc^2"), root.Nodes[0])
	})

	t.Run("inline", func(t *testing.T) {
		root := parse(t, "let $x$ be\n")
		p := root.Nodes[0].(*mdast.Paragraph)
		assert.Equal(t, []mdast.Node{
			mdast.NewText("let "),
			mdast.NewInlineMath("x"),
			mdast.NewText(" be"),
		}, p.Nodes)
	})

	t.Run("unmatched dollar", func(t *testing.T) {
		root := parse(t, "costs $5\n")
		p := root.Nodes[0].(*mdast.Paragraph)
		assert.Equal(t, []mdast.Node{mdast.NewText("costs $5")}, p.Nodes)
	})
}

func TestParseEscape(t *testing.T) {
	src := "[![ci](badge.svg)](https://ci.example.com)\n"

	root := parse(t, src)
	p := root.Nodes[0].(*mdast.Paragraph)
	assert.Equal(t, []mdast.Node{mdast.NewInlineCode("[![ci](badge.svg)](https://ci.example.com)")}, p.Nodes)

	root = parse(t, src, WithEscape(false))
	p = root.Nodes[0].(*mdast.Paragraph)
	require.Len(t, p.Nodes, 1)
	assert.IsType(t, &mdast.Link{}, p.Nodes[0])
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "a `[![x](y)](z)` b", string(Escape([]byte("a [![x](y)](z) b"))))
	assert.Equal(t, "[x](y) ![x](y)", string(Escape([]byte("[x](y) ![x](y)"))))
}

func TestParseUnsupported(t *testing.T) {
	_, err := NewParser(WithExtensions(extension.DefinitionList)).Parse([]byte("Term\n: Definition\n"))
	require.Error(t, err)

	var unsupported *core.UnsupportedSyntaxError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "DefinitionList", unsupported.Kind)
}
