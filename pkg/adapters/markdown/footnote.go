package markdown

import (
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindFootnoteAnchor marks where a footnote definition was written.
var KindFootnoteAnchor = gast.NewNodeKind("FootnoteAnchor")

// footnoteAnchor holds the place of a definition while goldmark keeps it in
// its footnote list for reference resolution.
type footnoteAnchor struct {
	gast.BaseBlock
	footnote gast.Node
}

func (n *footnoteAnchor) Kind() gast.NodeKind { return KindFootnoteAnchor }

func (n *footnoteAnchor) IsRaw() bool { return true }

func (n *footnoteAnchor) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

type footnoteExtension struct{}

// Footnotes parses [^label] references and definitions, keeping every
// definition where it was written, referenced or not.
var Footnotes goldmark.Extender = &footnoteExtension{}

func (e *footnoteExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(&footnoteBlockParser{extension.NewFootnoteBlockParser()}, 999)),
		parser.WithInlineParsers(util.Prioritized(extension.NewFootnoteParser(), 101)),
		parser.WithASTTransformers(util.Prioritized(&footnoteRestorer{}, 999)),
	)
}

// footnoteBlockParser leaves an anchor before goldmark moves the closed
// definition into its list.
type footnoteBlockParser struct {
	parser.BlockParser
}

func (b *footnoteBlockParser) Close(node gast.Node, reader text.Reader, pc parser.Context) {
	if parent := node.Parent(); parent != nil {
		parent.InsertBefore(parent, node, &footnoteAnchor{footnote: node})
	}
	b.BlockParser.Close(node, reader, pc)
}

// footnoteRestorer runs after inline parsing, once references are
// resolved, and moves each definition back to its anchor.
type footnoteRestorer struct{}

func (t *footnoteRestorer) Transform(doc *gast.Document, reader text.Reader, pc parser.Context) {
	var anchors []*footnoteAnchor
	var lists []gast.Node
	_ = gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *footnoteAnchor:
			anchors = append(anchors, n)
		case *extast.FootnoteList:
			lists = append(lists, n)
		}
		return gast.WalkContinue, nil
	})

	for _, a := range anchors {
		parent := a.Parent()
		parent.ReplaceChild(parent, a, a.footnote)
	}
	for _, l := range lists {
		if l.ChildCount() == 0 && l.Parent() != nil {
			l.Parent().RemoveChild(l.Parent(), l)
		}
	}
}
