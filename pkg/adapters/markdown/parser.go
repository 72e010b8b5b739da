// Package markdown adapts goldmark to the mdast syntax tree.
//
// The parser understands CommonMark plus GFM tables, strikethrough, task
// lists and footnotes, $-delimited math, and a leading YAML frontmatter
// block.
package markdown

import (
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/aretw0/mdfmt/pkg/mdast"
)

// Option configures a Parser.
type Option func(*Parser)

// WithEscape controls the pre-parse escape of linked images. Enabled by
// default.
func WithEscape(enabled bool) Option {
	return func(p *Parser) {
		p.escape = enabled
	}
}

// WithExtensions registers additional goldmark extensions. Nodes they
// produce must map onto mdast, otherwise parsing reports unsupported
// syntax.
func WithExtensions(exts ...goldmark.Extender) Option {
	return func(p *Parser) {
		p.extensions = append(p.extensions, exts...)
	}
}

// Parser turns Markdown source into an mdast tree. It is safe for
// concurrent use.
type Parser struct {
	escape     bool
	extensions []goldmark.Extender
	md         goldmark.Markdown
}

// NewParser builds a parser with the default extension set.
func NewParser(opts ...Option) *Parser {
	p := &Parser{escape: true}
	for _, opt := range opts {
		opt(p)
	}

	exts := []goldmark.Extender{
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
		Footnotes,
		Math,
	}
	p.md = goldmark.New(goldmark.WithExtensions(append(exts, p.extensions...)...))
	return p
}

// Parse reads src into a document tree. A leading frontmatter block becomes
// the first child, as an *mdast.Yaml node.
func (p *Parser) Parse(src []byte) (*mdast.Root, error) {
	raw, body := splitFrontmatter(src)
	if p.escape {
		body = Escape(body)
	}

	pc := parser.NewContext()
	doc := p.md.Parser().Parse(text.NewReader(body), parser.WithContext(pc))
	c := &converter{source: body, footnotes: footnoteLabels(doc)}

	children, err := c.blocks(doc)
	if err != nil {
		return nil, err
	}

	root := mdast.NewRoot()
	if raw != nil {
		root.Append(mdast.NewYaml(*raw))
	}
	root.Append(children...)
	root.Append(definitions(pc)...)
	return root, nil
}

// definitions returns the link reference definitions goldmark consumed
// while parsing, sorted by label. goldmark removes them from the tree, so
// they are appended at the end of the document.
func definitions(pc parser.Context) []mdast.Node {
	refs := pc.References()
	slices.SortFunc(refs, func(a, b parser.Reference) int {
		return strings.Compare(string(a.Label()), string(b.Label()))
	})

	out := make([]mdast.Node, 0, len(refs))
	for _, ref := range refs {
		out = append(out, &mdast.Definition{
			Label: string(ref.Label()),
			URL:   string(ref.Destination()),
		})
	}
	return out
}

// ComponentType implements introspection.Component.
func (p *Parser) ComponentType() string {
	return "goldmark"
}
