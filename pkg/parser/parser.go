// Package parser builds a core.Note from a Markdown syntax tree.
//
// Top-level siblings are consumed with a forward cursor: headings open
// sections that end at the next heading of the same or a lower depth, block
// quotes become cards, and everything else becomes rendered text.
package parser

import (
	"fmt"

	"github.com/aretw0/mdfmt/pkg/core"
	"github.com/aretw0/mdfmt/pkg/mdast"
	"github.com/aretw0/mdfmt/pkg/render"
)

// Parse converts a document tree into a note. Undecodable frontmatter is
// kept as core.RawMetadata and does not fail the parse.
func Parse(node mdast.Node) (core.Note, error) {
	root, ok := node.(*mdast.Root)
	if !ok {
		kind := "nil"
		if node != nil {
			kind = node.Kind()
		}
		return core.Note{}, fmt.Errorf("%w, got %s", core.ErrInvalidDocument, kind)
	}

	c := &cursor{nodes: root.Nodes}
	var note core.Note

	if y, ok := c.peek().(*mdast.Yaml); ok {
		c.advance()
		note.Metadata = decodeMetadata(y.Value)
	}

	preamble, err := c.blocks(1)
	if err != nil {
		return core.Note{}, err
	}
	if len(preamble) > 0 {
		note.Body = append(note.Body, core.AnonymousSection{Children: preamble})
	}

	sections, err := c.blocks(0)
	if err != nil {
		return core.Note{}, err
	}
	note.Body = append(note.Body, sections...)

	return note, nil
}

func decodeMetadata(raw string) core.Metadata {
	m, err := core.DecodeMetadata(raw)
	if err != nil {
		return core.RawMetadata(raw)
	}
	return m
}

type cursor struct {
	nodes []mdast.Node
	pos   int
}

func (c *cursor) peek() mdast.Node {
	if c.pos >= len(c.nodes) {
		return nil
	}
	return c.nodes[c.pos]
}

func (c *cursor) advance() {
	c.pos++
}

// blocks consumes siblings until a heading of depth minDepth or lower.
func (c *cursor) blocks(minDepth int) ([]core.Block, error) {
	var out []core.Block
	for n := c.peek(); n != nil; n = c.peek() {
		if h, ok := n.(*mdast.Heading); ok {
			if h.Depth <= minDepth {
				break
			}
			c.advance()
			section, err := c.section(h)
			if err != nil {
				return nil, err
			}
			out = append(out, section)
			continue
		}

		c.advance()
		b, err := block(n)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (c *cursor) section(h *mdast.Heading) (core.Section, error) {
	title, err := render.Inline(h.Nodes)
	if err != nil {
		return core.Section{}, err
	}
	children, err := c.blocks(h.Depth)
	if err != nil {
		return core.Section{}, err
	}
	return core.Section{Title: title, Children: children}, nil
}

func block(n mdast.Node) (core.Block, error) {
	switch n := n.(type) {
	case *mdast.BlockQuote:
		return card(n)
	case *mdast.FootnoteDefinition:
		s, err := render.Render(n)
		if err != nil {
			return nil, err
		}
		return core.Single(s), nil
	}
	s, err := render.Render(n)
	if err != nil {
		return nil, err
	}
	return core.Text(s), nil
}
