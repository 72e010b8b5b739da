package parser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/mdfmt/pkg/core"
	"github.com/aretw0/mdfmt/pkg/mdast"
	"github.com/aretw0/mdfmt/pkg/outline"
	"github.com/aretw0/mdfmt/pkg/render"
)

// card recognizes a callout quote. The first line of the quote may carry a
// marker such as "[!todo]" followed by a title; quotes without a marker are
// plain note cards.
func card(q *mdast.BlockQuote) (core.Block, error) {
	if len(q.Nodes) == 0 {
		return core.Empty{}, nil
	}

	kind := core.KindNote
	var title *string
	nodes := q.Nodes

	if m, ok := matchMarker(q.Nodes); ok {
		kind, title, nodes = m.kind, m.title, m.rest
	}

	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		s, err := render.Render(n)
		if err != nil {
			return nil, err
		}
		lines = append(lines, s)
	}

	if kind == core.KindToc {
		forest, err := outline.ParseLines(strings.Split(strings.Join(lines, "\n"), "\n"))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrTocParse, err)
		}
		return core.Toc{Entries: forest.Flatten()}, nil
	}

	c := core.Card{Kind: kind, Title: title}
	if text := strings.Join(lines, "\n\n"); text != "" {
		c.Children = []core.Block{core.Text(text)}
	}
	return c, nil
}

type marker struct {
	kind  core.NoteKind
	title *string
	rest  []mdast.Node
}

func matchMarker(nodes []mdast.Node) (marker, bool) {
	p, ok := nodes[0].(*mdast.Paragraph)
	if !ok || len(p.Nodes) == 0 {
		return marker{}, false
	}
	head, tail := splitFirstLine(p.Nodes)
	if len(head) == 0 {
		return marker{}, false
	}
	first, ok := head[0].(*mdast.Text)
	if !ok {
		return marker{}, false
	}

	line := strings.TrimLeft(first.Value, " ")
	for _, k := range core.NoteKinds {
		after, found := strings.CutPrefix(line, k.Marker())
		if !found || (after != "" && after[0] != ' ') {
			continue
		}

		titleNodes := append([]mdast.Node{mdast.NewText(after)}, head[1:]...)
		t, err := render.Inline(titleNodes)
		if err != nil {
			return marker{}, false
		}

		m := marker{kind: k}
		if t != "" {
			m.title = &t
		}
		if len(tail) > 0 {
			m.rest = append(m.rest, mdast.NewParagraph(tail...))
		}
		m.rest = append(m.rest, nodes[1:]...)
		return m, true
	}
	return marker{}, false
}

// splitFirstLine splits paragraph content at its first line ending.
func splitFirstLine(nodes []mdast.Node) (head, tail []mdast.Node) {
	for i, n := range nodes {
		switch n := n.(type) {
		case *mdast.Break:
			return nodes[:i:i], nodes[i+1:]
		case *mdast.Text:
			before, after, ok := strings.Cut(n.Value, "\n")
			if !ok {
				continue
			}
			head = append(slices.Clone(nodes[:i]), mdast.NewText(before))
			tail = nodes[i+1:]
			if after != "" {
				tail = append([]mdast.Node{mdast.NewText(after)}, tail...)
			}
			return head, tail
		}
	}
	return nodes, nil
}
