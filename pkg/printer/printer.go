// Package printer renders a normalized core.Note as canonical Markdown.
package printer

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/mdfmt/pkg/core"
	"github.com/aretw0/mdfmt/pkg/render"
)

// Print returns the canonical text of note, ending with exactly one newline.
// The note is expected to be normalized already.
func Print(note core.Note) (string, error) {
	var out chunks
	if err := printMetadata(&out, note.Metadata); err != nil {
		return "", err
	}
	for _, b := range note.Body {
		printBlock(&out, b, 1)
	}
	return out.String() + "\n", nil
}

// PrintBlock renders a single block with its headings at the given depth.
func PrintBlock(b core.Block, depth int) string {
	var out chunks
	printBlock(&out, b, depth)
	return out.String()
}

func printMetadata(out *chunks, md core.Metadata) error {
	switch md := md.(type) {
	case *core.Meta:
		if md == nil {
			return nil
		}
		y, err := encodeFrontmatter(md)
		if err != nil {
			return err
		}
		out.single("---\n" + y + "---")
	case core.RawMetadata:
		out.single("---\n" + strings.TrimRight(string(md), "\n") + "\n---")
	}
	return nil
}

// encodeFrontmatter writes top-level keys at column zero and nests with two
// spaces.
func encodeFrontmatter(m *core.Meta) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	return buf.String(), nil
}

func printBlock(out *chunks, b core.Block, depth int) {
	switch b := b.(type) {
	case core.Empty:
	case core.AnonymousSection:
		for _, c := range b.Children {
			printBlock(out, c, depth+1)
		}
	case core.Section:
		out.single(render.Heading(depth, b.Title))
		for _, c := range b.Children {
			printBlock(out, c, depth+1)
		}
	case core.Card:
		printCard(out, b)
	case core.Text:
		out.double(string(b))
	case core.Single:
		out.single(string(b))
	case core.Toc:
		lines := make([]string, 0, len(b.Entries)+1)
		lines = append(lines, "> "+core.KindToc.Marker())
		for _, e := range b.Entries {
			lines = append(lines, "> "+strings.Repeat(render.Indent, max(e.Depth-1, 0))+"- "+e.Label)
		}
		out.double(strings.Join(lines, "\n"))
	}
}

// printCard prints the card body on its own, starting from depth 1, and
// quotes the result.
func printCard(out *chunks, c core.Card) {
	line := c.Kind.Marker()
	if c.Title != nil {
		line += " " + *c.Title
	}

	var sub chunks
	sub.single(line)
	for _, child := range c.Children {
		printBlock(&sub, child, 1)
	}
	out.single(render.Quote(sub.String()))
}
