package core

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pretty returns a readable dump of the note structure for debugging.
func Pretty(n Note) string {
	var b strings.Builder

	switch md := n.Metadata.(type) {
	case *Meta:
		b.WriteString("Meta\n")
		if out, err := yaml.Marshal(md); err == nil {
			for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
				b.WriteString("  " + line + "\n")
			}
		}
	case RawMetadata:
		fmt.Fprintf(&b, "Raw %q\n", string(md))
	}

	for _, block := range n.Body {
		prettyBlock(&b, block, 0)
	}
	return b.String()
}

func prettyBlock(b *strings.Builder, block Block, level int) {
	pad := strings.Repeat("  ", level)
	switch block := block.(type) {
	case Empty:
		b.WriteString(pad + "Empty\n")
	case AnonymousSection:
		b.WriteString(pad + "AnonymousSection\n")
		for _, c := range block.Children {
			prettyBlock(b, c, level+1)
		}
	case Section:
		fmt.Fprintf(b, "%sSection %q\n", pad, block.Title)
		for _, c := range block.Children {
			prettyBlock(b, c, level+1)
		}
	case Card:
		if block.Title != nil {
			fmt.Fprintf(b, "%sCard %s %q\n", pad, block.Kind, *block.Title)
		} else {
			fmt.Fprintf(b, "%sCard %s\n", pad, block.Kind)
		}
		for _, c := range block.Children {
			prettyBlock(b, c, level+1)
		}
	case Text:
		fmt.Fprintf(b, "%sText %q\n", pad, string(block))
	case Single:
		fmt.Fprintf(b, "%sSingle %q\n", pad, string(block))
	case Toc:
		b.WriteString(pad + "Toc\n")
		for _, e := range block.Entries {
			fmt.Fprintf(b, "%s  %d %q\n", pad, e.Depth, e.Label)
		}
	}
}
