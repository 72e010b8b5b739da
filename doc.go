// Package mdfmt normalizes Markdown notes into one canonical text.
//
// It reads GFM with YAML frontmatter, $-delimited math and the Obsidian
// callout dialect, builds a structured Note (sections, cards, outlines and
// decoded metadata) and prints it back deterministically. Formatting is
// idempotent: formatting canonical text returns it unchanged.
//
// Pipeline:
//
//	text -> goldmark (pkg/adapters/markdown) -> mdast tree
//	     -> note parser (pkg/parser) -> Note -> Normalize
//	     -> printer (pkg/printer) -> canonical text
//
// Usage:
//
//	svc := mdfmt.New(mdfmt.WithLogger(logger))
//	out, err := svc.Format(src)
//
//	// Rewrite every note of a vault
//	runner := mdfmt.NewRunner()
//	report, err := runner.Run(ctx, paths, fs.ModeWrite, os.Stdout)
package mdfmt
