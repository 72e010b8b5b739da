package core

import "github.com/aretw0/mdfmt/pkg/outline"

// Note is the structured form of a Markdown document: optional frontmatter
// and a tree of blocks.
type Note struct {
	Metadata Metadata
	Body     []Block
}

// Block is one element of a note body. The set of implementations is closed.
type Block interface {
	block()
}

type (
	// Empty is a block with nothing to print, e.g. an empty quote.
	Empty struct{}

	// AnonymousSection holds the preamble: content before the first
	// top-level heading.
	AnonymousSection struct {
		Children []Block
	}

	Section struct {
		Title    string
		Children []Block
	}

	// Card is a callout quote such as "> [!note] title".
	Card struct {
		Kind     NoteKind
		Title    *string
		Children []Block
	}

	// Text is a leaf separated from its neighbours by a blank line.
	Text string

	// Single is a leaf separated from its neighbours by a single newline.
	Single string

	// Toc is a flattened outline.
	Toc struct {
		Entries []outline.Entry
	}
)

func (Empty) block()            {}
func (AnonymousSection) block() {}
func (Section) block()          {}
func (Card) block()             {}
func (Text) block()             {}
func (Single) block()           {}
func (Toc) block()              {}
