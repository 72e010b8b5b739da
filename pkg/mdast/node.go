// Package mdast defines the generic Markdown syntax tree.
//
// The tree is adapter neutral: the goldmark adapter produces it and the note
// parser and inline renderer consume it. Node types form a closed set and are
// handled with exhaustive type switches.
package mdast

// Node is a node of the syntax tree.
type Node interface {
	// Kind returns the node type name, e.g. "Paragraph".
	Kind() string
	// Children returns the child nodes. Leaves return nil.
	Children() []Node
}

// Parent holds child nodes and is embedded by every container node.
type Parent struct {
	Nodes []Node
}

// Children implements Node.
func (p *Parent) Children() []Node { return p.Nodes }

// Append adds nodes to the end of the child list.
func (p *Parent) Append(nodes ...Node) { p.Nodes = append(p.Nodes, nodes...) }

type leaf struct{}

func (leaf) Children() []Node { return nil }

// Align is the alignment of a table column.
type Align int

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

type (
	// Root is the document node.
	Root struct{ Parent }

	// Yaml is the frontmatter block. Value holds the raw YAML text.
	Yaml struct {
		leaf
		Value string
	}

	// Heading is an ATX or setext heading. Depth ranges from 1 to 6.
	Heading struct {
		Parent
		Depth int
	}

	Paragraph struct{ Parent }

	Text struct {
		leaf
		Value string
	}

	Emphasis struct{ Parent }

	Strong struct{ Parent }

	// Delete is GFM strikethrough.
	Delete struct{ Parent }

	InlineCode struct {
		leaf
		Value string
	}

	// Code is a fenced or indented code block.
	Code struct {
		leaf
		Lang  string
		Meta  string
		Value string
	}

	Link struct {
		Parent
		URL   string
		Title string
	}

	Image struct {
		leaf
		URL   string
		Title string
		Alt   string
	}

	FootnoteReference struct {
		leaf
		Identifier string
	}

	FootnoteDefinition struct {
		Parent
		Identifier string
	}

	// List is an ordered or bullet list. Start is the first ordinal of an
	// ordered list.
	List struct {
		Parent
		Ordered bool
		Start   int
		Spread  bool
	}

	// ListItem is a list entry. Checked is nil for items without a task box.
	ListItem struct {
		Parent
		Checked *bool
	}

	BlockQuote struct{ Parent }

	// Table is a GFM table. Align holds one entry per column.
	Table struct {
		Parent
		Align []Align
	}

	TableRow struct{ Parent }

	TableCell struct{ Parent }

	// Html is raw inline or block HTML.
	Html struct {
		leaf
		Value string
	}

	// Math is a display math block delimited by $$.
	Math struct {
		leaf
		Value string
	}

	InlineMath struct {
		leaf
		Value string
	}

	ThematicBreak struct{ leaf }

	// Break is a hard line break.
	Break struct{ leaf }

	// Definition is a link reference definition. It has no canonical
	// rendering.
	Definition struct {
		leaf
		Label string
		URL   string
	}
)

func (*Root) Kind() string               { return "Root" }
func (*Yaml) Kind() string               { return "Yaml" }
func (*Heading) Kind() string            { return "Heading" }
func (*Paragraph) Kind() string          { return "Paragraph" }
func (*Text) Kind() string               { return "Text" }
func (*Emphasis) Kind() string           { return "Emphasis" }
func (*Strong) Kind() string             { return "Strong" }
func (*Delete) Kind() string             { return "Delete" }
func (*InlineCode) Kind() string         { return "InlineCode" }
func (*Code) Kind() string               { return "Code" }
func (*Link) Kind() string               { return "Link" }
func (*Image) Kind() string              { return "Image" }
func (*FootnoteReference) Kind() string  { return "FootnoteReference" }
func (*FootnoteDefinition) Kind() string { return "FootnoteDefinition" }
func (*List) Kind() string               { return "List" }
func (*ListItem) Kind() string           { return "ListItem" }
func (*BlockQuote) Kind() string         { return "BlockQuote" }
func (*Table) Kind() string              { return "Table" }
func (*TableRow) Kind() string           { return "TableRow" }
func (*TableCell) Kind() string          { return "TableCell" }
func (*Html) Kind() string               { return "Html" }
func (*Math) Kind() string               { return "Math" }
func (*InlineMath) Kind() string         { return "InlineMath" }
func (*ThematicBreak) Kind() string      { return "ThematicBreak" }
func (*Break) Kind() string              { return "Break" }
func (*Definition) Kind() string         { return "Definition" }
