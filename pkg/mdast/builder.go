package mdast

func NewRoot(children ...Node) *Root {
	return &Root{Parent{Nodes: children}}
}

func NewYaml(value string) *Yaml {
	return &Yaml{Value: value}
}

func NewHeading(depth int, children ...Node) *Heading {
	return &Heading{Parent: Parent{Nodes: children}, Depth: depth}
}

func NewParagraph(children ...Node) *Paragraph {
	return &Paragraph{Parent{Nodes: children}}
}

func NewText(value string) *Text {
	return &Text{Value: value}
}

func NewEmphasis(children ...Node) *Emphasis {
	return &Emphasis{Parent{Nodes: children}}
}

func NewStrong(children ...Node) *Strong {
	return &Strong{Parent{Nodes: children}}
}

func NewDelete(children ...Node) *Delete {
	return &Delete{Parent{Nodes: children}}
}

func NewInlineCode(value string) *InlineCode {
	return &InlineCode{Value: value}
}

func NewCode(lang, meta, value string) *Code {
	return &Code{Lang: lang, Meta: meta, Value: value}
}

func NewLink(url string, children ...Node) *Link {
	return &Link{Parent: Parent{Nodes: children}, URL: url}
}

func NewImage(url, alt string) *Image {
	return &Image{URL: url, Alt: alt}
}

func NewFootnoteReference(id string) *FootnoteReference {
	return &FootnoteReference{Identifier: id}
}

func NewFootnoteDefinition(id string, children ...Node) *FootnoteDefinition {
	return &FootnoteDefinition{Parent: Parent{Nodes: children}, Identifier: id}
}

// NewList builds a bullet list, or an ordered list starting at 1.
func NewList(ordered bool, items ...Node) *List {
	l := &List{Parent: Parent{Nodes: items}, Ordered: ordered}
	if ordered {
		l.Start = 1
	}
	return l
}

// NewListItem builds a list item. Pass Checked(true) or Checked(false) for a
// task item, nil otherwise.
func NewListItem(checked *bool, children ...Node) *ListItem {
	return &ListItem{Parent: Parent{Nodes: children}, Checked: checked}
}

// Checked returns a pointer to v, for task list items.
func Checked(v bool) *bool {
	return &v
}

func NewBlockQuote(children ...Node) *BlockQuote {
	return &BlockQuote{Parent{Nodes: children}}
}

func NewTable(align []Align, rows ...Node) *Table {
	return &Table{Parent: Parent{Nodes: rows}, Align: align}
}

func NewTableRow(cells ...Node) *TableRow {
	return &TableRow{Parent{Nodes: cells}}
}

func NewTableCell(children ...Node) *TableCell {
	return &TableCell{Parent{Nodes: children}}
}

func NewHtml(value string) *Html {
	return &Html{Value: value}
}

func NewMath(value string) *Math {
	return &Math{Value: value}
}

func NewInlineMath(value string) *InlineMath {
	return &InlineMath{Value: value}
}

func NewThematicBreak() *ThematicBreak {
	return &ThematicBreak{}
}

func NewBreak() *Break {
	return &Break{}
}
