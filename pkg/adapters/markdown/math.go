package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	// KindMathBlock is the goldmark node kind of a $$ display block.
	KindMathBlock = gast.NewNodeKind("MathBlock")
	// KindInlineMath is the goldmark node kind of $ inline math.
	KindInlineMath = gast.NewNodeKind("InlineMath")
)

// MathBlock is a display math block delimited by $$ lines.
type MathBlock struct {
	gast.BaseBlock
	Value string

	lines  []string
	closed bool
}

func (n *MathBlock) Kind() gast.NodeKind { return KindMathBlock }

func (n *MathBlock) IsRaw() bool { return true }

func (n *MathBlock) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{"Value": n.Value}, nil)
}

// InlineMath is math between matching runs of $.
type InlineMath struct {
	gast.BaseInline
	Value string
}

func (n *InlineMath) Kind() gast.NodeKind { return KindInlineMath }

func (n *InlineMath) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{"Value": n.Value}, nil)
}

type mathExtension struct{}

// Math adds $$ blocks and $ inline math to a goldmark parser.
var Math goldmark.Extender = &mathExtension{}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(&mathBlockParser{}, 650)),
		parser.WithInlineParsers(util.Prioritized(&inlineMathParser{}, 150)),
	)
}

var mathFence = []byte("$$")

type mathBlockParser struct{}

func (b *mathBlockParser) Trigger() []byte { return []byte{'$'} }

func (b *mathBlockParser) Open(parent gast.Node, reader text.Reader, pc parser.Context) (gast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos >= len(line) {
		return nil, parser.NoChildren
	}
	trimmed := bytes.TrimSpace(line[pos:])
	if !bytes.HasPrefix(trimmed, mathFence) {
		return nil, parser.NoChildren
	}

	rest := trimmed[len(mathFence):]
	node := &MathBlock{}
	switch {
	case len(rest) == 0:
	case len(rest) >= len(mathFence) && bytes.HasSuffix(rest, mathFence):
		// $$x$$ on a single line
		node.Value = string(rest[:len(rest)-len(mathFence)])
		node.closed = true
	default:
		return nil, parser.NoChildren
	}
	return node, parser.NoChildren
}

func (b *mathBlockParser) Continue(node gast.Node, reader text.Reader, pc parser.Context) parser.State {
	n := node.(*MathBlock)
	if n.closed {
		return parser.Close
	}

	line, segment := reader.PeekLine()
	if bytes.Equal(bytes.TrimSpace(line), mathFence) {
		newline := 1
		if line[len(line)-1] != '\n' {
			newline = 0
		}
		reader.Advance(segment.Stop - segment.Start - newline + segment.Padding)
		n.closed = true
		return parser.Close
	}

	n.lines = append(n.lines, string(line))
	return parser.Continue | parser.NoChildren
}

func (b *mathBlockParser) Close(node gast.Node, reader text.Reader, pc parser.Context) {
	n := node.(*MathBlock)
	if n.closed && n.lines == nil {
		return
	}
	n.Value = strings.TrimSuffix(strings.Join(n.lines, ""), "\n")
}

func (b *mathBlockParser) CanInterruptParagraph() bool { return true }

func (b *mathBlockParser) CanAcceptIndentedLine() bool { return false }

type inlineMathParser struct{}

func (p *inlineMathParser) Trigger() []byte { return []byte{'$'} }

// Parse matches a run of $ with the next run of the same length on the same
// line.
func (p *inlineMathParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	line, _ := block.PeekLine()
	open := 0
	for open < len(line) && line[open] == '$' {
		open++
	}

	for i := open; i < len(line); {
		if line[i] != '$' {
			i++
			continue
		}
		j := i
		for j < len(line) && line[j] == '$' {
			j++
		}
		if j-i == open {
			value := line[open:i]
			if len(bytes.TrimSpace(value)) == 0 {
				return nil
			}
			block.Advance(j)
			return &InlineMath{Value: string(value)}
		}
		i = j
	}
	return nil
}
