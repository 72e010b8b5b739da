package printer

import "strings"

type spacing int

const (
	// single chunks are followed by one newline.
	single spacing = iota
	// double chunks are followed by a blank line.
	double
)

type chunk struct {
	text    string
	spacing spacing
}

// chunks accumulates printed blocks in document order.
type chunks []chunk

func (c *chunks) single(s string) { *c = append(*c, chunk{s, single}) }
func (c *chunks) double(s string) { *c = append(*c, chunk{s, double}) }

func (c chunks) String() string {
	var b strings.Builder
	for _, ch := range c {
		b.WriteString(ch.text)
		if ch.spacing == double {
			b.WriteString("\n\n")
		} else {
			b.WriteString("\n")
		}
	}
	return strings.TrimSpace(b.String())
}
