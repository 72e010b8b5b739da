package markdown

import "regexp"

// linkedImage matches an image nested in a link label, e.g.
// [![badge](badge.svg)](https://ci.example.com).
var linkedImage = regexp.MustCompile(`\[!\[[^\]]*\]\([^)]*\)[^\]]*\]\([^)]*\)`)

// Escape wraps every linked image in backticks so it is kept verbatim as
// inline code.
func Escape(src []byte) []byte {
	return linkedImage.ReplaceAllFunc(src, func(m []byte) []byte {
		out := make([]byte, 0, len(m)+2)
		out = append(out, '`')
		out = append(out, m...)
		return append(out, '`')
	})
}
