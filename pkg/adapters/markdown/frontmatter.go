package markdown

import (
	"bytes"
	"strings"

	"github.com/adrg/frontmatter"
)

type rawFrontmatter struct {
	text  string
	found bool
}

// yamlFormat captures the text between the --- delimiters without decoding
// it; decoding happens on the note model.
var yamlFormat = &frontmatter.Format{
	Start: "---",
	End:   "---",
	Unmarshal: func(data []byte, v interface{}) error {
		fm := v.(*rawFrontmatter)
		fm.text = string(data)
		fm.found = true
		return nil
	},
}

// splitFrontmatter returns the raw frontmatter, if any, and the body that
// follows it.
func splitFrontmatter(src []byte) (*string, []byte) {
	if !bytes.HasPrefix(src, []byte("---")) {
		return nil, src
	}

	var fm rawFrontmatter
	body, err := frontmatter.Parse(bytes.NewReader(src), &fm, yamlFormat)
	if err != nil || !fm.found {
		return nil, src
	}

	raw := strings.TrimRight(fm.text, "\r\n")
	return &raw, body
}
