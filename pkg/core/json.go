package core

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/mdfmt/pkg/outline"
)

// Block type tags used by the JSON model.
const (
	TypeEmpty            = "Empty"
	TypeAnonymousSection = "AnonymousSection"
	TypeSection          = "Section"
	TypeCard             = "Card"
	TypeText             = "Text"
	TypeSingle           = "Single"
	TypeToc              = "Toc"
)

type noteJSON struct {
	Metadata json.RawMessage `json:"metadata"`
	Body     blockList       `json:"body"`
}

type metadataJSON struct {
	Meta *Meta        `json:"Meta,omitempty"`
	Raw  *RawMetadata `json:"Raw,omitempty"`
}

type taggedBlock struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

type sectionJSON struct {
	Title    string    `json:"title"`
	Children blockList `json:"children"`
}

type cardJSON struct {
	Kind     NoteKind  `json:"kind"`
	Title    *string   `json:"title"`
	Children blockList `json:"children"`
}

// MarshalJSON encodes the note as {"metadata": ..., "body": [...]}. Each
// block is an object {"type": ..., "value": ...}.
func (n Note) MarshalJSON() ([]byte, error) {
	var md any
	switch m := n.Metadata.(type) {
	case *Meta:
		md = metadataJSON{Meta: m}
	case RawMetadata:
		md = metadataJSON{Raw: &m}
	}
	raw, err := json.Marshal(md)
	if err != nil {
		return nil, err
	}
	return json.Marshal(noteJSON{Metadata: raw, Body: blockList(n.Body)})
}

func (n *Note) UnmarshalJSON(data []byte) error {
	var doc noteJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	n.Metadata = nil
	if len(doc.Metadata) > 0 && string(doc.Metadata) != "null" {
		var md metadataJSON
		if err := json.Unmarshal(doc.Metadata, &md); err != nil {
			return fmt.Errorf("metadata: %w", err)
		}
		switch {
		case md.Meta != nil:
			n.Metadata = md.Meta
		case md.Raw != nil:
			n.Metadata = *md.Raw
		}
	}
	n.Body = doc.Body
	return nil
}

type blockList []Block

func (l blockList) MarshalJSON() ([]byte, error) {
	tagged := make([]taggedBlock, 0, len(l))
	for _, b := range l {
		t, err := tagBlock(b)
		if err != nil {
			return nil, err
		}
		tagged = append(tagged, t)
	}
	return json.Marshal(tagged)
}

func (l *blockList) UnmarshalJSON(data []byte) error {
	var tagged []taggedBlock
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	blocks := make(blockList, 0, len(tagged))
	for _, t := range tagged {
		b, err := untagBlock(t)
		if err != nil {
			return err
		}
		blocks = append(blocks, b)
	}
	*l = blocks
	return nil
}

func tagBlock(b Block) (taggedBlock, error) {
	var typ string
	var value any
	switch b := b.(type) {
	case Empty:
		return taggedBlock{Type: TypeEmpty}, nil
	case AnonymousSection:
		typ, value = TypeAnonymousSection, blockList(b.Children)
	case Section:
		typ, value = TypeSection, sectionJSON{Title: b.Title, Children: b.Children}
	case Card:
		typ, value = TypeCard, cardJSON{Kind: b.Kind, Title: b.Title, Children: b.Children}
	case Text:
		typ, value = TypeText, string(b)
	case Single:
		typ, value = TypeSingle, string(b)
	case Toc:
		pairs := make([][2]any, 0, len(b.Entries))
		for _, e := range b.Entries {
			pairs = append(pairs, [2]any{e.Depth, e.Label})
		}
		typ, value = TypeToc, pairs
	default:
		return taggedBlock{}, fmt.Errorf("unknown block %T", b)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return taggedBlock{}, err
	}
	return taggedBlock{Type: typ, Value: raw}, nil
}

func untagBlock(t taggedBlock) (Block, error) {
	switch t.Type {
	case TypeEmpty:
		return Empty{}, nil
	case TypeAnonymousSection:
		var children blockList
		if err := unmarshalValue(t, &children); err != nil {
			return nil, err
		}
		return AnonymousSection{Children: children}, nil
	case TypeSection:
		var s sectionJSON
		if err := unmarshalValue(t, &s); err != nil {
			return nil, err
		}
		return Section{Title: s.Title, Children: s.Children}, nil
	case TypeCard:
		var c cardJSON
		if err := unmarshalValue(t, &c); err != nil {
			return nil, err
		}
		return Card{Kind: ParseNoteKind(string(c.Kind)), Title: c.Title, Children: c.Children}, nil
	case TypeText:
		var s string
		if err := unmarshalValue(t, &s); err != nil {
			return nil, err
		}
		return Text(s), nil
	case TypeSingle:
		var s string
		if err := unmarshalValue(t, &s); err != nil {
			return nil, err
		}
		return Single(s), nil
	case TypeToc:
		var pairs [][]json.RawMessage
		if err := unmarshalValue(t, &pairs); err != nil {
			return nil, err
		}
		entries := make([]outline.Entry, 0, len(pairs))
		for _, p := range pairs {
			if len(p) != 2 {
				return nil, fmt.Errorf("toc entry: expecting [depth, label]")
			}
			var e outline.Entry
			if err := json.Unmarshal(p[0], &e.Depth); err != nil {
				return nil, fmt.Errorf("toc entry depth: %w", err)
			}
			if err := json.Unmarshal(p[1], &e.Label); err != nil {
				return nil, fmt.Errorf("toc entry label: %w", err)
			}
			entries = append(entries, e)
		}
		return Toc{Entries: entries}, nil
	}
	return nil, fmt.Errorf("unknown block type %q", t.Type)
}

func unmarshalValue(t taggedBlock, v any) error {
	if len(t.Value) == 0 {
		return nil
	}
	if err := json.Unmarshal(t.Value, v); err != nil {
		return fmt.Errorf("%s: %w", t.Type, err)
	}
	return nil
}
