package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Metadata is the frontmatter of a note: either *Meta or RawMetadata.
type Metadata interface {
	metadata()
}

// RawMetadata is frontmatter that could not be decoded. It is printed back
// verbatim.
type RawMetadata string

func (RawMetadata) metadata() {}

// Meta is decoded frontmatter. Unknown keys are kept in Others.
type Meta struct {
	Title       *string     `yaml:"title,omitempty" json:"title,omitempty"`
	Description *string     `yaml:"description,omitempty" json:"description,omitempty"`
	Path        *string     `yaml:"path,omitempty" json:"path,omitempty"`
	Bookmark    *Bookmark   `yaml:"bookmark,omitempty" json:"bookmark,omitempty"`
	Link        *string     `yaml:"link,omitempty" json:"link,omitempty"`
	Toc         *string     `yaml:"toc,omitempty" json:"toc,omitempty"`
	Status      *NoteStatus `yaml:"status,omitempty" json:"status,omitempty"`
	Kind        *NoteKind   `yaml:"kind,omitempty" json:"kind,omitempty"`
	JournalDate *Date       `yaml:"journalDate,omitempty" json:"journalDate,omitempty"`
	CreatedAt   *DateTime   `yaml:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   *DateTime   `yaml:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	Author      StringList  `yaml:"author,omitempty" json:"author,omitempty"`
	Tags        StringList  `yaml:"tags,omitempty" json:"tags,omitempty"`

	Others map[string]any `yaml:",inline" json:"-"`
}

func (*Meta) metadata() {}

// Bookmark describes a clipped web page.
type Bookmark struct {
	ID          *string   `yaml:"id,omitempty" json:"id,omitempty"`
	Image       *string   `yaml:"image,omitempty" json:"image,omitempty"`
	Title       *string   `yaml:"title,omitempty" json:"title,omitempty"`
	Toc         *string   `yaml:"toc,omitempty" json:"toc,omitempty"`
	JournalDate *Date     `yaml:"journalDate,omitempty" json:"journalDate,omitempty"`
	CreatedAt   *DateTime `yaml:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   *DateTime `yaml:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	URL         *string   `yaml:"url,omitempty" json:"url,omitempty"`

	Others map[string]any `yaml:",inline" json:"-"`
}

// DecodeMetadata decodes raw frontmatter YAML.
func DecodeMetadata(raw string) (*Meta, error) {
	var m Meta
	if err := yaml.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMetadataDecode, err)
	}
	return &m, nil
}

// IsEmpty reports whether no field is set. Empty lists count as unset.
func (m *Meta) IsEmpty() bool {
	return m == nil || (m.Title == nil && m.Description == nil && m.Path == nil &&
		m.Bookmark == nil && m.Link == nil && m.Toc == nil && m.Status == nil &&
		m.Kind == nil && m.JournalDate == nil && m.CreatedAt == nil &&
		m.UpdatedAt == nil && len(m.Author) == 0 && len(m.Tags) == 0 &&
		len(m.Others) == 0)
}

func (m *Meta) UnmarshalYAML(value *yaml.Node) error {
	type plain Meta
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	if err := restoreOthers(value, p.Others); err != nil {
		return err
	}
	*m = Meta(p)
	return nil
}

func (m Meta) MarshalJSON() ([]byte, error) {
	type plain Meta
	return marshalWithOthers(plain(m), m.Others)
}

func (m *Meta) UnmarshalJSON(data []byte) error {
	type plain Meta
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	others, err := unknownJSONFields(data, metaKeys)
	if err != nil {
		return err
	}
	p.Others = others
	*m = Meta(p)
	return nil
}

func (b *Bookmark) UnmarshalYAML(value *yaml.Node) error {
	type plain Bookmark
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	if err := restoreOthers(value, p.Others); err != nil {
		return err
	}
	*b = Bookmark(p)
	return nil
}

func (b Bookmark) MarshalJSON() ([]byte, error) {
	type plain Bookmark
	return marshalWithOthers(plain(b), b.Others)
}

func (b *Bookmark) UnmarshalJSON(data []byte) error {
	type plain Bookmark
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	others, err := unknownJSONFields(data, bookmarkKeys)
	if err != nil {
		return err
	}
	p.Others = others
	*b = Bookmark(p)
	return nil
}

// StringList decodes from a single string or a sequence of strings and is
// always encoded as a sequence.
type StringList []string

func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = StringList{s}
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = items
	default:
		return fmt.Errorf("line %d: expecting a string or a list of strings", value.Line)
	}
	return nil
}

func (l *StringList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = StringList{s}
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// Timestamp is an unknown frontmatter value that YAML reads as a timestamp.
// It is kept as text and written back unquoted.
type Timestamp string

func (t Timestamp) MarshalYAML() (any, error) {
	return timestampNode(string(t)), nil
}

// restoreOthers re-reads the unknown keys of a mapping so that timestamps
// stay timestamps.
func restoreOthers(value *yaml.Node, others map[string]any) error {
	if value.Kind != yaml.MappingNode || len(others) == 0 {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		if _, ok := others[key]; !ok {
			continue
		}
		v, err := passthrough(value.Content[i+1])
		if err != nil {
			return err
		}
		others[key] = v
	}
	return nil
}

func passthrough(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return passthrough(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := passthrough(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := passthrough(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.ScalarNode:
		if n.ShortTag() == "!!timestamp" {
			return Timestamp(n.Value), nil
		}
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// marshalWithOthers encodes v and appends the entries of others, sorted by
// key, after the declared fields.
func marshalWithOthers(v any, others map[string]any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(others) == 0 {
		return data, err
	}

	var declared map[string]json.RawMessage
	if err := json.Unmarshal(data, &declared); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(others))
	for k := range others {
		if _, taken := declared[k]; !taken {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	buf := bytes.NewBuffer(bytes.TrimSuffix(data, []byte("}")))
	for _, k := range keys {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		name, _ := json.Marshal(k)
		value, err := json.Marshal(others[k])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var (
	metaKeys = keySet("title", "description", "path", "bookmark", "link", "toc", "status",
		"kind", "journalDate", "createdAt", "updatedAt", "author", "tags")
	bookmarkKeys = keySet("id", "image", "title", "toc", "journalDate", "createdAt",
		"updatedAt", "url")
)

func keySet(keys ...string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

// unknownJSONFields returns the members of the data object whose key is not
// in known.
func unknownJSONFields(data []byte, known map[string]bool) (map[string]any, error) {
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	var others map[string]any
	for k, v := range all {
		if known[k] {
			continue
		}
		if others == nil {
			others = make(map[string]any)
		}
		others[k] = v
	}
	return others, nil
}
