// Package index builds the metadata index written by `mdfmt --index`.
package index

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/aretw0/mdfmt/pkg/core"
)

// Item is the index entry of one note.
type Item struct {
	File string     `json:"file"`
	Path string     `json:"path"`
	Meta *core.Meta `json:"meta"`
}

// NewItem describes the note read from path. Only decoded metadata is
// indexed; raw frontmatter leaves Meta nil.
func NewItem(path string, note core.Note) Item {
	item := Item{File: filepath.Base(path), Path: path}
	if m, ok := note.Metadata.(*core.Meta); ok && m != nil {
		item.Meta = m
	}
	return item
}

// Index collects items in insertion order.
type Index struct {
	items []Item
}

// Add appends the entry of the note read from path.
func (x *Index) Add(path string, note core.Note) {
	x.items = append(x.items, NewItem(path, note))
}

// Len returns the number of items, indexed or not.
func (x *Index) Len() int {
	return len(x.items)
}

// Marshal returns the compact JSON array of every item that has metadata.
func (x *Index) Marshal() ([]byte, error) {
	out := make([]Item, 0, len(x.items))
	for _, item := range x.items {
		if item.Meta == nil {
			continue
		}
		out = append(out, item)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode index: %w", err)
	}
	return data, nil
}
