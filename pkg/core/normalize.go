package core

import (
	"fmt"
	"strings"

	"github.com/aretw0/mdfmt/pkg/outline"
)

// NormalizeMetadata returns the canonical form of md, or nil when nothing
// is left to print. Raw metadata passes through unchanged.
func NormalizeMetadata(md Metadata) Metadata {
	switch md := md.(type) {
	case *Meta:
		if n := md.Normalize(); n != nil {
			return n
		}
		return nil
	case RawMetadata:
		return md
	}
	return nil
}

// Normalize promotes bookmark fields the top level lacks, keeps only the
// bookmark identity fields and drops the outline text. It returns nil when
// every field ends up empty.
func (m *Meta) Normalize() *Meta {
	if m == nil {
		return nil
	}

	out := *m
	out.Toc = nil
	if b := m.Bookmark; b != nil {
		out.Title = coalesce(m.Title, b.Title)
		out.Link = coalesce(m.Link, b.URL)
		out.JournalDate = coalesce(m.JournalDate, b.JournalDate)
		out.CreatedAt = coalesce(m.CreatedAt, b.CreatedAt)
		out.UpdatedAt = coalesce(m.UpdatedAt, b.UpdatedAt)
		out.Bookmark = b.Normalize()
	}
	if len(out.Author) == 0 {
		out.Author = nil
	}
	if len(out.Tags) == 0 {
		out.Tags = nil
	}
	if len(out.Others) == 0 {
		out.Others = nil
	}

	if out.IsEmpty() {
		return nil
	}
	return &out
}

// Normalize keeps the identity of the bookmark (id, image and unknown keys)
// and returns nil when none of them is set.
func (b *Bookmark) Normalize() *Bookmark {
	if b == nil || (b.ID == nil && b.Image == nil && len(b.Others) == 0) {
		return nil
	}
	n := &Bookmark{ID: b.ID, Image: b.Image}
	if len(b.Others) > 0 {
		n.Others = b.Others
	}
	return n
}

// Normalize returns the canonical note: metadata normalized and, when the
// frontmatter carries outline text, a Toc block prepended to the body.
func (n Note) Normalize() (Note, error) {
	out := Note{
		Metadata: NormalizeMetadata(n.Metadata),
		Body:     n.Body,
	}

	meta, ok := n.Metadata.(*Meta)
	if !ok || meta == nil {
		return out, nil
	}

	toc := meta.Toc
	if meta.Bookmark != nil && meta.Bookmark.Toc != nil {
		toc = meta.Bookmark.Toc
	}
	if toc == nil || strings.TrimSpace(*toc) == "" {
		return out, nil
	}

	forest, err := outline.Parse(*toc)
	if err != nil {
		return Note{}, fmt.Errorf("%w: %w", ErrTocParse, err)
	}
	if entries := forest.Flatten(); len(entries) > 0 {
		body := make([]Block, 0, len(n.Body)+1)
		body = append(body, Toc{Entries: entries})
		out.Body = append(body, n.Body...)
	}
	return out, nil
}

func coalesce[T any](a, b *T) *T {
	if a != nil {
		return a
	}
	return b
}
