// Package mdfmt wires the Markdown adapter, the note parser and the printer
// into the operations exposed by the CLI and the library facade.
package mdfmt

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/mdfmt/pkg/adapters/markdown"
	"github.com/aretw0/mdfmt/pkg/core"
	"github.com/aretw0/mdfmt/pkg/mdast"
	"github.com/aretw0/mdfmt/pkg/parser"
	"github.com/aretw0/mdfmt/pkg/printer"
)

// TreeParser builds the syntax tree of a document.
type TreeParser interface {
	Parse(src []byte) (*mdast.Root, error)
}

// Service formats documents. It is safe for concurrent use.
type Service struct {
	trees  TreeParser
	logger *slog.Logger

	mu        sync.RWMutex
	formatted int
	failed    int
}

// NewService creates a Service reading documents through trees. A nil trees
// uses the goldmark adapter with its defaults.
func NewService(trees TreeParser, logger *slog.Logger) *Service {
	if trees == nil {
		trees = markdown.NewParser()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{trees: trees, logger: logger}
}

// Tree returns the syntax tree of src.
func (s *Service) Tree(src []byte) (*mdast.Root, error) {
	return s.trees.Parse(src)
}

// Parse returns the note model of src, before normalization.
func (s *Service) Parse(src []byte) (core.Note, error) {
	root, err := s.trees.Parse(src)
	if err != nil {
		return core.Note{}, err
	}
	return parser.Parse(root)
}

// Note returns the normalized note model of src.
func (s *Service) Note(src []byte) (core.Note, error) {
	note, err := s.Parse(src)
	if err != nil {
		return core.Note{}, err
	}
	return note.Normalize()
}

// Format returns the canonical text of src.
func (s *Service) Format(src []byte) (string, error) {
	out, err := s.format(src)
	s.record(err)
	if err != nil {
		s.logger.Debug("format failed", "error", err)
		return "", err
	}
	return out, nil
}

func (s *Service) format(src []byte) (string, error) {
	note, err := s.Note(src)
	if err != nil {
		return "", err
	}
	return printer.Print(note)
}

// Check reports whether src can be formatted.
func (s *Service) Check(src []byte) error {
	_, err := s.Format(src)
	return err
}

// Stringify prints note as it is. Normalize it first to get the canonical
// form.
func (s *Service) Stringify(note core.Note) (string, error) {
	return printer.Print(note)
}

// StringifyBlock prints a single block with top-level headings.
func (s *Service) StringifyBlock(b core.Block) string {
	return printer.PrintBlock(b, 1)
}

// Model returns the indented JSON model of src, before normalization.
func (s *Service) Model(src []byte) ([]byte, error) {
	note, err := s.Parse(src)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(note, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode note: %w", err)
	}
	return data, nil
}

func (s *Service) record(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.failed++
		return
	}
	s.formatted++
}
