package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidDocument = errors.New("invalid document: expected a root node")
	ErrMetadataDecode  = errors.New("metadata decode failure")
	ErrTocParse        = errors.New("toc parse failure")
)

// UnsupportedSyntaxError reports a syntax node that has no canonical
// rendering. It aborts the whole document.
type UnsupportedSyntaxError struct {
	Kind string
}

func (e *UnsupportedSyntaxError) Error() string {
	return fmt.Sprintf("not supported syntax: %s", e.Kind)
}

// DocumentError attaches the file identity to a per-document failure.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
