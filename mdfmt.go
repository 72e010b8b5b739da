package mdfmt

import (
	"log/slog"
	"time"

	"github.com/yuin/goldmark"

	"github.com/aretw0/mdfmt/internal/platform"
	"github.com/aretw0/mdfmt/pkg/adapters/fs"
	"github.com/aretw0/mdfmt/pkg/core"
	service "github.com/aretw0/mdfmt/pkg/mdfmt"
)

// --- Types ---

// Service formats documents held in memory.
type Service = service.Service

// Runner applies a Service to files on disk.
type Runner = fs.Runner

// Note is the structured model of a document.
type Note = core.Note

// Block is a top-level element of a Note body.
type Block = core.Block

// --- Configuration ---

// Option defines a functional option for configuring mdfmt.
type Option = platform.Option

// WithLogger sets the logger for the service and the runner.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithEscape controls the pre-parse escape of images nested in links.
func WithEscape(enabled bool) Option {
	return platform.WithEscape(enabled)
}

// WithExtensions registers additional goldmark extensions with the parser.
func WithExtensions(exts ...goldmark.Extender) Option {
	return platform.WithExtensions(exts...)
}

// WithWatcherErrorHandler registers a callback for runtime watcher errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithDebounce sets the quiet period of the directory watcher.
func WithDebounce(d time.Duration) Option {
	return platform.WithDebounce(d)
}

// --- Factory ---

// New creates a formatting Service.
func New(opts ...Option) *Service {
	return platform.New(opts...)
}

// NewRunner creates a Runner for batch and watch modes.
func NewRunner(opts ...Option) *Runner {
	return platform.NewRunner(opts...)
}

// --- Operations ---

// Format returns the canonical text of src with the default settings.
func Format(src []byte) (string, error) {
	return New().Format(src)
}

// Parse returns the note model of src, before normalization.
func Parse(src []byte) (Note, error) {
	return New().Parse(src)
}

// Stringify prints a note as it is.
func Stringify(note Note) (string, error) {
	return New().Stringify(note)
}

// StringifyBlock prints a single block with top-level headings.
func StringifyBlock(b Block) string {
	return New().StringifyBlock(b)
}
