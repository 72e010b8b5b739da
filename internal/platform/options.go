package platform

import (
	"log/slog"
	"time"

	"github.com/yuin/goldmark"
)

// options holds the internal configuration of the formatter.
type options struct {
	logger       *slog.Logger
	escape       bool
	extensions   []goldmark.Extender
	errorHandler func(error)
	debounce     time.Duration
}

// Option defines a functional option for configuring mdfmt.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		escape: true,
	}
}

// WithLogger sets the logger used by the service and the runner.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEscape controls the pre-parse escape of images nested in links.
// Enabled by default.
func WithEscape(enabled bool) Option {
	return func(o *options) {
		o.escape = enabled
	}
}

// WithExtensions registers additional goldmark extensions with the parser.
// Documents containing nodes without a canonical form fail with
// core.UnsupportedSyntaxError.
func WithExtensions(exts ...goldmark.Extender) Option {
	return func(o *options) {
		o.extensions = append(o.extensions, exts...)
	}
}

// WithWatcherErrorHandler registers a callback for errors raised while
// watching a directory (e.g. permission denied on a new subdirectory),
// which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithDebounce sets the quiet period before a watched file is reported.
// Zero means default (50ms).
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}
