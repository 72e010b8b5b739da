package platform

import (
	"github.com/aretw0/mdfmt/pkg/adapters/fs"
	"github.com/aretw0/mdfmt/pkg/adapters/markdown"
	"github.com/aretw0/mdfmt/pkg/mdfmt"
)

// New builds the formatting service.
//
//	svc := mdfmt.New(mdfmt.WithEscape(false))
func New(opts ...Option) *mdfmt.Service {
	return newService(apply(opts))
}

// NewRunner builds a file runner around a new service.
func NewRunner(opts ...Option) *fs.Runner {
	o := apply(opts)
	return fs.NewRunner(newService(o), fs.Config{
		Logger:       o.logger,
		ErrorHandler: o.errorHandler,
		Debounce:     o.debounce,
	})
}

func apply(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func newService(o *options) *mdfmt.Service {
	trees := markdown.NewParser(
		markdown.WithEscape(o.escape),
		markdown.WithExtensions(o.extensions...),
	)
	return mdfmt.NewService(trees, o.logger)
}
