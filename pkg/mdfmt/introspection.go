package mdfmt

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Formatted  int    `json:"formatted"`
	Failed     int    `json:"failed"`
	TreeParser string `json:"tree_parser"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	parserType := "unknown"
	if comp, ok := s.trees.(introspection.Component); ok {
		parserType = comp.ComponentType()
	}

	return ServiceState{
		Formatted:  s.formatted,
		Failed:     s.failed,
		TreeParser: parserType,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
