package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// RunnerState exposes internal state for observability.
type RunnerState struct {
	Processed     int        `json:"processed"`
	Changed       int        `json:"changed"`
	Failed        int        `json:"failed"`
	Debounce      string     `json:"debounce"`
	WatcherActive bool       `json:"watcher_active"`
	LastRun       *time.Time `json:"last_run,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Runner) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return RunnerState{
		Processed:     r.processed,
		Changed:       r.changed,
		Failed:        r.failed,
		Debounce:      r.config.Debounce.String(),
		WatcherActive: r.watcherActive,
		LastRun:       r.lastRun,
	}
}

// ComponentType implements introspection.Component.
func (r *Runner) ComponentType() string {
	return "runner"
}

var _ introspection.Introspectable = (*Runner)(nil)
var _ introspection.Component = (*Runner)(nil)
