// Package fs runs the formatter over files on disk: batch modes, the
// metadata index and directory watching.
package fs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aretw0/mdfmt/pkg/core"
	"github.com/aretw0/mdfmt/pkg/index"
	"github.com/aretw0/mdfmt/pkg/mdast"
	"github.com/aretw0/mdfmt/pkg/mdfmt"
)

// Mode selects what a batch run does with each document.
type Mode int

const (
	// ModeStdout prints the canonical text.
	ModeStdout Mode = iota
	// ModeWrite rewrites files whose canonical text differs.
	ModeWrite
	// ModeCheck reports files that cannot be formatted.
	ModeCheck
	// ModeJSON prints the JSON note model.
	ModeJSON
	// ModeNote prints the parsed note outline.
	ModeNote
	// ModeTree prints the Markdown syntax tree.
	ModeTree
)

func (m Mode) String() string {
	switch m {
	case ModeStdout:
		return "stdout"
	case ModeWrite:
		return "write"
	case ModeCheck:
		return "check"
	case ModeJSON:
		return "json"
	case ModeNote:
		return "note"
	case ModeTree:
		return "md"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Config holds the Runner settings.
type Config struct {
	Logger       *slog.Logger
	ErrorHandler func(error)
	// Debounce is the quiet period before a watched file is reported.
	Debounce time.Duration
}

// DefaultDebounce is used when Config.Debounce is zero.
const DefaultDebounce = 50 * time.Millisecond

// Report summarizes a batch run.
type Report struct {
	Processed int
	Changed   int
	// Failed lists the paths that could not be formatted, in check mode.
	Failed []string
}

// Runner applies a formatting service to files.
type Runner struct {
	svc    *mdfmt.Service
	config Config

	mu            sync.RWMutex
	processed     int
	changed       int
	failed        int
	watcherActive bool
	lastRun       *time.Time
}

// NewRunner creates a Runner.
func NewRunner(svc *mdfmt.Service, config Config) *Runner {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	return &Runner{svc: svc, config: config}
}

// Run processes paths in order and writes mode output to out. Every mode
// but check stops at the first failing document and returns a
// *core.DocumentError.
func (r *Runner) Run(ctx context.Context, paths []string, mode Mode, out io.Writer) (Report, error) {
	defer r.recordRun()

	var report Report
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		changed, err := r.runFile(path, mode, out)
		report.Processed++
		if changed {
			report.Changed++
		}
		r.record(changed, err)

		if err == nil {
			continue
		}
		if mode != ModeCheck {
			return report, err
		}
		r.config.Logger.Debug("check failed", "path", path, "error", err)
		report.Failed = append(report.Failed, path)
		if _, werr := fmt.Fprintln(out, path); werr != nil {
			return report, werr
		}
	}
	return report, nil
}

func (r *Runner) runFile(path string, mode Mode, out io.Writer) (bool, error) {
	if mode == ModeWrite {
		return r.FormatFile(path)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return false, &core.DocumentError{Path: path, Err: err}
	}

	var text string
	switch mode {
	case ModeCheck:
		err = r.svc.Check(src)
	case ModeJSON:
		var data []byte
		data, err = r.svc.Model(src)
		text = string(data) + "\n"
	case ModeNote:
		var note core.Note
		note, err = r.svc.Parse(src)
		text = core.Pretty(note) + "\n"
	case ModeTree:
		var root *mdast.Root
		root, err = r.svc.Tree(src)
		if err == nil {
			text = mdast.Pretty(root) + "\n"
		}
	default:
		text, err = r.svc.Format(src)
	}
	if err != nil {
		return false, &core.DocumentError{Path: path, Err: err}
	}

	r.config.Logger.Debug("processed", "path", path, "mode", mode)
	if text == "" {
		return false, nil
	}
	if _, err := io.WriteString(out, text); err != nil {
		return false, err
	}
	return false, nil
}

// FormatFile rewrites path with its canonical text. Files already in
// canonical form are left untouched and report false.
func (r *Runner) FormatFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, &core.DocumentError{Path: path, Err: err}
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return false, &core.DocumentError{Path: path, Err: err}
	}

	text, err := r.svc.Format(src)
	if err != nil {
		return false, &core.DocumentError{Path: path, Err: err}
	}
	if text == string(src) {
		r.config.Logger.Debug("unchanged", "path", path)
		return false, nil
	}

	if err := writeFileAtomic(path, []byte(text), info.Mode().Perm()); err != nil {
		return false, &core.DocumentError{Path: path, Err: err}
	}
	r.config.Logger.Debug("formatted", "path", path)
	return true, nil
}

// WriteIndex writes the metadata index of paths to file.
func (r *Runner) WriteIndex(ctx context.Context, paths []string, file string) error {
	defer r.recordRun()

	var idx index.Index
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return &core.DocumentError{Path: path, Err: err}
		}
		note, err := r.svc.Note(src)
		if err != nil {
			return &core.DocumentError{Path: path, Err: err}
		}
		idx.Add(path, note)
		r.record(false, nil)
	}

	data, err := idx.Marshal()
	if err != nil {
		return err
	}
	if err := writeFileAtomic(file, data, 0o644); err != nil {
		return &core.DocumentError{Path: file, Err: err}
	}
	r.config.Logger.Debug("index written", "path", file, "items", idx.Len())
	return nil
}

func (r *Runner) record(changed bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processed++
	if changed {
		r.changed++
	}
	if err != nil {
		r.failed++
	}
}

func (r *Runner) recordRun() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastRun = &now
}

func (r *Runner) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}
