package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mdfmt/pkg/core"
)

func waitForEvent(t *testing.T, events <-chan core.Event, path string) core.Event {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case e, ok := <-events:
			require.True(t, ok, "events channel closed")
			if e.Path == path {
				return e
			}
		case <-deadline:
			t.Fatalf("timeout waiting for event on %s", path)
			return core.Event{}
		}
	}
}

func TestWatchReportsDocuments(t *testing.T) {
	dir := t.TempDir()
	r := newTestRunner(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := r.Watch(ctx, dir, "")
	require.NoError(t, err)
	waitForWatcher(t, r, true)

	target := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(target, []byte(messy), 0o644))

	e := waitForEvent(t, events, target)
	assert.Equal(t, core.EventCreate, e.Type)

	changed, err := r.FormatFile(e.Path)
	require.NoError(t, err)
	assert.True(t, changed)

	// the rewrite is reported too, and formatting it again is a no-op
	e = waitForEvent(t, events, target)
	changed, err = r.FormatFile(e.Path)
	require.NoError(t, err)
	assert.False(t, changed)

	cancel()
	assert.Eventually(t, func() bool {
		_, ok := <-events
		return !ok
	}, 3*time.Second, 10*time.Millisecond)
	waitForWatcher(t, r, false)
}

func TestWatchNewDirectory(t *testing.T) {
	dir := t.TempDir()
	r := newTestRunner(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := r.Watch(ctx, dir, "**/*.md")
	require.NoError(t, err)
	waitForWatcher(t, r, true)

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// give the worker a moment to add the new directory
	time.Sleep(100 * time.Millisecond)

	target := filepath.Join(sub, "deep.md")
	require.NoError(t, os.WriteFile(target, []byte("x\n"), 0o644))

	e := waitForEvent(t, events, target)
	assert.Equal(t, target, e.Path)
}

func TestWatchRejectsBadPattern(t *testing.T) {
	_, err := newTestRunner(t).Watch(context.Background(), t.TempDir(), "[")
	assert.Error(t, err)
}

func TestShouldIgnore(t *testing.T) {
	w := newWatchWorker(newTestRunner(t), "/vault", "**/*.md", nil)

	assert.False(t, w.shouldIgnore("/vault/a.md"))
	assert.False(t, w.shouldIgnore("/vault/sub/b.md"))
	assert.True(t, w.shouldIgnore("/vault/a.txt"))
	assert.True(t, w.shouldIgnore("/vault/.obsidian/c.md"))
	assert.True(t, w.shouldIgnore("/vault/"+TempFilePrefix+"123"))
}

func waitForWatcher(t *testing.T, r *Runner, expected bool) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		state, ok := r.State().(RunnerState)
		if ok && state.WatcherActive == expected {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for watcher state = %v", expected)
		case <-time.After(10 * time.Millisecond):
		}
	}
}
