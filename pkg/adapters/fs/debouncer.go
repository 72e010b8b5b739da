package fs

import (
	"sync"
	"time"

	"github.com/aretw0/mdfmt/pkg/core"
)

type pendingEvent struct {
	timer *time.Timer
	event core.Event
}

// debouncer coalesces bursts of events on the same path. Only the last
// event of a burst is delivered, keeping CREATE if the burst started with
// one.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*pendingEvent
	wg      sync.WaitGroup
	stopped bool
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]*pendingEvent),
	}
}

func (d *debouncer) add(event core.Event, fn func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	key := event.Path
	if p, ok := d.pending[key]; ok && p.timer.Stop() {
		d.wg.Done()
		if p.event.Type == core.EventCreate {
			event.Type = core.EventCreate
		}
	}

	p := &pendingEvent{event: event}
	d.wg.Add(1)
	p.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()

		d.mu.Lock()
		if d.pending[key] == p {
			delete(d.pending, key)
		}
		d.mu.Unlock()

		fn(p.event)
	})
	d.pending[key] = p
}

// stopAndWait drops pending events and waits for callbacks already running.
// It reports false if they did not finish within timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) bool {
	d.mu.Lock()
	d.stopped = true
	for key, p := range d.pending {
		if p.timer.Stop() {
			d.wg.Done()
		}
		delete(d.pending, key)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
