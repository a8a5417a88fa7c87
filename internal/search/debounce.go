package search

import (
	"context"
	"sync"
	"time"
)

// Debouncer coalesces rapid query submissions: a run fires only after the
// quiet period elapses with no newer input, and submitting again supersedes
// any in-flight run by cancelling its context. The most recent input always
// wins; a stale run must observe its context and discard its result.
type Debouncer struct {
	delay time.Duration
	fn    func(ctx context.Context, query string)

	mu      sync.Mutex
	base    context.Context
	timer   *time.Timer
	cancel  context.CancelFunc
	stopped bool
}

// NewDebouncer creates a debouncer that invokes fn after delay of quiet time.
// The base context bounds the lifetime of every run; cancelling it (or
// calling Stop) prevents further runs.
func NewDebouncer(base context.Context, delay time.Duration, fn func(ctx context.Context, query string)) *Debouncer {
	return &Debouncer{delay: delay, fn: fn, base: base}
}

// Submit schedules a run for query, resetting the quiet-period timer. Calls
// arriving before the timer fires replace the pending query.
func (d *Debouncer) Submit(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(query) })
}

func (d *Debouncer) fire(query string) {
	d.mu.Lock()
	if d.stopped || d.base.Err() != nil {
		d.mu.Unlock()
		return
	}
	if d.cancel != nil {
		d.cancel()
	}
	ctx, cancel := context.WithCancel(d.base)
	d.cancel = cancel
	d.mu.Unlock()

	d.fn(ctx, query)
}

// Stop cancels any pending timer and in-flight run. The debouncer accepts no
// further submissions afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	if d.cancel != nil {
		d.cancel()
	}
}
