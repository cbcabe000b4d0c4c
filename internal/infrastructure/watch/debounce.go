// Package watch reloads files when they change on disk.
package watch

import (
	"sync"
	"time"
)

// Debouncer collapses a burst of triggers into one callback, fired once the
// window passes without another trigger.
type Debouncer struct {
	window   time.Duration
	callback func()

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
}

// NewDebouncer creates a debouncer with the given window.
func NewDebouncer(window time.Duration, callback func()) *Debouncer {
	return &Debouncer{window: window, callback: callback}
}

// Trigger restarts the window.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = true
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.mu.Unlock()
	d.callback()
}

// Pending reports whether a callback is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop drops any scheduled callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = false
}
