// Package watcher provides file system monitoring for automatic renaming.
package watcher

import (
	"sync"
	"time"
)

// Debouncer delays a rename pass until event activity settles.
// Rapid triggers reset the timer, ensuring that a burst of events
// runs the callback only once.
type Debouncer struct {
	delay    time.Duration
	callback func()

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer that invokes callback once the delay
// elapses without a new trigger.
func NewDebouncer(delay time.Duration, callback func()) *Debouncer {
	return &Debouncer{
		delay:    delay,
		callback: callback,
	}
}

// Trigger schedules the callback after the debounce delay.
// If a run is already pending, its timer is reset, effectively
// coalescing rapid events.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A timer that lost the race to a newer trigger must not
		// clear that trigger's pending state.
		if d.timer == t {
			d.timer = nil
		}
		callback := d.callback
		d.mu.Unlock()

		// Invoke the callback outside the lock
		if callback != nil {
			callback()
		}
	})
	d.timer = t
}

// Cancel drops any pending run.
// If no run is pending, this is a no-op.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// IsPending returns true if a run is currently scheduled.
func (d *Debouncer) IsPending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
