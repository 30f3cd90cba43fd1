package event

import (
	"sync"
	"time"
)

// Debouncer defers a callback and coalesces repeated triggers.
//
// Thread-safety: All methods are safe for concurrent use. The callback is
// guaranteed to not be called concurrently with itself from the debouncer.
type Debouncer struct {
	mu       sync.Mutex
	runMu    sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	pending  bool
	seq      uint64 // sequence number to detect stale callbacks
	callback func()
}

// NewDebouncer creates a debouncer with the given default delay.
func NewDebouncer(delay time.Duration, callback func()) *Debouncer {
	return &Debouncer{
		delay:    delay,
		callback: callback,
	}
}

// Schedule arms the callback if it is not already pending. A trigger while
// pending is coalesced into the call already scheduled.
func (d *Debouncer) Schedule() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending {
		return
	}
	d.armLocked()
}

// Delay re-arms the callback, pushing a pending call back by the full delay.
func (d *Debouncer) Delay() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.armLocked()
}

func (d *Debouncer) armLocked() {
	d.pending = true
	d.seq++
	currentSeq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// Only execute if this is still the current scheduled callback.
		if !d.pending || d.seq != currentSeq {
			d.mu.Unlock()
			return
		}
		d.pending = false
		d.timer = nil
		d.mu.Unlock()
		d.run()
	})
}

// Flush runs a pending callback immediately on the caller's goroutine.
// It returns false when nothing was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.pending = false
	d.mu.Unlock()

	d.run()
	return true
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	// Increment seq to invalidate any running timer callback
	d.seq++
	d.pending = false
}

// Pending returns true if a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer) run() {
	if d.callback == nil {
		return
	}
	d.runMu.Lock()
	defer d.runMu.Unlock()
	d.callback()
}
