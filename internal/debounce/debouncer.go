package debounce

import (
	"sync"
	"time"
)

// Debouncer delays delivery of fed values until no new value has arrived for
// the configured duration
type Debouncer struct {
	duration time.Duration
	onSettle func(string)

	mu      sync.Mutex
	timer   *time.Timer
	latest  string
	pending bool
	gen     uint64
	stopped bool
}

// New creates a debouncer that calls onSettle with each committed value.
// onSettle is invoked from the timer goroutine or from the Flush caller, never
// while the debouncer's lock is held.
func New(d time.Duration, onSettle func(string)) *Debouncer {
	if onSettle == nil {
		onSettle = func(string) {}
	}
	return &Debouncer{
		duration: d,
		onSettle: onSettle,
	}
}

// Duration returns the quiet period before a fed value settles
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}

// Feed records value as the latest input and restarts the quiet period
func (d *Debouncer) Feed(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.latest = value
	d.pending = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
	}

	gen := d.gen
	d.timer = time.AfterFunc(d.duration, func() {
		d.fire(gen)
	})
}

// Flush synchronously commits the latest fed value and cancels the pending
// timer. The value is committed even if it was already settled before.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopTimerLocked()
	d.pending = false
	value := d.latest
	d.mu.Unlock()

	d.onSettle(value)
}

// Cancel discards any pending value without committing it
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopTimerLocked()
	d.pending = false
}

// Pending reports whether a fed value is waiting for its quiet period to end
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop cancels pending work and ignores all later calls
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopTimerLocked()
	d.pending = false
	d.stopped = true
}

func (d *Debouncer) stopTimerLocked() {
	// Bumping the generation invalidates a timer that already fired but has
	// not yet acquired the lock.
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending || d.stopped {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	value := d.latest
	d.mu.Unlock()

	d.onSettle(value)
}
