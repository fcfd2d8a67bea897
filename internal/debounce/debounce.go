// Package debounce stabilizes rapidly changing values.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delivers a value only after it has stopped changing for the full
// delay. Each Set cancels any update still pending; there is no queueing.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	settled T
}

// New returns a Debouncer that calls fn with each settled value. fn runs on
// the timer's goroutine.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// NewChan returns a Debouncer whose settled values are delivered on the
// returned channel. A slow reader only ever sees the newest settled value.
func NewChan[T any](delay time.Duration) (*Debouncer[T], <-chan T) {
	ch := make(chan T, 1)
	d := New(delay, func(v T) {
		for {
			select {
			case ch <- v:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	})
	return d, ch
}

// Set records a raw value and restarts the delay.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if seq != d.seq {
			// Superseded after the timer already fired.
			d.mu.Unlock()
			return
		}
		d.settled = v
		d.timer = nil
		d.mu.Unlock()
		if d.fn != nil {
			d.fn(v)
		}
	})
}

// Value returns the most recent settled value.
func (d *Debouncer[T]) Value() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settled
}

// Pending reports whether an update is scheduled but has not fired.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels any pending update. The Debouncer stays usable.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}
