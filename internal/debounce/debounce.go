// Package debounce coalesces bursts of calls into one delayed invocation.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delays an action until no call has been made for the configured
// delay. Only the argument of the last call is delivered.
//
// The action runs on a timer goroutine. Flush runs it on the caller.
type Debouncer[T any] struct {
	delay  time.Duration
	action func(T)

	run sync.Mutex // held while the action runs

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending bool
	arg     T
}

// New creates a debouncer. A non-positive delay fires as soon as the timer
// goroutine runs, never inside Call.
func New[T any](delay time.Duration, action func(T)) *Debouncer[T] {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer[T]{delay: delay, action: action}
}

// Func returns a wrapper that debounces action by delay.
func Func[T any](action func(T), delay time.Duration) func(T) {
	return New(delay, action).Call
}

// Call schedules the action with arg, superseding any pending call.
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.arg = arg
	d.pending = true
	d.gen++
	gen := d.gen

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(gen)
	})
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.run.Lock()
	defer d.run.Unlock()

	arg, ok := d.take(gen)
	if ok {
		d.action(arg)
	}
}

// take claims the pending argument if gen is still the latest call.
func (d *Debouncer[T]) take(gen uint64) (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var zero T
	if gen != d.gen || !d.pending {
		return zero, false
	}
	arg := d.arg
	d.arg = zero
	d.pending = false
	d.timer = nil
	return arg, true
}

// Flush runs a pending action immediately on the calling goroutine, after
// any action already running on the timer goroutine has returned.
// Returns false if nothing was pending.
func (d *Debouncer[T]) Flush() bool {
	d.run.Lock()
	defer d.run.Unlock()

	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	arg, ok := d.arg, d.pending
	var zero T
	d.arg = zero
	d.pending = false
	d.mu.Unlock()

	if !ok {
		return false
	}
	d.action(arg)
	return true
}

// Stop drops a pending action without running it.
// Returns false if nothing was pending.
func (d *Debouncer[T]) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	was := d.pending
	var zero T
	d.arg = zero
	d.pending = false
	return was
}
