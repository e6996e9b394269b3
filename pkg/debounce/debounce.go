// Package debounce delays a value until its input has been quiet for a fixed
// period.
package debounce

import (
	"sync"
	"time"
)

// Timer is the handle returned by Clock.AfterFunc.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed calls.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type Option func(*options)

type options struct {
	clock Clock
}

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// Debouncer emits the most recent pushed value once no new value has arrived
// for the quiet period. Every Push cancels the pending emission.
type Debouncer[T any] struct {
	quiet time.Duration
	emit  func(T)
	clock Clock

	mu      sync.Mutex
	timer   Timer
	gen     uint64
	pending *T
	stopped bool
}

func New[T any](quiet time.Duration, emit func(T), opts ...Option) *Debouncer[T] {
	o := options{clock: realClock{}}
	for _, fn := range opts {
		fn(&o)
	}
	return &Debouncer[T]{
		quiet: quiet,
		emit:  emit,
		clock: o.clock,
	}
}

func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = &v
	d.timer = d.clock.AfterFunc(d.quiet, func() {
		d.fire(gen)
	})
}

// Flush emits the pending value right away, if there is one.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	d.fire(0)
}

// Stop drops any pending value. Later pushes are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// fire emits the pending value. A timer that lost the race with a newer Push
// carries a stale generation and does nothing; gen 0 always emits.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if d.pending == nil || (gen != 0 && gen != d.gen) {
		d.mu.Unlock()
		return
	}
	v := *d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	d.emit(v)
}
