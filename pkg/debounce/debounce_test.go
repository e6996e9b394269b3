package debounce_test

import (
	"sort"
	"sync"
	"testing"
	"time"

	"cinefind/pkg/debounce"

	"github.com/stretchr/testify/assert"
)

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// fakeClock runs scheduled callbacks when Advance moves past their deadline.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) debounce.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && t.at <= target {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
	c.mu.Unlock()

	for _, t := range due {
		c.mu.Lock()
		c.now = t.at
		stopped := t.stopped
		t.stopped = true
		c.mu.Unlock()
		if !stopped {
			t.f()
		}
	}

	c.mu.Lock()
	c.now = target
	c.mu.Unlock()
}

func (c *fakeClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

type emission struct {
	value string
	at    time.Duration
}

func TestDebouncer(t *testing.T) {
	t.Run("emits the last value after the quiet period", func(t *testing.T) {
		clock := &fakeClock{}
		var got []emission
		d := debounce.New(500*time.Millisecond, func(v string) {
			got = append(got, emission{v, clock.Now()})
		}, debounce.WithClock(clock))

		d.Push("b")
		clock.Advance(100 * time.Millisecond)
		d.Push("ba")
		clock.Advance(100 * time.Millisecond)
		d.Push("bat")

		clock.Advance(499 * time.Millisecond)
		assert.Empty(t, got, "must not emit before the quiet period elapsed")

		clock.Advance(1 * time.Millisecond)
		assert.Equal(t, []emission{{"bat", 700 * time.Millisecond}}, got)
	})

	t.Run("emits once per quiet period", func(t *testing.T) {
		clock := &fakeClock{}
		var got []string
		d := debounce.New(500*time.Millisecond, func(v string) {
			got = append(got, v)
		}, debounce.WithClock(clock))

		d.Push("first")
		clock.Advance(time.Second)
		d.Push("second")
		clock.Advance(time.Second)

		assert.Equal(t, []string{"first", "second"}, got)
	})

	t.Run("flush emits immediately", func(t *testing.T) {
		clock := &fakeClock{}
		var got []string
		d := debounce.New(500*time.Millisecond, func(v string) {
			got = append(got, v)
		}, debounce.WithClock(clock))

		d.Push("now")
		d.Flush()
		clock.Advance(time.Second)

		assert.Equal(t, []string{"now"}, got)
	})

	t.Run("flush without pending value does nothing", func(t *testing.T) {
		calls := 0
		d := debounce.New(500*time.Millisecond, func(string) { calls++ }, debounce.WithClock(&fakeClock{}))

		d.Flush()

		assert.Zero(t, calls)
	})

	t.Run("stop cancels pending emission", func(t *testing.T) {
		clock := &fakeClock{}
		calls := 0
		d := debounce.New(500*time.Millisecond, func(string) { calls++ }, debounce.WithClock(clock))

		d.Push("gone")
		d.Stop()
		d.Push("ignored")
		clock.Advance(time.Second)

		assert.Zero(t, calls)
	})

	t.Run("works with the wall clock", func(t *testing.T) {
		done := make(chan int, 1)
		d := debounce.New(10*time.Millisecond, func(v int) { done <- v })

		d.Push(1)
		d.Push(2)

		select {
		case v := <-done:
			assert.Equal(t, 2, v)
		case <-time.After(time.Second):
			t.Fatal("debouncer never emitted")
		}
	})
}
