// Package wait implements the polling resolver behind Find queries and
// the clock abstraction that lets it run against real or virtual time
// without code changes.
package wait

import (
	"sort"
	"sync"
	"time"
)

// Timer is a single-shot timer started by a Clock.
type Timer interface {
	// C returns the channel on which the expiry time is delivered.
	C() <-chan time.Time
	// Stop cancels the timer. It reports whether the timer was still
	// pending.
	Stop() bool
}

// Clock provides time for the resolver. The default implementation uses
// system time; tests install a FakeClock via SetClock to control polling
// deterministically.
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) Timer
}

// Advancer is the capability that marks a clock as virtual. Clocks that
// implement it are advanced by the resolver itself between polls instead
// of being waited on, so a deterministic test never stalls.
type Advancer interface {
	Advance(d time.Duration)
}

// RealClock uses system time.
type RealClock struct{}

// Now returns the current system time.
func (RealClock) Now() time.Time { return time.Now() }

// NewTimer starts a system timer.
func (RealClock) NewTimer(d time.Duration) Timer { return realTimer{time.NewTimer(d)} }

type realTimer struct{ t *time.Timer }

func (r realTimer) C() <-chan time.Time { return r.t.C }
func (r realTimer) Stop() bool          { return r.t.Stop() }

var (
	clockMu sync.RWMutex
	clock   Clock = RealClock{}
)

// SetClock replaces the package-level clock. Returns the previous clock
// so callers can restore it during cleanup.
func SetClock(c Clock) Clock {
	clockMu.Lock()
	defer clockMu.Unlock()
	prev := clock
	clock = c
	return prev
}

// Current returns the active clock.
func Current() Clock {
	clockMu.RLock()
	defer clockMu.RUnlock()
	return clock
}

// FakeClock provides controllable time for deterministic async tests.
// Advancing the clock fires due timers and scheduled callbacks in
// chronological order. All methods are safe for concurrent use.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set sets the clock to an exact time without firing timers.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d, firing every timer and callback
// whose deadline is reached, in deadline order.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)

	for {
		next := c.nextDueLocked(target)
		if next == nil {
			break
		}
		c.now = next.when
		c.removeLocked(next)
		// Release the lock while delivering: callbacks may schedule
		// further timers or read the clock.
		c.mu.Unlock()
		next.fire()
		c.mu.Lock()
	}

	c.now = target
	c.mu.Unlock()
}

// NewTimer returns a timer that fires when the fake clock reaches
// now + d.
func (c *FakeClock) NewTimer(d time.Duration) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, when: c.now.Add(d), ch: make(chan time.Time, 1)}
	if d <= 0 {
		t.ch <- c.now
		return t
	}
	c.timers = append(c.timers, t)
	return t
}

// AfterFunc schedules fn to run when the clock has advanced by d. The
// returned Timer's Stop cancels the callback if it has not fired.
func (c *FakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, when: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// PendingTimers returns the number of timers that have not fired. Useful
// for asserting that no timers survive a resolved wait.
func (c *FakeClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *FakeClock) nextDueLocked(limit time.Time) *fakeTimer {
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.when.After(limit) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool { return due[i].when.Before(due[j].when) })
	return due[0]
}

func (c *FakeClock) removeLocked(t *fakeTimer) {
	for i, x := range c.timers {
		if x == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

type fakeTimer struct {
	clock *FakeClock
	when  time.Time
	ch    chan time.Time
	fn    func()
}

func (t *fakeTimer) fire() {
	if t.fn != nil {
		t.fn()
		return
	}
	select {
	case t.ch <- t.when:
	default:
	}
}

func (t *fakeTimer) C() <-chan time.Time { return t.ch }

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	for i, x := range t.clock.timers {
		if x == t {
			t.clock.timers = append(t.clock.timers[:i], t.clock.timers[i+1:]...)
			return true
		}
	}
	return false
}
