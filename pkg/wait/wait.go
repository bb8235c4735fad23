package wait

import (
	"time"

	"github.com/go-drift/probe/pkg/config"
	"github.com/go-drift/probe/pkg/errors"
)

// minInterval is the floor for polling cadence; tighter loops burn CPU
// without observing anything new.
const minInterval = 10 * time.Millisecond

type settings struct {
	timeout   time.Duration
	interval  time.Duration
	onTimeout func()
	clock     Clock
}

// Option configures a single For call.
type Option func(*settings)

// WithTimeout overrides the total wait bound. Zero or negative values
// keep the configured default.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithInterval overrides the polling cadence. Positive values under 10ms
// are clamped to 10ms.
func WithInterval(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			if d < minInterval {
				d = minInterval
			}
			s.interval = d
		}
	}
}

// WithOnTimeout registers a callback invoked once if the wait times out,
// before the TimeoutError is returned.
func WithOnTimeout(fn func()) Option {
	return func(s *settings) { s.onTimeout = fn }
}

// WithClock overrides the package-level clock for a single call.
func WithClock(c Clock) Option {
	return func(s *settings) { s.clock = c }
}

// For repeatedly invokes check at the configured interval until it
// returns nil or the timeout elapses. On success the result is final
// immediately; no further polling occurs. On timeout the onTimeout
// callback (if any) runs once and the returned TimeoutError wraps the
// last error check produced.
//
// check runs at least once, so a zero timeout still observes the current
// state. The timeout is a bound on total wait, not per attempt.
//
// When the active clock is virtual (implements Advancer), For advances
// it by one interval per failed attempt instead of waiting on a timer,
// so tests driven by a deterministic clock never stall on wall time.
// Detection can be disabled via PROBE_DISABLE_VIRTUAL_CLOCK_DETECTION=1,
// in which case a non-system clock is waited on as-is and a one-time
// diagnostic is emitted, since polling safety then depends on someone
// else driving the clock.
func For(check func() error, opts ...Option) error {
	cfg := config.Snapshot()
	s := settings{
		timeout:  cfg.AsyncTimeout,
		interval: cfg.AsyncInterval,
	}
	for _, o := range opts {
		o(&s)
	}
	if s.clock == nil {
		s.clock = Current()
	}
	if s.interval < minInterval {
		s.interval = minInterval
	}

	advancer, virtual := s.clock.(Advancer)
	detectionOff := config.ClockDetectionDisabled()
	_, real := s.clock.(RealClock)
	if !real {
		if detectionOff {
			errors.WarnOncef("virtual clock detection disabled; polling will wait on clock %T which may stall without external advancement", s.clock)
		} else if !virtual {
			errors.WarnOncef("clock %T is neither the system clock nor advanceable; cannot determine a safe polling strategy", s.clock)
		}
	}

	deadline := s.clock.Now().Add(s.timeout)
	var last error
	for {
		last = check()
		if last == nil {
			return nil
		}
		if !s.clock.Now().Before(deadline) {
			if s.onTimeout != nil {
				s.onTimeout()
			}
			return &errors.TimeoutError{Timeout: s.timeout, Err: last}
		}
		if virtual && !detectionOff {
			advancer.Advance(s.interval)
			continue
		}
		t := s.clock.NewTimer(s.interval)
		<-t.C()
	}
}
