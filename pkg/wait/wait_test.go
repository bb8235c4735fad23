package wait

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/go-drift/probe/pkg/config"
	"github.com/go-drift/probe/pkg/errors"
)

func TestFor_ImmediateSuccess(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	clk := NewFakeClock()
	calls := 0
	err := For(func() error {
		calls++
		return nil
	}, WithClock(clk))

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single attempt, got %d", calls)
	}
	if clk.PendingTimers() != 0 {
		t.Error("no timers should survive success")
	}
}

func TestFor_SucceedsAfterDelay(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	clk := NewFakeClock()
	errNotYet := stderrors.New("not yet")

	ready := false
	clk.AfterFunc(200*time.Millisecond, func() { ready = true })

	start := clk.Now()
	err := For(func() error {
		if !ready {
			return errNotYet
		}
		return nil
	}, WithClock(clk), WithTimeout(time.Second), WithInterval(50*time.Millisecond))

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	// The clock is auto-advanced one interval per failed attempt, so
	// success lands exactly when the element appeared.
	if elapsed := clk.Now().Sub(start); elapsed != 200*time.Millisecond {
		t.Errorf("elapsed = %v, want 200ms", elapsed)
	}
}

func TestFor_TimeoutInvokesCallbackOnce(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	clk := NewFakeClock()
	underlying := stderrors.New("still missing")
	timeouts := 0

	err := For(func() error {
		return underlying
	}, WithClock(clk), WithTimeout(300*time.Millisecond), WithInterval(50*time.Millisecond), WithOnTimeout(func() { timeouts++ }))

	if timeouts != 1 {
		t.Errorf("onTimeout invoked %d times, want 1", timeouts)
	}
	var to *errors.TimeoutError
	if !stderrors.As(err, &to) {
		t.Fatalf("expected TimeoutError, got %v", err)
	}
	if !stderrors.Is(err, underlying) {
		t.Error("TimeoutError should wrap the last underlying error")
	}
	if to.Timeout != 300*time.Millisecond {
		t.Errorf("TimeoutError.Timeout = %v", to.Timeout)
	}
}

func TestFor_TimeoutIsTotalBound(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	clk := NewFakeClock()
	start := clk.Now()
	attempts := 0

	_ = For(func() error {
		attempts++
		return stderrors.New("never")
	}, WithClock(clk), WithTimeout(200*time.Millisecond), WithInterval(50*time.Millisecond))

	// 1 attempt at t=0 plus one per 50ms step through 200ms.
	if attempts != 5 {
		t.Errorf("attempts = %d, want 5", attempts)
	}
	if elapsed := clk.Now().Sub(start); elapsed != 200*time.Millisecond {
		t.Errorf("elapsed = %v, want exactly the timeout", elapsed)
	}
}

func TestFor_DefaultsFromConfig(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	config.Configure(func(s *config.Settings) {
		s.AsyncTimeout = 100 * time.Millisecond
		s.AsyncInterval = 25 * time.Millisecond
	})

	clk := NewFakeClock()
	attempts := 0
	err := For(func() error {
		attempts++
		return stderrors.New("nope")
	}, WithClock(clk))

	if !errors.IsTimeout(err) {
		t.Fatalf("expected timeout, got %v", err)
	}
	// 1 attempt at t=0 plus one per 25ms step through 100ms.
	if attempts != 5 {
		t.Errorf("attempts = %d, want 5", attempts)
	}
}

func TestFor_IntervalClamped(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	clk := NewFakeClock()
	start := clk.Now()
	attempts := 0
	_ = For(func() error {
		attempts++
		return stderrors.New("never")
	}, WithClock(clk), WithTimeout(20*time.Millisecond), WithInterval(time.Millisecond))

	// 1ms requested, clamped to the 10ms floor.
	if elapsed := clk.Now().Sub(start); elapsed != 20*time.Millisecond {
		t.Errorf("elapsed = %v", elapsed)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3 (t=0, 10ms, 20ms)", attempts)
	}
}

func TestFor_RealClock(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	start := time.Now()
	deadline := start.Add(60 * time.Millisecond)
	err := For(func() error {
		if time.Now().Before(deadline) {
			return stderrors.New("not yet")
		}
		return nil
	}, WithTimeout(2*time.Second), WithInterval(10*time.Millisecond))

	if err != nil {
		t.Fatalf("expected eventual success on the real clock, got %v", err)
	}
}

func TestFor_ZeroTimeoutStillChecksOnce(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	config.Configure(func(s *config.Settings) { s.AsyncTimeout = 0 })

	clk := NewFakeClock()
	calls := 0
	err := For(func() error {
		calls++
		return stderrors.New("no")
	}, WithClock(clk))

	if calls != 1 {
		t.Errorf("check should run exactly once, ran %d times", calls)
	}
	if !errors.IsTimeout(err) {
		t.Errorf("expected timeout, got %v", err)
	}
}
