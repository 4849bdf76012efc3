package timer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

// TestStopwatchTicks verifies the tick callback fires with growing elapsed
// readings.
func TestStopwatchTicks(t *testing.T) {
	s := New()
	var ticks atomic.Int64

	s.Start(context.Background(), 5*time.Millisecond, func(elapsed time.Duration) {
		if elapsed <= 0 {
			t.Errorf("elapsed = %v, want > 0", elapsed)
		}
		ticks.Add(1)
	})

	time.Sleep(40 * time.Millisecond)
	s.Stop()

	if ticks.Load() == 0 {
		t.Error("no ticks fired")
	}
}

// TestStopwatchStopIdempotent verifies Stop is safe on a stopped stopwatch
// and halts ticking.
func TestStopwatchStopIdempotent(t *testing.T) {
	s := New()
	s.Stop() // never started

	var ticks atomic.Int64
	s.Start(context.Background(), 5*time.Millisecond, func(time.Duration) { ticks.Add(1) })
	time.Sleep(20 * time.Millisecond)
	s.Stop()
	s.Stop()

	after := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	if ticks.Load() != after {
		t.Error("ticks continued after Stop")
	}
	if s.Running() {
		t.Error("Running() = true after Stop")
	}
}

// TestStopwatchElapsedFrozenAfterStop verifies Elapsed holds its final
// reading once stopped instead of tracking wall-clock time.
func TestStopwatchElapsedFrozenAfterStop(t *testing.T) {
	s := New()
	s.Start(context.Background(), time.Millisecond, nil)
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	first := s.Elapsed()
	if first <= 0 {
		t.Fatalf("elapsed = %v, want > 0", first)
	}
	time.Sleep(30 * time.Millisecond)
	if got := s.Elapsed(); got != first {
		t.Errorf("elapsed moved after Stop: %v then %v", first, got)
	}
}

// TestStopwatchContextCancel verifies cancelling the context halts the loop
// and leaves the stopwatch stopped with a frozen reading.
func TestStopwatchContextCancel(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())

	var ticks atomic.Int64
	s.Start(ctx, 5*time.Millisecond, func(time.Duration) { ticks.Add(1) })
	time.Sleep(20 * time.Millisecond)
	cancel()
	time.Sleep(10 * time.Millisecond)

	after := ticks.Load()
	if s.Running() {
		t.Error("Running() = true after context cancel")
	}
	first := s.Elapsed()
	time.Sleep(20 * time.Millisecond)
	if ticks.Load() != after {
		t.Error("ticks continued after context cancel")
	}
	if got := s.Elapsed(); got != first {
		t.Errorf("elapsed moved after cancel: %v then %v", first, got)
	}
}
