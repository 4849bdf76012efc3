// Package timer provides the rest and workout stopwatches. They are pure
// elapsed-time counters driven by a periodic tick: they never touch program
// state and can be cancelled at any time without affecting a pending session.
package timer

import (
	"context"
	"sync"
	"time"
)

// Stopwatch counts elapsed wall-clock time and reports it on a periodic tick.
type Stopwatch struct {
	mu      sync.Mutex
	started time.Time
	frozen  time.Duration
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New returns a stopped stopwatch.
func New() *Stopwatch {
	return &Stopwatch{}
}

// Start begins counting and invokes onTick with the elapsed time every
// interval until Stop is called or ctx is cancelled. Starting a running
// stopwatch restarts it from zero.
func (s *Stopwatch) Start(ctx context.Context, interval time.Duration, onTick func(elapsed time.Duration)) {
	s.Stop()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	s.mu.Lock()
	s.started = time.Now()
	s.frozen = 0
	s.running = true
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.halt()
				return
			case <-ticker.C:
				if onTick != nil {
					onTick(s.Elapsed())
				}
			}
		}
	}()
}

// halt freezes the reading. No-op if the stopwatch already stopped.
func (s *Stopwatch) halt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.frozen = time.Since(s.started)
		s.running = false
	}
}

// Elapsed returns the time since Start while counting, or the final reading
// once stopped or cancelled.
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return time.Since(s.started)
	}
	return s.frozen
}

// Running reports whether the stopwatch is counting.
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Stop halts the tick loop and freezes the elapsed reading. It is safe to
// call on a stopped stopwatch and waits for the loop goroutine to exit.
func (s *Stopwatch) Stop() {
	s.halt()

	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}
