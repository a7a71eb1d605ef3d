// Package debounce provides a settle-time scheduler whose clock can be
// replaced in tests.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the settle time used when none is configured.
const DefaultDelay = 300 * time.Millisecond

// Scheduler runs the most recently scheduled function once no newer call has
// arrived for the configured delay. Superseded functions are discarded and
// never run late.
type Scheduler struct {
	mu      sync.Mutex
	clock   Clock
	delay   time.Duration
	gen     uint64
	pending Timer
}

// NewScheduler returns a Scheduler on clock. A non-positive delay selects
// DefaultDelay.
func NewScheduler(clock Clock, delay time.Duration) *Scheduler {
	if clock == nil {
		clock = System
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{clock: clock, delay: delay}
}

// Schedule replaces any pending function with fn.
func (s *Scheduler) Schedule(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	mine := s.gen
	s.pending = s.clock.AfterFunc(s.delay, func() {
		s.mu.Lock()
		// A timer can fire after it was superseded when its callback was
		// already queued; the generation check drops it.
		if s.gen != mine {
			s.mu.Unlock()
			return
		}
		s.gen++
		s.pending = nil
		s.mu.Unlock()
		fn()
	})
}

// CancelPending discards the pending function, if any.
func (s *Scheduler) CancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Pending reports whether a function is waiting to run.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

func (s *Scheduler) stopLocked() {
	s.gen++
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}
