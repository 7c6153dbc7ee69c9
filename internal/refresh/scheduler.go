// Package refresh provides the auto-refresh timer as an explicit two-state
// machine: Idle (no pending timer) or Scheduled (exactly one pending timer).
package refresh

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Scheduler re-invokes a fire callback at a fixed interval. Configure is
// the only control: it always cancels the pending timer and arms a new one
// when the interval is positive. Each fire re-arms for the same interval
// after the callback returns.
type Scheduler struct {
	clk  clock.Clock
	fire func()

	mu       sync.Mutex
	timer    *clock.Timer
	interval time.Duration
	gen      int // bumped by Configure; stale timer fires are dropped
}

// New builds an idle scheduler. The clock is injected so tests can drive a
// mock; production callers pass clock.New().
func New(clk clock.Clock, fire func()) *Scheduler {
	return &Scheduler{clk: clk, fire: fire}
}

// Configure cancels any pending timer, then arms a new one interval from
// now. A non-positive interval leaves the scheduler idle.
func (s *Scheduler) Configure(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.interval = interval
	if interval > 0 {
		s.arm(s.gen)
	}
}

// Stop leaves the scheduler idle.
func (s *Scheduler) Stop() {
	s.Configure(0)
}

// Scheduled reports whether a timer is pending.
func (s *Scheduler) Scheduled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Interval returns the currently configured interval (0 when idle).
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// arm must be called with mu held.
func (s *Scheduler) arm(gen int) {
	s.timer = s.clk.AfterFunc(s.interval, func() {
		s.tick(gen)
	})
}

func (s *Scheduler) tick(gen int) {
	s.mu.Lock()
	if gen != s.gen {
		// Configure ran after this timer was queued.
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.mu.Unlock()

	s.fire()

	s.mu.Lock()
	if gen == s.gen && s.interval > 0 {
		s.arm(gen)
	}
	s.mu.Unlock()
}
