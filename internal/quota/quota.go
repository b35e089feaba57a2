// Package quota provides two implementations of heuristic.Quota — a
// wall-clock Deadline and a hand-flipped Manual — the engine's concrete
// notions of "the run's external budget is exhausted," cooperatively polled
// during seeding and once per generation (spec.md §5's cancellation model).
package quota

import (
	"sync/atomic"
	"time"
)

// Deadline reports IsReached once the wall clock passes a fixed instant.
// It carries no goroutine of its own — IsReached is called from whatever
// goroutine is polling it, matching the cooperative, non-preemptive
// cancellation model spec.md §5 describes.
type Deadline struct {
	deadline time.Time
}

// NewDeadline returns a Deadline that is reached once d has elapsed from
// now.
func NewDeadline(d time.Duration) *Deadline {
	return &Deadline{deadline: time.Now().Add(d)}
}

// IsReached implements heuristic.Quota.
func (q *Deadline) IsReached() bool {
	return time.Now().After(q.deadline)
}

// Manual is a heuristic.Quota an operator can flip by hand — used by
// scenario S5's "quota flips mid-run" test and by hosts that want to wire
// their own cancellation signal (e.g. an OS signal handler) instead of a
// fixed deadline.
type Manual struct {
	reached atomic.Bool
}

// Reach flips the quota to reached. Safe to call from any goroutine.
func (q *Manual) Reach() { q.reached.Store(true) }

// IsReached implements heuristic.Quota.
func (q *Manual) IsReached() bool { return q.reached.Load() }
