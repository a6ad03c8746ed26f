// Package motion decides whether a visual transition plays out over time or is
// applied at once. With reduced motion every transition collapses to its end state.
package motion

import (
	"time"

	"github.com/vovakirdan/popafriend/internal/clock"
)

// Policy wraps the reduce-motion preference.
type Policy struct {
	sched   *clock.Scheduler
	reduced bool
}

// New creates a policy that schedules animated transitions on sched.
func New(sched *clock.Scheduler, reduced bool) *Policy {
	return &Policy{sched: sched, reduced: reduced}
}

// Reduced reports whether transitions are applied instantly.
func (p *Policy) Reduced() bool {
	return p.reduced
}

// SetReduced changes the mode. Transitions already in flight keep their timing.
func (p *Policy) SetReduced(reduced bool) {
	p.reduced = reduced
}

// Duration returns the effective length of a transition that would take d when animated.
func (p *Policy) Duration(d time.Duration) time.Duration {
	if p.reduced || d < 0 {
		return 0
	}
	return d
}

// Apply runs one transition.
//
// Reduced (or a zero-length transition): instant runs synchronously and the
// returned timer is nil. Otherwise animated is called with the duration, done
// is scheduled to run when it elapses, and the returned timer cancels done.
// Any of the callbacks may be nil.
func (p *Policy) Apply(d time.Duration, instant func(), animated func(time.Duration), done func()) *clock.Timer {
	d = p.Duration(d)
	if d == 0 {
		if instant != nil {
			instant()
		}
		return nil
	}

	if animated != nil {
		animated(d)
	}
	if done == nil {
		done = func() {}
	}
	return p.sched.After(d, done)
}
