// Package clock provides a virtual-time scheduler for the single-goroutine game loop.
// Nothing fires on its own: the host advances time and every due callback runs
// synchronously inside Advance, in deadline order, each to completion before the next.
package clock

import (
	"container/heap"
	"time"
)

// Scheduler owns a virtual clock and the set of pending timers.
// It is not safe for concurrent use; the host loop is the only caller.
type Scheduler struct {
	now   time.Time
	seq   uint64
	queue timerQueue
}

// New creates a scheduler whose virtual clock starts at start.
func New(start time.Time) *Scheduler {
	return &Scheduler{now: start}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// After schedules fn to run once, d after the current virtual time.
// A non-positive d fires on the next Advance.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	return s.schedule(s.now.Add(d), 0, fn)
}

// Every schedules fn to run every d until stopped. The first run is d from now.
func (s *Scheduler) Every(d time.Duration, fn func()) *Timer {
	if d <= 0 {
		panic("clock: non-positive interval for Every")
	}
	return s.schedule(s.now.Add(d), d, fn)
}

func (s *Scheduler) schedule(when time.Time, period time.Duration, fn func()) *Timer {
	s.seq++
	t := &Timer{
		sched:  s,
		seq:    s.seq,
		when:   when,
		period: period,
		fn:     fn,
		index:  -1,
	}
	heap.Push(&s.queue, t)
	return t
}

// Advance moves the clock forward by d, running every callback that becomes due.
// Callbacks may schedule or stop other timers; anything that becomes due within
// the window still fires during this call.
func (s *Scheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	target := s.now.Add(d)
	fired := 0

	for len(s.queue) > 0 {
		next := s.queue[0]
		if next.when.After(target) {
			break
		}
		heap.Pop(&s.queue)
		s.now = next.when

		if next.period > 0 {
			next.when = next.when.Add(next.period)
			heap.Push(&s.queue, next)
		} else {
			next.stopped = true
		}

		fired++
		next.fn()
	}

	s.now = target
	return fired
}

// Pending returns the number of timers still waiting to fire.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Timer is a handle to a scheduled callback.
// The zero value and a nil *Timer are both inert.
type Timer struct {
	sched   *Scheduler
	seq     uint64
	when    time.Time
	period  time.Duration
	fn      func()
	index   int
	stopped bool
}

// Stop cancels the timer. It reports whether the call prevented a future run.
// A stopped timer's callback never fires afterwards, even if it was already due.
func (t *Timer) Stop() bool {
	if t == nil || t.sched == nil || t.stopped {
		return false
	}
	t.stopped = true
	if t.index >= 0 {
		heap.Remove(&t.sched.queue, t.index)
	}
	return true
}

// Active reports whether the timer can still fire.
func (t *Timer) Active() bool {
	return t != nil && t.sched != nil && !t.stopped
}

// Deadline returns the next time the timer is due.
func (t *Timer) Deadline() time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.when
}

// timerQueue is a min-heap ordered by deadline, then by scheduling order.
type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].when.Equal(q[j].when) {
		return q[i].seq < q[j].seq
	}
	return q[i].when.Before(q[j].when)
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
