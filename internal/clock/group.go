package clock

// Group is a set of timers released together, e.g. everything owned by one round.
type Group struct {
	timers []*Timer
}

// Add tracks t in the group and returns it. Nil timers are ignored.
func (g *Group) Add(t *Timer) *Timer {
	if t == nil {
		return nil
	}
	// Drop handles that already fired or were stopped elsewhere.
	live := g.timers[:0]
	for _, old := range g.timers {
		if old.Active() {
			live = append(live, old)
		}
	}
	g.timers = append(live, t)
	return t
}

// StopAll cancels every tracked timer and empties the group.
// It returns how many timers were still active.
func (g *Group) StopAll() int {
	stopped := 0
	for _, t := range g.timers {
		if t.Stop() {
			stopped++
		}
	}
	g.timers = g.timers[:0]
	return stopped
}

// Len returns the number of tracked timers that can still fire.
func (g *Group) Len() int {
	n := 0
	for _, t := range g.timers {
		if t.Active() {
			n++
		}
	}
	return n
}
