package loop

import "time"

// Clock gates simulation steps to a fixed rate on top of an irregular frame
// callback. It never catches up: however late a frame is, it yields at most
// one tick, and the remainder carries over so the phase does not drift.
type Clock struct {
	interval time.Duration
	last     time.Time
	ticks    uint64
}

// NewClock creates a clock running at rate ticks per second, starting at now.
func NewClock(rate int, now time.Time) *Clock {
	if rate < 1 {
		rate = 1
	}
	return &Clock{interval: time.Second / time.Duration(rate), last: now}
}

// Due reports whether a tick should run for a frame at now. When it does,
// the clock re-aligns to the interval grid and drops any backlog.
func (c *Clock) Due(now time.Time) bool {
	elapsed := now.Sub(c.last)
	if elapsed < c.interval {
		return false
	}
	c.last = now.Add(-(elapsed % c.interval))
	c.ticks++
	return true
}

// Resync restarts the interval at now, discarding elapsed time.
func (c *Clock) Resync(now time.Time) {
	c.last = now
}

// Interval returns the tick interval.
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// Ticks returns how many ticks the clock has granted.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}
