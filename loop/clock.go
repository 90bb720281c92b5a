package loop

import (
	"math"
	"time"
)

// DefaultTickRate is the number of simulation ticks per second.
const DefaultTickRate = 60

// TickDuration converts a tick rate in Hz to the length of one tick.
func TickDuration(rate int) time.Duration {
	return time.Second / time.Duration(rate)
}

// Clock converts variable frame times into whole ticks, carrying the
// fractional remainder into the next call.
type Clock struct {
	TickDuration time.Duration
	leftover     float64
}

// NewClock creates a clock for ticks of length d.
func NewClock(d time.Duration) *Clock {
	return &Clock{TickDuration: d}
}

// Advance returns how many ticks elapsed covers. A remainder between half a
// tick and a whole tick is rounded up to one tick and the debt is carried as
// a negative leftover, so a frame rate slightly above the tick rate does not
// stutter between zero and two ticks per frame.
func (c *Clock) Advance(elapsed time.Duration) int {
	f := float64(elapsed)/float64(c.TickDuration) + c.leftover

	var ticks int
	switch {
	case f > 0.5 && f < 1:
		ticks = 1
	case f < 0:
		ticks = 0
	default:
		ticks = int(math.Floor(f))
	}

	c.leftover = f - float64(ticks)
	return ticks
}

// Leftover is the fraction of a tick carried into the next Advance.
func (c *Clock) Leftover() float64 {
	return c.leftover
}

// Reset drops any carried fraction.
func (c *Clock) Reset() {
	c.leftover = 0
}
