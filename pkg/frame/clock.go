package frame

import "time"

// Clock measures the time between frames.
type Clock struct {
	last  time.Time
	delta float64
}

// NewClock starts a clock at start. The first Tick reports the time elapsed
// since start.
func NewClock(start time.Time) *Clock {
	return &Clock{last: start}
}

// Tick records now as the current frame and returns the seconds since the
// previous one. The delta is neither clamped nor smoothed.
func (c *Clock) Tick(now time.Time) float64 {
	c.delta = now.Sub(c.last).Seconds()
	c.last = now
	return c.delta
}

// Delta returns the seconds measured by the last Tick.
func (c *Clock) Delta() float64 { return c.delta }

// Last returns the timestamp of the last Tick.
func (c *Clock) Last() time.Time { return c.last }
