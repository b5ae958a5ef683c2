package realtime

import "time"

// DefaultFrameInterval is roughly one display frame at 60 Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// FrameClock turns wall-clock ticks into per-frame deltas. It holds no
// animation state of its own; callers feed the delta to whatever they animate.
type FrameClock struct {
	Interval time.Duration
	last     time.Time
}

// NewFrameClock returns a clock that schedules frames every interval.
// Non-positive intervals fall back to DefaultFrameInterval.
func NewFrameClock(interval time.Duration) *FrameClock {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameClock{Interval: interval}
}

// Advance records a frame at now and returns the seconds elapsed since the
// previous frame. The first frame after construction or Reset yields 0, as
// does a clock that went backwards.
func (c *FrameClock) Advance(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	delta := now.Sub(c.last)
	c.last = now
	if delta < 0 {
		return 0
	}
	return delta.Seconds()
}

// NextWake returns when the next frame is due.
func (c *FrameClock) NextWake(now time.Time) time.Time {
	if c.last.IsZero() {
		return now
	}
	next := c.last.Add(c.Interval)
	if next.Before(now) {
		return now
	}
	return next
}

// Running reports whether a frame has been recorded since the last Reset.
func (c *FrameClock) Running() bool {
	return !c.last.IsZero()
}

// Reset forgets the previous frame so an idle period is not reported as one
// huge delta when frames resume.
func (c *FrameClock) Reset() {
	c.last = time.Time{}
}
