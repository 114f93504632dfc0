package renderer

import "time"

// A Clock supplies the per-frame time step and the absolute simulation time.
// The returned simulation time never decreases.
type Clock interface {
	Tick() (dt, now float32)
}

type fixedClock struct {
	step float32
	now  float64
}

// Create a clock that advances by a fixed step on every tick.
func FixedClock(step float32) Clock {
	if step < 0 {
		step = 0
	}
	return &fixedClock{step: step}
}

func (c *fixedClock) Tick() (float32, float32) {
	// Accumulate in float64 so long runs don't stall on float32 rounding.
	c.now += float64(c.step)
	return c.step, float32(c.now)
}

type wallClock struct {
	start time.Time
	last  time.Duration
	now   func() time.Time
}

// Create a clock that follows wall time since its creation.
func WallClock() Clock {
	return newWallClock(time.Now)
}

func newWallClock(now func() time.Time) *wallClock {
	return &wallClock{start: now(), now: now}
}

func (c *wallClock) Tick() (float32, float32) {
	elapsed := c.now().Sub(c.start)
	if elapsed < c.last {
		elapsed = c.last
	}
	dt := elapsed - c.last
	c.last = elapsed
	return float32(dt.Seconds()), float32(elapsed.Seconds())
}
