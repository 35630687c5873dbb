package core

import "time"

// Clock reports the time elapsed since a scene started running.
type Clock interface {
	Elapsed() time.Duration
}

// WallClock measures real elapsed time. It is what interactive hosts use.
type WallClock struct {
	start time.Time
	now   func() time.Time
}

// NewWallClock starts a clock at the current instant.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now(), now: time.Now}
}

// Elapsed returns the wall time since the clock was created or restarted.
func (c *WallClock) Elapsed() time.Duration { return c.now().Sub(c.start) }

// Restart moves the clock origin to now.
func (c *WallClock) Restart() { c.start = c.now() }

// FixedStep is a virtual clock that advances by exactly one tick per call to
// Tick. Headless runs use it so traces are reproducible.
type FixedStep struct {
	step    time.Duration
	elapsed time.Duration
}

// NewFixedStep constructs a FixedStep clock targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	return fs
}

// SetTPS changes the tick rate.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the duration of one tick.
func (f *FixedStep) Step() time.Duration { return f.step }

// Tick advances the clock by one step and returns the new elapsed time.
func (f *FixedStep) Tick() time.Duration {
	f.elapsed += f.step
	return f.elapsed
}

// Elapsed returns the virtual time accumulated so far.
func (f *FixedStep) Elapsed() time.Duration { return f.elapsed }
