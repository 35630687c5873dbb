package core

import "time"

const (
	// DefaultMaxDT caps the per-frame delta so a stalled host does not launch
	// leaves across the screen in a single frame.
	DefaultMaxDT float32 = 0.2
	// DefaultPreviewInterval is how often preview mode injects a synthetic drop.
	DefaultPreviewInterval = 2 * time.Second
)

// Env holds the read-only environment readings a scene consumes.
type Env struct {
	ViewW, ViewH int
	Grid         Size
	Preview      bool
}

// GLSize returns the viewport extent in normalized GL units: the short edge
// spans 2 units and the long edge keeps the aspect ratio.
func (e Env) GLSize() (float32, float32) {
	if e.ViewW <= 0 || e.ViewH <= 0 {
		return 2, 2
	}
	return 2, 2 * float32(e.ViewH) / float32(e.ViewW)
}

// Point is a position in grid cells.
type Point struct {
	X, Y float32
}

// Context is the per-scene simulation context owned by the host frame driver.
// It carries the environment, the clamped frame delta, the single pending
// pointer-drop slot and the preview-drop timer.
type Context struct {
	Env             Env
	MaxDT           float32
	PreviewInterval time.Duration

	now         time.Duration
	last        time.Duration
	dt          float32
	frame       uint64
	pending     Point
	hasPending  bool
	lastPreview time.Duration
}

// NewContext returns a context with default frame limits.
func NewContext(env Env) *Context {
	return &Context{
		Env:             env,
		MaxDT:           DefaultMaxDT,
		PreviewInterval: DefaultPreviewInterval,
	}
}

// Advance records the elapsed time of a new frame and derives its delta in
// seconds, clamped to [0, MaxDT].
func (c *Context) Advance(elapsed time.Duration) {
	c.now = elapsed
	dt := float32((elapsed - c.last).Seconds())
	c.last = elapsed
	if dt < 0 {
		dt = 0
	}
	if c.MaxDT > 0 && dt > c.MaxDT {
		dt = c.MaxDT
	}
	c.dt = dt
	c.frame++
}

// DT returns the clamped delta of the current frame in seconds.
func (c *Context) DT() float32 { return c.dt }

// Now returns the elapsed time recorded by the last Advance.
func (c *Context) Now() time.Duration { return c.now }

// Frame returns the number of frames advanced so far.
func (c *Context) Frame() uint64 { return c.frame }

// PostDrop fills the pending-drop slot. A second post in the same frame
// replaces the first.
func (c *Context) PostDrop(x, y float32) {
	c.pending = Point{X: x, Y: y}
	c.hasPending = true
}

// TakeDrop consumes the pending drop, if any.
func (c *Context) TakeDrop() (Point, bool) {
	if !c.hasPending {
		return Point{}, false
	}
	p := c.pending
	c.hasPending = false
	c.pending = Point{}
	return p, true
}

// PreviewDue reports whether preview mode should inject a synthetic drop this
// frame and restarts the interval when it does.
func (c *Context) PreviewDue() bool {
	if !c.Env.Preview {
		return false
	}
	if c.now-c.lastPreview <= c.PreviewInterval {
		return false
	}
	c.lastPreview = c.now
	return true
}

// ScreenToGrid maps a viewport pixel position to grid cells, truncating to
// whole cells.
func (c *Context) ScreenToGrid(px, py float32) Point {
	if c.Env.ViewW <= 0 || c.Env.ViewH <= 0 {
		return Point{}
	}
	gx := int(px / float32(c.Env.ViewW) * float32(c.Env.Grid.W))
	gy := int(py / float32(c.Env.ViewH) * float32(c.Env.Grid.H))
	return Point{X: float32(gx), Y: float32(gy)}
}

// Restart rewinds the frame clock and clears the pending drop.
func (c *Context) Restart() {
	c.now, c.last, c.lastPreview = 0, 0, 0
	c.dt = 0
	c.frame = 0
	c.hasPending = false
	c.pending = Point{}
}
