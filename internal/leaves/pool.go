// Package leaves simulates a fixed set of leaves that fall onto the water,
// splash once and drift until they leave the view.
package leaves

import (
	"errors"
	"fmt"
	"math"

	"riverbed/internal/core"
	pcore "riverbed/pkg/core"
)

var (
	// ErrEmptyPool is returned for a pool without leaves.
	ErrEmptyPool = errors.New("leaves: count must be positive")
	// ErrOrderMismatch is returned when a draw order is not a permutation of
	// the leaf storage.
	ErrOrderMismatch = errors.New("leaves: draw order does not match storage")
	// ErrNoSink is returned when no ripple backend is supplied.
	ErrNoSink = errors.New("leaves: ripple sink is required")
)

const (
	spinRange     = 0.02
	driftRange    = 0.02
	fallSpeed     = 0.08
	fadeThreshold = 0.4
	fadeSpan      = 0.1
	shadowAlpha   = 0.15
)

// Leaf is one particle. Altitude > 0 means airborne; Rippled < 0 marks a
// leaf whose landing splash is still owed.
type Leaf struct {
	X, Y     float32
	Scale    float32
	Angle    float32
	Spin     float32
	Altitude float32
	Rippled  float32
	DeltaX   float32
	DeltaY   float32
	U1, U2   float32
	Fresh    bool
}

// Airborne reports whether the leaf is still falling.
func (l *Leaf) Airborne() bool { return l.Altitude > 0 }

// Pool owns leaf storage and the draw order over it. Nothing is allocated
// after New.
type Pool struct {
	cfg     Config
	store   []Leaf
	order   []int
	scratch []int
	sink    core.RippleSink
	rng     *pcore.RNG

	respawned bool
	splashes  int
}

// New allocates count leaves and seeds them from rng.
func New(cfg Config, sink core.RippleSink, rng *pcore.RNG) (*Pool, error) {
	if cfg.Count <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrEmptyPool, cfg.Count)
	}
	if sink == nil {
		return nil, ErrNoSink
	}
	if cfg.Sprites <= 0 {
		cfg.Sprites = 1
	}
	if cfg.SpinDivisor <= 0 {
		cfg.SpinDivisor = 1
	}
	if rng == nil {
		rng = pcore.NewRNG(1)
	}
	p := &Pool{
		cfg:     cfg,
		store:   make([]Leaf, cfg.Count),
		order:   make([]int, cfg.Count),
		scratch: make([]int, cfg.Count),
		sink:    sink,
		rng:     rng,
	}
	p.Reset()
	return p, nil
}

// Config returns the configuration the pool was built with.
func (p *Pool) Config() Config { return p.cfg }

// Len returns the number of leaves.
func (p *Pool) Len() int { return len(p.store) }

// Leaves exposes leaf storage in slot order.
func (p *Pool) Leaves() []Leaf { return p.store }

// Order returns the draw order as indices into Leaves. The slice is owned by
// the pool and is rewritten in place when the order changes.
func (p *Pool) Order() []int { return p.order }

// Reset scatters every leaf across the view. The first AirborneFraction of
// the slots, rounded, start falling from somewhere between a quarter of the
// restart altitude and all of it; the rest float with their splash spent.
func (p *Pool) Reset() {
	half := p.cfg.GLWidth * p.cfg.Extent
	airborne := int(p.cfg.AirborneFraction*float32(len(p.store)) + 0.5)
	for i := range p.store {
		l := &p.store[i]
		p.scatter(l, p.cfg.InitSpinScale)
		l.X = p.rng.Range(-half, half)
		l.Angle = p.rng.Range(0, 360)
		l.Altitude = -1
		l.Rippled = 1
		if i < airborne {
			l.Altitude = p.rng.Range(p.cfg.RestartAltitude/4, p.cfg.RestartAltitude)
			l.Rippled = -1
		}
		l.Fresh = false
		p.order[i] = i
	}
	p.respawned = false
	p.splashes = 0
}

// scatter draws the fields shared by initial placement and respawn.
func (p *Pool) scatter(l *Leaf, spinScale float32) {
	sprite := p.rng.IntN(p.cfg.Sprites)
	halfH := p.cfg.GLHeight * 0.5
	l.Y = p.rng.Range(-halfH, halfH)
	l.Scale = p.rng.Range(0.4, 0.5)
	l.Spin = degrees(p.rng.Range(-spinRange, spinRange)) * spinScale
	l.U1 = float32(sprite) / float32(p.cfg.Sprites)
	l.U2 = float32(sprite+1) / float32(p.cfg.Sprites)
	l.DeltaX = p.rng.Range(-driftRange, driftRange) * p.cfg.VelocityScale
	l.DeltaY = -fallSpeed * p.rng.Range(0.9, 1.1) * p.cfg.VelocityScale
}

// Update advances every leaf once, in draw order, and returns how many were
// recycled. A landed leaf splashes exactly once through the sink. Recycling
// is decided on the position held before this frame's move.
func (p *Pool) Update(dt float32) int {
	respawned := 0
	for _, idx := range p.order {
		if p.step(&p.store[idx], dt) {
			respawned++
		}
	}
	if respawned > 0 {
		p.respawned = true
	}
	return respawned
}

func (p *Pool) step(l *Leaf, dt float32) bool {
	x, y, s := l.X, l.Y, l.Scale

	if l.Altitude <= 0 {
		if l.Rippled < 0 {
			p.splash(l, p.cfg.SplashStrength)
			l.Spin /= p.cfg.SpinDivisor
			l.Rippled = 1
		}
		l.X = x + l.DeltaX*dt
		l.Y = y + l.DeltaY*dt
		l.Angle += l.Spin
	} else {
		l.Altitude -= p.cfg.Descent * dt
		l.Angle += l.Spin * 2
	}

	reach := p.cfg.LeafSize * s
	bound := p.cfg.GLWidth * p.cfg.Extent
	if x-reach > bound || x+reach < -bound || y+reach < -p.cfg.GLHeight/2 {
		p.respawn(l)
		return true
	}
	return false
}

func (p *Pool) respawn(l *Leaf) {
	half := p.cfg.GLWidth * p.cfg.Extent
	p.scatter(l, p.cfg.RespawnSpinScale)
	l.X = p.rng.Range(-half, half)
	l.Altitude = p.cfg.RestartAltitude
	l.Rippled = -1
	l.Fresh = true
}

// GridPos maps a leaf's GL position onto mesh cells, with rows counted from
// the top.
func (p *Pool) GridPos(l *Leaf) (float32, float32) {
	nx := (l.X + p.cfg.GLWidth*0.5) / p.cfg.GLWidth
	ny := (l.Y + p.cfg.GLHeight*0.5) / p.cfg.GLHeight
	return nx * float32(p.cfg.MeshW), float32(p.cfg.MeshH) - ny*float32(p.cfg.MeshH)
}

func (p *Pool) splash(l *Leaf, strength float32) {
	gx, gy := p.GridPos(l)
	p.sink.InjectDrop(gx, gy, p.cfg.SplashRadius, strength)
	p.splashes++
}

// Splashes returns the number of drops the pool has injected since Reset.
func (p *Pool) Splashes() int { return p.splashes }

// AirborneCount returns how many leaves are still falling.
func (p *Pool) AirborneCount() int {
	n := 0
	for i := range p.store {
		if p.store[i].Airborne() {
			n++
		}
	}
	return n
}

// Splash drops a ripple under the leaf at draw position i regardless of its
// state.
func (p *Pool) Splash(i int, strength float32) {
	if i < 0 || i >= len(p.order) {
		return
	}
	p.splash(&p.store[p.order[i]], strength)
}

// ReorderIfNeeded moves freshly recycled leaves to the end of the draw order
// when any were recycled since the last call, keeping relative order within
// both groups, and clears their fresh marks. It reports whether the order was
// rebuilt.
func (p *Pool) ReorderIfNeeded() bool {
	if !p.respawned {
		return false
	}
	p.respawned = false
	if !p.cfg.Reorder {
		for i := range p.store {
			p.store[i].Fresh = false
		}
		return false
	}

	n := 0
	for _, idx := range p.order {
		if !p.store[idx].Fresh {
			p.scratch[n] = idx
			n++
		}
	}
	for _, idx := range p.order {
		if p.store[idx].Fresh {
			p.scratch[n] = idx
			p.store[idx].Fresh = false
			n++
		}
	}
	copy(p.order, p.scratch)
	return true
}

// SetOrder replaces the draw order. It must be a permutation of the storage
// indices.
func (p *Pool) SetOrder(order []int) error {
	if len(order) != len(p.store) {
		return fmt.Errorf("%w: %d entries for %d leaves", ErrOrderMismatch, len(order), len(p.store))
	}
	for i := range p.scratch {
		p.scratch[i] = 0
	}
	for _, idx := range order {
		if idx < 0 || idx >= len(p.store) || p.scratch[idx] != 0 {
			return fmt.Errorf("%w: index %d", ErrOrderMismatch, idx)
		}
		p.scratch[idx] = 1
	}
	copy(p.order, order)
	return nil
}

// SetViewport updates the GL extent after a resize. Non-positive sizes are
// ignored. Spawn and recycle bounds follow the new extent from the next
// Update.
func (p *Pool) SetViewport(glWidth, glHeight float32) {
	if glWidth > 0 {
		p.cfg.GLWidth = glWidth
	}
	if glHeight > 0 {
		p.cfg.GLHeight = glHeight
	}
}

func degrees(rad float32) float32 { return rad * 180 / math.Pi }
