// Package droppool is the point-ripple backend: a fixed set of analytic
// ripples whose amplitude falls off as their spread grows.
package droppool

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyPool is returned for a pool without slots.
var ErrEmptyPool = errors.New("droppool: capacity must be positive")

// Drop is one ripple slot. Slots are never freed; AddDrop overwrites the
// weakest one.
type Drop struct {
	X, Y     float32
	StartAmp float32
	Amp      float32
	Spread   float32
}

// Tuple is the exported per-slot state (x, y, amp·AmpScale, spread).
type Tuple struct {
	X, Y   float32
	Amp    float32
	Spread float32
}

// Config controls the pool.
type Config struct {
	Capacity   int
	MeshHeight int

	SpreadRate float32
	AmpScale   float32
	Epsilon    float32
	DefaultDT  float32
}

// DefaultConfig returns a ten slot pool for a 50 row mesh.
func DefaultConfig() Config {
	return Config{
		Capacity:   10,
		MeshHeight: 50,
		SpreadRate: 30,
		AmpScale:   0.12,
		Epsilon:    0.005,
		DefaultDT:  0.03,
	}
}

// minSpread keeps a drop added before any positive tick finite.
const minSpread = 1e-3

// Pool owns the ripple slots.
type Pool struct {
	cfg   Config
	drops []Drop
	dt    float32
}

// New allocates the slots. Every slot starts silent with spread 1.
func New(cfg Config) (*Pool, error) {
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrEmptyPool, cfg.Capacity)
	}
	def := DefaultConfig()
	if cfg.SpreadRate <= 0 {
		cfg.SpreadRate = def.SpreadRate
	}
	if cfg.AmpScale <= 0 {
		cfg.AmpScale = def.AmpScale
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = def.Epsilon
	}
	if cfg.DefaultDT <= 0 {
		cfg.DefaultDT = def.DefaultDT
	}
	p := &Pool{cfg: cfg, drops: make([]Drop, cfg.Capacity)}
	p.Reset()
	return p, nil
}

// Reset silences every slot.
func (p *Pool) Reset() {
	for i := range p.drops {
		p.drops[i] = Drop{Spread: 1}
	}
	p.dt = p.cfg.DefaultDT
}

// Config returns the configuration the pool was built with.
func (p *Pool) Config() Config { return p.cfg }

// Cap returns the number of slots.
func (p *Pool) Cap() int { return len(p.drops) }

// Drops exposes the slots for inspection. Callers must not modify them.
func (p *Pool) Drops() []Drop { return p.drops }

// AddDrop overwrites the slot with the lowest current amplitude, scanning
// every slot; ties go to the lowest index. y is flipped to mesh rows. The new
// drop is aged by the last frame delta so its amplitude is immediately
// defined. It returns the slot used.
func (p *Pool) AddDrop(x, y int, strength float32) int {
	slot := 0
	minAmp := float32(math.MaxFloat32)
	for i := range p.drops {
		if p.drops[i].Amp < minAmp {
			slot = i
			minAmp = p.drops[i].Amp
		}
	}
	d := &p.drops[slot]
	d.StartAmp = strength
	d.Spread = 0
	d.X = float32(x)
	d.Y = float32(p.cfg.MeshHeight - y - 1)
	p.age(d, p.dt)
	return slot
}

// InjectDrop adapts AddDrop to the ripple sink contract. The pool's spread
// replaces the radius.
func (p *Pool) InjectDrop(x, y, _, strength float32) {
	p.AddDrop(int(x), int(y), strength)
}

// Tick grows every slot's spread by SpreadRate·dt and recomputes its
// amplitude as StartAmp/Spread.
func (p *Pool) Tick(dt float32) {
	if dt > 0 {
		p.dt = dt
	}
	if dt < 0 {
		dt = 0
	}
	for i := range p.drops {
		p.age(&p.drops[i], dt)
	}
}

func (p *Pool) age(d *Drop, dt float32) {
	d.Spread += p.cfg.SpreadRate * dt
	if d.Spread < minSpread {
		d.Spread = minSpread
	}
	d.Amp = d.StartAmp / d.Spread
}

// Export appends one tuple per slot to dst[:0] and returns it. It does not
// change the pool.
func (p *Pool) Export(dst []Tuple) []Tuple {
	dst = dst[:0]
	for _, d := range p.drops {
		dst = append(dst, Tuple{X: d.X, Y: d.Y, Amp: d.Amp * p.cfg.AmpScale, Spread: d.Spread})
	}
	return dst
}

// HasFreeSlot reports whether any slot has decayed below Epsilon.
func (p *Pool) HasFreeSlot() bool {
	for _, d := range p.drops {
		if d.Amp < p.cfg.Epsilon {
			return true
		}
	}
	return false
}

// Offset evaluates the texture displacement all ripples produce at mesh
// position (x, y), with y in mesh rows after the flip. Each ripple pushes
// along the direction to its centre inside a disc of radius Spread.
func (p *Pool) Offset(x, y float32) (float32, float32) {
	var ox, oy float32
	for _, d := range p.drops {
		dx := d.X - x
		dy := d.Y - y
		dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
		if dist >= d.Spread {
			continue
		}
		amp := d.Amp * p.cfg.AmpScale * dist / (d.Spread * d.Spread)
		amp *= float32(math.Sin(float64(d.Spread - dist)))
		ox += dx * amp
		oy += dy * amp
	}
	return ox, oy
}
