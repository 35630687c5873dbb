// Package fall is the point-ripple scene: leaves fall onto the water and
// each splash claims a slot in a small analytic ripple pool.
package fall

import (
	"errors"
	"fmt"

	"riverbed/internal/core"
	"riverbed/internal/droppool"
	"riverbed/internal/leaves"
	"riverbed/internal/render"
	pcore "riverbed/pkg/core"
)

// ErrInvalidGrid is returned for grids too small to start a drop in.
var ErrInvalidGrid = errors.New("fall: grid must be at least 2x2")

// World stores the fall scene state.
type World struct {
	cfg    Config
	pool   *droppool.Pool
	leaves *leaves.Pool
	rng    *pcore.RNG

	cells      []uint8
	tuples     []droppool.Tuple
	transforms []leaves.Transform

	stats core.FrameStats
}

// New returns a fall scene of the given grid size using defaults.
func New(w, h int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.fit()
	return NewWithConfig(cfg)
}

// NewWithConfig builds the scene and makes its start drop.
func NewWithConfig(cfg Config) (*World, error) {
	if cfg.Width < 2 || cfg.Height < 2 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidGrid, cfg.Width, cfg.Height)
	}
	pool, err := droppool.New(cfg.Drops)
	if err != nil {
		return nil, fmt.Errorf("fall: %w", err)
	}
	rng := pcore.NewRNG(cfg.Seed)
	lp, err := leaves.New(cfg.Leaves, pool, rng)
	if err != nil {
		return nil, fmt.Errorf("fall: %w", err)
	}
	w := &World{
		cfg:        cfg,
		pool:       pool,
		leaves:     lp,
		rng:        rng,
		cells:      make([]uint8, cfg.Width*cfg.Height),
		tuples:     make([]droppool.Tuple, 0, pool.Cap()),
		transforms: make([]leaves.Transform, 0, cfg.Leaves.Count),
	}
	w.start()
	w.shade()
	return w, nil
}

// Name returns the scene identifier.
func (w *World) Name() string { return "fall" }

// Size returns the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.Width, H: w.cfg.Height} }

// Reset silences the ripples, scatters the leaves and makes a start drop.
func (w *World) Reset(seed int64) {
	w.cfg.Seed = seed
	w.rng.Reseed(seed)
	w.pool.Reset()
	w.leaves.Reset()
	w.stats = core.FrameStats{}
	w.start()
	w.shade()
}

// start drops once somewhere in the central half of the grid.
func (w *World) start() {
	x := w.cfg.Width/4 + w.rng.IntN(w.cfg.Width/2)
	y := w.cfg.Height/4 + w.rng.IntN(w.cfg.Height/2)
	w.pool.AddDrop(x, y, w.cfg.StartStrength)
}

// Step advances the scene by one frame. A pointer drop lands first; while any
// ripple slot has died out a random leaf splashes; the ripples are exported
// and aged; then the leaves move and fresh ones are sent to the back.
func (w *World) Step(ctx *core.Context) {
	if ctx.Env.ViewW > 0 && ctx.Env.ViewH > 0 {
		w.leaves.SetViewport(ctx.Env.GLSize())
	}
	splashes := w.leaves.Splashes()
	if p, ok := ctx.TakeDrop(); ok {
		w.pool.AddDrop(int(p.X), int(p.Y), w.cfg.PointerStrength)
	}
	if w.pool.HasFreeSlot() {
		i := w.rng.IntN(w.leaves.Len())
		w.leaves.Splash(i, w.rng.Float32n(w.cfg.IdleRange)+w.cfg.IdleMin)
	}

	w.tuples = w.pool.Export(w.tuples)
	w.shade()
	w.pool.Tick(ctx.DT())

	w.stats.Respawned = w.leaves.Update(ctx.DT())
	w.leaves.ReorderIfNeeded()
	w.stats.Splashes = w.leaves.Splashes() - splashes
	w.stats.Airborne = w.leaves.AirborneCount()
	w.stats.Energy, w.stats.Active = w.ripples()
}

// ripples returns the summed squared exported amplitude and how many slots
// are still above the reuse threshold.
func (w *World) ripples() (float64, int) {
	var energy float64
	active := 0
	eps := w.pool.Config().Epsilon
	for _, d := range w.pool.Drops() {
		energy += float64(d.Amp) * float64(d.Amp)
		if d.Amp >= eps {
			active++
		}
	}
	return energy, active
}

// shade samples the riverbed displaced by every ripple into the cell buffer.
// Ripple rows count upwards, so grid rows are flipped before sampling.
func (w *World) shade() {
	fw := 1 / float32(w.cfg.Width)
	fh := 1 / float32(w.cfg.Height)
	for y := 0; y < w.cfg.Height; y++ {
		my := float32(w.cfg.Height - 1 - y)
		for x := 0; x < w.cfg.Width; x++ {
			ox, oy := w.pool.Offset(float32(x), my)
			s := (float32(x) + ox) * fw
			t := (float32(y) - oy) * fh
			w.cells[y*w.cfg.Width+x] = render.Shade(render.Riverbed(s, t))
		}
	}
}

// Cells returns the shaded riverbed, one palette index per grid cell.
func (w *World) Cells() []uint8 { return w.cells }

// Pool exposes the ripple pool.
func (w *World) Pool() *droppool.Pool { return w.pool }

// Leaves exposes the leaf pool.
func (w *World) Leaves() *leaves.Pool { return w.leaves }

// DropTuples returns the ripple state exported for the current frame.
func (w *World) DropTuples() []droppool.Tuple { return w.tuples }

// LeafTransforms returns the leaf transforms in draw order.
func (w *World) LeafTransforms() []leaves.Transform {
	w.transforms = w.leaves.Transforms(w.transforms)
	return w.transforms
}

// Stats reports the last frame.
func (w *World) Stats() core.FrameStats { return w.stats }

func init() {
	core.Register("fall", func(cfg map[string]string) (core.Sim, error) {
		return NewWithConfig(FromMap(cfg))
	})
}
