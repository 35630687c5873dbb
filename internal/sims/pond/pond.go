// Package pond is the full-grid water scene: a height field refracting the
// riverbed, pointer and preview drops, and leaves that splash into it.
package pond

import (
	"fmt"

	"riverbed/internal/core"
	"riverbed/internal/leaves"
	"riverbed/internal/render"
	"riverbed/internal/ripple"
	pcore "riverbed/pkg/core"
)

// World stores the pond scene state.
type World struct {
	cfg    Config
	field  *ripple.Field
	leaves *leaves.Pool
	rng    *pcore.RNG

	cells      []uint8
	transforms []leaves.Transform

	stats core.FrameStats
}

// New returns a pond of the given grid size using defaults.
func New(w, h int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Ripple.Width = w
	cfg.Ripple.Height = h
	cfg.fitLeaves()
	return NewWithConfig(cfg)
}

// NewWithConfig builds a pond, rejecting grids that cannot hold the drop
// radius and empty leaf pools.
func NewWithConfig(cfg Config) (*World, error) {
	field, err := ripple.New(cfg.Ripple)
	if err != nil {
		return nil, fmt.Errorf("pond: %w", err)
	}
	if cfg.DropRadius < 1 || cfg.DropRadius > ripple.MaxRadius(cfg.Ripple.Width, cfg.Ripple.Height) {
		return nil, fmt.Errorf("pond: %w: pointer radius %d", ripple.ErrRadiusTooLarge, cfg.DropRadius)
	}
	rng := pcore.NewRNG(cfg.Seed)
	pool, err := leaves.New(cfg.Leaves, field, rng)
	if err != nil {
		return nil, fmt.Errorf("pond: %w", err)
	}
	w := &World{
		cfg:        cfg,
		field:      field,
		leaves:     pool,
		rng:        rng,
		cells:      make([]uint8, cfg.Ripple.Width*cfg.Ripple.Height),
		transforms: make([]leaves.Transform, 0, cfg.Leaves.Count),
	}
	w.shade()
	return w, nil
}

// Name returns the scene identifier.
func (w *World) Name() string { return "pond" }

// Size returns the grid dimensions.
func (w *World) Size() core.Size { return w.field.Size() }

// Reset flattens the water and scatters the leaves again.
func (w *World) Reset(seed int64) {
	w.cfg.Seed = seed
	w.rng.Reseed(seed)
	w.field.Reset()
	w.leaves.Reset()
	w.stats = core.FrameStats{}
	w.shade()
}

// Step advances the scene by one frame: queued drops land, the water moves
// and re-derives its surface, then the leaves fall, drift and splash.
func (w *World) Step(ctx *core.Context) {
	radius := float32(w.cfg.DropRadius)
	if p, ok := ctx.TakeDrop(); ok {
		w.field.InjectDrop(p.X, p.Y, radius, w.cfg.DropStrength)
	}
	if ctx.PreviewDue() {
		size := w.field.Size()
		x := w.rng.Float32n(float32(size.W))
		y := w.rng.Float32n(float32(size.H))
		w.field.InjectDrop(x, y, radius, w.cfg.DropStrength)
	}

	w.field.Advance()
	w.field.DeriveSurface()

	if ctx.Env.ViewW > 0 && ctx.Env.ViewH > 0 {
		w.leaves.SetViewport(ctx.Env.GLSize())
	}
	splashes := w.leaves.Splashes()
	w.stats.Respawned = w.leaves.Update(ctx.DT())
	w.leaves.ReorderIfNeeded()
	w.stats.Splashes = w.leaves.Splashes() - splashes
	w.stats.Airborne = w.leaves.AirborneCount()
	w.stats.Energy = w.field.Energy()
	w.stats.Active = w.active()

	w.shade()
}

// active counts cells displaced by more than one height unit.
func (w *World) active() int {
	n := 0
	for _, v := range w.field.Grid().Current() {
		if v > 1 || v < -1 {
			n++
		}
	}
	return n
}

// shade renders the refracted, lit riverbed into the cell buffer.
func (w *World) shade() {
	for i, v := range w.field.Vertices() {
		lum := render.Riverbed(v.S, v.T) * render.Lambert(v.NX, v.NY, v.NZ)
		w.cells[i] = render.Shade(lum)
	}
}

// Cells returns the shaded riverbed, one palette index per grid cell.
func (w *World) Cells() []uint8 { return w.cells }

// Field exposes the height field.
func (w *World) Field() *ripple.Field { return w.field }

// Vertices exposes the derived surface mesh.
func (w *World) Vertices() []ripple.Vertex { return w.field.Vertices() }

// HeightAt returns the displacement under grid cell (x, y).
func (w *World) HeightAt(x, y int) float32 { return w.field.Height(x, y) }

// Leaves exposes the leaf pool.
func (w *World) Leaves() *leaves.Pool { return w.leaves }

// LeafTransforms returns the leaf transforms in draw order.
func (w *World) LeafTransforms() []leaves.Transform {
	w.transforms = w.leaves.Transforms(w.transforms)
	return w.transforms
}

// Stats reports the last frame.
func (w *World) Stats() core.FrameStats { return w.stats }

func init() {
	core.Register("pond", func(cfg map[string]string) (core.Sim, error) {
		return NewWithConfig(FromMap(cfg))
	})
}
