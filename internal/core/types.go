package core

import "sort"

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the contract a per-frame water scene must implement. Step is
// called exactly once per rendered frame with the host-owned frame context.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step(ctx *Context)
	Cells() []uint8
}

// RippleSink accepts drop injections. Both ripple backends implement it so the
// leaf pool never depends on a concrete one.
type RippleSink interface {
	InjectDrop(x, y, radius, strength float32)
}

// FrameStats summarises one simulated frame for tracing.
type FrameStats struct {
	Energy    float64
	Active    int
	Airborne  int
	Respawned int
	Splashes  int
}

// StatsProvider is implemented by scenes that report per-frame statistics.
type StatsProvider interface {
	Stats() FrameStats
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// SimNames returns the registered names in sorted order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
