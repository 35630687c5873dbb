package pond

import (
	"strconv"

	"riverbed/internal/leaves"
	"riverbed/internal/ripple"
)

// Config controls the pond scene.
type Config struct {
	Seed int64

	Ripple ripple.Config
	Leaves leaves.Config

	// DropRadius is used for pointer and preview drops.
	DropRadius   int
	DropStrength float32
}

// DefaultConfig returns the standard configuration: a 50x82 field with a
// handful of drifting leaves.
func DefaultConfig() Config {
	r := ripple.DefaultConfig()
	r.Width = 50
	r.Height = 82

	l := leaves.DefaultConfig()
	l.Count = 10
	l.Sprites = 4
	l.Extent = 0.5
	l.Descent = 0.3
	l.RestartAltitude = 0.6
	l.FadeFrom = 0.5
	l.RespawnSpinScale = 0.25
	l.VelocityScale = 1
	l.SplashRadius = 1
	l.SplashStrength = 1
	l.Reorder = false

	c := Config{
		Seed:         1337,
		Ripple:       r,
		Leaves:       l,
		DropRadius:   r.DropRadius,
		DropStrength: 1,
	}
	c.fitLeaves()
	return c
}

// fitLeaves points the leaf splash mapping at the field's grid and keeps the
// GL height in the grid's aspect.
func (c *Config) fitLeaves() {
	c.Leaves.MeshW = c.Ripple.Width
	c.Leaves.MeshH = c.Ripple.Height
	c.Leaves.GLHeight = c.Leaves.GLWidth * float32(c.Ripple.Height) / float32(c.Ripple.Width)
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Ripple.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Ripple.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["drop_radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.DropRadius = parsed
			c.Ripple.DropRadius = parsed
		}
	}
	if v, ok := cfg["drop_strength"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			c.DropStrength = float32(parsed)
		}
	}
	if v, ok := cfg["damp_shift"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Ripple.DampShift = uint(parsed)
		}
	}
	if v, ok := cfg["refraction"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 1 {
			c.Ripple.Refraction = parsed
		}
	}
	if v, ok := cfg["ripple_height"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			c.Ripple.RippleHeight = float32(parsed)
		}
	}
	if v, ok := cfg["surface"]; ok {
		switch ripple.SurfaceMode(v) {
		case ripple.SurfaceRefract, ripple.SurfaceRadial:
			c.Ripple.Surface = ripple.SurfaceMode(v)
		}
	}
	c.Leaves = leaves.FromMap(c.Leaves, cfg)
	c.fitLeaves()
	return c
}
