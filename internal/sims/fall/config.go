package fall

import (
	"strconv"

	"riverbed/internal/droppool"
	"riverbed/internal/leaves"
)

// Config controls the falling-leaves scene.
type Config struct {
	Width  int
	Height int
	Seed   int64

	Drops  droppool.Config
	Leaves leaves.Config

	PointerStrength float32
	StartStrength   float32
	IdleMin         float32
	IdleRange       float32
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	c := Config{
		Width:           50,
		Height:          82,
		Seed:            1337,
		Drops:           droppool.DefaultConfig(),
		Leaves:          leaves.DefaultConfig(),
		PointerStrength: 2,
		StartStrength:   2,
		IdleMin:         0.1,
		IdleRange:       0.3,
	}
	c.fit()
	return c
}

// fit sizes the pool and the leaf mapping to the grid.
func (c *Config) fit() {
	c.Drops.MeshHeight = c.Height
	c.Leaves.MeshW = c.Width
	c.Leaves.MeshH = c.Height
	c.Leaves.GLHeight = c.Leaves.GLWidth * float32(c.Height) / float32(c.Width)
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["drops"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Drops.Capacity = parsed
		}
	}
	setFloat(cfg, "spread_rate", &c.Drops.SpreadRate)
	setFloat(cfg, "amp_scale", &c.Drops.AmpScale)
	setFloat(cfg, "drop_epsilon", &c.Drops.Epsilon)
	setFloat(cfg, "pointer_strength", &c.PointerStrength)
	setFloat(cfg, "start_strength", &c.StartStrength)
	setFloat(cfg, "idle_min", &c.IdleMin)
	setFloat(cfg, "idle_range", &c.IdleRange)
	c.Leaves = leaves.FromMap(c.Leaves, cfg)
	c.fit()
	return c
}

func setFloat(cfg map[string]string, key string, dst *float32) {
	v, ok := cfg[key]
	if !ok {
		return
	}
	if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
		*dst = float32(parsed)
	}
}
