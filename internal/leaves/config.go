package leaves

import "strconv"

// Config controls a leaf pool. Positions are in GL units where the viewport
// spans GLWidth by GLHeight centred on the origin; splashes are mapped onto a
// MeshW by MeshH grid.
type Config struct {
	Count   int
	Sprites int

	GLWidth  float32
	GLHeight float32
	MeshW    int
	MeshH    int

	LeafSize float32
	// Extent is the horizontal half-width, as a fraction of GLWidth, that
	// leaves spawn in and are recycled beyond.
	Extent float32

	// Descent is altitude lost per second while airborne.
	Descent         float32
	RestartAltitude float32
	// FadeFrom shifts the airborne alpha ramp: alpha = 1 - (a - FadeFrom)/0.1
	// once the altitude reaches fadeThreshold.
	FadeFrom float32

	// Spins are in degrees per update; the scales multiply a ±0.02 radian draw.
	InitSpinScale    float32
	RespawnSpinScale float32
	SpinDivisor      float32
	// VelocityScale multiplies the drift velocity draw, in GL units per second.
	VelocityScale float32

	SplashRadius   float32
	SplashStrength float32

	// AirborneFraction of the leaves start falling at Reset.
	AirborneFraction float32
	Reorder          bool
}

// DefaultConfig returns the falling-leaves configuration for a 50x50 mesh.
func DefaultConfig() Config {
	return Config{
		Count:            14,
		Sprites:          8,
		GLWidth:          2,
		GLHeight:         2,
		MeshW:            50,
		MeshH:            50,
		LeafSize:         0.55,
		Extent:           1,
		Descent:          0.15,
		RestartAltitude:  0.7,
		FadeFrom:         0.4,
		InitSpinScale:    0.25,
		RespawnSpinScale: 0.35,
		SpinDivisor:      2,
		VelocityScale:    0.5,
		SplashRadius:     1,
		SplashStrength:   1.5,
		AirborneFraction: 0.3,
		Reorder:          true,
	}
}

// FromMap overrides fields of base from flag-style key/value pairs. Malformed
// values are ignored.
func FromMap(base Config, cfg map[string]string) Config {
	c := base
	if cfg == nil {
		return c
	}
	if v, ok := cfg["leaves"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Count = parsed
		}
	}
	if v, ok := cfg["leaf_sprites"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Sprites = parsed
		}
	}
	setFloat(cfg, "leaf_size", &c.LeafSize)
	setFloat(cfg, "leaf_descent", &c.Descent)
	setFloat(cfg, "leaf_restart_altitude", &c.RestartAltitude)
	setFloat(cfg, "leaf_spin_divisor", &c.SpinDivisor)
	setFloat(cfg, "leaf_velocity", &c.VelocityScale)
	setFloat(cfg, "leaf_splash_strength", &c.SplashStrength)
	if v, ok := cfg["leaf_airborne"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 && parsed <= 1 {
			c.AirborneFraction = float32(parsed)
		}
	}
	if v, ok := cfg["leaf_reorder"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Reorder = parsed
		}
	}
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
