package app

import "riverbed/internal/config"

// DefaultHUDWidth is the side panel width in pixels.
const DefaultHUDWidth = 220

// Options configures the viewer.
type Options struct {
	Scale    int
	Seed     int64
	Preview  bool
	HUDWidth int
}

// OptionsFrom derives viewer options from the run configuration.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		Scale:    cfg.Window.Scale,
		Seed:     cfg.Seed,
		Preview:  cfg.Window.Preview,
		HUDWidth: DefaultHUDWidth,
	}
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.HUDWidth < 0 {
		o.HUDWidth = 0
	}
	return o
}

// WindowSize is the initial window size for a grid of w by h cells.
func (o Options) WindowSize(w, h int) (int, int) {
	o = o.withDefaults()
	return w*o.Scale + o.HUDWidth, h * o.Scale
}
