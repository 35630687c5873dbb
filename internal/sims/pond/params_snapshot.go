package pond

import (
	"riverbed/internal/core"
	"riverbed/internal/ripple"
)

// Parameters reports the scene tunables.
func (w *World) Parameters() core.ParameterSnapshot {
	rc := w.field.Config()
	lc := w.leaves.Config()
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", rc.Width),
				core.IntParam("h", "Height", rc.Height),
				core.Int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Water",
			Params: []core.Parameter{
				core.IntParam("drop_radius", "Drop radius", w.cfg.DropRadius),
				core.FloatParam("drop_strength", "Drop strength", float64(w.cfg.DropStrength)),
				core.IntParam("damp_shift", "Damping shift", int(rc.DampShift)),
				core.FloatParam("refraction", "Refraction index", rc.Refraction),
				core.FloatParam("ripple_height", "Ripple height", float64(rc.RippleHeight)),
				core.StringParam("surface", "Surface", string(rc.Surface)),
			},
		},
		{
			Name: "Leaves",
			Params: []core.Parameter{
				core.IntParam("leaves", "Leaves", lc.Count),
				core.FloatParam("leaf_descent", "Descent", float64(lc.Descent)),
				core.FloatParam("leaf_spin_divisor", "Landing spin divisor", float64(lc.SpinDivisor)),
				core.FloatParam("leaf_splash_strength", "Splash strength", float64(lc.SplashStrength)),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable parameters.
func (w *World) ParameterControls() []core.ParameterControl {
	size := w.field.Size()
	maxRadius := float64(ripple.MaxRadius(size.W, size.H))
	return []core.ParameterControl{
		{Key: "damp_shift", Label: "Damping shift", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 8, HasMin: true, HasMax: true},
		{Key: "drop_radius", Label: "Drop radius", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: maxRadius, HasMin: true, HasMax: true},
		{Key: "drop_strength", Label: "Drop strength", Type: core.ParamTypeFloat, Step: 0.25, Min: 0.25, Max: 8, HasMin: true, HasMax: true},
	}
}

// SetIntParameter applies HUD integer adjustments.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "damp_shift":
		if value < 1 {
			return false
		}
		return w.field.SetDampShift(uint(value)) == nil
	case "drop_radius":
		if err := w.field.SetDropRadius(value); err != nil {
			return false
		}
		w.cfg.DropRadius = value
		return true
	}
	return false
}

// SetFloatParameter applies HUD float adjustments.
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "drop_strength":
		if value <= 0 {
			return false
		}
		w.cfg.DropStrength = float32(value)
		return true
	}
	return false
}
