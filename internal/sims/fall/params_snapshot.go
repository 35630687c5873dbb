package fall

import "riverbed/internal/core"

// Parameters reports the scene tunables.
func (w *World) Parameters() core.ParameterSnapshot {
	dc := w.pool.Config()
	lc := w.leaves.Config()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", w.cfg.Width),
				core.IntParam("h", "Height", w.cfg.Height),
				core.Int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Ripples",
			Params: []core.Parameter{
				core.IntParam("drops", "Drop slots", dc.Capacity),
				core.FloatParam("spread_rate", "Spread rate", float64(dc.SpreadRate)),
				core.FloatParam("amp_scale", "Amplitude scale", float64(dc.AmpScale)),
				core.FloatParam("pointer_strength", "Pointer strength", float64(w.cfg.PointerStrength)),
			},
		},
		{
			Name: "Leaves",
			Params: []core.Parameter{
				core.IntParam("leaves", "Leaves", lc.Count),
				core.FloatParam("leaf_descent", "Descent", float64(lc.Descent)),
				core.FloatParam("leaf_splash_strength", "Splash strength", float64(lc.SplashStrength)),
				core.BoolParam("leaf_reorder", "Fresh leaves drawn last", lc.Reorder),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable parameters.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "pointer_strength", Label: "Pointer strength", Type: core.ParamTypeFloat, Step: 0.25, Min: 0.25, Max: 10, HasMin: true, HasMax: true},
		{Key: "idle_range", Label: "Idle splash range", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 2, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter applies HUD float adjustments.
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "pointer_strength":
		if value <= 0 {
			return false
		}
		w.cfg.PointerStrength = float32(value)
		return true
	case "idle_range":
		if value < 0 {
			return false
		}
		w.cfg.IdleRange = float32(value)
		return true
	}
	return false
}
