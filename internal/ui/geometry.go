package ui

import (
	"image/color"
	"math"

	"riverbed/internal/core"
)

// gridSample is a cell centre in grid units (cx, cy) and in pixels (sx, sy).
type gridSample struct {
	cx, cy float64
	sx, sy float64
	index  int
}

// sampleGrid spreads roughly target samples evenly over the grid, centred,
// and reports the pixel spacing between neighbours.
func sampleGrid(size core.Size, scale int, target float64) ([]gridSample, float64) {
	if size.W <= 0 || size.H <= 0 {
		return nil, 0
	}
	if scale <= 0 {
		scale = 1
	}
	const minSpacing, maxSpacing = 2, 12
	spacing := int(math.Sqrt(float64(size.W*size.H) / target))
	spacing = max(minSpacing, min(maxSpacing, spacing))

	countX := (size.W + spacing - 1) / spacing
	countY := (size.H + spacing - 1) / spacing
	startX := max(0, (size.W-1-(countX-1)*spacing)/2)
	startY := max(0, (size.H-1-(countY-1)*spacing)/2)

	out := make([]gridSample, 0, countX*countY)
	for yi := 0; yi < countY; yi++ {
		y := min(startY+yi*spacing, size.H-1)
		for xi := 0; xi < countX; xi++ {
			x := min(startX+xi*spacing, size.W-1)
			cx, cy := float64(x)+0.5, float64(y)+0.5
			out = append(out, gridSample{
				cx: cx, cy: cy,
				sx: cx * float64(scale), sy: cy * float64(scale),
				index: y*size.W + x,
			})
		}
	}
	return out, float64(spacing * scale)
}

// heightTint colours a displacement: crests light, troughs dark, with alpha
// growing with |h|/span.
func heightTint(h, span float32) color.RGBA {
	if span <= 0 {
		return color.RGBA{}
	}
	v := clamp01(math.Abs(float64(h / span)))
	if v == 0 {
		return color.RGBA{}
	}
	a := uint8(math.Round(160 * math.Sqrt(v)))
	if h > 0 {
		return color.RGBA{R: scaleComponent(210, v), G: scaleComponent(240, v), B: scaleComponent(255, v), A: a}
	}
	return color.RGBA{R: scaleComponent(20, v), G: scaleComponent(40, v), B: scaleComponent(110, v), A: a}
}

// ringSegments approximates a circle with n chords, each as x1, y1, x2, y2.
func ringSegments(cx, cy, r float64, n int) [][4]float64 {
	if r <= 0 || n < 3 {
		return nil
	}
	segs := make([][4]float64, n)
	for i := 0; i < n; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(n)
		a1 := 2 * math.Pi * float64(i+1) / float64(n)
		segs[i] = [4]float64{
			cx + r*math.Cos(a0), cy + r*math.Sin(a0),
			cx + r*math.Cos(a1), cy + r*math.Sin(a1),
		}
	}
	return segs
}

// stepValue applies one button press to a control value, honouring its
// step and bounds. It reports false when the value would not change.
func stepValue(ctrl core.ParameterControl, cur float64, dir int) (float64, bool) {
	if dir == 0 {
		return cur, false
	}
	step := ctrl.Step
	switch {
	case ctrl.Type == core.ParamTypeInt:
		step = math.Max(1, math.Round(step))
	case step <= 0:
		step = 0.05
	}
	target := cur + float64(dir)*step
	if ctrl.HasMin && target < ctrl.Min {
		target = ctrl.Min
	}
	if ctrl.HasMax && target > ctrl.Max {
		target = ctrl.Max
	}
	if ctrl.Type == core.ParamTypeInt {
		target = math.Round(target)
	}
	if math.Abs(target-cur) < 1e-9 {
		return cur, false
	}
	return target, true
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func scaleComponent(c uint8, f float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, float64(c)*(0.4+0.6*f)))))
}
