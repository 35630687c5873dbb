package render

import "math"

// Light is the direction the riverbed is lit from, pointing towards the
// viewer like the mesh normals.
var Light = [3]float32{-0.35, -0.45, -0.82}

// Riverbed returns the brightness in [0, 1] of the procedural riverbed at
// texture coordinates (s, t): sandy ridges broken up by pebbles.
func Riverbed(s, t float32) float32 {
	x := float64(s) * 2 * math.Pi
	y := float64(t) * 2 * math.Pi
	ridges := 0.5 + 0.5*math.Sin(6*y+1.7*math.Sin(3*x))
	pebbles := math.Sin(23*x+0.4) * math.Sin(19*y+1.3)
	if pebbles < 0.55 {
		pebbles = 0
	}
	v := 0.35 + 0.35*ridges + 0.6*pebbles
	if v > 1 {
		v = 1
	}
	return float32(v)
}

// Lambert returns the diffuse term for a unit normal, with a floor so the
// troughs never go black.
func Lambert(nx, ny, nz float32) float32 {
	d := nx*Light[0] + ny*Light[1] + nz*Light[2]
	if d < 0 {
		d = 0
	}
	return 0.55 + 0.45*d
}

// Shade quantizes a brightness in [0, 1] to a palette index.
func Shade(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// GLToScreen maps a point in GL units, with the viewport glW by glH centred
// on the origin and y up, to pixel coordinates in a w by h image.
func GLToScreen(x, y, glW, glH float32, w, h int) (float64, float64) {
	sx := (x + glW/2) / glW * float32(w)
	sy := (glH/2 - y) / glH * float32(h)
	return float64(sx), float64(sy)
}
