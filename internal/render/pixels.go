package render

import (
	"image/color"
	"math"
)

var waterPalette = buildWaterPalette()

// WaterPalette maps a shade index to a riverbed colour seen through water.
func WaterPalette() []color.RGBA { return waterPalette }

func buildWaterPalette() []color.RGBA {
	deep := color.RGBA{R: 18, G: 38, B: 44, A: 255}
	sand := color.RGBA{R: 176, G: 164, B: 120, A: 255}
	glint := color.RGBA{R: 236, G: 244, B: 240, A: 255}
	palette := make([]color.RGBA, 256)
	for i := range palette {
		t := float64(i) / 255
		if t < 0.8 {
			palette[i] = lerpRGBA(deep, sand, t/0.8)
			continue
		}
		palette[i] = lerpRGBA(sand, glint, (t-0.8)/0.2)
	}
	return palette
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
