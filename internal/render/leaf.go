package render

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// depthPerspective enlarges geometry lifted towards the viewer (negative z).
const depthPerspective = 0.5

// ProjectQuad transforms model-space corners by m and maps them to pixel
// coordinates in a w by h image showing a glW by glH viewport.
func ProjectQuad(m mgl32.Mat4, quad [4]mgl32.Vec3, glW, glH float32, w, h int) [4][2]float32 {
	var out [4][2]float32
	for i, c := range quad {
		p := m.Mul4x1(c.Vec4(1))
		k := 1 + depthPerspective*p.Z()
		if k < 0.1 {
			k = 0.1
		}
		sx, sy := GLToScreen(p.X()/k, p.Y()/k, glW, glH, w, h)
		out[i] = [2]float32{float32(sx), float32(sy)}
	}
	return out
}

var autumn = []color.RGBA{
	{R: 196, G: 82, B: 32, A: 255},
	{R: 222, G: 160, B: 40, A: 255},
	{R: 150, G: 44, B: 30, A: 255},
	{R: 170, G: 120, B: 50, A: 255},
	{R: 210, G: 110, B: 28, A: 255},
	{R: 120, G: 96, B: 40, A: 255},
	{R: 235, G: 190, B: 70, A: 255},
	{R: 176, G: 60, B: 48, A: 255},
}

// LeafAtlas draws sprites leaf shapes side by side, each size pixels square,
// matching the U1/U2 ranges the leaf pool hands out.
func LeafAtlas(sprites, size int) *image.RGBA {
	if sprites <= 0 {
		sprites = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, sprites*size, size))
	half := float64(size) / 2
	for s := 0; s < sprites; s++ {
		tint := autumn[s%len(autumn)]
		// lobes vary the outline between sprites
		lobes := float64(3 + s%3)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				dx := (float64(x) + 0.5 - half) / half
				dy := (float64(y) + 0.5 - half) / half
				r := math.Hypot(dx, dy)
				theta := math.Atan2(dy, dx)
				edge := 0.62 + 0.28*math.Abs(math.Cos(lobes*theta/2))
				if r > edge {
					continue
				}
				vein := 1.0
				if math.Abs(dx-dy) < 0.05 {
					vein = 0.7
				}
				shade := (1 - 0.35*r/edge) * vein
				img.SetRGBA(s*size+x, y, color.RGBA{
					R: uint8(float64(tint.R) * shade),
					G: uint8(float64(tint.G) * shade),
					B: uint8(float64(tint.B) * shade),
					A: 255,
				})
			}
		}
	}
	return img
}
