//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"riverbed/internal/core"
	"riverbed/internal/droppool"
	"riverbed/internal/ripple"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type vertexProvider interface {
	Vertices() []ripple.Vertex
}

type heightProvider interface {
	HeightAt(x, y int) float32
}

type dropProvider interface {
	DropTuples() []droppool.Tuple
}

// heightSpan is the displacement drawn fully opaque by the height mask; a
// unit-strength drop stamps roughly this much at its centre.
const heightSpan = 512

// Overlay draws debugging layers over the water: surface normals (1), the
// height mask (2) and the drop rings of analytic ripples (3).
type Overlay struct {
	sim   core.Sim
	scale int

	showNormals bool
	showHeights bool
	showRings   bool

	pixel   *ebiten.Image
	maskImg *ebiten.Image
	maskBuf []byte

	samples    []gridSample
	sampleSpan float64
}

// NewOverlay constructs an overlay for sim drawn at scale pixels per cell.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: max(scale, 1)}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	o.samples, o.sampleSpan = sampleGrid(sim.Size(), o.scale, 400)
	return o
}

// Update toggles layers from the digit keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showNormals = !o.showNormals
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showHeights = !o.showHeights
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showRings = !o.showRings
	}
}

// Draw renders the enabled layers the scene supports.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showHeights {
		if p, ok := o.sim.(heightProvider); ok {
			o.drawHeights(screen, p)
		}
	}
	if o.showNormals {
		if p, ok := o.sim.(vertexProvider); ok {
			o.drawNormals(screen, p.Vertices())
		}
	}
	if o.showRings {
		if p, ok := o.sim.(dropProvider); ok {
			o.drawRings(screen, p.DropTuples())
		}
	}
}

func (o *Overlay) drawHeights(screen *ebiten.Image, p heightProvider) {
	size := o.sim.Size()
	total := size.W * size.H
	if total == 0 {
		return
	}
	if o.maskImg == nil || len(o.maskBuf) != 4*total {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
	}
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			c := heightTint(p.HeightAt(x, y), heightSpan)
			i := 4 * (y*size.W + x)
			// premultiplied alpha
			a := float64(c.A) / 255
			o.maskBuf[i+0] = uint8(float64(c.R) * a)
			o.maskBuf[i+1] = uint8(float64(c.G) * a)
			o.maskBuf[i+2] = uint8(float64(c.B) * a)
			o.maskBuf[i+3] = c.A
		}
	}
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.maskImg, op)
}

func (o *Overlay) drawNormals(screen *ebiten.Image, verts []ripple.Vertex) {
	const tilt = 8.0
	maxLen := o.sampleSpan * 0.45
	col := color.RGBA{R: 250, G: 220, B: 120, A: 200}
	calm := color.RGBA{R: 120, G: 160, B: 180, A: 110}
	for _, s := range o.samples {
		if s.index >= len(verts) {
			continue
		}
		v := verts[s.index]
		nx, ny := float64(v.NX), float64(v.NY)
		mag := math.Hypot(nx, ny)
		if mag < 1e-4 {
			o.point(screen, s.sx, s.sy, float64(o.scale)*0.5, calm)
			continue
		}
		length := maxLen * clamp01(mag*tilt)
		o.line(screen, s.sx, s.sy, s.sx+nx/mag*length, s.sy+ny/mag*length, 1, col)
	}
}

func (o *Overlay) drawRings(screen *ebiten.Image, drops []droppool.Tuple) {
	h := o.sim.Size().H
	sc := float64(o.scale)
	for _, d := range drops {
		alpha := clamp01(float64(d.Amp) * 4)
		if alpha <= 0 {
			continue
		}
		cx := (float64(d.X) + 0.5) * sc
		cy := (float64(h-1) - float64(d.Y) + 0.5) * sc
		col := color.RGBA{R: 200, G: 235, B: 255, A: uint8(40 + 200*alpha)}
		for _, seg := range ringSegments(cx, cy, float64(d.Spread)*sc, 48) {
			o.line(screen, seg[0], seg[1], seg[2], seg[3], 1.5, col)
		}
	}
}

func (o *Overlay) point(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size/2, y-size/2)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) line(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length < 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
