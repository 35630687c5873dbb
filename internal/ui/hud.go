//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"riverbed/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var (
	panelBG    = color.RGBA{R: 12, G: 22, B: 28, A: 255}
	titleFG    = color.RGBA{R: 190, G: 215, B: 225, A: 255}
	labelFG    = color.RGBA{R: 215, G: 228, B: 232, A: 255}
	dimFG      = color.RGBA{R: 130, G: 150, B: 160, A: 255}
	buttonBG   = color.RGBA{R: 38, G: 62, B: 74, A: 255}
	buttonOff  = color.RGBA{R: 24, G: 36, B: 44, A: 255}
	buttonText = color.RGBA{R: 230, G: 240, B: 245, A: 255}
)

// HUD is the side panel: scene tunables with -/+ buttons and the live
// frame statistics.
type HUD struct {
	sim    core.Sim
	width  int
	height int
	panel  *ebiten.Image
	pixel  *ebiten.Image
	offset int

	controls []control
	ints     core.IntParameterSetter
	floats   core.FloatParameterSetter
	stats    core.FrameStats
	fps      float64
}

type control struct {
	def   core.ParameterControl
	value float64
	ok    bool
	top   int
	minus image.Rectangle
	plus  image.Rectangle
}

// NewHUD builds a panel width pixels wide for sim.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0)}
	if h.width == 0 {
		return h
	}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	if p, ok := sim.(core.ParameterControlsProvider); ok {
		for i, def := range p.ParameterControls() {
			top := controlsTop + i*lineHeight
			by := top + (lineHeight-buttonSize)/2
			plus := image.Rect(h.width-panelPadding-buttonSize, by, h.width-panelPadding, by+buttonSize)
			minus := plus.Sub(image.Pt(buttonSize+buttonGap, 0))
			h.controls = append(h.controls, control{def: def, top: top, minus: minus, plus: plus})
		}
	}
	h.ints, _ = sim.(core.IntParameterSetter)
	h.floats, _ = sim.(core.FloatParameterSetter)
	return h
}

// Update refreshes values from the scene and handles clicks on the panel,
// which starts at panelX in screen pixels.
func (h *HUD) Update(panelX int) {
	if h == nil || h.width == 0 {
		return
	}
	h.offset = panelX
	h.fps = ebiten.ActualFPS()
	if sp, ok := h.sim.(core.StatsProvider); ok {
		h.stats = sp.Stats()
	}
	if pp, ok := h.sim.(interface{ Parameters() core.ParameterSnapshot }); ok {
		snap := pp.Parameters()
		for i := range h.controls {
			c := &h.controls[i]
			p, found := snap.Lookup(c.def.Key)
			c.ok = false
			if found {
				if v, err := strconv.ParseFloat(p.Value, 64); err == nil {
					c.value, c.ok = v, true
				}
			}
		}
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	pt := image.Pt(mx-h.offset, my)
	for i := range h.controls {
		c := &h.controls[i]
		switch {
		case pt.In(c.minus):
			h.press(c, -1)
		case pt.In(c.plus):
			h.press(c, 1)
		default:
			continue
		}
		return
	}
}

func (h *HUD) press(c *control, dir int) {
	if !c.ok {
		return
	}
	next, changed := stepValue(c.def, c.value, dir)
	if !changed {
		return
	}
	applied := false
	switch c.def.Type {
	case core.ParamTypeInt:
		applied = h.ints != nil && h.ints.SetIntParameter(c.def.Key, int(next))
	case core.ParamTypeFloat:
		applied = h.floats != nil && h.floats.SetFloatParameter(c.def.Key, next)
	}
	if applied {
		c.value = next
	}
}

// Draw paints the panel at offsetX, height pixels tall.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width == 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.height != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.height = height
	}
	h.panel.Fill(panelBG)
	face := basicfont.Face7x13
	text.Draw(h.panel, h.sim.Name(), face, panelPadding, panelPadding+headerBaseline, titleFG)

	for i := range h.controls {
		c := &h.controls[i]
		text.Draw(h.panel, c.def.Label, face, panelPadding, c.top+labelBaseline, labelFG)
		value, fg := "--", dimFG
		if c.ok {
			value, fg = formatControl(c.def, c.value), labelFG
		}
		w := text.BoundString(face, value).Dx()
		text.Draw(h.panel, value, face, c.minus.Min.X-buttonGap-w, c.top+labelBaseline, fg)
		_, canDown := stepValue(c.def, c.value, -1)
		_, canUp := stepValue(c.def, c.value, 1)
		h.button(c.minus, "-", c.ok && canDown)
		h.button(c.plus, "+", c.ok && canUp)
	}

	y := controlsTop + len(h.controls)*lineHeight + statsGap
	for _, line := range []string{
		fmt.Sprintf("energy    %10.3f", h.stats.Energy),
		fmt.Sprintf("active    %10d", h.stats.Active),
		fmt.Sprintf("airborne  %10d", h.stats.Airborne),
		fmt.Sprintf("splashes  %10d", h.stats.Splashes),
		fmt.Sprintf("fps       %10.1f", h.fps),
	} {
		text.Draw(h.panel, line, face, panelPadding, y, dimFG)
		y += statsLine
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) button(r image.Rectangle, label string, enabled bool) {
	bg := buttonBG
	fg := buttonText
	if !enabled {
		bg, fg = buttonOff, dimFG
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	text.Draw(h.panel, label, face, r.Min.X+(r.Dx()-b.Dx())/2, r.Min.Y+(r.Dy()+b.Dy())/2, fg)
}

func formatControl(def core.ParameterControl, v float64) string {
	if def.Type == core.ParamTypeInt {
		return strconv.Itoa(int(v))
	}
	prec := 1
	switch {
	case def.Step < 0.01:
		prec = 3
	case def.Step < 0.1:
		prec = 2
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

const (
	panelPadding   = 12
	lineHeight     = 34
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 16
	labelBaseline  = 22
	controlsTop    = panelPadding + headerBaseline + 14
	statsGap       = 24
	statsLine      = 18
)
