//go:build ebiten

package app

import (
	"image/color"
	"time"

	"riverbed/internal/core"
	"riverbed/internal/leaves"
	"riverbed/internal/logger"
	"riverbed/internal/render"
	"riverbed/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

const spritePixels = 32

type leafProvider interface {
	Leaves() *leaves.Pool
	LeafTransforms() []leaves.Transform
}

// Game adapts a water scene to the ebiten.Game interface. It owns the frame
// context: wall time in, clamped dt and pointer drops out.
type Game struct {
	sim     core.Sim
	ctx     *core.Context
	clock   *core.WallClock
	painter *render.GridPainter
	palette []color.RGBA
	overlay *ui.Overlay
	hud     *ui.HUD
	log     *zap.Logger

	atlas      *ebiten.Image
	atlasW     float32
	verts      []ebiten.Vertex
	shadowTint [3]float32

	opts     Options
	wall     time.Duration
	simTime  time.Duration
	paused   bool
	tickOnce bool
	lastDrop core.Point
}

// New constructs a Game for sim.
func New(sim core.Sim, opts Options) *Game {
	opts = opts.withDefaults()
	size := sim.Size()
	g := &Game{
		sim:     sim,
		clock:   core.NewWallClock(),
		painter: render.NewGridPainter(size.W, size.H),
		palette: render.WaterPalette(),
		overlay: ui.NewOverlay(sim, opts.Scale),
		hud:     ui.NewHUD(sim, opts.HUDWidth),
		log:     logger.Named("app"),
		opts:    opts,
		verts:   make([]ebiten.Vertex, 4),
	}
	g.ctx = core.NewContext(core.Env{
		ViewW:   size.W * opts.Scale,
		ViewH:   size.H * opts.Scale,
		Grid:    size,
		Preview: opts.Preview,
	})
	if lp, ok := sim.(leafProvider); ok {
		sprites := lp.Leaves().Config().Sprites
		g.atlas = ebiten.NewImageFromImage(render.LeafAtlas(sprites, spritePixels))
		g.atlasW = float32(sprites * spritePixels)
	}
	g.shadowTint = [3]float32{0.05, 0.08, 0.1}
	return g
}

// Reset reseeds the scene and restarts the frame clock.
func (g *Game) Reset(seed int64) {
	g.opts.Seed = seed
	g.sim.Reset(seed)
	g.ctx.Restart()
	g.clock.Restart()
	g.wall, g.simTime = 0, 0
	g.tickOnce = false
	g.log.Info("scene reset", zap.String("sim", g.sim.Name()), zap.Int64("seed", seed))
}

// Update handles input and advances the scene by one frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.ctx.Env.Preview = !g.ctx.Env.Preview
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.opts.Seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	g.overlay.Update()
	g.hud.Update(g.ctx.Env.ViewW)
	g.pointer()

	now := g.clock.Elapsed()
	delta := now - g.wall
	g.wall = now
	switch {
	case !g.paused:
		g.simTime += delta
	case g.tickOnce:
		g.simTime += time.Second / time.Duration(ebiten.TPS())
	default:
		return nil
	}
	g.tickOnce = false
	g.ctx.Advance(g.simTime)
	g.sim.Step(g.ctx)
	return nil
}

// pointer posts a drop for a click, a touch, or a drag onto a new cell.
func (g *Game) pointer() {
	post := func(px, py int) {
		if px < 0 || py < 0 || px >= g.ctx.Env.ViewW || py >= g.ctx.Env.ViewH {
			return
		}
		p := g.ctx.ScreenToGrid(float32(px), float32(py))
		g.ctx.PostDrop(p.X, p.Y)
		g.lastDrop = p
	}
	mx, my := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		post(mx, my)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		if g.ctx.ScreenToGrid(float32(mx), float32(my)) != g.lastDrop {
			post(mx, my)
		}
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		post(ebiten.TouchPosition(id))
	}
}

// Draw renders the shaded water, the leaves, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.opts.Scale)
	g.drawLeaves(screen)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.ctx.Env.ViewW, g.ctx.Env.ViewH)
}

func (g *Game) drawLeaves(screen *ebiten.Image) {
	lp, ok := g.sim.(leafProvider)
	if !ok || g.atlas == nil {
		return
	}
	cfg := lp.Leaves().Config()
	quad := lp.Leaves().Quad()
	w, h := g.ctx.Env.ViewW, g.ctx.Env.ViewH
	for _, t := range lp.LeafTransforms() {
		if t.Airborne {
			corners := render.ProjectQuad(t.Shadow, quad, cfg.GLWidth, cfg.GLHeight, w, h)
			g.drawSprite(screen, corners, t.U1, t.U2, t.ShadowAlpha, g.shadowTint)
		}
		corners := render.ProjectQuad(t.Model, quad, cfg.GLWidth, cfg.GLHeight, w, h)
		g.drawSprite(screen, corners, t.U1, t.U2, t.Alpha, [3]float32{1, 1, 1})
	}
}

var quadIndices = []uint16{0, 1, 2, 0, 2, 3}

func (g *Game) drawSprite(screen *ebiten.Image, c [4][2]float32, u1, u2, alpha float32, tint [3]float32) {
	if alpha <= 0 {
		return
	}
	// corners run bottom-left, bottom-right, top-right, top-left in GL space
	src := [4][2]float32{
		{u1 * g.atlasW, spritePixels},
		{u2 * g.atlasW, spritePixels},
		{u2 * g.atlasW, 0},
		{u1 * g.atlasW, 0},
	}
	for i := range g.verts {
		g.verts[i] = ebiten.Vertex{
			DstX: c[i][0], DstY: c[i][1],
			SrcX: src[i][0], SrcY: src[i][1],
			ColorR: tint[0], ColorG: tint[1], ColorB: tint[2], ColorA: alpha,
		}
	}
	op := &ebiten.DrawTrianglesOptions{Filter: ebiten.FilterLinear}
	screen.DrawTriangles(g.verts, quadIndices, g.atlas, op)
}

// Layout returns the logical screen size: the water plus the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ctx.Env.ViewW + g.opts.HUDWidth, g.ctx.Env.ViewH
}
