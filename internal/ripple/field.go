package ripple

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas32"

	"riverbed/internal/core"
)

// heightScale is the fixed-point factor drops are stamped with; a radius-r
// drop of strength 1 is sqrt(r²·heightScale) deep at its centre.
const heightScale = 1 << 16

var (
	// ErrInvalidGrid is returned for grids too small to hold a drop.
	ErrInvalidGrid = errors.New("ripple: grid must be at least 3x3")
	// ErrRadiusTooLarge is returned when the drop radius cannot fit inside the grid.
	ErrRadiusTooLarge = errors.New("ripple: drop radius exceeds half the smaller grid dimension")
	// ErrInvalidDamping is returned for a damping shift outside [1, 16].
	ErrInvalidDamping = errors.New("ripple: damping shift must be in [1, 16]")
)

// SurfaceMode selects how DeriveSurface produces texture coordinates and z.
type SurfaceMode string

const (
	// SurfaceRefract maps height gradients through the refraction table.
	SurfaceRefract SurfaceMode = "refract"
	// SurfaceRadial ignores the field and animates a single centred ripple.
	SurfaceRadial SurfaceMode = "radial"
)

// Config controls the height field and its surface pass.
type Config struct {
	Width  int
	Height int

	DropRadius   int
	DampShift    uint
	Refraction   float64
	RippleHeight float32
	NormalNudge  float32
	Aspect       float32

	Surface         SurfaceMode
	RadialAmplitude float32
	RadialPhaseStep float32
}

// DefaultConfig returns the standard configuration for a 50x50 mesh.
func DefaultConfig() Config {
	return Config{
		Width:           50,
		Height:          50,
		DropRadius:      2,
		DampShift:       3,
		Refraction:      1.333,
		RippleHeight:    10,
		NormalNudge:     0.01,
		Surface:         SurfaceRefract,
		RadialAmplitude: 0.2,
		RadialPhaseStep: 0.02,
	}
}

// MaxRadius returns the largest drop radius a w×h grid can contain.
func MaxRadius(w, h int) int {
	m := w
	if h < m {
		m = h
	}
	return (m - 1) / 2
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.Width < 3 || c.Height < 3 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidGrid, c.Width, c.Height)
	}
	if c.DropRadius < 1 || c.DropRadius > MaxRadius(c.Width, c.Height) {
		return fmt.Errorf("%w: radius %d on %dx%d", ErrRadiusTooLarge, c.DropRadius, c.Width, c.Height)
	}
	if c.DampShift < 1 || c.DampShift > 16 {
		return fmt.Errorf("%w: got %d", ErrInvalidDamping, c.DampShift)
	}
	return nil
}

// Field is the height-field water simulator. It owns a bordered double
// buffer, the refraction table and the mesh vertices it derives.
type Field struct {
	cfg       Config
	grid      *core.HeightGrid
	dampFrac  float32
	maxRadius int

	refraction []int32
	verts      []Vertex
	phase      float32
}

// New validates cfg and allocates every buffer the field will ever use.
func New(cfg Config) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Refraction <= 0 {
		cfg.Refraction = 1.333
	}
	if cfg.Surface == "" {
		cfg.Surface = SurfaceRefract
	}
	f := &Field{
		cfg:        cfg,
		grid:       core.NewHeightGrid(cfg.Width, cfg.Height),
		dampFrac:   1 / float32(uint32(1)<<cfg.DampShift),
		maxRadius:  MaxRadius(cfg.Width, cfg.Height),
		refraction: buildRefractionTable(cfg.Refraction),
		verts:      make([]Vertex, cfg.Width*cfg.Height),
	}
	f.initMesh()
	return f, nil
}

// Config returns the configuration the field was built with.
func (f *Field) Config() Config { return f.cfg }

// Size reports the grid dimensions.
func (f *Field) Size() core.Size { return core.Size{W: f.cfg.Width, H: f.cfg.Height} }

// Grid exposes the underlying double buffer for read-only inspection.
func (f *Field) Grid() *core.HeightGrid { return f.grid }

// SetDampShift changes the damping exponent.
func (f *Field) SetDampShift(shift uint) error {
	if shift < 1 || shift > 16 {
		return fmt.Errorf("%w: got %d", ErrInvalidDamping, shift)
	}
	f.cfg.DampShift = shift
	f.dampFrac = 1 / float32(uint32(1)<<shift)
	return nil
}

// SetDropRadius changes the default radius reported by Config; radii passed
// to InjectDrop are still clamped to the grid.
func (f *Field) SetDropRadius(r int) error {
	if r < 1 || r > f.maxRadius {
		return fmt.Errorf("%w: radius %d on %dx%d", ErrRadiusTooLarge, r, f.cfg.Width, f.cfg.Height)
	}
	f.cfg.DropRadius = r
	return nil
}

// Reset flattens the water and restarts the radial phase.
func (f *Field) Reset() {
	f.grid.Clear()
	f.phase = 0
	f.initMesh()
}

// InjectDrop stamps a parabolic depression of the given radius into the
// current buffer. The centre is clamped so the whole disc stays inside the
// grid, and x is mirrored to the field's storage convention. Radii beyond
// the grid's capacity are clamped; non-positive strengths are ignored.
func (f *Field) InjectDrop(x, y, radius, strength float32) {
	if strength <= 0 {
		return
	}
	r := int(radius)
	if r < 1 {
		r = 1
	}
	if r > f.maxRadius {
		r = f.maxRadius
	}
	w, h := f.cfg.Width, f.cfg.Height

	ix, iy := int(x), int(y)
	if ix < r {
		ix = r
	}
	if iy < r {
		iy = r
	}
	if ix >= w-r {
		ix = w - r - 1
	}
	if iy >= h-r {
		iy = h - r - 1
	}
	ix = w - 1 - ix

	cur := f.grid.Current()
	sqr := r * r
	inv := 1 / strength
	for dy := 0; dy < r; dy++ {
		sqv := dy * dy
		for dx := 0; dx < r; dx++ {
			d := dx*dx + sqv
			if d >= sqr {
				continue
			}
			v := -float32(math.Sqrt(float64((sqr-d)*heightScale))) * inv
			cur[f.grid.Index(ix+dx, iy-dy)] = v
			cur[f.grid.Index(ix+dx, iy+dy)] = v
			cur[f.grid.Index(ix-dx, iy-dy)] = v
			cur[f.grid.Index(ix-dx, iy+dy)] = v
		}
	}
}

// Advance runs one step of the damped wave equation over every interior cell
// and flips the buffers so the freshly written one becomes current.
func (f *Field) Advance() {
	g := f.grid
	cur, next := g.Current(), g.Next()
	stride := g.Stride()
	damp := f.dampFrac
	for y := 0; y < f.cfg.Height; y++ {
		i := g.Index(0, y)
		for x := 0; x < f.cfg.Width; x++ {
			d := (cur[i-stride]+cur[i+stride]+cur[i-1]+cur[i+1])*0.5 - next[i]
			next[i] = d - d*damp
			i++
		}
	}
	g.Flip()
}

// Energy returns the sum of squared heights of the current buffer. The
// border is always zero, so the whole buffer can be reduced at once.
func (f *Field) Energy() float64 {
	cur := f.grid.Current()
	v := blas32.Vector{N: len(cur), Inc: 1, Data: cur}
	return float64(blas32.Dot(v, v))
}

// Height returns the current height at cell (x, y) in the caller's
// coordinates, undoing the storage mirror.
func (f *Field) Height(x, y int) float32 {
	if x < 0 || y < 0 || x >= f.cfg.Width || y >= f.cfg.Height {
		return 0
	}
	return f.grid.At(f.cfg.Width-1-x, y)
}
