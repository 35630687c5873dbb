package core

// HeightGrid stores two same-shaped W×H grids of height samples surrounded by
// a one-cell border, so reads of the four direct neighbours of any interior
// cell never need bounds checks. The border cells are never written and stay
// at zero. A single index bit names the logically current buffer.
type HeightGrid struct {
	W, H   int
	stride int
	bufs   [2][]float32
	index  int
}

// NewHeightGrid allocates both buffers for an interior of w×h cells.
func NewHeightGrid(w, h int) *HeightGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	stride := w + 2
	total := stride * (h + 2)
	return &HeightGrid{
		W:      w,
		H:      h,
		stride: stride,
		bufs:   [2][]float32{make([]float32, total), make([]float32, total)},
	}
}

// Stride returns the row length of the bordered buffers.
func (g *HeightGrid) Stride() int { return g.stride }

// Index returns the linear buffer index for interior coordinates (x, y).
// x and y may range over [-1, W] and [-1, H] to address the border.
func (g *HeightGrid) Index(x, y int) int { return (y+1)*g.stride + x + 1 }

// Current exposes the buffer produced by the most recent flip.
func (g *HeightGrid) Current() []float32 { return g.bufs[g.index] }

// Next exposes the buffer that the next update writes into. It still holds
// the generation before Current.
func (g *HeightGrid) Next() []float32 { return g.bufs[1-g.index] }

// CurrentIndex reports which buffer is current (0 or 1).
func (g *HeightGrid) CurrentIndex() int { return g.index }

// Flip makes Next the current buffer.
func (g *HeightGrid) Flip() { g.index = 1 - g.index }

// At returns the current height at interior coordinates (x, y).
func (g *HeightGrid) At(x, y int) float32 { return g.bufs[g.index][g.Index(x, y)] }

// Clear zeroes both buffers and resets the index bit.
func (g *HeightGrid) Clear() {
	for _, buf := range g.bufs {
		for i := range buf {
			buf[i] = 0
		}
	}
	g.index = 0
}
