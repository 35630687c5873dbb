package ripple

import (
	"errors"
	"math"
	"testing"
)

func newTestField(t *testing.T, w, h int) *Field {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	f, err := New(cfg)
	if err != nil {
		t.Fatalf("New(%dx%d): %v", w, h, err)
	}
	return f
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 9, 9
	cfg.DropRadius = 5
	if _, err := New(cfg); !errors.Is(err, ErrRadiusTooLarge) {
		t.Fatalf("radius 5 on 9x9: got %v, want ErrRadiusTooLarge", err)
	}

	cfg = DefaultConfig()
	cfg.Width, cfg.Height = 2, 40
	if _, err := New(cfg); !errors.Is(err, ErrInvalidGrid) {
		t.Fatalf("2x40 grid: got %v, want ErrInvalidGrid", err)
	}

	cfg = DefaultConfig()
	cfg.DampShift = 0
	if _, err := New(cfg); !errors.Is(err, ErrInvalidDamping) {
		t.Fatalf("damp shift 0: got %v, want ErrInvalidDamping", err)
	}

	cfg = DefaultConfig()
	cfg.Width, cfg.Height = 9, 9
	cfg.DropRadius = 4
	if _, err := New(cfg); err != nil {
		t.Fatalf("radius 4 on 9x9 should be accepted: %v", err)
	}
}

func TestInjectDropShape(t *testing.T) {
	f := newTestField(t, 64, 64)
	f.InjectDrop(32, 32, 2, 1)

	if got := f.Height(32, 32); got != -512 {
		t.Fatalf("centre height = %v, want -512", got)
	}
	edge := -float32(math.Sqrt(3 * heightScale))
	for _, p := range [][2]int{{31, 32}, {33, 32}, {32, 31}, {32, 33}} {
		if got := f.Height(p[0], p[1]); math.Abs(float64(got-edge)) > 1e-3 {
			t.Fatalf("height at %v = %v, want %v", p, got, edge)
		}
	}
	corner := f.Height(31, 31)
	for _, p := range [][2]int{{33, 31}, {31, 33}, {33, 33}} {
		if got := f.Height(p[0], p[1]); got != corner {
			t.Fatalf("height at %v = %v, want mirrored corner %v", p, got, corner)
		}
	}

	nonZero := 0
	for _, v := range f.Grid().Current() {
		if v != 0 {
			nonZero++
		}
	}
	if nonZero != 9 {
		t.Fatalf("radius-2 drop touched %d cells, want 9", nonZero)
	}

	g := newTestField(t, 64, 64)
	g.InjectDrop(32, 32, 2, 2)
	if got := g.Height(32, 32); got != -256 {
		t.Fatalf("strength 2 centre height = %v, want -256", got)
	}
}

func TestInjectDropMirrorsX(t *testing.T) {
	f := newTestField(t, 20, 20)
	f.InjectDrop(5, 10, 1, 1)
	grid := f.Grid()
	if grid.At(14, 10) == 0 {
		t.Fatal("drop at x=5 should be stored at mirrored column 14")
	}
	if grid.At(5, 10) != 0 {
		t.Fatal("unmirrored column must stay flat")
	}
}

func TestInjectDropContainment(t *testing.T) {
	const w, h = 16, 12
	for r := 1; r <= MaxRadius(w, h)+2; r++ {
		for y := -4; y < h+4; y++ {
			for x := -4; x < w+4; x++ {
				f := newTestField(t, w, h)
				f.InjectDrop(float32(x), float32(y), float32(r), 1)
				grid := f.Grid()
				cur := grid.Current()
				for bx := -1; bx <= w; bx++ {
					if cur[grid.Index(bx, -1)] != 0 || cur[grid.Index(bx, h)] != 0 {
						t.Fatalf("drop (%d,%d) r=%d wrote into the top/bottom border", x, y, r)
					}
				}
				for by := -1; by <= h; by++ {
					if cur[grid.Index(-1, by)] != 0 || cur[grid.Index(w, by)] != 0 {
						t.Fatalf("drop (%d,%d) r=%d wrote into the left/right border", x, y, r)
					}
				}
				for i, v := range grid.Next() {
					if v != 0 {
						t.Fatalf("drop (%d,%d) r=%d wrote into the next buffer at %d", x, y, r, i)
					}
				}
				if f.Energy() == 0 {
					t.Fatalf("drop (%d,%d) r=%d left the field flat", x, y, r)
				}
			}
		}
	}
}

func TestInjectDropIgnoresNonPositiveStrength(t *testing.T) {
	f := newTestField(t, 16, 16)
	f.InjectDrop(8, 8, 2, 0)
	f.InjectDrop(8, 8, 2, -1)
	if f.Energy() != 0 {
		t.Fatal("non-positive strength must not disturb the field")
	}
}

func TestAdvanceFlipsAndPropagates(t *testing.T) {
	f := newTestField(t, 9, 9)
	grid := f.Grid()
	grid.Current()[grid.Index(4, 4)] = 1024

	before := grid.CurrentIndex()
	f.Advance()
	if grid.CurrentIndex() == before {
		t.Fatal("Advance must flip the current buffer")
	}

	want := float32(1024 * 0.5 * 7 / 8)
	for _, p := range [][2]int{{3, 4}, {5, 4}, {4, 3}, {4, 5}} {
		if got := grid.At(p[0], p[1]); math.Abs(float64(got-want)) > 1e-3 {
			t.Fatalf("neighbour %v = %v, want %v", p, got, want)
		}
	}
	if got := grid.At(4, 4); got != 0 {
		t.Fatalf("centre after one step = %v, want 0", got)
	}
}

func TestDampedDecayBound(t *testing.T) {
	f := newTestField(t, 64, 64)
	f.InjectDrop(32, 32, 2, 1)
	e0 := f.Energy()
	if e0 <= 0 {
		t.Fatal("drop must add energy")
	}

	// Every mode decays by at least sqrt(7/8) in amplitude per step, with a
	// transient gain of at most 1/sin²θ = 8.
	checkpoints := map[int]bool{10: true, 25: true, 50: true, 100: true, 200: true}
	for n := 1; n <= 200; n++ {
		f.Advance()
		if !checkpoints[n] {
			continue
		}
		bound := 8 * math.Pow(7.0/8.0, float64(n)) * e0 * 1.01
		if e := f.Energy(); e > bound {
			t.Fatalf("energy after %d steps = %g, exceeds decay bound %g", n, e, bound)
		}
	}
}

func TestSingleDropSettlesScenario(t *testing.T) {
	f := newTestField(t, 64, 64)
	f.InjectDrop(32, 32, 2, 1)
	e0 := f.Energy()
	for i := 0; i < 500; i++ {
		f.Advance()
	}
	if e := f.Energy(); e > 0.01*e0 {
		t.Fatalf("energy after 500 steps = %g, want <= 1%% of %g", e, e0)
	}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if h := f.Height(x, y); math.Abs(float64(h)) > 1e-3 {
				t.Fatalf("cell (%d,%d) = %v, field should be flat", x, y, h)
			}
		}
	}
}

func TestResetFlattens(t *testing.T) {
	f := newTestField(t, 20, 20)
	f.InjectDrop(10, 10, 2, 1)
	f.Advance()
	f.Reset()
	if f.Energy() != 0 {
		t.Fatal("Reset must flatten both buffers")
	}
	for _, v := range f.Grid().Next() {
		if v != 0 {
			t.Fatal("Reset must clear the next buffer too")
		}
	}
}
