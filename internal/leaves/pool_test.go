package leaves

import (
	"errors"
	"math"
	"slices"
	"testing"

	pcore "riverbed/pkg/core"
)

type dropCall struct {
	x, y, radius, strength float32
}

type recordingSink struct {
	calls []dropCall
}

func (s *recordingSink) InjectDrop(x, y, radius, strength float32) {
	s.calls = append(s.calls, dropCall{x, y, radius, strength})
}

func newTestPool(t *testing.T, cfg Config, seed int64) (*Pool, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	p, err := New(cfg, sink, pcore.NewRNG(seed))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p, sink
}

func TestNewValidates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 0
	if _, err := New(cfg, &recordingSink{}, nil); !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("count 0: got %v, want ErrEmptyPool", err)
	}
	if _, err := New(DefaultConfig(), nil, nil); !errors.Is(err, ErrNoSink) {
		t.Fatalf("nil sink: got %v, want ErrNoSink", err)
	}
}

func TestResetPlacesLeavesInView(t *testing.T) {
	p, _ := newTestPool(t, DefaultConfig(), 3)
	cfg := p.Config()
	airborne, floating := 0, 0
	for i, l := range p.Leaves() {
		if l.X < -cfg.GLWidth || l.X > cfg.GLWidth {
			t.Fatalf("leaf %d x = %v outside ±%v", i, l.X, cfg.GLWidth)
		}
		if l.Y < -cfg.GLHeight/2 || l.Y > cfg.GLHeight/2 {
			t.Fatalf("leaf %d y = %v outside ±%v", i, l.Y, cfg.GLHeight/2)
		}
		if l.Airborne() {
			airborne++
			if l.Rippled >= 0 || l.Altitude > cfg.RestartAltitude {
				t.Fatalf("airborne leaf %d = %+v, want a pending splash below the restart altitude", i, l)
			}
		} else {
			floating++
			if l.Rippled < 0 {
				t.Fatalf("floating leaf %d should start with its splash spent", i)
			}
		}
		if p.Order()[i] != i {
			t.Fatalf("initial order[%d] = %d", i, p.Order()[i])
		}
	}
	if airborne == 0 || floating == 0 {
		t.Fatalf("%d airborne and %d floating at construction, want both", airborne, floating)
	}
	if want := int(cfg.AirborneFraction*float32(cfg.Count) + 0.5); airborne != want || p.AirborneCount() != want {
		t.Fatalf("airborne = %d (count %d), want %d", airborne, p.AirborneCount(), want)
	}
}

func TestResetAllFloatingWithoutAirborneFraction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AirborneFraction = 0
	p, _ := newTestPool(t, cfg, 3)
	if n := p.AirborneCount(); n != 0 {
		t.Fatalf("%d leaves airborne with a zero fraction", n)
	}
}

func TestLandingSplashesOnce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 1
	p, sink := newTestPool(t, cfg, 1)
	l := &p.Leaves()[0]
	l.X, l.Y = 0, 0
	l.DeltaX, l.DeltaY = 0, 0
	l.Altitude = 0.1
	l.Rippled = -1
	l.Spin = 8

	for i := 0; i < 10; i++ {
		p.Update(0.1)
	}
	if len(sink.calls) != 1 {
		t.Fatalf("landing produced %d splashes, want 1", len(sink.calls))
	}
	c := sink.calls[0]
	if c.x != 25 || c.y != 25 || c.strength != cfg.SplashStrength || c.radius != cfg.SplashRadius {
		t.Fatalf("splash = %+v, want centre of the mesh with strength %v", c, cfg.SplashStrength)
	}
	if l.Spin != 4 {
		t.Fatalf("spin after landing = %v, want 4", l.Spin)
	}
	if l.Rippled < 0 {
		t.Fatal("landing must clear the splash flag")
	}
}

func TestAirborneDescendsAndSpinsDouble(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 1
	p, sink := newTestPool(t, cfg, 1)
	l := &p.Leaves()[0]
	l.X, l.Y = 0, 0
	l.Altitude = 0.7
	l.Rippled = -1
	l.Angle = 10
	l.Spin = 3

	p.Update(0.2)
	if math.Abs(float64(l.Altitude-(0.7-0.15*0.2))) > 1e-6 {
		t.Fatalf("altitude = %v", l.Altitude)
	}
	if l.Angle != 16 {
		t.Fatalf("airborne angle = %v, want 16", l.Angle)
	}
	if l.X != 0 || l.Y != 0 {
		t.Fatal("airborne leaves do not drift")
	}
	if len(sink.calls) != 0 {
		t.Fatal("airborne leaves do not splash")
	}
}

func TestRespawnRanges(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 32
	p, _ := newTestPool(t, cfg, 11)
	for i := range p.Leaves() {
		p.Leaves()[i].Y = -10
	}
	if got := p.Update(0.016); got != cfg.Count {
		t.Fatalf("respawned %d leaves, want %d", got, cfg.Count)
	}

	maxSpin := float32(0.02*180/math.Pi) * cfg.RespawnSpinScale
	for i, l := range p.Leaves() {
		if l.X < -cfg.GLWidth || l.X > cfg.GLWidth {
			t.Fatalf("leaf %d x = %v", i, l.X)
		}
		if l.Y < -cfg.GLHeight/2 || l.Y > cfg.GLHeight/2 {
			t.Fatalf("leaf %d y = %v", i, l.Y)
		}
		if l.Scale < 0.4 || l.Scale > 0.5 {
			t.Fatalf("leaf %d scale = %v, want [0.4, 0.5]", i, l.Scale)
		}
		if l.Spin < -maxSpin || l.Spin > maxSpin {
			t.Fatalf("leaf %d spin = %v beyond ±%v", i, l.Spin, maxSpin)
		}
		if l.Altitude != cfg.RestartAltitude || l.Rippled >= 0 || !l.Fresh {
			t.Fatalf("leaf %d not reset to a fresh falling leaf: %+v", i, l)
		}
		if l.DeltaY >= 0 || l.DeltaX < -0.01 || l.DeltaX > 0.01 {
			t.Fatalf("leaf %d velocity = (%v,%v)", i, l.DeltaX, l.DeltaY)
		}
		if math.Abs(float64(l.U2-l.U1-1/float32(cfg.Sprites))) > 1e-6 {
			t.Fatalf("leaf %d sprite range = [%v,%v]", i, l.U1, l.U2)
		}
	}
}

func TestNoDoubleRespawnWithinFrame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 8
	p, _ := newTestPool(t, cfg, 5)
	for i := range p.Leaves() {
		p.Leaves()[i].X = 100
	}
	if got := p.Update(0.016); got != cfg.Count {
		t.Fatalf("respawned %d, want %d", got, cfg.Count)
	}
	if got := p.Update(0.016); got != 0 {
		t.Fatalf("freshly respawned leaves recycled again: %d", got)
	}
}

func TestRecycleUsesPositionBeforeMove(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 1
	p, _ := newTestPool(t, cfg, 2)
	l := &p.Leaves()[0]
	reach := cfg.LeafSize * l.Scale
	l.X = cfg.GLWidth + reach - 0.001
	l.DeltaX = 1
	l.Altitude = -1
	l.Rippled = 1
	if got := p.Update(0.1); got != 0 {
		t.Fatal("a leaf still in view before moving must not be recycled this frame")
	}
	if got := p.Update(0.1); got != 1 {
		t.Fatal("the leaf should be recycled on the following frame")
	}
}

func TestReorderStablePartition(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 6
	p, _ := newTestPool(t, cfg, 9)
	if err := p.SetOrder([]int{5, 0, 4, 1, 3, 2}); err != nil {
		t.Fatal(err)
	}
	for i := range p.Leaves() {
		p.Leaves()[i].X = 0
		p.Leaves()[i].Y = 0
	}
	// Leaves 0 and 3 leave the view.
	p.Leaves()[0].Y = -10
	p.Leaves()[3].X = 10

	if got := p.Update(0.016); got != 2 {
		t.Fatalf("respawned %d, want 2", got)
	}
	if !p.ReorderIfNeeded() {
		t.Fatal("reorder should run after a respawn")
	}
	want := []int{5, 4, 1, 2, 0, 3}
	for i, idx := range p.Order() {
		if idx != want[i] {
			t.Fatalf("order = %v, want %v", p.Order(), want)
		}
	}
	for i, l := range p.Leaves() {
		if l.Fresh {
			t.Fatalf("leaf %d still marked fresh after reorder", i)
		}
	}
	if p.ReorderIfNeeded() {
		t.Fatal("reorder must not run again without a new respawn")
	}
}

func TestReorderUpdatesOrderInPlace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 4
	p, _ := newTestPool(t, cfg, 9)
	held := p.Order()
	for i := range p.Leaves() {
		p.Leaves()[i].X = 0
		p.Leaves()[i].Y = 0
	}
	p.Leaves()[1].Y = -10

	p.Update(0.016)
	if !p.ReorderIfNeeded() {
		t.Fatal("reorder should run after a respawn")
	}
	if !slices.Equal(held, []int{0, 2, 3, 1}) {
		t.Fatalf("order held before the reorder = %v, want [0 2 3 1]", held)
	}
	if &held[0] != &p.Order()[0] {
		t.Fatal("Order should keep returning the same backing array")
	}

	// A second reorder must not scribble over the held slice.
	p.Leaves()[0].Y = -10
	p.Update(0.016)
	p.ReorderIfNeeded()
	if !slices.Equal(held, []int{2, 3, 1, 0}) {
		t.Fatalf("order after second reorder = %v, want [2 3 1 0]", held)
	}
}

func TestReorderKeepsPermutation(t *testing.T) {
	cfg := DefaultConfig()
	p, _ := newTestPool(t, cfg, 21)
	seen := make([]bool, p.Len())
	for frame := 0; frame < 2000; frame++ {
		p.Update(0.2)
		p.ReorderIfNeeded()
		for i := range seen {
			seen[i] = false
		}
		for _, idx := range p.Order() {
			if seen[idx] {
				t.Fatalf("frame %d: index %d appears twice in %v", frame, idx, p.Order())
			}
			seen[idx] = true
		}
	}
}

func TestReorderDisabledClearsFresh(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 3
	cfg.Reorder = false
	p, _ := newTestPool(t, cfg, 4)
	p.Leaves()[0].Y = -10
	p.Update(0.016)
	if p.ReorderIfNeeded() {
		t.Fatal("disabled reorder must not rebuild the order")
	}
	if p.Leaves()[0].Fresh {
		t.Fatal("fresh mark should be cleared")
	}
	for i, idx := range p.Order() {
		if idx != i {
			t.Fatalf("order changed: %v", p.Order())
		}
	}
}

func TestSetOrderRejectsMismatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 3
	p, _ := newTestPool(t, cfg, 1)
	if err := p.SetOrder([]int{0, 1}); !errors.Is(err, ErrOrderMismatch) {
		t.Fatalf("short order: got %v", err)
	}
	if err := p.SetOrder([]int{0, 1, 1}); !errors.Is(err, ErrOrderMismatch) {
		t.Fatalf("duplicate index: got %v", err)
	}
	if err := p.SetOrder([]int{0, 1, 3}); !errors.Is(err, ErrOrderMismatch) {
		t.Fatalf("out of range index: got %v", err)
	}
}

func TestTransformsAlpha(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 3
	p, _ := newTestPool(t, cfg, 1)
	p.Leaves()[0].Altitude = 0.45
	p.Leaves()[1].Altitude = 0.2
	p.Leaves()[2].Altitude = -1

	out := p.Transforms(make([]Transform, 0, 3))
	if len(out) != 3 {
		t.Fatalf("got %d transforms", len(out))
	}
	if math.Abs(float64(out[0].Alpha-0.5)) > 1e-5 || math.Abs(float64(out[0].ShadowAlpha-0.075)) > 1e-5 {
		t.Fatalf("high leaf alpha = %v shadow %v", out[0].Alpha, out[0].ShadowAlpha)
	}
	if out[1].Alpha != 1 || !out[1].Airborne {
		t.Fatalf("low airborne leaf alpha = %v", out[1].Alpha)
	}
	if out[2].Airborne || out[2].Alpha != 1 || out[2].ShadowAlpha != 0 {
		t.Fatalf("floating leaf = %+v", out[2])
	}
	l := p.Leaves()[1]
	if out[1].Model.Col(3).Z() != -0.2 || out[1].Model.Col(3).X() != l.X {
		t.Fatalf("airborne leaf should be lifted by its altitude: %v", out[1].Model.Col(3))
	}

	p.Leaves()[0].Altitude = 0.7
	out = p.Transforms(out)
	if out[0].Alpha != 0 {
		t.Fatalf("alpha should clamp to 0 high up, got %v", out[0].Alpha)
	}
}
