package ui

import (
	"math"
	"testing"

	"riverbed/internal/core"
)

func TestSampleGridCoversGrid(t *testing.T) {
	size := core.Size{W: 50, H: 82}
	samples, span := sampleGrid(size, 8, 300)
	if len(samples) == 0 || span <= 0 {
		t.Fatal("expected samples")
	}
	for _, s := range samples {
		if s.cx < 0 || s.cx > float64(size.W) || s.cy < 0 || s.cy > float64(size.H) {
			t.Fatalf("sample outside grid: %+v", s)
		}
		if s.sx != s.cx*8 || s.sy != s.cy*8 {
			t.Fatalf("pixel position mismatch: %+v", s)
		}
		x, y := int(s.cx), int(s.cy)
		if s.index != y*size.W+x {
			t.Fatalf("index %d for cell (%d,%d)", s.index, x, y)
		}
	}
	if got, _ := sampleGrid(core.Size{}, 8, 300); got != nil {
		t.Fatal("empty grid should give no samples")
	}
}

func TestHeightTint(t *testing.T) {
	if heightTint(0, 100).A != 0 {
		t.Fatal("flat water should be transparent")
	}
	crest := heightTint(100, 100)
	trough := heightTint(-100, 100)
	if crest.A != 160 || trough.A != 160 {
		t.Fatalf("full displacement alpha: crest %d trough %d", crest.A, trough.A)
	}
	if crest.B <= trough.B || crest.R <= trough.R {
		t.Fatal("crests should be lighter than troughs")
	}
	if heightTint(5000, 100) != crest {
		t.Fatal("displacement beyond span should saturate")
	}
}

func TestRingSegmentsClose(t *testing.T) {
	segs := ringSegments(10, 20, 5, 16)
	if len(segs) != 16 {
		t.Fatalf("got %d segments", len(segs))
	}
	for i, s := range segs {
		if d := math.Hypot(s[0]-10, s[1]-20); math.Abs(d-5) > 1e-9 {
			t.Fatalf("segment %d starts off the circle", i)
		}
		next := segs[(i+1)%len(segs)]
		if math.Abs(s[2]-next[0]) > 1e-9 || math.Abs(s[3]-next[1]) > 1e-9 {
			t.Fatalf("segment %d does not join the next", i)
		}
	}
	if ringSegments(0, 0, 0, 16) != nil {
		t.Fatal("zero radius should draw nothing")
	}
}

func TestStepValue(t *testing.T) {
	intCtrl := core.ParameterControl{Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 4, HasMin: true, HasMax: true}
	if v, ok := stepValue(intCtrl, 2, 1); !ok || v != 3 {
		t.Fatalf("int step = %v, %v", v, ok)
	}
	if _, ok := stepValue(intCtrl, 4, 1); ok {
		t.Fatal("stepping past max should be a no-op")
	}
	floatCtrl := core.ParameterControl{Type: core.ParamTypeFloat, Step: 0.25, Min: 0.25, HasMin: true}
	if v, ok := stepValue(floatCtrl, 0.4, -1); !ok || v != 0.25 {
		t.Fatalf("float step should clamp to min, got %v, %v", v, ok)
	}
	if v, ok := stepValue(core.ParameterControl{Type: core.ParamTypeFloat}, 1, 1); !ok || math.Abs(v-1.05) > 1e-9 {
		t.Fatalf("default float step = %v", v)
	}
}
