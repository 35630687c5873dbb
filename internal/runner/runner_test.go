package runner

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"riverbed/internal/config"
	"riverbed/internal/core"
	"riverbed/internal/droppool"
	"riverbed/internal/telemetry"
)

func TestNewSceneResolvesRegistry(t *testing.T) {
	cfg := config.Default()
	cfg.Sim = "fall"
	cfg.Params["w"] = "40"
	sim, err := NewScene(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if sim.Name() != "fall" || sim.Size().W != 40 {
		t.Fatalf("got %s %v", sim.Name(), sim.Size())
	}

	cfg.Sim = "lake"
	if _, err := NewScene(cfg); !errors.Is(err, ErrUnknownSim) {
		t.Fatalf("got %v, want ErrUnknownSim", err)
	}
	cfg.Sim = "fall"
	cfg.Params["drops"] = "0"
	if _, err := NewScene(cfg); !errors.Is(err, droppool.ErrEmptyPool) {
		t.Fatalf("got %v, want wrapped ErrEmptyPool", err)
	}
}

func TestHeadlessPondDropDecays(t *testing.T) {
	cfg := config.Default()
	cfg.Params["w"] = "48"
	cfg.Params["h"] = "48"
	// falling leaves stay airborne for the whole run
	cfg.Params["leaf_restart_altitude"] = "1000"
	sim, err := NewScene(cfg)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	drops := map[int]core.Point{1: {X: 24, Y: 24}}
	sum, err := Headless(sim, 400, 60, false, drops, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Frames != 400 || sum.PeakEnergy <= 0 || sum.Splashes != 0 {
		t.Fatalf("summary %+v", sum)
	}
	if sum.DecayRatio > 0.01 {
		t.Fatalf("energy should decay below 1%% of its peak, ratio %v", sum.DecayRatio)
	}
	recs, err := telemetry.ReadTrace(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 400 || recs[399].Frame != 400 {
		t.Fatalf("trace has %d records", len(recs))
	}
	if recs[0].TimeMS != 16 {
		t.Fatalf("first frame time = %dms, want 16", recs[0].TimeMS)
	}
}

func TestHeadlessDeterministic(t *testing.T) {
	run := func() string {
		cfg := config.Default()
		cfg.Sim = "fall"
		sim, err := NewScene(cfg)
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if _, err := Headless(sim, 120, 30, false, map[int]core.Point{10: {X: 5, Y: 5}}, &buf); err != nil {
			t.Fatal(err)
		}
		return buf.String()
	}
	if run() != run() {
		t.Fatal("identical configs must produce identical traces")
	}
}
