package telemetry

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary reduces a run to a few figures for the end-of-run log line.
type Summary struct {
	Frames      int
	MeanEnergy  float64
	StdEnergy   float64
	PeakEnergy  float64
	FinalEnergy float64
	// DecayRatio is final over peak energy; 0 when the run never moved.
	DecayRatio float64
	MeanActive float64
	MaxActive  int
	Splashes   int
	Respawns   int
}

// Summarize computes the run summary. An empty run yields the zero Summary.
func Summarize(recs []FrameRecord) Summary {
	if len(recs) == 0 {
		return Summary{}
	}
	energy := make([]float64, len(recs))
	active := make([]float64, len(recs))
	s := Summary{Frames: len(recs)}
	for i, r := range recs {
		energy[i] = r.Energy
		active[i] = float64(r.Active)
		s.Splashes += r.Splashes
		s.Respawns += r.Respawned
	}
	s.MeanEnergy, s.StdEnergy = stat.MeanStdDev(energy, nil)
	s.PeakEnergy = floats.Max(energy)
	s.FinalEnergy = energy[len(energy)-1]
	if s.PeakEnergy > 0 {
		s.DecayRatio = s.FinalEnergy / s.PeakEnergy
	}
	s.MeanActive = stat.Mean(active, nil)
	s.MaxActive = int(floats.Max(active))
	return s
}
