package ripple

import "math"

const (
	refractionMax     = 512
	refractionSamples = refractionMax + 1
	fixedOne          = 1 << 16
	maxFixed          = 1 << 30
)

// buildRefractionTable precomputes, for a surface slope of i/256, the
// tangent of the refracted ray by Snell's law, in 16.16 fixed point.
func buildRefractionTable(index float64) []int32 {
	table := make([]int32, refractionSamples)
	ir := 1 / index
	for i := range table {
		slope := math.Atan(float64(i) / 256)
		d := math.Tan(math.Asin(math.Sin(slope) * ir))
		table[i] = int32(math.Floor(d*fixedOne + 0.5))
	}
	return table
}

// toFixed truncates a height to int32, saturating far outside the range any
// realistic field reaches.
func toFixed(v float32) int32 {
	if v > maxFixed {
		return maxFixed
	}
	if v < -maxFixed {
		return -maxFixed
	}
	return int32(v)
}

// refract maps a height delta d at a cell of height wave to an apparent
// displacement in 16.16 fixed point. The wave weight is masked to zero for
// troughs deeper than one unit without a branch.
func (f *Field) refract(d, wave int32) int32 {
	i := d
	if i < 0 {
		i = -i
	}
	if i > refractionMax {
		i = refractionMax
	}
	w := (wave + fixedOne) >> 8
	w &^= w >> 31
	r64 := (int64(f.refraction[i]) * int64(w)) >> 3
	if r64 > math.MaxInt32 {
		r64 = math.MaxInt32
	}
	r := int32(r64)
	if d < 0 {
		return -r
	}
	return r
}
