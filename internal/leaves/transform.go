package leaves

import "github.com/go-gl/mathgl/mgl32"

// Transform is what a renderer needs to draw one leaf and, while airborne,
// its shadow on the water.
type Transform struct {
	Index       int
	Model       mgl32.Mat4
	Shadow      mgl32.Mat4
	Alpha       float32
	ShadowAlpha float32
	U1, U2      float32
	Airborne    bool
}

// Transforms appends one Transform per leaf in draw order to dst[:0].
func (p *Pool) Transforms(dst []Transform) []Transform {
	dst = dst[:0]
	for _, idx := range p.order {
		l := &p.store[idx]
		t := Transform{Index: idx, Alpha: 1, U1: l.U1, U2: l.U2}
		var tz float32
		if l.Airborne() {
			tz = -l.Altitude
			t.Airborne = true
			t.Alpha = p.alpha(l.Altitude)
			t.ShadowAlpha = t.Alpha * shadowAlpha
			t.Shadow = model(l, 0)
		}
		t.Model = model(l, tz)
		dst = append(dst, t)
	}
	return dst
}

func (p *Pool) alpha(a float32) float32 {
	if a < fadeThreshold {
		return 1
	}
	return mgl32.Clamp(1-(a-p.cfg.FadeFrom)/fadeSpan, 0, 1)
}

func model(l *Leaf, z float32) mgl32.Mat4 {
	return mgl32.Translate3D(l.X, l.Y, z).
		Mul4(mgl32.Scale3D(l.Scale, l.Scale, 1)).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(l.Angle)))
}

// Quad returns the corners of a leaf sprite in model space.
func (p *Pool) Quad() [4]mgl32.Vec3 {
	s := p.cfg.LeafSize
	return [4]mgl32.Vec3{{-s, -s, 0}, {s, -s, 0}, {s, s, 0}, {-s, s, 0}}
}
