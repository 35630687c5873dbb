package ripple

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one mesh vertex co-located with a grid cell. X and Y are fixed
// at construction; the remaining fields are rewritten by DeriveSurface.
type Vertex struct {
	X, Y, Z    float32
	S, T       float32
	NX, NY, NZ float32
}

func (v *Vertex) pos() mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }

// Vertices exposes the mesh in row-major order, one vertex per cell.
func (f *Field) Vertices() []Vertex { return f.verts }

// initMesh lays the vertices out over [-1, 1] horizontally and
// [-aspect, aspect] vertically, flat, with plain texture coordinates.
func (f *Field) initMesh() {
	w, h := f.cfg.Width, f.cfg.Height
	aspect := f.cfg.Aspect
	if aspect <= 0 {
		aspect = float32(h) / float32(w)
	}
	for y := 0; y < h; y++ {
		fy := (float32(y)/float32(h-1)*2 - 1) * aspect
		for x := 0; x < w; x++ {
			v := &f.verts[y*w+x]
			*v = Vertex{
				X:  float32(x)/float32(w-1)*2 - 1,
				Y:  fy,
				S:  float32(x) / float32(w),
				T:  float32(y) / float32(h),
				NZ: -1,
			}
		}
	}
}

// DeriveSurface rebuilds texture coordinates, z and normals from the
// current buffer.
func (f *Field) DeriveSurface() {
	switch f.cfg.Surface {
	case SurfaceRadial:
		f.radialPass()
	default:
		f.refractionPass()
	}
	f.normalPass()
}

// refractionPass offsets each vertex's texture coordinates by the apparent
// displacement of the riverbed seen through the local slope, and lifts z by
// the vertical slope.
func (f *Field) refractionPass() {
	w, h := f.cfg.Width, f.cfg.Height
	g := f.grid
	cur := g.Current()
	fw := 1 / float32(w)
	fh := 1 / float32(h)
	fz := 1 / (512 * f.cfg.RippleHeight)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			col := w - 1 - x
			wave := cur[g.Index(col, y)]
			dx := cur[g.Index(col-1, y)] - wave
			dy := cur[g.Index(col, y+1)] - wave
			fixedWave := toFixed(wave)

			u := int32(x) + f.refract(toFixed(dx), fixedWave)>>16
			u &^= u >> 31
			if u >= int32(w) {
				u = int32(w) - 1
			}
			v := int32(y) + f.refract(toFixed(dy), fixedWave)>>16
			v &^= v >> 31
			if v >= int32(h) {
				v = int32(h) - 1
			}

			vert := &f.verts[y*w+x]
			vert.S = float32(u) * fw
			vert.T = float32(v) * fh
			vert.Z = dy * fz
		}
	}
}

// radialPass animates a single ripple centred on the mesh, independent of
// the height field.
func (f *Field) radialPass() {
	w, h := f.cfg.Width, f.cfg.Height
	cx, cy := float32(w/2), float32(h/2)
	amp := f.cfg.RadialAmplitude
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := cx - float32(x)
			dy := cy - float32(y)
			dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
			vert := &f.verts[y*w+x]
			vert.Z = float32(math.Sin(float64(dist+f.phase))) * amp
			vert.S = float32(x) / float32(w)
			vert.T = float32(y) / float32(h)
		}
	}
	f.phase += f.cfg.RadialPhaseStep
}

// normalPass computes a lighting normal per vertex from the edges towards
// its right, lower and diagonal neighbours, then nudges the texture
// coordinates along it. The last row and column keep their previous normal.
func (f *Field) normalPass() {
	w, h := f.cfg.Width, f.cfg.Height
	nudge := f.cfg.NormalNudge
	for y := 0; y < h-1; y++ {
		for x := 0; x < w-1; x++ {
			i := y*w + x
			v := &f.verts[i]
			p := v.pos()

			right := f.verts[i+1].pos().Sub(p)
			below := f.verts[i+w].pos().Sub(p)
			n := right.Cross(below).Normalize()

			diag := f.verts[i+w+1].pos().Sub(p)
			n = n.Add(diag.Cross(below)).Normalize()

			v.NX = n[0]
			v.NY = n[1]
			v.NZ = -n[2]
			v.S += v.NX * nudge
			v.T += v.NY * nudge
		}
	}
}
