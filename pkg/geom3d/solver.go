package geom3d

import (
	"github.com/chazu/geoq/pkg/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// Solver runs 3D queries under a tolerance.
type Solver struct {
	geom.Tolerance
}

var Default = Solver{Tolerance: geom.Default}

func New(tol geom.Tolerance) Solver {
	return Solver{Tolerance: tol}
}

func (s Solver) degenerate(lin linear) bool {
	return s.Zero(r3.Norm2(lin.dir))
}

func (s Solver) project(lin linear, p r3.Vec) (r3.Vec, float64) {
	if s.degenerate(lin) {
		return lin.origin, 0
	}
	t := lin.span.Clamp(r3.Dot(lin.dir, r3.Sub(p, lin.origin)) / r3.Norm2(lin.dir))
	return lin.at(t), t
}

// radial projects p onto the sphere around center. The center itself maps
// to the topmost point.
func (s Solver) radial(center r3.Vec, radius float64, p r3.Vec) r3.Vec {
	v := r3.Sub(p, center)
	n := r3.Norm(v)
	if s.Zero(n) {
		return r3.Add(center, r3.Scale(radius, up))
	}
	return r3.Add(center, r3.Scale(radius/n, v))
}

func (s Solver) chord(lin linear, sp Sphere) geom.Chord {
	dd := r3.Norm2(lin.dir)
	toCenter := r3.Sub(sp.Center, lin.origin)
	along := r3.Dot(lin.dir, toCenter)
	perpSq := r3.Norm2(toCenter) - along*along/dd
	if perpSq < 0 {
		perpSq = 0
	}
	return s.Chord(along/dd, perpSq, sp.Radius, dd)
}

// onLinear reports whether p lies within epsilon of lin.
func (s Solver) onLinear(lin linear, p r3.Vec) bool {
	toPoint := r3.Sub(p, lin.origin)
	if s.degenerate(lin) {
		return s.Zero(r3.Norm(toPoint))
	}
	length := r3.Norm(lin.dir)
	if !s.Zero(r3.Norm(r3.Cross(lin.dir, toPoint)) / length) {
		return false
	}
	along := r3.Dot(lin.dir, toPoint) / length
	return s.Within(along, lin.span.Min*length, lin.span.Max*length)
}
