package geom2d

import (
	"math"

	"github.com/chazu/geoq/pkg/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// Solver runs 2D queries under a tolerance.
type Solver struct {
	geom.Tolerance
}

// Default uses geom.Default.
var Default = Solver{Tolerance: geom.Default}

// New returns a solver using tol.
func New(tol geom.Tolerance) Solver {
	return Solver{Tolerance: tol}
}

// degenerate reports whether a line-like primitive has collapsed to its
// origin.
func (s Solver) degenerate(lin linear) bool {
	return s.Zero(r2.Norm2(lin.dir))
}

// parallel reports whether two non-zero directions are parallel, comparing
// the sine of the angle between them against epsilon.
func (s Solver) parallel(a, b r2.Vec) bool {
	return s.Zero(r2.Cross(a, b) / (r2.Norm(a) * r2.Norm(b)))
}

// crossing reports whether the Cramer solve applies to a and b. Directions
// within the angle test still cross when the pair is not collinear and
// the perp-dot is non-zero; long segments meet far from their origins.
func (s Solver) crossing(a, b linear) bool {
	if !s.parallel(a.dir, b.dir) {
		return true
	}
	return r2.Cross(a.dir, b.dir) != 0 && !s.collinear(a, b)
}

// collinear reports whether a and b share a supporting line: the origin
// and finite ends of each lie within epsilon of the other's line.
func (s Solver) collinear(a, b linear) bool {
	return s.endsOnLine(a, b) && s.endsOnLine(b, a)
}

func (s Solver) endsOnLine(a, b linear) bool {
	length := r2.Norm(a.dir)
	for _, t := range [...]float64{0, b.span.Min, b.span.Max} {
		if math.IsInf(t, 0) {
			continue
		}
		if !s.Zero(r2.Cross(a.dir, r2.Sub(b.at(t), a.origin)) / length) {
			return false
		}
	}
	return true
}

// project returns the point of lin nearest to p and its parameter.
func (s Solver) project(lin linear, p r2.Vec) (r2.Vec, float64) {
	if s.degenerate(lin) {
		return lin.origin, 0
	}
	t := lin.span.Clamp(r2.Dot(lin.dir, r2.Sub(p, lin.origin)) / r2.Norm2(lin.dir))
	return lin.at(t), t
}

// radial projects p onto the outline of the circle around center. A point
// at the center maps to the topmost point.
func (s Solver) radial(center r2.Vec, radius float64, p r2.Vec) r2.Vec {
	v := r2.Sub(p, center)
	n := r2.Norm(v)
	if s.Zero(n) {
		return r2.Add(center, r2.Scale(radius, up))
	}
	return r2.Add(center, r2.Scale(radius/n, v))
}

// chord locates the crossings of the line through lin with c.
func (s Solver) chord(lin linear, c Circle) geom.Chord {
	dd := r2.Norm2(lin.dir)
	toCenter := r2.Sub(c.Center, lin.origin)
	along := r2.Dot(lin.dir, toCenter)
	perpSq := r2.Norm2(toCenter) - along*along/dd
	if perpSq < 0 {
		perpSq = 0
	}
	return s.Chord(along/dd, perpSq, c.Radius, dd)
}
