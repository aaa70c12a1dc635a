package geom3d

import (
	"github.com/chazu/geoq/pkg/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// Pair holds the closest points of two primitives, A on the first query
// argument and B on the second.
type Pair struct {
	A, B r3.Vec
}

func (p Pair) Distance() float64 {
	return r3.Norm(r3.Sub(p.A, p.B))
}

func (p Pair) Swap() Pair {
	return Pair{A: p.B, B: p.A}
}

// Hit is the result of a line-like versus sphere query, laid out like
// geom2d.Hit.
type Hit struct {
	Kind   geom.HitKind
	A, B   r3.Vec
	TA, TB float64
}

// Points returns the points the hit reports.
func (h Hit) Points() []r3.Vec {
	switch h.Kind {
	case geom.HitPoint:
		return []r3.Vec{h.A}
	case geom.HitSegment:
		return []r3.Vec{h.A, h.B}
	}
	return nil
}

// SphereHit describes how two sphere surfaces meet. For HitPoint, Center
// is the touching point. For HitCircle, Center, Normal and Radius give the
// intersection circle, Normal pointing from the first center to the
// second. For HitParallel the spheres coincide and Center, Radius repeat
// the first sphere.
type SphereHit struct {
	Kind   geom.HitKind
	Center r3.Vec
	Normal r3.Vec
	Radius float64
}

func pointHit(p r3.Vec, t float64) Hit {
	return Hit{Kind: geom.HitPoint, A: p, B: p, TA: t, TB: t}
}
