package geom2d

import (
	"github.com/chazu/geoq/pkg/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// Pair holds the closest points of two primitives, A on the first query
// argument and B on the second.
type Pair struct {
	A, B r2.Vec
}

// Distance returns |A-B|.
func (p Pair) Distance() float64 {
	return r2.Norm(r2.Sub(p.A, p.B))
}

// Swap exchanges A and B.
func (p Pair) Swap() Pair {
	return Pair{A: p.B, B: p.A}
}

// Hit is the result of an intersection query.
//
// For HitPoint, A (and B) is the shared point and TA (and TB) its
// parameter along the first argument. For HitSegment, A and B bound the
// overlap with parameters TA and TB. For HitParallel, A is a reference
// point of the unbounded overlap, the first argument's defining point
// when it lies in the overlap. Parameters are zero for circle pairs.
type Hit struct {
	Kind   geom.HitKind
	A, B   r2.Vec
	TA, TB float64
}

// Points returns the points the hit reports: one for HitPoint and
// HitParallel, two for HitSegment, none otherwise.
func (h Hit) Points() []r2.Vec {
	switch h.Kind {
	case geom.HitPoint, geom.HitParallel:
		return []r2.Vec{h.A}
	case geom.HitSegment:
		return []r2.Vec{h.A, h.B}
	}
	return nil
}

func pointHit(p r2.Vec, t float64) Hit {
	return Hit{Kind: geom.HitPoint, A: p, B: p, TA: t, TB: t}
}
