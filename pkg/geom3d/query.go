package geom3d

import (
	"math"

	"github.com/chazu/geoq/pkg/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// ---------------------------------------------------------------------------
// Closest points
// ---------------------------------------------------------------------------

func (s Solver) ClosestPointLine(p r3.Vec, l Line) (r3.Vec, float64) {
	return s.project(l.linear(), p)
}

func (s Solver) ClosestPointRay(p r3.Vec, r Ray) (r3.Vec, float64) {
	return s.project(r.linear(), p)
}

func (s Solver) ClosestPointSegment(p r3.Vec, seg Segment) (r3.Vec, float64) {
	return s.project(seg.linear(), p)
}

// ClosestPointSphere returns the point of sp's surface nearest to p.
func (s Solver) ClosestPointSphere(p r3.Vec, sp Sphere) r3.Vec {
	return s.radial(sp.Center, sp.Radius, p)
}

func (s Solver) ClosestLineSphere(a Line, sp Sphere) Pair {
	return s.closestLinearSphere(a.linear(), sp)
}

func (s Solver) ClosestRaySphere(a Ray, sp Sphere) Pair {
	return s.closestLinearSphere(a.linear(), sp)
}

func (s Solver) ClosestSegmentSphere(a Segment, sp Sphere) Pair {
	return s.closestLinearSphere(a.linear(), sp)
}

func (s Solver) closestLinearSphere(a linear, sp Sphere) Pair {
	if s.degenerate(a) {
		return Pair{A: a.origin, B: s.radial(sp.Center, sp.Radius, a.origin)}
	}
	t, on := s.Nearest(s.chord(a, sp), a.span)
	p := a.at(t)
	if on {
		return Pair{A: p, B: p}
	}
	return Pair{A: p, B: s.radial(sp.Center, sp.Radius, p)}
}

// ClosestSphereSphere mirrors geom2d's circle pair. Spheres meeting in a
// circle return the topmost point of that circle.
func (s Solver) ClosestSphereSphere(a, b Sphere) Pair {
	hit, nested := s.IntersectSphereSphere(a, b)
	switch hit.Kind {
	case geom.HitPoint:
		return Pair{A: hit.Center, B: hit.Center}
	case geom.HitParallel:
		p := r3.Add(a.Center, r3.Scale(a.Radius, up))
		return Pair{A: p, B: p}
	case geom.HitCircle:
		p := s.topOfCircle(hit)
		return Pair{A: p, B: p}
	}
	axis := r3.Sub(b.Center, a.Center)
	d := r3.Norm(axis)
	if s.Zero(d) {
		return Pair{
			A: r3.Add(a.Center, r3.Scale(a.Radius, up)),
			B: r3.Add(b.Center, r3.Scale(b.Radius, up)),
		}
	}
	n := r3.Scale(1/d, axis)
	switch {
	case !nested:
		return Pair{A: r3.Add(a.Center, r3.Scale(a.Radius, n)), B: r3.Sub(b.Center, r3.Scale(b.Radius, n))}
	case a.Radius > b.Radius:
		return Pair{A: r3.Add(a.Center, r3.Scale(a.Radius, n)), B: r3.Add(b.Center, r3.Scale(b.Radius, n))}
	default:
		return Pair{A: r3.Sub(a.Center, r3.Scale(a.Radius, n)), B: r3.Sub(b.Center, r3.Scale(b.Radius, n))}
	}
}

// topOfCircle picks the point of an intersection circle highest along +Y,
// or along +X when the circle lies flat.
func (s Solver) topOfCircle(h SphereHit) r3.Vec {
	dir := r3.Sub(up, r3.Scale(r3.Dot(up, h.Normal), h.Normal))
	if s.Zero(r3.Norm(dir)) {
		dir = r3.Sub(right, r3.Scale(r3.Dot(right, h.Normal), h.Normal))
	}
	return r3.Add(h.Center, r3.Scale(h.Radius, r3.Unit(dir)))
}

// ---------------------------------------------------------------------------
// Intersection
// ---------------------------------------------------------------------------

// PointOnLine reports whether p lies within epsilon of l.
func (s Solver) PointOnLine(p r3.Vec, l Line) bool {
	return s.onLinear(l.linear(), p)
}

func (s Solver) PointOnRay(p r3.Vec, r Ray) bool {
	return s.onLinear(r.linear(), p)
}

func (s Solver) PointOnSegment(p r3.Vec, seg Segment) bool {
	return s.onLinear(seg.linear(), p)
}

// PointInSphere reports whether p lies inside or on sp.
func (s Solver) PointInSphere(p r3.Vec, sp Sphere) bool {
	return r3.Norm(r3.Sub(p, sp.Center)) < sp.Radius+s.Epsilon
}

func (s Solver) IntersectLineSphere(a Line, sp Sphere) (Hit, bool) {
	return s.intersectLinearSphere(a.linear(), sp)
}

func (s Solver) IntersectRaySphere(a Ray, sp Sphere) (Hit, bool) {
	return s.intersectLinearSphere(a.linear(), sp)
}

// IntersectSegmentSphere classifies a segment against a sphere. A segment
// strictly inside the sphere is HitNone but reports true.
func (s Solver) IntersectSegmentSphere(a Segment, sp Sphere) (Hit, bool) {
	return s.intersectLinearSphere(a.linear(), sp)
}

func (s Solver) intersectLinearSphere(a linear, sp Sphere) (Hit, bool) {
	if s.degenerate(a) {
		dist := r3.Norm(r3.Sub(a.origin, sp.Center))
		switch {
		case s.Equal(dist, sp.Radius):
			return pointHit(a.origin, 0), true
		case dist < sp.Radius:
			return Hit{}, true
		}
		return Hit{}, false
	}
	kind, t0, t1, touching := s.Clip(s.chord(a, sp), a.span)
	switch kind {
	case geom.HitPoint:
		return pointHit(a.at(t0), t0), true
	case geom.HitSegment:
		return Hit{Kind: geom.HitSegment, A: a.at(t0), B: a.at(t1), TA: t0, TB: t1}, true
	}
	return Hit{}, touching
}

// IntersectSphereSphere classifies two sphere surfaces with the same case
// split as geom2d's circles; two crossing spheres meet in a circle.
func (s Solver) IntersectSphereSphere(a, b Sphere) (SphereHit, bool) {
	axis := r3.Sub(b.Center, a.Center)
	d := r3.Norm(axis)
	if s.Zero(d) {
		if s.Equal(a.Radius, b.Radius) {
			return SphereHit{Kind: geom.HitParallel, Center: a.Center, Radius: a.Radius}, true
		}
		return SphereHit{}, true
	}
	n := r3.Scale(1/d, axis)
	sum := a.Radius + b.Radius
	diff := math.Abs(a.Radius - b.Radius)
	switch {
	case s.Equal(d, sum):
		p := r3.Add(a.Center, r3.Scale(d*a.Radius/sum, n))
		return SphereHit{Kind: geom.HitPoint, Center: p, Normal: n}, true
	case d > sum:
		return SphereHit{}, false
	case s.Equal(d, diff):
		p := r3.Add(a.Center, r3.Scale(a.Radius, n))
		if a.Radius < b.Radius {
			p = r3.Sub(a.Center, r3.Scale(a.Radius, n))
		}
		return SphereHit{Kind: geom.HitPoint, Center: p, Normal: n}, true
	case d < diff:
		return SphereHit{}, true
	}
	along := 0.5*(a.Radius*a.Radius-b.Radius*b.Radius)/d + 0.5*d
	return SphereHit{
		Kind:   geom.HitCircle,
		Center: r3.Add(a.Center, r3.Scale(along, n)),
		Normal: n,
		Radius: math.Sqrt(math.Max(0, a.Radius*a.Radius-along*along)),
	}, true
}

// ---------------------------------------------------------------------------
// Distance
// ---------------------------------------------------------------------------

func (s Solver) DistancePointLine(p r3.Vec, l Line) float64 {
	q, _ := s.ClosestPointLine(p, l)
	return r3.Norm(r3.Sub(p, q))
}

func (s Solver) DistancePointRay(p r3.Vec, r Ray) float64 {
	q, _ := s.ClosestPointRay(p, r)
	return r3.Norm(r3.Sub(p, q))
}

func (s Solver) DistancePointSegment(p r3.Vec, seg Segment) float64 {
	q, _ := s.ClosestPointSegment(p, seg)
	return r3.Norm(r3.Sub(p, q))
}

func (s Solver) DistancePointSphere(p r3.Vec, sp Sphere) float64 {
	return math.Abs(r3.Norm(r3.Sub(p, sp.Center)) - sp.Radius)
}

func (s Solver) DistanceLineSphere(a Line, sp Sphere) float64 {
	return s.ClosestLineSphere(a, sp).Distance()
}

func (s Solver) DistanceRaySphere(a Ray, sp Sphere) float64 {
	return s.ClosestRaySphere(a, sp).Distance()
}

func (s Solver) DistanceSegmentSphere(a Segment, sp Sphere) float64 {
	return s.ClosestSegmentSphere(a, sp).Distance()
}

func (s Solver) DistanceSphereSphere(a, b Sphere) float64 {
	return s.ClosestSphereSphere(a, b).Distance()
}
