package geom2d

import (
	"math"

	"github.com/chazu/geoq/pkg/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// ---------------------------------------------------------------------------
// Point tests
// ---------------------------------------------------------------------------

// PointOnLine reports whether p lies within epsilon of l.
func (s Solver) PointOnLine(p r2.Vec, l Line) bool {
	return s.PointLineSide(p, l) == 0
}

// PointLineSide returns +1 when p lies left of l (counter-clockwise from
// its direction), -1 when it lies right and 0 when it is on the line.
func (s Solver) PointLineSide(p r2.Vec, l Line) int {
	return s.side(l.linear(), p)
}

// PointOnRay reports whether p lies within epsilon of r.
func (s Solver) PointOnRay(p r2.Vec, r Ray) bool {
	_, on := s.PointRaySide(p, r)
	return on
}

// PointRaySide returns the side of p relative to the line through r and
// whether p lies on the ray itself.
func (s Solver) PointRaySide(p r2.Vec, r Ray) (int, bool) {
	return s.sideOn(r.linear(), p)
}

// PointOnSegment reports whether p lies within epsilon of seg.
func (s Solver) PointOnSegment(p r2.Vec, seg Segment) bool {
	_, on := s.PointSegmentSide(p, seg)
	return on
}

// PointSegmentSide returns the side of p relative to the line through seg
// and whether p lies on the segment itself. A zero-length segment has no
// sides.
func (s Solver) PointSegmentSide(p r2.Vec, seg Segment) (int, bool) {
	return s.sideOn(seg.linear(), p)
}

// PointInCircle reports whether p lies inside or on c.
func (s Solver) PointInCircle(p r2.Vec, c Circle) bool {
	return r2.Norm(r2.Sub(p, c.Center)) < c.Radius+s.Epsilon
}

// side compares the perpendicular distance of p from the line through lin
// against epsilon.
func (s Solver) side(lin linear, p r2.Vec) int {
	if s.degenerate(lin) {
		return 0
	}
	return s.Sign(r2.Cross(lin.dir, r2.Sub(p, lin.origin)) / r2.Norm(lin.dir))
}

// sideOn returns the side of p and whether p lies on lin, measuring the
// range check in distance units along the direction.
func (s Solver) sideOn(lin linear, p r2.Vec) (int, bool) {
	toPoint := r2.Sub(p, lin.origin)
	if s.degenerate(lin) {
		return 0, s.Zero(r2.Norm(toPoint))
	}
	side := s.side(lin, p)
	if side != 0 {
		return side, false
	}
	length := r2.Norm(lin.dir)
	along := r2.Dot(lin.dir, toPoint) / length
	return 0, s.Within(along, lin.span.Min*length, lin.span.Max*length)
}

// ---------------------------------------------------------------------------
// Line-like pairs
// ---------------------------------------------------------------------------

// IntersectLineLine classifies two lines. Crossing lines give HitPoint,
// coincident lines HitParallel and offset parallel lines HitNone. The
// boolean reports whether the primitives share a point.
func (s Solver) IntersectLineLine(a, b Line) (Hit, bool) {
	return s.intersectLinear(a.linear(), b.linear())
}

// IntersectLineRay classifies a line and a ray. A ray lying on the line
// gives HitParallel.
func (s Solver) IntersectLineRay(a Line, b Ray) (Hit, bool) {
	return s.intersectLinear(a.linear(), b.linear())
}

// IntersectLineSegment classifies a line and a segment. A segment lying on
// the line gives HitSegment with the ends ordered along the line.
func (s Solver) IntersectLineSegment(a Line, b Segment) (Hit, bool) {
	return s.intersectLinear(a.linear(), b.linear())
}

// IntersectRayRay classifies two rays. Collinear rays pointing the same
// way give HitParallel; opposed ones give HitSegment between the origins,
// HitPoint when the origins coincide, or HitNone when they face away.
func (s Solver) IntersectRayRay(a, b Ray) (Hit, bool) {
	return s.intersectLinear(a.linear(), b.linear())
}

func (s Solver) IntersectRaySegment(a Ray, b Segment) (Hit, bool) {
	return s.intersectLinear(a.linear(), b.linear())
}

// IntersectSegmentSegment classifies two segments. Collinear overlaps give
// HitSegment, or HitPoint when the segments only touch end to end.
func (s Solver) IntersectSegmentSegment(a, b Segment) (Hit, bool) {
	return s.intersectLinear(a.linear(), b.linear())
}

func (s Solver) intersectLinear(a, b linear) (Hit, bool) {
	switch {
	case s.degenerate(a):
		if _, on := s.sideOn(b, a.origin); on {
			return pointHit(a.origin, 0), true
		}
		return Hit{}, false
	case s.degenerate(b):
		if _, on := s.sideOn(a, b.origin); on {
			_, t := s.project(a, b.origin)
			return pointHit(b.origin, t), true
		}
		return Hit{}, false
	}
	if !s.crossing(a, b) {
		return s.intersectCollinear(a, b)
	}
	w := r2.Sub(a.origin, b.origin)
	denom := r2.Cross(a.dir, b.dir)
	ta := r2.Cross(b.dir, w) / denom
	tb := r2.Cross(a.dir, w) / denom
	if s.Contains(a.span, ta) && s.Contains(b.span, tb) {
		return pointHit(a.at(ta), ta), true
	}
	return Hit{}, false
}

// intersectCollinear classifies parallel pairs by the overlap of their
// spans on the shared line. Overlap lengths are compared in distance
// units, so a's parameter tolerance is epsilon over its length.
func (s Solver) intersectCollinear(a, b linear) (Hit, bool) {
	if !s.collinear(a, b) {
		return Hit{}, false
	}
	length := r2.Norm(a.dir)
	param := geom.Tolerance{Epsilon: s.Epsilon / length}
	overlap, ok := param.Overlap(a.span, s.mapSpan(a, b))
	switch {
	case !ok:
		return Hit{}, false
	case !overlap.Bounded():
		t := overlap.Anchor()
		p := a.at(t)
		return Hit{Kind: geom.HitParallel, A: p, B: p, TA: t, TB: t}, true
	case s.Zero((overlap.Max - overlap.Min) * length):
		return pointHit(a.at(overlap.Min), overlap.Min), true
	}
	return Hit{
		Kind: geom.HitSegment,
		A:    a.at(overlap.Min),
		B:    a.at(overlap.Max),
		TA:   overlap.Min,
		TB:   overlap.Max,
	}, true
}

// ---------------------------------------------------------------------------
// Circle pairs
// ---------------------------------------------------------------------------

// IntersectLineCircle classifies a line against a circle: HitSegment with
// the two crossings, HitPoint for a tangent, HitNone otherwise.
func (s Solver) IntersectLineCircle(a Line, c Circle) (Hit, bool) {
	return s.intersectLinearCircle(a.linear(), c)
}

// IntersectRayCircle classifies a ray against a circle. A ray starting
// inside the circle crosses it once.
func (s Solver) IntersectRayCircle(a Ray, c Circle) (Hit, bool) {
	return s.intersectLinearCircle(a.linear(), c)
}

// IntersectSegmentCircle classifies a segment against a circle. A segment
// lying strictly inside the circle is HitNone but reports true.
func (s Solver) IntersectSegmentCircle(a Segment, c Circle) (Hit, bool) {
	return s.intersectLinearCircle(a.linear(), c)
}

func (s Solver) intersectLinearCircle(a linear, c Circle) (Hit, bool) {
	if s.degenerate(a) {
		dist := r2.Norm(r2.Sub(a.origin, c.Center))
		switch {
		case s.Equal(dist, c.Radius):
			return pointHit(a.origin, 0), true
		case dist < c.Radius:
			return Hit{}, true
		}
		return Hit{}, false
	}
	kind, t0, t1, touching := s.Clip(s.chord(a, c), a.span)
	switch kind {
	case geom.HitPoint:
		return pointHit(a.at(t0), t0), true
	case geom.HitSegment:
		return Hit{Kind: geom.HitSegment, A: a.at(t0), B: a.at(t1), TA: t0, TB: t1}, true
	}
	return Hit{}, touching
}

// IntersectCircleCircle classifies two circle outlines by the distance d
// between the centers:
//
//   - concentric with equal radii: HitParallel (coincident)
//   - concentric otherwise: HitNone
//   - d = rA+rB: HitPoint, external tangent
//   - d > rA+rB: HitNone, separate
//   - d = |rA-rB|: HitPoint, internal tangent
//   - d < |rA-rB|: HitNone, one circle inside the other (reports true)
//   - otherwise HitSegment with the two crossings
func (s Solver) IntersectCircleCircle(a, b Circle) (Hit, bool) {
	axis := r2.Sub(b.Center, a.Center)
	d := r2.Norm(axis)
	if s.Zero(d) {
		if s.Equal(a.Radius, b.Radius) {
			p := r2.Add(a.Center, r2.Scale(a.Radius, up))
			return Hit{Kind: geom.HitParallel, A: p, B: p}, true
		}
		return Hit{}, true
	}
	n := r2.Scale(1/d, axis)
	sum := a.Radius + b.Radius
	diff := a.Radius - b.Radius
	if diff < 0 {
		diff = -diff
	}
	switch {
	case s.Equal(d, sum):
		p := r2.Add(a.Center, r2.Scale(d*a.Radius/sum, n))
		return Hit{Kind: geom.HitPoint, A: p, B: p}, true
	case d > sum:
		return Hit{}, false
	case s.Equal(d, diff):
		p := r2.Add(a.Center, r2.Scale(a.Radius, n))
		if a.Radius < b.Radius {
			p = r2.Sub(a.Center, r2.Scale(a.Radius, n))
		}
		return Hit{Kind: geom.HitPoint, A: p, B: p}, true
	case d < diff:
		return Hit{}, true
	}
	along := 0.5*(a.Radius*a.Radius-b.Radius*b.Radius)/d + 0.5*d
	hSq := a.Radius*a.Radius - along*along
	if hSq < 0 {
		hSq = 0
	}
	mid := r2.Add(a.Center, r2.Scale(along, n))
	offset := r2.Scale(math.Sqrt(hSq), r2.Vec{X: -n.Y, Y: n.X})
	return Hit{Kind: geom.HitSegment, A: r2.Add(mid, offset), B: r2.Sub(mid, offset)}, true
}
