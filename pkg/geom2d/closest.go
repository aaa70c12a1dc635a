package geom2d

import (
	"github.com/chazu/geoq/pkg/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// ---------------------------------------------------------------------------
// Point queries
// ---------------------------------------------------------------------------

// ClosestPointLine returns the point of l nearest to p and its parameter.
func (s Solver) ClosestPointLine(p r2.Vec, l Line) (r2.Vec, float64) {
	return s.project(l.linear(), p)
}

// ClosestPointRay returns the point of r nearest to p and its parameter.
func (s Solver) ClosestPointRay(p r2.Vec, r Ray) (r2.Vec, float64) {
	return s.project(r.linear(), p)
}

// ClosestPointSegment returns the point of seg nearest to p and its
// parameter. A zero-length segment yields Start.
func (s Solver) ClosestPointSegment(p r2.Vec, seg Segment) (r2.Vec, float64) {
	return s.project(seg.linear(), p)
}

// ClosestPointCircle returns the point of the outline of c nearest to p.
// A point at the center maps to the topmost point of the circle.
func (s Solver) ClosestPointCircle(p r2.Vec, c Circle) r2.Vec {
	return s.radial(c.Center, c.Radius, p)
}

// ---------------------------------------------------------------------------
// Line-like pairs
// ---------------------------------------------------------------------------

// ClosestLineLine returns the closest points of two lines. Parallel lines
// pair a's Position with its projection onto b.
func (s Solver) ClosestLineLine(a, b Line) Pair {
	return s.closestLinear(a.linear(), b.linear())
}

func (s Solver) ClosestLineRay(a Line, b Ray) Pair {
	return s.closestLinear(a.linear(), b.linear())
}

func (s Solver) ClosestLineSegment(a Line, b Segment) Pair {
	return s.closestLinear(a.linear(), b.linear())
}

func (s Solver) ClosestRayRay(a, b Ray) Pair {
	return s.closestLinear(a.linear(), b.linear())
}

func (s Solver) ClosestRaySegment(a Ray, b Segment) Pair {
	return s.closestLinear(a.linear(), b.linear())
}

// ClosestSegmentSegment returns the closest points of two segments. For
// overlapping collinear segments the overlap point nearest a.Start wins.
func (s Solver) ClosestSegmentSegment(a, b Segment) Pair {
	return s.closestLinear(a.linear(), b.linear())
}

// closestLinear solves the closest points of two line-like primitives.
// Non-parallel pairs start from the intersection of the supporting lines
// and re-project after clamping: clamp a, project onto b, then project
// back onto a.
func (s Solver) closestLinear(a, b linear) Pair {
	switch {
	case s.degenerate(a):
		pb, _ := s.project(b, a.origin)
		return Pair{A: a.origin, B: pb}
	case s.degenerate(b):
		pa, _ := s.project(a, b.origin)
		return Pair{A: pa, B: b.origin}
	}
	if !s.crossing(a, b) {
		return s.closestParallel(a, b)
	}
	w := r2.Sub(a.origin, b.origin)
	ta := a.span.Clamp(r2.Cross(b.dir, w) / r2.Cross(a.dir, b.dir))
	pb, _ := s.project(b, a.at(ta))
	pa, _ := s.project(a, pb)
	return Pair{A: pa, B: pb}
}

// closestParallel handles parallel pairs. The gap between the supporting
// lines is constant, so collinear and offset pairs resolve the same way:
// map b's span into a's parameters and pick the overlap parameter nearest
// a's origin, or a's end facing b when the spans are disjoint.
func (s Solver) closestParallel(a, b linear) Pair {
	mapped := s.mapSpan(a, b)
	var ta float64
	if overlap, ok := s.Overlap(a.span, mapped); ok {
		ta = overlap.Anchor()
	} else if mapped.Max < a.span.Min {
		ta = a.span.Min
	} else {
		ta = a.span.Max
	}
	pa := a.at(ta)
	pb, _ := s.project(b, pa)
	return Pair{A: pa, B: pb}
}

// mapSpan expresses b's span in a's parameters. The directions must be
// parallel.
func (s Solver) mapSpan(a, b linear) geom.Span {
	dd := r2.Norm2(a.dir)
	offset := r2.Dot(a.dir, r2.Sub(b.origin, a.origin)) / dd
	scale := r2.Dot(a.dir, b.dir) / dd
	return b.span.Map(offset, scale)
}

// ---------------------------------------------------------------------------
// Circle pairs
// ---------------------------------------------------------------------------

func (s Solver) ClosestLineCircle(a Line, c Circle) Pair {
	return s.closestLinearCircle(a.linear(), c)
}

func (s Solver) ClosestRayCircle(a Ray, c Circle) Pair {
	return s.closestLinearCircle(a.linear(), c)
}

func (s Solver) ClosestSegmentCircle(a Segment, c Circle) Pair {
	return s.closestLinearCircle(a.linear(), c)
}

// closestLinearCircle returns the first crossing when the primitive
// crosses or touches the outline. A segment inside the disk yields its end
// farther from the center and that end's radial projection. Otherwise the
// primitive point nearest the center is projected onto the outline.
func (s Solver) closestLinearCircle(a linear, c Circle) Pair {
	if s.degenerate(a) {
		return Pair{A: a.origin, B: s.radial(c.Center, c.Radius, a.origin)}
	}
	t, on := s.Nearest(s.chord(a, c), a.span)
	p := a.at(t)
	if on {
		return Pair{A: p, B: p}
	}
	return Pair{A: p, B: s.radial(c.Center, c.Radius, p)}
}

// ClosestCircleCircle returns the closest points of two circle outlines.
// Circles sharing a point return that point twice. Separate circles face
// each other along the center axis; nested ones pair their outlines on
// the side where the inner circle is nearest the outer. Concentric
// circles use the topmost points.
func (s Solver) ClosestCircleCircle(a, b Circle) Pair {
	hit, nested := s.IntersectCircleCircle(a, b)
	switch hit.Kind {
	case geom.HitPoint, geom.HitParallel:
		return Pair{A: hit.A, B: hit.A}
	case geom.HitSegment:
		p := s.lowest(hit.A, hit.B)
		return Pair{A: p, B: p}
	}
	axis := r2.Sub(b.Center, a.Center)
	d := r2.Norm(axis)
	if s.Zero(d) {
		return Pair{
			A: r2.Add(a.Center, r2.Scale(a.Radius, up)),
			B: r2.Add(b.Center, r2.Scale(b.Radius, up)),
		}
	}
	n := r2.Scale(1/d, axis)
	switch {
	case !nested:
		return Pair{A: r2.Add(a.Center, r2.Scale(a.Radius, n)), B: r2.Sub(b.Center, r2.Scale(b.Radius, n))}
	case a.Radius > b.Radius:
		return Pair{A: r2.Add(a.Center, r2.Scale(a.Radius, n)), B: r2.Add(b.Center, r2.Scale(b.Radius, n))}
	default:
		return Pair{A: r2.Sub(a.Center, r2.Scale(a.Radius, n)), B: r2.Sub(b.Center, r2.Scale(b.Radius, n))}
	}
}

// lowest orders points by Y then X so that a choice between two crossings
// does not depend on argument order.
func (s Solver) lowest(p, q r2.Vec) r2.Vec {
	if s.Less(q.Y, p.Y) || (s.Equal(q.Y, p.Y) && q.X < p.X) {
		return q
	}
	return p
}
