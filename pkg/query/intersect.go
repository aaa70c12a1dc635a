package query

import (
	"github.com/chazu/geoq/pkg/geom"
	"github.com/chazu/geoq/pkg/geom2d"
	"github.com/chazu/geoq/pkg/geom3d"
	"github.com/chazu/geoq/pkg/scene"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func hit2(h geom2d.Hit, touching bool) Result {
	res := Result{Kind: h.Kind, Touching: touching}
	for _, p := range h.Points() {
		res.Points = append(res.Points, flat2(p))
	}
	return res
}

func hit3(h geom3d.Hit, touching bool) Result {
	res := Result{Kind: h.Kind, Touching: touching}
	for _, p := range h.Points() {
		res.Points = append(res.Points, flat3(p))
	}
	return res
}

// pointResult reports a point test: HitPoint with the point when on is
// set, HitNone otherwise.
func pointResult(p []float64, on, touching bool) Result {
	if on {
		return Result{Kind: geom.HitPoint, Touching: true, Points: [][]float64{p}}
	}
	return Result{Kind: geom.HitNone, Touching: touching}
}

func (r *Runner) intersect(a, b *scene.Shape) (Result, error) {
	x, y, _, err := checkPair(a, b)
	if err != nil {
		return Result{}, err
	}
	if x.Dim == 2 {
		return r.intersect2(x, y)
	}
	return r.intersect3(x, y)
}

func (r *Runner) intersect2(x, y *scene.Shape) (Result, error) {
	s := r.Solver2
	if x.Kind == scene.KindPoint {
		p := x.Vec2()
		switch y.Kind {
		case scene.KindPoint:
			on := s.Zero(r2.Norm(r2.Sub(p, y.Vec2())))
			return pointResult(flat2(p), on, on), nil
		case scene.KindLine:
			return pointResult(flat2(p), s.PointOnLine(p, y.Line2()), false), nil
		case scene.KindRay:
			return pointResult(flat2(p), s.PointOnRay(p, y.Ray2()), false), nil
		case scene.KindSegment:
			return pointResult(flat2(p), s.PointOnSegment(p, y.Segment2()), false), nil
		case scene.KindCircle:
			c := y.Circle()
			return pointResult(flat2(p), s.Equal(r2.Norm(r2.Sub(p, c.Center)), c.Radius), s.PointInCircle(p, c)), nil
		}
		return Result{}, unsupported(x, y)
	}

	switch x.Kind {
	case scene.KindLine:
		l := x.Line2()
		switch y.Kind {
		case scene.KindLine:
			return hit2(s.IntersectLineLine(l, y.Line2())), nil
		case scene.KindRay:
			return hit2(s.IntersectLineRay(l, y.Ray2())), nil
		case scene.KindSegment:
			return hit2(s.IntersectLineSegment(l, y.Segment2())), nil
		case scene.KindCircle:
			return hit2(s.IntersectLineCircle(l, y.Circle())), nil
		}
	case scene.KindRay:
		ray := x.Ray2()
		switch y.Kind {
		case scene.KindRay:
			return hit2(s.IntersectRayRay(ray, y.Ray2())), nil
		case scene.KindSegment:
			return hit2(s.IntersectRaySegment(ray, y.Segment2())), nil
		case scene.KindCircle:
			return hit2(s.IntersectRayCircle(ray, y.Circle())), nil
		}
	case scene.KindSegment:
		seg := x.Segment2()
		switch y.Kind {
		case scene.KindSegment:
			return hit2(s.IntersectSegmentSegment(seg, y.Segment2())), nil
		case scene.KindCircle:
			return hit2(s.IntersectSegmentCircle(seg, y.Circle())), nil
		}
	case scene.KindCircle:
		if y.Kind == scene.KindCircle {
			return hit2(s.IntersectCircleCircle(x.Circle(), y.Circle())), nil
		}
	}
	return Result{}, unsupported(x, y)
}

func (r *Runner) intersect3(x, y *scene.Shape) (Result, error) {
	s := r.Solver3
	if x.Kind == scene.KindPoint {
		p := x.Vec3()
		switch y.Kind {
		case scene.KindPoint:
			on := s.Zero(r3.Norm(r3.Sub(p, y.Vec3())))
			return pointResult(flat3(p), on, on), nil
		case scene.KindLine:
			return pointResult(flat3(p), s.PointOnLine(p, y.Line3()), false), nil
		case scene.KindRay:
			return pointResult(flat3(p), s.PointOnRay(p, y.Ray3()), false), nil
		case scene.KindSegment:
			return pointResult(flat3(p), s.PointOnSegment(p, y.Segment3()), false), nil
		case scene.KindSphere:
			sp := y.Sphere()
			return pointResult(flat3(p), s.Equal(r3.Norm(r3.Sub(p, sp.Center)), sp.Radius), s.PointInSphere(p, sp)), nil
		}
		return Result{}, unsupported(x, y)
	}
	if y.Kind != scene.KindSphere {
		return Result{}, unsupported(x, y)
	}
	sp := y.Sphere()
	switch x.Kind {
	case scene.KindLine:
		return hit3(s.IntersectLineSphere(x.Line3(), sp)), nil
	case scene.KindRay:
		return hit3(s.IntersectRaySphere(x.Ray3(), sp)), nil
	case scene.KindSegment:
		return hit3(s.IntersectSegmentSphere(x.Segment3(), sp)), nil
	case scene.KindSphere:
		h, touching := s.IntersectSphereSphere(x.Sphere(), sp)
		res := Result{Kind: h.Kind, Touching: touching}
		switch h.Kind {
		case geom.HitPoint:
			res.Points = [][]float64{flat3(h.Center)}
		case geom.HitCircle:
			res.Circle = &Circle{Center: flat3(h.Center), Normal: flat3(h.Normal), Radius: h.Radius}
		}
		return res, nil
	}
	return Result{}, unsupported(x, y)
}
