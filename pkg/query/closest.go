package query

import (
	"math"

	"github.com/chazu/geoq/pkg/scene"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

type pointPair struct {
	a, b []float64
}

func (p pointPair) distance() float64 {
	var sum float64
	for i := range p.a {
		d := p.a[i] - p.b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func (p pointPair) swap() pointPair { return pointPair{a: p.b, b: p.a} }

func flat2(v r2.Vec) []float64 { return []float64{v.X, v.Y} }
func flat3(v r3.Vec) []float64 { return []float64{v.X, v.Y, v.Z} }

func pair2(a, b r2.Vec) pointPair { return pointPair{a: flat2(a), b: flat2(b)} }
func pair3(a, b r3.Vec) pointPair { return pointPair{a: flat3(a), b: flat3(b)} }

func (r *Runner) closest(a, b *scene.Shape) (pointPair, error) {
	x, y, swapped, err := checkPair(a, b)
	if err != nil {
		return pointPair{}, err
	}
	var pts pointPair
	if x.Dim == 2 {
		pts, err = r.closest2(x, y)
	} else {
		pts, err = r.closest3(x, y)
	}
	if err != nil {
		return pointPair{}, err
	}
	if swapped {
		pts = pts.swap()
	}
	return pts, nil
}

func (r *Runner) closest2(x, y *scene.Shape) (pointPair, error) {
	s := r.Solver2
	if x.Kind == scene.KindPoint {
		p := x.Vec2()
		var q r2.Vec
		switch y.Kind {
		case scene.KindPoint:
			q = y.Vec2()
		case scene.KindLine:
			q, _ = s.ClosestPointLine(p, y.Line2())
		case scene.KindRay:
			q, _ = s.ClosestPointRay(p, y.Ray2())
		case scene.KindSegment:
			q, _ = s.ClosestPointSegment(p, y.Segment2())
		case scene.KindCircle:
			q = s.ClosestPointCircle(p, y.Circle())
		default:
			return pointPair{}, unsupported(x, y)
		}
		return pair2(p, q), nil
	}

	switch x.Kind {
	case scene.KindLine:
		l := x.Line2()
		switch y.Kind {
		case scene.KindLine:
			p := s.ClosestLineLine(l, y.Line2())
			return pair2(p.A, p.B), nil
		case scene.KindRay:
			p := s.ClosestLineRay(l, y.Ray2())
			return pair2(p.A, p.B), nil
		case scene.KindSegment:
			p := s.ClosestLineSegment(l, y.Segment2())
			return pair2(p.A, p.B), nil
		case scene.KindCircle:
			p := s.ClosestLineCircle(l, y.Circle())
			return pair2(p.A, p.B), nil
		}
	case scene.KindRay:
		ray := x.Ray2()
		switch y.Kind {
		case scene.KindRay:
			p := s.ClosestRayRay(ray, y.Ray2())
			return pair2(p.A, p.B), nil
		case scene.KindSegment:
			p := s.ClosestRaySegment(ray, y.Segment2())
			return pair2(p.A, p.B), nil
		case scene.KindCircle:
			p := s.ClosestRayCircle(ray, y.Circle())
			return pair2(p.A, p.B), nil
		}
	case scene.KindSegment:
		seg := x.Segment2()
		switch y.Kind {
		case scene.KindSegment:
			p := s.ClosestSegmentSegment(seg, y.Segment2())
			return pair2(p.A, p.B), nil
		case scene.KindCircle:
			p := s.ClosestSegmentCircle(seg, y.Circle())
			return pair2(p.A, p.B), nil
		}
	case scene.KindCircle:
		if y.Kind == scene.KindCircle {
			p := s.ClosestCircleCircle(x.Circle(), y.Circle())
			return pair2(p.A, p.B), nil
		}
	}
	return pointPair{}, unsupported(x, y)
}

func (r *Runner) closest3(x, y *scene.Shape) (pointPair, error) {
	s := r.Solver3
	if x.Kind == scene.KindPoint {
		p := x.Vec3()
		var q r3.Vec
		switch y.Kind {
		case scene.KindPoint:
			q = y.Vec3()
		case scene.KindLine:
			q, _ = s.ClosestPointLine(p, y.Line3())
		case scene.KindRay:
			q, _ = s.ClosestPointRay(p, y.Ray3())
		case scene.KindSegment:
			q, _ = s.ClosestPointSegment(p, y.Segment3())
		case scene.KindSphere:
			q = s.ClosestPointSphere(p, y.Sphere())
		default:
			return pointPair{}, unsupported(x, y)
		}
		return pair3(p, q), nil
	}
	if y.Kind != scene.KindSphere {
		return pointPair{}, unsupported(x, y)
	}
	sp := y.Sphere()
	switch x.Kind {
	case scene.KindLine:
		p := s.ClosestLineSphere(x.Line3(), sp)
		return pair3(p.A, p.B), nil
	case scene.KindRay:
		p := s.ClosestRaySphere(x.Ray3(), sp)
		return pair3(p.A, p.B), nil
	case scene.KindSegment:
		p := s.ClosestSegmentSphere(x.Segment3(), sp)
		return pair3(p.A, p.B), nil
	case scene.KindSphere:
		p := s.ClosestSphereSphere(x.Sphere(), sp)
		return pair3(p.A, p.B), nil
	}
	return pointPair{}, unsupported(x, y)
}
