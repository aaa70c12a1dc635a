package geom2d

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Distance queries return the Euclidean distance between the closest
// points of two primitives. Primitives sharing a point are at distance 0.

func (s Solver) DistancePointLine(p r2.Vec, l Line) float64 {
	q, _ := s.ClosestPointLine(p, l)
	return r2.Norm(r2.Sub(p, q))
}

func (s Solver) DistancePointRay(p r2.Vec, r Ray) float64 {
	q, _ := s.ClosestPointRay(p, r)
	return r2.Norm(r2.Sub(p, q))
}

func (s Solver) DistancePointSegment(p r2.Vec, seg Segment) float64 {
	q, _ := s.ClosestPointSegment(p, seg)
	return r2.Norm(r2.Sub(p, q))
}

// DistancePointCircle returns the distance from p to the outline of c,
// which is positive for points inside the disk as well.
func (s Solver) DistancePointCircle(p r2.Vec, c Circle) float64 {
	return math.Abs(r2.Norm(r2.Sub(p, c.Center)) - c.Radius)
}

func (s Solver) DistanceLineLine(a, b Line) float64 {
	return s.ClosestLineLine(a, b).Distance()
}

func (s Solver) DistanceLineRay(a Line, b Ray) float64 {
	return s.ClosestLineRay(a, b).Distance()
}

func (s Solver) DistanceLineSegment(a Line, b Segment) float64 {
	return s.ClosestLineSegment(a, b).Distance()
}

func (s Solver) DistanceLineCircle(a Line, c Circle) float64 {
	return s.ClosestLineCircle(a, c).Distance()
}

func (s Solver) DistanceRayRay(a, b Ray) float64 {
	return s.ClosestRayRay(a, b).Distance()
}

func (s Solver) DistanceRaySegment(a Ray, b Segment) float64 {
	return s.ClosestRaySegment(a, b).Distance()
}

func (s Solver) DistanceRayCircle(a Ray, c Circle) float64 {
	return s.ClosestRayCircle(a, c).Distance()
}

func (s Solver) DistanceSegmentSegment(a, b Segment) float64 {
	return s.ClosestSegmentSegment(a, b).Distance()
}

func (s Solver) DistanceSegmentCircle(a Segment, c Circle) float64 {
	return s.ClosestSegmentCircle(a, c).Distance()
}

func (s Solver) DistanceCircleCircle(a, b Circle) float64 {
	return s.ClosestCircleCircle(a, b).Distance()
}
