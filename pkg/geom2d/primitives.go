package geom2d

import (
	"fmt"

	"github.com/chazu/geoq/pkg/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// up is the fallback direction used when a direction to or from a circle
// center is undefined.
var up = r2.Vec{X: 0, Y: 1}

// Line is an infinite line through Position along Direction. Direction
// need not be unit length but must be non-zero.
type Line struct {
	Position  r2.Vec
	Direction r2.Vec
}

// NewLine returns the line through position along direction.
func NewLine(position, direction r2.Vec) Line {
	return Line{Position: position, Direction: direction}
}

// LineThrough returns the line through a and b, directed from a to b.
func LineThrough(a, b r2.Vec) Line {
	return Line{Position: a, Direction: r2.Sub(b, a)}
}

// At returns Position + t*Direction.
func (l Line) At(t float64) r2.Vec {
	return r2.Add(l.Position, r2.Scale(t, l.Direction))
}

func (l Line) String() string {
	return fmt.Sprintf("Line(%v, %v)", l.Position, l.Direction)
}

// Ray is a half-line starting at Position along Direction.
type Ray struct {
	Position  r2.Vec
	Direction r2.Vec
}

// NewRay returns the ray from position along direction.
func NewRay(position, direction r2.Vec) Ray {
	return Ray{Position: position, Direction: direction}
}

// At returns Position + t*Direction.
func (r Ray) At(t float64) r2.Vec {
	return r2.Add(r.Position, r2.Scale(t, r.Direction))
}

func (r Ray) String() string {
	return fmt.Sprintf("Ray(%v, %v)", r.Position, r.Direction)
}

// Segment is the bounded piece of line between Start and End. A segment
// whose ends coincide behaves as the point Start.
type Segment struct {
	Start r2.Vec
	End   r2.Vec
}

// NewSegment returns the segment from start to end.
func NewSegment(start, end r2.Vec) Segment {
	return Segment{Start: start, End: end}
}

// Direction returns End-Start.
func (s Segment) Direction() r2.Vec {
	return r2.Sub(s.End, s.Start)
}

// Length returns |End-Start|.
func (s Segment) Length() float64 {
	return r2.Norm(s.Direction())
}

// Center returns the midpoint.
func (s Segment) Center() r2.Vec {
	return s.At(0.5)
}

// At returns Start + t*(End-Start).
func (s Segment) At(t float64) r2.Vec {
	return r2.Add(s.Start, r2.Scale(t, s.Direction()))
}

// Reverse swaps the ends.
func (s Segment) Reverse() Segment {
	return Segment{Start: s.End, End: s.Start}
}

func (s Segment) String() string {
	return fmt.Sprintf("Segment(%v, %v)", s.Start, s.End)
}

// Circle is the outline of radius Radius around Center. A zero radius
// degenerates to the point Center.
type Circle struct {
	Center r2.Vec
	Radius float64
}

// NewCircle returns the circle around center with the given radius.
func NewCircle(center r2.Vec, radius float64) Circle {
	return Circle{Center: center, Radius: radius}
}

func (c Circle) String() string {
	return fmt.Sprintf("Circle(%v, %g)", c.Center, c.Radius)
}

// linear is the common view of lines, rays and segments.
type linear struct {
	origin r2.Vec
	dir    r2.Vec
	span   geom.Span
}

func (l Line) linear() linear { return linear{l.Position, l.Direction, geom.LineSpan} }
func (r Ray) linear() linear { return linear{r.Position, r.Direction, geom.RaySpan} }
func (s Segment) linear() linear { return linear{s.Start, s.Direction(), geom.SegmentSpan} }

func (lin linear) at(t float64) r2.Vec {
	return r2.Add(lin.origin, r2.Scale(t, lin.dir))
}
