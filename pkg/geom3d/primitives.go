package geom3d

import (
	"fmt"

	"github.com/chazu/geoq/pkg/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	up    = r3.Vec{X: 0, Y: 1, Z: 0}
	right = r3.Vec{X: 1, Y: 0, Z: 0}
)

// Line is an infinite line through Position along Direction.
type Line struct {
	Position  r3.Vec
	Direction r3.Vec
}

func NewLine(position, direction r3.Vec) Line {
	return Line{Position: position, Direction: direction}
}

func (l Line) At(t float64) r3.Vec {
	return r3.Add(l.Position, r3.Scale(t, l.Direction))
}

func (l Line) String() string {
	return fmt.Sprintf("Line(%v, %v)", l.Position, l.Direction)
}

// Ray is a half-line starting at Position along Direction.
type Ray struct {
	Position  r3.Vec
	Direction r3.Vec
}

func NewRay(position, direction r3.Vec) Ray {
	return Ray{Position: position, Direction: direction}
}

func (r Ray) At(t float64) r3.Vec {
	return r3.Add(r.Position, r3.Scale(t, r.Direction))
}

func (r Ray) String() string {
	return fmt.Sprintf("Ray(%v, %v)", r.Position, r.Direction)
}

// Segment is the bounded piece of line between Start and End.
type Segment struct {
	Start r3.Vec
	End   r3.Vec
}

func NewSegment(start, end r3.Vec) Segment {
	return Segment{Start: start, End: end}
}

func (s Segment) Direction() r3.Vec {
	return r3.Sub(s.End, s.Start)
}

func (s Segment) Length() float64 {
	return r3.Norm(s.Direction())
}

func (s Segment) At(t float64) r3.Vec {
	return r3.Add(s.Start, r3.Scale(t, s.Direction()))
}

func (s Segment) String() string {
	return fmt.Sprintf("Segment(%v, %v)", s.Start, s.End)
}

// Sphere is the surface of radius Radius around Center.
type Sphere struct {
	Center r3.Vec
	Radius float64
}

func NewSphere(center r3.Vec, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

func (s Sphere) String() string {
	return fmt.Sprintf("Sphere(%v, %g)", s.Center, s.Radius)
}

type linear struct {
	origin r3.Vec
	dir    r3.Vec
	span   geom.Span
}

func (l Line) linear() linear { return linear{l.Position, l.Direction, geom.LineSpan} }
func (r Ray) linear() linear { return linear{r.Position, r.Direction, geom.RaySpan} }
func (s Segment) linear() linear { return linear{s.Start, s.Direction(), geom.SegmentSpan} }

func (lin linear) at(t float64) r3.Vec {
	return r3.Add(lin.origin, r3.Scale(t, lin.dir))
}
