package scene

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/chazu/geoq/pkg/geom2d"
	"github.com/chazu/geoq/pkg/geom3d"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Kind enumerates the primitive kinds a shape can hold.
type Kind int

const (
	KindPoint   Kind = iota // A is the point
	KindLine                // A position, B direction
	KindRay                 // A position, B direction
	KindSegment             // A start, B end
	KindCircle              // A center, 2D only
	KindSphere              // A center, 3D only
)

var kindNames = [...]string{
	KindPoint:   "point",
	KindLine:    "line",
	KindRay:     "ray",
	KindSegment: "segment",
	KindCircle:  "circle",
	KindSphere:  "sphere",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind is the inverse of String.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shape kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown shape kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// LineLike reports whether the kind is a line, ray or segment.
func (k Kind) LineLike() bool {
	return k == KindLine || k == KindRay || k == KindSegment
}

// Round reports whether the kind is a circle or sphere.
func (k Kind) Round() bool {
	return k == KindCircle || k == KindSphere
}

// ShapeID is a content-addressed identifier: the hex xxhash of a shape's
// name, kind, dimension and coordinates.
type ShapeID string

// IsZero reports whether the ID is unset.
func (id ShapeID) IsZero() bool { return id == "" }

// Short returns the first 8 hex digits.
func (id ShapeID) Short() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

func (id ShapeID) String() string { return string(id) }

// Shape is the flat, serializable form of a primitive. A holds the
// point, position, start or center; B holds the direction of a line or
// ray and the end of a segment.
type Shape struct {
	ID     ShapeID   `yaml:"-" json:"id"`
	Name   string    `yaml:"name,omitempty" json:"name,omitempty"`
	Kind   Kind      `yaml:"kind" json:"kind"`
	Dim    int       `yaml:"dim" json:"dim"`
	A      []float64 `yaml:"a,flow" json:"a"`
	B      []float64 `yaml:"b,flow,omitempty" json:"b,omitempty"`
	Radius float64   `yaml:"radius,omitempty" json:"radius,omitempty"`
}

// Hash computes the content ID of the shape.
func (s *Shape) Hash() ShapeID {
	d := xxhash.New()
	_, _ = d.WriteString(s.Name)
	var buf [8]byte
	put := func(x uint64) {
		binary.LittleEndian.PutUint64(buf[:], x)
		_, _ = d.Write(buf[:])
	}
	put(uint64(s.Kind))
	put(uint64(s.Dim))
	put(uint64(len(s.A)))
	for _, x := range s.A {
		put(math.Float64bits(x))
	}
	put(uint64(len(s.B)))
	for _, x := range s.B {
		put(math.Float64bits(x))
	}
	put(math.Float64bits(s.Radius))
	return ShapeID(fmt.Sprintf("%016x", d.Sum64()))
}

// Label returns the name, or the short ID of an unnamed shape.
func (s *Shape) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID.Short()
}

func (s *Shape) String() string {
	return fmt.Sprintf("%s %s%dd%v", s.Label(), s.Kind, s.Dim, s.A)
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

func newShape(kind Kind, dim int, a, b []float64, radius float64) *Shape {
	s := &Shape{Kind: kind, Dim: dim, A: a, B: b, Radius: radius}
	s.ID = s.Hash()
	return s
}

func xy(v r2.Vec) []float64 { return []float64{v.X, v.Y} }
func xyz(v r3.Vec) []float64 { return []float64{v.X, v.Y, v.Z} }

func Point2(p r2.Vec) *Shape { return newShape(KindPoint, 2, xy(p), nil, 0) }
func Line2(l geom2d.Line) *Shape {
	return newShape(KindLine, 2, xy(l.Position), xy(l.Direction), 0)
}
func Ray2(r geom2d.Ray) *Shape {
	return newShape(KindRay, 2, xy(r.Position), xy(r.Direction), 0)
}
func Segment2(s geom2d.Segment) *Shape {
	return newShape(KindSegment, 2, xy(s.Start), xy(s.End), 0)
}
func Circle(c geom2d.Circle) *Shape {
	return newShape(KindCircle, 2, xy(c.Center), nil, c.Radius)
}

func Point3(p r3.Vec) *Shape { return newShape(KindPoint, 3, xyz(p), nil, 0) }
func Line3(l geom3d.Line) *Shape {
	return newShape(KindLine, 3, xyz(l.Position), xyz(l.Direction), 0)
}
func Ray3(r geom3d.Ray) *Shape {
	return newShape(KindRay, 3, xyz(r.Position), xyz(r.Direction), 0)
}
func Segment3(s geom3d.Segment) *Shape {
	return newShape(KindSegment, 3, xyz(s.Start), xyz(s.End), 0)
}
func Sphere(s geom3d.Sphere) *Shape {
	return newShape(KindSphere, 3, xyz(s.Center), nil, s.Radius)
}

// Named sets the name and recomputes the ID.
func (s *Shape) Named(name string) *Shape {
	s.Name = name
	s.ID = s.Hash()
	return s
}

// ---------------------------------------------------------------------------
// Conversions. Callers validate Kind and Dim first; missing coordinates
// read as zero.
// ---------------------------------------------------------------------------

func coord(v []float64, i int) float64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}

func vec2(v []float64) r2.Vec { return r2.Vec{X: coord(v, 0), Y: coord(v, 1)} }
func vec3(v []float64) r3.Vec { return r3.Vec{X: coord(v, 0), Y: coord(v, 1), Z: coord(v, 2)} }

func (s *Shape) Vec2() r2.Vec { return vec2(s.A) }
func (s *Shape) Line2() geom2d.Line { return geom2d.NewLine(vec2(s.A), vec2(s.B)) }
func (s *Shape) Ray2() geom2d.Ray { return geom2d.NewRay(vec2(s.A), vec2(s.B)) }
func (s *Shape) Segment2() geom2d.Segment { return geom2d.NewSegment(vec2(s.A), vec2(s.B)) }
func (s *Shape) Circle() geom2d.Circle { return geom2d.NewCircle(vec2(s.A), s.Radius) }
func (s *Shape) Vec3() r3.Vec { return vec3(s.A) }
func (s *Shape) Line3() geom3d.Line { return geom3d.NewLine(vec3(s.A), vec3(s.B)) }
func (s *Shape) Ray3() geom3d.Ray { return geom3d.NewRay(vec3(s.A), vec3(s.B)) }
func (s *Shape) Segment3() geom3d.Segment { return geom3d.NewSegment(vec3(s.A), vec3(s.B)) }
func (s *Shape) Sphere() geom3d.Sphere { return geom3d.NewSphere(vec3(s.A), s.Radius) }
