// Package kernel defines the signed distance field abstraction used to
// render round shapes. Implementations (sdfx) evaluate fields and mesh
// them behind this interface; the closest-point and intersection engines
// never depend on it.
package kernel

import (
	"github.com/chazu/geoq/pkg/geom2d"
	"github.com/chazu/geoq/pkg/geom3d"
	"gonum.org/v1/gonum/spatial/r3"
)

// Field is a signed distance field: negative inside, zero on the
// surface, positive outside.
type Field interface {
	// Distance evaluates the field at p.
	Distance(p r3.Vec) float64
	// BoundingBox returns the axis-aligned bounding box of the surface.
	BoundingBox() (min, max r3.Vec)
}

// Kernel builds and meshes fields.
type Kernel interface {
	// Circle returns the field of a disk in the z=0 plane. Distance is
	// measured in the plane; z is ignored.
	Circle(c geom2d.Circle) (Field, error)
	// Sphere returns the field of a ball.
	Sphere(s geom3d.Sphere) (Field, error)
	// Union merges two fields.
	Union(a, b Field) (Field, error)
	// ToMesh converts a field to a triangle mesh.
	ToMesh(f Field) (*Mesh, error)
}
