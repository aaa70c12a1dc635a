// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"

	"github.com/chazu/geoq/pkg/geom2d"
	"github.com/chazu/geoq/pkg/geom3d"
	"github.com/chazu/geoq/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

const (
	// DefaultMeshCells controls marching cubes tessellation resolution.
	DefaultMeshCells = 64
	// DefaultDiskThickness is the height of meshed circles, relative to
	// the radius.
	DefaultDiskThickness = 0.1
)

// field wraps an sdf.SDF3 to implement kernel.Field. A circle also keeps
// its 2D field, which Distance evaluates instead of the extrusion.
type field struct {
	s    sdf.SDF3
	flat sdf.SDF2
}

// Distance evaluates the field at p.
func (f *field) Distance(p r3.Vec) float64 {
	if f.flat != nil {
		return f.flat.Evaluate(Vec2(r2Of(p)))
	}
	return f.s.Evaluate(Vec3(p))
}

// BoundingBox returns the axis-aligned bounding box.
func (f *field) BoundingBox() (min, max r3.Vec) {
	bb := f.s.BoundingBox()
	return FromVec3(bb.Min), FromVec3(bb.Max)
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	cells     int
	thickness float64
}

// Option configures an SdfxKernel.
type Option func(*SdfxKernel)

// WithCells sets the marching cubes resolution along the longest axis.
func WithCells(n int) Option {
	return func(k *SdfxKernel) {
		if n > 0 {
			k.cells = n
		}
	}
}

// WithDiskThickness sets the meshed circle height as a fraction of the
// radius.
func WithDiskThickness(t float64) Option {
	return func(k *SdfxKernel) {
		if t > 0 {
			k.thickness = t
		}
	}
}

// New returns a new SdfxKernel.
func New(opts ...Option) *SdfxKernel {
	k := &SdfxKernel{cells: DefaultMeshCells, thickness: DefaultDiskThickness}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Field.
func unwrap(f kernel.Field) (sdf.SDF3, error) {
	w, ok := f.(*field)
	if !ok {
		return nil, fmt.Errorf("sdfx: foreign field %T", f)
	}
	return w.s, nil
}

// Circle creates a disk centered on c. The mesh form is an extrusion
// symmetric about z=0.
func (k *SdfxKernel) Circle(c geom2d.Circle) (kernel.Field, error) {
	if !(c.Radius > 0) {
		return nil, fmt.Errorf("sdfx: circle radius must be positive, got %g", c.Radius)
	}
	disk, err := sdf.Circle2D(c.Radius)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Circle2D: %w", err)
	}
	flat := sdf.Transform2D(disk, sdf.Translate2d(Vec2(c.Center)))
	solid := sdf.Extrude3D(flat, c.Radius*k.thickness)
	return &field{s: solid, flat: flat}, nil
}

// Sphere creates a ball centered on s.Center.
func (k *SdfxKernel) Sphere(s geom3d.Sphere) (kernel.Field, error) {
	if !(s.Radius > 0) {
		return nil, fmt.Errorf("sdfx: sphere radius must be positive, got %g", s.Radius)
	}
	ball, err := sdf.Sphere3D(s.Radius)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Sphere3D: %w", err)
	}
	m := sdf.Translate3d(Vec3(s.Center))
	return &field{s: sdf.Transform3D(ball, m)}, nil
}

// Union returns the union of two fields. The result is always a 3D field.
func (k *SdfxKernel) Union(a, b kernel.Field) (kernel.Field, error) {
	sa, err := unwrap(a)
	if err != nil {
		return nil, err
	}
	sb, err := unwrap(b)
	if err != nil {
		return nil, err
	}
	return &field{s: sdf.Union3D(sa, sb)}, nil
}

// ToMesh converts a field to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(f kernel.Field) (*kernel.Mesh, error) {
	sdf3, err := unwrap(f)
	if err != nil {
		return nil, err
	}

	renderer := render.NewMarchingCubesUniform(k.cells)
	triangles := render.ToTriangles(sdf3, renderer)

	numVerts := len(triangles) * 3
	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx, ny, nz := float32(n.X), float32(n.Y), float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
