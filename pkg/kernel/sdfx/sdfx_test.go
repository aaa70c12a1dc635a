package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/geoq/pkg/geom"
	"github.com/chazu/geoq/pkg/geom2d"
	"github.com/chazu/geoq/pkg/geom3d"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// The SDFs of circles and spheres are exact, so their magnitude matches
// the point distance computed by the geometry engines.

func TestSphereFieldMatchesDistance(t *testing.T) {
	k := New()
	sp := geom3d.NewSphere(r3.Vec{X: 1, Y: 2, Z: 3}, 2)
	f, err := k.Sphere(sp)
	if err != nil {
		t.Fatalf("Sphere failed: %v", err)
	}
	s := geom3d.New(geom.Double)
	for _, p := range []r3.Vec{
		{X: 1, Y: 2, Z: 3},
		{X: 5, Y: 2, Z: 3},
		{X: 1, Y: 2, Z: 4},
		{X: -3, Y: 0, Z: 7},
	} {
		got := f.Distance(p)
		want := s.DistancePointSphere(p, sp)
		if math.Abs(math.Abs(got)-want) > 1e-9 {
			t.Errorf("Distance(%v) = %g, want magnitude %g", p, got, want)
		}
		inside := s.PointInSphere(p, sp)
		if inside != (got < 0) {
			t.Errorf("Distance(%v) = %g, inside = %v", p, got, inside)
		}
	}
}

func TestCircleFieldMatchesDistance(t *testing.T) {
	k := New()
	c := geom2d.NewCircle(r2.Vec{X: -1, Y: 1}, 1.5)
	f, err := k.Circle(c)
	if err != nil {
		t.Fatalf("Circle failed: %v", err)
	}
	s := geom2d.New(geom.Double)
	for _, p := range []r2.Vec{
		{X: -1, Y: 1},
		{X: 2, Y: 1},
		{X: -1, Y: 2},
		{X: 4, Y: -3},
	} {
		// z is ignored for circles.
		got := f.Distance(r3.Vec{X: p.X, Y: p.Y, Z: 10})
		want := s.DistancePointCircle(p, c)
		if math.Abs(math.Abs(got)-want) > 1e-9 {
			t.Errorf("Distance(%v) = %g, want magnitude %g", p, got, want)
		}
	}
}

func TestDegenerateRadius(t *testing.T) {
	k := New()
	if _, err := k.Circle(geom2d.NewCircle(r2.Vec{}, 0)); err == nil {
		t.Error("expected error for zero circle radius")
	}
	if _, err := k.Sphere(geom3d.NewSphere(r3.Vec{}, -1)); err == nil {
		t.Error("expected error for negative sphere radius")
	}
}

func TestSphereMesh(t *testing.T) {
	k := New(WithCells(24))
	f, err := k.Sphere(geom3d.NewSphere(r3.Vec{X: 10}, 5))
	if err != nil {
		t.Fatalf("Sphere failed: %v", err)
	}
	mesh, err := k.ToMesh(f)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	triCount := mesh.TriangleCount()
	if triCount == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	// Verify vertex and index array sizes are consistent.
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != triCount*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), triCount*3)
	}

	min, max := mesh.Bounds()
	const tol = 1.0
	if math.Abs(float64(min[0])-5) > tol || math.Abs(float64(max[0])-15) > tol {
		t.Errorf("x extent = [%g, %g], expected ~[5, 15]", min[0], max[0])
	}
	t.Logf("sphere triangle count: %d", triCount)
}

func TestCircleMesh(t *testing.T) {
	k := New(WithCells(32), WithDiskThickness(0.2))
	f, err := k.Circle(geom2d.NewCircle(r2.Vec{}, 10))
	if err != nil {
		t.Fatalf("Circle failed: %v", err)
	}

	min, max := f.BoundingBox()
	const tol = 0.01
	if math.Abs(min.X+10) > tol || math.Abs(max.X-10) > tol {
		t.Errorf("x bounds = [%g, %g], want [-10, 10]", min.X, max.X)
	}
	if math.Abs(min.Z+1) > tol || math.Abs(max.Z-1) > tol {
		t.Errorf("z bounds = [%g, %g], want [-1, 1]", min.Z, max.Z)
	}

	mesh, err := k.ToMesh(f)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("disk mesh is empty")
	}
}

func TestUnion(t *testing.T) {
	k := New(WithCells(24))
	a, _ := k.Sphere(geom3d.NewSphere(r3.Vec{}, 5))
	b, _ := k.Sphere(geom3d.NewSphere(r3.Vec{X: 20}, 5))
	u, err := k.Union(a, b)
	if err != nil {
		t.Fatalf("Union failed: %v", err)
	}

	min, max := u.BoundingBox()
	if math.Abs(min.X+5) > 0.01 || math.Abs(max.X-25) > 0.01 {
		t.Errorf("union x bounds = [%g, %g], want [-5, 25]", min.X, max.X)
	}
	if d := u.Distance(r3.Vec{X: 10}); math.Abs(d-5) > 1e-9 {
		t.Errorf("union Distance midway = %g, want 5", d)
	}

	mesh, err := k.ToMesh(u)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("union mesh is empty")
	}
	t.Logf("union triangle count: %d", mesh.TriangleCount())
}

type foreignField struct{}

func (foreignField) Distance(r3.Vec) float64        { return 0 }
func (foreignField) BoundingBox() (min, max r3.Vec) { return }

func TestForeignField(t *testing.T) {
	k := New()
	if _, err := k.ToMesh(foreignField{}); err == nil {
		t.Error("expected error meshing a foreign field")
	}
	a, _ := k.Sphere(geom3d.NewSphere(r3.Vec{}, 1))
	if _, err := k.Union(a, foreignField{}); err == nil {
		t.Error("expected error for union with a foreign field")
	}
}

func TestAdapters(t *testing.T) {
	p := r2.Vec{X: 1.5, Y: -2}
	if got := FromVec2(Vec2(p)); got != p {
		t.Errorf("2D round trip = %v, want %v", got, p)
	}
	if got := Vec2(p); got != (v2.Vec{X: 1.5, Y: -2}) {
		t.Errorf("Vec2 = %v", got)
	}
	q := r3.Vec{X: 1, Y: 2, Z: -3}
	if got := FromVec3(Vec3(q)); got != q {
		t.Errorf("3D round trip = %v, want %v", got, q)
	}
	if got := Vec3(q); got != (v3.Vec{X: 1, Y: 2, Z: -3}) {
		t.Errorf("Vec3 = %v", got)
	}
}
