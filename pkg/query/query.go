// Package query dispatches closest-point, intersection and distance
// queries between scene shapes to the 2D and 3D solvers.
package query

import (
	"errors"
	"fmt"

	"github.com/chazu/geoq/pkg/geom"
	"github.com/chazu/geoq/pkg/geom2d"
	"github.com/chazu/geoq/pkg/geom3d"
	"github.com/chazu/geoq/pkg/scene"
)

var (
	// ErrUnsupported is returned for pairs no solver handles, such as two
	// line-like shapes in 3D.
	ErrUnsupported = errors.New("unsupported shape pair")
	// ErrDimensionMismatch is returned when a 2D shape meets a 3D one.
	ErrDimensionMismatch = errors.New("shapes have different dimensions")
)

// Op names a query.
type Op string

const (
	OpClosest   Op = "closest"
	OpIntersect Op = "intersect"
	OpDistance  Op = "distance"
)

// Result is the outcome of one query. Points are flattened coordinates:
// for closest, the point on A then the point on B; for intersect, the
// points of the hit; for distance, the closest points. Circle holds the
// center, normal and radius of a sphere-sphere intersection circle.
type Result struct {
	Op       Op           `json:"op"`
	A        string       `json:"a"`
	B        string       `json:"b"`
	Kind     geom.HitKind `json:"kind"`
	Touching bool         `json:"touching"`
	Points   [][]float64  `json:"points,omitempty"`
	Distance float64      `json:"distance"`
	Circle   *Circle      `json:"circle,omitempty"`
}

// Circle is the intersection circle of two spheres.
type Circle struct {
	Center []float64 `json:"center"`
	Normal []float64 `json:"normal"`
	Radius float64   `json:"radius"`
}

// Runner runs queries under one tolerance.
type Runner struct {
	Solver2 geom2d.Solver
	Solver3 geom3d.Solver
}

// NewRunner returns a runner using tol for both dimensions.
func NewRunner(tol geom.Tolerance) *Runner {
	return &Runner{Solver2: geom2d.New(tol), Solver3: geom3d.New(tol)}
}

// WithTolerance returns a copy of the runner whose solvers use tol. The
// receiver is left unchanged.
func (r *Runner) WithTolerance(tol geom.Tolerance) *Runner {
	cp := *r
	cp.Solver2.Tolerance = tol
	cp.Solver3.Tolerance = tol
	return &cp
}

// Tolerance returns the runner's tolerance.
func (r *Runner) Tolerance() geom.Tolerance {
	return r.Solver2.Tolerance
}

// Run dispatches op.
func (r *Runner) Run(op Op, a, b *scene.Shape) (Result, error) {
	switch op {
	case OpClosest:
		return r.Closest(a, b)
	case OpIntersect:
		return r.Intersect(a, b)
	case OpDistance:
		return r.Distance(a, b)
	}
	return Result{}, fmt.Errorf("unknown query %q", op)
}

// Closest returns the closest points of a and b.
func (r *Runner) Closest(a, b *scene.Shape) (Result, error) {
	pts, err := r.closest(a, b)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Op:       OpClosest,
		A:        a.Label(),
		B:        b.Label(),
		Kind:     geom.HitNone,
		Touching: pts.distance() <= r.Tolerance().Epsilon,
		Points:   [][]float64{pts.a, pts.b},
		Distance: pts.distance(),
	}, nil
}

// Distance returns the distance between a and b along with the closest
// points.
func (r *Runner) Distance(a, b *scene.Shape) (Result, error) {
	res, err := r.Closest(a, b)
	res.Op = OpDistance
	return res, err
}

// Intersect classifies a against b. Distance is the separation of the
// two shapes, zero when they share a point.
func (r *Runner) Intersect(a, b *scene.Shape) (Result, error) {
	res, err := r.intersect(a, b)
	if err != nil {
		return Result{}, err
	}
	pts, err := r.closest(a, b)
	if err != nil {
		return Result{}, err
	}
	res.Op = OpIntersect
	res.A, res.B = a.Label(), b.Label()
	res.Distance = pts.distance()
	return res, nil
}

// checkPair rejects mixed dimensions and returns the pair in canonical
// order: point < line < ray < segment < circle/sphere. swapped reports
// whether the arguments were exchanged.
func checkPair(a, b *scene.Shape) (x, y *scene.Shape, swapped bool, err error) {
	if a.Dim != b.Dim {
		return nil, nil, false, fmt.Errorf("%w: %s is %dD, %s is %dD", ErrDimensionMismatch, a.Label(), a.Dim, b.Label(), b.Dim)
	}
	if b.Kind < a.Kind {
		return b, a, true, nil
	}
	return a, b, false, nil
}

func unsupported(a, b *scene.Shape) error {
	return fmt.Errorf("%w: %s %dD with %s", ErrUnsupported, a.Kind, a.Dim, b.Kind)
}
