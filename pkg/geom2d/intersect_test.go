package geom2d

import (
	"math"
	"testing"

	"github.com/chazu/geoq/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointSides(t *testing.T) {
	s := Default
	x := NewLine(v(0, 0), v(1, 0))
	assert.Equal(t, 1, s.PointLineSide(v(0, 1), x))
	assert.Equal(t, -1, s.PointLineSide(v(0, -1), x))
	assert.Equal(t, 0, s.PointLineSide(v(5, 0.0005), x))
	assert.True(t, s.PointOnLine(v(-7, 0), x))

	ray := NewRay(v(0, 0), v(2, 0))
	side, on := s.PointRaySide(v(-1, 0), ray)
	assert.Equal(t, 0, side)
	assert.False(t, on, "behind the origin")
	_, on = s.PointRaySide(v(-0.0005, 0), ray)
	assert.True(t, on)
	side, on = s.PointRaySide(v(3, -2), ray)
	assert.Equal(t, -1, side)
	assert.False(t, on)
	assert.True(t, s.PointOnRay(v(100, 0), ray))

	seg := NewSegment(v(0, 0), v(2, 0))
	assert.True(t, s.PointOnSegment(v(1, 0), seg))
	assert.True(t, s.PointOnSegment(v(2.0005, 0), seg))
	assert.False(t, s.PointOnSegment(v(3, 0), seg))
	side, _ = s.PointSegmentSide(v(1, 1), seg)
	assert.Equal(t, 1, side)

	dot := NewSegment(v(1, 1), v(1, 1))
	assert.True(t, s.PointOnSegment(v(1, 1), dot))
	assert.False(t, s.PointOnSegment(v(1, 2), dot))
}

func TestPointInCircle(t *testing.T) {
	s := Default
	c := NewCircle(v(0, 0), 1)
	assert.True(t, s.PointInCircle(v(0.5, 0), c))
	assert.True(t, s.PointInCircle(v(1, 0), c))
	assert.False(t, s.PointInCircle(v(1.01, 0), c))
}

func TestIntersectLinear(t *testing.T) {
	s := Default
	type result struct {
		hit Hit
		ok  bool
	}
	run := func(h Hit, ok bool) result { return result{h, ok} }
	tests := []struct {
		name   string
		got    result
		kind   geom.HitKind
		points [][2]float64
		ok     bool
	}{
		{"segments crossing", run(s.IntersectSegmentSegment(NewSegment(v(0, 0), v(2, 2)), NewSegment(v(0, 2), v(2, 0)))), geom.HitPoint, [][2]float64{{1, 1}}, true},
		{"segments parallel apart", run(s.IntersectSegmentSegment(NewSegment(v(0, 0), v(1, 0)), NewSegment(v(0, 1), v(1, 1)))), geom.HitNone, nil, false},
		{"segments collinear overlap", run(s.IntersectSegmentSegment(NewSegment(v(0, 0), v(2, 0)), NewSegment(v(1, 0), v(3, 0)))), geom.HitSegment, [][2]float64{{1, 0}, {2, 0}}, true},
		{"segments collinear contained", run(s.IntersectSegmentSegment(NewSegment(v(0, 0), v(4, 0)), NewSegment(v(3, 0), v(1, 0)))), geom.HitSegment, [][2]float64{{1, 0}, {3, 0}}, true},
		{"segments end to end", run(s.IntersectSegmentSegment(NewSegment(v(0, 0), v(1, 0)), NewSegment(v(1, 0), v(2, 0)))), geom.HitPoint, [][2]float64{{1, 0}}, true},
		{"segments collinear apart", run(s.IntersectSegmentSegment(NewSegment(v(0, 0), v(1, 0)), NewSegment(v(2, 0), v(3, 0)))), geom.HitNone, nil, false},
		{"segment touching segment", run(s.IntersectSegmentSegment(NewSegment(v(0, 0), v(2, 0)), NewSegment(v(1, 0), v(1, 2)))), geom.HitPoint, [][2]float64{{1, 0}}, true},
		{"segments missing", run(s.IntersectSegmentSegment(NewSegment(v(0, 0), v(1, 0)), NewSegment(v(2, -1), v(2, 1)))), geom.HitNone, nil, false},
		{"zero-length on segment", run(s.IntersectSegmentSegment(NewSegment(v(1, 0), v(1, 0)), NewSegment(v(0, 0), v(2, 0)))), geom.HitPoint, [][2]float64{{1, 0}}, true},
		{"lines crossing", run(s.IntersectLineLine(NewLine(v(0, 0), v(1, 0)), NewLine(v(1, -1), v(0, 1)))), geom.HitPoint, [][2]float64{{1, 0}}, true},
		{"lines coincident", run(s.IntersectLineLine(NewLine(v(0, 0), v(1, 0)), NewLine(v(3, 0), v(-2, 0)))), geom.HitParallel, [][2]float64{{0, 0}}, true},
		{"lines offset", run(s.IntersectLineLine(NewLine(v(0, 0), v(1, 0)), NewLine(v(0, 1), v(1, 0)))), geom.HitNone, nil, false},
		{"line holding ray", run(s.IntersectLineRay(NewLine(v(0, 0), v(1, 0)), NewRay(v(4, 0), v(1, 0)))), geom.HitParallel, [][2]float64{{4, 0}}, true},
		{"line and ray behind", run(s.IntersectLineRay(NewLine(v(0, 0), v(1, 0)), NewRay(v(0, 1), v(0, 1)))), geom.HitNone, nil, false},
		{"line holding segment", run(s.IntersectLineSegment(NewLine(v(0, 0), v(1, 0)), NewSegment(v(3, 0), v(1, 0)))), geom.HitSegment, [][2]float64{{1, 0}, {3, 0}}, true},
		{"line crossing segment", run(s.IntersectLineSegment(NewLine(v(0, 0), v(1, 1)), NewSegment(v(0, 2), v(2, 0)))), geom.HitPoint, [][2]float64{{1, 1}}, true},
		{"rays codirected", run(s.IntersectRayRay(NewRay(v(0, 0), v(1, 0)), NewRay(v(2, 0), v(3, 0)))), geom.HitParallel, [][2]float64{{2, 0}}, true},
		{"rays facing", run(s.IntersectRayRay(NewRay(v(0, 0), v(1, 0)), NewRay(v(5, 0), v(-1, 0)))), geom.HitSegment, [][2]float64{{0, 0}, {5, 0}}, true},
		{"rays back to back", run(s.IntersectRayRay(NewRay(v(0, 0), v(1, 0)), NewRay(v(-5, 0), v(-1, 0)))), geom.HitNone, nil, false},
		{"rays opposed at origin", run(s.IntersectRayRay(NewRay(v(0, 0), v(1, 0)), NewRay(v(0, 0), v(-1, 0)))), geom.HitPoint, [][2]float64{{0, 0}}, true},
		{"rays crossing", run(s.IntersectRayRay(NewRay(v(0, 0), v(1, 1)), NewRay(v(2, 0), v(-1, 1)))), geom.HitPoint, [][2]float64{{1, 1}}, true},
		{"ray covering segment", run(s.IntersectRaySegment(NewRay(v(0, 0), v(1, 0)), NewSegment(v(-1, 0), v(2, 0)))), geom.HitSegment, [][2]float64{{0, 0}, {2, 0}}, true},
		{"ray crossing segment", run(s.IntersectRaySegment(NewRay(v(0, 0), v(1, 1)), NewSegment(v(0, 2), v(2, 0)))), geom.HitPoint, [][2]float64{{1, 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.kind, tt.got.hit.Kind)
			assert.Equal(t, tt.ok, tt.got.ok)
			pts := tt.got.hit.Points()
			require.Len(t, pts, len(tt.points))
			for i, p := range tt.points {
				assertVec(t, v(p[0], p[1]), pts[i])
			}
		})
	}
}

func TestIntersectLinearParameters(t *testing.T) {
	s := Default
	hit, ok := s.IntersectSegmentSegment(NewSegment(v(0, 0), v(2, 0)), NewSegment(v(1, 0), v(1, 2)))
	require.True(t, ok)
	assert.InDelta(t, 0.5, hit.TA, delta)

	hit, _ = s.IntersectLineSegment(NewLine(v(0, 0), v(1, 0)), NewSegment(v(3, 0), v(1, 0)))
	assert.InDelta(t, 1, hit.TA, delta)
	assert.InDelta(t, 3, hit.TB, delta)
}

func TestIntersectLongSegments(t *testing.T) {
	s := Default
	long := NewSegment(v(0, 0), v(1000, 0))

	// The directions are within the angle tolerance but the pair is not
	// collinear, so the crossing is solved directly.
	hit, ok := s.IntersectSegmentSegment(long, NewSegment(v(0, -0.1), v(1000, 0.1)))
	require.True(t, ok)
	require.Equal(t, geom.HitPoint, hit.Kind)
	assertVec(t, v(500, 0), hit.A)

	hit, ok = s.IntersectSegmentSegment(long, NewSegment(v(0, 0), v(1000, 0.5)))
	require.True(t, ok)
	require.Equal(t, geom.HitPoint, hit.Kind, "shared start only")
	assertVec(t, v(0, 0), hit.A)

	hit, ok = s.IntersectSegmentSegment(long, NewSegment(v(999.5, 0), v(2000, 0)))
	require.True(t, ok)
	require.Equal(t, geom.HitSegment, hit.Kind, "half-unit overlap is measured in distance units")
	assertVec(t, v(999.5, 0), hit.A)
	assertVec(t, v(1000, 0), hit.B)

	hit, ok = s.IntersectSegmentSegment(long, NewSegment(v(1000.5, 0), v(2000, 0)))
	assert.False(t, ok, "half-unit gap")
	assert.Equal(t, geom.HitNone, hit.Kind)
}

func TestIntersectLinearCircle(t *testing.T) {
	s := Default
	unit := NewCircle(v(0, 0), 1)

	hit, ok := s.IntersectLineCircle(NewLine(v(-2, 0), v(1, 0)), unit)
	require.True(t, ok)
	require.Equal(t, geom.HitSegment, hit.Kind)
	assertVec(t, v(-1, 0), hit.A)
	assertVec(t, v(1, 0), hit.B)
	assert.InDelta(t, 1, hit.TA, delta)
	assert.InDelta(t, 3, hit.TB, delta)

	hit, ok = s.IntersectLineCircle(NewLine(v(0, 1), v(1, 0)), unit)
	require.True(t, ok)
	assert.Equal(t, geom.HitPoint, hit.Kind)
	assertVec(t, v(0, 1), hit.A)

	hit, ok = s.IntersectLineCircle(NewLine(v(0, 2), v(1, 0)), unit)
	assert.False(t, ok)
	assert.Equal(t, geom.HitNone, hit.Kind)

	hit, ok = s.IntersectRayCircle(NewRay(v(0, 0), v(1, 0)), unit)
	require.True(t, ok)
	assert.Equal(t, geom.HitPoint, hit.Kind)
	assertVec(t, v(1, 0), hit.A)

	hit, ok = s.IntersectRayCircle(NewRay(v(0, -1), v(0, 1)), NewCircle(v(1, 0), 1))
	require.True(t, ok)
	assert.Equal(t, geom.HitPoint, hit.Kind, "tangent")
	assertVec(t, v(0, 0), hit.A)

	hit, ok = s.IntersectRayCircle(NewRay(v(0, -1), v(1, 0)), NewCircle(v(1, 0), 1))
	require.True(t, ok)
	assert.Equal(t, geom.HitPoint, hit.Kind, "tangent")
	assertVec(t, v(1, -1), hit.A)

	hit, ok = s.IntersectRayCircle(NewRay(v(2, 0), v(1, 0)), unit)
	assert.False(t, ok)
	assert.Equal(t, geom.HitNone, hit.Kind)

	hit, ok = s.IntersectSegmentCircle(NewSegment(v(-0.5, 0), v(0.5, 0)), unit)
	assert.True(t, ok, "inside the disk")
	assert.Equal(t, geom.HitNone, hit.Kind)

	hit, ok = s.IntersectSegmentCircle(NewSegment(v(0, 0), v(3, 0)), unit)
	require.True(t, ok)
	assert.Equal(t, geom.HitPoint, hit.Kind)
	assertVec(t, v(1, 0), hit.A)

	hit, ok = s.IntersectSegmentCircle(NewSegment(v(2, 2), v(3, 3)), unit)
	assert.False(t, ok)
	assert.Equal(t, geom.HitNone, hit.Kind)

	hit, ok = s.IntersectSegmentCircle(NewSegment(v(0, 1), v(0, 1)), unit)
	require.True(t, ok)
	assert.Equal(t, geom.HitPoint, hit.Kind, "zero-length segment on the outline")

	_, ok = s.IntersectSegmentCircle(NewSegment(v(0, 0.5), v(0, 0.5)), unit)
	assert.True(t, ok)
}

func TestIntersectCircleCircle(t *testing.T) {
	s := Default
	h := math.Sqrt(0.75)
	tests := []struct {
		name   string
		a, b   Circle
		kind   geom.HitKind
		points [][2]float64
		ok     bool
	}{
		{"external tangent", NewCircle(v(0, 0), 1), NewCircle(v(3, 0), 2), geom.HitPoint, [][2]float64{{1, 0}}, true},
		{"internal tangent", NewCircle(v(0, 0), 3), NewCircle(v(2, 0), 1), geom.HitPoint, [][2]float64{{3, 0}}, true},
		{"internal tangent reversed", NewCircle(v(2, 0), 1), NewCircle(v(0, 0), 3), geom.HitPoint, [][2]float64{{3, 0}}, true},
		{"crossing", NewCircle(v(0, 0), 1), NewCircle(v(1, 0), 1), geom.HitSegment, [][2]float64{{0.5, h}, {0.5, -h}}, true},
		{"separate", NewCircle(v(0, 0), 1), NewCircle(v(5, 0), 1), geom.HitNone, nil, false},
		{"contained", NewCircle(v(0, 0), 3), NewCircle(v(0.5, 0), 1), geom.HitNone, nil, true},
		{"coincident", NewCircle(v(1, 1), 2), NewCircle(v(1, 1), 2), geom.HitParallel, [][2]float64{{1, 3}}, true},
		{"concentric", NewCircle(v(1, 1), 2), NewCircle(v(1, 1), 1), geom.HitNone, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := s.IntersectCircleCircle(tt.a, tt.b)
			require.Equal(t, tt.kind, hit.Kind)
			assert.Equal(t, tt.ok, ok)
			pts := hit.Points()
			require.Len(t, pts, len(tt.points))
			for i, p := range tt.points {
				assertVec(t, v(p[0], p[1]), pts[i])
			}
		})
	}
}

func TestIntersectTotality(t *testing.T) {
	s := Default
	prims := []Segment{
		NewSegment(v(0, 0), v(1, 1)),
		NewSegment(v(1, 1), v(0, 0)),
		NewSegment(v(0.5, 0.5), v(0.5, 0.5)),
		NewSegment(v(-1, 0), v(3, 0)),
		NewSegment(v(0, 2), v(2, 2)),
	}
	for _, a := range prims {
		for _, b := range prims {
			hit, _ := s.IntersectSegmentSegment(a, b)
			assert.Contains(t, []geom.HitKind{geom.HitNone, geom.HitParallel, geom.HitPoint, geom.HitSegment}, hit.Kind)
			for _, p := range hit.Points() {
				assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y))
			}
		}
	}
}

func TestToleranceIsPerSolver(t *testing.T) {
	loose := New(geom.WithEpsilon(0.1))
	strict := New(geom.Double)
	seg := NewSegment(v(0, 0), v(1, 0))
	assert.True(t, loose.PointOnSegment(v(0.5, 0.05), seg))
	assert.False(t, strict.PointOnSegment(v(0.5, 0.05), seg))
}
