package engine

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/geoq/pkg/geom"
	"github.com/chazu/geoq/pkg/query"
	"github.com/chazu/geoq/pkg/scene"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(tolerance :double)`,
			expect: `(tolerance "__kw_double")`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(hit-kind (intersect a b))`,
			expect: `(hit_kind (intersect a b))`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "negative literal preserved",
			input:  `(vec2 -1 2)`,
			expect: `(vec2 -1 2)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `:hit-kind`,
			expect: `"__kw_hit-kind"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func mustEvaluate(t *testing.T, source string) *Report {
	t.Helper()
	rep, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if rep == nil {
		t.Fatal("expected non-nil report")
	}
	return rep
}

func mustFail(t *testing.T, source, want string) {
	t.Helper()
	rep, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if rep != nil {
		t.Fatal("expected nil report on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
	if !strings.Contains(evalErrs[0].Message, want) {
		t.Errorf("error %q does not mention %q", evalErrs[0].Message, want)
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// ---------------------------------------------------------------------------
// Shape definitions
// ---------------------------------------------------------------------------

func TestDefshape(t *testing.T) {
	rep := mustEvaluate(t, `
(defshape "unit" (circle (vec2 0 0) 1))
(defshape "axis" (line (vec2 -2 0) (vec2 1 0)))
(defshape "ball" (sphere (vec3 0 0 0) 2))
(defshape "tip" (point (vec3 1 2 3)))
`)
	if rep.Scene.Len() != 4 {
		t.Fatalf("expected 4 shapes, got %d", rep.Scene.Len())
	}

	unit := rep.Scene.Lookup("unit")
	if unit == nil {
		t.Fatal("expected shape named 'unit'")
	}
	if unit.Kind != scene.KindCircle || unit.Dim != 2 || unit.Radius != 1 {
		t.Errorf("unit = %v", unit)
	}

	axis := rep.Scene.Lookup("axis")
	if axis == nil || axis.Kind != scene.KindLine {
		t.Fatalf("axis = %v", axis)
	}
	if axis.A[0] != -2 || axis.B[0] != 1 {
		t.Errorf("axis coordinates = %v %v", axis.A, axis.B)
	}

	ball := rep.Scene.Lookup("ball")
	if ball == nil || ball.Kind != scene.KindSphere || ball.Dim != 3 {
		t.Fatalf("ball = %v", ball)
	}

	names := []string{}
	for _, s := range rep.Scene.List() {
		names = append(names, s.Name)
	}
	if strings.Join(names, ",") != "unit,axis,ball,tip" {
		t.Errorf("order = %v", names)
	}
}

func TestVariableReference(t *testing.T) {
	rep := mustEvaluate(t, `
(def r 2.5)
(def c (vec2 1 1))
(defshape "disk" (circle c r))
(defshape "same" (shape "disk"))
`)
	disk := rep.Scene.Lookup("disk")
	if disk == nil {
		t.Fatal("expected shape named 'disk'")
	}
	if disk.Radius != 2.5 {
		t.Errorf("radius = %g, want 2.5", disk.Radius)
	}
	if rep.Scene.Lookup("same") == nil {
		t.Error("expected shape named 'same'")
	}
}

func TestShapeErrors(t *testing.T) {
	mustFail(t, `(shape "missing")`, "missing")
	mustFail(t, `(circle (vec3 0 0 0) 1)`, "vec2")
	mustFail(t, `(sphere (vec2 0 0) 1)`, "vec3")
	mustFail(t, `(segment (vec2 0 0) (vec3 1 1 1))`, "mixed")
	mustFail(t, `(vec2 1)`, "exactly 2")
	mustFail(t, `(defshape "a" 42)`, "shape expression")
	mustFail(t, `
(defshape "a" (point (vec2 0 0)))
(defshape "a" (point (vec2 1 0)))
`, "duplicate")
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

func TestIntersectQuery(t *testing.T) {
	rep := mustEvaluate(t, `
(defshape "diag" (segment (vec2 0 0) (vec2 2 2)))
(defshape "anti" (segment (vec2 0 2) (vec2 2 0)))
(def h (intersect "diag" (shape "anti")))
(def k (hit-kind h))
(def pts (hit-points h))
`)
	if len(rep.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(rep.Results))
	}
	res := rep.Results[0]
	if res.Op != query.OpIntersect {
		t.Errorf("op = %s", res.Op)
	}
	if res.A != "diag" || res.B != "anti" {
		t.Errorf("labels = %s, %s", res.A, res.B)
	}
	if res.Kind != geom.HitPoint {
		t.Fatalf("kind = %s, want point", res.Kind)
	}
	if len(res.Points) != 1 || !near(res.Points[0][0], 1) || !near(res.Points[0][1], 1) {
		t.Errorf("points = %v, want [[1 1]]", res.Points)
	}
}

func TestHitKindValue(t *testing.T) {
	rep := mustEvaluate(t, `
(def h (intersect (circle (vec2 0 0) 1) (circle (vec2 3 0) 2)))
(def k (hit-kind h))
(def pts (hit-points h))
`)
	if rep.Results[0].Kind != geom.HitPoint {
		t.Errorf("kind = %s", rep.Results[0].Kind)
	}
}

func TestDistanceArithmetic(t *testing.T) {
	rep := mustEvaluate(t, `
(def d (distance (point (vec2 3 4)) (point (vec2 0 0))))
(def twice (* d 2))
(closest (circle (vec2 0 0) 1) (segment (vec2 2 -1) (vec2 2 1)))
`)
	if len(rep.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(rep.Results))
	}
	if rep.Results[0].Op != query.OpDistance || !near(rep.Results[0].Distance, 5) {
		t.Errorf("distance result = %+v", rep.Results[0])
	}
	cl := rep.Results[1]
	if cl.Op != query.OpClosest || !near(cl.Distance, 1) {
		t.Errorf("closest result = %+v", cl)
	}
	if !near(cl.Points[0][0], 1) || !near(cl.Points[1][0], 2) {
		t.Errorf("closest points = %v", cl.Points)
	}
}

func TestSphereQueries(t *testing.T) {
	rep := mustEvaluate(t, `
(defshape "a" (sphere (vec3 0 0 0) 1))
(defshape "b" (sphere (vec3 1 0 0) 1))
(intersect "a" "b")
(intersect (segment (vec3 0 0 -3) (vec3 0 0 3)) "a")
`)
	ss := rep.Results[0]
	if ss.Kind != geom.HitCircle || ss.Circle == nil {
		t.Fatalf("sphere-sphere = %+v", ss)
	}
	if !near(ss.Circle.Center[0], 0.5) || !near(ss.Circle.Radius, math.Sqrt(0.75)) {
		t.Errorf("circle = %+v", ss.Circle)
	}
	if rep.Results[1].Kind != geom.HitSegment {
		t.Errorf("segment-sphere kind = %s", rep.Results[1].Kind)
	}
}

func TestQueryErrors(t *testing.T) {
	mustFail(t, `(intersect (line (vec3 0 0 0) (vec3 1 0 0)) (ray (vec3 0 1 0) (vec3 0 0 1)))`, "unsupported")
	mustFail(t, `(closest (point (vec2 0 0)) (point (vec3 0 0 0)))`, "dimension")
	mustFail(t, `(distance "nowhere" (point (vec2 0 0)))`, "nowhere")
	mustFail(t, `(hit-kind 3)`, "query result")
}

// ---------------------------------------------------------------------------
// Tolerance
// ---------------------------------------------------------------------------

func TestTolerance(t *testing.T) {
	source := `
(defshape "s" (segment (vec2 0 0) (vec2 1 0)))
(defshape "p" (point (vec2 0.5 0.05)))
(intersect "p" "s")
(tolerance 0.1)
(intersect "p" "s")
`
	rep := mustEvaluate(t, source)
	if rep.Results[0].Kind != geom.HitNone {
		t.Errorf("before: kind = %s, want none", rep.Results[0].Kind)
	}
	if rep.Results[1].Kind != geom.HitPoint {
		t.Errorf("after: kind = %s, want point", rep.Results[1].Kind)
	}
	if !near(rep.Tolerance.Epsilon, 0.1) {
		t.Errorf("report tolerance = %v", rep.Tolerance)
	}
	if rep.Scene.Tolerance == nil || !near(rep.Scene.Tolerance.Epsilon, 0.1) {
		t.Errorf("scene tolerance = %v", rep.Scene.Tolerance)
	}

	rep = mustEvaluate(t, `(tolerance :double)`)
	if rep.Tolerance != geom.Double {
		t.Errorf("preset tolerance = %v", rep.Tolerance)
	}

	mustFail(t, `(tolerance :quad)`, "unknown preset")
	mustFail(t, `(tolerance -1)`, "negative")
}

func TestEngineTolerance(t *testing.T) {
	rep, _, err := NewEngine(WithTolerance(geom.Double)).Evaluate(`(+ 1 1)`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if rep.Tolerance != geom.Double {
		t.Errorf("tolerance = %v, want double", rep.Tolerance)
	}
}

func TestArithmeticStillWorks(t *testing.T) {
	rep := mustEvaluate(t, `
(def x (+ 10 20))
(defshape "c" (circle (vec2 0 0) x))
`)
	if c := rep.Scene.Lookup("c"); c == nil || c.Radius != 30 {
		t.Errorf("c = %v", c)
	}
}
