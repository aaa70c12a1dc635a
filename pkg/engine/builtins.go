package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/geoq/pkg/geom"
	"github.com/chazu/geoq/pkg/geom2d"
	"github.com/chazu/geoq/pkg/geom3d"
	"github.com/chazu/geoq/pkg/query"
	"github.com/chazu/geoq/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites geoq source before passing it to zygomys.
// It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: hit-kind -> hit_kind
//     zygomys reads a hyphen inside an identifier as subtraction, so
//     kebab-case identifiers become underscore form outside of strings
//     and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// zygomys comments are //, not ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec is a 2D or 3D coordinate tuple built by vec2 / vec3.
type sexpVec struct {
	coords []float64
}

func (v *sexpVec) SexpString(ps *zygo.PrintState) string {
	parts := make([]string, len(v.coords))
	for i, c := range v.coords {
		parts[i] = fmt.Sprintf("%g", c)
	}
	return fmt.Sprintf("(vec%d %s)", len(v.coords), strings.Join(parts, " "))
}
func (v *sexpVec) Type() *zygo.RegisteredType { return nil }

func (v *sexpVec) dim() int { return len(v.coords) }

func (v *sexpVec) vec2() r2.Vec { return r2.Vec{X: v.coords[0], Y: v.coords[1]} }

func (v *sexpVec) vec3() r3.Vec { return r3.Vec{X: v.coords[0], Y: v.coords[1], Z: v.coords[2]} }

// sexpShape wraps a scene shape, named or anonymous.
type sexpShape struct {
	shape *scene.Shape
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	if s.shape.Name != "" {
		return fmt.Sprintf("(shape %q)", s.shape.Name)
	}
	return fmt.Sprintf("(%s %dd %s)", s.shape.Kind, s.shape.Dim, s.shape.ID.Short())
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// sexpResult wraps a query result so hit-kind and hit-points can read it.
type sexpResult struct {
	res query.Result
}

func (r *sexpResult) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %s %s :kind %s :distance %g)", r.res.Op, r.res.A, r.res.B, r.res.Kind, r.res.Distance)
}
func (r *sexpResult) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toVec(s zygo.Sexp) (*sexpVec, error) {
	if v, ok := s.(*sexpVec); ok {
		return v, nil
	}
	return nil, fmt.Errorf("expected vec2 or vec3, got %T (%s)", s, s.SexpString(nil))
}

// toVecPair extracts two vectors of the same dimension.
func toVecPair(args []zygo.Sexp) (*sexpVec, *sexpVec, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("requires 2 vector arguments, got %d", len(args))
	}
	a, err := toVec(args[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := toVec(args[1])
	if err != nil {
		return nil, nil, err
	}
	if a.dim() != b.dim() {
		return nil, nil, fmt.Errorf("mixed vec%d and vec%d", a.dim(), b.dim())
	}
	return a, b, nil
}

// toShape accepts a shape value or the name of a defined shape.
func (st *evalState) toShape(s zygo.Sexp) (*scene.Shape, error) {
	switch v := s.(type) {
	case *sexpShape:
		return v.shape, nil
	case *zygo.SexpStr:
		if sh := st.scene.Lookup(v.S); sh != nil {
			return sh, nil
		}
		return nil, fmt.Errorf("no shape named %q", v.S)
	}
	return nil, fmt.Errorf("expected shape, got %T (%s)", s, s.SexpString(nil))
}

func toResult(s zygo.Sexp) (query.Result, error) {
	if r, ok := s.(*sexpResult); ok {
		return r.res, nil
	}
	return query.Result{}, fmt.Errorf("expected query result, got %T (%s)", s, s.SexpString(nil))
}

func floatList(xs []float64) zygo.Sexp {
	items := make([]zygo.Sexp, len(xs))
	for i, x := range xs {
		items[i] = &zygo.SexpFloat{Val: x}
	}
	return zygo.MakeList(items)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

type builtin = func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// registerBuiltins installs the geoq builtins into a zygomys environment.
// The builtins write shapes and query results into st.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, st *evalState) {
	builtins := map[string]builtin{
		"vec2":       vecBuiltin(2),
		"vec3":       vecBuiltin(3),
		"point":      st.point,
		"line":       st.lineLike(scene.KindLine),
		"ray":        st.lineLike(scene.KindRay),
		"segment":    st.lineLike(scene.KindSegment),
		"circle":     st.round(scene.KindCircle),
		"sphere":     st.round(scene.KindSphere),
		"defshape":   st.defshape,
		"shape":      st.shape,
		"tolerance":  st.tolerance,
		"closest":    st.query(query.OpClosest),
		"intersect":  st.query(query.OpIntersect),
		"distance":   st.distance,
		"hit_kind":   hitKind,
		"hit_points": hitPoints,
	}
	for name, fn := range builtins {
		env.AddFunction(name, fn)
	}
}

// (vec2 1 2), (vec3 1 2 3)
func vecBuiltin(n int) builtin {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != n {
			return zygo.SexpNull, fmt.Errorf("%s requires exactly %d arguments, got %d", name, n, len(args))
		}
		coords := make([]float64, n)
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %c: %w", name, "xyz"[i], err)
			}
			coords[i] = f
		}
		return &sexpVec{coords: coords}, nil
	}
}

// (point (vec2 1 2))
func (st *evalState) point(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 1 {
		return zygo.SexpNull, fmt.Errorf("point requires a vector argument")
	}
	v, err := toVec(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("point: %w", err)
	}
	if v.dim() == 2 {
		return &sexpShape{shape: scene.Point2(v.vec2())}, nil
	}
	return &sexpShape{shape: scene.Point3(v.vec3())}, nil
}

// (line pos dir), (ray pos dir), (segment start end)
func (st *evalState) lineLike(kind scene.Kind) builtin {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := toVecPair(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", kind, err)
		}
		var sh *scene.Shape
		switch {
		case kind == scene.KindLine && a.dim() == 2:
			sh = scene.Line2(geom2d.NewLine(a.vec2(), b.vec2()))
		case kind == scene.KindLine:
			sh = scene.Line3(geom3d.NewLine(a.vec3(), b.vec3()))
		case kind == scene.KindRay && a.dim() == 2:
			sh = scene.Ray2(geom2d.NewRay(a.vec2(), b.vec2()))
		case kind == scene.KindRay:
			sh = scene.Ray3(geom3d.NewRay(a.vec3(), b.vec3()))
		case a.dim() == 2:
			sh = scene.Segment2(geom2d.NewSegment(a.vec2(), b.vec2()))
		default:
			sh = scene.Segment3(geom3d.NewSegment(a.vec3(), b.vec3()))
		}
		return &sexpShape{shape: sh}, nil
	}
}

// (circle (vec2 0 0) 1), (sphere (vec3 0 0 0) 1)
func (st *evalState) round(kind scene.Kind) builtin {
	dim := 2
	if kind == scene.KindSphere {
		dim = 3
	}
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("%s requires a center and a radius", kind)
		}
		c, err := toVec(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: center: %w", kind, err)
		}
		if c.dim() != dim {
			return zygo.SexpNull, fmt.Errorf("%s: center must be vec%d", kind, dim)
		}
		r, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: radius: %w", kind, err)
		}
		if dim == 2 {
			return &sexpShape{shape: scene.Circle(geom2d.NewCircle(c.vec2(), r))}, nil
		}
		return &sexpShape{shape: scene.Sphere(geom3d.NewSphere(c.vec3(), r))}, nil
	}
}

// (defshape "name" (circle ...))
func (st *evalState) defshape(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 2 {
		return zygo.SexpNull, fmt.Errorf("defshape requires a name and a shape expression")
	}
	shapeName, err := toString(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("defshape: name: %w", err)
	}
	body, ok := args[1].(*sexpShape)
	if !ok {
		return zygo.SexpNull, fmt.Errorf("defshape: expected shape expression, got %T", args[1])
	}
	cp := *body.shape
	sh := cp.Named(shapeName)
	if err := st.scene.Add(sh); err != nil {
		return zygo.SexpNull, fmt.Errorf("defshape: %w", err)
	}
	return &sexpShape{shape: sh}, nil
}

// (shape "name")
func (st *evalState) shape(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 1 {
		return zygo.SexpNull, fmt.Errorf("shape requires a name argument")
	}
	shapeName, err := toString(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("shape: name: %w", err)
	}
	sh := st.scene.Lookup(shapeName)
	if sh == nil {
		return zygo.SexpNull, fmt.Errorf("shape: no shape named %q", shapeName)
	}
	return &sexpShape{shape: sh}, nil
}

// (tolerance 0.01), (tolerance :single), (tolerance :double)
func (st *evalState) tolerance(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 1 {
		return zygo.SexpNull, fmt.Errorf("tolerance requires one argument")
	}
	var tol geom.Tolerance
	if preset, ok := isKW(args[0]); ok {
		switch preset {
		case "single":
			tol = geom.Single
		case "double":
			tol = geom.Double
		default:
			return zygo.SexpNull, fmt.Errorf("tolerance: unknown preset %q, expected single or double", preset)
		}
	} else {
		eps, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tolerance: %w", err)
		}
		if eps < 0 {
			return zygo.SexpNull, fmt.Errorf("tolerance: epsilon must not be negative, got %g", eps)
		}
		tol = geom.WithEpsilon(eps)
	}
	st.setTolerance(tol)
	return &zygo.SexpFloat{Val: tol.Epsilon}, nil
}

func (st *evalState) run(op query.Op, args []zygo.Sexp) (query.Result, error) {
	if len(args) != 2 {
		return query.Result{}, fmt.Errorf("%s requires two shapes, got %d arguments", op, len(args))
	}
	a, err := st.toShape(args[0])
	if err != nil {
		return query.Result{}, fmt.Errorf("%s: %w", op, err)
	}
	b, err := st.toShape(args[1])
	if err != nil {
		return query.Result{}, fmt.Errorf("%s: %w", op, err)
	}
	res, err := st.runner.Run(op, a, b)
	if err != nil {
		return query.Result{}, fmt.Errorf("%s: %w", op, err)
	}
	st.results = append(st.results, res)
	return res, nil
}

// (closest a b), (intersect a b)
func (st *evalState) query(op query.Op) builtin {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		res, err := st.run(op, args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpResult{res: res}, nil
	}
}

// (distance a b) evaluates to a number so scripts can do arithmetic on it.
func (st *evalState) distance(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	res, err := st.run(query.OpDistance, args)
	if err != nil {
		return zygo.SexpNull, err
	}
	return &zygo.SexpFloat{Val: res.Distance}, nil
}

// (hit-kind (intersect a b)) -> "point"
func hitKind(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 1 {
		return zygo.SexpNull, fmt.Errorf("hit-kind requires a query result")
	}
	res, err := toResult(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("hit-kind: %w", err)
	}
	return &zygo.SexpStr{S: res.Kind.String()}, nil
}

// (hit-points (intersect a b)) -> ((x y) ...)
func hitPoints(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 1 {
		return zygo.SexpNull, fmt.Errorf("hit-points requires a query result")
	}
	res, err := toResult(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("hit-points: %w", err)
	}
	items := make([]zygo.Sexp, len(res.Points))
	for i, p := range res.Points {
		items[i] = floatList(p)
	}
	return zygo.MakeList(items), nil
}
