package scene

import (
	"fmt"
	"math"
)

// ValidationSeverity indicates whether a finding blocks queries or is
// merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks queries
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	ShapeID  ShapeID            // zero for scene-level findings
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.ShapeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] shape %s: %s", e.Severity, e.ShapeID.Short(), e.Message)
}

// ValidationWarning describes a non-blocking finding.
type ValidationWarning struct {
	ShapeID ShapeID
	Message string
}

func (w ValidationWarning) String() string {
	if w.ShapeID.IsZero() {
		return w.Message
	}
	return fmt.Sprintf("shape %s: %s", w.ShapeID.Short(), w.Message)
}

// ValidationResult bundles errors and warnings from all tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether there are no errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate runs the Tier 1 structural checks. An empty slice means the
// scene is well formed. It never mutates the scene.
func Validate(sc *Scene) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateIndex(sc)...)
	errs = append(errs, validateNames(sc)...)
	errs = append(errs, validateShapes(sc)...)
	return errs
}

// ValidateAll runs the structural and geometric tiers.
func ValidateAll(sc *Scene) ValidationResult {
	var result ValidationResult
	for _, e := range Validate(sc) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{ShapeID: e.ShapeID, Message: e.Message})
		} else {
			result.Errors = append(result.Errors, e)
		}
	}
	errs, warnings := validateGeometry(sc)
	result.Errors = append(result.Errors, errs...)
	result.Warnings = append(result.Warnings, warnings...)
	return result
}

// ---------------------------------------------------------------------------
// Tier 1: structural validation
// ---------------------------------------------------------------------------

// validateIndex checks that the name index and the order list only
// reference existing shapes and that every shape is listed once.
func validateIndex(sc *Scene) []ValidationError {
	var errs []ValidationError

	for name, id := range sc.NameIndex {
		s, ok := sc.Shapes[id]
		switch {
		case !ok:
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("name index entry %q references non-existent shape %s", name, id.Short()),
				Severity: SeverityError,
			})
		case s.Name != name:
			errs = append(errs, ValidationError{
				ShapeID:  id,
				Message:  fmt.Sprintf("name index entry %q points at shape named %q", name, s.Name),
				Severity: SeverityError,
			})
		}
	}

	seen := make(map[ShapeID]int)
	for _, id := range sc.Order {
		if _, ok := sc.Shapes[id]; !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("order entry %s does not exist", id.Short()),
				Severity: SeverityError,
			})
		}
		seen[id]++
	}
	for id := range sc.Shapes {
		switch seen[id] {
		case 0:
			errs = append(errs, ValidationError{
				ShapeID:  id,
				Message:  "shape missing from order",
				Severity: SeverityWarning,
			})
		case 1:
		default:
			errs = append(errs, ValidationError{
				ShapeID:  id,
				Message:  fmt.Sprintf("shape listed %d times in order", seen[id]),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateNames checks that no two shapes share a non-empty name.
func validateNames(sc *Scene) []ValidationError {
	var errs []ValidationError
	byName := make(map[string]int)
	for _, s := range sc.Shapes {
		if s.Name != "" {
			byName[s.Name]++
		}
	}
	for name, n := range byName {
		if n > 1 {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("duplicate name %q assigned to %d shapes", name, n),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateShapes checks kind, dimension and coordinate arity.
func validateShapes(sc *Scene) []ValidationError {
	var errs []ValidationError
	fail := func(s *Shape, format string, args ...interface{}) {
		errs = append(errs, ValidationError{
			ShapeID:  s.ID,
			Message:  fmt.Sprintf(format, args...),
			Severity: SeverityError,
		})
	}

	for id, s := range sc.Shapes {
		if s.ID != id {
			fail(s, "stored under key %s", id.Short())
		}
		if s.Kind < KindPoint || s.Kind > KindSphere {
			fail(s, "unknown kind %d", int(s.Kind))
			continue
		}
		if s.Dim != 2 && s.Dim != 3 {
			fail(s, "dimension is %d, must be 2 or 3", s.Dim)
			continue
		}
		if s.Kind == KindCircle && s.Dim != 2 {
			fail(s, "circle must be 2D; use a sphere in 3D")
		}
		if s.Kind == KindSphere && s.Dim != 3 {
			fail(s, "sphere must be 3D; use a circle in 2D")
		}
		if len(s.A) != s.Dim {
			fail(s, "%s has %d coordinates in a, want %d", s.Kind, len(s.A), s.Dim)
		}
		switch {
		case s.Kind.LineLike() && len(s.B) != s.Dim:
			fail(s, "%s has %d coordinates in b, want %d", s.Kind, len(s.B), s.Dim)
		case !s.Kind.LineLike() && len(s.B) != 0:
			fail(s, "%s takes no b coordinates", s.Kind)
		}
	}

	return errs
}

// ---------------------------------------------------------------------------
// Tier 2: geometric validation
// ---------------------------------------------------------------------------

// validateGeometry flags inputs the query engines treat as caller errors
// and warns about degenerate shapes. Shapes that fail Tier 1 arity checks
// are skipped.
func validateGeometry(sc *Scene) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	for _, s := range sc.List() {
		if len(s.A) != s.Dim || (s.Kind.LineLike() && len(s.B) != s.Dim) {
			continue
		}
		if !finite(s.A) || !finite(s.B) || !finite([]float64{s.Radius}) {
			errs = append(errs, ValidationError{
				ShapeID:  s.ID,
				Message:  "coordinates must be finite",
				Severity: SeverityError,
			})
			continue
		}
		switch s.Kind {
		case KindLine, KindRay:
			if norm(s.B) == 0 {
				errs = append(errs, ValidationError{
					ShapeID:  s.ID,
					Message:  fmt.Sprintf("%s direction is zero", s.Kind),
					Severity: SeverityError,
				})
			}
		case KindSegment:
			if dist(s.A, s.B) == 0 {
				warnings = append(warnings, ValidationWarning{
					ShapeID: s.ID,
					Message: "segment has zero length and behaves as a point",
				})
			}
		case KindCircle, KindSphere:
			switch {
			case s.Radius < 0:
				errs = append(errs, ValidationError{
					ShapeID:  s.ID,
					Message:  fmt.Sprintf("%s radius is %.4f, must not be negative", s.Kind, s.Radius),
					Severity: SeverityError,
				})
			case s.Radius == 0:
				warnings = append(warnings, ValidationWarning{
					ShapeID: s.ID,
					Message: fmt.Sprintf("%s has zero radius and behaves as a point", s.Kind),
				})
			}
		}
	}

	return errs, warnings
}

func finite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func dist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
