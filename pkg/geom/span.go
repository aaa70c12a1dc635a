package geom

import "math"

// Span is the valid parameter interval of a line-like primitive
// parametrized as origin + t*direction. Unbounded ends are infinite.
type Span struct {
	Min, Max float64
}

// Spans of the three line-like primitives.
var (
	LineSpan    = Span{Min: math.Inf(-1), Max: math.Inf(1)}
	RaySpan     = Span{Min: 0, Max: math.Inf(1)}
	SegmentSpan = Span{Min: 0, Max: 1}
)

// Clamp returns t restricted to the span.
func (s Span) Clamp(t float64) float64 {
	return math.Max(s.Min, math.Min(s.Max, t))
}

// Bounded reports whether both ends are finite.
func (s Span) Bounded() bool {
	return !math.IsInf(s.Min, 0) && !math.IsInf(s.Max, 0)
}

// Anchor returns the parameter in the span nearest to zero, the primitive's
// defining point when the span contains it.
func (s Span) Anchor() float64 {
	return s.Clamp(0)
}

// Map returns the image of the span under t -> offset + scale*t, with the
// ends reordered when scale is negative.
func (s Span) Map(offset, scale float64) Span {
	if scale == 0 {
		return Span{Min: offset, Max: offset}
	}
	lo := offset + scale*s.Min
	hi := offset + scale*s.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	return Span{Min: lo, Max: hi}
}

// Contains reports whether t lies in the span widened by epsilon.
func (t Tolerance) Contains(s Span, x float64) bool {
	return t.Within(x, s.Min, s.Max)
}

// Overlap intersects two spans. The boolean reports whether the spans
// share a parameter within epsilon; when they only touch across a gap of
// at most epsilon the returned span is collapsed to a single value.
func (t Tolerance) Overlap(a, b Span) (Span, bool) {
	lo := math.Max(a.Min, b.Min)
	hi := math.Min(a.Max, b.Max)
	if lo > hi+t.Epsilon {
		return Span{}, false
	}
	if lo > hi {
		hi = lo
	}
	return Span{Min: lo, Max: hi}, true
}
