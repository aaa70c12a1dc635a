package geom

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Preset epsilon values.
const (
	EpsilonSingle = 1e-3
	EpsilonDouble = 0.0
)

// Tolerance decides when a magnitude is small enough to count as zero.
// It is a plain value passed to every query, so callers running with
// different tolerances never affect each other.
type Tolerance struct {
	Epsilon float64 `toml:"epsilon" yaml:"epsilon" json:"epsilon"`
}

var (
	// Single is the tolerance suited to single-precision inputs.
	Single = Tolerance{Epsilon: EpsilonSingle}
	// Double is the tolerance suited to double-precision inputs. Only exact
	// degeneracies are caught.
	Double = Tolerance{Epsilon: EpsilonDouble}
	// Default is used when no tolerance is configured.
	Default = Single
)

// WithEpsilon returns a tolerance with the given epsilon. Negative values
// are treated as zero.
func WithEpsilon(eps float64) Tolerance {
	if eps < 0 || math.IsNaN(eps) {
		eps = 0
	}
	return Tolerance{Epsilon: eps}
}

// Zero reports whether |x| <= epsilon. The comparison is inclusive so an
// epsilon of zero still catches exact degeneracies.
func (t Tolerance) Zero(x float64) bool {
	return math.Abs(x) <= t.Epsilon
}

// Equal reports whether a and b differ by at most epsilon.
func (t Tolerance) Equal(a, b float64) bool {
	return scalar.EqualWithinAbs(a, b, t.Epsilon)
}

// Less reports whether a is below b by more than epsilon.
func (t Tolerance) Less(a, b float64) bool {
	return a < b-t.Epsilon
}

// Within reports whether x lies in [lo-epsilon, hi+epsilon].
func (t Tolerance) Within(x, lo, hi float64) bool {
	return x >= lo-t.Epsilon && x <= hi+t.Epsilon
}

// Sign returns -1, 0 or +1 for x, treating values within epsilon of zero
// as zero.
func (t Tolerance) Sign(x float64) int {
	switch {
	case x > t.Epsilon:
		return 1
	case x < -t.Epsilon:
		return -1
	}
	return 0
}
