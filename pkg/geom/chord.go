package geom

import "math"

// ChordKind classifies how an infinite line meets a circle or sphere.
type ChordKind int

const (
	ChordMiss ChordKind = iota
	ChordTangent
	ChordCross
)

// Chord locates the crossings of a parametric line with a circle or
// sphere in the line's own parameters.
type Chord struct {
	Kind ChordKind
	// Foot is the parameter of the point nearest the center.
	Foot float64
	// Enter and Exit are the crossing parameters, Enter <= Exit. Both
	// equal Foot for a tangent and are meaningless for a miss.
	Enter, Exit float64
}

// Chord solves the crossing of a line with a circle of the given radius.
// foot is the parameter of the perpendicular foot of the center, perpSq
// the squared distance from the center to the line and dirSq the squared
// length of the line's direction (non-zero).
//
// The discriminant radius^2 - perpSq decides the kind: below -epsilon is
// a miss, within epsilon of zero a tangent.
func (t Tolerance) Chord(foot, perpSq, radius, dirSq float64) Chord {
	halfSq := radius*radius - perpSq
	switch {
	case halfSq < -t.Epsilon:
		return Chord{Kind: ChordMiss, Foot: foot, Enter: foot, Exit: foot}
	case halfSq <= t.Epsilon:
		return Chord{Kind: ChordTangent, Foot: foot, Enter: foot, Exit: foot}
	}
	h := math.Sqrt(halfSq / dirSq)
	return Chord{Kind: ChordCross, Foot: foot, Enter: foot - h, Exit: foot + h}
}

// Clip restricts a chord to the span of a primitive. It returns the
// classification with the parameters of the reported points, and whether
// the primitive shares any point with the disk. A span lying strictly
// inside the circle is HitNone with touching set.
func (t Tolerance) Clip(c Chord, s Span) (kind HitKind, t0, t1 float64, touching bool) {
	switch c.Kind {
	case ChordTangent:
		if t.Contains(s, c.Foot) {
			return HitPoint, c.Foot, c.Foot, true
		}
	case ChordCross:
		enter := t.Contains(s, c.Enter)
		exit := t.Contains(s, c.Exit)
		switch {
		case enter && exit:
			return HitSegment, c.Enter, c.Exit, true
		case enter:
			return HitPoint, c.Enter, c.Enter, true
		case exit:
			return HitPoint, c.Exit, c.Exit, true
		case c.Enter < s.Min && c.Exit > s.Max:
			return HitNone, 0, 0, true
		}
	}
	return HitNone, 0, 0, false
}

// Nearest returns the parameter of the primitive point closest to the
// outline and whether that point lies on the outline.
//
// When the primitive crosses the outline the first crossing in the span
// wins. A span strictly inside the circle yields its end farther from
// the center, the start on a tie. Otherwise the foot is clamped into the
// span.
func (t Tolerance) Nearest(c Chord, s Span) (param float64, onOutline bool) {
	switch c.Kind {
	case ChordTangent:
		if t.Contains(s, c.Foot) {
			return s.Clamp(c.Foot), true
		}
	case ChordCross:
		if t.Contains(s, c.Enter) {
			return s.Clamp(c.Enter), true
		}
		if t.Contains(s, c.Exit) {
			return s.Clamp(c.Exit), true
		}
		if c.Enter < s.Min && c.Exit > s.Max {
			if math.Abs(s.Max-c.Foot) > math.Abs(s.Min-c.Foot) {
				return s.Max, false
			}
			return s.Min, false
		}
	}
	return s.Clamp(c.Foot), false
}
