package geom

import "fmt"

// HitKind classifies the relationship between two primitives.
type HitKind int

const (
	// HitNone means the primitives share no boundary point.
	HitNone HitKind = iota
	// HitParallel means the primitives are collinear or coincident and
	// their overlap is unbounded (a ray or a whole line) or the whole
	// shape (coincident circles or spheres). Offset parallel primitives
	// are HitNone.
	HitParallel
	// HitPoint means a single shared point.
	HitPoint
	// HitSegment means a bounded overlap between two points. For a
	// line-like primitive against a circle the two points are the
	// crossings of the outline.
	HitSegment
	// HitCircle is the intersection of two spheres.
	HitCircle
)

var hitKindNames = [...]string{
	HitNone:     "none",
	HitParallel: "parallel",
	HitPoint:    "point",
	HitSegment:  "segment",
	HitCircle:   "circle",
}

func (k HitKind) String() string {
	if k < 0 || int(k) >= len(hitKindNames) {
		return fmt.Sprintf("HitKind(%d)", int(k))
	}
	return hitKindNames[k]
}

// ParseHitKind is the inverse of String.
func ParseHitKind(s string) (HitKind, error) {
	for i, name := range hitKindNames {
		if name == s {
			return HitKind(i), nil
		}
	}
	return HitNone, fmt.Errorf("unknown hit kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k HitKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *HitKind) UnmarshalText(b []byte) error {
	v, err := ParseHitKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
