package scene

import (
	"errors"
	"fmt"

	"github.com/chazu/geoq/pkg/geom"
)

// ErrDuplicateName is returned by Add when the name is already taken.
var ErrDuplicateName = errors.New("duplicate shape name")

// Scene is the set of shapes produced by one evaluation or loaded from a
// file. Each evaluation produces a new scene; scenes are not shared
// between evaluations.
type Scene struct {
	Shapes    map[ShapeID]*Shape `json:"shapes"`
	NameIndex map[string]ShapeID `json:"name_index"`
	Order     []ShapeID          `json:"order"`
	// Tolerance overrides the caller's tolerance when set.
	Tolerance *geom.Tolerance `json:"tolerance,omitempty"`
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		Shapes:    make(map[ShapeID]*Shape),
		NameIndex: make(map[string]ShapeID),
	}
}

// Add registers a shape, computing its ID when unset. A name may be used
// once, even by an identical shape. Re-adding an unnamed shape whose ID is
// already present is a no-op.
func (sc *Scene) Add(s *Shape) error {
	if s.ID.IsZero() {
		s.ID = s.Hash()
	}
	if s.Name != "" {
		if _, taken := sc.NameIndex[s.Name]; taken {
			return fmt.Errorf("%w: %q", ErrDuplicateName, s.Name)
		}
	}
	if _, ok := sc.Shapes[s.ID]; ok {
		return nil
	}
	if s.Name != "" {
		sc.NameIndex[s.Name] = s.ID
	}
	sc.Shapes[s.ID] = s
	sc.Order = append(sc.Order, s.ID)
	return nil
}

// Lookup returns the shape with the given name, or nil.
func (sc *Scene) Lookup(name string) *Shape {
	id, ok := sc.NameIndex[name]
	if !ok {
		return nil
	}
	return sc.Shapes[id]
}

// MustLookup returns the shape with the given name, or panics.
func (sc *Scene) MustLookup(name string) *Shape {
	s := sc.Lookup(name)
	if s == nil {
		panic(fmt.Sprintf("scene: no shape named %q", name))
	}
	return s
}

// Get returns the shape with the given ID, or nil.
func (sc *Scene) Get(id ShapeID) *Shape {
	return sc.Shapes[id]
}

// List returns the shapes in insertion order.
func (sc *Scene) List() []*Shape {
	out := make([]*Shape, 0, len(sc.Order))
	for _, id := range sc.Order {
		if s := sc.Shapes[id]; s != nil {
			out = append(out, s)
		}
	}
	return out
}

// OfKind returns the shapes of one kind in insertion order.
func (sc *Scene) OfKind(k Kind) []*Shape {
	var out []*Shape
	for _, s := range sc.List() {
		if s.Kind == k {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of shapes.
func (sc *Scene) Len() int {
	return len(sc.Shapes)
}
