// Package tessellate walks a scene and produces triangle meshes of its
// round shapes using a geometry kernel. One mesh is produced per shape.
package tessellate

import (
	"fmt"

	"github.com/chazu/geoq/pkg/kernel"
	"github.com/chazu/geoq/pkg/scene"
)

// Meshable reports whether s can be turned into a field: a circle or
// sphere with a positive radius.
func Meshable(s *scene.Shape) bool {
	return s.Kind.Round() && s.Radius > 0
}

// field builds the kernel field of a round shape.
func field(k kernel.Kernel, s *scene.Shape) (kernel.Field, error) {
	switch s.Kind {
	case scene.KindCircle:
		return k.Circle(s.Circle())
	case scene.KindSphere:
		return k.Sphere(s.Sphere())
	}
	return nil, fmt.Errorf("shape %s of kind %s has no field", s.Label(), s.Kind)
}

// Tessellate produces one mesh per meshable shape, in insertion order.
// Other shapes are skipped. The tessellator never mutates the scene.
func Tessellate(sc *scene.Scene, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if sc == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for _, s := range sc.List() {
		if !Meshable(s) {
			continue
		}
		f, err := field(k, s)
		if err != nil {
			return nil, fmt.Errorf("tessellate: %s: %w", s.Label(), err)
		}
		mesh, err := k.ToMesh(f)
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for shape %s: %w", s.Label(), err)
		}
		mesh.ShapeName = s.Label()
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

// Merged unions every meshable shape into a single mesh named name. It
// returns nil when the scene has nothing to mesh.
func Merged(sc *scene.Scene, k kernel.Kernel, name string) (*kernel.Mesh, error) {
	if sc == nil {
		return nil, nil
	}

	var acc kernel.Field
	for _, s := range sc.List() {
		if !Meshable(s) {
			continue
		}
		f, err := field(k, s)
		if err != nil {
			return nil, fmt.Errorf("tessellate: %s: %w", s.Label(), err)
		}
		if acc == nil {
			acc = f
			continue
		}
		if acc, err = k.Union(acc, f); err != nil {
			return nil, fmt.Errorf("tessellate: union with %s: %w", s.Label(), err)
		}
	}
	if acc == nil {
		return nil, nil
	}

	mesh, err := k.ToMesh(acc)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for merged scene: %w", err)
	}
	mesh.ShapeName = name
	return mesh, nil
}
