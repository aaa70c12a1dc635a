package scene

import (
	"fmt"
	"io"
	"os"

	"github.com/chazu/geoq/pkg/geom"
	"gopkg.in/yaml.v3"
)

// document is the YAML layout of a scene file:
//
//	epsilon: 0.001
//	shapes:
//	  - name: diagonal
//	    kind: segment
//	    dim: 2
//	    a: [0, 0]
//	    b: [2, 2]
type document struct {
	Epsilon *float64 `yaml:"epsilon,omitempty"`
	Shapes  []*Shape `yaml:"shapes"`
}

// Load decodes a scene from YAML. Shapes are added in file order; a
// repeated name is an error. Load does not validate geometry.
func Load(r io.Reader) (*Scene, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode scene: %w", err)
	}

	sc := New()
	if doc.Epsilon != nil {
		tol := geom.WithEpsilon(*doc.Epsilon)
		sc.Tolerance = &tol
	}
	for i, s := range doc.Shapes {
		if s == nil {
			return nil, fmt.Errorf("shape %d is empty", i)
		}
		s.ID = s.Hash()
		if err := sc.Add(s); err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return sc, nil
}

// LoadFile reads a scene from a YAML file.
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Save encodes the scene as YAML in insertion order.
func Save(w io.Writer, sc *Scene) error {
	doc := document{Shapes: sc.List()}
	if sc.Tolerance != nil {
		eps := sc.Tolerance.Epsilon
		doc.Epsilon = &eps
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return enc.Close()
}
