package sdfx

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec2 converts a gonum vector to an sdfx one.
func Vec2(v r2.Vec) v2.Vec { return v2.Vec{X: v.X, Y: v.Y} }

// FromVec2 converts an sdfx vector to a gonum one.
func FromVec2(v v2.Vec) r2.Vec { return r2.Vec{X: v.X, Y: v.Y} }

// Vec3 converts a gonum vector to an sdfx one.
func Vec3(v r3.Vec) v3.Vec { return v3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

// FromVec3 converts an sdfx vector to a gonum one.
func FromVec3(v v3.Vec) r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

func r2Of(v r3.Vec) r2.Vec { return r2.Vec{X: v.X, Y: v.Y} }
