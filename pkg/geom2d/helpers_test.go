package geom2d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

const delta = 1e-9

func v(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

func assertVec(t *testing.T, want, got r2.Vec, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, delta, msgAndArgs...)
}

func assertPair(t *testing.T, wantA, wantB r2.Vec, got Pair) {
	t.Helper()
	assertVec(t, wantA, got.A, "A")
	assertVec(t, wantB, got.B, "B")
}
