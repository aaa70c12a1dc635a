// Package geom holds the pieces shared by the 2D and 3D query engines:
// the tolerance policy, intersection classifications, parameter spans of
// line-like primitives, and the scalar chord solver used for line-like
// versus circle/sphere queries.
//
// Nothing in this package knows about vectors. The dimension-specific
// packages (geom2d, geom3d) reduce their problems to scalar parameters
// along a primitive and hand them here, so both dimensions classify
// degenerate configurations with the same branch structure.
package geom
