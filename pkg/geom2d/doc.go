// Package geom2d implements closest-point, intersection and distance
// queries between 2D primitives: points, lines, rays, segments and
// circles.
//
// Vectors are gonum r2.Vec values. All queries are methods on Solver,
// which carries the tolerance used to detect parallel directions,
// zero-length segments, tangencies and boundary cases. Queries are pure
// and safe for concurrent use.
//
// Line-like primitives are parametrized as origin + t*direction: a Line
// accepts any t, a Ray t >= 0 and a Segment t in [0, 1] with direction
// End-Start. Parameters reported in Hit values follow this convention for
// the first argument of the query.
package geom2d
