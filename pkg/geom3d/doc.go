// Package geom3d is the 3D counterpart of geom2d, restricted to points,
// lines, rays, segments and spheres. Pairs of line-like primitives are
// not supported in 3D.
package geom3d
