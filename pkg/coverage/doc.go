// Package coverage plans an ordered coverage path over a surface mesh.
//
// A planning pass runs four stages:
//
//	Sample  - mesh vertices and normals into world space
//	Bin     - bucket samples into a 2D grid (planar surfaces) or 3D voxel grid
//	Offset  - lift each bin representative along its normal
//	Order   - sequence the points with a PathOrderer (boustrophedon or greedy)
//
// The result is an OrderedPath whose insertion order is the traversal order.
package coverage
