package coverage

import (
	"github.com/Faultbox/coverbot/pkg/math"
)

// SampledVertex is a world-space mesh vertex with its unit normal.
type SampledVertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Surface is the accessor a scene layer provides for planning.
type Surface interface {
	Vertices() []math.Vec3
	Normals() []math.Vec3
	WorldTransform() math.Mat4
}

// Mesh is a plain Surface: index-aligned vertex and normal arrays in local
// space plus the transform that places them in the world.
type Mesh struct {
	Positions   []math.Vec3
	NormalsData []math.Vec3
	Transform   math.Mat4
}

// NewMesh returns a mesh placed at the world origin.
func NewMesh(vertices, normals []math.Vec3) *Mesh {
	return &Mesh{Positions: vertices, NormalsData: normals, Transform: math.Identity()}
}

// Vertices returns the local-space vertex positions.
func (m *Mesh) Vertices() []math.Vec3 { return m.Positions }

// Normals returns the local-space vertex normals.
func (m *Mesh) Normals() []math.Vec3 { return m.NormalsData }

// WorldTransform returns the local-to-world transform.
func (m *Mesh) WorldTransform() math.Mat4 { return m.Transform }

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Positions) }

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool { return len(m.Positions) == 0 }

// MarkerSink receives one visual marker per planned point. The presentation
// layer owns marker allocation and pooling.
type MarkerSink interface {
	Clear()
	Place(p math.Vec3)
}

// OrderedPath is an immutable sequence of waypoints in traversal order.
type OrderedPath struct {
	points []math.Vec3
}

// NewOrderedPath copies points into a new path.
func NewOrderedPath(points []math.Vec3) OrderedPath {
	cp := make([]math.Vec3, len(points))
	copy(cp, points)
	return OrderedPath{points: cp}
}

// Len returns the number of waypoints.
func (p OrderedPath) Len() int { return len(p.points) }

// IsEmpty reports whether the path has no waypoints.
func (p OrderedPath) IsEmpty() bool { return len(p.points) == 0 }

// At returns the i-th waypoint.
func (p OrderedPath) At(i int) math.Vec3 { return p.points[i] }

// Points returns a copy of the waypoints.
func (p OrderedPath) Points() []math.Vec3 {
	cp := make([]math.Vec3, len(p.points))
	copy(cp, p.points)
	return cp
}

// TravelLength returns the summed distance between consecutive waypoints.
func (p OrderedPath) TravelLength() float64 {
	var total float64
	for i := 1; i < len(p.points); i++ {
		total += p.points[i].Distance(p.points[i-1])
	}
	return total
}
