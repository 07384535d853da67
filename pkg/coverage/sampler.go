package coverage

import (
	"fmt"

	"github.com/Faultbox/coverbot/pkg/math"
)

// Sample converts local-space mesh data into world-space samples.
// Positions go through the full transform; normals through its linear part
// and are renormalized.
func Sample(vertices, normals []math.Vec3, transform math.Mat4) ([]SampledVertex, error) {
	if len(vertices) == 0 {
		return nil, ErrEmptyMesh
	}
	if len(normals) != len(vertices) {
		return nil, fmt.Errorf("%w: %d vertices, %d normals", ErrMismatchedNormals, len(vertices), len(normals))
	}

	out := make([]SampledVertex, len(vertices))
	for i, v := range vertices {
		out[i] = SampledVertex{
			Position: transform.TransformPoint(v),
			Normal:   transform.TransformDirection(normals[i]).Normalize(),
		}
	}
	return out, nil
}

// SampleSurface samples a Surface accessor.
func SampleSurface(s Surface) ([]SampledVertex, error) {
	return Sample(s.Vertices(), s.Normals(), s.WorldTransform())
}

func positionsOf(samples []SampledVertex) []math.Vec3 {
	out := make([]math.Vec3, len(samples))
	for i, s := range samples {
		out[i] = s.Position
	}
	return out
}
