package coverage

import "github.com/Faultbox/coverbot/pkg/math"

// Offset lifts each sample along its normal by distance, preserving order.
func Offset(samples []SampledVertex, distance float64) []math.Vec3 {
	out := make([]math.Vec3, len(samples))
	for i, s := range samples {
		out[i] = s.Position.Add(s.Normal.Scale(distance))
	}
	return out
}
