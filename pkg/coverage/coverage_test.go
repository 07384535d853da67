package coverage

import (
	"sort"

	"github.com/Faultbox/coverbot/pkg/math"
)

// gridMesh returns an n x n vertex grid on z=0 with unit spacing and +Z normals.
func gridMesh(n int) *Mesh {
	var verts, norms []math.Vec3
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			verts = append(verts, math.Vec3{X: float64(x), Y: float64(y)})
			norms = append(norms, math.UnitZ)
		}
	}
	return NewMesh(verts, norms)
}

// cubeCorners returns the 8 corners of a 2-unit cube with outward normals.
func cubeCorners() *Mesh {
	var verts, norms []math.Vec3
	for _, x := range []float64{-1, 1} {
		for _, y := range []float64{-1, 1} {
			for _, z := range []float64{-1, 1} {
				v := math.Vec3{X: x, Y: y, Z: z}
				verts = append(verts, v)
				norms = append(norms, v.Normalize())
			}
		}
	}
	return NewMesh(verts, norms)
}

// sameMultiset reports whether a and b hold the same points, ignoring order.
func sameMultiset(a, b []math.Vec3) bool {
	if len(a) != len(b) {
		return false
	}
	key := func(s []math.Vec3) []math.Vec3 {
		c := append([]math.Vec3(nil), s...)
		sort.Slice(c, func(i, j int) bool { return lessOn(c[i], c[j], math.AxisX, math.AxisY, math.AxisZ) })
		return c
	}
	ka, kb := key(a), key(b)
	for i := range ka {
		if ka[i] != kb[i] {
			return false
		}
	}
	return true
}

func equalPaths(a, b []math.Vec3) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
