package surface

import (
	stdmath "math"

	"github.com/Faultbox/coverbot/pkg/coverage"
	"github.com/Faultbox/coverbot/pkg/math"
)

// weldTolerance is the grid positions are snapped to before merging.
const weldTolerance = 1e-6

// welder merges coincident triangle corners into shared vertices whose
// normal is the normalised sum of the adjacent face normals.
type welder struct {
	index     map[[3]int64]int
	positions []math.Vec3
	normals   []math.Vec3
}

func newWelder(triangles int) *welder {
	return &welder{
		index:     make(map[[3]int64]int, triangles),
		positions: make([]math.Vec3, 0, triangles),
		normals:   make([]math.Vec3, 0, triangles),
	}
}

func (w *welder) add(p, n math.Vec3) {
	key := [3]int64{snap(p.X), snap(p.Y), snap(p.Z)}
	if i, ok := w.index[key]; ok {
		w.normals[i] = w.normals[i].Add(n)
		return
	}
	w.index[key] = len(w.positions)
	w.positions = append(w.positions, p)
	w.normals = append(w.normals, n)
}

func (w *welder) mesh() *coverage.Mesh {
	for i := range w.normals {
		w.normals[i] = w.normals[i].Normalize()
	}
	return coverage.NewMesh(w.positions, w.normals)
}

func snap(v float64) int64 {
	return int64(stdmath.Round(v / weldTolerance))
}
