// Package surface builds meshes for the coverage planner: demo solids
// tessellated with sdfx, and meshes read from YAML files.
package surface

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Faultbox/coverbot/pkg/coverage"
	"github.com/Faultbox/coverbot/pkg/math"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultCells is the marching cubes resolution along the longest side.
const DefaultCells = 40

// ErrUnknownShape is returned for a shape name with no generator.
var ErrUnknownShape = errors.New("unknown shape")

// ShapeParams sizes a generated solid. Unused fields are ignored by shapes
// that do not need them.
type ShapeParams struct {
	Width     float64 // X
	Depth     float64 // Y
	Height    float64 // Z
	Radius    float64
	Cells     int
	Transform math.Mat4
}

// DefaultShapeParams returns a 10 unit solid centred on the origin.
func DefaultShapeParams() ShapeParams {
	return ShapeParams{
		Width:     10,
		Depth:     10,
		Height:    1,
		Radius:    5,
		Cells:     DefaultCells,
		Transform: math.Identity(),
	}
}

type generator func(p ShapeParams) (sdf.SDF3, error)

var generators = map[string]generator{
	"plate": func(p ShapeParams) (sdf.SDF3, error) {
		return sdf.Box3D(v3.Vec{X: p.Width, Y: p.Depth, Z: p.Height}, 0)
	},
	"box": func(p ShapeParams) (sdf.SDF3, error) {
		return sdf.Box3D(v3.Vec{X: p.Width, Y: p.Depth, Z: p.Width}, 0)
	},
	"sphere": func(p ShapeParams) (sdf.SDF3, error) {
		return sdf.Sphere3D(p.Radius)
	},
	"cylinder": func(p ShapeParams) (sdf.SDF3, error) {
		return sdf.Cylinder3D(p.Height, p.Radius, 0)
	},
}

// Shapes lists the names accepted by Generate.
func Shapes() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate tessellates the named solid into a welded mesh with per-vertex
// normals.
func Generate(name string, p ShapeParams) (*coverage.Mesh, error) {
	gen, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
	s, err := gen(p)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", name, err)
	}

	cells := p.Cells
	if cells <= 0 {
		cells = DefaultCells
	}
	mesh := Tessellate(s, cells)
	if mesh.IsEmpty() {
		return nil, fmt.Errorf("%s: %w", name, coverage.ErrEmptyMesh)
	}
	if p.Transform != (math.Mat4{}) {
		mesh.Transform = p.Transform
	}
	return mesh, nil
}

// Tessellate runs uniform marching cubes over s and welds the triangles.
func Tessellate(s sdf.SDF3, cells int) *coverage.Mesh {
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))

	w := newWelder(len(triangles))
	for _, tri := range triangles {
		n := tri.Normal()
		normal := math.Vec3{X: n.X, Y: n.Y, Z: n.Z}
		if !normal.IsFinite() {
			// zero-area triangle
			continue
		}
		for j := 0; j < 3; j++ {
			v := tri[j]
			w.add(math.Vec3{X: v.X, Y: v.Y, Z: v.Z}, normal)
		}
	}
	return w.mesh()
}
