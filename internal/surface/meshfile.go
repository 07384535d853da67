package surface

import (
	"errors"
	"fmt"
	stdmath "math"
	"os"
	"path/filepath"

	"github.com/Faultbox/coverbot/pkg/coverage"
	"github.com/Faultbox/coverbot/pkg/math"
	"gopkg.in/yaml.v3"
)

// ErrBadMeshFile is returned when a mesh file is malformed.
var ErrBadMeshFile = errors.New("malformed mesh file")

// MeshFile is the YAML layout of a stored surface.
//
//	transform:
//	  translate: [0, 0, 1]
//	  rotate: [0, 0, 90]   # degrees, applied X then Y then Z
//	  scale: [1, 1, 1]
//	vertices: [[0, 0, 0], [1, 0, 0]]
//	normals:  [[0, 0, 1], [0, 0, 1]]
type MeshFile struct {
	Transform TransformSpec `yaml:"transform,omitempty"`
	Vertices  [][3]float64  `yaml:"vertices"`
	Normals   [][3]float64  `yaml:"normals"`
}

// TransformSpec is a translate/rotate/scale placement.
type TransformSpec struct {
	Translate [3]float64  `yaml:"translate,flow,omitempty"`
	Rotate    [3]float64  `yaml:"rotate,flow,omitempty"`
	Scale     *[3]float64 `yaml:"scale,flow,omitempty"`
}

// Matrix returns T * Rz * Ry * Rx * S.
func (t TransformSpec) Matrix() math.Mat4 {
	m := math.Translate(t.Translate[0], t.Translate[1], t.Translate[2])
	m = m.Mul(math.RotateZ(deg(t.Rotate[2])))
	m = m.Mul(math.RotateY(deg(t.Rotate[1])))
	m = m.Mul(math.RotateX(deg(t.Rotate[0])))
	if t.Scale != nil {
		m = m.Mul(math.Scale(t.Scale[0], t.Scale[1], t.Scale[2]))
	}
	return m
}

func deg(d float64) float64 { return d * stdmath.Pi / 180 }

// LoadMesh reads a YAML mesh file.
func LoadMesh(path string) (*coverage.Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseMesh(data)
}

// ParseMesh decodes YAML mesh data.
func ParseMesh(data []byte) (*coverage.Mesh, error) {
	var f MeshFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMeshFile, err)
	}
	if len(f.Vertices) != len(f.Normals) {
		return nil, fmt.Errorf("%w: %d vertices, %d normals", coverage.ErrMismatchedNormals, len(f.Vertices), len(f.Normals))
	}

	mesh := coverage.NewMesh(toVecs(f.Vertices), toVecs(f.Normals))
	mesh.Transform = f.Transform.Matrix()
	return mesh, nil
}

// SaveMesh writes m to path as YAML in local space. The world transform is
// baked into the vertices, so the file always has an identity transform.
func SaveMesh(path string, m coverage.Surface) error {
	data, err := MarshalMesh(m)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create mesh dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

// MarshalMesh encodes m as YAML with its transform applied.
func MarshalMesh(m coverage.Surface) ([]byte, error) {
	xf := m.WorldTransform()
	verts, norms := m.Vertices(), m.Normals()

	f := MeshFile{
		Vertices: make([][3]float64, len(verts)),
		Normals:  make([][3]float64, len(norms)),
	}
	for i, v := range verts {
		f.Vertices[i] = fromVec(xf.TransformPoint(v))
	}
	for i, n := range norms {
		f.Normals[i] = fromVec(xf.TransformDirection(n).Normalize())
	}
	return yaml.Marshal(&f)
}

func toVecs(in [][3]float64) []math.Vec3 {
	out := make([]math.Vec3, len(in))
	for i, v := range in {
		out[i] = math.Vec3{X: v[0], Y: v[1], Z: v[2]}
	}
	return out
}

func fromVec(v math.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
