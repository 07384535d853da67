package coverage

import (
	gomath "math"

	"github.com/Faultbox/coverbot/pkg/math"
)

// DefaultPlanarEpsilon is the largest axis extent still treated as flat.
const DefaultPlanarEpsilon = 0.1

// Classification says which binning grid a surface uses.
type Classification int

const (
	Planar Classification = iota
	Volumetric
)

func (c Classification) String() string {
	if c == Planar {
		return "planar"
	}
	return "volumetric"
}

// Classify returns Planar when any extent of b is at most epsilon.
func Classify(b math.Bounds, epsilon float64) Classification {
	r := b.Range()
	if r.X <= epsilon || r.Y <= epsilon || r.Z <= epsilon {
		return Planar
	}
	return Volumetric
}

// DesiredCount is the target number of representative points:
// max(2, floor(total * density)).
func DesiredCount(total int, density float64) int {
	n := int(gomath.Floor(float64(total) * density))
	if n < 2 {
		return 2
	}
	return n
}

// PlaneAxes returns the two axes spanning the sampling plane and the flat axis
// that is dropped. The flat axis is the one with the smallest extent; ties
// resolve X before Y before Z.
func PlaneAxes(r math.Vec3) (a, b, fixed math.Axis) {
	switch {
	case r.X <= r.Y && r.X <= r.Z:
		return math.AxisY, math.AxisZ, math.AxisX
	case r.Y <= r.X && r.Y <= r.Z:
		return math.AxisX, math.AxisZ, math.AxisY
	default:
		return math.AxisX, math.AxisY, math.AxisZ
	}
}

// Bin is the set of samples sharing one grid or voxel cell.
type Bin struct {
	Cell    [3]int
	Members []SampledVertex
}

// Centroid returns the mean position and the normalized sum of normals.
// A *DegenerateBinError is returned when the normals cancel out; the
// position is still valid in that case.
func (b *Bin) Centroid() (SampledVertex, error) {
	var pos, nsum math.Vec3
	for _, m := range b.Members {
		pos = pos.Add(m.Position)
		nsum = nsum.Add(m.Normal)
	}
	rep := SampledVertex{Position: pos.Scale(1 / float64(len(b.Members)))}
	if nsum.Length() == 0 {
		return rep, &DegenerateBinError{Cell: b.Cell, Members: len(b.Members)}
	}
	rep.Normal = nsum.Normalize()
	return rep, nil
}

// Binning is the outcome of one binning pass.
type Binning struct {
	Bounds         math.Bounds
	Classification Classification
	DesiredCount   int
	// GridSize is cells per axis: gridSize for planar, voxelSize for volumetric.
	GridSize int
	// PlaneA, PlaneB are the sampling plane axes (planar only).
	PlaneA, PlaneB math.Axis
	// Bins holds the occupied cells in grid order.
	Bins []*Bin
}

// BinSamples buckets samples into grid cells sized from the requested density.
// samples must be non-empty.
func BinSamples(samples []SampledVertex, density, planarEpsilon float64) *Binning {
	bounds := math.BoundsOf(positionsOf(samples))
	res := &Binning{
		Bounds:         bounds,
		Classification: Classify(bounds, planarEpsilon),
		DesiredCount:   DesiredCount(len(samples), density),
	}

	if res.Classification == Planar {
		res.binPlanar(samples)
	} else {
		res.binVolumetric(samples)
	}
	return res
}

func (res *Binning) binPlanar(samples []SampledVertex) {
	r := res.Bounds.Range()
	a, b, _ := PlaneAxes(r)
	n := int(gomath.Ceil(gomath.Sqrt(float64(res.DesiredCount))))
	res.GridSize, res.PlaneA, res.PlaneB = n, a, b

	lo := res.Bounds.Min.Project(a, b)
	size := r.Project(a, b)
	size.X, size.Y = size.X/float64(n), size.Y/float64(n)

	cells := make([]*Bin, n*n)
	for _, s := range samples {
		p := s.Position.Project(a, b)
		i := cellIndex(p.X, lo.X, size.X, n)
		j := cellIndex(p.Y, lo.Y, size.Y, n)
		k := i*n + j
		if cells[k] == nil {
			cells[k] = &Bin{Cell: [3]int{i, j, 0}}
		}
		cells[k].Members = append(cells[k].Members, s)
	}
	res.Bins = compact(cells)
}

func (res *Binning) binVolumetric(samples []SampledVertex) {
	r := res.Bounds.Range()
	n := int(gomath.Ceil(gomath.Cbrt(float64(res.DesiredCount))))
	res.GridSize = n

	lo := res.Bounds.Min
	size := r.Scale(1 / float64(n))

	cells := make([]*Bin, n*n*n)
	for _, s := range samples {
		i := cellIndex(s.Position.X, lo.X, size.X, n)
		j := cellIndex(s.Position.Y, lo.Y, size.Y, n)
		k := cellIndex(s.Position.Z, lo.Z, size.Z, n)
		idx := (i*n+j)*n + k
		if cells[idx] == nil {
			cells[idx] = &Bin{Cell: [3]int{i, j, k}}
		}
		cells[idx].Members = append(cells[idx].Members, s)
	}
	res.Bins = compact(cells)
}

// cellIndex maps a coordinate to its cell, clamped to [0, n-1]. A zero-width
// axis puts everything in cell 0.
func cellIndex(v, lo, size float64, n int) int {
	if size <= 0 {
		return 0
	}
	i := int(gomath.Floor((v - lo) / size))
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

func compact(cells []*Bin) []*Bin {
	var out []*Bin
	for _, c := range cells {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
