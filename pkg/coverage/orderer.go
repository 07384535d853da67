package coverage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Faultbox/coverbot/pkg/math"
)

// rowGapFactor scales the mean dominant-axis spacing into the row break threshold.
const rowGapFactor = 1.5

// Strategy selects a PathOrderer.
type Strategy string

// Ordering strategies.
const (
	StrategyBoustrophedon Strategy = "boustrophedon"
	StrategyGreedy        Strategy = "greedy"
)

// ParseStrategy parses a strategy name, case-insensitively.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "boustrophedon", "zigzag":
		return StrategyBoustrophedon, nil
	case "greedy", "nearest", "greedy-nn":
		return StrategyGreedy, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// PathOrderer sequences a set of points into a traversal order. The output
// is always a permutation of the input.
type PathOrderer interface {
	Order(points []math.Vec3) []math.Vec3
	Strategy() Strategy
}

// NewOrderer returns the orderer for a strategy.
func NewOrderer(s Strategy) (PathOrderer, error) {
	switch s {
	case StrategyBoustrophedon:
		return Boustrophedon{}, nil
	case StrategyGreedy:
		return NearestNeighbor{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Boustrophedon orders points in rows along the dominant axis, reversing
// every other row.
type Boustrophedon struct{}

// Strategy returns StrategyBoustrophedon.
func (Boustrophedon) Strategy() Strategy { return StrategyBoustrophedon }

// Order implements PathOrderer.
func (Boustrophedon) Order(points []math.Vec3) []math.Vec3 {
	if len(points) == 0 {
		return nil
	}
	r := math.BoundsOf(points).Range()
	dominant := DominantAxis(r)
	secondary, tertiary := secondaryAxes(dominant, r)

	sorted := make([]math.Vec3, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Component(dominant) < sorted[j].Component(dominant)
	})

	threshold := meanGap(sorted, dominant) * rowGapFactor

	var rows [][]math.Vec3
	row := []math.Vec3{sorted[0]}
	last := sorted[0].Component(dominant)
	for _, p := range sorted[1:] {
		v := p.Component(dominant)
		if v-last > threshold {
			rows = append(rows, row)
			row = nil
		}
		row = append(row, p)
		last = v
	}
	rows = append(rows, row)

	out := make([]math.Vec3, 0, len(points))
	for i, row := range rows {
		sort.SliceStable(row, func(a, b int) bool {
			return lessOn(row[a], row[b], secondary, dominant, tertiary)
		})
		if i%2 == 1 {
			for l, h := 0, len(row)-1; l < h; l, h = l+1, h-1 {
				row[l], row[h] = row[h], row[l]
			}
		}
		out = append(out, row...)
	}
	return out
}

// DominantAxis returns the axis with the largest extent. When several axes
// share the largest extent the highest-index one wins (Z over Y over X).
// An X=Y tie therefore picks Y rather than falling back to Z, so a square
// plate in the XY plane still splits into rows.
func DominantAxis(r math.Vec3) math.Axis {
	best := math.AxisZ
	for _, a := range []math.Axis{math.AxisY, math.AxisX} {
		if r.Component(a) > r.Component(best) {
			best = a
		}
	}
	return best
}

// secondaryAxes returns the non-dominant axis with the larger extent (later
// axis on ties) and the remaining one.
func secondaryAxes(dominant math.Axis, r math.Vec3) (math.Axis, math.Axis) {
	var a, b math.Axis
	switch dominant {
	case math.AxisX:
		a, b = math.AxisY, math.AxisZ
	case math.AxisY:
		a, b = math.AxisX, math.AxisZ
	default:
		a, b = math.AxisX, math.AxisY
	}
	if r.Component(a) > r.Component(b) {
		return a, b
	}
	return b, a
}

func meanGap(sorted []math.Vec3, axis math.Axis) float64 {
	if len(sorted) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(sorted); i++ {
		total += sorted[i].Component(axis) - sorted[i-1].Component(axis)
	}
	return total / float64(len(sorted)-1)
}

func lessOn(p, q math.Vec3, axes ...math.Axis) bool {
	for _, a := range axes {
		pv, qv := p.Component(a), q.Component(a)
		if pv != qv {
			return pv < qv
		}
	}
	return false
}

// NearestNeighbor builds a greedy tour: start at the first point and always
// step to the closest unvisited one. O(n^2).
type NearestNeighbor struct{}

// Strategy returns StrategyGreedy.
func (NearestNeighbor) Strategy() Strategy { return StrategyGreedy }

// Order implements PathOrderer.
func (NearestNeighbor) Order(points []math.Vec3) []math.Vec3 {
	if len(points) == 0 {
		return nil
	}
	visited := make([]bool, len(points))
	out := make([]math.Vec3, 0, len(points))

	cur := 0
	visited[cur] = true
	out = append(out, points[cur])

	for len(out) < len(points) {
		next := -1
		best := 0.0
		for i, p := range points {
			if visited[i] {
				continue
			}
			// Strict < keeps the first of equally distant candidates.
			if d := points[cur].Distance(p); next < 0 || d < best {
				next, best = i, d
			}
		}
		visited[next] = true
		out = append(out, points[next])
		cur = next
	}
	return out
}
