package coverage

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/Faultbox/coverbot/pkg/math"
)

func orderers() []PathOrderer {
	return []PathOrderer{Boustrophedon{}, NearestNeighbor{}}
}

func randomPoints(seed int64, n int) []math.Vec3 {
	r := rand.New(rand.NewSource(seed))
	pts := make([]math.Vec3, n)
	for i := range pts {
		pts[i] = math.Vec3{X: r.Float64() * 10, Y: r.Float64() * 4, Z: r.Float64()}
	}
	return pts
}

func TestOrderers_Permutation(t *testing.T) {
	inputs := map[string][]math.Vec3{
		"random":     randomPoints(1, 60),
		"grid":       gridMesh(6).Positions,
		"duplicates": {{X: 1}, {X: 1}, {X: 2}, {X: 1}, {X: 2, Y: 3}},
		"collinear":  {{Z: 3}, {Z: 1}, {Z: 2}},
	}
	for _, o := range orderers() {
		for name, pts := range inputs {
			t.Run(string(o.Strategy())+"/"+name, func(t *testing.T) {
				in := append([]math.Vec3(nil), pts...)
				got := o.Order(in)
				if !sameMultiset(got, pts) {
					t.Errorf("output is not a permutation of the input:\n got %v\nwant %v", got, pts)
				}
				if !equalPaths(in, pts) {
					t.Error("orderer mutated its input")
				}
			})
		}
	}
}

func TestOrderers_SinglePoint(t *testing.T) {
	p := []math.Vec3{{X: 3, Y: 4, Z: 5}}
	for _, o := range orderers() {
		got := o.Order(p)
		if !equalPaths(got, p) {
			t.Errorf("%s: Order(single) = %v, want %v", o.Strategy(), got, p)
		}
	}
}

func TestOrderers_Empty(t *testing.T) {
	for _, o := range orderers() {
		if got := o.Order(nil); len(got) != 0 {
			t.Errorf("%s: Order(nil) = %v, want empty", o.Strategy(), got)
		}
	}
}

func TestDominantAxis(t *testing.T) {
	tests := []struct {
		name string
		r    math.Vec3
		want math.Axis
	}{
		{"x largest", math.Vec3{X: 5, Y: 1, Z: 1}, math.AxisX},
		{"y largest", math.Vec3{X: 1, Y: 5, Z: 1}, math.AxisY},
		{"z largest", math.Vec3{X: 1, Y: 1, Z: 5}, math.AxisZ},
		{"x and y tie", math.Vec3{X: 7, Y: 7, Z: 0}, math.AxisY},
		{"x and z tie", math.Vec3{X: 7, Y: 1, Z: 7}, math.AxisZ},
		{"all equal", math.Vec3{X: 2, Y: 2, Z: 2}, math.AxisZ},
		{"all zero", math.Vec3{}, math.AxisZ},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DominantAxis(tt.r); got != tt.want {
				t.Errorf("DominantAxis(%v) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestBoustrophedon_Zigzag(t *testing.T) {
	// Three rows along Y, traversed in X.
	pts := []math.Vec3{
		{X: 2, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0},
		{X: 0, Y: 5}, {X: 2, Y: 5}, {X: 1, Y: 5},
		{X: 1, Y: 10}, {X: 0, Y: 10}, {X: 2, Y: 10},
	}
	want := []math.Vec3{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
		{X: 2, Y: 5}, {X: 1, Y: 5}, {X: 0, Y: 5},
		{X: 0, Y: 10}, {X: 1, Y: 10}, {X: 2, Y: 10},
	}
	if got := (Boustrophedon{}).Order(pts); !equalPaths(got, want) {
		t.Errorf("Order() =\n %v\nwant\n %v", got, want)
	}
}

func TestBoustrophedon_Idempotent(t *testing.T) {
	inputs := [][]math.Vec3{
		randomPoints(7, 40),
		gridMesh(5).Positions,
		{{X: 1, Y: 1}, {X: 1, Y: 1, Z: 2}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	}
	var b Boustrophedon
	for i, pts := range inputs {
		once := b.Order(pts)
		twice := b.Order(once)
		if !equalPaths(once, twice) {
			t.Errorf("input %d: re-sorting changed the path:\n once %v\ntwice %v", i, once, twice)
		}
	}
}

func TestBoustrophedon_Deterministic(t *testing.T) {
	pts := randomPoints(3, 50)
	var b Boustrophedon
	if !equalPaths(b.Order(pts), b.Order(pts)) {
		t.Error("two runs on the same input differ")
	}
}

func TestNearestNeighbor_Order(t *testing.T) {
	pts := []math.Vec3{{X: 0}, {X: 10}, {X: 1}, {X: 3}, {X: 6}}
	want := []math.Vec3{{X: 0}, {X: 1}, {X: 3}, {X: 6}, {X: 10}}
	if got := (NearestNeighbor{}).Order(pts); !equalPaths(got, want) {
		t.Errorf("Order() = %v, want %v", got, want)
	}
}

func TestNearestNeighbor_TieBreak(t *testing.T) {
	// (-1,0,0) and (1,0,0) are equally close to the start; the first listed wins.
	pts := []math.Vec3{{}, {X: 1}, {X: -1}}
	got := (NearestNeighbor{}).Order(pts)
	want := []math.Vec3{{}, {X: 1}, {X: -1}}
	if !equalPaths(got, want) {
		t.Errorf("Order() = %v, want %v", got, want)
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"boustrophedon", StrategyBoustrophedon, false},
		{"Zigzag", StrategyBoustrophedon, false},
		{"greedy", StrategyGreedy, false},
		{" nearest ", StrategyGreedy, false},
		{"spiral", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownStrategy) {
				t.Errorf("ParseStrategy(%q): expected ErrUnknownStrategy, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseStrategy(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestNewOrderer_Unknown(t *testing.T) {
	if _, err := NewOrderer("spiral"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
}
