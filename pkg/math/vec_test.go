package math

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	got := UnitX.Cross(UnitY)
	if got != UnitZ {
		t.Errorf("Vec3.Cross() = %v, want %v", got, UnitZ)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 12}.Normalize()
	if l := n.Length(); math.Abs(l-1) > 1e-12 {
		t.Errorf("Vec3.Normalize().Length() = %v, want 1", l)
	}
	if z := (Vec3{}).Normalize(); !z.IsZero() {
		t.Errorf("zero vector should normalize to zero, got %v", z)
	}
}

func TestVec3Component(t *testing.T) {
	v := Vec3{1, 2, 3}
	for axis, want := range map[Axis]float64{AxisX: 1, AxisY: 2, AxisZ: 3} {
		if got := v.Component(axis); got != want {
			t.Errorf("Component(%v) = %v, want %v", axis, got, want)
		}
	}
}

func TestVec3MoveTowards(t *testing.T) {
	tests := []struct {
		name     string
		from, to Vec3
		delta    float64
		want     Vec3
	}{
		{"partial step", Vec3{0, 0, 0}, Vec3{10, 0, 0}, 2, Vec3{2, 0, 0}},
		{"no overshoot", Vec3{0, 0, 0}, Vec3{1, 0, 0}, 5, Vec3{1, 0, 0}},
		{"already there", Vec3{1, 1, 1}, Vec3{1, 1, 1}, 1, Vec3{1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.MoveTowards(tt.to, tt.delta); got != tt.want {
				t.Errorf("MoveTowards() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundsOf(t *testing.T) {
	b := BoundsOf([]Vec3{{1, 5, -1}, {-2, 0, 3}, {0, 2, 0}})
	if b.Min != (Vec3{-2, 0, -1}) || b.Max != (Vec3{1, 5, 3}) {
		t.Errorf("BoundsOf() = %+v", b)
	}
	if r := b.Range(); r != (Vec3{3, 5, 4}) {
		t.Errorf("Range() = %v, want (3, 5, 4)", r)
	}
	if !b.Contains(Vec3{0, 1, 0}) || b.Contains(Vec3{2, 1, 0}) {
		t.Error("Contains() gave wrong answer")
	}
	if empty := BoundsOf(nil); empty != (Bounds{}) {
		t.Errorf("BoundsOf(nil) = %+v, want zero", empty)
	}
}
