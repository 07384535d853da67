package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformPoint(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}
}

func TestTransformPointScale(t *testing.T) {
	m := Scale(2, 2, 2)
	got := m.TransformPoint(Vec3{1, 2, 3})
	want := Vec3{2, 4, 6}
	if got != want {
		t.Errorf("TransformPoint with scale: got %v, want %v", got, want)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(5, 5, 5).Mul(Scale(2, 1, 1))
	got := m.TransformDirection(Vec3{1, 0, 0})
	want := Vec3{2, 0, 0}
	if got != want {
		t.Errorf("TransformDirection: got %v, want %v", got, want)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(math.Pi / 2)
	result := m.TransformPoint(Vec3{1, 0, 0})

	// (1,0,0) rotated 90 degrees about Y becomes (0,0,-1)
	if !near(result, Vec3{0, 0, -1}) {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateAxisMatchesRotateZ(t *testing.T) {
	angle := 0.7
	a := RotateAxis(UnitZ, angle)
	b := RotateZ(angle)
	for i := 0; i < 16; i++ {
		if math.Abs(a[i]-b[i]) > 1e-12 {
			t.Fatalf("element %d: RotateAxis %f, RotateZ %f", i, a[i], b[i])
		}
	}
}

func TestTranslation(t *testing.T) {
	m := Translate(4, 5, 6).Mul(RotateX(1.2))
	if got := m.Translation(); got != (Vec3{4, 5, 6}) {
		t.Errorf("Translation() = %v, want (4, 5, 6)", got)
	}
}

func near(a, b Vec3) bool {
	return a.Distance(b) < 1e-9
}
