package motion

import (
	"testing"

	"github.com/Faultbox/coverbot/pkg/coverage"
	"github.com/Faultbox/coverbot/pkg/math"
)

func squarePath() coverage.OrderedPath {
	return coverage.NewOrderedPath([]math.Vec3{
		{X: 1}, {X: 1, Y: 1}, {Y: 1},
	})
}

// run steps the mover until it goes idle or the budget runs out.
func run(m *Mover, dt float64, budget int) int {
	for i := 0; i < budget; i++ {
		if m.State() == StateIdle {
			return i
		}
		m.Update(dt)
	}
	return budget
}

func TestMover_IdleUntilStarted(t *testing.T) {
	m := NewMover(DefaultConfig(), math.Vec3{})
	m.SetPath(squarePath())

	if got := m.Update(1); got != (math.Vec3{}) {
		t.Errorf("idle mover moved to %v", got)
	}
	if m.State() != StateIdle {
		t.Errorf("State() = %v, want idle", m.State())
	}
}

func TestMover_FollowsPathInOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReturnHome = false
	m := NewMover(cfg, math.Vec3{})
	m.SetPath(squarePath())
	if !m.Start() {
		t.Fatal("Start() = false")
	}
	if m.State() != StateApproaching {
		t.Errorf("State() = %v, want approaching", m.State())
	}

	var visited []int
	last := -1
	for i := 0; i < 1000 && m.State() != StateIdle; i++ {
		m.Update(0.01)
		if c := m.Cursor(); c != last {
			visited = append(visited, c)
			last = c
		}
	}

	want := []int{0, 1, 2, 3}
	if len(visited) != len(want) {
		t.Fatalf("cursor sequence = %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("cursor sequence = %v, want %v", visited, want)
		}
	}
	if !m.Done() {
		t.Error("Done() = false after finishing")
	}
	if d := m.Position().Distance(math.Vec3{Y: 1}); d > cfg.ArrivalThreshold {
		t.Errorf("stopped %f from last waypoint", d)
	}
}

func TestMover_ReturnsHome(t *testing.T) {
	home := math.Vec3{Z: 2}
	m := NewMover(DefaultConfig(), home)
	m.SetPath(squarePath())
	m.Start()

	sawReturning := false
	for i := 0; i < 2000 && m.State() != StateIdle; i++ {
		m.Update(0.01)
		if m.State() == StateReturning {
			sawReturning = true
		}
	}
	if !sawReturning {
		t.Error("never entered returning state")
	}
	if d := m.Position().Distance(home); d > DefaultConfig().ArrivalThreshold {
		t.Errorf("ended %f from home", d)
	}
}

func TestMover_SpeedBoundsStep(t *testing.T) {
	cfg := Config{Speed: 2, ArrivalThreshold: 0.01}
	m := NewMover(cfg, math.Vec3{})
	m.SetPath(coverage.NewOrderedPath([]math.Vec3{{X: 10}}))
	m.Start()

	got := m.Update(0.5)
	if d := got.Distance(math.Vec3{X: 1}); d > 1e-12 {
		t.Errorf("after 0.5s at speed 2: %v, want (1, 0, 0)", got)
	}
}

func TestMover_StopAndResume(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReturnHome = false
	m := NewMover(cfg, math.Vec3{})
	m.SetPath(squarePath())
	m.Start()

	for m.Cursor() < 2 {
		m.Update(0.01)
	}
	m.Stop()
	pos := m.Position()
	m.Update(1)
	if m.Position() != pos {
		t.Error("stopped mover kept moving")
	}

	if !m.Start() || m.State() != StateFollowing {
		t.Fatalf("resume: state %v", m.State())
	}
	if n := run(m, 0.01, 1000); n == 1000 {
		t.Fatal("did not finish after resume")
	}
	if !m.Done() {
		t.Error("Done() = false")
	}
}

func TestMover_SetPathResetsCursor(t *testing.T) {
	m := NewMover(DefaultConfig(), math.Vec3{})
	m.SetPath(squarePath())
	m.Start()
	for m.Cursor() < 1 {
		m.Update(0.01)
	}

	m.SetPath(squarePath())
	if m.Cursor() != 0 || m.State() != StateIdle {
		t.Errorf("after SetPath: cursor %d state %v", m.Cursor(), m.State())
	}
	if len(m.Passed()) != 0 || len(m.Remaining()) != 3 {
		t.Errorf("Passed/Remaining = %d/%d", len(m.Passed()), len(m.Remaining()))
	}
}

func TestMover_EmptyPath(t *testing.T) {
	m := NewMover(DefaultConfig(), math.Vec3{})
	m.SetPath(coverage.OrderedPath{})
	if m.Start() {
		t.Error("Start() = true on empty path")
	}
	if m.Done() {
		t.Error("Done() = true on empty path")
	}
}

func TestMover_DoesNotMutatePath(t *testing.T) {
	path := squarePath()
	before := path.Points()

	m := NewMover(DefaultConfig(), math.Vec3{})
	m.SetPath(path)
	m.Start()
	run(m, 0.01, 2000)

	after := path.Points()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("waypoint %d changed from %v to %v", i, before[i], after[i])
		}
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateIdle, "idle"},
		{StateApproaching, "approaching"},
		{StateFollowing, "following"},
		{StateReturning, "returning"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
