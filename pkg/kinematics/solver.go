package kinematics

import (
	"github.com/Faultbox/coverbot/pkg/math"
)

// Solver defaults.
const (
	DefaultThreshold    = 0.05
	DefaultLearningRate = 0.05
	DefaultMaxSteps     = 20
	DefaultDeltaTheta   = 0.001
)

// Linkage is what the solver needs from a chain: indexed joint angles and a
// forward-kinematics query for the effector. Joints are visited in index
// order, which must run root to end effector.
type Linkage interface {
	NumJoints() int
	Angle(i int) float64
	SetAngle(i int, angle float64)
	EffectorPosition() math.Vec3
}

// Limiter is implemented by linkages with joint limits. Limit is applied
// after each gradient update, never during a probe.
type Limiter interface {
	Limit(i int, angle float64) float64
}

// Solver is a gradient-descent IK solver using a finite-difference estimate
// of d(distance)/d(angle) per joint. It holds no state between calls.
type Solver struct {
	Threshold    float64
	LearningRate float64
	MaxSteps     int
	DeltaTheta   float64
	// Symmetric selects a central difference instead of a forward one.
	Symmetric bool
}

// Result describes one Solve call.
type Result struct {
	Converged bool
	Steps     int
	Distance  float64
}

// DefaultSolver returns a solver with the package defaults.
func DefaultSolver() Solver {
	return Solver{
		Threshold:    DefaultThreshold,
		LearningRate: DefaultLearningRate,
		MaxSteps:     DefaultMaxSteps,
		DeltaTheta:   DefaultDeltaTheta,
	}
}

// Solve adjusts the angles of l until the effector is within Threshold of
// target or MaxSteps sweeps have run. Each sweep updates every joint once,
// root first, and stops early as soon as the threshold is met.
func (s Solver) Solve(l Linkage, target math.Vec3) Result {
	delta := s.DeltaTheta
	if delta <= 0 {
		delta = DefaultDeltaTheta
	}
	limiter, _ := l.(Limiter)

	dist := l.EffectorPosition().Distance(target)
	if dist <= s.Threshold {
		return Result{Converged: true, Distance: dist}
	}
	if l.NumJoints() == 0 {
		return Result{Distance: dist}
	}

	for step := 1; step <= s.MaxSteps; step++ {
		for i := 0; i < l.NumJoints(); i++ {
			g := s.gradient(l, i, target, dist, delta)
			angle := l.Angle(i) - g*s.LearningRate
			if limiter != nil {
				angle = limiter.Limit(i, angle)
			}
			l.SetAngle(i, angle)

			dist = l.EffectorPosition().Distance(target)
			if dist <= s.Threshold {
				return Result{Converged: true, Steps: step, Distance: dist}
			}
		}
	}
	return Result{Steps: s.MaxSteps, Distance: dist}
}

// Gradient estimates d(distance)/d(angle) for joint i and leaves the angle
// unchanged.
func (s Solver) Gradient(l Linkage, i int, target math.Vec3) float64 {
	delta := s.DeltaTheta
	if delta <= 0 {
		delta = DefaultDeltaTheta
	}
	return s.gradient(l, i, target, l.EffectorPosition().Distance(target), delta)
}

func (s Solver) gradient(l Linkage, i int, target math.Vec3, current, delta float64) float64 {
	angle := l.Angle(i)
	defer l.SetAngle(i, angle)

	l.SetAngle(i, angle+delta)
	ahead := l.EffectorPosition().Distance(target)
	if !s.Symmetric {
		return (ahead - current) / delta
	}
	l.SetAngle(i, angle-delta)
	behind := l.EffectorPosition().Distance(target)
	return (ahead - behind) / (2 * delta)
}
