// Package kinematics models an open chain of single-axis rotational joints
// and solves for joint angles that bring the end effector to a target.
package kinematics

import (
	"errors"
	"fmt"

	"github.com/Faultbox/coverbot/pkg/math"
)

// Chain errors.
var (
	ErrZeroAxis      = errors.New("joint axis has zero length")
	ErrInvalidLimits = errors.New("joint limits are inverted")
	ErrJointIndex    = errors.New("joint index out of range")
)

const none = -1

// Joint is one rotational joint. Offset places the joint origin in its
// parent's frame; the joint then rotates about Axis (local frame) by Angle.
type Joint struct {
	Name   string
	Axis   math.Vec3
	Offset math.Vec3
	Angle  float64

	// Limited enables clamping Angle to [Min, Max] after each solver update.
	Limited  bool
	Min, Max float64

	parent, child int
}

// Parent returns the arena index of the parent joint, or -1 for the root.
func (j Joint) Parent() int { return j.parent }

// Child returns the arena index of the child joint, or -1 for the end effector.
func (j Joint) Child() int { return j.child }

// Chain is an arena of joints linked root to end effector. Joints are only
// ever appended below the current terminal joint, so the links cannot form
// a cycle.
type Chain struct {
	// Base places the root joint in the world.
	Base math.Mat4
	// Tip is the end effector point in the terminal joint's frame.
	Tip math.Vec3

	joints   []Joint
	root     int
	terminal int
}

// NewChain creates an empty chain at the world origin.
func NewChain() *Chain {
	return &Chain{Base: math.Identity(), root: none, terminal: none}
}

// AddJoint appends j below the current terminal joint and returns its index.
func (c *Chain) AddJoint(j Joint) (int, error) {
	if j.Axis.Length() == 0 {
		return none, fmt.Errorf("joint %q: %w", j.Name, ErrZeroAxis)
	}
	if j.Limited && j.Min > j.Max {
		return none, fmt.Errorf("joint %q: %w", j.Name, ErrInvalidLimits)
	}
	j.Axis = j.Axis.Normalize()
	j.parent, j.child = c.terminal, none
	if j.Limited {
		j.Angle = clamp(j.Angle, j.Min, j.Max)
	}

	idx := len(c.joints)
	c.joints = append(c.joints, j)
	if c.terminal == none {
		c.root = idx
	} else {
		c.joints[c.terminal].child = idx
	}
	c.terminal = idx
	return idx, nil
}

// NumJoints returns the number of joints.
func (c *Chain) NumJoints() int { return len(c.joints) }

// Root returns the arena index of the root joint, or -1 if empty.
func (c *Chain) Root() int { return c.root }

// Terminal returns the arena index of the end-effector joint, or -1 if empty.
func (c *Chain) Terminal() int { return c.terminal }

// Joint returns a copy of the joint at arena index i.
func (c *Chain) Joint(i int) Joint { return c.joints[i] }

// Order returns arena indices from root to end effector.
func (c *Chain) Order() []int {
	order := make([]int, 0, len(c.joints))
	for i := c.root; i != none; i = c.joints[i].child {
		order = append(order, i)
	}
	return order
}

// Angle returns the current angle of joint i.
func (c *Chain) Angle(i int) float64 { return c.joints[i].Angle }

// SetAngle assigns the angle of joint i without clamping.
func (c *Chain) SetAngle(i int, angle float64) { c.joints[i].Angle = angle }

// Limit clamps angle to joint i's limits, if it has any.
func (c *Chain) Limit(i int, angle float64) float64 {
	j := c.joints[i]
	if !j.Limited {
		return angle
	}
	return clamp(angle, j.Min, j.Max)
}

// Angles returns the angles in root-to-end order.
func (c *Chain) Angles() []float64 {
	out := make([]float64, 0, len(c.joints))
	for _, i := range c.Order() {
		out = append(out, c.joints[i].Angle)
	}
	return out
}

// SetAngles assigns angles in root-to-end order, clamping limited joints.
func (c *Chain) SetAngles(angles []float64) error {
	order := c.Order()
	if len(angles) != len(order) {
		return fmt.Errorf("%w: got %d angles for %d joints", ErrJointIndex, len(angles), len(order))
	}
	for k, i := range order {
		c.joints[i].Angle = c.Limit(i, angles[k])
	}
	return nil
}

// Frames returns each joint's world transform in root-to-end order.
func (c *Chain) Frames() []math.Mat4 {
	frames := make([]math.Mat4, 0, len(c.joints))
	m := c.Base
	for _, i := range c.Order() {
		j := c.joints[i]
		m = m.Mul(math.TranslateVec3(j.Offset)).Mul(math.RotateAxis(j.Axis, j.Angle))
		frames = append(frames, m)
	}
	return frames
}

// JointPositions returns each joint origin in world space, root first.
func (c *Chain) JointPositions() []math.Vec3 {
	frames := c.Frames()
	out := make([]math.Vec3, len(frames))
	for i, f := range frames {
		out[i] = f.Translation()
	}
	return out
}

// EffectorPosition returns the world-space end effector point.
func (c *Chain) EffectorPosition() math.Vec3 {
	frames := c.Frames()
	if len(frames) == 0 {
		return c.Base.TransformPoint(c.Tip)
	}
	return frames[len(frames)-1].TransformPoint(c.Tip)
}

// EffectorOrientation returns the terminal joint's rotation relative to the
// base frame, composed from each joint's axis-angle rotation.
func (c *Chain) EffectorOrientation() math.Quat {
	q := math.QuatIdentity()
	for _, i := range c.Order() {
		j := c.joints[i]
		q = q.Mul(math.QuatFromAxisAngle(j.Axis, j.Angle))
	}
	return q.Normalize()
}

// ToolAxis returns the world direction of the segment from the terminal
// joint to the tip, or the zero vector when Tip is at the joint origin.
func (c *Chain) ToolAxis() math.Vec3 {
	local := c.EffectorOrientation().Rotate(c.Tip.Normalize())
	return c.Base.TransformDirection(local).Normalize()
}

// Reach returns the sum of link lengths plus the tip distance, an upper
// bound on how far the effector can get from the root joint.
func (c *Chain) Reach() float64 {
	var total float64
	for k, i := range c.Order() {
		if k > 0 {
			total += c.joints[i].Offset.Length()
		}
	}
	return total + c.Tip.Length()
}

// Solve runs gradient-descent IK toward target with the default probe and
// reports whether the effector ended within threshold.
func (c *Chain) Solve(target math.Vec3, threshold, learningRate float64, maxSteps int) bool {
	s := DefaultSolver()
	s.Threshold, s.LearningRate, s.MaxSteps = threshold, learningRate, maxSteps
	return s.Solve(c, target).Converged
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
