package config

import (
	"errors"
	"fmt"
	stdmath "math"

	"github.com/Faultbox/coverbot/internal/export"
	"github.com/Faultbox/coverbot/internal/motion"
	"github.com/Faultbox/coverbot/pkg/coverage"
	"github.com/Faultbox/coverbot/pkg/kinematics"
	"github.com/Faultbox/coverbot/pkg/math"
)

// ErrInvalid marks a configuration value that cannot be used.
var ErrInvalid = errors.New("invalid config")

// PlannerOptions converts the planner section.
func (c *Config) PlannerOptions() (coverage.Options, error) {
	p := c.Planner
	strategy, err := coverage.ParseStrategy(p.Strategy)
	if err != nil {
		return coverage.Options{}, fmt.Errorf("planner.strategy: %w", err)
	}
	policy, err := coverage.ParseNormalPolicy(p.DegenerateNormal)
	if err != nil {
		return coverage.Options{}, fmt.Errorf("planner.degenerate_normal: %w", err)
	}
	opts := coverage.Options{
		Density:        p.Density,
		Offset:         p.Offset,
		Strategy:       strategy,
		PlanarEpsilon:  p.PlanarEpsilon,
		Degenerate:     policy,
		FallbackNormal: vec(p.FallbackNormal).Normalize(),
	}
	if err := opts.Validate(); err != nil {
		return coverage.Options{}, fmt.Errorf("planner: %w", err)
	}
	return opts, nil
}

// Solver converts the IK section's tuning values.
func (c *Config) Solver() kinematics.Solver {
	return kinematics.Solver{
		Threshold:    c.IK.Threshold,
		LearningRate: c.IK.LearningRate,
		MaxSteps:     c.IK.MaxSteps,
		DeltaTheta:   c.IK.DeltaTheta,
		Symmetric:    c.IK.Symmetric,
	}
}

// BuildChain builds the configured joint chain.
func (c *Config) BuildChain() (*kinematics.Chain, error) {
	if len(c.IK.Chain) == 0 {
		return nil, fmt.Errorf("%w: ik.chain has no joints", ErrInvalid)
	}
	chain := kinematics.NewChain()
	for i, jc := range c.IK.Chain {
		j := kinematics.Joint{
			Name:   jc.Name,
			Axis:   vec(jc.Axis),
			Offset: vec(jc.Offset),
			Angle:  jc.Angle,
		}
		if jc.Min != nil || jc.Max != nil {
			j.Limited = true
			j.Min, j.Max = stdmath.Inf(-1), stdmath.Inf(1)
			if jc.Min != nil {
				j.Min = *jc.Min
			}
			if jc.Max != nil {
				j.Max = *jc.Max
			}
		}
		if _, err := chain.AddJoint(j); err != nil {
			return nil, fmt.Errorf("ik.chain[%d]: %w", i, err)
		}
	}
	chain.Tip = vec(c.IK.Tip)
	return chain, nil
}

// MoverConfig converts the mover section.
func (c *Config) MoverConfig() motion.Config {
	return motion.Config{
		Speed:            c.Mover.Speed,
		ArrivalThreshold: c.Mover.ArrivalThreshold,
		ReturnHome:       c.Mover.ReturnHome,
	}
}

// ExportOptions converts the export section's G-code settings.
func (c *Config) ExportOptions() export.Options {
	opts := export.DefaultOptions()
	opts.FeedRate = c.Export.FeedRate
	opts.Precision = c.Export.Precision
	return opts
}

// SerialConfig returns the serial port settings for streaming.
func (c *Config) SerialConfig() export.SerialConfig {
	cfg := export.DefaultSerialConfig(c.Export.SerialDevice)
	if c.Export.Baud > 0 {
		cfg.Baud = c.Export.Baud
	}
	return cfg
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if _, err := c.PlannerOptions(); err != nil {
		return err
	}
	switch {
	case c.IK.MaxSteps <= 0:
		return fmt.Errorf("%w: ik.max_steps must be positive, got %d", ErrInvalid, c.IK.MaxSteps)
	case c.IK.LearningRate <= 0:
		return fmt.Errorf("%w: ik.learning_rate must be positive, got %v", ErrInvalid, c.IK.LearningRate)
	case c.IK.Threshold < 0:
		return fmt.Errorf("%w: ik.threshold is negative", ErrInvalid)
	case c.IK.DeltaTheta <= 0:
		return fmt.Errorf("%w: ik.delta_theta must be positive, got %v", ErrInvalid, c.IK.DeltaTheta)
	case c.Mover.Speed <= 0:
		return fmt.Errorf("%w: mover.speed must be positive, got %v", ErrInvalid, c.Mover.Speed)
	case c.Mover.ArrivalThreshold < 0:
		return fmt.Errorf("%w: mover.arrival_threshold is negative", ErrInvalid)
	case c.Export.FeedRate <= 0:
		return fmt.Errorf("%w: export.feed_rate must be positive, got %v", ErrInvalid, c.Export.FeedRate)
	case c.Export.Precision < 0:
		return fmt.Errorf("%w: export.precision is negative", ErrInvalid)
	}
	if _, err := c.BuildChain(); err != nil {
		return err
	}
	return nil
}

func vec(a [3]float64) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
