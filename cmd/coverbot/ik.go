package main

import (
	"flag"
	"fmt"
	stdmath "math"
	"strconv"

	"github.com/Faultbox/coverbot/internal/config"
	"github.com/Faultbox/coverbot/internal/logger"
	"github.com/Faultbox/coverbot/pkg/math"
	"go.uber.org/zap"
)

func cmdIK(args []string) error {
	fs := flag.NewFlagSet("ik", flag.ExitOnError)
	f := config.BindFlags(fs)
	steps := fs.Int("steps", 0, "Override ik.max_steps")
	degrees := fs.Bool("deg", false, "Print angles in degrees")

	// Coordinates may come first so negative values are not read as flags.
	coords, rest := leadingNumbers(args)
	cfg, err := setup(fs, f, rest)
	if err != nil {
		return err
	}
	if len(coords) == 0 {
		coords = fs.Args()
	}
	if len(coords) != 3 {
		return fmt.Errorf("usage: coverbot ik <x> <y> <z> [options], or coverbot ik [options] -- <x> <y> <z>")
	}
	target, err := parsePoint(coords)
	if err != nil {
		return err
	}

	chain, err := cfg.BuildChain()
	if err != nil {
		return err
	}
	solver := cfg.Solver()
	if *steps > 0 {
		solver.MaxSteps = *steps
	}
	if reach := chain.Reach(); target.Distance(chain.JointPositions()[0]) > reach {
		logger.Warn("target is beyond the chain's reach", zap.Float64("reach", reach))
	}

	res := solver.Solve(chain, target)
	logger.Debug("ik solve",
		zap.Bool("converged", res.Converged),
		zap.Int("steps", res.Steps),
		zap.Float64("distance", res.Distance))

	fmt.Printf("Target:    %.4f %.4f %.4f\n", target.X, target.Y, target.Z)
	eff := chain.EffectorPosition()
	fmt.Printf("Effector:  %.4f %.4f %.4f\n", eff.X, eff.Y, eff.Z)
	axis := chain.ToolAxis()
	fmt.Printf("Tool axis: %.4f %.4f %.4f\n", axis.X, axis.Y, axis.Z)
	fmt.Printf("Distance:  %.4f\n", res.Distance)
	fmt.Printf("Converged: %v after %d steps\n", res.Converged, res.Steps)
	fmt.Println("Angles:")
	for _, i := range chain.Order() {
		j := chain.Joint(i)
		a, unit := j.Angle, "rad"
		if *degrees {
			a, unit = a*180/stdmath.Pi, "deg"
		}
		fmt.Printf("  %-10s %9.4f %s\n", j.Name, a, unit)
	}
	return nil
}

// leadingNumbers splits off the numeric arguments at the front of args.
func leadingNumbers(args []string) (nums, rest []string) {
	i := 0
	for i < len(args) {
		if _, err := strconv.ParseFloat(args[i], 64); err != nil {
			break
		}
		i++
	}
	return args[:i], args[i:]
}

func parsePoint(args []string) (math.Vec3, error) {
	var c [3]float64
	for i, s := range args {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("coordinate %d: %w", i+1, err)
		}
		c[i] = v
	}
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}
