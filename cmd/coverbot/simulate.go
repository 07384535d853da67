package main

import (
	"github.com/Faultbox/coverbot/internal/config"
	"github.com/Faultbox/coverbot/internal/logger"
	"github.com/Faultbox/coverbot/internal/motion"
	"github.com/Faultbox/coverbot/pkg/coverage"
	"github.com/Faultbox/coverbot/pkg/kinematics"
	"github.com/Faultbox/coverbot/pkg/math"
	"go.uber.org/zap"
)

const (
	simStep = 1.0 / 60 // seconds per frame
	// simLimit bounds a simulation at ten simulated minutes.
	simLimit = 36000
)

// simReport summarises a simulated traversal.
type simReport struct {
	Frames     int
	Seconds    float64
	Finished   bool
	IKMisses   int
	WorstMiss  float64
	FinalPoint math.Vec3
}

// simulate steps a mover over path frame by frame. When chain is non-nil
// the solver runs every frame with the effector as its target, the way a
// live controller would.
func simulate(mc motion.Config, path coverage.OrderedPath, home math.Vec3, chain *kinematics.Chain, solver kinematics.Solver) simReport {
	m := motion.NewMover(mc, home)
	m.SetPath(path)

	var r simReport
	if !m.Start() {
		r.Finished = true
		r.FinalPoint = m.Position()
		return r
	}

	for r.Frames < simLimit && m.State() != motion.StateIdle {
		target := m.Update(simStep)
		r.Frames++
		if chain != nil {
			res := solver.Solve(chain, target)
			if !res.Converged {
				r.IKMisses++
				if res.Distance > r.WorstMiss {
					r.WorstMiss = res.Distance
				}
			}
		}
	}
	r.Seconds = float64(r.Frames) * simStep
	r.Finished = m.State() == motion.StateIdle
	r.FinalPoint = m.Position()
	return r
}

func runSimulation(cfg *config.Config, path coverage.OrderedPath, track bool) error {
	var chain *kinematics.Chain
	home := math.Vec3{}
	if track {
		var err error
		if chain, err = cfg.BuildChain(); err != nil {
			return err
		}
		home = chain.EffectorPosition()
	}

	r := simulate(cfg.MoverConfig(), path, home, chain, cfg.Solver())
	logger.Info("simulation finished",
		zap.Bool("complete", r.Finished),
		zap.Int("frames", r.Frames),
		zap.Float64("seconds", r.Seconds),
		zap.Int("ik_misses", r.IKMisses),
		zap.Float64("worst_miss", r.WorstMiss))
	if !r.Finished {
		logger.Warn("simulation hit frame limit", zap.Int("limit", simLimit))
	}
	return nil
}
