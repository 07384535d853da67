// coverbot plans coverage paths over surface meshes and solves joint
// angles for a robot arm to follow them.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/coverbot/internal/config"
	"github.com/Faultbox/coverbot/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "plan":
		err = cmdPlan(args)
	case "ik", "solve":
		err = cmdIK(args)
	case "shapes", "shape":
		err = cmdShapes(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`coverbot - surface coverage planner and IK solver

Usage:
  coverbot <command> [options]

Commands:
  plan [mesh.yaml]        Plan a coverage path and write it as G-code
  ik <x> <y> <z> [opts]   Solve joint angles to reach a point
                          (or: ik [opts] -- <x> <y> <z>)
  shapes [name] [out]     List demo shapes, or write one as a mesh file
  help                    Show this help

Common options:
  --config <file>         Config file (default ./coverbot.yaml)
  --debug                 Debug logging
  --density <f>           Fraction of vertices to keep, in (0, 1]
  --offset <f>            Clearance along surface normals
  --strategy <name>       boustrophedon or greedy

Examples:
  coverbot shapes
  coverbot plan --shape sphere --density 0.05 -o sphere.gcode
  coverbot plan --strategy boustrophedon part.yaml
  coverbot plan --shape plate --simulate --track
  coverbot ik 0.6 0.3 0.4
  coverbot ik -0.6 0 0.4 --deg`)
}

// setup parses args into fs and loads config with its overrides.
func setup(fs *flag.FlagSet, f *config.Flags, args []string) (*config.Config, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg, err := config.Load(f)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	logger.Sugar.Debugf("config: %+v", cfg)
	return cfg, nil
}
