package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/Faultbox/coverbot/internal/config"
	"github.com/Faultbox/coverbot/internal/export"
	"github.com/Faultbox/coverbot/internal/logger"
	"github.com/Faultbox/coverbot/internal/surface"
	"github.com/Faultbox/coverbot/pkg/coverage"
	"go.uber.org/zap"
)

func cmdPlan(args []string) error {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	f := config.BindFlags(fs)
	shape := fs.String("shape", "plate", "Demo shape when no mesh file is given")
	cells := fs.Int("cells", surface.DefaultCells, "Marching cubes resolution for demo shapes")
	out := fs.String("o", "-", "G-code output file (- for stdout, empty to skip)")
	stream := fs.Bool("serial", false, "Stream G-code to export.serial_device")
	simulate := fs.Bool("simulate", false, "Run the mover over the path and report timing")
	track := fs.Bool("track", false, "With --simulate, solve IK at every mover step")

	cfg, err := setup(fs, f, args)
	if err != nil {
		return err
	}

	mesh, err := loadSurface(fs.Arg(0), *shape, *cells)
	if err != nil {
		return err
	}

	opts, err := cfg.PlannerOptions()
	if err != nil {
		return err
	}
	planner, err := coverage.NewPlanner(opts, logger.Named("planner"))
	if err != nil {
		return err
	}
	res, err := planner.Plan(mesh)
	if err != nil {
		return err
	}

	logger.Info("path planned",
		zap.Int("vertices", mesh.VertexCount()),
		zap.Stringer("surface", res.Classification),
		zap.Int("grid", res.GridSize),
		zap.Int("bins", res.Occupied),
		zap.Int("waypoints", res.Path.Len()),
		zap.Float64("travel", res.Path.TravelLength()),
		zap.Bool("padded", res.Padded))

	if err := writeGCode(*out, res.Path, cfg.ExportOptions()); err != nil {
		return err
	}

	if *stream {
		if err := streamPath(cfg, res.Path); err != nil {
			return err
		}
	}

	if *simulate {
		return runSimulation(cfg, res.Path, *track)
	}
	return nil
}

func loadSurface(path, shape string, cells int) (*coverage.Mesh, error) {
	if path != "" {
		mesh, err := surface.LoadMesh(path)
		if err != nil {
			return nil, fmt.Errorf("loading mesh %s: %w", path, err)
		}
		return mesh, nil
	}
	p := surface.DefaultShapeParams()
	p.Cells = cells
	return surface.Generate(shape, p)
}

func writeGCode(path string, p coverage.OrderedPath, opts export.Options) error {
	if path == "" {
		return nil
	}
	var w io.Writer = os.Stdout
	if path != "-" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}
	if err := export.WriteGCode(w, p, opts); err != nil {
		return fmt.Errorf("writing G-code: %w", err)
	}
	if path != "-" {
		logger.Info("G-code written", zap.String("file", path))
	}
	return nil
}

func streamPath(cfg *config.Config, p coverage.OrderedPath) error {
	port, err := export.Open(cfg.SerialConfig())
	if err != nil {
		return err
	}
	s := export.NewStreamer(port, logger.Named("serial"))
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n, err := s.SendPath(ctx, p, cfg.ExportOptions())
	if err != nil {
		return fmt.Errorf("streaming stopped after %d lines: %w", n, err)
	}
	return nil
}
