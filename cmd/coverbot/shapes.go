package main

import (
	"flag"
	"fmt"

	"github.com/Faultbox/coverbot/internal/config"
	"github.com/Faultbox/coverbot/internal/logger"
	"github.com/Faultbox/coverbot/internal/surface"
	"go.uber.org/zap"
)

func cmdShapes(args []string) error {
	fs := flag.NewFlagSet("shapes", flag.ExitOnError)
	f := config.BindFlags(fs)
	p := surface.DefaultShapeParams()
	fs.IntVar(&p.Cells, "cells", p.Cells, "Marching cubes resolution")
	fs.Float64Var(&p.Width, "width", p.Width, "Width (X)")
	fs.Float64Var(&p.Depth, "depth", p.Depth, "Depth (Y)")
	fs.Float64Var(&p.Height, "height", p.Height, "Height (Z)")
	fs.Float64Var(&p.Radius, "radius", p.Radius, "Radius for sphere and cylinder")

	if _, err := setup(fs, f, args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		fmt.Println("Shapes:")
		for _, name := range surface.Shapes() {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	name := fs.Arg(0)
	out := name + ".yaml"
	if fs.NArg() > 1 {
		out = fs.Arg(1)
	}

	mesh, err := surface.Generate(name, p)
	if err != nil {
		return err
	}
	if err := surface.SaveMesh(out, mesh); err != nil {
		return err
	}
	logger.Info("mesh written",
		zap.String("shape", name),
		zap.Int("vertices", mesh.VertexCount()),
		zap.String("file", out))
	return nil
}
