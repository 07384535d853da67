package config

import "flag"

// Flags are the command-line overrides shared by every subcommand.
type Flags struct {
	fs *flag.FlagSet

	config   *string
	debug    *bool
	density  *float64
	offset   *float64
	strategy *string
}

// BindFlags registers the shared flags on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:       fs,
		config:   fs.String("config", "", "Path to config file"),
		debug:    fs.Bool("debug", false, "Enable debug logging"),
		density:  fs.Float64("density", 0, "Fraction of vertices to keep, in (0, 1]"),
		offset:   fs.Float64("offset", 0, "Clearance along surface normals"),
		strategy: fs.String("strategy", "", "Path ordering: boustrophedon or greedy"),
	}
}

// ConfigPath returns the explicit config path if provided via --config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// apply copies only the flags given on the command line onto cfg, found
// with fs.Visit, so an explicit --offset 0 still overrides the file.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	set := make(map[string]bool)
	f.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if set["density"] {
		cfg.Planner.Density = *f.density
	}
	if set["offset"] {
		cfg.Planner.Offset = *f.offset
	}
	if set["strategy"] {
		cfg.Planner.Strategy = *f.strategy
	}
}
