package coverage

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/coverbot/pkg/math"
)

// NormalPolicy decides what happens to a bin whose normals cancel out.
type NormalPolicy int

const (
	// ZeroOffset keeps the point on the surface (no clearance).
	ZeroOffset NormalPolicy = iota
	// DropPoint discards the bin representative.
	DropPoint
	// UseFallbackNormal offsets along Options.FallbackNormal.
	UseFallbackNormal
)

func (p NormalPolicy) String() string {
	switch p {
	case DropPoint:
		return "drop"
	case UseFallbackNormal:
		return "fallback"
	default:
		return "zero_offset"
	}
}

// ParseNormalPolicy parses a policy name as used in configuration.
func ParseNormalPolicy(s string) (NormalPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zero_offset", "zero", "":
		return ZeroOffset, nil
	case "drop":
		return DropPoint, nil
	case "fallback":
		return UseFallbackNormal, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Options are the planning parameters.
type Options struct {
	Density        float64
	Offset         float64
	Strategy       Strategy
	PlanarEpsilon  float64
	Degenerate     NormalPolicy
	FallbackNormal math.Vec3
}

// DefaultOptions returns the stock planning parameters.
func DefaultOptions() Options {
	return Options{
		Density:        0.1,
		Offset:         0.1,
		Strategy:       StrategyGreedy,
		PlanarEpsilon:  DefaultPlanarEpsilon,
		Degenerate:     ZeroOffset,
		FallbackNormal: math.UnitY,
	}
}

// Validate checks the options for values the planner cannot use.
func (o Options) Validate() error {
	if !(o.Density > 0 && o.Density <= 1) {
		return fmt.Errorf("%w: %v", ErrInvalidDensity, o.Density)
	}
	if _, err := NewOrderer(o.Strategy); err != nil {
		return err
	}
	if o.Degenerate == UseFallbackNormal && o.FallbackNormal.IsZero() {
		return fmt.Errorf("fallback normal policy needs a non-zero fallback normal")
	}
	return nil
}

// Result describes one planning pass.
type Result struct {
	Path           OrderedPath
	Classification Classification
	GridSize       int
	DesiredCount   int
	// Occupied is the number of non-empty bins.
	Occupied int
	// Representatives is the number of bin points kept after the normal policy.
	Representatives int
	// Degenerate counts bins whose normals cancelled out.
	Degenerate int
	// Padded is set when fewer than two points were sampled and raw
	// vertices were added to make a usable path.
	Padded bool
}

// Planner runs planning passes and holds the most recent path.
type Planner struct {
	opts    Options
	orderer PathOrderer
	log     *zap.Logger
	markers MarkerSink

	path OrderedPath
}

// NewPlanner creates a planner. A nil logger disables logging.
func NewPlanner(opts Options, log *zap.Logger) (*Planner, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	orderer, err := NewOrderer(opts.Strategy)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{opts: opts, orderer: orderer, log: log}, nil
}

// SetMarkerSink sets where planned points are reported for display.
func (p *Planner) SetMarkerSink(m MarkerSink) {
	p.markers = m
}

// SetParameters updates density and clearance. They apply on the next Plan.
func (p *Planner) SetParameters(density, offset float64) error {
	next := p.opts
	next.Density, next.Offset = density, offset
	if err := next.Validate(); err != nil {
		return err
	}
	p.opts = next
	return nil
}

// SetOrderer swaps the ordering strategy.
func (p *Planner) SetOrderer(o PathOrderer) error {
	if o == nil {
		return fmt.Errorf("%w: nil orderer", ErrUnknownStrategy)
	}
	p.orderer = o
	p.opts.Strategy = o.Strategy()
	return nil
}

// Options returns the current parameters.
func (p *Planner) Options() Options {
	return p.opts
}

// Path returns the path from the last successful Plan.
func (p *Planner) Path() OrderedPath {
	return p.path
}

// Plan samples, bins, offsets and orders the surface. Any previous path is
// discarded first; on error the planner holds an empty path.
func (p *Planner) Plan(s Surface) (*Result, error) {
	p.path = OrderedPath{}
	if p.markers != nil {
		p.markers.Clear()
	}

	samples, err := SampleSurface(s)
	if err != nil {
		return nil, fmt.Errorf("sampling surface: %w", err)
	}

	binning := BinSamples(samples, p.opts.Density, p.opts.PlanarEpsilon)
	p.log.Debug("binned surface",
		zap.Stringer("classification", binning.Classification),
		zap.Int("vertices", len(samples)),
		zap.Int("desired", binning.DesiredCount),
		zap.Int("grid", binning.GridSize),
		zap.Int("occupied", len(binning.Bins)))

	res := &Result{
		Classification: binning.Classification,
		GridSize:       binning.GridSize,
		DesiredCount:   binning.DesiredCount,
		Occupied:       len(binning.Bins),
	}

	reps := p.representatives(binning, res)
	res.Representatives = len(reps)

	if len(reps) < 2 {
		p.log.Warn("too few points sampled, padding path",
			zap.Int("sampled", len(reps)),
			zap.Float64("density", p.opts.Density))
		reps = pad(reps, samples)
		res.Padded = true
	}

	points := p.orderer.Order(Offset(reps, p.opts.Offset))
	if p.markers != nil {
		for _, pt := range points {
			p.markers.Place(pt)
		}
	}

	res.Path = OrderedPath{points: points}
	p.path = res.Path
	return res, nil
}

func (p *Planner) representatives(b *Binning, res *Result) []SampledVertex {
	reps := make([]SampledVertex, 0, len(b.Bins))
	for _, bin := range b.Bins {
		rep, err := bin.Centroid()
		if err != nil {
			res.Degenerate++
			p.log.Warn("degenerate bin normal",
				zap.Error(err),
				zap.Stringer("policy", p.opts.Degenerate))
			switch p.opts.Degenerate {
			case DropPoint:
				continue
			case UseFallbackNormal:
				rep.Normal = p.opts.FallbackNormal.Normalize()
			default:
				rep.Normal = math.Vec3{}
			}
		}
		reps = append(reps, rep)
	}
	return reps
}

// pad brings reps up to two points using raw samples. With one
// representative it adds the last sample at a different position (or the
// last sample itself); with none it takes the first two samples.
func pad(reps, samples []SampledVertex) []SampledVertex {
	switch len(reps) {
	case 1:
		for i := len(samples) - 1; i >= 0; i-- {
			if samples[i].Position != reps[0].Position {
				return append(reps, samples[i])
			}
		}
		return append(reps, samples[len(samples)-1])
	case 0:
		reps = append(reps, samples[0])
		if len(samples) > 1 {
			return append(reps, samples[1])
		}
		return append(reps, samples[0])
	default:
		return reps
	}
}

// Plan runs a single planning pass with the given parameters.
func Plan(vertices, normals []math.Vec3, transform math.Mat4, density, offset float64, strategy Strategy) (OrderedPath, error) {
	opts := DefaultOptions()
	opts.Density, opts.Offset, opts.Strategy = density, offset, strategy
	p, err := NewPlanner(opts, nil)
	if err != nil {
		return OrderedPath{}, err
	}
	res, err := p.Plan(&Mesh{Positions: vertices, NormalsData: normals, Transform: transform})
	if err != nil {
		return OrderedPath{}, err
	}
	return res.Path, nil
}
