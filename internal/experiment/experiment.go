package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/engine"
	"github.com/san-kum/crtsim/internal/metrics"
)

// Experiment computes the beam described by a config and scores its central
// track.
type Experiment struct {
	cfg     *config.Config
	engine  *engine.Engine
	metrics []metrics.Metric
}

type Result struct {
	Tracks  []engine.Track
	Metrics map[string]float64
}

// Central is the track of the particle with zero lateral offset, or the
// middle one for an even beam.
func (r *Result) Central() engine.Track {
	return r.Tracks[len(r.Tracks)/2]
}

func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	eng, err := engine.NewEngine(cfg.Options())
	if err != nil {
		return nil, err
	}
	return &Experiment{
		cfg:     cfg,
		engine:  eng,
		metrics: metrics.Defaults(cfg.EngineGeometry()),
	}, nil
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// Run computes every beam track. The metrics cover the central track only.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tracks := e.engine.ComputeBeam(e.cfg.EngineGeometry(), e.cfg.Params(), e.cfg.BeamSpec())
	if len(tracks) == 0 {
		return nil, fmt.Errorf("experiment produced no tracks")
	}

	res := &Result{Tracks: tracks}
	res.Metrics = metrics.Evaluate(res.Central(), e.metrics...)
	res.Metrics["impact"] = res.Central().Impact
	res.Metrics["sensitivity"] = metrics.Sensitivity(e.cfg.EngineGeometry(), e.cfg.Params())
	return res, nil
}
