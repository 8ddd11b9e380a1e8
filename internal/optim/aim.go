package optim

import (
	"context"
	"math"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/experiment"
)

const (
	ParamDeflection   = "deflection"
	ParamAccelerating = "accelerating"
)

// AimResult is the best setting found for hitting a target impact.
type AimResult struct {
	Deflection   float64
	Accelerating float64
	Impact       float64
	Miss         float64
}

// Aim searches deflection potentials (and accelerating potentials, when
// accel has more than one value) for the setting whose central impact is
// closest to target. Clipped tracks never win.
func Aim(ctx context.Context, base *config.Config, target float64, deflection, accel experiment.Range) (*AimResult, error) {
	names := []string{ParamDeflection}
	ranges := [][]float64{deflection.Values()}
	if accel.Steps > 1 {
		names = append(names, ParamAccelerating)
		ranges = append(ranges, accel.Values())
	}

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := base.Clone()
		cfg.Beam.Count = 1
		cfg.Controls.Deflection = params[ParamDeflection]
		if va, ok := params[ParamAccelerating]; ok {
			cfg.Controls.Accelerating = va
		}
		return experiment.New(cfg)
	}

	miss := func(r *experiment.Result) float64 {
		t := r.Central()
		if t.Clipped {
			return math.Inf(1)
		}
		return math.Abs(t.Impact - target)
	}

	best, score, err := NewGridSearch(names, ranges).Search(ctx, build, miss)
	if err != nil {
		return nil, err
	}

	res := &AimResult{
		Deflection:   best[ParamDeflection],
		Accelerating: base.Controls.Accelerating,
		Miss:         score,
	}
	if va, ok := best[ParamAccelerating]; ok {
		res.Accelerating = va
	}
	res.Impact = target
	if !math.IsInf(score, 0) {
		exp, err := build(best)
		if err != nil {
			return nil, err
		}
		r, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}
		res.Impact = r.Central().Impact
	}
	return res, nil
}
