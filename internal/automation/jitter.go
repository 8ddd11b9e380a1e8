package automation

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/engine"
)

// JitterConfig perturbs both potentials uniformly by up to the given
// number of volts, modelling supply ripple.
type JitterConfig struct {
	Trials             int
	AcceleratingRipple float64
	DeflectionRipple   float64
	Seed               int64
}

// JitterResult summarises where the spot landed over all trials.
type JitterResult struct {
	Impacts []float64
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
	Clipped int
}

// RunJitter computes one central track per trial with perturbed potentials.
func RunJitter(ctx context.Context, base *config.Config, jc JitterConfig) (*JitterResult, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	eng, err := engine.NewEngine(base.Options())
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(jc.Seed))
	if jc.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g := base.EngineGeometry()
	res := &JitterResult{
		Impacts: make([]float64, 0, jc.Trials),
		Min:     math.Inf(1),
		Max:     math.Inf(-1),
	}

	for trial := 0; trial < jc.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := base.Params()
		p.AcceleratingPotential += (rng.Float64() - 0.5) * 2 * jc.AcceleratingRipple
		p.DeflectionPotential += (rng.Float64() - 0.5) * 2 * jc.DeflectionRipple

		t := eng.ComputeTrack(g, p)
		if t.Clipped {
			res.Clipped++
		}
		res.Impacts = append(res.Impacts, t.Impact)
		res.Min = math.Min(res.Min, t.Impact)
		res.Max = math.Max(res.Max, t.Impact)

		if (trial+1)%100 == 0 {
			log.Debugf("jitter: %d/%d trials complete", trial+1, jc.Trials)
		}
	}

	if len(res.Impacts) == 0 {
		res.Min, res.Max = 0, 0
		return res, nil
	}

	for _, v := range res.Impacts {
		res.Mean += v
	}
	res.Mean /= float64(len(res.Impacts))
	for _, v := range res.Impacts {
		res.StdDev += (v - res.Mean) * (v - res.Mean)
	}
	res.StdDev = math.Sqrt(res.StdDev / float64(len(res.Impacts)))
	return res, nil
}
