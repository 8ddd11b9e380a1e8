package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/engine"
)

// Range is an inclusive, evenly spaced set of Steps values from From to To.
type Range struct {
	From  float64
	To    float64
	Steps int
}

func (r Range) Values() []float64 {
	if r.Steps <= 1 {
		return []float64{r.From}
	}
	vals := make([]float64, r.Steps)
	step := (r.To - r.From) / float64(r.Steps-1)
	for i := range vals {
		vals[i] = r.From + float64(i)*step
	}
	vals[len(vals)-1] = r.To
	return vals
}

type SweepPoint struct {
	Deflection float64
	Impact     float64
	Clipped    bool
}

// Sweep computes the central impact for every deflection potential in r,
// keeping everything else in cfg fixed.
func Sweep(ctx context.Context, cfg *config.Config, r Range) ([]SweepPoint, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	eng, err := engine.NewEngine(cfg.Options())
	if err != nil {
		return nil, err
	}

	g := cfg.EngineGeometry()
	base := cfg.Params()

	values := r.Values()
	points := make([]SweepPoint, 0, len(values))
	for i, vd := range values {
		if err := ctx.Err(); err != nil {
			return points, fmt.Errorf("sweep stopped at step %d: %w", i, err)
		}
		p := base
		p.DeflectionPotential = vd
		t := eng.ComputeTrack(g, p)
		points = append(points, SweepPoint{Deflection: vd, Impact: t.Impact, Clipped: t.Clipped})
	}
	return points, nil
}

// Impacts returns the impact column of a sweep.
func Impacts(points []SweepPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Impact
	}
	return out
}
