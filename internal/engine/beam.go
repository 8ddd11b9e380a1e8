package engine

import (
	"github.com/san-kum/crtsim/internal/dynamo"
	"github.com/san-kum/crtsim/internal/kinematics"
)

// BeamSpec describes a fan of near-parallel particles: Count tracks whose
// lateral offsets are spread evenly across Spread meters, centred on zero.
type BeamSpec struct {
	Count  int
	Spread float64
}

// Offsets returns the lateral offset of every particle in the beam. A count
// below one still yields the central particle.
func (b BeamSpec) Offsets() []float64 {
	if b.Count <= 1 {
		return []float64{0}
	}
	offsets := make([]float64, b.Count)
	step := b.Spread / float64(b.Count-1)
	for i := range offsets {
		offsets[i] = -b.Spread/2 + float64(i)*step
	}
	return offsets
}

// ComputeBeam computes one track per beam particle with the default options.
func ComputeBeam(g Geometry, p Params, beam BeamSpec) []Track {
	return defaultEngine.ComputeBeam(g, p, beam)
}

// ComputeBeam computes one track per beam particle. Each particle sits at
// p.LateralOffset plus its beam offset. Tracks are independent and computed
// in parallel; the result is ordered like beam.Offsets().
func (e *Engine) ComputeBeam(g Geometry, p Params, beam BeamSpec) []Track {
	base := kinematics.Finite(p.LateralOffset, 0)
	offsets := beam.Offsets()
	tracks := make([]Track, len(offsets))

	dynamo.ParallelFor(len(offsets), 2, func(start, end int) {
		for i := start; i < end; i++ {
			tracks[i] = e.ComputeTrackWithOffset(g, p, base+offsets[i], 0)
		}
	})

	return tracks
}
