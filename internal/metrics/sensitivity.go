package metrics

import "github.com/san-kum/crtsim/internal/engine"

// SensitivityStep is the deflection potential step, in volts, of the
// central difference used by Sensitivity.
const SensitivityStep = 1.0

// Sensitivity is the change of impact position per deflection volt around
// p, in meters per volt. Clipped neighbours make the estimate meaningless;
// it is reported as zero then.
func Sensitivity(g engine.Geometry, p engine.Params) float64 {
	lo, hi := p, p
	lo.DeflectionPotential -= SensitivityStep
	hi.DeflectionPotential += SensitivityStep

	a := engine.ComputeTrack(g, lo)
	b := engine.ComputeTrack(g, hi)
	if a.Clipped || b.Clipped {
		return 0
	}
	return (b.Impact - a.Impact) / (2 * SensitivityStep)
}
