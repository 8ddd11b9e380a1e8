package engine

import "github.com/san-kum/crtsim/internal/kinematics"

// uniform builds the piecewise closed-form track: straight drift to the
// plates, a parabola between them, straight drift to the detection plane.
// The path always has UniformSamples+3 points.
func (e *Engine) uniform(s spans, g Geometry, p Params) Track {
	v0 := kinematics.InitialSpeed(p.AcceleratingPotential)
	a := kinematics.FieldAcceleration(p.DeflectionPotential, g.PlateSpacing)
	vy := kinematics.Saturate(p.LateralVelocity)

	n := e.opts.UniformSamples
	path := make([]Point, 0, n+3)
	path = append(path, Point{X: s.source, Y: s.center})

	yEntry := displace(s.center, vy, 0, travel(s.start-s.source, v0))
	path = append(path, Point{X: s.start, Y: yEntry})

	inField := travel(s.end-s.start, v0)
	width := s.end - s.start
	for i := 1; i <= n; i++ {
		frac := float64(i) / float64(n)
		path = append(path, Point{
			X: s.start + width*frac,
			Y: displace(yEntry, vy, a, inField*frac),
		})
	}
	path[len(path)-1].X = s.end

	yExit := path[len(path)-1].Y
	vyExit := kinematics.Saturate(vy + kinematics.Saturate(a*inField))

	impact := displace(yExit, vyExit, 0, travel(s.detect-s.end, v0))
	path = append(path, Point{X: s.detect, Y: impact})

	return Track{
		Mode:          ModeUniform,
		Path:          path,
		InitialSpeed:  v0,
		EntryVelocity: vy,
		ExitVelocity:  vyExit,
		Impact:        impact,
		TimeOfFlight:  travel(s.detect-s.source, v0),
	}
}
