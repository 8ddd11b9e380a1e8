package engine

import (
	"fmt"
	"math"

	"github.com/san-kum/crtsim/internal/integrators"
	"github.com/san-kum/crtsim/internal/kinematics"
)

const (
	// UniformSamples is the number of subdivisions between the plates in
	// uniform mode. It only affects how smooth the rendered curve is.
	UniformSamples = 40

	// CurvedSteps is the fixed step budget from source to detection plane
	// in curved mode.
	CurvedSteps = 400
)

type Options struct {
	UniformSamples int
	CurvedSteps    int
	Integrator     string
}

func DefaultOptions() Options {
	return Options{
		UniformSamples: UniformSamples,
		CurvedSteps:    CurvedSteps,
		Integrator:     integrators.Default,
	}
}

// Engine holds sampling options only; it is safe for concurrent use.
type Engine struct {
	opts Options
}

func NewEngine(opts Options) (*Engine, error) {
	if opts.UniformSamples < 1 {
		return nil, fmt.Errorf("%w: uniform samples must be positive, got %d", ErrInvalidOptions, opts.UniformSamples)
	}
	if opts.CurvedSteps < 1 {
		return nil, fmt.Errorf("%w: curved steps must be positive, got %d", ErrInvalidOptions, opts.CurvedSteps)
	}
	if opts.Integrator == "" {
		opts.Integrator = integrators.Default
	}
	if _, err := integrators.New(opts.Integrator); err != nil {
		return nil, err
	}
	return &Engine{opts: opts}, nil
}

func (e *Engine) Options() Options { return e.opts }

var defaultEngine = &Engine{opts: DefaultOptions()}

// ComputeTrack computes a track with the default options.
func ComputeTrack(g Geometry, p Params) Track {
	return defaultEngine.ComputeTrack(g, p)
}

// ComputeTrackWithOffset computes a track with the default options and
// shifts it rigidly by offset.
func ComputeTrackWithOffset(g Geometry, p Params, offset, lateralVelocity float64) Track {
	return defaultEngine.ComputeTrackWithOffset(g, p, offset, lateralVelocity)
}

func (e *Engine) ComputeTrack(g Geometry, p Params) Track {
	s := newSpans(g)

	var raw Track
	switch p.Mode {
	case ModeCurved:
		raw = e.curved(s, g, p)
	default:
		raw = e.uniform(s, g, p)
	}

	return finish(raw, s, kinematics.Finite(p.LateralOffset, 0))
}

// ComputeTrackWithOffset computes the zero-offset track for p and moves
// every sample and the impact by offset along the transverse axis. The
// shape is reused as is: lateralVelocity does not re-bend the track.
func (e *Engine) ComputeTrackWithOffset(g Geometry, p Params, offset, lateralVelocity float64) Track {
	_ = lateralVelocity

	base := p
	base.LateralOffset = 0
	tr := e.ComputeTrack(g, base)

	return finish(tr, newSpans(g), kinematics.Finite(offset, 0))
}

// spans is the geometry after input sanitation: every bound is finite and
// the bounds never decrease from source to detection plane.
type spans struct {
	source, start, end, detect float64
	height, center             float64
	lo, hi                     float64
}

func newSpans(g Geometry) spans {
	s := spans{}
	s.height = math.Abs(kinematics.Finite(g.TubeHeight, 0))
	s.center = s.height / 2
	s.lo, s.hi = kinematics.GuardBand(s.height)

	s.source = kinematics.Finite(g.SourceX, 0)
	s.start = math.Max(kinematics.Finite(g.DeflectionStart, s.source), s.source)
	length := math.Max(kinematics.Finite(g.DeflectionLength, 0), 0)
	s.end = math.Max(kinematics.Saturate(s.start+length), s.start)
	s.detect = math.Max(kinematics.Finite(g.DetectionX, s.end), s.end)
	return s
}

// finish shifts raw by offset, clamps every sample into the guard band and
// the impact into the tube.
func finish(raw Track, s spans, offset float64) Track {
	tr := raw
	tr.Path = make([]Point, len(raw.Path))
	for i, pt := range raw.Path {
		tr.Path[i] = Point{
			X: kinematics.Finite(pt.X, s.source),
			Y: kinematics.ClampFinite(kinematics.Saturate(pt.Y+offset), s.lo, s.hi),
		}
	}

	impact := raw.Impact + offset
	tr.Clipped = raw.Clipped || math.IsNaN(impact) || impact < 0 || impact > s.height
	tr.Impact = kinematics.ClampFinite(impact, 0, s.height)
	tr.Deflection = tr.Impact - s.center
	tr.InitialSpeed = kinematics.SafeSpeed(raw.InitialSpeed)
	tr.EntryVelocity = kinematics.Saturate(raw.EntryVelocity)
	tr.ExitVelocity = kinematics.Saturate(raw.ExitVelocity)
	tr.TimeOfFlight = kinematics.Saturate(raw.TimeOfFlight)
	return tr
}

// travel returns the time needed to cover dx at speed v.
func travel(dx, v float64) float64 {
	return kinematics.Saturate(dx / kinematics.SafeSpeed(v))
}

// displace returns y + v*t + a*t*t/2 without letting any term overflow.
func displace(y, v, a, t float64) float64 {
	drift := kinematics.Saturate(v * t)
	bend := kinematics.Saturate(kinematics.Saturate(0.5*a*t) * t)
	return kinematics.Saturate(kinematics.Saturate(y+drift) + bend)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
