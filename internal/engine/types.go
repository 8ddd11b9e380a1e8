package engine

import (
	"fmt"
	"strings"
)

// Geometry describes the tube in meters along the forward (X) and
// transverse (Y) axes.
type Geometry struct {
	TubeLength       float64
	TubeHeight       float64
	SourceX          float64
	DeflectionStart  float64
	DeflectionLength float64
	PlateSpacing     float64
	DetectionX       float64
}

func (g Geometry) DeflectionEnd() float64 { return g.DeflectionStart + g.DeflectionLength }
func (g Geometry) Centerline() float64    { return g.TubeHeight / 2 }

// DefaultGeometry is a small bench-top deflection tube.
func DefaultGeometry() Geometry {
	return Geometry{
		TubeLength:       0.5,
		TubeHeight:       0.25,
		SourceX:          0.02,
		DeflectionStart:  0.18,
		DeflectionLength: 0.06,
		PlateSpacing:     0.01,
		DetectionX:       0.46,
	}
}

type Mode int

const (
	ModeUniform Mode = iota
	ModeCurved
)

func (m Mode) String() string {
	switch m {
	case ModeUniform:
		return "uniform"
	case ModeCurved:
		return "curved"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode accepts "uniform"/"electric" and "curved"/"magnetic".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "uniform", "electric":
		return ModeUniform, nil
	case "curved", "magnetic":
		return ModeCurved, nil
	}
	return ModeUniform, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Params are the per-call control inputs. Potentials are in volts,
// LateralOffset in meters and LateralVelocity in m/s.
type Params struct {
	AcceleratingPotential float64
	DeflectionPotential   float64
	Mode                  Mode
	LateralOffset         float64
	LateralVelocity       float64
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Track is one computed trajectory. Path is ordered by increasing X, holds
// at least two points and contains only finite values.
type Track struct {
	Mode          Mode    `json:"mode"`
	Path          []Point `json:"path"`
	InitialSpeed  float64 `json:"initial_speed"`
	EntryVelocity float64 `json:"entry_velocity"`
	ExitVelocity  float64 `json:"exit_velocity"`
	Impact        float64 `json:"impact"`
	Deflection    float64 `json:"deflection"`
	TimeOfFlight  float64 `json:"time_of_flight"`
	Clipped       bool    `json:"clipped"`
}

func (t Track) Len() int { return len(t.Path) }

// Translate returns a copy of t moved dy along the transverse axis. The
// result is not clamped; use ComputeTrackWithOffset to stay inside the tube.
func (t Track) Translate(dy float64) Track {
	out := t
	out.Path = make([]Point, len(t.Path))
	for i, p := range t.Path {
		out.Path[i] = Point{X: p.X, Y: p.Y + dy}
	}
	out.Impact += dy
	out.Deflection += dy
	return out
}

// Transverse returns the Y coordinate of every path sample.
func (t Track) Transverse() []float64 {
	ys := make([]float64, len(t.Path))
	for i, p := range t.Path {
		ys[i] = p.Y
	}
	return ys
}

// Validate checks the ordering invariant
// 0 <= SourceX < DeflectionStart < DeflectionEnd < DetectionX <= TubeLength
// and that the tube height and plate spacing are positive.
func Validate(g Geometry) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"tube_length", g.TubeLength},
		{"tube_height", g.TubeHeight},
		{"source_x", g.SourceX},
		{"deflection_start", g.DeflectionStart},
		{"deflection_length", g.DeflectionLength},
		{"plate_spacing", g.PlateSpacing},
		{"detection_x", g.DetectionX},
	}
	for _, f := range fields {
		if !isFinite(f.value) {
			return invalid(f.name, "must be finite")
		}
	}

	switch {
	case g.TubeHeight <= 0:
		return invalid("tube_height", "must be positive")
	case g.PlateSpacing <= 0:
		return invalid("plate_spacing", "must be positive")
	case g.SourceX < 0:
		return invalid("source_x", "must not be negative")
	case g.DeflectionStart <= g.SourceX:
		return invalid("deflection_start", "must lie after source_x")
	case g.DeflectionLength <= 0:
		return invalid("deflection_length", "must be positive")
	case g.DetectionX <= g.DeflectionEnd():
		return invalid("detection_x", "must lie after the deflection region")
	case g.DetectionX > g.TubeLength:
		return invalid("detection_x", "must lie inside the tube")
	}
	return nil
}

func invalid(field, reason string) error {
	return &ConfigurationError{Field: field, Reason: reason, Wrapped: ErrInvalidGeometry}
}
