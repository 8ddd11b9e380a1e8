package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/crtsim/internal/engine"
	"github.com/san-kum/crtsim/internal/integrators"
)

const (
	DefaultAccelerating = 2000.0
	DefaultDeflection   = 50.0
	DefaultBeamCount    = 1
	DefaultBeamSpread   = 0.004
)

type Config struct {
	Mode       string         `yaml:"mode" json:"mode"`
	Integrator string         `yaml:"integrator" json:"integrator"`
	Geometry   GeometryConfig `yaml:"geometry" json:"geometry"`
	Controls   ControlConfig  `yaml:"controls" json:"controls"`
	Beam       BeamConfig     `yaml:"beam" json:"beam"`
}

// GeometryConfig mirrors engine.Geometry; lengths in meters.
type GeometryConfig struct {
	TubeLength       float64 `yaml:"tube_length" json:"tube_length"`
	TubeHeight       float64 `yaml:"tube_height" json:"tube_height"`
	SourceX          float64 `yaml:"source_x" json:"source_x"`
	DeflectionStart  float64 `yaml:"deflection_start" json:"deflection_start"`
	DeflectionLength float64 `yaml:"deflection_length" json:"deflection_length"`
	PlateSpacing     float64 `yaml:"plate_spacing" json:"plate_spacing"`
	DetectionX       float64 `yaml:"detection_x" json:"detection_x"`
}

// ControlConfig holds the potentials in volts.
type ControlConfig struct {
	Accelerating float64 `yaml:"accelerating" json:"accelerating"`
	Deflection   float64 `yaml:"deflection" json:"deflection"`
	Offset       float64 `yaml:"offset" json:"offset"`
}

type BeamConfig struct {
	Count  int     `yaml:"count" json:"count"`
	Spread float64 `yaml:"spread" json:"spread"`
}

func DefaultConfig() *Config {
	g := engine.DefaultGeometry()
	return &Config{
		Mode:       engine.ModeUniform.String(),
		Integrator: integrators.Default,
		Geometry: GeometryConfig{
			TubeLength:       g.TubeLength,
			TubeHeight:       g.TubeHeight,
			SourceX:          g.SourceX,
			DeflectionStart:  g.DeflectionStart,
			DeflectionLength: g.DeflectionLength,
			PlateSpacing:     g.PlateSpacing,
			DetectionX:       g.DetectionX,
		},
		Controls: ControlConfig{
			Accelerating: DefaultAccelerating,
			Deflection:   DefaultDeflection,
		},
		Beam: BeamConfig{
			Count:  DefaultBeamCount,
			Spread: DefaultBeamSpread,
		},
	}
}

// Load reads a yaml file on top of DefaultConfig, so omitted keys keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate reports the first problem with the mode, integrator or geometry.
func (c *Config) Validate() error {
	if _, err := engine.ParseMode(c.Mode); err != nil {
		return err
	}
	if _, err := integrators.New(c.Integrator); err != nil {
		return err
	}
	if c.Beam.Count < 0 {
		return fmt.Errorf("beam count must not be negative, got %d", c.Beam.Count)
	}
	return engine.Validate(c.EngineGeometry())
}

func (c *Config) EngineGeometry() engine.Geometry {
	g := c.Geometry
	return engine.Geometry{
		TubeLength:       g.TubeLength,
		TubeHeight:       g.TubeHeight,
		SourceX:          g.SourceX,
		DeflectionStart:  g.DeflectionStart,
		DeflectionLength: g.DeflectionLength,
		PlateSpacing:     g.PlateSpacing,
		DetectionX:       g.DetectionX,
	}
}

// Params converts the controls into engine parameters. An unparseable mode
// falls back to uniform; call Validate first to catch it.
func (c *Config) Params() engine.Params {
	mode, _ := engine.ParseMode(c.Mode)
	return engine.Params{
		AcceleratingPotential: c.Controls.Accelerating,
		DeflectionPotential:   c.Controls.Deflection,
		Mode:                  mode,
		LateralOffset:         c.Controls.Offset,
	}
}

func (c *Config) Options() engine.Options {
	opts := engine.DefaultOptions()
	if c.Integrator != "" {
		opts.Integrator = c.Integrator
	}
	return opts
}

func (c *Config) BeamSpec() engine.BeamSpec {
	return engine.BeamSpec{Count: c.Beam.Count, Spread: c.Beam.Spread}
}
