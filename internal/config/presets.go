package config

import "sort"

func preset(mutate func(c *Config)) *Config {
	c := DefaultConfig()
	mutate(c)
	return c
}

// Presets are named starting points for common tube setups.
var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"strong": preset(func(c *Config) {
		c.Controls.Deflection = 150
	}),
	"reverse": preset(func(c *Config) {
		c.Controls.Deflection = -80
	}),
	"lowvoltage": preset(func(c *Config) {
		c.Controls.Accelerating = 500
		c.Controls.Deflection = 20
	}),
	"magnetic": preset(func(c *Config) {
		c.Mode = "curved"
	}),
	"magnetic-rk4": preset(func(c *Config) {
		c.Mode = "curved"
		c.Integrator = "rk4"
	}),
	"beam": preset(func(c *Config) {
		c.Beam.Count = 9
		c.Beam.Spread = 0.006
		c.Controls.Deflection = 30
	}),
	"overdriven": preset(func(c *Config) {
		c.Controls.Accelerating = 300
		c.Controls.Deflection = 400
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
