package experiment

import (
	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/engine"
	"github.com/san-kum/crtsim/internal/integrators"
)

// Registry lists the names the CLI accepts.
type Registry struct {
	modes []engine.Mode
}

func NewRegistry() *Registry {
	return &Registry{modes: []engine.Mode{engine.ModeUniform, engine.ModeCurved}}
}

func (r *Registry) ListModes() []string {
	names := make([]string, len(r.modes))
	for i, m := range r.modes {
		names[i] = m.String()
	}
	return names
}

func (r *Registry) ListIntegrators() []string { return integrators.Names() }

func (r *Registry) ListPresets() []string { return config.ListPresets() }

// Preset returns the named preset, or DefaultConfig for "".
func (r *Registry) Preset(name string) (*config.Config, bool) {
	if name == "" {
		return config.DefaultConfig(), true
	}
	cfg := config.GetPreset(name)
	return cfg, cfg != nil
}
