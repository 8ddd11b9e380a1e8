package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/experiment"
	"github.com/san-kum/crtsim/internal/logging"
	"github.com/san-kum/crtsim/internal/storage"
)

var log = logging.NamedLogger("automation")

// Scenario is a scripted sequence of tube settings.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Preset      string         `yaml:"preset"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep overrides part of the running config. Unset fields keep the
// value from the previous step.
type ScenarioStep struct {
	Mode         string             `yaml:"mode"`
	Integrator   string             `yaml:"integrator"`
	Accelerating *float64           `yaml:"accelerating"`
	Deflection   *float64           `yaml:"deflection"`
	Offset       *float64           `yaml:"offset"`
	Beam         *config.BeamConfig `yaml:"beam"`
	SaveAs       string             `yaml:"save_as"`
}

type StepResult struct {
	Step    int
	Config  *config.Config
	Result  *experiment.Result
	RunID   string
	SavedAs string
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return &scenario, nil
}

func (st ScenarioStep) apply(cfg *config.Config) {
	if st.Mode != "" {
		cfg.Mode = st.Mode
	}
	if st.Integrator != "" {
		cfg.Integrator = st.Integrator
	}
	if st.Accelerating != nil {
		cfg.Controls.Accelerating = *st.Accelerating
	}
	if st.Deflection != nil {
		cfg.Controls.Deflection = *st.Deflection
	}
	if st.Offset != nil {
		cfg.Controls.Offset = *st.Offset
	}
	if st.Beam != nil {
		cfg.Beam = *st.Beam
	}
}

// RunScenario executes every step in order. Steps with save_as are stored
// in store when it is not nil.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, store *storage.Store) ([]StepResult, error) {
	cfg, ok := registry.Preset(scenario.Preset)
	if !ok {
		return nil, fmt.Errorf("unknown preset: %s", scenario.Preset)
	}

	results := make([]StepResult, 0, len(scenario.Steps))
	for i, step := range scenario.Steps {
		step.apply(cfg)
		stepCfg := cfg.Clone()

		log.Infof("step %d/%d: mode=%s va=%.1f vd=%.1f", i+1, len(scenario.Steps),
			stepCfg.Mode, stepCfg.Controls.Accelerating, stepCfg.Controls.Deflection)

		exp, err := experiment.New(stepCfg)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		res, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: i + 1, Config: stepCfg, Result: res}
		if step.SaveAs != "" && store != nil {
			id, err := store.Save(storage.RunMetadata{
				Name:    step.SaveAs,
				Config:  stepCfg,
				Metrics: res.Metrics,
			}, res.Central())
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			sr.RunID = id
			sr.SavedAs = step.SaveAs
		}
		results = append(results, sr)
	}

	return results, nil
}
