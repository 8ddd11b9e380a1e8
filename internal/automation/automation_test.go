package automation

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/experiment"
	"github.com/san-kum/crtsim/internal/storage"
)

const scenarioYAML = `
name: ramp
description: step the deflection up then switch to the curved field
preset: default
steps:
  - deflection: 0
  - deflection: 25
    save_as: quarter
  - mode: curved
  - accelerating: 4000
    beam:
      count: 3
      spread: 0.002
    save_as: stiff
`

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ramp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0644))
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t))
	require.NoError(t, err)

	assert.Equal(t, "ramp", sc.Name)
	require.Len(t, sc.Steps, 4)
	require.NotNil(t, sc.Steps[1].Deflection)
	assert.Equal(t, 25.0, *sc.Steps[1].Deflection)
	assert.Nil(t, sc.Steps[2].Deflection)
	assert.Equal(t, "curved", sc.Steps[2].Mode)
	require.NotNil(t, sc.Steps[3].Beam)
	assert.Equal(t, 3, sc.Steps[3].Beam.Count)
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t))
	require.NoError(t, err)

	store := storage.New(t.TempDir())
	require.NoError(t, store.Init())

	results, err := RunScenario(context.Background(), sc, experiment.NewRegistry(), store)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.InDelta(t, 0.125, results[0].Result.Central().Impact, 1e-12)
	assert.Greater(t, results[1].Result.Central().Impact, 0.125)

	// overrides carry forward
	assert.Equal(t, "curved", results[3].Config.Mode)
	assert.Equal(t, 25.0, results[3].Config.Controls.Deflection)
	assert.Len(t, results[3].Result.Tracks, 3)

	assert.Empty(t, results[0].RunID)
	assert.NotEmpty(t, results[1].RunID)
	assert.Equal(t, "stiff", results[3].SavedAs)

	runs, err := store.List()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRunScenarioErrors(t *testing.T) {
	reg := experiment.NewRegistry()

	_, err := RunScenario(context.Background(), &Scenario{Preset: "missing"}, reg, nil)
	assert.Error(t, err)

	bad := "sideways"
	sc := &Scenario{Steps: []ScenarioStep{{}, {Mode: bad}}}
	results, err := RunScenario(context.Background(), sc, reg, nil)
	assert.Error(t, err)
	assert.Len(t, results, 1)
}

func TestRunJitter(t *testing.T) {
	cfg := config.DefaultConfig()

	res, err := RunJitter(context.Background(), cfg, JitterConfig{
		Trials:             200,
		AcceleratingRipple: 20,
		DeflectionRipple:   1,
		Seed:               7,
	})
	require.NoError(t, err)
	require.Len(t, res.Impacts, 200)

	assert.InDelta(t, 0.14375, res.Mean, 1e-3)
	assert.Greater(t, res.StdDev, 0.0)
	assert.LessOrEqual(t, res.Min, res.Mean)
	assert.GreaterOrEqual(t, res.Max, res.Mean)
	assert.Zero(t, res.Clipped)

	quiet, err := RunJitter(context.Background(), cfg, JitterConfig{Trials: 5, Seed: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0, quiet.StdDev, 1e-15)
	assert.True(t, math.Abs(quiet.Mean-0.14375) < 1e-9)
}
