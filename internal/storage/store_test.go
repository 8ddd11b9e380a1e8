package storage

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/engine"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	st := New(filepath.Join(t.TempDir(), "runs"))
	require.NoError(t, st.Init())
	return st
}

func TestStoreSaveLoad(t *testing.T) {
	st := newStore(t)
	cfg := config.DefaultConfig()
	track := engine.ComputeTrack(cfg.EngineGeometry(), cfg.Params())

	runID, err := st.Save(RunMetadata{Name: "scenario", Config: cfg}, track)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, "scenario", meta.Name)
	assert.Equal(t, cfg, meta.Config)
	assert.Equal(t, track.Impact, meta.Impact)
	assert.Equal(t, track.Len(), meta.Points)
	assert.False(t, meta.Timestamp.IsZero())

	path, err := st.LoadPath(runID)
	require.NoError(t, err)
	assert.Equal(t, track.Path, path)

	_, loaded, err := st.LoadTrack(runID)
	require.NoError(t, err)
	assert.Equal(t, track.Impact, loaded.Impact)
	assert.Equal(t, engine.ModeUniform, loaded.Mode)
	assert.Equal(t, track.EntryVelocity, loaded.EntryVelocity)
	assert.Equal(t, track.ExitVelocity, loaded.ExitVelocity)
	assert.NotZero(t, loaded.ExitVelocity)
}

func TestWriteJSONReportsEncodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), metadataFile)
	require.Error(t, writeJSON(path, math.NaN()))
	require.NoError(t, writeJSON(path, RunMetadata{ID: "x"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"entry_velocity"`)
}

func TestStoreUniqueIDs(t *testing.T) {
	st := newStore(t)
	track := engine.ComputeTrack(engine.DefaultGeometry(), engine.Params{AcceleratingPotential: 1000})

	a, err := st.Save(RunMetadata{}, track)
	require.NoError(t, err)
	b, err := st.Save(RunMetadata{}, track)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestStoreList(t *testing.T) {
	st := newStore(t)
	track := engine.ComputeTrack(engine.DefaultGeometry(), engine.Params{AcceleratingPotential: 1000})

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	_, err := st.Save(RunMetadata{ID: "old", Timestamp: older}, track)
	require.NoError(t, err)
	_, err = st.Save(RunMetadata{ID: "new", Timestamp: newer}, track)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(st.Dir(), "junk"), 0755))

	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "old", runs[1].ID)
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreNotFound(t *testing.T) {
	st := newStore(t)

	_, err := st.Load("nope")
	assert.ErrorIs(t, err, ErrRunNotFound)

	_, err = st.LoadPath("nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}
