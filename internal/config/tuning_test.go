package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sarops/driftsim/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTuningConfigPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"wind_drift_factor": 0.05}`), 0644))

	cfg, err := LoadTuningConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.GetWindDriftFactor())
	assert.Equal(t, 1.0, cfg.GetCurrentDriftFactor()) // untouched field keeps default
}

func TestLoadTuningConfigRejectsNonJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.txt")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	_, err := LoadTuningConfig(path)
	assert.Error(t, err)
}

func TestValidateRejectsNonPositiveManning(t *testing.T) {
	cfg := EmptyTuningConfig()
	bad := -1.0
	cfg.ManningRoughness = &bad
	assert.Error(t, cfg.Validate())
}

func TestDefaults(t *testing.T) {
	cfg := EmptyTuningConfig()
	assert.Equal(t, 0.03, cfg.GetWindDriftFactor())
	assert.Equal(t, 20.0, cfg.GetShallowDepthThreshold())
	assert.Equal(t, 5.0, cfg.GetSurfZoneDepthM())
	assert.Equal(t, 2.0, cfg.GetVeryShallowDepthM())
	assert.False(t, cfg.GetCorrectLongitudeScale())
}

func TestSimulationConfigWithDefaults(t *testing.T) {
	c := SimulationConfig{}.WithDefaults()
	assert.Equal(t, ObjectPersonInWater, c.ObjectType)
	assert.Equal(t, 10000, c.ParticleCount)
	assert.Equal(t, 72.0, c.DurationHours)
	assert.Equal(t, 600.0, c.TimeStepSeconds)
	assert.Equal(t, 0.1, c.InitialSpreadKm)
}

func TestSimulationConfigValidateAcceptsGoodLKP(t *testing.T) {
	c := SimulationConfig{LKP: geo.Point{Lat: 29.3, Lng: -94.8}}.WithDefaults()
	assert.NoError(t, c.Validate())
}

func TestSimulationConfigValidateRejectsBadObjectType(t *testing.T) {
	c := SimulationConfig{LKP: geo.Point{Lat: 29.3, Lng: -94.8}, ObjectType: "not-a-type"}.WithDefaults()
	c.ObjectType = "not-a-type"
	err := c.Validate()
	assert.Error(t, err)
}

func TestSimulationConfigValidateRejectsBadLat(t *testing.T) {
	c := SimulationConfig{LKP: geo.Point{Lat: 999, Lng: -94.8}}.WithDefaults()
	assert.Error(t, c.Validate())
}
