package coordinator

import (
	"testing"
	"time"

	"github.com/sarops/driftsim/internal/config"
	"github.com/sarops/driftsim/internal/envfield"
	"github.com/sarops/driftsim/internal/geo"
	"github.com/sarops/driftsim/internal/geodata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnv() envfield.Provider {
	return envfield.NewDeterministic(envfield.Wind{SpeedKnots: 10, DirDeg: 45}, envfield.Current{SpeedKnots: 1, DirDeg: 90}, envfield.Waves{SignificantHeightM: 1, PeakPeriodS: 7, DirDeg: 45}, 65, 75, 10, 3)
}

func newTestGeo() *geodata.Adapter {
	return geodata.NewAdapter(geodata.NewSyntheticShoreline(29.3, -94.8, 0, 500, 0, geodata.ShoreSandy), 10000)
}

func TestStartRejectsInvalidConfiguration(t *testing.T) {
	r := New()
	_, err := r.Start(config.SimulationConfig{LKP: geo.Point{Lat: 999, Lng: 0}}, newTestEnv(), newTestGeo(), nil)
	require.Error(t, err)
}

func TestStartRunsToCompletion(t *testing.T) {
	r := New()
	cfg := config.SimulationConfig{
		LKP:             geo.Point{Lat: 29.3, Lng: -94.8},
		ParticleCount:   20,
		DurationHours:   1,
		TimeStepSeconds: 600,
	}
	id, err := r.Start(cfg, newTestEnv(), newTestGeo(), config.EmptyTuningConfig())
	require.NoError(t, err)

	deadline := time.Now().Add(5 * time.Second)
	var info StatusInfo
	for time.Now().Before(deadline) {
		info, err = r.Status(id)
		require.NoError(t, err)
		if info.Status != StatusRunning {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	assert.Equal(t, StatusCompleted, info.Status)
	assert.Equal(t, 100, info.Progress)

	results, err := r.Results(id)
	require.NoError(t, err)
	assert.Equal(t, 20, results.Stats.TotalBeached+countActiveFromSnapshots(results))
}

func countActiveFromSnapshots(r *Results) int {
	if len(r.Snapshots) == 0 {
		return 0
	}
	return r.Snapshots[len(r.Snapshots)-1].Active
}

func TestResultsBeforeCompletionIsNotReady(t *testing.T) {
	r := New()
	cfg := config.SimulationConfig{
		LKP:             geo.Point{Lat: 29.3, Lng: -94.8},
		ParticleCount:   10000,
		DurationHours:   72,
		TimeStepSeconds: 60,
	}
	id, err := r.Start(cfg, newTestEnv(), newTestGeo(), config.EmptyTuningConfig())
	require.NoError(t, err)

	_, err = r.Results(id)
	assert.ErrorIs(t, err, config.ErrNotReady)

	err = r.Stop(id)
	assert.NoError(t, err)
}

func TestUnknownSimulationIDReturnsNotFound(t *testing.T) {
	r := New()
	_, err := r.Status("does-not-exist")
	assert.ErrorIs(t, err, config.ErrNotFound)

	_, err = r.Results("does-not-exist")
	assert.ErrorIs(t, err, config.ErrNotFound)

	err = r.Stop("does-not-exist")
	assert.ErrorIs(t, err, config.ErrNotFound)

	err = r.Delete("does-not-exist")
	assert.ErrorIs(t, err, config.ErrNotFound)
}

func TestStopIsIdempotent(t *testing.T) {
	r := New()
	cfg := config.SimulationConfig{
		LKP:             geo.Point{Lat: 29.3, Lng: -94.8},
		ParticleCount:   10,
		DurationHours:   72,
		TimeStepSeconds: 60,
	}
	id, err := r.Start(cfg, newTestEnv(), newTestGeo(), config.EmptyTuningConfig())
	require.NoError(t, err)

	require.NoError(t, r.Stop(id))
	require.NoError(t, r.Stop(id))
}

func TestDeleteRemovesFromList(t *testing.T) {
	r := New()
	cfg := config.SimulationConfig{
		LKP:             geo.Point{Lat: 29.3, Lng: -94.8},
		ParticleCount:   5,
		DurationHours:   1,
		TimeStepSeconds: 600,
	}
	id, err := r.Start(cfg, newTestEnv(), newTestGeo(), config.EmptyTuningConfig())
	require.NoError(t, err)
	require.Contains(t, r.List(), id)

	require.NoError(t, r.Delete(id))
	assert.NotContains(t, r.List(), id)
}
