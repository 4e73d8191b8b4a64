package simdriver

import (
	"math/rand"
	"testing"
	"time"

	"github.com/sarops/driftsim/internal/config"
	"github.com/sarops/driftsim/internal/envfield"
	"github.com/sarops/driftsim/internal/geo"
	"github.com/sarops/driftsim/internal/geodata"
	"github.com/sarops/driftsim/internal/particle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeroTuning() *config.TuningConfig {
	zero := 0.0
	return &config.TuningConfig{
		WindDriftFactor:    &zero,
		CurrentDriftFactor: &zero,
		StokesCoefficient:  &zero,
		DiffusionRateKm2PH: &zero,
	}
}

func TestStepNoOpWhenAllForcingsZero(t *testing.T) {
	lkp := geo.Point{Lat: 29.30, Lng: -94.80}
	ens := particle.NewEnsemble(50, lkp)

	env := envfield.NewDeterministic(envfield.Wind{}, envfield.Current{}, envfield.Waves{}, 60, 70, 10, 2)
	geoSrc := geodata.NewAdapter(geodata.NewSyntheticShoreline(29.0, -94.80, 0, 500, 0, geodata.ShoreSandy), 1000)

	cfg := zeroTuning()
	rng := rand.New(rand.NewSource(42))
	d := New(ens, env, geoSrc, config.ObjectPersonInWater, cfg, rng, time.Unix(0, 0))

	for i := 0; i < 20; i++ {
		d.Step(600)
	}

	centroid, ok := ens.Centroid()
	require.True(t, ok)
	assert.InDelta(t, lkp.Lat, centroid.Lat, 1e-9)
	assert.InDelta(t, lkp.Lng, centroid.Lng, 1e-9)

	active, beached, total := ens.Counts()
	assert.Equal(t, 50, active)
	assert.Equal(t, 0, beached)
	assert.Equal(t, 50, total)
}

func TestStepEmitsHourlySnapshot(t *testing.T) {
	lkp := geo.Point{Lat: 0, Lng: 0}
	ens := particle.NewEnsemble(5, lkp)
	env := envfield.NewDeterministic(envfield.Wind{}, envfield.Current{}, envfield.Waves{}, 60, 70, 10, 2)
	geoSrc := geodata.NewAdapter(geodata.NewSyntheticShoreline(0, 0, 0, 500, 0, geodata.ShoreSandy), 1000)
	cfg := zeroTuning()
	rng := rand.New(rand.NewSource(1))
	d := New(ens, env, geoSrc, config.ObjectPersonInWater, cfg, rng, time.Unix(0, 0))

	// 6 steps of 600s = 3600s = exactly one hour.
	for i := 0; i < 6; i++ {
		d.Step(600)
	}

	snaps := d.Snapshots()
	require.Len(t, snaps, 1)
	assert.Equal(t, 1, snaps[0].Hour)
	assert.Equal(t, 3600.0, snaps[0].TimeSeconds)
	assert.Equal(t, 5, snaps[0].Total)
}

func TestBeachingUnderStrongOnshoreWind(t *testing.T) {
	lkp := geo.Point{Lat: 29.30, Lng: -94.80}
	ens := particle.NewEnsemble(200, lkp)
	ens.InitialSpread(lkp, 0.1, rand.New(rand.NewSource(9)))

	// Wind blowing due north (dir 0) at 20kn, toward a shoreline just
	// north of the LKP, flat shallow bathymetry.
	env := envfield.NewDeterministic(
		envfield.Wind{SpeedKnots: 20, DirDeg: 0},
		envfield.Current{SpeedKnots: 0, DirDeg: 0},
		envfield.Waves{SignificantHeightM: 0.5, PeakPeriodS: 6, DirDeg: 0},
		60, 70, 10, 2,
	)
	shoreline := geodata.NewSyntheticShoreline(lkp.Lat, lkp.Lng, 0, 0.3, 180, geodata.ShoreSandy)
	shoreline.DeepWaterDepthM = 3
	geoSrc := geodata.NewAdapter(shoreline, 10000)

	cfg := config.EmptyTuningConfig()
	rng := rand.New(rand.NewSource(123))
	d := New(ens, env, geoSrc, config.ObjectPersonInWater, cfg, rng, time.Unix(0, 0))

	totalSteps := int(24 * 3600 / 600)
	for i := 0; i < totalSteps; i++ {
		d.Step(600)
	}

	active, beached, total := ens.Counts()
	assert.Equal(t, 200, total)
	assert.Greater(t, beached, 0, "expected at least some particles to beach under strong onshore wind")
	_ = active

	stats := d.Stats()
	assert.Greater(t, stats.ShallowWaterEncounters, 0)
}

func TestParticleCountConstantAcrossSteps(t *testing.T) {
	lkp := geo.Point{Lat: 10, Lng: 10}
	ens := particle.NewEnsemble(30, lkp)
	env := envfield.NewDeterministic(envfield.Wind{SpeedKnots: 5, DirDeg: 45}, envfield.Current{SpeedKnots: 2, DirDeg: 90}, envfield.Waves{SignificantHeightM: 1, PeakPeriodS: 8, DirDeg: 45}, 65, 75, 10, 3)
	geoSrc := geodata.NewAdapter(geodata.NewSyntheticShoreline(10, 10, 0, 500, 0, geodata.ShoreRocky), 10000)
	cfg := config.EmptyTuningConfig()
	rng := rand.New(rand.NewSource(5))
	d := New(ens, env, geoSrc, config.ObjectLifeRaft4, cfg, rng, time.Unix(0, 0))

	for i := 0; i < 50; i++ {
		d.Step(600)
		_, _, total := ens.Counts()
		require.Equal(t, 30, total)
	}
}
