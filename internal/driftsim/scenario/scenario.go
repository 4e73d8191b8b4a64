// Package scenario encodes the six concrete scenarios of spec.md §8 as
// reusable fixtures: LKP, environmental conditions, shoreline geometry,
// and expected outcome, so the property/invariant tests and the
// cmd/driftsvc integration test can exercise the engine end-to-end
// without duplicating setup.
package scenario

import (
	"math/rand"
	"time"

	"github.com/sarops/driftsim/internal/config"
	"github.com/sarops/driftsim/internal/envfield"
	"github.com/sarops/driftsim/internal/geo"
	"github.com/sarops/driftsim/internal/geodata"
)

// Fixture bundles a simulation configuration with the environmental and
// geodata providers it runs against.
type Fixture struct {
	Name   string
	Config config.SimulationConfig
	Env    envfield.Provider
	Geo    *geodata.Adapter
	Tuning *config.TuningConfig
	Rng    *rand.Rand
}

// StrongOnshoreWindBeaching is scenario 1: 1000 particles at (29.30,
// -94.80), person-in-water, 24h, wind 20kn due north, flat 3m bathymetry,
// sandy shore 0.1° north of the LKP. Expect >=50% beached or within
// 0.01° of shore by hour 24.
func StrongOnshoreWindBeaching() Fixture {
	lkp := geo.Point{Lat: 29.30, Lng: -94.80}
	shoreline := geodata.NewSyntheticShoreline(lkp.Lat, lkp.Lng, 0, 0.1*111.32, 180, geodata.ShoreSandy)
	shoreline.DeepWaterDepthM = 3

	return Fixture{
		Name: "strong-onshore-wind-beaching",
		Config: config.SimulationConfig{
			LKP:             lkp,
			ObjectType:      config.ObjectPersonInWater,
			ParticleCount:   1000,
			DurationHours:   24,
			TimeStepSeconds: 600,
			InitialSpreadKm: 0.1,
		},
		Env: envfield.NewDeterministic(
			envfield.Wind{SpeedKnots: 20, DirDeg: 0},
			envfield.Current{},
			envfield.Waves{SignificantHeightM: 0.5, PeakPeriodS: 6, DirDeg: 0},
			65, 75, 10, 3,
		),
		Geo:    geodata.NewAdapter(shoreline, 10000),
		Tuning: config.EmptyTuningConfig(),
		Rng:    rand.New(rand.NewSource(1)),
	}
}

// NoOpDrift is scenario 2: all forcings and diffusion zero. Particles
// must remain at their initial positions for any number of steps.
func NoOpDrift() Fixture {
	lkp := geo.Point{Lat: 10, Lng: 10}
	zero := 0.0
	return Fixture{
		Name: "no-op-drift",
		Config: config.SimulationConfig{
			LKP:             lkp,
			ObjectType:      config.ObjectPersonInWater,
			ParticleCount:   200,
			DurationHours:   12,
			TimeStepSeconds: 600,
			InitialSpreadKm: 0, // 0 initial spread keeps every particle exactly at LKP
		},
		Env: envfield.NewDeterministic(envfield.Wind{}, envfield.Current{}, envfield.Waves{}, 65, 75, 10, 1),
		Geo: geodata.NewAdapter(geodata.NewSyntheticShoreline(lkp.Lat, lkp.Lng, 0, 500, 0, geodata.ShoreSandy), 10000),
		Tuning: &config.TuningConfig{
			WindDriftFactor:    &zero,
			CurrentDriftFactor: &zero,
			StokesCoefficient:  &zero,
			DiffusionRateKm2PH: &zero,
		},
		Rng: rand.New(rand.NewSource(2)),
	}
}

// HullCorrectnessPoints is scenario 3: the five fixed points whose 90%
// containment prefix must reproduce the unit square in CCW order.
func HullCorrectnessPoints() []geo.Point {
	return []geo.Point{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 1},
		{Lat: 1, Lng: 0},
		{Lat: 1, Lng: 1},
		{Lat: 0.5, Lng: 0.5},
	}
}

// SurvivalTableCase is scenario 4's victim profile and conditions: age
// 40, no PFD, light clothing, water 55°F, 4 hours elapsed.
func SurvivalTableCase() (profile config.VictimProfile, waterTempF, elapsedHours float64) {
	age := 40
	return config.VictimProfile{Age: &age, HasPFD: false, Clothing: config.ClothingLight}, 55, 4
}

// ShallowStokesEnhancement is scenario 5's wave/depth inputs: H=1m, T=6s,
// d=2m, where the shallow-water enhancement factor must exceed 3x the
// deep-water Stokes displacement.
func ShallowStokesEnhancement() (heightM, periodS, depthM float64) {
	return 1.0, 6.0, 2.0
}

// CooperativeYielding is scenario 6: 10000 particles x 432 steps, used to
// assert strictly non-decreasing progress with at least one intermediate
// report observed between 1% and 99%.
func CooperativeYielding() Fixture {
	lkp := geo.Point{Lat: 0, Lng: 0}
	return Fixture{
		Name: "cooperative-yielding",
		Config: config.SimulationConfig{
			LKP:             lkp,
			ObjectType:      config.ObjectPersonInWater,
			ParticleCount:   10000,
			DurationHours:   72,
			TimeStepSeconds: 600, // 432 steps over 72h
			InitialSpreadKm: 0.1,
		},
		Env: envfield.NewDeterministic(envfield.Wind{SpeedKnots: 5, DirDeg: 90}, envfield.Current{SpeedKnots: 1, DirDeg: 180}, envfield.Waves{SignificantHeightM: 1, PeakPeriodS: 7, DirDeg: 90}, 65, 75, 10, 3),
		Geo:    geodata.NewAdapter(geodata.NewSyntheticShoreline(lkp.Lat, lkp.Lng, 0, 5000, 0, geodata.ShoreSandy), 10000),
		Tuning: config.EmptyTuningConfig(),
		Rng:    rand.New(rand.NewSource(6)),
	}
}

// ReferenceStartTime is a fixed wall-clock start used by fixtures so
// repeated runs sample the same point in the (tick-based) deterministic
// provider's evolution.
var ReferenceStartTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
