package drift

import (
	"math/rand"
	"testing"

	"github.com/sarops/driftsim/internal/config"
	"github.com/sarops/driftsim/internal/envfield"
	"github.com/sarops/driftsim/internal/geo"
	"github.com/stretchr/testify/assert"
)

func TestZeroForcingsProduceZeroDrift(t *testing.T) {
	cfg := config.EmptyTuningConfig()
	p := geo.Point{Lat: 29.3, Lng: -94.8}
	snap := envfield.Snapshot{}

	w := Wind(p, snap, 1, cfg)
	c := Current(p, snap, 1, cfg)
	l := Leeway(p, snap, 1, config.ObjectPersonInWater, cfg)

	assert.InDelta(t, 0, w.DLat, 1e-12)
	assert.InDelta(t, 0, w.DLng, 1e-12)
	assert.InDelta(t, 0, c.DLat, 1e-12)
	assert.InDelta(t, 0, c.DLng, 1e-12)
	assert.InDelta(t, 0, l.DLat, 1e-12)
	assert.InDelta(t, 0, l.DLng, 1e-12)
}

func TestWaveZeroPeriodIsNoOp(t *testing.T) {
	cfg := config.EmptyTuningConfig()
	p := geo.Point{Lat: 0, Lng: 0}
	snap := envfield.Snapshot{Waves: envfield.Waves{SignificantHeightM: 2, PeakPeriodS: 0}}
	rng := rand.New(rand.NewSource(1))
	d := Wave(p, snap, 1, cfg, rng)
	assert.Equal(t, Delta{}, d)
}

func TestLeewayUnknownTypeDefaultsToPersonInWater(t *testing.T) {
	cfg := config.EmptyTuningConfig()
	p := geo.Point{Lat: 0, Lng: 0}
	snap := envfield.Snapshot{Wind: envfield.Wind{SpeedKnots: 10, DirDeg: 0}}
	known := Leeway(p, snap, 1, config.ObjectPersonInWater, cfg)
	unknown := Leeway(p, snap, 1, config.ObjectType("spaceship"), cfg)
	assert.Equal(t, known, unknown)
}

func TestDiffusionMagnitudeBoundedByRate(t *testing.T) {
	cfg := config.EmptyTuningConfig()
	p := geo.Point{Lat: 0, Lng: 0}
	rng := rand.New(rand.NewSource(42))
	maxDistKm := 0.0
	for i := 0; i < 1000; i++ {
		d := Diffusion(p, 1, cfg, rng)
		moved := geo.Point{Lat: p.Lat + d.DLat, Lng: p.Lng + d.DLng}
		dist := geo.Haversine(p, moved)
		if dist > maxDistKm {
			maxDistKm = dist
		}
	}
	// sqrt(D*dt) with D=0.001, dt=1 -> max theoretical displacement ~0.0316km
	assert.Less(t, maxDistKm, 0.05)
}

func TestDepthAveragedCurrentDecaysWithDepth(t *testing.T) {
	s0, _ := DepthAveragedCurrent(5, 90, 0)
	s50, _ := DepthAveragedCurrent(5, 90, 50)
	assert.Greater(t, s0, s50)
}

func TestDirDeltaConventionMatchesCosSin(t *testing.T) {
	// spec.md §9: lat = cos(dir)*d, lng = sin(dir)*d must hold for wind/current.
	p := geo.Point{Lat: 0, Lng: 0}
	d := dirDelta(p, 111.32, 90, 1, false) // 1 hour at 111.32 km/h due east (90deg)
	assert.InDelta(t, 0, d.DLat, 1e-6)
	assert.InDelta(t, 1.0, d.DLng, 1e-6)
}
