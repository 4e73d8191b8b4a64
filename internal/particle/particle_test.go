package particle

import (
	"math/rand"
	"testing"

	"github.com/sarops/driftsim/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnsembleAllActiveAtLKP(t *testing.T) {
	lkp := geo.Point{Lat: 29.3, Lng: -94.8}
	e := NewEnsemble(10, lkp)
	require.Equal(t, 10, e.Len())
	for _, p := range e.Snapshot() {
		assert.Equal(t, StatusActive, p.Status)
		assert.Equal(t, lkp, p.Position)
	}
}

func TestInitialSpreadStaysWithinRadius(t *testing.T) {
	lkp := geo.Point{Lat: 29.3, Lng: -94.8}
	e := NewEnsemble(500, lkp)
	rng := rand.New(rand.NewSource(7))
	e.InitialSpread(lkp, 0.1, rng)

	for _, p := range e.Snapshot() {
		dist := geo.Haversine(lkp, p.Position)
		assert.LessOrEqual(t, dist, 0.1+1e-6)
	}
}

func TestMutateFreezesBeachedParticle(t *testing.T) {
	lkp := geo.Point{Lat: 0, Lng: 0}
	e := NewEnsemble(1, lkp)
	beachTime := 100.0
	e.Mutate(0, func(p *Particle) {
		p.Status = StatusBeached
		p.BeachedTimeSeconds = &beachTime
	})

	p := e.Get(0)
	assert.Equal(t, StatusBeached, p.Status)
	require.NotNil(t, p.BeachedTimeSeconds)
	assert.Equal(t, 100.0, *p.BeachedTimeSeconds)
}

func TestCountsPartitionsCorrectly(t *testing.T) {
	e := NewEnsemble(5, geo.Point{})
	e.Mutate(0, func(p *Particle) { p.Status = StatusBeached })
	e.Mutate(1, func(p *Particle) { p.Status = StatusBeached })
	e.Mutate(2, func(p *Particle) { p.Status = StatusRecovered })

	active, beached, total := e.Counts()
	assert.Equal(t, 2, active)
	assert.Equal(t, 2, beached)
	assert.Equal(t, 5, total)
	assert.Len(t, e.Recovered(), 1)
}

func TestCentroidEmptyWhenNoActive(t *testing.T) {
	e := NewEnsemble(2, geo.Point{})
	e.Mutate(0, func(p *Particle) { p.Status = StatusBeached })
	e.Mutate(1, func(p *Particle) { p.Status = StatusBeached })

	_, ok := e.Centroid()
	assert.False(t, ok)
}

func TestCentroidOfTwoSymmetricPoints(t *testing.T) {
	e := NewEnsemble(2, geo.Point{})
	e.Mutate(0, func(p *Particle) { p.Position = geo.Point{Lat: 1, Lng: 1} })
	e.Mutate(1, func(p *Particle) { p.Position = geo.Point{Lat: -1, Lng: -1} })

	c, ok := e.Centroid()
	require.True(t, ok)
	assert.InDelta(t, 0, c.Lat, 1e-9)
	assert.InDelta(t, 0, c.Lng, 1e-9)
}
