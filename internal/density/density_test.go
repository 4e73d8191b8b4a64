package density

import (
	"testing"

	"github.com/sarops/driftsim/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeBinsAndWeightsCorrectly(t *testing.T) {
	positions := map[int]geo.Point{
		0: {Lat: 0.001, Lng: 0.001},
		1: {Lat: 0.002, Lng: 0.002},
		2: {Lat: 0.003, Lng: 0.003},
		3: {Lat: 5.0, Lng: 5.0},
	}
	cells := Analyze(positions, 0.01)
	require.Len(t, cells, 2)

	assert.Equal(t, 3, cells[0].Count)
	assert.Equal(t, 1.0, cells[0].Weight)
	assert.Equal(t, 1, cells[1].Count)
	assert.InDelta(t, 1.0/3.0, cells[1].Weight, 1e-9)
}

func TestAnalyzeEmptyInputReturnsNoCells(t *testing.T) {
	cells := Analyze(map[int]geo.Point{}, 0.01)
	assert.Empty(t, cells)
}

func TestHighDensityFiltersBelowTenPercentOfMax(t *testing.T) {
	positions := map[int]geo.Point{}
	id := 0
	// 10 particles in cell A
	for i := 0; i < 10; i++ {
		positions[id] = geo.Point{Lat: 0.001, Lng: 0.001}
		id++
	}
	// 1 particle in cell B (10% of max, included)
	positions[id] = geo.Point{Lat: 1.0, Lng: 1.0}
	id++
	// 1 particle in cell far away, count also 1 -> included since >=10%
	positions[id] = geo.Point{Lat: 2.0, Lng: 2.0}

	cells := Analyze(positions, 0.01)
	high := HighDensity(cells)
	assert.Len(t, high, 3)
}

func TestSearchAreaKm2MatchesBoundingBoxFormula(t *testing.T) {
	pts := []geo.Point{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}
	area := SearchAreaKm2(pts)
	assert.Greater(t, area, 0.0)
}
