package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sarops/driftsim/internal/containment"
	"github.com/sarops/driftsim/internal/density"
	"github.com/sarops/driftsim/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDensityPlotWritesPNG(t *testing.T) {
	dir := t.TempDir()
	cells := []density.Cell{
		{CenterLat: 29.3, CenterLng: -94.8, Count: 5, Weight: 1.0},
		{CenterLat: 29.31, CenterLng: -94.81, Count: 2, Weight: 0.4},
	}

	err := renderDensityPlot(cells, dir)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "density.png"))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderDensityPlotHandlesEmptyCells(t *testing.T) {
	dir := t.TempDir()
	err := renderDensityPlot(nil, dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "density.png"))
	assert.NoError(t, err)
}

func TestRenderContainmentPlotWritesPNG(t *testing.T) {
	dir := t.TempDir()
	positions := []geo.Point{
		{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 0}, {Lat: 1, Lng: 1},
	}
	cont := containment.Calculate(positions)

	err := renderContainmentPlot(positions, cont, dir)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "containment.png"))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestHSLToRGBPrimaries(t *testing.T) {
	r, g, b := hslToRGB(0, 1, 0.5)
	assert.Equal(t, uint8(255), r)
	assert.Equal(t, uint8(0), g)
	assert.Equal(t, uint8(0), b)
}

func TestDensityColorsReturnsRequestedCount(t *testing.T) {
	colors := densityColors(5)
	assert.Len(t, colors, 5)
}
