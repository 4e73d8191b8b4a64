package containment

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sarops/driftsim/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvexHullOfSquareWithCenterPoint(t *testing.T) {
	pts := []geo.Point{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 1},
		{Lat: 1, Lng: 0},
		{Lat: 1, Lng: 1},
		{Lat: 0.5, Lng: 0.5},
	}
	hull := ConvexHull(pts)
	require.Len(t, hull, 4)
	expected := []geo.Point{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 0}, {Lat: 1, Lng: 1}, {Lat: 0, Lng: 1}}
	if diff := cmp.Diff(expected, hull); diff != "" {
		t.Errorf("hull mismatch (-want +got):\n%s", diff)
	}
}

func TestConvexHullIsIdempotentOnHullPoints(t *testing.T) {
	square := []geo.Point{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 0}, {Lat: 1, Lng: 1}, {Lat: 0, Lng: 1}}
	hull := ConvexHull(square)
	hull2 := ConvexHull(hull)
	assert.ElementsMatch(t, hull, hull2)
}

func TestCalculateUnderThreeParticlesReturnsEmptyAndZeroConfidence(t *testing.T) {
	result := Calculate([]geo.Point{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}})
	assert.Equal(t, 0.0, result.Confidence)
	for _, poly := range result.Polygons {
		assert.Nil(t, poly.Polygon)
	}
}

func TestCalculateProducesThreePercentileTiers(t *testing.T) {
	pts := []geo.Point{
		{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 0}, {Lat: 1, Lng: 1}, {Lat: 0.5, Lng: 0.5},
		{Lat: 0.2, Lng: 0.3}, {Lat: 0.7, Lng: 0.8}, {Lat: 0.9, Lng: 0.1},
	}
	result := Calculate(pts)
	require.Len(t, result.Polygons, 3)
	assert.Equal(t, 0.50, result.Polygons[0].Percentile)
	assert.Equal(t, 0.90, result.Polygons[1].Percentile)
	assert.Equal(t, 0.95, result.Polygons[2].Percentile)
	assert.GreaterOrEqual(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
}

func TestPointInPolygonRayCasting(t *testing.T) {
	square := []geo.Point{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 0}, {Lat: 1, Lng: 1}, {Lat: 0, Lng: 1}}
	assert.True(t, PointInPolygon(geo.Point{Lat: 0.5, Lng: 0.5}, square))
	assert.False(t, PointInPolygon(geo.Point{Lat: 2, Lng: 2}, square))
}
