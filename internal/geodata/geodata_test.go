package geodata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticShoalsToZeroAtShoreline(t *testing.T) {
	s := NewSyntheticShoreline(29.30, -94.80, 0, 2.0, 0, ShoreSandy)
	onShore := geoPointAtShoreDistance(s, 0)
	depth, ok := s.Depth(onShore.lat, onShore.lng)
	require.True(t, ok)
	assert.InDelta(t, 0, depth, 0.5)
}

func TestSyntheticDeepensOffshore(t *testing.T) {
	s := NewSyntheticShoreline(29.30, -94.80, 0, 2.0, 0, ShoreSandy)
	far := geoPointAtShoreDistance(s, 20)
	depth, _ := s.Depth(far.lat, far.lng)
	assert.InDelta(t, s.DeepWaterDepthM, depth, 1)
}

func TestParamsForUnknownDefaultsToSandy(t *testing.T) {
	assert.Equal(t, ParamsFor(ShoreSandy), ParamsFor(ShoreKind("volcanic")))
}

func TestAdapterCachesDepth(t *testing.T) {
	s := NewSyntheticShoreline(0, 0, 0, 5.0, 0, ShoreRocky)
	a := NewAdapter(s, 10)

	d1, synth1 := a.Depth(0.01, 0.01)
	assert.False(t, synth1)
	assert.Equal(t, 1, a.Len())

	d2, synth2 := a.Depth(0.01, 0.01)
	assert.False(t, synth2)
	assert.Equal(t, d1, d2)
	assert.Equal(t, 1, a.Len(), "second lookup must hit the cache, not grow it")
}

func TestAdapterEvictsOldestWhenFull(t *testing.T) {
	s := NewSyntheticShoreline(0, 0, 0, 50.0, 0, ShoreRocky)
	a := NewAdapter(s, 2)

	a.Depth(0.001, 0.001)
	a.Depth(0.002, 0.002)
	a.Depth(0.003, 0.003) // should evict the first entry

	assert.Equal(t, 2, a.Len())
}

func TestAdapterRipCurrentDefaultIsMiss(t *testing.T) {
	s := NewSyntheticShoreline(0, 0, 0, 5.0, 0, ShoreSandy)
	a := NewAdapter(s, 10)
	_, ok := a.RipCurrentAt(0, 0, time.Now())
	assert.False(t, ok)
}

// geoPointAtShoreDistance returns a point at the given seaward distance
// (km) along the shore-normal from the synthetic origin.
type point struct{ lat, lng float64 }

func geoPointAtShoreDistance(s *Synthetic, distKm float64) point {
	totalKm := s.ShoreDistanceKm - distKm
	dLat := -totalKm / 111.32
	return point{lat: s.Origin.Lat + dLat, lng: s.Origin.Lng}
}
