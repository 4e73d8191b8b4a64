package envfield

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicConditionsAtNoError(t *testing.T) {
	d := NewDeterministic(Wind{SpeedKnots: 20, DirDeg: 0}, Current{SpeedKnots: 1, DirDeg: 90}, Waves{SignificantHeightM: 1, PeakPeriodS: 6, DirDeg: 0}, 60, 65, 10, 3)
	snap, err := d.ConditionsAt(29.3, -94.8, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 20.0, snap.Wind.SpeedKnots)
	assert.False(t, snap.Synthetic)
}

func TestDeterministicAdvanceBoundsSpeed(t *testing.T) {
	d := NewDeterministic(Wind{SpeedKnots: 40, DirDeg: 0}, Current{}, Waves{}, 60, 65, 10, 3)
	for i := 0; i < 100; i++ {
		d.Advance(time.Now())
	}
	snap, _ := d.ConditionsAt(0, 0, time.Now())
	assert.GreaterOrEqual(t, snap.Wind.SpeedKnots, 0.0)
	assert.LessOrEqual(t, snap.Wind.SpeedKnots, 40.0)
}

func TestDeterministicAdvanceWrapsDirection(t *testing.T) {
	d := NewDeterministic(Wind{SpeedKnots: 10, DirDeg: 359}, Current{}, Waves{}, 60, 65, 10, 3)
	d.Advance(time.Now())
	snap, _ := d.ConditionsAt(0, 0, time.Now())
	assert.GreaterOrEqual(t, snap.Wind.DirDeg, 0.0)
	assert.Less(t, snap.Wind.DirDeg, 360.0)
}

func TestDeterministicWithOptionalBlocks(t *testing.T) {
	d := NewDeterministic(Wind{}, Current{}, Waves{}, 60, 65, 10, 3).
		WithTidal(Tidal{Phase: 0.25, ShoreDirDeg: 10, ShoreNormalDeg: 100}).
		WithBathymetryGradient(BathymetryGradient{DzDx: 0.01, DzDy: 0, Magnitude: 0.01, DirDeg: 90}).
		WithRipCurrent(RipCurrent{Risk: 0.8, Strength: 1.2, DirDeg: 180})

	snap, _ := d.ConditionsAt(0, 0, time.Now())
	require.NotNil(t, snap.Tidal)
	require.NotNil(t, snap.BathymetryGradient)
	require.NotNil(t, snap.RipCurrent)
	assert.Equal(t, 0.25, snap.Tidal.Phase)
}
