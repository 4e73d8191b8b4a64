package envfield

import (
	"math"
	"sync"
	"time"
)

// Deterministic is a minimal, dependency-free EnvironmentalProvider. It
// holds a single spatially-uniform condition that evolves over ticks per
// spec.md §6 (wind direction drift ±5°, speed ±1kn clamped [0,40],
// current direction drift ±2.5°). It never returns an error and never
// reports Synthetic, since it is itself the ground truth for tests and
// the CLI's default wiring rather than a stand-in for a real provider
// miss.
//
// This is not "the environmental-data fetcher" of spec.md §1 (an external
// collaborator reaching tide/current/buoy/weather services); it is an
// in-repo fixture, grounded on the teacher's synthetic test-helper style
// (internal/lidar/l5tracks/testing_helpers.go in the teacher repo).
type Deterministic struct {
	mu sync.Mutex

	wind    Wind
	current Current
	waves   Waves

	waterTempF   float64
	airTempF     float64
	visibilityNM float64
	seaState     int

	tidal              *Tidal
	bathymetryGradient *BathymetryGradient
	ripCurrent         *RipCurrent

	// tick counts Advance calls; its parity alternates the drift direction
	// each tick so the walk stays bounded instead of monotonically drifting.
	tick int64
}

// NewDeterministic builds a Deterministic provider seeded with the given
// baseline conditions.
func NewDeterministic(wind Wind, current Current, waves Waves, waterTempF, airTempF, visibilityNM float64, seaState int) *Deterministic {
	return &Deterministic{
		wind:         wind,
		current:      current,
		waves:        waves,
		waterTempF:   waterTempF,
		airTempF:     airTempF,
		visibilityNM: visibilityNM,
		seaState:     seaState,
	}
}

// WithTidal attaches a tidal block to subsequent ConditionsAt calls.
func (d *Deterministic) WithTidal(t Tidal) *Deterministic {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tidal = &t
	return d
}

// WithBathymetryGradient attaches a bathymetry-gradient block.
func (d *Deterministic) WithBathymetryGradient(g BathymetryGradient) *Deterministic {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bathymetryGradient = &g
	return d
}

// WithRipCurrent attaches a rip-current block.
func (d *Deterministic) WithRipCurrent(r RipCurrent) *Deterministic {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ripCurrent = &r
	return d
}

// ConditionsAt returns the provider's current (spatially-uniform) state.
// lat/lng/t are accepted to satisfy Provider but do not affect the result;
// time evolution only happens through Advance.
func (d *Deterministic) ConditionsAt(lat, lng float64, t time.Time) (Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return Snapshot{
		Wind:               d.wind,
		Current:            d.current,
		Waves:              d.waves,
		WaterTempF:         d.waterTempF,
		AirTempF:           d.airTempF,
		VisibilityNM:       d.visibilityNM,
		SeaState:           d.seaState,
		Tidal:              d.tidal,
		BathymetryGradient: d.bathymetryGradient,
		RipCurrent:         d.ripCurrent,
	}, nil
}

// Advance evolves the provider's state by one tick per spec.md §6. The
// walk direction alternates deterministically with tick parity so repeated
// calls are reproducible across runs given the same starting tick count.
func (d *Deterministic) Advance(t time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.tick++
	sign := 1.0
	if d.tick%2 == 0 {
		sign = -1.0
	}

	d.wind.DirDeg = wrapDeg(d.wind.DirDeg + sign*5.0)
	d.wind.SpeedKnots = clamp(d.wind.SpeedKnots+sign*1.0, 0, 40)
	d.current.DirDeg = wrapDeg(d.current.DirDeg + sign*2.5)
}

func wrapDeg(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
