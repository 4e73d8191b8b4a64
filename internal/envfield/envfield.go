// Package envfield defines the environmental snapshot data model and the
// EnvironmentalProvider interface that the time-stepping driver samples on
// every step (spec.md §3, §6).
package envfield

import "time"

// Wind describes the wind component of a snapshot. Speed is in knots,
// direction in degrees true, gusts optional.
type Wind struct {
	SpeedKnots float64
	DirDeg     float64
	GustKnots  *float64
}

// Current describes the current component of a snapshot. Speed is in
// knots, direction in degrees true.
type Current struct {
	SpeedKnots     float64
	DirDeg         float64
	VariationKnots float64
}

// Waves describes the sea-state component of a snapshot.
type Waves struct {
	SignificantHeightM float64
	PeakPeriodS        float64
	DirDeg             float64
	ShoreNormalDeg     *float64
}

// Tidal is the optional tidal block. Phase is in [0,1]; phase 0 is defined
// as low tide throughout this engine (spec.md §9 open question — the
// choice must stay consistent between shallow-water physics and tidal
// current computation, see internal/shallowwater).
type Tidal struct {
	Phase          float64
	ShoreDirDeg    float64
	ShoreNormalDeg float64
}

// BathymetryGradient is the optional seabed-slope block consumed by the
// shallow-water topographic-steering term (spec.md §4.3.3).
type BathymetryGradient struct {
	DzDx      float64
	DzDy      float64
	Magnitude float64
	DirDeg    float64
}

// RipCurrent is the optional rip-current risk/strength block.
type RipCurrent struct {
	Risk     float64
	Strength float64
	DirDeg   float64
}

// Snapshot is the environmental state sampled at a point and time
// (spec.md §3).
type Snapshot struct {
	Wind         Wind
	Current      Current
	Waves        Waves
	WaterTempF   float64
	AirTempF     float64
	VisibilityNM float64
	SeaState     int // Douglas sea state, 0-8

	Tidal              *Tidal
	BathymetryGradient *BathymetryGradient
	RipCurrent         *RipCurrent

	// Synthetic reports whether any field of this snapshot fell back to a
	// conservative default because a provider returned a miss
	// (spec.md §7, GeoDataMissing).
	Synthetic bool
}

// Provider is the EnvironmentalProvider interface of spec.md §6: sampling
// and time evolution of wind/current/waves/temperature/visibility/sea
// state. Real implementations reach tide/current/buoy/weather data
// sources; this package ships only Deterministic, a synthetic stand-in
// used by tests and the default CLI wiring.
type Provider interface {
	// ConditionsAt returns the environmental snapshot at (lat, lng, t).
	ConditionsAt(lat, lng float64, t time.Time) (Snapshot, error)

	// Advance mutates the provider's internal state forward to t (wind
	// direction drift ±5°/tick, speed ±1kn clamped to [0,40], current
	// direction drift ±2.5°/tick per spec.md §6).
	Advance(t time.Time)
}
