// Package drift implements the pure per-step displacement calculators of
// spec.md §4.2: wind, current, wave (Stokes), leeway, and diffusion. Each
// calculator is a pure map (field sample, Δt) -> (Δlat_deg, Δlng_deg) and
// is safe to share across particles and goroutines.
package drift

import (
	"math"
	"math/rand"

	"github.com/sarops/driftsim/internal/config"
	"github.com/sarops/driftsim/internal/envfield"
	"github.com/sarops/driftsim/internal/geo"
)

// Delta is a displacement in decimal degrees.
type Delta struct {
	DLat float64
	DLng float64
}

// Add returns the element-wise sum of two deltas.
func (d Delta) Add(o Delta) Delta {
	return Delta{DLat: d.DLat + o.DLat, DLng: d.DLng + o.DLng}
}

// dirDelta converts a speed (km/h) and compass bearing (degrees true) into
// a lat/lng delta at the given position. Per spec.md §9, the engine
// preserves the source's direction convention for wind/current:
// lat = cos(dir)·d, lng = sin(dir)·d (a meteorological/mathematical
// convention mismatch present in the source and deliberately kept for
// compatibility across every calculator below).
func dirDelta(p geo.Point, speedKmh, dirDeg float64, dtHours float64, correctLng bool) Delta {
	distKm := speedKmh * dtHours
	rad := geo.DegToRad(dirDeg)
	dyKm := distKm * math.Cos(rad)
	dxKm := distKm * math.Sin(rad)
	moved := geo.DisplaceFlat(p, dxKm, dyKm, correctLng)
	return Delta{DLat: moved.Lat - p.Lat, DLng: moved.Lng - p.Lng}
}

// Wind computes the wind-drift displacement: Δ = factor·|U_wind| in the
// direction of the wind (spec.md §4.2).
func Wind(p geo.Point, snap envfield.Snapshot, dtHours float64, cfg *config.TuningConfig) Delta {
	speedKmh := geo.KnotsToKmh(snap.Wind.SpeedKnots) * cfg.GetWindDriftFactor()
	return dirDelta(p, speedKmh, snap.Wind.DirDeg, dtHours, cfg.GetCorrectLongitudeScale())
}

// Current computes the current-drift displacement: Δ = |U_cur| in the
// current direction, factor 1.0 by default (spec.md §4.2).
func Current(p geo.Point, snap envfield.Snapshot, dtHours float64, cfg *config.TuningConfig) Delta {
	speedKmh := geo.KnotsToKmh(snap.Current.SpeedKnots) * cfg.GetCurrentDriftFactor()
	return dirDelta(p, speedKmh, snap.Current.DirDeg, dtHours, cfg.GetCorrectLongitudeScale())
}

// DepthAveragedCurrent applies the optional Ekman-proxy depth-averaging
// helper: speed·exp(-d/50), direction rotated by 0.5·d° (spec.md §4.2).
func DepthAveragedCurrent(speedKnots, dirDeg, depthM float64) (speed float64, dir float64) {
	speed = speedKnots * math.Exp(-depthM/50.0)
	dir = math.Mod(dirDeg+0.5*depthM, 360)
	return
}

// Wave computes the baseline Stokes-drift displacement: speed = H²/T·k_s,
// direction = wave direction plus a ±15° uniform jitter representing
// spreading (spec.md §4.2). rng must not be nil; callers share one rng
// per particle or per step as appropriate.
func Wave(p geo.Point, snap envfield.Snapshot, dtHours float64, cfg *config.TuningConfig, rng *rand.Rand) Delta {
	h := snap.Waves.SignificantHeightM
	period := snap.Waves.PeakPeriodS
	if period <= 0 {
		return Delta{}
	}
	speedMps := (h * h / period) * cfg.GetStokesCoefficient()
	speedKmh := speedMps * 3.6
	jitter := (rng.Float64()*2 - 1) * 15.0
	dir := snap.Waves.DirDeg + jitter
	return dirDelta(p, speedKmh, dir, dtHours, cfg.GetCorrectLongitudeScale())
}

// LeewayParams is one row of the leeway table of spec.md §4.2:
// downwind_factor and crosswind_angle in degrees.
type LeewayParams struct {
	DownwindFactor float64
	CrosswindDeg   float64
}

// LeewayTable maps object type to its leeway parameters. Unknown types
// default to person-in-water (spec.md §4.2).
var LeewayTable = map[config.ObjectType]LeewayParams{
	config.ObjectPersonInWater:  {0.03, 15},
	config.ObjectPersonWithPFD:  {0.04, 20},
	config.ObjectPersonDrysuit:  {0.05, 25},
	config.ObjectLifeRaft4:      {0.06, 10},
	config.ObjectLifeRaft6:      {0.065, 12},
	config.ObjectLifeRaft10Plus: {0.07, 15},
	config.ObjectSmallVessel:    {0.05, 5},
	config.ObjectMediumVessel:   {0.04, 3},
	config.ObjectSailboat:       {0.08, 20},
	config.ObjectKayak:          {0.045, 18},
	config.ObjectCanoe:          {0.05, 20},
	config.ObjectSurfboard:      {0.035, 25},
	config.ObjectPaddleboard:    {0.04, 22},
	config.ObjectWoodDebris:     {0.02, 30},
	config.ObjectPlasticDebris:  {0.045, 25},
	config.ObjectCooler:         {0.055, 15},
}

// LeewayParamsFor returns the table entry for objType, defaulting to
// person-in-water for unknown types.
func LeewayParamsFor(objType config.ObjectType) LeewayParams {
	if p, ok := LeewayTable[objType]; ok {
		return p
	}
	return LeewayTable[config.ObjectPersonInWater]
}

// Leeway computes the object-specific leeway displacement: downwind at
// downwind_factor·|U_wind| in wind_dir + crosswind_angle° (spec.md §4.2).
func Leeway(p geo.Point, snap envfield.Snapshot, dtHours float64, objType config.ObjectType, cfg *config.TuningConfig) Delta {
	params := LeewayParamsFor(objType)
	speedKmh := geo.KnotsToKmh(snap.Wind.SpeedKnots) * params.DownwindFactor
	dir := snap.Wind.DirDeg + params.CrosswindDeg
	return dirDelta(p, speedKmh, dir, dtHours, cfg.GetCorrectLongitudeScale())
}

// Diffusion computes an isotropic random-walk displacement of magnitude
// sqrt(D·Δt)·U[0,1] in a direction uniform on [0, 2π) (spec.md §4.2).
func Diffusion(p geo.Point, dtHours float64, cfg *config.TuningConfig, rng *rand.Rand) Delta {
	d := cfg.GetDiffusionRateKm2PH()
	magnitudeKm := math.Sqrt(d*dtHours) * rng.Float64()
	dirRad := rng.Float64() * 2 * math.Pi
	dirDeg := geo.RadToDeg(dirRad)
	return dirDelta(p, magnitudeKm/dtHoursOrOne(dtHours), dirDeg, dtHours, cfg.GetCorrectLongitudeScale())
}

// dtHoursOrOne guards against division by zero when Δt is zero; a zero
// step produces a zero-magnitude diffusion displacement regardless.
func dtHoursOrOne(dtHours float64) float64 {
	if dtHours == 0 {
		return 1
	}
	return dtHours
}
