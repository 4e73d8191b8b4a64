// Package shallowwater implements the depth-dependent corrections and
// surf-zone processes of spec.md §4.3: bottom friction, shallow Stokes
// drift (via a Newton-iterated dispersion solver), topographic steering,
// tidal asymmetry, the surf zone (breaking waves, longshore current, rip
// current, undertow), the very-shallow regime, and the shore-interaction
// decision that beaches or reflects a particle.
package shallowwater

import (
	"math"
	"math/rand"

	"github.com/sarops/driftsim/internal/config"
	"github.com/sarops/driftsim/internal/drift"
	"github.com/sarops/driftsim/internal/envfield"
	"github.com/sarops/driftsim/internal/geo"
	"github.com/sarops/driftsim/internal/geodata"
)

// GravityMps2 is standard gravity, used by the dispersion solver and the
// surf-zone formulas.
const GravityMps2 = 9.81

// Input bundles everything the shallow-water correction needs for one
// particle-step, beyond the environmental snapshot already sampled by the
// caller (spec.md §4.3, §4.4).
type Input struct {
	Position geo.Point
	DepthM   float64 // positive downward; caller guarantees DepthM <= shallow threshold
	DtHours  float64

	BathymetryGradient *geodata.BathymetryGradient
	ShoreInfo          *geodata.ShoreInfo
	Tidal              *envfield.Tidal
	RipCurrent         *geodata.RipCurrent
}

// Result is the output of Correction: a displacement to add to the
// particle's per-step drift, a beaching probability accumulated this
// step, and the set of effect tags that were actually applied
// (spec.md §4.3).
type Result struct {
	Delta               drift.Delta
	BeachingProbability float64
	Effects             map[string]bool
	NumericalDiverged   bool
}

const (
	EffectBottomFriction   = "bottom_friction"
	EffectShallowStokes    = "shallow_stokes"
	EffectTopographicSteer = "topographic_steering"
	EffectTidalAsymmetry   = "tidal_asymmetry"
	EffectBreaking         = "breaking"
	EffectLongshore        = "longshore"
	EffectRipCurrent       = "rip_current"
	EffectUndertow         = "undertow"
	EffectVeryShallow      = "very_shallow"
)

// Correction computes the combined shallow-water effects for one step,
// given the current and wave conditions already sampled by the caller.
// Depth must be strictly less than cfg.GetShallowDepthThreshold()
// (spec.md §8: depth exactly 20m does NOT trigger shallow effects);
// callers gate this before invoking Correction.
func Correction(in Input, snap envfield.Snapshot, cfg *config.TuningConfig) Result {
	res := Result{Effects: make(map[string]bool)}

	d := in.DepthM
	if d <= 0 {
		return res
	}

	var totalDxKm, totalDyKm float64 // east, north, km

	// 1. Bottom friction (spec.md §4.3.1).
	{
		n := cfg.GetManningRoughness()
		f := GravityMps2 * n * n * math.Pow(d, -1.0/3.0)
		curSpeedKmh := geo.KnotsToKmh(snap.Current.SpeedKnots)
		r := math.Min(0.8, f*curSpeedKmh)
		reduceKmh := r * curSpeedKmh * 1e-3
		rad := geo.DegToRad(snap.Current.DirDeg)
		// subtract from the current-direction total: opposite sign.
		totalDyKm -= reduceKmh * in.DtHours * math.Cos(rad)
		totalDxKm -= reduceKmh * in.DtHours * math.Sin(rad)
		if reduceKmh != 0 {
			res.Effects[EffectBottomFriction] = true
		}
	}

	// 2. Shallow Stokes drift via dispersion solver (spec.md §4.3.2).
	{
		h := snap.Waves.SignificantHeightM
		period := snap.Waves.PeakPeriodS
		if h > 0 && period > 0 {
			k, diverged := SolveDispersion(period, d, cfg.GetDispersionMaxIter(), cfg.GetDispersionTolerance())
			res.NumericalDiverged = diverged
			if k > 0 {
				lambda := 2 * math.Pi / k
				c := lambda / period
				sinh2kd := math.Sinh(2 * k * d)
				enhancement := 1.0
				if sinh2kd > 1e-9 {
					enhancement = 1 + 1/(2*sinh2kd)
				} else {
					enhancement = 1e6 // effectively very shallow: huge enhancement, applied without a cap
				}
				us := math.Pi * h * h * c / (period * lambda) * enhancement
				usKmh := us * 3.6
				rad := geo.DegToRad(snap.Waves.DirDeg)
				totalDyKm += usKmh * in.DtHours * math.Cos(rad)
				totalDxKm += usKmh * in.DtHours * math.Sin(rad)
				res.Effects[EffectShallowStokes] = true
			}
		}
	}

	// 3. Topographic steering (spec.md §4.3.3).
	if in.BathymetryGradient != nil && in.BathymetryGradient.Magnitude > 1e-3 {
		g := in.BathymetryGradient
		alphaIsobath := math.Atan2(-g.DzDx, g.DzDy)
		alphaCur := geo.DegToRad(snap.Current.DirDeg)
		curSpeedKmh := geo.KnotsToKmh(snap.Current.SpeedKnots)
		strengthKmh := 0.1 * curSpeedKmh * g.Magnitude * math.Sin(alphaIsobath-alphaCur)
		totalDyKm += strengthKmh * in.DtHours * math.Cos(alphaIsobath)
		totalDxKm += strengthKmh * in.DtHours * math.Sin(alphaIsobath)
		res.Effects[EffectTopographicSteer] = true
	}

	// 4. Tidal asymmetry (spec.md §4.3.4). Phase 0 is defined as low tide
	// throughout this engine (spec.md §9 open question).
	if in.Tidal != nil {
		a := 0.1 * (20.0 / d)
		phi := in.Tidal.Phase
		var pushKmh float64
		if phi < 0.5 {
			pushKmh = a * math.Sin(math.Pi*phi)
		} else {
			pushKmh = -0.7 * a * math.Sin(math.Pi*(phi-0.5))
		}
		rad := geo.DegToRad(in.Tidal.ShoreDirDeg)
		// a·Δt is already a distance-rate product in the spec's units; the
		// push magnitude above is per-hour and scaled by Δt like the rest.
		totalDyKm += pushKmh * in.DtHours * math.Cos(rad)
		totalDxKm += pushKmh * in.DtHours * math.Sin(rad)
		res.Effects[EffectTidalAsymmetry] = true
	}

	surfDepth := cfg.GetSurfZoneDepthM()
	if d <= surfDepth {
		h := snap.Waves.SignificantHeightM
		shoreNormalDeg := 0.0
		if in.ShoreInfo != nil {
			shoreNormalDeg = in.ShoreInfo.NormalDeg
		} else if snap.Waves.ShoreNormalDeg != nil {
			shoreNormalDeg = *snap.Waves.ShoreNormalDeg
		}

		// 5a. Breaking: strictly greater than 0.78 (spec.md §8 boundary).
		if d > 0 && h/d > 0.78 {
			speedMps := 0.015 * math.Sqrt(GravityMps2*d) * (h / d)
			speedKmh := speedMps * 3.6
			rad := geo.DegToRad(snap.Waves.DirDeg)
			totalDyKm += speedKmh * in.DtHours * math.Cos(rad)
			totalDxKm += speedKmh * in.DtHours * math.Sin(rad)
			res.BeachingProbability += 0.15 * in.DtHours
			res.Effects[EffectBreaking] = true
		}

		// 5b. Longshore current (Longuet-Higgins).
		if h > 0 {
			hb := math.Min(h, 0.78*d)
			vLmps := 0.2 * math.Sqrt(GravityMps2*hb) * math.Sin(2*(geo.DegToRad(snap.Waves.DirDeg)-geo.DegToRad(shoreNormalDeg)))
			vLkmh := vLmps * 3.6
			// applied perpendicular to shore normal: direction = normal+90
			rad := geo.DegToRad(shoreNormalDeg + 90)
			totalDyKm += vLkmh * in.DtHours * math.Cos(rad)
			totalDxKm += vLkmh * in.DtHours * math.Sin(rad)
			res.Effects[EffectLongshore] = true
		}

		// 5c. Rip current.
		if in.RipCurrent != nil && in.RipCurrent.Risk > 0.5 {
			speedKmh := 1.5 * in.RipCurrent.Strength * 3.6
			rad := geo.DegToRad(in.RipCurrent.DirDeg)
			totalDyKm += speedKmh * in.DtHours * math.Cos(rad)
			totalDxKm += speedKmh * in.DtHours * math.Sin(rad)
			res.Effects[EffectRipCurrent] = true
		}

		// 5d. Undertow, opposite to wave direction.
		if h > 0 && d > 0 {
			speedMps := 0.2 * (h / d) * math.Min(1, 3/d)
			speedKmh := speedMps * 3.6
			rad := geo.DegToRad(snap.Waves.DirDeg + 180)
			totalDyKm += speedKmh * in.DtHours * math.Cos(rad)
			totalDxKm += speedKmh * in.DtHours * math.Sin(rad)
			res.Effects[EffectUndertow] = true
		}
	}

	// 6. Very shallow (spec.md §4.3.6).
	veryShallowDepth := cfg.GetVeryShallowDepthM()
	if d <= veryShallowDepth {
		frac := 1 - d/veryShallowDepth
		reduction := 0.5 * frac
		curSpeedKmh := geo.KnotsToKmh(snap.Current.SpeedKnots)
		rad := geo.DegToRad(snap.Current.DirDeg)
		totalDyKm -= reduction * curSpeedKmh * in.DtHours * math.Cos(rad)
		totalDxKm -= reduction * curSpeedKmh * in.DtHours * math.Sin(rad)
		res.BeachingProbability += 0.3 * frac * in.DtHours
		res.Effects[EffectVeryShallow] = true
	}

	moved := geo.DisplaceFlat(in.Position, totalDxKm, totalDyKm, cfg.GetCorrectLongitudeScale())
	res.Delta = drift.Delta{DLat: moved.Lat - in.Position.Lat, DLng: moved.Lng - in.Position.Lng}
	return res
}

// SolveDispersion solves the linear dispersion relation ω² = g·k·tanh(k·d)
// for the wavenumber k by Newton iteration, starting from the deep-water
// estimate k = ω²/g, for up to maxIter iterations within tolerance
// (spec.md §4.3.2). Returns (k, diverged); on non-convergence it falls
// back to the deep-water k and reports diverged=true
// (spec.md §7, NumericalDiverged).
func SolveDispersion(periodS, depthM float64, maxIter int, tolerance float64) (k float64, diverged bool) {
	if periodS <= 0 {
		return 0, false
	}
	omega := 2 * math.Pi / periodS
	k = omega * omega / GravityMps2 // deep-water initial guess

	if maxIter <= 0 {
		maxIter = 20
	}
	if tolerance <= 0 {
		tolerance = 1e-10
	}

	deepWaterK := k
	for i := 0; i < maxIter; i++ {
		tanh := math.Tanh(k * depthM)
		f := omega*omega - GravityMps2*k*tanh
		// df/dk = -g*tanh(kd) - g*k*d*sech^2(kd)
		sech2 := 1 - tanh*tanh
		df := -GravityMps2*tanh - GravityMps2*k*depthM*sech2
		if df == 0 || math.IsNaN(df) {
			break
		}
		next := k - f/df
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= 0 {
			break
		}
		if math.Abs(next-k) < tolerance {
			return next, false
		}
		k = next
	}
	// Did not converge within maxIter/tolerance: fall back to deep water.
	return deepWaterK, true
}

// ShoreOutcome is the result of the shore-interaction decision
// (spec.md §4.3).
type ShoreOutcome int

const (
	OutcomeBeach ShoreOutcome = iota
	OutcomeReflect
	OutcomeStay
)

// ShoreInteractionResult carries the decided outcome and, for Reflect,
// the new attempted position.
type ShoreInteractionResult struct {
	Outcome          ShoreOutcome
	ReflectedPosition geo.Point
}

// ShoreInteraction draws the beach/reflect/stay outcome of spec.md §4.3
// when an attempted move would place a particle at depth <= 0. current is
// the particle's pre-move position; a reflection is measured from it.
func ShoreInteraction(kind geodata.ShoreKind, current geo.Point, shoreNormalDeg float64, rng *rand.Rand) ShoreInteractionResult {
	params := geodata.ParamsFor(kind)
	u := rng.Float64()

	if u < params.Stickiness {
		return ShoreInteractionResult{Outcome: OutcomeBeach}
	}
	if u < params.Stickiness+params.Reflection {
		distKm := 0.01 + rng.Float64()*0.02 // 0.01-0.03km
		jitter := rng.Float64()*60 - 30     // U[-30,30]
		dir := shoreNormalDeg + 180 + jitter
		reflected := geo.Destination(current, distKm, dir)
		return ShoreInteractionResult{Outcome: OutcomeReflect, ReflectedPosition: reflected}
	}
	return ShoreInteractionResult{Outcome: OutcomeStay}
}
