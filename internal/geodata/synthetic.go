package geodata

import (
	"math"
	"time"
)

// Synthetic is a minimal, deterministic GeoProvider used by tests and the
// CLI's default wiring. It models a straight shoreline at a configurable
// bearing from an origin point, with linearly shoaling depth offshore.
// It is not "the bathymetry/coastline/HF-radar data source" of spec.md §1
// (an external collaborator reaching real geodata services); it exists so
// the shallow-water sub-model and shore-interaction state machine can be
// exercised end-to-end without network access (spec.md §8 scenario 1).
type Synthetic struct {
	Origin            struct{ Lat, Lng float64 }
	ShoreDirDeg       float64 // direction from Origin to the shoreline
	ShoreDistanceKm   float64
	ShoreNormalDeg    float64
	ShoreKind         ShoreKind
	DeepWaterDepthM   float64
	GradientMagnitude float64
	RipRisk           *RipCurrent
}

// NewSyntheticShoreline builds a Synthetic provider with a shoreline at
// shoreDistanceKm from origin, in the direction opposite the seaward
// shoreNormalDeg, with the given kind. shoreDirDeg is only reported by
// ShoreInfoAt; it does not place the shoreline.
func NewSyntheticShoreline(originLat, originLng, shoreDirDeg, shoreDistanceKm, shoreNormalDeg float64, kind ShoreKind) *Synthetic {
	s := &Synthetic{
		ShoreDirDeg:       shoreDirDeg,
		ShoreDistanceKm:   shoreDistanceKm,
		ShoreNormalDeg:    shoreNormalDeg,
		ShoreKind:         kind,
		DeepWaterDepthM:   200,
		GradientMagnitude: 0.02,
	}
	s.Origin.Lat, s.Origin.Lng = originLat, originLng
	return s
}

// distanceToShoreKm approximates the signed distance from (lat,lng) to the
// shoreline, projected onto the shore-normal axis through Origin at
// ShoreDistanceKm. Positive means seaward of the shoreline.
func (s *Synthetic) distanceToShoreKm(lat, lng float64) float64 {
	dLatKm := (lat - s.Origin.Lat) * 111.32
	dLngKm := (lng - s.Origin.Lng) * 111.32 * math.Cos(s.Origin.Lat*math.Pi/180)

	normalRad := s.ShoreNormalDeg * math.Pi / 180
	// projection onto the normal direction (pointing seaward)
	proj := dLatKm*math.Cos(normalRad) + dLngKm*math.Sin(normalRad)
	return s.ShoreDistanceKm - (-proj)
}

// Depth returns a depth that shoals linearly to 0 at the shoreline and
// saturates at DeepWaterDepthM 5km seaward of it.
func (s *Synthetic) Depth(lat, lng float64) (float64, bool) {
	dist := s.distanceToShoreKm(lat, lng)
	if dist <= 0 {
		return dist, true // negative/zero: at or past the shoreline (land)
	}
	const shoalingSpanKm = 5.0
	depth := s.DeepWaterDepthM * math.Min(1.0, dist/shoalingSpanKm)
	return depth, true
}

// BathymetryGradientAt returns a constant-magnitude gradient pointing
// offshore (away from the shoreline) wherever the shoreline shoals.
func (s *Synthetic) BathymetryGradientAt(lat, lng float64) (BathymetryGradient, bool) {
	normalRad := s.ShoreNormalDeg * math.Pi / 180
	return BathymetryGradient{
		DzDx:      s.GradientMagnitude * math.Sin(normalRad),
		DzDy:      s.GradientMagnitude * math.Cos(normalRad),
		Magnitude: s.GradientMagnitude,
		DirDeg:    s.ShoreNormalDeg,
	}, true
}

// ShoreInfoAt returns the distance/direction/normal to the configured
// shoreline.
func (s *Synthetic) ShoreInfoAt(lat, lng float64) (ShoreInfo, bool) {
	dist := s.distanceToShoreKm(lat, lng)
	return ShoreInfo{
		DistanceKm: math.Max(0, dist),
		DirDeg:     s.ShoreDirDeg,
		NormalDeg:  s.ShoreNormalDeg,
	}, true
}

// ShoreTypeAt returns the configured shore kind everywhere.
func (s *Synthetic) ShoreTypeAt(lat, lng float64) (ShoreKind, bool) {
	return s.ShoreKind, true
}

// RipCurrentAt reports the configured rip-current block (if any) when the
// point is within the surf zone (distance to shore under 1km); callers
// outside that band see no rip-current risk.
func (s *Synthetic) RipCurrentAt(lat, lng float64, t time.Time) (RipCurrent, bool) {
	if s.RipRisk == nil {
		return RipCurrent{}, false
	}
	if dist := s.distanceToShoreKm(lat, lng); dist > 1.0 {
		return RipCurrent{}, false
	}
	return *s.RipRisk, true
}

// WithRipRisk enables a uniform rip-current block within 1km of shore.
func (s *Synthetic) WithRipRisk(r RipCurrent) *Synthetic {
	s.RipRisk = &r
	return s
}
