// Package geodata defines the GeoProvider interface of spec.md §6
// (depth, bathymetry gradient, shore info/type, rip current) and the
// caching Adapter that the time-stepping driver uses to unify access to
// it with an LRU depth cache (spec.md §4.4, §5).
package geodata

import (
	"time"
)

// ShoreKind enumerates the shore types of spec.md §4.3.
type ShoreKind string

const (
	ShoreRocky    ShoreKind = "rocky"
	ShoreSandy    ShoreKind = "sandy"
	ShoreMuddy    ShoreKind = "muddy"
	ShoreMarsh    ShoreKind = "marsh"
	ShoreMangrove ShoreKind = "mangrove"
	ShoreSeawall  ShoreKind = "seawall"
	ShoreRiprap   ShoreKind = "riprap"
	ShoreCoral    ShoreKind = "coral"
)

// ShoreInfo is the nearest-shore block of spec.md §6: distance in km,
// direction in degrees, and shore-normal in degrees (pointing seaward).
type ShoreInfo struct {
	DistanceKm float64
	DirDeg     float64
	NormalDeg  float64
}

// BathymetryGradient mirrors envfield.BathymetryGradient; duplicated here
// so geodata has no import-time dependency on envfield (the adapter
// merges it into a Snapshot one level up, in simdriver).
type BathymetryGradient struct {
	DzDx      float64
	DzDy      float64
	Magnitude float64
	DirDeg    float64
}

// RipCurrent mirrors the risk/strength/direction block of spec.md §6.
type RipCurrent struct {
	Risk     float64
	Strength float64
	DirDeg   float64
}

// Provider is the GeoProvider interface of spec.md §6. Every method may
// return ok=false on a miss (e.g. outside coverage); a miss is never an
// error, it is the provider's way of saying "no data here" (spec.md §7,
// GeoDataMissing).
type Provider interface {
	// Depth returns the seabed depth in metres, positive downward.
	Depth(lat, lng float64) (depthM float64, ok bool)

	// BathymetryGradientAt returns the local seabed-slope vector.
	BathymetryGradientAt(lat, lng float64) (BathymetryGradient, bool)

	// ShoreInfoAt returns the nearest-shore distance/direction/normal.
	ShoreInfoAt(lat, lng float64) (ShoreInfo, bool)

	// ShoreTypeAt returns the shore kind at the nearest shore point.
	ShoreTypeAt(lat, lng float64) (ShoreKind, bool)

	// RipCurrentAt returns rip-current risk/strength/direction at
	// (lat, lng, t).
	RipCurrentAt(lat, lng float64, t time.Time) (RipCurrent, bool)
}

// ShoreParams holds the stickiness/reflection/roughness/permeability
// parameters for a shore kind (spec.md §4.3, shore-interaction decision).
type ShoreParams struct {
	Stickiness   float64
	Reflection   float64
	Roughness    float64
	Permeability float64
}

// ShoreParamsTable is the stickiness/reflection defaults of spec.md §4.3.
// Roughness and permeability are not given numeric defaults by the spec;
// the per-kind values below are the engine's own choices.
var ShoreParamsTable = map[ShoreKind]ShoreParams{
	ShoreRocky:    {Stickiness: 0.85, Reflection: 0.15, Roughness: 0.7, Permeability: 0.2},
	ShoreSandy:    {Stickiness: 0.60, Reflection: 0.30, Roughness: 0.2, Permeability: 0.6},
	ShoreMuddy:    {Stickiness: 0.95, Reflection: 0.05, Roughness: 0.3, Permeability: 0.3},
	ShoreMarsh:    {Stickiness: 1.00, Reflection: 0.00, Roughness: 0.5, Permeability: 0.5},
	ShoreMangrove: {Stickiness: 1.00, Reflection: 0.00, Roughness: 0.8, Permeability: 0.4},
	ShoreSeawall:  {Stickiness: 0.10, Reflection: 0.90, Roughness: 0.1, Permeability: 0.0},
	ShoreRiprap:   {Stickiness: 0.40, Reflection: 0.50, Roughness: 0.9, Permeability: 0.3},
	ShoreCoral:    {Stickiness: 0.70, Reflection: 0.20, Roughness: 0.9, Permeability: 0.5},
}

// ParamsFor returns the shore parameters for kind, defaulting to sandy if
// the kind is unrecognized (matching the conservative default depth/shore
// fallback of spec.md §7).
func ParamsFor(kind ShoreKind) ShoreParams {
	if p, ok := ShoreParamsTable[kind]; ok {
		return p
	}
	return ShoreParamsTable[ShoreSandy]
}

// ConservativeDefaults are the spec.md §7 GeoDataMissing fallback values:
// depth in the 20-50m range (engine uses the midpoint, 35m), sandy shore,
// zero gradient.
var (
	DefaultDepthM    = 35.0
	DefaultShoreKind = ShoreSandy
)

