// Package geo provides the geodesic and unit-conversion primitives shared
// by every drift calculator: haversine distance, bearing, destination
// projection, and the knot/nautical-mile conversions used at the
// simulation's external interfaces.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used throughout the engine.
const EarthRadiusKm = 6371.0

// LatLngScaleKmPerDeg is the latitude->km conversion used for small
// displacements. The same constant is also used for longitude in several
// source paths without the cos(latitude) correction; see DegPerKmLngAt
// and DegPerKmLat for the corrected and uncorrected variants
// respectively, and DisplaceFlat, which chooses between them. Preserved
// for compatibility (spec.md §4.1, §9).
const LatLngScaleKmPerDeg = 111.32

// Point is a position in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

func toRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func toDeg(rad float64) float64 { return rad * 180.0 / math.Pi }

// Haversine returns the great-circle distance between two points in km.
func Haversine(a, b Point) float64 {
	lat1, lat2 := toRad(a.Lat), toRad(b.Lat)
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// Bearing returns the initial bearing in degrees true from a to b.
func Bearing(a, b Point) float64 {
	lat1, lat2 := toRad(a.Lat), toRad(b.Lat)
	dLng := toRad(b.Lng - a.Lng)

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)
	brg := toDeg(math.Atan2(y, x))
	return math.Mod(brg+360, 360)
}

// Destination returns the point reached from p travelling distKm along
// bearing brgDeg (degrees true), using the exact spherical formula.
func Destination(p Point, distKm, brgDeg float64) Point {
	lat1 := toRad(p.Lat)
	brg := toRad(brgDeg)
	angDist := distKm / EarthRadiusKm

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(angDist) + math.Cos(lat1)*math.Sin(angDist)*math.Cos(brg))
	lng2 := toRad(p.Lng) + math.Atan2(
		math.Sin(brg)*math.Sin(angDist)*math.Cos(lat1),
		math.Cos(angDist)-math.Sin(lat1)*math.Sin(lat2),
	)

	return Point{Lat: toDeg(lat2), Lng: toDeg(math.Mod(lng2+3*math.Pi, 2*math.Pi) - math.Pi)}
}

// Midpoint returns the great-circle midpoint between a and b.
func Midpoint(a, b Point) Point {
	lat1, lng1 := toRad(a.Lat), toRad(a.Lng)
	lat2 := toRad(b.Lat)
	dLng := toRad(b.Lng - a.Lng)

	bx := math.Cos(lat2) * math.Cos(dLng)
	by := math.Cos(lat2) * math.Sin(dLng)

	lat3 := math.Atan2(math.Sin(lat1)+math.Sin(lat2), math.Sqrt((math.Cos(lat1)+bx)*(math.Cos(lat1)+bx)+by*by))
	lng3 := lng1 + math.Atan2(by, math.Cos(lat1)+bx)

	return Point{Lat: toDeg(lat3), Lng: toDeg(lng3)}
}

// BoundingBox is the smallest lat/lng rectangle enclosing a set of points.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// BoundingBoxOf computes the bounding box of a non-empty point set.
// Returns the zero value for an empty set.
func BoundingBoxOf(pts []Point) BoundingBox {
	if len(pts) == 0 {
		return BoundingBox{}
	}
	bb := BoundingBox{MinLat: pts[0].Lat, MaxLat: pts[0].Lat, MinLng: pts[0].Lng, MaxLng: pts[0].Lng}
	for _, p := range pts[1:] {
		bb.MinLat = math.Min(bb.MinLat, p.Lat)
		bb.MaxLat = math.Max(bb.MaxLat, p.Lat)
		bb.MinLng = math.Min(bb.MinLng, p.Lng)
		bb.MaxLng = math.Max(bb.MaxLng, p.Lng)
	}
	return bb
}

// AreaKm2 returns the bounding box's approximate planar area in km²,
// using the latitude-aware longitude scale (cos of the box's mean
// latitude), the same cos(φ) correction that DegPerKmLngAt applies to the
// 111.32 km/deg constant.
func (bb BoundingBox) AreaKm2() float64 {
	meanLat := (bb.MinLat + bb.MaxLat) / 2
	dLat := bb.MaxLat - bb.MinLat
	dLng := bb.MaxLng - bb.MinLng
	return (dLat * LatLngScaleKmPerDeg) * (dLng * LatLngScaleKmPerDeg * math.Cos(toRad(meanLat)))
}

// DegPerKmLngAt returns the degrees-of-longitude-per-km conversion factor
// at latitude φ, i.e. 1/(111.32*cos φ). Callers performing small
// displacements that must stay longitudinally correct (initial particle
// spread, destination projection under drift) use this. Callers that
// reproduce the source's uncorrected behavior use DegPerKmLat for both
// axes instead; see spec.md §4.1 and §9 (open question: longitude scale).
func DegPerKmLngAt(latDeg float64) float64 {
	c := math.Cos(toRad(latDeg))
	if math.Abs(c) < 1e-9 {
		c = 1e-9
	}
	return 1.0 / (LatLngScaleKmPerDeg * c)
}

// DegPerKmLat is the degrees-of-latitude-per-km conversion factor, constant
// with latitude.
func DegPerKmLat() float64 {
	return 1.0 / LatLngScaleKmPerDeg
}

// DisplaceFlat applies a (Δx, Δy) km displacement (east, north) to p using
// the flat-earth approximation described in spec.md §4.1: Δlat uses
// 1/111.32, Δlng uses the latitude-corrected scale when correctLng is
// true, or the same uncorrected 1/111.32 otherwise (preserved for
// compatibility with calculators that predate the correction).
func DisplaceFlat(p Point, dxKm, dyKm float64, correctLng bool) Point {
	dLat := dyKm * DegPerKmLat()
	var dLng float64
	if correctLng {
		dLng = dxKm * DegPerKmLngAt(p.Lat)
	} else {
		dLng = dxKm * DegPerKmLat()
	}
	return Point{Lat: p.Lat + dLat, Lng: p.Lng + dLng}
}

// Knots/km/h/nm conversions used at the external interfaces (§6: speeds in
// knots, distances in decimal degrees internally converted via km).
const (
	KmPerNauticalMile = 1.852
	KmhPerKnot        = 1.852
)

// KnotsToKmh converts a speed in knots to km/h.
func KnotsToKmh(knots float64) float64 { return knots * KmhPerKnot }

// KmhToKnots converts a speed in km/h to knots.
func KmhToKnots(kmh float64) float64 { return kmh / KmhPerKnot }

// NauticalMilesToKm converts a distance in nautical miles to km.
func NauticalMilesToKm(nm float64) float64 { return nm * KmPerNauticalMile }

// KmToNauticalMiles converts a distance in km to nautical miles.
func KmToNauticalMiles(km float64) float64 { return km / KmPerNauticalMile }

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return toRad(deg) }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 { return toDeg(rad) }
