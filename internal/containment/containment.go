// Package containment implements the convex-hull containment calculator
// of spec.md §4.6: centroid, haversine distance-sort, percentile
// polygons via Andrew's monotone-chain convex hull, a confidence score,
// and ray-casting point-in-polygon membership.
package containment

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/sarops/driftsim/internal/geo"
)

// Result is the containment calculator's output for one percentile tier.
type Result struct {
	Percentile float64
	Polygon    []geo.Point
}

// Containment is the full output of Calculate (spec.md §4.6).
type Containment struct {
	Centroid   geo.Point
	Confidence float64
	Polygons   []Result // ordered: 50%, 90%, 95%
}

// Percentiles are the containment tiers of spec.md §4.6.
var Percentiles = []float64{0.50, 0.90, 0.95}

// Calculate computes the containment polygons for the given active
// particle positions. With fewer than 3 particles it returns empty
// polygons and confidence 0 (spec.md §4.6, §8 boundary).
func Calculate(positions []geo.Point) Containment {
	if len(positions) < 3 {
		polys := make([]Result, len(Percentiles))
		for i, pct := range Percentiles {
			polys[i] = Result{Percentile: pct, Polygon: nil}
		}
		return Containment{Polygons: polys}
	}

	centroid := centroidOf(positions)

	type distPoint struct {
		p    geo.Point
		dist float64
	}
	dps := make([]distPoint, len(positions))
	dists := make([]float64, len(positions))
	for i, p := range positions {
		d := geo.Haversine(centroid, p)
		dps[i] = distPoint{p: p, dist: d}
		dists[i] = d
	}
	sort.Slice(dps, func(i, j int) bool { return dps[i].dist < dps[j].dist })

	mean := stat.Mean(dists, nil)
	std := stat.StdDev(dists, nil)
	confidence := clamp01(1 - std/(mean+1))

	polys := make([]Result, len(Percentiles))
	for i, pct := range Percentiles {
		n := int(math.Ceil(pct * float64(len(dps))))
		if n < 3 {
			n = min(3, len(dps))
		}
		prefix := make([]geo.Point, n)
		for j := 0; j < n; j++ {
			prefix[j] = dps[j].p
		}
		polys[i] = Result{Percentile: pct, Polygon: ConvexHull(prefix)}
	}

	return Containment{Centroid: centroid, Confidence: confidence, Polygons: polys}
}

func centroidOf(pts []geo.Point) geo.Point {
	var sumLat, sumLng float64
	for _, p := range pts {
		sumLat += p.Lat
		sumLng += p.Lng
	}
	n := float64(len(pts))
	return geo.Point{Lat: sumLat / n, Lng: sumLng / n}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// cross returns the z-component of the cross product (o->a) x (o->b),
// treating (lat,lng) as Cartesian (spec.md §9: a deliberate approximation
// valid only at the small spatial extents this engine operates over).
func cross(o, a, b geo.Point) float64 {
	return (a.Lat-o.Lat)*(b.Lng-o.Lng) - (a.Lng-o.Lng)*(b.Lat-o.Lat)
}

// ConvexHull computes the convex hull of pts via Andrew's monotone chain
// algorithm, returning vertices in counter-clockwise order with no three
// consecutive collinear vertices (spec.md §4.6, §8 invariant). Points are
// treated as (lat, lng) Cartesian pairs.
func ConvexHull(pts []geo.Point) []geo.Point {
	uniq := dedupe(pts)
	if len(uniq) < 3 {
		return uniq
	}

	sort.Slice(uniq, func(i, j int) bool {
		if uniq[i].Lat != uniq[j].Lat {
			return uniq[i].Lat < uniq[j].Lat
		}
		return uniq[i].Lng < uniq[j].Lng
	})

	n := len(uniq)
	hull := make([]geo.Point, 0, 2*n)

	// Lower hull.
	for _, p := range uniq {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// Upper hull.
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		p := uniq[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	hull = hull[:len(hull)-1] // last point duplicates first
	return hull
}

func dedupe(pts []geo.Point) []geo.Point {
	seen := make(map[geo.Point]bool, len(pts))
	out := make([]geo.Point, 0, len(pts))
	for _, p := range pts {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// PointInPolygon reports whether p lies inside polygon (closed implicitly,
// (lat,lng) treated as Cartesian), using the ray-casting algorithm
// (spec.md §4.6).
func PointInPolygon(p geo.Point, polygon []geo.Point) bool {
	if len(polygon) < 3 {
		return false
	}
	inside := false
	n := len(polygon)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := polygon[i], polygon[j]
		intersects := (pi.Lng > p.Lng) != (pj.Lng > p.Lng) &&
			p.Lat < (pj.Lat-pi.Lat)*(p.Lng-pi.Lng)/(pj.Lng-pi.Lng)+pi.Lat
		if intersects {
			inside = !inside
		}
	}
	return inside
}
