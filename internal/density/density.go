// Package density implements the grid-binning heat-map analyzer of
// spec.md §4.5: bin active particles into a square lat-lng grid, weight
// cells by occupancy, and expose a high-density query and a bounding-box
// search-area measure.
package density

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/sarops/driftsim/internal/config"
	"github.com/sarops/driftsim/internal/geo"
)

// Cell is one occupied grid cell (spec.md §4.5).
type Cell struct {
	CenterLat float64
	CenterLng float64
	Count     int
	Weight    float64
	ParticleIDs []int
}

// cellKey identifies a grid cell by its integer row/column index.
type cellKey struct {
	row, col int64
}

// Analyze bins the given (id, position) pairs into a grid of cellSizeDeg
// and returns the occupied cells sorted by count descending
// (spec.md §4.5). Weight is count/maxCount, so the maximum weight is
// always 1 when any cell is occupied (spec.md §8 invariant).
func Analyze(positions map[int]geo.Point, cellSizeDeg float64) []Cell {
	if cellSizeDeg <= 0 {
		cellSizeDeg = 0.01
	}

	buckets := make(map[cellKey]*Cell)
	order := make([]cellKey, 0)

	for id, p := range positions {
		row := int64(math.Floor(p.Lat / cellSizeDeg))
		col := int64(math.Floor(p.Lng / cellSizeDeg))
		key := cellKey{row: row, col: col}

		c, ok := buckets[key]
		if !ok {
			c = &Cell{
				CenterLat: (float64(row) + 0.5) * cellSizeDeg,
				CenterLng: (float64(col) + 0.5) * cellSizeDeg,
			}
			buckets[key] = c
			order = append(order, key)
		}
		c.Count++
		c.ParticleIDs = append(c.ParticleIDs, id)
	}

	counts := make([]float64, 0, len(order))
	cells := make([]Cell, 0, len(order))
	for _, key := range order {
		c := buckets[key]
		cells = append(cells, *c)
		counts = append(counts, float64(c.Count))
	}

	maxCount := 0.0
	if len(counts) > 0 {
		maxCount = floats.Max(counts)
	}
	for i := range cells {
		if maxCount > 0 {
			cells[i].Weight = float64(cells[i].Count) / maxCount
		}
	}

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Count != cells[j].Count {
			return cells[i].Count > cells[j].Count
		}
		if cells[i].CenterLat != cells[j].CenterLat {
			return cells[i].CenterLat < cells[j].CenterLat
		}
		return cells[i].CenterLng < cells[j].CenterLng
	})

	return cells
}

// HighDensity returns the cells whose count is at least 10% of the
// maximum observed count (spec.md §4.5). cells must already be the
// output of Analyze (so the first entry, if any, carries the max).
func HighDensity(cells []Cell) []Cell {
	if len(cells) == 0 {
		return nil
	}
	maxCount := cells[0].Count
	threshold := 0.1 * float64(maxCount)

	out := make([]Cell, 0, len(cells))
	for _, c := range cells {
		if float64(c.Count) >= threshold {
			out = append(out, c)
		}
	}
	return out
}

// SearchAreaKm2 measures the bounding-box search area of a point set,
// using the latitude-corrected longitude scale at the box's mean latitude
// (spec.md §4.5): (Δlat·111.32)·(Δlng·111.32·cos φ̄).
func SearchAreaKm2(pts []geo.Point) float64 {
	return geo.BoundingBoxOf(pts).AreaKm2()
}

// DefaultCellSizeDeg returns the configured cell size, falling back to the
// spec.md §4.5 default of 0.01°.
func DefaultCellSizeDeg(cfg *config.TuningConfig) float64 {
	if cfg == nil {
		return 0.01
	}
	return cfg.GetDensityCellSizeDeg()
}
