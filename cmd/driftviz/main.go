// Command driftviz runs a drift simulation to completion and renders an
// interactive HTML scatter chart of the particle cloud, density heat-map,
// and containment hull vertices, grounded on the teacher's
// internal/lidar/monitor echarts_handlers.go: a go-echarts Scatter with a
// VisualMap-colored series plus overlay series (handleBackgroundGridHeatmapChart,
// handleForegroundFrameChart) rather than a categorical Line/Bar chart, since
// this data is a 2D point cloud, not a time series (spec.md §4.5, §4.6 —
// a supplemental visualization, not a spec.md operation).
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/sarops/driftsim/internal/config"
	"github.com/sarops/driftsim/internal/containment"
	"github.com/sarops/driftsim/internal/density"
	"github.com/sarops/driftsim/internal/envfield"
	"github.com/sarops/driftsim/internal/geo"
	"github.com/sarops/driftsim/internal/geodata"
	"github.com/sarops/driftsim/internal/monitoring"
	"github.com/sarops/driftsim/internal/particle"
	"github.com/sarops/driftsim/internal/simdriver"
)

func main() {
	lat := flag.Float64("lat", 29.30, "LKP latitude")
	lng := flag.Float64("lng", -94.80, "LKP longitude")
	particles := flag.Int("particles", 1000, "particle count")
	hours := flag.Float64("hours", 24, "simulation duration in hours")
	stepSeconds := flag.Float64("step", 600, "time step in seconds")
	outFile := flag.String("out", "./driftviz.html", "output HTML file path")
	flag.Parse()

	lkp := geo.Point{Lat: *lat, Lng: *lng}
	env := envfield.NewDeterministic(
		envfield.Wind{SpeedKnots: 15, DirDeg: 45},
		envfield.Current{SpeedKnots: 1, DirDeg: 90},
		envfield.Waves{SignificantHeightM: 1, PeakPeriodS: 7, DirDeg: 45},
		65, 75, 10, 3,
	)
	geoSrc := geodata.NewAdapter(geodata.NewSyntheticShoreline(lkp.Lat, lkp.Lng, 0, 500, 0, geodata.ShoreSandy), 10000)
	tuning := config.EmptyTuningConfig()
	rng := rand.New(rand.NewSource(1))

	ensemble := particle.NewEnsemble(*particles, lkp)
	ensemble.InitialSpread(lkp, 0.5, rng)
	driver := simdriver.New(ensemble, env, geoSrc, config.ObjectPersonInWater, tuning, rng, time.Now())

	totalSteps := int(*hours * 3600 / *stepSeconds)
	for i := 0; i < totalSteps; i++ {
		driver.Step(*stepSeconds)
	}

	active := ensemble.Active()
	positions := make([]geo.Point, len(active))
	densityInput := make(map[int]geo.Point, len(active))
	for i, p := range active {
		positions[i] = p.Position
		densityInput[p.ID] = p.Position
	}

	cells := density.Analyze(densityInput, density.DefaultCellSizeDeg(tuning))
	cont := containment.Calculate(positions)

	f, err := os.Create(*outFile)
	if err != nil {
		monitoring.Logf("driftviz: failed to create output file: %v", err)
		os.Exit(1)
	}
	defer f.Close()

	scatter := buildScatter(positions, cells, cont)
	if err := scatter.Render(f); err != nil {
		monitoring.Logf("driftviz: failed to render chart: %v", err)
		os.Exit(1)
	}

	monitoring.Logf("driftviz: wrote %s", *outFile)
}

// buildScatter composes the particle cloud (background series), the
// density cells (VisualMap-colored by weight), and each containment
// tier's hull vertices (overlay series), matching the
// background/foreground overlay idiom of handleForegroundFrameChart.
func buildScatter(positions []geo.Point, cells []density.Cell, cont containment.Containment) *charts.Scatter {
	particlePts := make([]opts.ScatterData, 0, len(positions))
	for _, p := range positions {
		particlePts = append(particlePts, opts.ScatterData{Value: []interface{}{p.Lng, p.Lat}})
	}

	maxWeight := 0.0
	densityPts := make([]opts.ScatterData, 0, len(cells))
	for _, c := range cells {
		if c.Weight > maxWeight {
			maxWeight = c.Weight
		}
		densityPts = append(densityPts, opts.ScatterData{Value: []interface{}{c.CenterLng, c.CenterLat, c.Weight}})
	}
	if maxWeight == 0 {
		maxWeight = 1
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Drift Simulation", Theme: "dark", Width: "960px", Height: "960px"}),
		charts.WithTitleOpts(opts.Title{Title: "Particle Cloud & Density", Subtitle: fmt.Sprintf("particles=%d cells=%d", len(positions), len(cells))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Longitude", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Latitude", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxWeight),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}},
		}),
	)

	scatter.AddSeries("particles", particlePts,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#9e9e9e"}),
	)
	scatter.AddSeries("density", densityPts, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}))

	tierColors := []string{"#35b779", "#31688e", "#440154"}
	for i, result := range cont.Polygons {
		if len(result.Polygon) == 0 {
			continue
		}
		hullPts := make([]opts.ScatterData, len(result.Polygon))
		for j, pt := range result.Polygon {
			hullPts[j] = opts.ScatterData{Value: []interface{}{pt.Lng, pt.Lat}}
		}
		label := fmt.Sprintf("%.0f%% hull", result.Percentile*100)
		scatter.AddSeries(label, hullPts,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 12}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: tierColors[i%len(tierColors)]}),
		)
	}

	return scatter
}
