// Command driftplot runs a drift simulation to completion and renders its
// density heat-map and containment polygons as PNG files, grounded on the
// teacher's internal/lidar/monitor GridPlotter: gonum/plot scatter and
// line plotters, a generated color palette, and vg.Inch-sized PNG Save
// calls (spec.md §4.5, §4.6 — this is a supplemental visualization, not a
// spec.md operation).
package main

import (
	"flag"
	"fmt"
	"image/color"
	"math/rand"
	"os"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

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
	outDir := flag.String("out", "./driftplot-out", "output directory for PNGs")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		monitoring.Logf("driftplot: failed to create output dir: %v", err)
		os.Exit(1)
	}

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

	if err := renderDensityPlot(cells, *outDir); err != nil {
		monitoring.Logf("driftplot: density plot failed: %v", err)
		os.Exit(1)
	}
	if err := renderContainmentPlot(positions, cont, *outDir); err != nil {
		monitoring.Logf("driftplot: containment plot failed: %v", err)
		os.Exit(1)
	}

	monitoring.Logf("driftplot: wrote %d PNGs to %s", 2, *outDir)
}

// renderDensityPlot draws each occupied grid cell as a point sized by its
// weight (spec.md §4.5) and colored by its position in the cell list, in
// the teacher's palette-generation
// style (generateColors/hslToRGB in gridplotter.go).
func renderDensityPlot(cells []density.Cell, outDir string) error {
	p := plot.New()
	p.Title.Text = "Particle Density"
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"

	if len(cells) == 0 {
		return p.Save(10*vg.Inch, 10*vg.Inch, outDir+"/density.png")
	}

	colors := densityColors(len(cells))
	for i, c := range cells {
		pts := plotter.XYs{{X: c.CenterLng, Y: c.CenterLat}}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		scatter.GlyphStyle.Color = colors[i]
		scatter.GlyphStyle.Radius = vg.Points(2 + 6*c.Weight)
		p.Add(scatter)
	}

	return p.Save(10*vg.Inch, 10*vg.Inch, outDir+"/density.png")
}

// renderContainmentPlot draws the active particle cloud plus the 50/90/95%
// containment hull outlines as closed line loops.
func renderContainmentPlot(positions []geo.Point, cont containment.Containment, outDir string) error {
	p := plot.New()
	p.Title.Text = "Containment Polygons"
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"

	cloud := make(plotter.XYs, len(positions))
	for i, pos := range positions {
		cloud[i] = plotter.XY{X: pos.Lng, Y: pos.Lat}
	}
	scatter, err := plotter.NewScatter(cloud)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = color.Gray{Y: 160}
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(scatter)
	p.Legend.Add("particles", scatter)

	tierColors := []color.Color{
		color.RGBA{R: 0x35, G: 0xb7, B: 0x79, A: 255},
		color.RGBA{R: 0x31, G: 0x68, B: 0x8e, A: 255},
		color.RGBA{R: 0x44, G: 0x01, B: 0x54, A: 255},
	}
	for i, result := range cont.Polygons {
		if len(result.Polygon) < 3 {
			continue
		}
		loop := make(plotter.XYs, len(result.Polygon)+1)
		for j, pt := range result.Polygon {
			loop[j] = plotter.XY{X: pt.Lng, Y: pt.Lat}
		}
		loop[len(result.Polygon)] = loop[0]

		line, err := plotter.NewLine(loop)
		if err != nil {
			return err
		}
		line.Color = tierColors[i%len(tierColors)]
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("%.0f%% containment", result.Percentile*100), line)
	}

	p.Legend.Top = true
	p.Legend.Left = false

	return p.Save(10*vg.Inch, 10*vg.Inch, outDir+"/containment.png")
}

// densityColors generates n distinct colors by walking the hue wheel, the
// same approach as the teacher's generateColors/hslToRGB helpers.
func densityColors(n int) []color.Color {
	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64
	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		pp := 2*l - q
		rf = hueToRGB(pp, q, h+1.0/3.0)
		gf = hueToRGB(pp, q, h)
		bf = hueToRGB(pp, q, h-1.0/3.0)
	}
	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(pp, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6.0:
		return pp + (q-pp)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return pp + (q-pp)*(2.0/3.0-t)*6
	default:
		return pp
	}
}
