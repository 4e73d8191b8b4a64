// Package simdriver implements the time-stepping driver of spec.md §4.4:
// it orders the per-particle physics (field sample → forcing sum →
// shallow-water correction → diffusion → land exclusion → shore
// interaction), advances simulation time, emits hourly snapshots, and
// accumulates the beaching and encounter statistics the coordinator
// reports.
package simdriver

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/sarops/driftsim/internal/config"
	"github.com/sarops/driftsim/internal/drift"
	"github.com/sarops/driftsim/internal/envfield"
	"github.com/sarops/driftsim/internal/geo"
	"github.com/sarops/driftsim/internal/geodata"
	"github.com/sarops/driftsim/internal/monitoring"
	"github.com/sarops/driftsim/internal/particle"
	"github.com/sarops/driftsim/internal/shallowwater"
)

// GeoSource is the subset of geodata.Adapter the driver depends on. A
// plain *geodata.Adapter satisfies it; tests may supply a fake.
type GeoSource interface {
	Depth(lat, lng float64) (depthM float64, synthetic bool)
	BathymetryGradientAt(lat, lng float64) (geodata.BathymetryGradient, bool)
	ShoreInfoAt(lat, lng float64) (geodata.ShoreInfo, bool)
	ShoreTypeAt(lat, lng float64) (geodata.ShoreKind, bool)
	RipCurrentAt(lat, lng float64, t time.Time) (geodata.RipCurrent, bool)
}

// ParticleView is the per-particle projection carried in a Snapshot
// (spec.md §3).
type ParticleView struct {
	ID     int
	Lat    float64
	Lng    float64
	Status particle.Status
	DepthM *float64
}

// Snapshot is one hourly observation of the ensemble (spec.md §3).
type Snapshot struct {
	TimeSeconds float64
	Hour        int
	Active      int
	Beached     int
	Total       int
	Centroid    *geo.Point
	Particles   []ParticleView
}

// BeachingRecord is one beaching event (spec.md §4.4).
type BeachingRecord struct {
	Lat         float64
	Lng         float64
	TimeSeconds float64
	Hour        int
	DepthM      float64
	ShoreKind   geodata.ShoreKind
	Effects     map[string]bool
}

// Stats is the global statistics accumulated across steps (spec.md §4.4).
type Stats struct {
	TotalBeached           int
	BeachingRecords        []BeachingRecord
	ShallowWaterEncounters int
	SurfZoneEncounters     int
	LandExclusionCount     int
	ReflectionCount        int
	SyntheticGeoCount      int
	InternalPhysicsErrors  int
	NumericalDivergedCount int
}

// Driver owns the per-step physics composition and the snapshot sequence
// for one simulation (spec.md §3's Ownership section and §4.4).
type Driver struct {
	ensemble *particle.Ensemble
	env      envfield.Provider
	geo      GeoSource
	cfg      *config.TuningConfig
	objType  config.ObjectType
	rng      *rand.Rand

	startWallTime      time.Time
	currentTimeSeconds float64

	mu        sync.RWMutex
	snapshots []Snapshot
	stats     Stats
}

// New constructs a driver over an already-initialized ensemble.
func New(ensemble *particle.Ensemble, env envfield.Provider, geo GeoSource, objType config.ObjectType, cfg *config.TuningConfig, rng *rand.Rand, startWallTime time.Time) *Driver {
	if cfg == nil {
		cfg = config.EmptyTuningConfig()
	}
	return &Driver{
		ensemble:      ensemble,
		env:           env,
		geo:           geo,
		cfg:           cfg,
		objType:       objType,
		rng:           rng,
		startWallTime: startWallTime,
	}
}

// CurrentTimeSeconds returns the elapsed simulation time.
func (d *Driver) CurrentTimeSeconds() float64 { return d.currentTimeSeconds }

// Snapshots returns every hourly snapshot recorded so far. Safe to call
// concurrently with Step, per spec.md §13.7 (snapshot endpoint available
// independent of completion status).
func (d *Driver) Snapshots() []Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Snapshot, len(d.snapshots))
	copy(out, d.snapshots)
	return out
}

// Stats returns a copy of the accumulated global statistics. Safe to call
// concurrently with Step.
func (d *Driver) Stats() Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := d.stats
	out.BeachingRecords = append([]BeachingRecord(nil), d.stats.BeachingRecords...)
	return out
}

// Step advances the simulation by dtSeconds, per spec.md §4.4: for every
// active particle, sample the field, sum forcings, apply shallow-water
// correction and diffusion, attempt the move, resolve land exclusion, and
// advance age. Particle i never reads particle j (spec.md §5), so the
// loop below may be safely parallelized by a conforming implementation;
// this driver runs it sequentially for simplicity and to keep the shared
// *rand.Rand single-threaded.
func (d *Driver) Step(dtSeconds float64) {
	dtHours := dtSeconds / 3600.0
	simTime := d.startWallTime.Add(time.Duration(d.currentTimeSeconds * float64(time.Second)))

	d.env.Advance(simTime)

	d.mu.Lock()
	for _, p := range d.ensemble.Active() {
		d.stepParticle(p.ID, dtHours, simTime)
	}
	d.mu.Unlock()

	oldTime := d.currentTimeSeconds
	d.currentTimeSeconds += dtSeconds

	oldHour := int(oldTime / 3600.0)
	newHour := int(d.currentTimeSeconds / 3600.0)
	if newHour > oldHour {
		d.emitSnapshot(newHour)
	}
}

func (d *Driver) stepParticle(id int, dtHours float64, simTime time.Time) {
	cur := d.ensemble.Get(id)
	if !cur.IsActive() {
		return
	}

	snap, err := d.env.ConditionsAt(cur.Position.Lat, cur.Position.Lng, simTime)
	if err != nil {
		monitoring.Logf("simdriver: environmental provider error at particle %d: %v", id, err)
		d.ensemble.Mutate(id, func(p *particle.Particle) { p.AgeSeconds += dtHours * 3600 })
		return
	}
	if snap.Synthetic {
		d.stats.SyntheticGeoCount++
	}

	depthM, synthetic := d.geo.Depth(cur.Position.Lat, cur.Position.Lng)
	if synthetic {
		d.stats.SyntheticGeoCount++
	}

	total := drift.Wind(cur.Position, snap, dtHours, d.cfg).
		Add(drift.Current(cur.Position, snap, dtHours, d.cfg)).
		Add(drift.Wave(cur.Position, snap, dtHours, d.cfg, d.rng)).
		Add(drift.Leeway(cur.Position, snap, dtHours, d.objType, d.cfg))

	shallowThreshold := d.cfg.GetShallowDepthThreshold()
	var shallowRes shallowwater.Result
	shallowApplied := false
	if depthM < shallowThreshold {
		d.stats.ShallowWaterEncounters++
		if depthM <= d.cfg.GetSurfZoneDepthM() {
			d.stats.SurfZoneEncounters++
		}

		var gradPtr *geodata.BathymetryGradient
		if g, ok := d.geo.BathymetryGradientAt(cur.Position.Lat, cur.Position.Lng); ok {
			gradPtr = &g
		}
		var shorePtr *geodata.ShoreInfo
		if s, ok := d.geo.ShoreInfoAt(cur.Position.Lat, cur.Position.Lng); ok {
			shorePtr = &s
		}
		var ripPtr *geodata.RipCurrent
		if r, ok := d.geo.RipCurrentAt(cur.Position.Lat, cur.Position.Lng, simTime); ok {
			ripPtr = &r
		}

		shallowRes = shallowwater.Correction(shallowwater.Input{
			Position:           cur.Position,
			DepthM:             depthM,
			DtHours:            dtHours,
			BathymetryGradient: gradPtr,
			ShoreInfo:          shorePtr,
			Tidal:              snap.Tidal,
			RipCurrent:         ripPtr,
		}, snap, d.cfg)
		shallowApplied = true

		if shallowRes.NumericalDiverged {
			d.stats.NumericalDivergedCount++
		}

		total = total.Add(shallowRes.Delta)

		if shallowRes.BeachingProbability > 0 && d.rng.Float64() < shallowRes.BeachingProbability {
			shoreKind, _ := d.geo.ShoreTypeAt(cur.Position.Lat, cur.Position.Lng)
			d.beachParticle(id, cur.Position, depthM, shoreKind, shallowRes.Effects, dtHours)
			return
		}
	}

	total = total.Add(drift.Diffusion(cur.Position, dtHours, d.cfg, d.rng))

	if math.IsNaN(total.DLat) || math.IsNaN(total.DLng) {
		d.stats.InternalPhysicsErrors++
		monitoring.Logf("simdriver: NaN displacement for particle %d, skipping step", id)
		return
	}

	attempted := geo.Point{Lat: cur.Position.Lat + total.DLat, Lng: cur.Position.Lng + total.DLng}
	attemptedDepthM, _ := d.geo.Depth(attempted.Lat, attempted.Lng)

	finalPos := attempted
	finalDepth := attemptedDepthM

	if attemptedDepthM <= 0 {
		d.stats.LandExclusionCount++
		shoreKind, _ := d.geo.ShoreTypeAt(attempted.Lat, attempted.Lng)
		shoreInfo, _ := d.geo.ShoreInfoAt(attempted.Lat, attempted.Lng)

		outcome := shallowwater.ShoreInteraction(shoreKind, cur.Position, shoreInfo.NormalDeg, d.rng)
		switch outcome.Outcome {
		case shallowwater.OutcomeBeach:
			effects := map[string]bool{}
			if shallowApplied {
				effects = shallowRes.Effects
			}
			d.beachParticle(id, attempted, attemptedDepthM, shoreKind, effects, dtHours)
			return
		case shallowwater.OutcomeReflect:
			d.stats.ReflectionCount++
			finalPos = outcome.ReflectedPosition
			finalDepth, _ = d.geo.Depth(finalPos.Lat, finalPos.Lng)
			d.ensemble.Mutate(id, func(p *particle.Particle) { p.ReflectionCount++ })
		default: // stay
			finalPos = cur.Position
			finalDepth = depthM
		}
	}

	fd := finalDepth
	d.ensemble.Mutate(id, func(p *particle.Particle) {
		p.Position = finalPos
		p.DepthAtLastStepM = &fd
		p.AgeSeconds += dtHours * 3600
	})
}

func (d *Driver) beachParticle(id int, pos geo.Point, depthM float64, shoreKind geodata.ShoreKind, effects map[string]bool, dtHours float64) {
	hour := int(d.currentTimeSeconds / 3600.0)
	d.ensemble.Mutate(id, func(p *particle.Particle) {
		p.Status = particle.StatusBeached
		t := d.currentTimeSeconds
		p.BeachedTimeSeconds = &t
		p.BeachType = shoreKind
		p.BeachingEffects = effects
		p.Position = pos
		dm := depthM
		p.DepthAtLastStepM = &dm
		p.AgeSeconds += dtHours * 3600
	})
	d.stats.TotalBeached++
	d.stats.BeachingRecords = append(d.stats.BeachingRecords, BeachingRecord{
		Lat:         pos.Lat,
		Lng:         pos.Lng,
		TimeSeconds: d.currentTimeSeconds,
		Hour:        hour,
		DepthM:      depthM,
		ShoreKind:   shoreKind,
		Effects:     effects,
	})
}

func (d *Driver) emitSnapshot(hour int) {
	all := d.ensemble.Snapshot()
	active, beached, total := d.ensemble.Counts()

	views := make([]ParticleView, len(all))
	for i, p := range all {
		views[i] = ParticleView{ID: p.ID, Lat: p.Position.Lat, Lng: p.Position.Lng, Status: p.Status, DepthM: p.DepthAtLastStepM}
	}

	var centroid *geo.Point
	if c, ok := d.ensemble.Centroid(); ok {
		centroid = &c
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.snapshots = append(d.snapshots, Snapshot{
		TimeSeconds: d.currentTimeSeconds,
		Hour:        hour,
		Active:      active,
		Beached:     beached,
		Total:       total,
		Centroid:    centroid,
		Particles:   views,
	})
}
