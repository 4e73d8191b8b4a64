// Package particle owns the Monte-Carlo particle ensemble: identity,
// position, lifecycle status, and the partitions (active/beached/
// recovered) the time-stepping driver and downstream statistics consume
// (spec.md §3, §4.4).
package particle

import (
	"math"
	"math/rand"
	"sync"

	"github.com/sarops/driftsim/internal/geo"
	"github.com/sarops/driftsim/internal/geodata"
)

// Status is a particle's lifecycle state (spec.md §3). Once a particle
// leaves StatusActive its position and status are frozen.
type Status string

const (
	StatusActive    Status = "active"
	StatusBeached   Status = "beached"
	StatusRecovered Status = "recovered"
)

// Particle is a single Monte-Carlo sample (spec.md §3).
type Particle struct {
	ID         int
	Position   geo.Point
	Status     Status
	AgeSeconds float64

	BeachedTimeSeconds *float64
	BeachType          geodata.ShoreKind
	BeachingEffects    map[string]bool

	// DepthAtLastStepM is positive downward; <= 0 means land. Nil before
	// the first depth sample.
	DepthAtLastStepM *float64

	ReflectionCount int
}

// IsActive reports whether the particle can still move.
func (p *Particle) IsActive() bool { return p.Status == StatusActive }

// Ensemble owns the particle set and exposes the active/beached/recovered
// partitions and per-id mutation the driver needs (spec.md §3's
// Ownership section). Particles are allocated once in NewEnsemble and never
// reallocated (spec.md §5).
type Ensemble struct {
	mu        sync.RWMutex
	particles []Particle
}

// NewEnsemble allocates n particles, all initially active, positioned at
// lkp. Callers should call InitialSpread to disperse them before the
// first step.
func NewEnsemble(n int, lkp geo.Point) *Ensemble {
	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = Particle{
			ID:       i,
			Position: lkp,
			Status:   StatusActive,
		}
	}
	return &Ensemble{particles: particles}
}

// InitialSpread disperses every particle uniformly inside a disc of
// radius radiusKm around lkp, per spec.md §4.4: θ ~ U[0,2π),
// ρ = sqrt(U)·R, converted to degrees using the latitude-aware longitude
// scale.
func (e *Ensemble) InitialSpread(lkp geo.Point, radiusKm float64, rng *rand.Rand) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.particles {
		theta := rng.Float64() * 2 * math.Pi
		rho := math.Sqrt(rng.Float64()) * radiusKm

		dyKm := rho * math.Sin(theta)
		dxKm := rho * math.Cos(theta)
		e.particles[i].Position = geo.DisplaceFlat(lkp, dxKm, dyKm, true)
	}
}

// Len returns the total particle count, which is constant for the
// ensemble's lifetime (spec.md §8 invariant).
func (e *Ensemble) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.particles)
}

// Get returns a copy of the particle at id. Safe for concurrent readers.
func (e *Ensemble) Get(id int) Particle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.particles[id]
}

// Mutate applies fn to the particle at id under the ensemble's lock. fn
// must not call back into the ensemble. This is the only mutation path;
// the driver calls it once per active particle per step (spec.md §5:
// "particle i never reads particle j").
func (e *Ensemble) Mutate(id int, fn func(p *Particle)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.particles[id])
}

// Snapshot returns a copy of every particle, safe to range over without
// holding the ensemble's lock afterward.
func (e *Ensemble) Snapshot() []Particle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Particle, len(e.particles))
	copy(out, e.particles)
	return out
}

// Active returns copies of the currently-active particles.
func (e *Ensemble) Active() []Particle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Particle, 0, len(e.particles))
	for _, p := range e.particles {
		if p.Status == StatusActive {
			out = append(out, p)
		}
	}
	return out
}

// Beached returns copies of the currently-beached particles.
func (e *Ensemble) Beached() []Particle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Particle, 0)
	for _, p := range e.particles {
		if p.Status == StatusBeached {
			out = append(out, p)
		}
	}
	return out
}

// Recovered returns copies of the currently-recovered particles.
func (e *Ensemble) Recovered() []Particle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Particle, 0)
	for _, p := range e.particles {
		if p.Status == StatusRecovered {
			out = append(out, p)
		}
	}
	return out
}

// Counts returns the active/beached/total counts used in snapshots
// (spec.md §3).
func (e *Ensemble) Counts() (active, beached, total int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	total = len(e.particles)
	for _, p := range e.particles {
		switch p.Status {
		case StatusActive:
			active++
		case StatusBeached:
			beached++
		}
	}
	return
}

// Centroid returns the arithmetic mean position of active particles, and
// false if there are none (spec.md §3, Snapshot.centroid).
func (e *Ensemble) Centroid() (geo.Point, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var sumLat, sumLng float64
	n := 0
	for _, p := range e.particles {
		if p.Status != StatusActive {
			continue
		}
		sumLat += p.Position.Lat
		sumLng += p.Position.Lng
		n++
	}
	if n == 0 {
		return geo.Point{}, false
	}
	return geo.Point{Lat: sumLat / float64(n), Lng: sumLng / float64(n)}, true
}
