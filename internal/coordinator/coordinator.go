// Package coordinator implements the simulation coordinator of
// spec.md §4.8: a registry of simulations keyed by opaque id, cooperative
// execution to completion, and the status/results/snapshot/list/stop/
// delete surface the external API (cmd/driftsvc) exposes.
package coordinator

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sarops/driftsim/internal/config"
	"github.com/sarops/driftsim/internal/containment"
	"github.com/sarops/driftsim/internal/density"
	"github.com/sarops/driftsim/internal/envfield"
	"github.com/sarops/driftsim/internal/geo"
	"github.com/sarops/driftsim/internal/monitoring"
	"github.com/sarops/driftsim/internal/particle"
	"github.com/sarops/driftsim/internal/simdriver"
	"github.com/sarops/driftsim/internal/survival"
)

// Status is a simulation's lifecycle state (spec.md §6).
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusStopped   Status = "stopped"
	StatusFailed    Status = "failed"
)

// Results is the aggregate output of a completed simulation (spec.md §6:
// "results" combines §4.5-§4.7 plus hourly snapshots).
type Results struct {
	DensityCells     []density.Cell
	HighDensityCells []density.Cell
	SearchAreaKm2    float64
	Containment      containment.Containment
	Survival         survival.Assessment
	Stats            simdriver.Stats
	Snapshots        []simdriver.Snapshot
}

// Simulation is one registry entry: its configuration, lifecycle state,
// and (once completed) results. Mutable fields are guarded by mu; driver
// and ensemble are owned exclusively by the simulation's own goroutine
// while running (spec.md §3's Ownership section, §5).
type Simulation struct {
	ID     string
	Config config.SimulationConfig

	mu            sync.RWMutex
	status        Status
	progress      int
	startTime     time.Time
	endTime       *time.Time
	err           error
	stopRequested bool
	results       *Results

	driver   *simdriver.Driver
	ensemble *particle.Ensemble
	env      envfield.Provider
}

func (s *Simulation) snapshotStatus() (Status, int, time.Time, *time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, s.progress, s.startTime, s.endTime, s.err
}

func (s *Simulation) setProgress(p int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p > s.progress {
		s.progress = p
	}
}

func (s *Simulation) requestStop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopRequested = true
}

func (s *Simulation) shouldStop() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stopRequested
}

func (s *Simulation) finish(status Status, results *Results, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusRunning {
		return // already terminal; stop/finish races resolve idempotently
	}
	s.status = status
	s.results = results
	s.err = err
	now := time.Now()
	s.endTime = &now
	if status == StatusCompleted {
		s.progress = 100
	}
}

// Registry owns every active and completed simulation. It is the only
// shared mutable structure across simulations (spec.md §5): a
// mutual-exclusion discipline governs id→simulation lookup and insertion,
// while each Simulation's own fields are independently guarded.
type Registry struct {
	mu          sync.RWMutex
	simulations map[string]*Simulation
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{simulations: make(map[string]*Simulation)}
}

// Start validates cfg, constructs the ensemble/driver, registers the
// simulation, and enqueues it for cooperative execution (spec.md §4.8).
// It returns ConfigurationInvalid-wrapped errors for bad input, never a
// partial registration.
func (r *Registry) Start(cfg config.SimulationConfig, env envfield.Provider, geoSrc simdriver.GeoSource, tuning *config.TuningConfig) (string, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", config.ErrConfigurationInvalid, err)
	}
	if tuning == nil {
		tuning = config.EmptyTuningConfig()
	}

	ensemble := particle.NewEnsemble(cfg.ParticleCount, cfg.LKP)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ensemble.InitialSpread(cfg.LKP, cfg.InitialSpreadKm, rng)

	driver := simdriver.New(ensemble, env, geoSrc, cfg.ObjectType, tuning, rng, time.Now())

	sim := &Simulation{
		ID:        uuid.NewString(),
		Config:    cfg,
		status:    StatusRunning,
		startTime: time.Now(),
		driver:    driver,
		ensemble:  ensemble,
		env:       env,
	}

	r.mu.Lock()
	r.simulations[sim.ID] = sim
	r.mu.Unlock()

	go r.runLoop(sim, tuning)

	return sim.ID, nil
}

// runLoop executes total_steps = duration_hours*3600/time_step_seconds
// iterations, yielding to the scheduler every GetYieldEverySteps steps,
// checking for a stop request before each step (spec.md §4.8, §5).
func (r *Registry) runLoop(sim *Simulation, tuning *config.TuningConfig) {
	defer func() {
		if rec := recover(); rec != nil {
			monitoring.Logf("coordinator: simulation %s panicked: %v", sim.ID, rec)
			sim.finish(StatusFailed, nil, fmt.Errorf("%w: %v", config.ErrInternalPhysicsError, rec))
		}
	}()

	totalSteps := int(sim.Config.DurationHours * 3600.0 / sim.Config.TimeStepSeconds)
	if totalSteps <= 0 {
		totalSteps = 1
	}
	yieldEvery := tuning.GetYieldEverySteps()

	for step := 0; step < totalSteps; step++ {
		if sim.shouldStop() {
			sim.finish(StatusStopped, r.buildResults(sim), nil)
			return
		}

		sim.driver.Step(sim.Config.TimeStepSeconds)
		sim.setProgress(int(100 * float64(step+1) / float64(totalSteps)))

		if yieldEvery > 0 && (step+1)%yieldEvery == 0 {
			runtime.Gosched()
		}
	}

	sim.finish(StatusCompleted, r.buildResults(sim), nil)
}

func (r *Registry) buildResults(sim *Simulation) *Results {
	active := sim.ensemble.Active()
	positions := make([]geo.Point, len(active))
	densityInput := make(map[int]geo.Point, len(active))
	for i, p := range active {
		positions[i] = p.Position
		densityInput[p.ID] = p.Position
	}

	cellSize := density.DefaultCellSizeDeg(nil)
	cells := density.Analyze(densityInput, cellSize)
	high := density.HighDensity(cells)
	searchArea := density.SearchAreaKm2(positions)

	cont := containment.Calculate(positions)

	elapsedHours := sim.driver.CurrentTimeSeconds() / 3600.0
	waterTempF := 60.0
	if cond, err := sim.env.ConditionsAt(sim.Config.LKP.Lat, sim.Config.LKP.Lng, time.Now()); err == nil {
		waterTempF = cond.WaterTempF
	}

	assessment := survival.Estimate(sim.Config.VictimProfile, waterTempF, elapsedHours)

	return &Results{
		DensityCells:     cells,
		HighDensityCells: high,
		SearchAreaKm2:    searchArea,
		Containment:      cont,
		Survival:         assessment,
		Stats:            sim.driver.Stats(),
		Snapshots:        sim.driver.Snapshots(),
	}
}

// StatusInfo is the status-endpoint projection of spec.md §6.
type StatusInfo struct {
	ID        string
	Status    Status
	Progress  int
	StartTime time.Time
	EndTime   *time.Time
	Err       error
}

// Status returns a simulation's current lifecycle state (spec.md §6).
func (r *Registry) Status(id string) (StatusInfo, error) {
	sim, ok := r.lookup(id)
	if !ok {
		return StatusInfo{}, config.ErrNotFound
	}
	status, progress, startTime, endTime, err := sim.snapshotStatus()
	return StatusInfo{ID: id, Status: status, Progress: progress, StartTime: startTime, EndTime: endTime, Err: err}, nil
}

// Results returns the completed simulation's aggregate results, or
// NotReady if it has not finished yet (spec.md §7).
func (r *Registry) Results(id string) (*Results, error) {
	sim, ok := r.lookup(id)
	if !ok {
		return nil, config.ErrNotFound
	}
	status, _, _, _, _ := sim.snapshotStatus()
	if status == StatusRunning {
		return nil, config.ErrNotReady
	}
	sim.mu.RLock()
	defer sim.mu.RUnlock()
	if sim.results == nil {
		return nil, config.ErrNotReady
	}
	return sim.results, nil
}

// Snapshot returns the snapshot whose time_seconds == hour*3600, or
// NotFound otherwise (spec.md §6).
func (r *Registry) Snapshot(id string, hour int) (simdriver.Snapshot, error) {
	sim, ok := r.lookup(id)
	if !ok {
		return simdriver.Snapshot{}, config.ErrNotFound
	}
	for _, snap := range sim.driver.Snapshots() {
		if snap.Hour == hour {
			return snap, nil
		}
	}
	return simdriver.Snapshot{}, config.ErrNotFound
}

// List returns every registered simulation id.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.simulations))
	for id := range r.simulations {
		ids = append(ids, id)
	}
	return ids
}

// Stop marks a running simulation stopped. Idempotent: stopping an
// already-stopped or completed simulation is a no-op (spec.md §4.8).
func (r *Registry) Stop(id string) error {
	sim, ok := r.lookup(id)
	if !ok {
		return config.ErrNotFound
	}
	sim.requestStop()
	return nil
}

// Delete removes a simulation from the registry.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.simulations[id]; !ok {
		return config.ErrNotFound
	}
	delete(r.simulations, id)
	return nil
}

func (r *Registry) lookup(id string) (*Simulation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sim, ok := r.simulations[id]
	return sim, ok
}
