// Package config holds the physics tunables for the drift engine, loaded
// from an optional JSON overrides file, and the per-request simulation
// configuration described in spec.md §3.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sarops/driftsim/internal/geo"
)

// DefaultConfigPath is the canonical tuning defaults file.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig holds the engine's physics coefficients. Every field is a
// pointer so that a partial JSON document only overrides the fields it
// sets; omitted fields fall back to the Get* defaults below.
type TuningConfig struct {
	// Drift calculator factors (spec.md §4.2).
	WindDriftFactor    *float64 `json:"wind_drift_factor,omitempty"`
	CurrentDriftFactor *float64 `json:"current_drift_factor,omitempty"`
	StokesCoefficient  *float64 `json:"stokes_coefficient,omitempty"`
	DiffusionRateKm2PH *float64 `json:"diffusion_rate_km2_per_hour,omitempty"`

	// Shallow-water physics (spec.md §4.3).
	ManningRoughness      *float64 `json:"manning_roughness,omitempty"`
	ShallowDepthThreshold *float64 `json:"shallow_depth_threshold_m,omitempty"`
	SurfZoneDepthM        *float64 `json:"surf_zone_depth_m,omitempty"`
	VeryShallowDepthM     *float64 `json:"very_shallow_depth_m,omitempty"`
	DispersionMaxIter     *int     `json:"dispersion_max_iterations,omitempty"`
	DispersionTolerance   *float64 `json:"dispersion_tolerance,omitempty"`

	// Time-stepping driver (spec.md §4.4, §5).
	YieldEverySteps *int `json:"yield_every_steps,omitempty"`
	DepthCacheCap   *int `json:"depth_cache_capacity,omitempty"`

	// Density analyzer (spec.md §4.5).
	DensityCellSizeDeg *float64 `json:"density_cell_size_deg,omitempty"`

	// Longitude-scale correction switch (spec.md §9 open question).
	CorrectLongitudeScale *bool `json:"correct_longitude_scale,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields nil.
func EmptyTuningConfig() *TuningConfig { return &TuningConfig{} }

// LoadTuningConfig loads a TuningConfig from a JSON file. Fields omitted
// from the file retain their defaults, so partial overrides are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults, searching
// parent directories for DefaultConfigPath. Falls back to EmptyTuningConfig
// (all engine defaults apply) if the file cannot be found, since the
// physics defaults in spec.md are self-sufficient.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	return EmptyTuningConfig()
}

// Validate checks that set fields are within sane ranges.
func (c *TuningConfig) Validate() error {
	if c.ManningRoughness != nil && *c.ManningRoughness <= 0 {
		return fmt.Errorf("manning_roughness must be positive, got %f", *c.ManningRoughness)
	}
	if c.DispersionMaxIter != nil && *c.DispersionMaxIter <= 0 {
		return fmt.Errorf("dispersion_max_iterations must be positive, got %d", *c.DispersionMaxIter)
	}
	if c.DispersionTolerance != nil && *c.DispersionTolerance <= 0 {
		return fmt.Errorf("dispersion_tolerance must be positive, got %f", *c.DispersionTolerance)
	}
	if c.YieldEverySteps != nil && *c.YieldEverySteps <= 0 {
		return fmt.Errorf("yield_every_steps must be positive, got %d", *c.YieldEverySteps)
	}
	if c.DepthCacheCap != nil && *c.DepthCacheCap <= 0 {
		return fmt.Errorf("depth_cache_capacity must be positive, got %d", *c.DepthCacheCap)
	}
	if c.DensityCellSizeDeg != nil && *c.DensityCellSizeDeg <= 0 {
		return fmt.Errorf("density_cell_size_deg must be positive, got %f", *c.DensityCellSizeDeg)
	}
	return nil
}

// Get* accessors apply the defaults named in spec.md where a field is unset.

func (c *TuningConfig) GetWindDriftFactor() float64 {
	if c.WindDriftFactor == nil {
		return 0.03
	}
	return *c.WindDriftFactor
}

func (c *TuningConfig) GetCurrentDriftFactor() float64 {
	if c.CurrentDriftFactor == nil {
		return 1.0
	}
	return *c.CurrentDriftFactor
}

func (c *TuningConfig) GetStokesCoefficient() float64 {
	if c.StokesCoefficient == nil {
		return 0.01
	}
	return *c.StokesCoefficient
}

func (c *TuningConfig) GetDiffusionRateKm2PH() float64 {
	if c.DiffusionRateKm2PH == nil {
		return 0.001
	}
	return *c.DiffusionRateKm2PH
}

func (c *TuningConfig) GetManningRoughness() float64 {
	if c.ManningRoughness == nil {
		return 0.025
	}
	return *c.ManningRoughness
}

func (c *TuningConfig) GetShallowDepthThreshold() float64 {
	if c.ShallowDepthThreshold == nil {
		return 20.0
	}
	return *c.ShallowDepthThreshold
}

func (c *TuningConfig) GetSurfZoneDepthM() float64 {
	if c.SurfZoneDepthM == nil {
		return 5.0
	}
	return *c.SurfZoneDepthM
}

func (c *TuningConfig) GetVeryShallowDepthM() float64 {
	if c.VeryShallowDepthM == nil {
		return 2.0
	}
	return *c.VeryShallowDepthM
}

func (c *TuningConfig) GetDispersionMaxIter() int {
	if c.DispersionMaxIter == nil {
		return 20
	}
	return *c.DispersionMaxIter
}

func (c *TuningConfig) GetDispersionTolerance() float64 {
	if c.DispersionTolerance == nil {
		return 1e-10
	}
	return *c.DispersionTolerance
}

func (c *TuningConfig) GetYieldEverySteps() int {
	if c.YieldEverySteps == nil {
		return 10
	}
	return *c.YieldEverySteps
}

func (c *TuningConfig) GetDepthCacheCap() int {
	if c.DepthCacheCap == nil {
		return 10000
	}
	return *c.DepthCacheCap
}

func (c *TuningConfig) GetDensityCellSizeDeg() float64 {
	if c.DensityCellSizeDeg == nil {
		return 0.01
	}
	return *c.DensityCellSizeDeg
}

// GetCorrectLongitudeScale reports whether the latitude-corrected
// longitude scale (geo.DegPerKmLngAt) should be used instead of the
// uncorrected source behavior. Defaults to false to preserve the
// source's longstanding convention (spec.md §9).
func (c *TuningConfig) GetCorrectLongitudeScale() bool {
	if c.CorrectLongitudeScale == nil {
		return false
	}
	return *c.CorrectLongitudeScale
}

// ObjectType enumerates the drifting-object kinds of spec.md §6.
type ObjectType string

const (
	ObjectPersonInWater  ObjectType = "person-in-water"
	ObjectPersonWithPFD  ObjectType = "person-with-pfd"
	ObjectPersonDrysuit  ObjectType = "person-in-drysuit"
	ObjectLifeRaft4      ObjectType = "life-raft-4"
	ObjectLifeRaft6      ObjectType = "life-raft-6"
	ObjectLifeRaft10Plus ObjectType = "life-raft-10-plus"
	ObjectSmallVessel    ObjectType = "small-vessel"
	ObjectMediumVessel   ObjectType = "medium-vessel"
	ObjectSailboat       ObjectType = "sailboat"
	ObjectKayak          ObjectType = "kayak"
	ObjectCanoe          ObjectType = "canoe"
	ObjectSurfboard      ObjectType = "surfboard"
	ObjectPaddleboard    ObjectType = "paddleboard"
	ObjectWoodDebris     ObjectType = "wood-debris"
	ObjectPlasticDebris  ObjectType = "plastic-debris"
	ObjectCooler         ObjectType = "cooler"
)

// IsValid reports whether t is a recognized object type.
func (t ObjectType) IsValid() bool {
	switch t {
	case ObjectPersonInWater, ObjectPersonWithPFD, ObjectPersonDrysuit,
		ObjectLifeRaft4, ObjectLifeRaft6, ObjectLifeRaft10Plus,
		ObjectSmallVessel, ObjectMediumVessel, ObjectSailboat,
		ObjectKayak, ObjectCanoe, ObjectSurfboard, ObjectPaddleboard,
		ObjectWoodDebris, ObjectPlasticDebris, ObjectCooler:
		return true
	}
	return false
}

// ClothingCategory enumerates the survival estimator's clothing bonus
// categories (spec.md §4.7).
type ClothingCategory string

const (
	ClothingNone    ClothingCategory = "none"
	ClothingLight   ClothingCategory = "light"
	ClothingNormal  ClothingCategory = "normal"
	ClothingHeavy   ClothingCategory = "heavy"
	ClothingWetsuit ClothingCategory = "wetsuit"
	ClothingDrysuit ClothingCategory = "drysuit"
)

// VictimProfile is the survival estimator's input profile (spec.md §3, §6).
type VictimProfile struct {
	Age      *int             `json:"age,omitempty"`
	Gender   string           `json:"gender,omitempty"`
	HasPFD   bool             `json:"has_pfd"`
	Clothing ClothingCategory `json:"clothing,omitempty"`
}

// SimulationConfig is the per-request configuration of spec.md §3 and §6.
type SimulationConfig struct {
	LKP             geo.Point     `json:"lkp"`
	ObjectType      ObjectType    `json:"object_type"`
	ParticleCount   int           `json:"particle_count"`
	DurationHours   float64       `json:"duration_hours"`
	TimeStepSeconds float64       `json:"time_step_seconds"`
	InitialSpreadKm float64       `json:"initial_spread_km"`
	VictimProfile   VictimProfile `json:"victim_profile"`
}

// RecommendedParticleCap is the recommended maximum particle_count
// (spec.md §6); requests above it are still accepted, not rejected.
const RecommendedParticleCap = 200000

// WithDefaults returns a copy of c with spec.md §3/§6 defaults applied to
// zero-valued fields.
func (c SimulationConfig) WithDefaults() SimulationConfig {
	if c.ObjectType == "" {
		c.ObjectType = ObjectPersonInWater
	}
	if c.ParticleCount == 0 {
		c.ParticleCount = 10000
	}
	if c.DurationHours == 0 {
		c.DurationHours = 72
	}
	if c.TimeStepSeconds == 0 {
		c.TimeStepSeconds = 600
	}
	if c.InitialSpreadKm == 0 {
		c.InitialSpreadKm = 0.1
	}
	return c
}

// Validate checks the configuration against spec.md §7's
// ConfigurationInvalid conditions.
func (c SimulationConfig) Validate() error {
	if c.LKP.Lat < -90 || c.LKP.Lat > 90 {
		return fmt.Errorf("lkp latitude out of range: %f", c.LKP.Lat)
	}
	if c.LKP.Lng < -180 || c.LKP.Lng > 180 {
		return fmt.Errorf("lkp longitude out of range: %f", c.LKP.Lng)
	}
	if !c.ObjectType.IsValid() {
		return fmt.Errorf("unknown object type: %q", c.ObjectType)
	}
	if c.DurationHours <= 0 {
		return fmt.Errorf("duration_hours must be positive, got %f", c.DurationHours)
	}
	if c.ParticleCount <= 0 {
		return fmt.Errorf("particle_count must be positive, got %d", c.ParticleCount)
	}
	if c.TimeStepSeconds <= 0 {
		return fmt.Errorf("time_step_seconds must be positive, got %f", c.TimeStepSeconds)
	}
	return nil
}
