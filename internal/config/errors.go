package config

import "errors"

// Sentinel error kinds from spec.md §7. Packages wrap these with
// fmt.Errorf("...: %w", ErrX) so callers can errors.Is against the kind
// while retaining a descriptive message.
//
// Transient per-particle conditions that spec.md §4.4 says must not fail
// the simulation — a geo-data provider miss, a diverged dispersion solve,
// a skipped NaN displacement — are never surfaced as errors at all; they
// are tallied in simdriver.Stats (SyntheticGeoCount, NumericalDivergedCount,
// InternalPhysicsErrors) and read back from the completed Results.
var (
	// ErrConfigurationInvalid signals a missing or invalid simulation
	// configuration (bad LKP, unknown object type, non-positive duration).
	ErrConfigurationInvalid = errors.New("configuration invalid")

	// ErrNotFound signals an unknown simulation id or snapshot hour.
	ErrNotFound = errors.New("not found")

	// ErrNotReady signals that results were requested before completion.
	ErrNotReady = errors.New("not ready")

	// ErrInternalPhysicsError signals that the simulation's goroutine
	// panicked mid-step; the simulation is marked failed and does not
	// resume.
	ErrInternalPhysicsError = errors.New("internal physics error")
)
