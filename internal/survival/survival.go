// Package survival implements the piecewise survival estimator of
// spec.md §4.7: a pure function of victim profile, water temperature,
// and elapsed time, producing a survival probability, time remaining,
// urgency classification, and hypothermia stage.
package survival

import "github.com/sarops/driftsim/internal/config"

// Urgency classifies the survival probability into an actionable tier
// (spec.md §4.7).
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyUrgent   Urgency = "urgent"
	UrgencyHigh     Urgency = "high"
	UrgencyModerate Urgency = "moderate"
)

// HypothermiaStage classifies cold-water exposure progression
// (spec.md §4.7).
type HypothermiaStage string

const (
	StageColdShock         HypothermiaStage = "cold-shock"
	StageSwimFailure       HypothermiaStage = "swim-failure"
	StageMildHypothermia   HypothermiaStage = "mild-hypothermia"
	StageSevereHypothermia HypothermiaStage = "severe-hypothermia"
)

// Assessment is the output of Estimate (spec.md §4.7).
type Assessment struct {
	Probability      float64
	TimeRemainingH   float64
	Urgency          Urgency
	HypothermiaStage HypothermiaStage
}

// Estimate computes the survival assessment for a victim, given water
// temperature in °F and elapsed time in hours (spec.md §4.7).
func Estimate(profile config.VictimProfile, waterTempF float64, elapsedHours float64) Assessment {
	base := baseRate(profile.Age)
	temp := tempFactor(waterTempF)
	timeF := timeFactor(elapsedHours)
	pfdBonus := 0.0
	if profile.HasPFD {
		pfdBonus = 0.2
	}
	clothing := clothingBonus(profile.Clothing)

	p := clamp01(base*temp*timeF + pfdBonus + clothing)

	remaining := baseTime(waterTempF) * p

	return Assessment{
		Probability:      p,
		TimeRemainingH:   remaining,
		Urgency:          urgencyOf(p),
		HypothermiaStage: hypothermiaStage(waterTempF, elapsedHours, remaining),
	}
}

func baseRate(age *int) float64 {
	a := 40
	if age != nil {
		a = *age
	}
	switch {
	case a < 18:
		return 0.85
	case a < 30:
		return 0.90
	case a < 50:
		return 0.88
	case a < 65:
		return 0.80
	default:
		return 0.70
	}
}

func tempFactor(waterTempF float64) float64 {
	switch {
	case waterTempF > 80:
		return 1.0
	case waterTempF > 70:
		return 0.95
	case waterTempF > 60:
		return 0.85
	case waterTempF > 50:
		return 0.65
	case waterTempF > 40:
		return 0.40
	default:
		return 0.20
	}
}

func timeFactor(hours float64) float64 {
	switch {
	case hours < 1:
		return 1.0
	case hours < 3:
		return 0.95
	case hours < 6:
		return 0.85
	case hours < 12:
		return 0.70
	case hours < 24:
		return 0.50
	default:
		return 0.30
	}
}

func clothingBonus(c config.ClothingCategory) float64 {
	switch c {
	case config.ClothingNone:
		return -0.1
	case config.ClothingLight:
		return 0
	case config.ClothingNormal:
		return 0.05
	case config.ClothingHeavy:
		return 0.10
	case config.ClothingWetsuit:
		return 0.20
	case config.ClothingDrysuit:
		return 0.30
	default:
		return 0
	}
}

// baseTime is the timeRemaining base (hours) by water temperature band,
// sharing the tempFactor thresholds (spec.md §4.7).
func baseTime(waterTempF float64) float64 {
	switch {
	case waterTempF > 80:
		return 48
	case waterTempF > 70:
		return 24
	case waterTempF > 60:
		return 12
	case waterTempF > 50:
		return 6
	case waterTempF > 40:
		return 3
	default:
		return 1.5
	}
}

func urgencyOf(p float64) Urgency {
	switch {
	case p < 0.3:
		return UrgencyCritical
	case p < 0.5:
		return UrgencyUrgent
	case p < 0.75:
		return UrgencyHigh
	default:
		return UrgencyModerate
	}
}

// hypothermiaStage derives the exposure stage from water temperature and
// elapsed time (spec.md §4.7): cold-shock in the first three minutes;
// swim-failure within the first hour in warm water or 30 minutes in cold
// water; mild hypothermia while elapsed time stays under the 0.5-survival
// time-remaining horizon for this temperature; severe thereafter.
func hypothermiaStage(waterTempF, elapsedHours float64, timeRemainingH float64) HypothermiaStage {
	const threeMinutesH = 3.0 / 60.0
	const thirtyMinutesH = 30.0 / 60.0

	if elapsedHours < threeMinutesH {
		return StageColdShock
	}

	cold := waterTempF <= 60
	swimFailureWindow := 1.0
	if cold {
		swimFailureWindow = thirtyMinutesH
	}
	if elapsedHours < swimFailureWindow {
		return StageSwimFailure
	}

	halfSurvivalHorizon := baseTime(waterTempF) * 0.5
	if elapsedHours < halfSurvivalHorizon {
		return StageMildHypothermia
	}
	return StageSevereHypothermia
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
