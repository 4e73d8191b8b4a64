package survival

import (
	"testing"

	"github.com/sarops/driftsim/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestEstimateMatchesScenarioFourExactly(t *testing.T) {
	age := 40
	profile := config.VictimProfile{Age: &age, HasPFD: false, Clothing: config.ClothingLight}
	a := Estimate(profile, 55, 4)

	assert.InDelta(t, 0.486, a.Probability, 0.001)
	assert.Equal(t, UrgencyUrgent, a.Urgency)
	assert.InDelta(t, 2.92, a.TimeRemainingH, 0.01)
}

func TestEstimateMissingAgeDefaultsTo40(t *testing.T) {
	withAge := Estimate(config.VictimProfile{Clothing: config.ClothingLight}, 55, 4)
	age := 40
	withExplicit := Estimate(config.VictimProfile{Age: &age, Clothing: config.ClothingLight}, 55, 4)
	assert.Equal(t, withExplicit.Probability, withAge.Probability)
}

func TestProbabilityIsClampedToUnitInterval(t *testing.T) {
	age := 25
	profile := config.VictimProfile{Age: &age, HasPFD: true, Clothing: config.ClothingDrysuit}
	a := Estimate(profile, 85, 0.5)
	assert.LessOrEqual(t, a.Probability, 1.0)
	assert.GreaterOrEqual(t, a.Probability, 0.0)
}

func TestUrgencyIsMonotoneStepFunctionOfProbability(t *testing.T) {
	assert.Equal(t, UrgencyCritical, urgencyOf(0.1))
	assert.Equal(t, UrgencyUrgent, urgencyOf(0.4))
	assert.Equal(t, UrgencyHigh, urgencyOf(0.6))
	assert.Equal(t, UrgencyModerate, urgencyOf(0.9))
}

func TestHypothermiaStageProgression(t *testing.T) {
	age := 30
	profile := config.VictimProfile{Age: &age, Clothing: config.ClothingNormal}

	coldShock := Estimate(profile, 45, 0.01)
	assert.Equal(t, StageColdShock, coldShock.HypothermiaStage)

	swimFailure := Estimate(profile, 45, 0.2)
	assert.Equal(t, StageSwimFailure, swimFailure.HypothermiaStage)

	severe := Estimate(profile, 45, 48)
	assert.Equal(t, StageSevereHypothermia, severe.HypothermiaStage)
}

func TestClothingBonusUnknownCategoryDefaultsToZero(t *testing.T) {
	age := 30
	base := Estimate(config.VictimProfile{Age: &age, Clothing: config.ClothingCategory("unknown")}, 65, 2)
	normal := Estimate(config.VictimProfile{Age: &age, Clothing: config.ClothingLight}, 65, 2)
	assert.Equal(t, normal.Probability, base.Probability)
}
