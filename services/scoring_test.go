package services

import (
	"testing"

	"carbon-footprint-system/models"

	"github.com/stretchr/testify/assert"
)

func TestStrategyFromName(t *testing.T) {
	assert.Equal(t, "flat", StrategyFromName("").Name())
	assert.Equal(t, "flat", StrategyFromName("flat").Name())
	assert.Equal(t, "flat", StrategyFromName("nonsense").Name())
	assert.Equal(t, "tiered", StrategyFromName("tiered").Name())
	assert.Equal(t, "weekly", StrategyFromName("weekly").Name())
	assert.Equal(t, "feedback", StrategyFromName("feedback").Name())
}

func TestFlatRateStrategy(t *testing.T) {
	s := FlatRateStrategy{}

	assert.Equal(t, 210, s.Score(models.CategoryTransport, 21.0, 100).Points)
	assert.Equal(t, 0, s.Score(models.CategoryEnergy, 0, 1).Points)
	assert.Equal(t, 3, s.Score(models.CategoryFood, 0.25, 1).Points)
}

func TestTieredBonusStrategy(t *testing.T) {
	s := TieredBonusStrategy{}

	// Train at 0.04 kg/km is under the low-intensity cutoff.
	assert.Equal(t, 30, s.Score(models.CategoryTransport, 4.0, 100).Points)
	// Motorbike at 0.11 kg/km is still under the 0.12 cutoff.
	assert.Equal(t, 30, s.Score(models.CategoryTransport, 11.0, 100).Points)
	// Bus at 0.10... petrol car at 0.21 kg/km falls past both cutoffs.
	assert.Equal(t, 10, s.Score(models.CategoryTransport, 21.0, 100).Points)
	// Beef at 27 kg/kg earns base only.
	assert.Equal(t, 6, s.Score(models.CategoryFood, 27.0, 1).Points)
	// Vegetables at 2 kg/kg fall under the food low cutoff.
	assert.Equal(t, 21, s.Score(models.CategoryFood, 2.0, 1).Points)
	// Unknown category still earns the floor.
	assert.Equal(t, 5, s.Score("Unknown", 10, 1).Points)
	// Zero consumption cannot produce an intensity bonus.
	assert.Equal(t, 10, s.Score(models.CategoryTransport, 0, 0).Points)
}

func TestWeeklyDeltaStrategyPerActivity(t *testing.T) {
	s := WeeklyDeltaStrategy{}
	assert.Equal(t, 0, s.Score(models.CategoryTransport, 50, 100).Points)
}

func TestWeeklyImprovementPoints(t *testing.T) {
	// Halving emissions: 50/100 -> 25 points.
	assert.Equal(t, 25, WeeklyImprovementPoints(50, 100))
	// Tiny improvement clamps up to 5.
	assert.Equal(t, 5, WeeklyImprovementPoints(99, 100))
	// Full elimination clamps at 50.
	assert.Equal(t, 50, WeeklyImprovementPoints(0, 100))
	// No improvement earns nothing.
	assert.Equal(t, 0, WeeklyImprovementPoints(100, 100))
	assert.Equal(t, 0, WeeklyImprovementPoints(120, 100))
	// No baseline earns nothing.
	assert.Equal(t, 0, WeeklyImprovementPoints(10, 0))
}

func TestFeedbackStrategy(t *testing.T) {
	s := FeedbackStrategy{}

	low := s.Score(models.CategoryTransport, 1.5, 10)
	assert.Equal(t, 0, low.Points)
	assert.Equal(t, EmissionLow, low.Level)
	assert.Equal(t, CategoryTips[models.CategoryTransport], low.Tips)

	medium := s.Score(models.CategoryTransport, 5, 25)
	assert.Equal(t, EmissionMedium, medium.Level)

	high := s.Score(models.CategoryTransport, 21, 100)
	assert.Equal(t, EmissionHigh, high.Level)

	// Boundary values sit in the lower band.
	assert.Equal(t, EmissionLow, s.Score(models.CategoryEnergy, 3, 1).Level)
	assert.Equal(t, EmissionMedium, s.Score(models.CategoryEnergy, 10, 1).Level)

	unknown := s.Score("Unknown", 1, 1)
	assert.Equal(t, EmissionHigh, unknown.Level)
	assert.Equal(t, GeneralTips, unknown.Tips)
}
