package services

import (
	"math"

	"carbon-footprint-system/models"
)

// EmissionLevel classifies a single activity's emission against
// category-specific thresholds.
type EmissionLevel string

const (
	EmissionLow    EmissionLevel = "low"
	EmissionMedium EmissionLevel = "medium"
	EmissionHigh   EmissionLevel = "high"
)

// ScoreResult is what a scoring strategy produces for one activity. Points is
// always set (possibly 0); Level and Tips are only populated by the feedback
// strategy.
type ScoreResult struct {
	Points int           `json:"points_earned"`
	Level  EmissionLevel `json:"level,omitempty"`
	Tips   []string      `json:"tips,omitempty"`
}

// ScoringStrategy turns (category, emission, consumption) into a deterministic
// score. Implementations hold no external state beyond their threshold tables.
type ScoringStrategy interface {
	Name() string
	Score(category models.FactorCategory, emission, consumption float64) ScoreResult
}

// StrategyFromName resolves the SCORING_STRATEGY setting. Unknown or empty
// names fall back to flat-rate.
func StrategyFromName(name string) ScoringStrategy {
	switch name {
	case "tiered":
		return TieredBonusStrategy{}
	case "weekly":
		return WeeklyDeltaStrategy{}
	case "feedback":
		return FeedbackStrategy{}
	default:
		return FlatRateStrategy{}
	}
}

// FlatRateStrategy awards round(emission * 10) points per activity.
type FlatRateStrategy struct{}

func (FlatRateStrategy) Name() string { return "flat" }

func (FlatRateStrategy) Score(_ models.FactorCategory, emission, _ float64) ScoreResult {
	return ScoreResult{Points: int(math.Round(emission * 10))}
}

// tieredBracket holds the per-category base points and the emission-intensity
// (kg CO2e per consumed unit) cutoffs for the efficiency bonus.
type tieredBracket struct {
	base      int
	lowCutoff float64
	midCutoff float64
	lowBonus  int
	midBonus  int
}

var tieredBrackets = map[models.FactorCategory]tieredBracket{
	models.CategoryTransport: {base: 10, lowCutoff: 0.12, midCutoff: 0.20, lowBonus: 20, midBonus: 10},
	models.CategoryEnergy:    {base: 8, lowCutoff: 0.90, midCutoff: 1.60, lowBonus: 15, midBonus: 8},
	models.CategoryFood:      {base: 6, lowCutoff: 2.5, midCutoff: 8.0, lowBonus: 15, midBonus: 8},
}

// TieredBonusStrategy awards base points per category plus an efficiency bonus
// when emission per unit of consumption falls under the bracket cutoffs.
// Results are clamped to [5, 100].
type TieredBonusStrategy struct{}

func (TieredBonusStrategy) Name() string { return "tiered" }

func (TieredBonusStrategy) Score(category models.FactorCategory, emission, consumption float64) ScoreResult {
	bracket, ok := tieredBrackets[category]
	if !ok {
		return ScoreResult{Points: 5}
	}
	points := bracket.base
	if consumption > 0 {
		intensity := emission / consumption
		switch {
		case intensity <= bracket.lowCutoff:
			points += bracket.lowBonus
		case intensity <= bracket.midCutoff:
			points += bracket.midBonus
		}
	}
	return ScoreResult{Points: clampPoints(points, 5, 100)}
}

// WeeklyDeltaStrategy defers all scoring to the weekly comparison job:
// per-activity points are always zero.
type WeeklyDeltaStrategy struct{}

func (WeeklyDeltaStrategy) Name() string { return "weekly" }

func (WeeklyDeltaStrategy) Score(models.FactorCategory, float64, float64) ScoreResult {
	return ScoreResult{Points: 0}
}

// WeeklyImprovementPoints compares the trailing 7-day emission total against
// the prior 7 days. An improvement earns points proportional to the reduction
// percentage, clamped to [5, 50]. No improvement (or no baseline) earns zero.
func WeeklyImprovementPoints(thisWeek, lastWeek float64) int {
	if lastWeek <= 0 {
		return 0
	}
	delta := lastWeek - thisWeek
	if delta <= 0 {
		return 0
	}
	return clampPoints(int(math.Round(delta/lastWeek*50)), 5, 50)
}

// feedbackThresholds are the low/medium emission cutoffs per category, in kg
// CO2e for a single activity. At or under the first value is low, at or under
// the second is medium, anything above is high.
var feedbackThresholds = map[models.FactorCategory][2]float64{
	models.CategoryTransport: {2, 8},
	models.CategoryEnergy:    {3, 10},
	models.CategoryFood:      {2, 7},
}

// CategoryTips are canned improvement suggestions surfaced with qualitative
// feedback and on the dashboard for the user's highest-emitting category.
var CategoryTips = map[models.FactorCategory][]string{
	models.CategoryTransport: {
		"Try using public transport for short trips.",
		"Consider carpooling with friends or colleagues.",
		"Ensure proper tyre pressure to improve mileage.",
	},
	models.CategoryEnergy: {
		"Turn off appliances when not in use.",
		"Use LED bulbs to reduce energy consumption.",
		"Keep AC temperature at 24-26C for efficiency.",
	},
	models.CategoryFood: {
		"Reduce red meat intake to lower carbon footprint.",
		"Choose seasonal and local produce.",
		"Avoid food waste by planning meals beforehand.",
	},
}

// GeneralTips apply when no category stands out.
var GeneralTips = []string{
	"Repair before replacing household items.",
	"Donate or recycle items instead of throwing away.",
	"Avoid unnecessary purchases where possible.",
}

// FeedbackStrategy awards no points; it classifies the activity's emission
// into low/medium/high bands and returns improvement tips for the category.
type FeedbackStrategy struct{}

func (FeedbackStrategy) Name() string { return "feedback" }

func (FeedbackStrategy) Score(category models.FactorCategory, emission, _ float64) ScoreResult {
	level := EmissionHigh
	if t, ok := feedbackThresholds[category]; ok {
		switch {
		case emission <= t[0]:
			level = EmissionLow
		case emission <= t[1]:
			level = EmissionMedium
		}
	}
	tips, ok := CategoryTips[category]
	if !ok {
		tips = GeneralTips
	}
	return ScoreResult{Points: 0, Level: level, Tips: tips}
}

func clampPoints(p, lo, hi int) int {
	if p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}
