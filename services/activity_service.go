package services

import (
	"errors"
	"log"
	"time"

	"carbon-footprint-system/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// emissionPrecision is the decimal precision emissions are stored at.
const emissionPrecision = 4

type ActivityService struct {
	DB         *gorm.DB
	Strategy   ScoringStrategy
	Challenges *ChallengeService
}

func NewActivityService(db *gorm.DB, strategy ScoringStrategy, challenges *ChallengeService) *ActivityService {
	return &ActivityService{DB: db, Strategy: strategy, Challenges: challenges}
}

// ComputeEmission multiplies consumption by the factor and rounds to 4 decimal
// places, in decimal arithmetic so 100 * 0.21 stores as exactly 21.
func ComputeEmission(consumption, factor float64) float64 {
	return decimal.NewFromFloat(consumption).
		Mul(decimal.NewFromFloat(factor)).
		Round(emissionPrecision).
		InexactFloat64()
}

// Record validates and persists one activity, scores it with the configured
// strategy, and credits any points in the same transaction as the insert. The
// challenge progress recompute afterwards is best-effort: its failure is
// logged and never aborts the recorded activity.
func (s *ActivityService) Record(userID, factorID string, consumption float64, date time.Time) (*models.Activity, *ScoreResult, error) {
	if userID == "" || factorID == "" || date.IsZero() {
		return nil, nil, ErrInvalidInput
	}
	if consumption <= 0 {
		return nil, nil, ErrInvalidInput
	}

	var factor models.EmissionFactor
	if err := s.DB.Where("id = ?", factorID).First(&factor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidActivityType
		}
		return nil, nil, err
	}

	emission := ComputeEmission(consumption, factor.EmissionFactor)
	result := s.Strategy.Score(factor.Category, emission, consumption)

	activity := &models.Activity{
		ID:                 uuid.NewString(),
		UserID:             userID,
		FactorID:           factorID,
		ActivityDate:       date,
		ConsumptionValue:   consumption,
		CalculatedEmission: emission,
		PointsEarned:       result.Points,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(activity).Error; err != nil {
			return err
		}
		if result.Points > 0 {
			return tx.Model(&models.User{}).
				Where("id = ?", userID).
				Update("total_points", gorm.Expr("total_points + ?", result.Points)).Error
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if s.Challenges != nil {
		if err := s.Challenges.RecomputeProgress(userID); err != nil {
			log.Printf("Challenge progress recompute failed for user %s: %v", userID, err)
		}
	}

	return activity, &result, nil
}

// History returns the caller's activities, newest first, with factor metadata
// preloaded.
func (s *ActivityService) History(userID string) ([]models.Activity, error) {
	activities := []models.Activity{}
	err := s.DB.
		Preload("Factor").
		Where("user_id = ?", userID).
		Order("activity_date DESC, created_at DESC").
		Find(&activities).Error
	return activities, err
}

// Factors lists the emission factor table ordered for display.
func (s *ActivityService) Factors() ([]models.EmissionFactor, error) {
	factors := []models.EmissionFactor{}
	err := s.DB.Order("category, activity_name").Find(&factors).Error
	return factors, err
}
