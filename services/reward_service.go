package services

import (
	"errors"
	"log"
	"time"

	"carbon-footprint-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RewardService struct {
	DB *gorm.DB
}

func NewRewardService(db *gorm.DB) *RewardService {
	return &RewardService{DB: db}
}

// Catalog lists in-stock rewards, cheapest first.
func (s *RewardService) Catalog() ([]models.Reward, error) {
	rewards := []models.Reward{}
	err := s.DB.Where("stock_count > 0").Order("points_required ASC").Find(&rewards).Error
	return rewards, err
}

// RedemptionResult carries the created record plus the caller's new balance.
type RedemptionResult struct {
	Redemption *models.Redemption `json:"redemption"`
	RewardName string             `json:"reward_name"`
	NewBalance int                `json:"new_balance"`
}

// Redeem exchanges points for one unit of a reward. All four sub-steps
// (stock check, balance check, decrements, redemption insert) run under one
// transaction. Both decrements are guarded conditional updates, so two
// concurrent redemptions of the last unit cannot both succeed and the balance
// can never go negative.
func (s *RewardService) Redeem(userID, rewardID string) (*RedemptionResult, error) {
	if userID == "" || rewardID == "" {
		return nil, ErrInvalidInput
	}

	var out RedemptionResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var reward models.Reward
		if err := tx.Where("id = ?", rewardID).First(&reward).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if reward.StockCount <= 0 {
			return ErrOutOfStock
		}

		res := tx.Model(&models.Reward{}).
			Where("id = ? AND stock_count > 0", rewardID).
			Update("stock_count", gorm.Expr("stock_count - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOutOfStock
		}

		res = tx.Model(&models.User{}).
			Where("id = ? AND total_points >= ?", userID, reward.PointsRequired).
			Update("total_points", gorm.Expr("total_points - ?", reward.PointsRequired))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientPoints
		}

		redemption := &models.Redemption{
			ID:          uuid.NewString(),
			UserID:      userID,
			RewardID:    rewardID,
			PointsSpent: reward.PointsRequired,
			RedeemedAt:  time.Now(),
		}
		if err := tx.Create(redemption).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}
		out = RedemptionResult{
			Redemption: redemption,
			RewardName: reward.Name,
			NewBalance: user.TotalPoints,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("User %s redeemed %q for %d points (balance now %d)",
		userID, out.RewardName, out.Redemption.PointsSpent, out.NewBalance)
	return &out, nil
}

// History returns the caller's redemptions, newest first, with reward
// metadata preloaded.
func (s *RewardService) History(userID string) ([]models.Redemption, error) {
	redemptions := []models.Redemption{}
	err := s.DB.
		Preload("Reward").
		Where("user_id = ?", userID).
		Order("redeemed_at DESC").
		Find(&redemptions).Error
	return redemptions, err
}
