package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"carbon-footprint-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChallengeService struct {
	DB *gorm.DB
}

func NewChallengeService(db *gorm.DB) *ChallengeService {
	return &ChallengeService{DB: db}
}

// ChallengeWithProgress is a challenge row decorated with the caller's
// membership state for the "mine" listing.
type ChallengeWithProgress struct {
	models.Challenge
	Status           models.MembershipStatus `json:"status"`
	ProgressEmission float64                 `json:"progress_emission"`
	JoinedAt         time.Time               `json:"joined_at"`
	CompletedAt      *time.Time              `json:"completed_at,omitempty"`
}

// ChallengeListing splits the active catalog into challenges the user has
// joined and the rest.
type ChallengeListing struct {
	Available []models.Challenge      `json:"available"`
	Mine      []ChallengeWithProgress `json:"mine"`
}

func (s *ChallengeService) List(userID string) (*ChallengeListing, error) {
	joinedIDs := s.DB.Model(&models.ChallengeMembership{}).
		Select("challenge_id").
		Where("user_id = ?", userID)

	available := []models.Challenge{}
	if err := s.DB.
		Where("is_active = ? AND id NOT IN (?)", true, joinedIDs).
		Order("start_date DESC").
		Find(&available).Error; err != nil {
		return nil, err
	}

	var memberships []models.ChallengeMembership
	if err := s.DB.
		Preload("Challenge").
		Where("user_id = ?", userID).
		Order("joined_at DESC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}

	mine := make([]ChallengeWithProgress, 0, len(memberships))
	for _, m := range memberships {
		if m.Challenge == nil {
			continue
		}
		mine = append(mine, ChallengeWithProgress{
			Challenge:        *m.Challenge,
			Status:           m.Status,
			ProgressEmission: m.ProgressEmission,
			JoinedAt:         m.JoinedAt,
			CompletedAt:      m.CompletedAt,
		})
	}

	return &ChallengeListing{Available: available, Mine: mine}, nil
}

// Join creates a membership. The challenge must exist, be active and not yet
// ended; a second join of the same challenge fails with ErrAlreadyJoined.
func (s *ChallengeService) Join(userID, challengeID string) (*models.ChallengeMembership, error) {
	if userID == "" || challengeID == "" {
		return nil, ErrInvalidInput
	}

	var challenge models.Challenge
	if err := s.DB.Where("id = ? AND is_active = ?", challengeID, true).First(&challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if challenge.EndDate.Before(time.Now()) {
		return nil, ErrNotFound
	}

	var existing models.ChallengeMembership
	err := s.DB.Where("user_id = ? AND challenge_id = ?", userID, challengeID).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyJoined
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	membership := &models.ChallengeMembership{
		ID:          uuid.NewString(),
		UserID:      userID,
		ChallengeID: challengeID,
		JoinedAt:    time.Now(),
		Status:      models.MembershipJoined,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(membership).Error; err != nil {
			return err
		}
		return tx.Model(&models.Challenge{}).
			Where("id = ?", challengeID).
			Update("participant_count", gorm.Expr("participant_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return membership, nil
}

// Leave removes a non-completed membership. Completed memberships are terminal
// and behave as if not joined.
func (s *ChallengeService) Leave(userID, challengeID string) error {
	if userID == "" || challengeID == "" {
		return ErrInvalidInput
	}

	var membership models.ChallengeMembership
	if err := s.DB.Where("user_id = ? AND challenge_id = ?", userID, challengeID).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotJoined
		}
		return err
	}
	if membership.Status == models.MembershipCompleted {
		return ErrNotJoined
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND status <> ?", membership.ID, models.MembershipCompleted).
			Delete(&models.ChallengeMembership{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotJoined
		}
		return tx.Model(&models.Challenge{}).
			Where("id = ? AND participant_count > 0", challengeID).
			Update("participant_count", gorm.Expr("participant_count - 1")).Error
	})
}

// RecomputeProgress re-derives progress for every non-completed membership of
// the user: the sum of emissions logged between joining (or the challenge
// start, whichever is later) and now (or the challenge end, whichever is
// earlier). Crossing the target transitions the membership to completed
// exactly once and credits the challenge's reward points; re-running after
// completion awards nothing.
func (s *ChallengeService) RecomputeProgress(userID string) error {
	var memberships []models.ChallengeMembership
	if err := s.DB.
		Preload("Challenge").
		Where("user_id = ? AND status <> ?", userID, models.MembershipCompleted).
		Find(&memberships).Error; err != nil {
		return err
	}

	now := time.Now()
	for _, m := range memberships {
		c := m.Challenge
		if c == nil || !c.IsActive || c.EndDate.Before(now.Truncate(24*time.Hour)) {
			continue
		}

		from := m.JoinedAt
		if c.StartDate.After(from) {
			from = c.StartDate
		}
		to := now
		if c.EndDate.Before(to) {
			to = c.EndDate
		}

		var total float64
		if err := s.DB.Model(&models.Activity{}).
			Where("user_id = ? AND activity_date >= ? AND activity_date <= ?", userID, from, to).
			Select("COALESCE(SUM(calculated_emission), 0)").
			Scan(&total).Error; err != nil {
			return fmt.Errorf("sum emissions for challenge %s: %w", c.ID, err)
		}

		if err := s.applyProgress(&m, c, total, now); err != nil {
			return err
		}
	}
	return nil
}

func (s *ChallengeService) applyProgress(m *models.ChallengeMembership, c *models.Challenge, total float64, now time.Time) error {
	if total < c.TargetReduction {
		status := m.Status
		if total > 0 {
			status = models.MembershipInProgress
		}
		return s.DB.Model(&models.ChallengeMembership{}).
			Where("id = ? AND status <> ?", m.ID, models.MembershipCompleted).
			Updates(map[string]interface{}{
				"progress_emission": total,
				"status":            status,
			}).Error
	}

	// Target met: the guarded update makes the completion transition, and
	// therefore the point credit, happen at most once.
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ChallengeMembership{}).
			Where("id = ? AND status <> ?", m.ID, models.MembershipCompleted).
			Updates(map[string]interface{}{
				"progress_emission": total,
				"status":            models.MembershipCompleted,
				"completed_at":      now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", m.UserID).
			Update("total_points", gorm.Expr("total_points + ?", c.RewardPoints)).Error; err != nil {
			return err
		}
		log.Printf("Challenge %q completed by user %s, %d points awarded", c.Name, m.UserID, c.RewardPoints)
		return nil
	})
}

// SweepProgress recomputes progress for every user holding a non-completed
// membership. Run by the daily scheduler job to catch completions that the
// activity-insert trigger missed (e.g. challenges ending).
func (s *ChallengeService) SweepProgress() error {
	var userIDs []string
	if err := s.DB.Model(&models.ChallengeMembership{}).
		Where("status <> ?", models.MembershipCompleted).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error; err != nil {
		return err
	}
	for _, id := range userIDs {
		if err := s.RecomputeProgress(id); err != nil {
			log.Printf("[Sweep] progress recompute failed for user %s: %v", id, err)
		}
	}
	return nil
}
