package services

import (
	"log"
	"time"

	"carbon-footprint-system/models"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// StartScheduler runs the background jobs: a daily challenge-progress sweep,
// and, under the weekly scoring strategy, the weekly improvement award.
func StartScheduler(db *gorm.DB, challenges *ChallengeService, strategy ScoringStrategy) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			if err := challenges.SweepProgress(); err != nil {
				log.Printf("[Scheduler] challenge sweep failed: %v", err)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	if strategy.Name() == "weekly" {
		_, err = sched.NewJob(
			gocron.DurationJob(7*24*time.Hour),
			gocron.NewTask(func() {
				if err := AwardWeeklyPoints(db); err != nil {
					log.Printf("[Scheduler] weekly scoring failed: %v", err)
				}
			}),
		)
		if err != nil {
			return nil, err
		}
	}

	sched.Start()
	return sched, nil
}

// AwardWeeklyPoints credits every recently active user whose trailing 7-day
// emission total improved on the prior 7 days, proportional to the reduction
// and clamped to [5, 50].
func AwardWeeklyPoints(db *gorm.DB) error {
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	fortnightAgo := now.AddDate(0, 0, -14)

	var userIDs []string
	if err := db.Model(&models.Activity{}).
		Where("activity_date >= ?", fortnightAgo).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error; err != nil {
		return err
	}

	for _, userID := range userIDs {
		var thisWeek, lastWeek float64
		if err := db.Model(&models.Activity{}).
			Where("user_id = ? AND activity_date >= ?", userID, weekAgo).
			Select("COALESCE(SUM(calculated_emission), 0)").
			Scan(&thisWeek).Error; err != nil {
			return err
		}
		if err := db.Model(&models.Activity{}).
			Where("user_id = ? AND activity_date >= ? AND activity_date < ?", userID, fortnightAgo, weekAgo).
			Select("COALESCE(SUM(calculated_emission), 0)").
			Scan(&lastWeek).Error; err != nil {
			return err
		}

		points := WeeklyImprovementPoints(thisWeek, lastWeek)
		if points == 0 {
			continue
		}
		if err := db.Model(&models.User{}).
			Where("id = ?", userID).
			Update("total_points", gorm.Expr("total_points + ?", points)).Error; err != nil {
			return err
		}
		log.Printf("Weekly scoring: user %s improved %.2f -> %.2f kg, %d points awarded",
			userID, lastWeek, thisWeek, points)
	}
	return nil
}
