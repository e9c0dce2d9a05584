package services

import (
	"errors"
	"math"
	"time"

	"carbon-footprint-system/models"

	"gorm.io/gorm"
)

type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

// CategoryBreakdown is one row of the per-category rollup.
type CategoryBreakdown struct {
	Category      models.FactorCategory `json:"category"`
	ActivityCount int64                 `json:"activity_count"`
	TotalEmission float64               `json:"total_emission"`
	TotalPoints   int64                 `json:"total_points"`
}

// WeeklySummary splits the trailing 14 days into this week vs the prior week.
type WeeklySummary struct {
	ThisWeekKg       float64  `json:"this_week_kg"`
	LastWeekKg       float64  `json:"last_week_kg"`
	DeltaKg          float64  `json:"delta_kg"`
	ChangePercentage float64  `json:"change_percentage"`
	PointsAward      int      `json:"points_award"`
	Tips             []string `json:"tips"`
}

// Dashboard is the read-only rollup for one user. No write side effects.
type Dashboard struct {
	User struct {
		FirstName   string    `json:"first_name"`
		LastName    string    `json:"last_name"`
		TotalPoints int       `json:"total_points"`
		DateJoined  time.Time `json:"date_joined"`
	} `json:"user"`
	Stats struct {
		TotalActivities       int64   `json:"total_activities"`
		TotalEmission         float64 `json:"total_emission"`
		TotalPointsEarned     int64   `json:"total_points_earned"`
		JoinedChallengesCount int64   `json:"joined_challenges_count"`
	} `json:"stats"`
	RecentActivities  []models.Activity   `json:"recent_activities"`
	CategoryBreakdown []CategoryBreakdown `json:"category_breakdown"`
	Weekly            WeeklySummary       `json:"weekly"`
}

func (s *DashboardService) Build(userID string) (*Dashboard, error) {
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	d := &Dashboard{}
	d.User.FirstName = user.FirstName
	d.User.LastName = user.LastName
	d.User.TotalPoints = user.TotalPoints
	d.User.DateJoined = user.CreatedAt

	type totals struct {
		Count    int64
		Emission float64
		Points   int64
	}
	var t totals
	if err := s.DB.Model(&models.Activity{}).
		Where("user_id = ?", userID).
		Select("COUNT(*) AS count, COALESCE(SUM(calculated_emission), 0) AS emission, COALESCE(SUM(points_earned), 0) AS points").
		Scan(&t).Error; err != nil {
		return nil, err
	}
	d.Stats.TotalActivities = t.Count
	d.Stats.TotalEmission = round2(t.Emission)
	d.Stats.TotalPointsEarned = t.Points

	if err := s.DB.Model(&models.ChallengeMembership{}).
		Where("user_id = ?", userID).
		Count(&d.Stats.JoinedChallengesCount).Error; err != nil {
		return nil, err
	}

	d.RecentActivities = []models.Activity{}
	if err := s.DB.
		Preload("Factor").
		Where("user_id = ?", userID).
		Order("activity_date DESC, created_at DESC").
		Limit(5).
		Find(&d.RecentActivities).Error; err != nil {
		return nil, err
	}

	d.CategoryBreakdown = []CategoryBreakdown{}
	if err := s.DB.Model(&models.Activity{}).
		Joins("INNER JOIN emission_factors ef ON ef.id = activities.factor_id").
		Where("activities.user_id = ?", userID).
		Group("ef.category").
		Select("ef.category AS category, COUNT(*) AS activity_count, COALESCE(SUM(activities.calculated_emission), 0) AS total_emission, COALESCE(SUM(activities.points_earned), 0) AS total_points").
		Scan(&d.CategoryBreakdown).Error; err != nil {
		return nil, err
	}

	weekly, err := s.weeklySummary(userID)
	if err != nil {
		return nil, err
	}
	d.Weekly = *weekly

	return d, nil
}

// weeklySummary compares the trailing 7 days against the 7 before them and
// picks tips for the highest-emitting category.
func (s *DashboardService) weeklySummary(userID string) (*WeeklySummary, error) {
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	fortnightAgo := now.AddDate(0, 0, -14)

	thisWeek, err := s.emissionSum(userID, weekAgo, now)
	if err != nil {
		return nil, err
	}
	lastWeek, err := s.emissionSum(userID, fortnightAgo, weekAgo)
	if err != nil {
		return nil, err
	}

	w := &WeeklySummary{
		ThisWeekKg:  round2(thisWeek),
		LastWeekKg:  round2(lastWeek),
		DeltaKg:     round2(lastWeek - thisWeek),
		PointsAward: WeeklyImprovementPoints(thisWeek, lastWeek),
	}
	if lastWeek > 0 {
		w.ChangePercentage = round2((lastWeek - thisWeek) / lastWeek * 100)
	}

	var top struct {
		Category models.FactorCategory
	}
	err = s.DB.Model(&models.Activity{}).
		Joins("INNER JOIN emission_factors ef ON ef.id = activities.factor_id").
		Where("activities.user_id = ?", userID).
		Group("ef.category").
		Order("SUM(activities.calculated_emission) DESC").
		Limit(1).
		Select("ef.category AS category").
		Scan(&top).Error
	if err != nil {
		return nil, err
	}
	if tips, ok := CategoryTips[top.Category]; ok {
		w.Tips = tips
	} else {
		w.Tips = GeneralTips
	}

	return w, nil
}

func (s *DashboardService) emissionSum(userID string, from, to time.Time) (float64, error) {
	var sum float64
	err := s.DB.Model(&models.Activity{}).
		Where("user_id = ? AND activity_date >= ? AND activity_date < ?", userID, from, to).
		Select("COALESCE(SUM(calculated_emission), 0)").
		Scan(&sum).Error
	return sum, err
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
