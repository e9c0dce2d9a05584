package services

import (
	"testing"
	"time"

	"carbon-footprint-system/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory sqlite database with the full
// schema. A real SQL engine, not a mock, so transactions and rollbacks behave.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.EmissionFactor{},
		&models.Activity{},
		&models.Challenge{},
		&models.ChallengeMembership{},
		&models.Reward{},
		&models.Redemption{},
	)
	require.NoError(t, err, "migrate test database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, points int) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.NewString(),
		FirstName:    "Test",
		LastName:     "User",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		UserType:     models.UserTypeIndividual,
		TotalPoints:  points,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestFactor(t *testing.T, db *gorm.DB, name string, category models.FactorCategory, factor float64) *models.EmissionFactor {
	t.Helper()
	f := &models.EmissionFactor{
		ID:             uuid.NewString(),
		ActivityName:   name,
		Category:       category,
		Unit:           "kg CO2/unit",
		EmissionFactor: factor,
	}
	require.NoError(t, db.Create(f).Error)
	return f
}

func createTestActivity(t *testing.T, db *gorm.DB, userID, factorID string, emission float64, date time.Time) *models.Activity {
	t.Helper()
	a := &models.Activity{
		ID:                 uuid.NewString(),
		UserID:             userID,
		FactorID:           factorID,
		ActivityDate:       date,
		ConsumptionValue:   1,
		CalculatedEmission: emission,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func createTestChallenge(t *testing.T, db *gorm.DB, target float64, rewardPoints int) *models.Challenge {
	t.Helper()
	now := time.Now()
	c := &models.Challenge{
		ID:              uuid.NewString(),
		Name:            "Test challenge " + uuid.NewString()[:8],
		Slug:            uuid.NewString(),
		TargetReduction: target,
		RewardPoints:    rewardPoints,
		Category:        models.CategoryTransport,
		StartDate:       now.AddDate(0, 0, -1),
		EndDate:         now.AddDate(0, 0, 14),
		IsActive:        true,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func createTestReward(t *testing.T, db *gorm.DB, cost, stock int) *models.Reward {
	t.Helper()
	r := &models.Reward{
		ID:             uuid.NewString(),
		Name:           "Test reward " + uuid.NewString()[:8],
		Slug:           uuid.NewString(),
		PointsRequired: cost,
		StockCount:     stock,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}
