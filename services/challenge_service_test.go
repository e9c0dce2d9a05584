package services

import (
	"testing"
	"time"

	"carbon-footprint-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinAndListChallenges(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, 0)
	joined := createTestChallenge(t, db, 20, 100)
	other := createTestChallenge(t, db, 50, 200)

	svc := NewChallengeService(db)
	membership, err := svc.Join(user.ID, joined.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MembershipJoined, membership.Status)

	listing, err := svc.List(user.ID)
	require.NoError(t, err)
	require.Len(t, listing.Mine, 1)
	assert.Equal(t, joined.ID, listing.Mine[0].Challenge.ID)
	require.Len(t, listing.Available, 1)
	assert.Equal(t, other.ID, listing.Available[0].ID)

	var c models.Challenge
	require.NoError(t, db.First(&c, "id = ?", joined.ID).Error)
	assert.Equal(t, 1, c.ParticipantCount)
}

func TestJoinTwiceFails(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, 0)
	challenge := createTestChallenge(t, db, 20, 100)

	svc := NewChallengeService(db)
	_, err := svc.Join(user.ID, challenge.ID)
	require.NoError(t, err)

	_, err = svc.Join(user.ID, challenge.ID)
	assert.ErrorIs(t, err, ErrAlreadyJoined)

	var c models.Challenge
	require.NoError(t, db.First(&c, "id = ?", challenge.ID).Error)
	assert.Equal(t, 1, c.ParticipantCount, "participant count unchanged by failed join")
}

func TestJoinRejectsMissingInactiveOrEnded(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, 0)
	svc := NewChallengeService(db)

	_, err := svc.Join(user.ID, "no-such-challenge")
	assert.ErrorIs(t, err, ErrNotFound)

	inactive := createTestChallenge(t, db, 20, 100)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)
	_, err = svc.Join(user.ID, inactive.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	ended := createTestChallenge(t, db, 20, 100)
	require.NoError(t, db.Model(ended).Update("end_date", time.Now().AddDate(0, 0, -1)).Error)
	_, err = svc.Join(user.ID, ended.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLeaveChallenge(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, 0)
	challenge := createTestChallenge(t, db, 20, 100)
	svc := NewChallengeService(db)

	err := svc.Leave(user.ID, challenge.ID)
	assert.ErrorIs(t, err, ErrNotJoined)

	_, err = svc.Join(user.ID, challenge.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Leave(user.ID, challenge.ID))

	var c models.Challenge
	require.NoError(t, db.First(&c, "id = ?", challenge.ID).Error)
	assert.Zero(t, c.ParticipantCount)

	err = svc.Leave(user.ID, challenge.ID)
	assert.ErrorIs(t, err, ErrNotJoined)
}

func TestCompletedMembershipIsTerminal(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, 0)
	factor := createTestFactor(t, db, "Petrol car", models.CategoryTransport, 0.21)
	challenge := createTestChallenge(t, db, 10, 100)
	svc := NewChallengeService(db)

	_, err := svc.Join(user.ID, challenge.ID)
	require.NoError(t, err)
	createTestActivity(t, db, user.ID, factor.ID, 15, time.Now())
	require.NoError(t, svc.RecomputeProgress(user.ID))

	err = svc.Leave(user.ID, challenge.ID)
	assert.ErrorIs(t, err, ErrNotJoined, "completed membership cannot be left")
}

func TestProgressTransitionsToInProgress(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, 0)
	factor := createTestFactor(t, db, "Bus", models.CategoryTransport, 0.10)
	challenge := createTestChallenge(t, db, 50, 100)
	svc := NewChallengeService(db)

	_, err := svc.Join(user.ID, challenge.ID)
	require.NoError(t, err)
	createTestActivity(t, db, user.ID, factor.ID, 12.5, time.Now())
	require.NoError(t, svc.RecomputeProgress(user.ID))

	var m models.ChallengeMembership
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&m).Error)
	assert.Equal(t, models.MembershipInProgress, m.Status)
	assert.Equal(t, 12.5, m.ProgressEmission)

	var u models.User
	require.NoError(t, db.First(&u, "id = ?", user.ID).Error)
	assert.Zero(t, u.TotalPoints, "no reward before the target is met")
}

func TestCompletionAwardsPointsExactlyOnce(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, 0)
	factor := createTestFactor(t, db, "Petrol car", models.CategoryTransport, 0.21)
	challenge := createTestChallenge(t, db, 20, 150)
	svc := NewChallengeService(db)

	_, err := svc.Join(user.ID, challenge.ID)
	require.NoError(t, err)
	createTestActivity(t, db, user.ID, factor.ID, 25, time.Now())

	require.NoError(t, svc.RecomputeProgress(user.ID))
	require.NoError(t, svc.RecomputeProgress(user.ID))
	require.NoError(t, svc.SweepProgress())

	var m models.ChallengeMembership
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&m).Error)
	assert.Equal(t, models.MembershipCompleted, m.Status)
	require.NotNil(t, m.CompletedAt)

	var u models.User
	require.NoError(t, db.First(&u, "id = ?", user.ID).Error)
	assert.Equal(t, 150, u.TotalPoints, "reward credited exactly once")
}

func TestProgressIgnoresActivitiesBeforeJoining(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, 0)
	factor := createTestFactor(t, db, "Petrol car", models.CategoryTransport, 0.21)
	challenge := createTestChallenge(t, db, 20, 150)
	svc := NewChallengeService(db)

	createTestActivity(t, db, user.ID, factor.ID, 100, time.Now().Add(-time.Hour))

	_, err := svc.Join(user.ID, challenge.ID)
	require.NoError(t, err)
	require.NoError(t, svc.RecomputeProgress(user.ID))

	var m models.ChallengeMembership
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&m).Error)
	assert.NotEqual(t, models.MembershipCompleted, m.Status)
	assert.Zero(t, m.ProgressEmission)
}
