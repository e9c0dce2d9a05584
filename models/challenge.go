package models

import "time"

// MembershipStatus is the per-user challenge state machine:
// joined → in-progress → completed. Completed is terminal.
type MembershipStatus string

const (
	MembershipJoined     MembershipStatus = "joined"
	MembershipInProgress MembershipStatus = "in-progress"
	MembershipCompleted  MembershipStatus = "completed"
)

// Challenge is a time-bounded emission goal users can opt into.
type Challenge struct {
	ID               string         `gorm:"primaryKey;type:uuid" json:"challenge_id"`
	Name             string         `gorm:"not null" json:"challenge_name"`
	Slug             string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description      string         `gorm:"type:text" json:"description"`
	Category         FactorCategory `gorm:"index" json:"category"`
	TargetReduction  float64        `gorm:"not null" json:"target_reduction"`
	RewardPoints     int            `gorm:"not null" json:"reward_points"`
	StartDate        time.Time      `gorm:"not null" json:"start_date"`
	EndDate          time.Time      `gorm:"not null" json:"end_date"`
	IsActive         bool           `gorm:"not null;default:true" json:"is_active"`
	ParticipantCount int            `gorm:"not null;default:0" json:"participant_count"`

	Timestamps
}

// ChallengeMembership joins a user to a challenge. Progress is the emission
// sum accumulated since joining, recomputed after each activity insert and by
// the daily sweep. The unique index stops a user joining the same challenge
// twice.
type ChallengeMembership struct {
	ID               string           `gorm:"primaryKey;type:uuid" json:"id"`
	UserID           string           `gorm:"uniqueIndex:idx_membership_once;not null" json:"user_id"`
	ChallengeID      string           `gorm:"uniqueIndex:idx_membership_once;not null" json:"challenge_id"`
	JoinedAt         time.Time        `gorm:"not null" json:"joined_at"`
	Status           MembershipStatus `gorm:"not null;default:'joined'" json:"status"`
	ProgressEmission float64          `gorm:"not null;default:0" json:"progress_emission"`
	CompletedAt      *time.Time       `json:"completed_at,omitempty"`

	Challenge *Challenge `gorm:"foreignKey:ChallengeID" json:"challenge,omitempty"`
}
