package models

import "time"

// Reward is a catalog item redeemable for points while stock lasts.
type Reward struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"reward_id"`
	Name           string `gorm:"not null" json:"name"`
	Slug           string `gorm:"uniqueIndex;not null" json:"slug"`
	Description    string `gorm:"type:text" json:"description"`
	PointsRequired int    `gorm:"not null" json:"points_required"`
	StockCount     int    `gorm:"not null;default:0" json:"stock_count"`

	Timestamps
}

// Redemption records one exchange of points for a reward. Immutable.
type Redemption struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"redemption_id"`
	UserID      string    `gorm:"index;not null" json:"user_id"`
	RewardID    string    `gorm:"index;not null" json:"reward_id"`
	PointsSpent int       `gorm:"not null" json:"points_spent"`
	RedeemedAt  time.Time `gorm:"not null" json:"redeemed_at"`

	Reward *Reward `gorm:"foreignKey:RewardID" json:"reward,omitempty"`
}
