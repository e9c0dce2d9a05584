package models

import (
	"time"

	"gorm.io/gorm"
)

// UserType distinguishes individual accounts from organisation accounts.
type UserType string

const (
	UserTypeIndividual   UserType = "individual"
	UserTypeOrganisation UserType = "organisation"
)

// User is an account holder. TotalPoints is the spendable point balance:
// credited by activity scoring and challenge completion, debited by reward
// redemption. It must never go below zero.
type User struct {
	ID           string   `gorm:"primaryKey;type:uuid" json:"id"`
	FirstName    string   `gorm:"not null" json:"first_name"`
	LastName     string   `gorm:"not null" json:"last_name"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	UserType     UserType `gorm:"not null;default:'individual'" json:"user_type"`
	TotalPoints  int      `gorm:"not null;default:0" json:"total_points"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
