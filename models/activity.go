package models

import "time"

// Activity is one logged consumption event. CalculatedEmission is the
// consumption value multiplied by the factor, rounded to 4 decimal places.
// Rows are append-only: never updated or deleted.
type Activity struct {
	ID                 string    `gorm:"primaryKey;type:uuid" json:"activity_id"`
	UserID             string    `gorm:"index;not null" json:"user_id"`
	FactorID           string    `gorm:"index;not null" json:"factor_id"`
	ActivityDate       time.Time `gorm:"index;not null" json:"activity_date"`
	ConsumptionValue   float64   `gorm:"not null" json:"consumption_value"`
	CalculatedEmission float64   `gorm:"not null" json:"calculated_emission"`
	PointsEarned       int       `gorm:"not null;default:0" json:"points_earned"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`

	Factor *EmissionFactor `gorm:"foreignKey:FactorID" json:"factor,omitempty"`
}
