package models

import "time"

// FactorCategory groups emission factors for scoring and dashboard breakdowns.
type FactorCategory string

const (
	CategoryTransport FactorCategory = "Transport"
	CategoryEnergy    FactorCategory = "Energy"
	CategoryFood      FactorCategory = "Food"
)

// EmissionFactor is a reference row mapping one unit of consumption to kg of
// CO2-equivalent. Read-only at runtime; seeded at startup.
type EmissionFactor struct {
	ID             string         `gorm:"primaryKey;type:uuid" json:"factor_id"`
	ActivityName   string         `gorm:"not null" json:"activity_name"`
	Category       FactorCategory `gorm:"index;not null" json:"category"`
	Unit           string         `gorm:"not null" json:"unit"`
	EmissionFactor float64        `gorm:"not null" json:"emission_factor"`
	CreatedAt      time.Time      `json:"created_at" gorm:"autoCreateTime"`
}
