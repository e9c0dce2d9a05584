package models

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// defaultFactors is the canonical emission factor table, in kg CO2e per unit.
// Keep this stable because clients may store factor IDs by name lookup.
func defaultFactors() []EmissionFactor {
	return []EmissionFactor{
		{ActivityName: "Petrol car", Category: CategoryTransport, Unit: "kg CO2/km", EmissionFactor: 0.21},
		{ActivityName: "Diesel car", Category: CategoryTransport, Unit: "kg CO2/km", EmissionFactor: 0.17},
		{ActivityName: "Motorbike", Category: CategoryTransport, Unit: "kg CO2/km", EmissionFactor: 0.11},
		{ActivityName: "Bus", Category: CategoryTransport, Unit: "kg CO2/km", EmissionFactor: 0.10},
		{ActivityName: "Train", Category: CategoryTransport, Unit: "kg CO2/km", EmissionFactor: 0.04},
		{ActivityName: "Domestic flight", Category: CategoryTransport, Unit: "kg CO2/km", EmissionFactor: 0.25},
		{ActivityName: "Grid electricity", Category: CategoryEnergy, Unit: "kg CO2/kWh", EmissionFactor: 0.82},
		{ActivityName: "Natural gas", Category: CategoryEnergy, Unit: "kg CO2/m3", EmissionFactor: 2.03},
		{ActivityName: "LPG", Category: CategoryEnergy, Unit: "kg CO2/kg", EmissionFactor: 1.56},
		{ActivityName: "Beef", Category: CategoryFood, Unit: "kg CO2/kg", EmissionFactor: 27.0},
		{ActivityName: "Chicken", Category: CategoryFood, Unit: "kg CO2/kg", EmissionFactor: 6.9},
		{ActivityName: "Rice", Category: CategoryFood, Unit: "kg CO2/kg", EmissionFactor: 4.0},
		{ActivityName: "Milk", Category: CategoryFood, Unit: "kg CO2/L", EmissionFactor: 1.9},
		{ActivityName: "Vegetables", Category: CategoryFood, Unit: "kg CO2/kg", EmissionFactor: 2.0},
	}
}

// SeedReferenceData populates the factor, challenge and reward catalogs on an
// empty database. Safe to run on every boot: each catalog is only seeded when
// its table has no rows.
func SeedReferenceData(db *gorm.DB) error {
	var count int64

	if err := db.Model(&EmissionFactor{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		factors := defaultFactors()
		for i := range factors {
			factors[i].ID = uuid.NewString()
		}
		if err := db.Create(&factors).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d emission factors", len(factors))
	}

	if err := db.Model(&Challenge{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		now := time.Now()
		challenges := []Challenge{
			{
				Name:            "Car-free fortnight",
				Description:     "Keep your transport footprint under 20 kg CO2e for two weeks.",
				Category:        CategoryTransport,
				TargetReduction: 20,
				RewardPoints:    150,
				StartDate:       now,
				EndDate:         now.AddDate(0, 0, 14),
			},
			{
				Name:            "Low-energy month",
				Description:     "Log a month of home energy use and keep it under 80 kg CO2e.",
				Category:        CategoryEnergy,
				TargetReduction: 80,
				RewardPoints:    200,
				StartDate:       now,
				EndDate:         now.AddDate(0, 1, 0),
			},
			{
				Name:            "Climate-friendly plate",
				Description:     "Track your diet for three weeks under 50 kg CO2e.",
				Category:        CategoryFood,
				TargetReduction: 50,
				RewardPoints:    120,
				StartDate:       now,
				EndDate:         now.AddDate(0, 0, 21),
			},
		}
		for i := range challenges {
			challenges[i].ID = uuid.NewString()
			challenges[i].Slug = slug.Make(challenges[i].Name)
			challenges[i].IsActive = true
		}
		if err := db.Create(&challenges).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d challenges", len(challenges))
	}

	if err := db.Model(&Reward{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		rewards := []Reward{
			{Name: "Reusable bottle", Description: "Insulated steel bottle.", PointsRequired: 150, StockCount: 40},
			{Name: "Tree planted in your name", Description: "One sapling via our reforestation partner.", PointsRequired: 200, StockCount: 100},
			{Name: "Public transport day pass", Description: "Valid on all city routes.", PointsRequired: 300, StockCount: 25},
			{Name: "Solar charger", Description: "10W folding panel.", PointsRequired: 800, StockCount: 10},
		}
		for i := range rewards {
			rewards[i].ID = uuid.NewString()
			rewards[i].Slug = slug.Make(rewards[i].Name)
		}
		if err := db.Create(&rewards).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d rewards", len(rewards))
	}

	return nil
}
