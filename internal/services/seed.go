package services

import (
	"log"

	"gorm.io/gorm"

	"gymdesk_echo/internal/models"
)

// SeedDefaultPlans inserts a starter set of membership plans when the plan
// table is empty, so a freshly provisioned gym has something to sell.
func SeedDefaultPlans(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MembershipPlan{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plans := []models.MembershipPlan{
		{
			Name:           "Monthly",
			DurationMonths: 1,
			Amount:         1200,
			Description:    "Full gym access, billed monthly",
			IsActive:       true,
		},
		{
			Name:           "Quarterly",
			DurationMonths: 3,
			Amount:         3300,
			Description:    "Full gym access for three months",
			IsActive:       true,
		},
		{
			Name:           "Half-Yearly",
			DurationMonths: 6,
			Amount:         6000,
			Description:    "Full gym access for six months",
			IsActive:       true,
		},
		{
			Name:           "Annual",
			DurationMonths: 12,
			Amount:         10800,
			Description:    "Full gym access for a year, best value",
			IsActive:       true,
		},
	}

	if err := db.Create(&plans).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d default membership plans", len(plans))
	return nil
}
