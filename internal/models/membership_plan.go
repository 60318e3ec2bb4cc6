package models

import (
	"time"

	"gorm.io/gorm"
)

// MembershipPlan represents a purchasable gym membership plan
type MembershipPlan struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name           string  `gorm:"type:varchar(255)" json:"name"`
	DurationMonths int     `json:"duration_months"`
	Amount         float64 `gorm:"type:decimal(15,2)" json:"amount"`
	Description    string  `gorm:"type:text" json:"description,omitempty"`
	IsActive       bool    `gorm:"default:true" json:"is_active"`

	// Relationships
	Members []Member `gorm:"foreignKey:MembershipPlanID" json:"members,omitempty"`
}
