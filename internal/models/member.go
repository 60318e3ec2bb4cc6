package models

import (
	"time"

	"gorm.io/gorm"
)

// MemberStatus represents the subscription lifecycle state of a member
type MemberStatus string

const (
	MemberStatusActive       MemberStatus = "Active"
	MemberStatusPending      MemberStatus = "Pending"
	MemberStatusExpiringSoon MemberStatus = "Expiring Soon"
	MemberStatusExpired      MemberStatus = "Expired"
)

// Pending is never derived from dates; it is set manually by an admin and
// left untouched by status refresh passes.

// Member represents a registered gym member
type Member struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name    string `gorm:"type:varchar(255)" json:"name"`
	Email   string `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Phone   string `gorm:"type:varchar(50)" json:"phone"`
	Address string `gorm:"type:text" json:"address,omitempty"`
	Gender  string `gorm:"type:varchar(20)" json:"gender,omitempty"`
	Age     *int   `json:"age,omitempty"`

	JoinDate            time.Time     `json:"join_date"`
	MembershipPlanID    uint          `gorm:"index" json:"membership_plan_id"`
	SubscriptionEndDate time.Time     `gorm:"index" json:"subscription_end_date"`
	Status              MemberStatus  `gorm:"type:varchar(20);default:'Active';index" json:"status"`
	PreferredMethod     PaymentMethod `gorm:"type:varchar(50)" json:"preferred_method,omitempty"`

	// Referral linkage. Stored and passed through only; commission
	// bookkeeping is not computed anywhere in this codebase.
	ReferredByID *uint  `gorm:"index" json:"referred_by_id,omitempty"`
	ReferralCode string `gorm:"type:varchar(50)" json:"referral_code,omitempty"`

	// Relationships
	MembershipPlan MembershipPlan `gorm:"foreignKey:MembershipPlanID" json:"membership_plan,omitempty"`
	ReferredBy     *Member        `gorm:"foreignKey:ReferredByID" json:"referred_by,omitempty"`
	Payments       []Payment      `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}
