package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "Cash"
	PaymentMethodCard         PaymentMethod = "Card"
	PaymentMethodUPI          PaymentMethod = "UPI"
	PaymentMethodBankTransfer PaymentMethod = "Bank Transfer"
	PaymentMethodOther        PaymentMethod = "Other"
)

// PaymentStatus represents the settlement state of a payment
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "Paid"
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusFailed   PaymentStatus = "Failed"
	PaymentStatusRefunded PaymentStatus = "Refunded"
)

// ValidPaymentMethods lists the accepted payment method values
var ValidPaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodCard,
	PaymentMethodUPI,
	PaymentMethodBankTransfer,
	PaymentMethodOther,
}

// ValidPaymentStatuses lists the accepted payment status values
var ValidPaymentStatuses = []PaymentStatus{
	PaymentStatusPaid,
	PaymentStatusPending,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

// Payment records a membership payment made by a member. Payments are
// immutable once created; there is no edit or void operation.
type Payment struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	MemberID uint          `gorm:"index" json:"member_id"`
	Amount   float64       `gorm:"type:decimal(15,2)" json:"amount"`
	Date     time.Time     `gorm:"index" json:"date"`
	Method   PaymentMethod `gorm:"type:varchar(50)" json:"method"`
	Status   PaymentStatus `gorm:"type:varchar(50)" json:"status"`
	Notes    string        `gorm:"type:text" json:"notes,omitempty"`

	// Relationships
	Member Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}
