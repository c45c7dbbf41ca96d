package models

import (
	"time"

	"gorm.io/gorm"
)

// Fee types.
const (
	FeeLateCheckout = "LateCheckout"
	FeeNoShow       = "NoShow"
	FeeCancellation = "Cancellation"
	FeeOther        = "Other"
)

// Fee calculation kinds for per-branch fee policies.
const (
	FeeCalcFixedAmount = "fixed_amount"
	FeeCalcPercentage  = "percentage"
	FeeCalcPerHour     = "per_hour"
)

// FeeConfig is a per-branch penalty policy, resolved the same way tax and
// discount rules are.
type FeeConfig struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BranchID uint   `gorm:"column:branch_id;uniqueIndex:idx_branch_fee_type" json:"branch_id"`
	FeeType  string `gorm:"column:fee_type;size:32;uniqueIndex:idx_branch_fee_type" json:"fee_type"`

	CalcKind string  `gorm:"column:calc_kind;size:32" json:"calc_kind"`
	Value    float64 `gorm:"type:decimal(12,2)" json:"value"`

	// GraceMinutes applies to time-based fees (late checkout): no charge inside
	// the grace window.
	GraceMinutes int      `gorm:"column:grace_minutes;default:0" json:"grace_minutes"`
	MaxAmount    *float64 `gorm:"column:max_amount;type:decimal(12,2)" json:"max_amount,omitempty"`
	IsActive     bool     `gorm:"column:is_active;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeeRecord is one penalty charge attached to a booking. Waiving flips the
// flag and reverses the totals; records are never deleted.
type FeeRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint   `gorm:"column:booking_id;index" json:"booking_id"`
	FeeType   string `gorm:"column:fee_type;size:32" json:"fee_type"`

	Amount float64 `gorm:"type:decimal(12,2)" json:"amount"`
	Reason string  `gorm:"type:text" json:"reason"`

	Waived   bool       `gorm:"default:false" json:"waived"`
	WaivedAt *time.Time `gorm:"column:waived_at" json:"waived_at,omitempty"`

	AppliedBy string `gorm:"column:applied_by;size:150" json:"applied_by,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// FeeWaiverLog is the audit trail for a waiver: before/after totals of the
// booking at the moment the fee was reversed.
type FeeWaiverLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FeeRecordID uint   `gorm:"column:fee_record_id;index" json:"fee_record_id"`
	BookingID   uint   `gorm:"column:booking_id;index" json:"booking_id"`
	Reason      string `gorm:"type:text" json:"reason"`
	WaivedBy    string `gorm:"column:waived_by;size:150" json:"waived_by,omitempty"`

	TotalBefore       float64 `gorm:"column:total_before;type:decimal(12,2)" json:"total_before"`
	TotalAfter        float64 `gorm:"column:total_after;type:decimal(12,2)" json:"total_after"`
	OutstandingBefore float64 `gorm:"column:outstanding_before;type:decimal(12,2)" json:"outstanding_before"`
	OutstandingAfter  float64 `gorm:"column:outstanding_after;type:decimal(12,2)" json:"outstanding_after"`

	CreatedAt time.Time `json:"created_at"`
}
