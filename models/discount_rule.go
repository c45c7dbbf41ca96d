package models

import (
	"time"

	"gorm.io/gorm"
)

// Discount kinds.
const (
	DiscountPercentage  = "percentage"
	DiscountFixedAmount = "fixed_amount"
)

type DiscountRule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BranchID uint    `gorm:"column:branch_id;uniqueIndex:idx_branch_promo" json:"branch_id"`
	Name     string  `gorm:"size:255" json:"name"`
	Kind     string  `gorm:"size:32" json:"kind"`
	Value    float64 `gorm:"type:decimal(12,2)" json:"value"`

	PromoCode string `gorm:"column:promo_code;size:64;uniqueIndex:idx_branch_promo" json:"promo_code"`

	MinBookingAmount  float64  `gorm:"column:min_booking_amount;type:decimal(12,2)" json:"min_booking_amount"`
	MaxDiscountAmount *float64 `gorm:"column:max_discount_amount;type:decimal(12,2)" json:"max_discount_amount,omitempty"`

	// UsageLimit zero means unlimited. UsageCount is incremented only when a
	// full payment commits, never by preview or validation calls.
	UsageLimit int `gorm:"column:usage_limit;default:0" json:"usage_limit"`
	UsageCount int `gorm:"column:usage_count;default:0" json:"usage_count"`

	ValidFrom  *time.Time `gorm:"column:valid_from" json:"valid_from,omitempty"`
	ValidUntil *time.Time `gorm:"column:valid_until" json:"valid_until,omitempty"`
	IsActive   bool       `gorm:"column:is_active;default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// InWindow reports whether the rule's validity window covers t (bounds inclusive).
func (d *DiscountRule) InWindow(t time.Time) bool {
	if d.ValidFrom != nil && t.Before(*d.ValidFrom) {
		return false
	}
	if d.ValidUntil != nil && t.After(*d.ValidUntil) {
		return false
	}
	return true
}

// Exhausted reports whether the usage limit, if enforced, has been reached.
func (d *DiscountRule) Exhausted() bool {
	return d.UsageLimit > 0 && d.UsageCount >= d.UsageLimit
}
