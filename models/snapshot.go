package models

import (
	"time"

	"gorm.io/datatypes"
)

// BreakdownSnapshot is the durable receipt: the breakdown as of the moment a
// full payment completed. One row per booking, overwritten on re-settlement.
// Normalized totals live in the columns for querying; Document keeps the full
// serialized breakdown for exact replay.
type BreakdownSnapshot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint `gorm:"column:booking_id;uniqueIndex" json:"booking_id"`

	Nights       int     `json:"nights"`
	RatePerNight float64 `gorm:"column:rate_per_night;type:decimal(12,2)" json:"rate_per_night"`
	RoomCharge   float64 `gorm:"column:room_charge;type:decimal(12,2)" json:"room_charge"`

	ServicesTotal  float64 `gorm:"column:services_total;type:decimal(12,2)" json:"services_total"`
	Subtotal       float64 `gorm:"type:decimal(12,2)" json:"subtotal"`
	DiscountAmount float64 `gorm:"column:discount_amount;type:decimal(12,2)" json:"discount_amount"`
	TotalBeforeTax float64 `gorm:"column:total_before_tax;type:decimal(12,2)" json:"total_before_tax"`
	TaxAmount      float64 `gorm:"column:tax_amount;type:decimal(12,2)" json:"tax_amount"`
	FeesAmount     float64 `gorm:"column:fees_amount;type:decimal(12,2)" json:"fees_amount"`
	GrandTotal     float64 `gorm:"column:grand_total;type:decimal(12,2)" json:"grand_total"`

	Document datatypes.JSON `gorm:"column:document" json:"document"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaxLineSnapshot is one applied tax rule captured at settlement. Upserted by
// booking+rule so re-settlement overwrites instead of duplicating.
type TaxLineSnapshot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint `gorm:"column:booking_id;uniqueIndex:idx_booking_tax_rule" json:"booking_id"`
	TaxRuleID uint `gorm:"column:tax_rule_id;uniqueIndex:idx_booking_tax_rule" json:"tax_rule_id"`

	Name          string  `gorm:"size:255" json:"name"`
	TaxType       string  `gorm:"column:tax_type;size:32" json:"tax_type"`
	Rate          float64 `gorm:"type:decimal(12,4)" json:"rate"`
	IsPercentage  bool    `gorm:"column:is_percentage" json:"is_percentage"`
	TaxableAmount float64 `gorm:"column:taxable_amount;type:decimal(12,2)" json:"taxable_amount"`
	TaxAmount     float64 `gorm:"column:tax_amount;type:decimal(12,2)" json:"tax_amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DiscountLineSnapshot captures the discount applied at settlement, one row
// per booking.
type DiscountLineSnapshot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID      uint `gorm:"column:booking_id;uniqueIndex" json:"booking_id"`
	DiscountRuleID uint `gorm:"column:discount_rule_id;index" json:"discount_rule_id"`

	Name      string  `gorm:"size:255" json:"name"`
	Kind      string  `gorm:"size:32" json:"kind"`
	Value     float64 `gorm:"type:decimal(12,2)" json:"value"`
	PromoCode string  `gorm:"column:promo_code;size:64" json:"promo_code"`
	Amount    float64 `gorm:"type:decimal(12,2)" json:"amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
