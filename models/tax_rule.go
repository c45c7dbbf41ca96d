package models

import (
	"time"

	"gorm.io/gorm"
)

// Tax rule types. The type decides which charges the rule taxes.
const (
	TaxTypeFlatRateAll  = "flat_rate_all" // VAT/GST style, taxes the discounted total
	TaxTypeServicesOnly = "services_only" // taxes the services share only
	TaxTypeOther        = "other"
)

type TaxRule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BranchID uint   `gorm:"column:branch_id;index" json:"branch_id"`
	Name     string `gorm:"size:255" json:"name"`
	TaxType  string `gorm:"column:tax_type;size:32" json:"tax_type"`

	// Rate is a percentage when IsPercentage, otherwise a fixed amount.
	Rate         float64 `gorm:"type:decimal(12,4)" json:"rate"`
	IsPercentage bool    `gorm:"column:is_percentage;default:true" json:"is_percentage"`
	IsActive     bool    `gorm:"column:is_active;default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
