package models

import (
	"time"

	"gorm.io/gorm"
)

// HotelService is a catalogued ancillary service (minibar, laundry, spa...).
type HotelService struct {
	gorm.Model

	Name     string  `json:"name" gorm:"size:255"`
	Category string  `json:"category" gorm:"size:100"`
	Price    float64 `json:"price" gorm:"type:decimal(12,2)"`
	IsActive bool    `json:"is_active" gorm:"column:is_active;default:true"`
}

// BranchServicePrice overrides a service's catalog price for one branch.
type BranchServicePrice struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BranchID  uint `gorm:"column:branch_id;uniqueIndex:idx_branch_service" json:"branch_id"`
	ServiceID uint `gorm:"column:service_id;uniqueIndex:idx_branch_service" json:"service_id"`

	Price    float64 `json:"price" gorm:"type:decimal(12,2)"`
	IsActive bool    `json:"is_active" gorm:"column:is_active;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServiceUsageLine records one consumption of a service during a booking.
// Immutable once created: corrections are soft deletes, never edits, so the
// unit price at time of use is preserved even if the catalog price changes.
type ServiceUsageLine struct {
	gorm.Model

	BookingID uint `gorm:"column:booking_id;index" json:"booking_id"`
	ServiceID uint `gorm:"column:service_id;index" json:"service_id"`

	Quantity  int     `json:"quantity"`
	UnitPrice float64 `gorm:"column:unit_price;type:decimal(12,2)" json:"unit_price"`
	LineTotal float64 `gorm:"column:line_total;type:decimal(12,2)" json:"line_total"`

	Service HotelService `gorm:"foreignKey:ServiceID;references:ID" json:"service,omitempty"`
}
