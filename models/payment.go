package models

import (
	"time"
)

// PaymentStatusCompleted is the only persisted payment state: gateway failure
// surfaces before a record is written, so the ledger never holds pending or
// failed rows.
const PaymentStatusCompleted = "Completed"

// PaymentRecord is one completed settlement transaction. Append-only.
type PaymentRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint `gorm:"column:booking_id;index" json:"booking_id"`

	Amount    float64 `gorm:"type:decimal(12,2)" json:"amount"`
	Method    string  `gorm:"size:64" json:"method"`
	Reference string  `gorm:"size:128;uniqueIndex" json:"reference"`
	Status    string  `gorm:"size:32" json:"status"`

	ProcessedBy string `gorm:"column:processed_by;size:150" json:"processed_by,omitempty"`
	Notes       string `gorm:"type:text" json:"notes,omitempty"`

	PaidAt    time.Time `gorm:"column:paid_at" json:"paid_at"`
	CreatedAt time.Time `json:"created_at"`
}
