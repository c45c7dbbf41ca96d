package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking lifecycle statuses.
const (
	BookingStatusBooked     = "Booked"
	BookingStatusCheckedIn  = "Checked-In"
	BookingStatusCheckedOut = "Checked-Out"
	BookingStatusCancelled  = "Cancelled"
)

// Derived settlement states; never stored on the row.
const (
	SettlementUnbilled      = "Unbilled"
	SettlementPartiallyPaid = "PartiallyPaid"
	SettlementFullyPaid     = "FullyPaid"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BranchID uint `gorm:"column:branch_id;index" json:"branch_id"`
	RoomID   uint `gorm:"column:room_id;index" json:"room_id"`
	GuestID  uint `gorm:"column:guest_id;index" json:"guest_id"`

	ReferenceCode  string     `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`
	Status         string     `gorm:"column:status;size:64" json:"status"`
	CheckInDate    *time.Time `gorm:"column:check_in_date" json:"check_in_date,omitempty"`
	CheckOutDate   *time.Time `gorm:"column:check_out_date" json:"check_out_date,omitempty"`
	Nights         int        `gorm:"column:nights" json:"nights"`
	NumberOfGuests int        `gorm:"column:number_of_guests" json:"number_of_guests"`

	// Nightly rate captured at booking time; later room price changes don't move the bill.
	RatePerNight float64 `gorm:"column:rate_per_night;type:decimal(12,2)" json:"rate_per_night"`

	// Denormalized running totals, mutated only by the billing services.
	// OutstandingAmount may go negative on overpayment; that is a credit balance.
	TotalAmount       float64 `gorm:"column:total_amount;type:decimal(12,2)" json:"total_amount"`
	PaidAmount        float64 `gorm:"column:paid_amount;type:decimal(12,2)" json:"paid_amount"`
	OutstandingAmount float64 `gorm:"column:outstanding_amount;type:decimal(12,2)" json:"outstanding_amount"`

	Branch Branch `gorm:"foreignKey:BranchID;references:ID" json:"branch,omitempty"`
	Room   Room   `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Guest  Guest  `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
}

// SettlementState derives the booking's billing state from its running totals.
func (b *Booking) SettlementState() string {
	switch {
	case b.PaidAmount <= 0:
		return SettlementUnbilled
	case b.OutstandingAmount > 0:
		return SettlementPartiallyPaid
	default:
		return SettlementFullyPaid
	}
}
