package services

import (
	"errors"
	"fmt"
	"time"

	"hotel-billing/models"

	"gorm.io/gorm"
)

// BillingService hosts the read-only billing surface: breakdown previews,
// promo validation and settlement summaries. Nothing here mutates state.
type BillingService struct {
	DB      *gorm.DB
	Catalog *CatalogService
}

func NewBillingService(db *gorm.DB, catalog *CatalogService) *BillingService {
	return &BillingService{DB: db, Catalog: catalog}
}

// SettlementSummary combines the booking's running totals with its full
// payment history, newest first.
type SettlementSummary struct {
	BookingID         uint                   `json:"booking_id"`
	ReferenceCode     string                 `json:"reference_code"`
	TotalAmount       float64                `json:"total_amount"`
	PaidAmount        float64                `json:"paid_amount"`
	OutstandingAmount float64                `json:"outstanding_amount"`
	IsFullyPaid       bool                   `json:"is_fully_paid"`
	SettlementState   string                 `json:"settlement_state"`
	Payments          []models.PaymentRecord `json:"payments"`
}

// CalculateBreakdown computes the current breakdown for a booking without
// touching any persisted state; safe to call any number of times.
func (s *BillingService) CalculateBreakdown(bookingID uint, promoCode string) (models.Breakdown, error) {
	booking, err := s.loadBookingTx(s.DB, bookingID)
	if err != nil {
		return models.Breakdown{}, err
	}
	return s.CalculateForBookingTx(s.DB, booking, promoCode)
}

// CalculateForBookingTx recomputes the breakdown for an already-loaded
// booking inside tx. The orchestrator uses this with its row-locked booking.
func (s *BillingService) CalculateForBookingTx(tx *gorm.DB, booking *models.Booking, promoCode string) (models.Breakdown, error) {
	catalog, err := s.Catalog.ResolveTx(tx, booking, promoCode)
	if err != nil {
		return models.Breakdown{}, err
	}

	fees, err := s.feesTx(tx, booking.ID)
	if err != nil {
		return models.Breakdown{}, err
	}
	payments, err := s.PaymentsTx(tx, booking.ID)
	if err != nil {
		return models.Breakdown{}, err
	}

	return ComputeBreakdown(BreakdownInput{
		Booking:    *booking,
		Nights:     catalog.Nights,
		Rate:       catalog.Rate,
		UsageLines: catalog.UsageLines,
		Taxes:      catalog.Taxes,
		Fees:       fees,
		Payments:   payments,
		Discount:   catalog.Discount,
		Now:        time.Now().UTC(),
	})
}

// ValidatePromoCode answers "would this code apply right now?" without
// consuming the code or writing anything.
func (s *BillingService) ValidatePromoCode(bookingID uint, code string) (PromoValidation, error) {
	booking, err := s.loadBookingTx(s.DB, bookingID)
	if err != nil {
		return PromoValidation{}, err
	}

	// Subtotal comes from a promo-less resolution so validation can't fail on
	// an unrelated discount error.
	catalog, err := s.Catalog.ResolveTx(s.DB, booking, "")
	if err != nil {
		return PromoValidation{}, err
	}
	base, err := ComputeBreakdown(BreakdownInput{
		Booking:    *booking,
		Nights:     catalog.Nights,
		Rate:       catalog.Rate,
		UsageLines: catalog.UsageLines,
	})
	if err != nil {
		return PromoValidation{}, err
	}

	rule, err := s.Catalog.FindDiscountByPromoCode(booking.BranchID, code)
	if err != nil {
		if errors.Is(err, ErrPromoInvalid) {
			return PromoValidation{Valid: false, Reason: ErrPromoInvalid.Error()}, nil
		}
		return PromoValidation{}, err
	}

	return ValidatePromo(rule, base.Subtotal, time.Now().UTC()), nil
}

// GetSummary projects the booking's totals plus its payment history.
func (s *BillingService) GetSummary(bookingID uint) (SettlementSummary, error) {
	booking, err := s.loadBookingTx(s.DB, bookingID)
	if err != nil {
		return SettlementSummary{}, err
	}
	payments, err := s.PaymentsTx(s.DB, bookingID)
	if err != nil {
		return SettlementSummary{}, err
	}
	return SummarizeBooking(booking, payments), nil
}

// SummarizeBooking derives the summary projection from a booking row and its
// payment history.
func SummarizeBooking(booking *models.Booking, payments []models.PaymentRecord) SettlementSummary {
	if payments == nil {
		payments = []models.PaymentRecord{}
	}
	return SettlementSummary{
		BookingID:         booking.ID,
		ReferenceCode:     booking.ReferenceCode,
		TotalAmount:       booking.TotalAmount,
		PaidAmount:        booking.PaidAmount,
		OutstandingAmount: booking.OutstandingAmount,
		IsFullyPaid:       booking.OutstandingAmount <= 0 && booking.PaidAmount > 0,
		SettlementState:   booking.SettlementState(),
		Payments:          payments,
	}
}

// PaymentsTx loads the booking's completed payments, newest first.
func (s *BillingService) PaymentsTx(tx *gorm.DB, bookingID uint) ([]models.PaymentRecord, error) {
	var payments []models.PaymentRecord
	if err := tx.Where("booking_id = ?", bookingID).
		Order("paid_at DESC, id DESC").
		Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	return payments, nil
}

func (s *BillingService) feesTx(tx *gorm.DB, bookingID uint) ([]models.FeeRecord, error) {
	var fees []models.FeeRecord
	if err := tx.Where("booking_id = ?", bookingID).
		Order("id ASC").
		Find(&fees).Error; err != nil {
		return nil, fmt.Errorf("failed to load fee records: %w", err)
	}
	return fees, nil
}

func (s *BillingService) loadBookingTx(tx *gorm.DB, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return &booking, nil
}
