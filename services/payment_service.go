package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-billing/models"
	"hotel-billing/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentService is the settlement orchestrator and the append-only payment
// ledger. Settle is the only mutating entry point of the billing engine.
type PaymentService struct {
	DB      *gorm.DB
	Billing *BillingService
}

func NewPaymentService(db *gorm.DB, billing *BillingService) *PaymentService {
	return &PaymentService{DB: db, Billing: billing}
}

// SettleRequest describes one settlement attempt. Amount nil (or <= 0) means
// pay the remaining balance. Reference is the caller's external transaction
// reference; when empty a simulated-gateway reference is generated. Reference
// uniqueness across retries-with-new-intent is the caller's responsibility.
type SettleRequest struct {
	BookingID   uint
	Amount      *float64
	PromoCode   string
	Method      string
	Reference   string
	Notes       string
	ProcessedBy string
}

// SettlementResult is what a committed settlement returns.
type SettlementResult struct {
	PaymentID     uint              `json:"payment_id"`
	PaymentAmount float64           `json:"payment_amount"`
	IsFullPayment bool              `json:"is_full_payment"`
	Breakdown     models.Breakdown  `json:"breakdown"`
	Summary       SettlementSummary `json:"summary"`
}

// Settle recomputes the breakdown, applies one payment and updates the
// booking's running totals, all inside a single transaction with the booking
// row locked. Failure at any step rolls everything back: no partial ledger
// writes, no usage-count drift.
func (s *PaymentService) Settle(req SettleRequest) (SettlementResult, error) {
	var result SettlementResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Row lock serializes concurrent settlements on the same booking so
		// two partial payments can't both read the same stale outstanding.
		var booking models.Booking
		if err := lockForUpdate(tx).First(&booking, req.BookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		breakdown, err := s.Billing.CalculateForBookingTx(tx, &booking, req.PromoCode)
		if err != nil {
			return err
		}

		amount, isFull, err := DeterminePaymentAmount(breakdown.OutstandingAmount, req.Amount)
		if err != nil {
			return err
		}

		if isFull {
			// The promo is spent once per fully settled booking-rule pairing,
			// never per installment and never again when a fee reopens the
			// balance. Checked before the upsert below overwrites the row.
			consumed := false
			if breakdown.Discount != nil {
				consumed, err = discountCommittedTx(tx, booking.ID, breakdown.Discount.RuleID)
				if err != nil {
					return err
				}
			}
			if err := s.persistSnapshotsTx(tx, &booking, &breakdown); err != nil {
				return err
			}
			if breakdown.Discount != nil && !consumed {
				if err := consumePromoUsageTx(tx, breakdown.Discount.RuleID); err != nil {
					return err
				}
			}
		}

		payment, err := appendPaymentTx(tx, booking.ID, amount, req)
		if err != nil {
			return err
		}

		paidAfter := utils.Round2(booking.PaidAmount + amount)
		outstandingAfter := utils.Round2(breakdown.GrandTotal - paidAfter)
		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"total_amount":       breakdown.GrandTotal,
			"paid_amount":        paidAfter,
			"outstanding_amount": outstandingAfter,
		}).Error; err != nil {
			return fmt.Errorf("failed to update booking totals: %w", err)
		}
		booking.TotalAmount = breakdown.GrandTotal
		booking.PaidAmount = paidAfter
		booking.OutstandingAmount = outstandingAfter

		breakdown.PreviousPayments = append([]models.BreakdownPayment{{
			PaymentID: payment.ID,
			Amount:    payment.Amount,
			Method:    payment.Method,
			Reference: payment.Reference,
			PaidAt:    payment.PaidAt,
		}}, breakdown.PreviousPayments...)
		breakdown.PaidAmount = paidAfter
		breakdown.OutstandingAmount = outstandingAfter
		breakdown.IsFullyPaid = outstandingAfter <= 0

		payments, err := s.Billing.PaymentsTx(tx, booking.ID)
		if err != nil {
			return err
		}

		result = SettlementResult{
			PaymentID:     payment.ID,
			PaymentAmount: payment.Amount,
			IsFullPayment: isFull,
			Breakdown:     breakdown,
			Summary:       SummarizeBooking(&booking, payments),
		}
		return nil
	})
	if err != nil {
		return SettlementResult{}, err
	}
	return result, nil
}

// Summarize is the settlement ledger's read-only projection.
func (s *PaymentService) Summarize(bookingID uint) (SettlementSummary, error) {
	return s.Billing.GetSummary(bookingID)
}

// DeterminePaymentAmount applies the pay-remaining and clamping rules: no (or
// non-positive) requested amount pays the outstanding balance in full; a
// request at or above the balance clamps to it. Nothing owed is a rejection,
// not a zero-amount payment.
func DeterminePaymentAmount(outstanding float64, requested *float64) (amount float64, isFull bool, err error) {
	if requested == nil || *requested <= 0 {
		amount, isFull = outstanding, true
	} else if *requested >= outstanding {
		amount, isFull = outstanding, true
	} else {
		amount, isFull = *requested, false
	}
	amount = utils.Round2(amount)
	if amount <= 0 {
		return 0, false, ErrAlreadySettled
	}
	return amount, isFull, nil
}

// persistSnapshotsTx upserts the durable receipt: the breakdown document plus
// its normalized tax and discount line rows, keyed by booking so a
// re-settlement overwrites instead of duplicating.
func (s *PaymentService) persistSnapshotsTx(tx *gorm.DB, booking *models.Booking, b *models.Breakdown) error {
	doc, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to serialize breakdown: %w", err)
	}

	snapshot := models.BreakdownSnapshot{
		BookingID:      booking.ID,
		Nights:         b.Nights,
		RatePerNight:   b.RatePerNight,
		RoomCharge:     b.RoomCharge,
		ServicesTotal:  b.ServicesTotal,
		Subtotal:       b.Subtotal,
		DiscountAmount: b.DiscountAmount,
		TotalBeforeTax: b.TotalBeforeTax,
		TaxAmount:      b.TaxAmount,
		FeesAmount:     b.FeesAmount,
		GrandTotal:     b.GrandTotal,
		Document:       datatypes.JSON(doc),
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "booking_id"}},
		UpdateAll: true,
	}).Create(&snapshot).Error; err != nil {
		return fmt.Errorf("failed to upsert breakdown snapshot: %w", err)
	}

	for _, line := range b.Taxes {
		row := models.TaxLineSnapshot{
			BookingID:     booking.ID,
			TaxRuleID:     line.RuleID,
			Name:          line.Name,
			TaxType:       line.TaxType,
			Rate:          line.Rate,
			IsPercentage:  line.IsPercentage,
			TaxableAmount: line.TaxableAmount,
			TaxAmount:     line.TaxAmount,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "booking_id"}, {Name: "tax_rule_id"}},
			UpdateAll: true,
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to upsert tax snapshot: %w", err)
		}
	}

	if b.Discount != nil {
		row := models.DiscountLineSnapshot{
			BookingID:      booking.ID,
			DiscountRuleID: b.Discount.RuleID,
			Name:           b.Discount.Name,
			Kind:           b.Discount.Kind,
			Value:          b.Discount.Value,
			PromoCode:      b.Discount.PromoCode,
			Amount:         b.Discount.Amount,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "booking_id"}},
			UpdateAll: true,
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to upsert discount snapshot: %w", err)
		}
	}

	return nil
}

// discountCommittedTx reports whether a full settlement already committed
// this booking-rule pairing, i.e. its discount snapshot row exists.
func discountCommittedTx(tx *gorm.DB, bookingID, ruleID uint) (bool, error) {
	var count int64
	if err := tx.Model(&models.DiscountLineSnapshot{}).
		Where("booking_id = ? AND discount_rule_id = ?", bookingID, ruleID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check discount snapshot: %w", err)
	}
	return count > 0, nil
}

// consumePromoUsageTx increments the rule's usage counter, guarded so the
// limit holds even under concurrent settlements of different bookings.
func consumePromoUsageTx(tx *gorm.DB, ruleID uint) error {
	res := tx.Model(&models.DiscountRule{}).
		Where("id = ? AND (usage_limit = 0 OR usage_count < usage_limit)", ruleID).
		Update("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to increment promo usage: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPromoExhausted
	}
	return nil
}

// appendPaymentTx writes one completed payment row. The gateway boundary is
// simulated: card data is never validated or transmitted, and a missing
// reference gets a generated one.
func appendPaymentTx(tx *gorm.DB, bookingID uint, amount float64, req SettleRequest) (models.PaymentRecord, error) {
	if amount <= 0 {
		return models.PaymentRecord{}, ErrInvalidPaymentAmount
	}

	reference := strings.TrimSpace(req.Reference)
	if reference == "" {
		reference = "SIM-" + uuid.NewString()
	}
	method := strings.TrimSpace(req.Method)
	if method == "" {
		method = "cash"
	}

	payment := models.PaymentRecord{
		BookingID:   bookingID,
		Amount:      amount,
		Method:      method,
		Reference:   reference,
		Status:      models.PaymentStatusCompleted,
		ProcessedBy: req.ProcessedBy,
		Notes:       req.Notes,
		PaidAt:      time.Now().UTC(),
	}
	if err := tx.Create(&payment).Error; err != nil {
		return models.PaymentRecord{}, fmt.Errorf("failed to append payment: %w", err)
	}
	return payment, nil
}
