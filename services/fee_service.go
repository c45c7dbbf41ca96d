package services

import (
	"errors"
	"fmt"
	"time"

	"hotel-billing/models"
	"hotel-billing/utils"

	"gorm.io/gorm"
)

// FeeService is the append-only fee ledger: penalty fees attached to a
// booking, and their waiver with an audit trail.
type FeeService struct {
	DB      *gorm.DB
	Catalog *CatalogService
}

func NewFeeService(db *gorm.DB, catalog *CatalogService) *FeeService {
	return &FeeService{DB: db, Catalog: catalog}
}

// ApplyFee appends a fee record and atomically folds its amount into the
// booking's total and outstanding. When amount is nil the fee is computed
// from the branch's FeeConfig for that type. A fee can reopen a fully paid
// booking; that is intentional.
func (s *FeeService) ApplyFee(bookingID uint, feeType string, amount *float64, reason, appliedBy string) (models.FeeRecord, error) {
	var record models.FeeRecord

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := lockForUpdate(tx).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		feeAmount, err := s.resolveFeeAmountTx(tx, &booking, feeType, amount)
		if err != nil {
			return err
		}
		if feeAmount < 0 {
			return ErrInvalidFeeAmount
		}
		feeAmount = utils.Round2(feeAmount)

		record = models.FeeRecord{
			BookingID: booking.ID,
			FeeType:   feeType,
			Amount:    feeAmount,
			Reason:    reason,
			AppliedBy: appliedBy,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create fee record: %w", err)
		}

		updates := map[string]interface{}{
			"total_amount":       utils.Round2(booking.TotalAmount + feeAmount),
			"outstanding_amount": utils.Round2(booking.OutstandingAmount + feeAmount),
		}
		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update booking totals: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.FeeRecord{}, err
	}
	return record, nil
}

// WaiveFee marks a fee waived, reverses it out of the booking's totals and
// writes an audit row with before/after state. Waiving an already-waived fee
// succeeds without changing anything.
func (s *FeeService) WaiveFee(feeRecordID uint, reason, waivedBy string) (models.FeeRecord, error) {
	var record models.FeeRecord

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Locking read: a concurrent waiver of the same fee must not see a
		// stale Waived=false snapshot and reverse the totals twice.
		if err := lockForUpdate(tx).First(&record, feeRecordID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFeeNotFound
			}
			return fmt.Errorf("failed to load fee record: %w", err)
		}
		if record.Waived {
			// Idempotent: the totals were already reversed once.
			return nil
		}

		var booking models.Booking
		if err := lockForUpdate(tx).First(&booking, record.BookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		now := time.Now().UTC()
		if err := tx.Model(&record).Updates(map[string]interface{}{
			"waived":    true,
			"waived_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to waive fee: %w", err)
		}
		record.Waived = true
		record.WaivedAt = &now

		totalAfter := utils.Round2(booking.TotalAmount - record.Amount)
		outstandingAfter := utils.Round2(booking.OutstandingAmount - record.Amount)

		audit := models.FeeWaiverLog{
			FeeRecordID:       record.ID,
			BookingID:         booking.ID,
			Reason:            reason,
			WaivedBy:          waivedBy,
			TotalBefore:       booking.TotalAmount,
			TotalAfter:        totalAfter,
			OutstandingBefore: booking.OutstandingAmount,
			OutstandingAfter:  outstandingAfter,
		}
		if err := tx.Create(&audit).Error; err != nil {
			return fmt.Errorf("failed to write waiver audit: %w", err)
		}

		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"total_amount":       totalAfter,
			"outstanding_amount": outstandingAfter,
		}).Error; err != nil {
			return fmt.Errorf("failed to update booking totals: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.FeeRecord{}, err
	}
	return record, nil
}

// ListFees returns all fee records for a booking, waived ones included.
func (s *FeeService) ListFees(bookingID uint) ([]models.FeeRecord, error) {
	var fees []models.FeeRecord
	if err := s.DB.Where("booking_id = ?", bookingID).Order("id ASC").Find(&fees).Error; err != nil {
		return nil, fmt.Errorf("failed to load fee records: %w", err)
	}
	return fees, nil
}

// resolveFeeAmountTx returns the explicit amount when given, otherwise
// computes one from the branch's fee policy.
func (s *FeeService) resolveFeeAmountTx(tx *gorm.DB, booking *models.Booking, feeType string, amount *float64) (float64, error) {
	if amount != nil {
		return *amount, nil
	}

	cfg, err := s.Catalog.GetFeeConfigTx(tx, booking.BranchID, feeType)
	if err != nil {
		return 0, err
	}
	if cfg == nil {
		// No policy and no explicit amount: nothing to charge.
		return 0, ErrInvalidFeeAmount
	}

	var hoursLate float64
	if feeType == models.FeeLateCheckout && booking.CheckOutDate != nil {
		hoursLate = LateHours(*booking.CheckOutDate, time.Now().UTC(), cfg.GraceMinutes)
	}
	return ComputeFeeAmount(cfg, booking.TotalAmount, hoursLate), nil
}

// ComputeFeeAmount evaluates a fee policy. base is the booking total (used by
// percentage policies), hours the billable late hours for per-hour policies.
// A configured cap clamps the result.
func ComputeFeeAmount(cfg *models.FeeConfig, base, hours float64) float64 {
	var amount float64
	switch cfg.CalcKind {
	case models.FeeCalcFixedAmount:
		amount = cfg.Value
	case models.FeeCalcPercentage:
		amount = base * cfg.Value / 100
	case models.FeeCalcPerHour:
		amount = cfg.Value * hours
	}
	if cfg.MaxAmount != nil && amount > *cfg.MaxAmount {
		amount = *cfg.MaxAmount
	}
	if amount < 0 {
		amount = 0
	}
	return utils.Round2(amount)
}

// LateHours returns the whole hours past the scheduled checkout once the
// grace window is spent, rounding any started hour up. Zero inside grace.
func LateHours(scheduledCheckout, now time.Time, graceMinutes int) float64 {
	deadline := scheduledCheckout.Add(time.Duration(graceMinutes) * time.Minute)
	if !now.After(deadline) {
		return 0
	}
	late := now.Sub(deadline)
	hours := float64(int(late.Hours()))
	if late%time.Hour != 0 {
		hours++
	}
	return hours
}
