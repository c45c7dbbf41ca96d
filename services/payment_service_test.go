package services

import (
	"testing"

	"hotel-billing/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestDeterminePaymentAmount(t *testing.T) {
	tests := []struct {
		name        string
		outstanding float64
		requested   *float64
		wantAmount  float64
		wantFull    bool
		wantErr     error
	}{
		{
			name:        "nil request pays in full",
			outstanding: 23650,
			wantAmount:  23650,
			wantFull:    true,
		},
		{
			name:        "zero request pays in full",
			outstanding: 23650,
			requested:   floatPtr(0),
			wantAmount:  23650,
			wantFull:    true,
		},
		{
			name:        "partial payment stays partial",
			outstanding: 23650,
			requested:   floatPtr(10000),
			wantAmount:  10000,
			wantFull:    false,
		},
		{
			name:        "request above balance clamps to balance",
			outstanding: 23650,
			requested:   floatPtr(30000),
			wantAmount:  23650,
			wantFull:    true,
		},
		{
			name:        "request equal to balance is full",
			outstanding: 23650,
			requested:   floatPtr(23650),
			wantAmount:  23650,
			wantFull:    true,
		},
		{
			name:        "nothing owed rejects",
			outstanding: 0,
			wantErr:     ErrAlreadySettled,
		},
		{
			name:        "credit balance rejects further payment",
			outstanding: -500,
			requested:   floatPtr(100),
			wantErr:     ErrAlreadySettled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, isFull, err := DeterminePaymentAmount(tt.outstanding, tt.requested)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAmount, amount)
			assert.Equal(t, tt.wantFull, isFull)
		})
	}
}

func TestSettlementStateDerivation(t *testing.T) {
	unbilled := models.Booking{TotalAmount: 23650}
	assert.Equal(t, models.SettlementUnbilled, unbilled.SettlementState())

	partial := models.Booking{TotalAmount: 23650, PaidAmount: 10000, OutstandingAmount: 13650}
	assert.Equal(t, models.SettlementPartiallyPaid, partial.SettlementState())

	full := models.Booking{TotalAmount: 23650, PaidAmount: 23650, OutstandingAmount: 0}
	assert.Equal(t, models.SettlementFullyPaid, full.SettlementState())

	// A fee after full payment reopens the balance.
	reopened := models.Booking{TotalAmount: 25150, PaidAmount: 23650, OutstandingAmount: 1500}
	assert.Equal(t, models.SettlementPartiallyPaid, reopened.SettlementState())

	// Overpayment is a credit, still fully paid.
	credit := models.Booking{TotalAmount: 23650, PaidAmount: 24000, OutstandingAmount: -350}
	assert.Equal(t, models.SettlementFullyPaid, credit.SettlementState())
}

func TestSummarizeBooking(t *testing.T) {
	booking := models.Booking{
		ID: 1, ReferenceCode: "BK-TEST",
		TotalAmount: 23650, PaidAmount: 10000, OutstandingAmount: 13650,
	}
	payments := []models.PaymentRecord{
		{ID: 2, Amount: 4000, Reference: "TX-2"},
		{ID: 1, Amount: 6000, Reference: "TX-1"},
	}

	s := SummarizeBooking(&booking, payments)
	assert.Equal(t, 23650.0, s.TotalAmount)
	assert.Equal(t, 13650.0, s.OutstandingAmount)
	assert.False(t, s.IsFullyPaid)
	assert.Equal(t, models.SettlementPartiallyPaid, s.SettlementState)
	require.Len(t, s.Payments, 2)

	// Nil history still yields an empty slice, not null JSON.
	s = SummarizeBooking(&booking, nil)
	assert.NotNil(t, s.Payments)
}

func TestSettle_PartialPaymentSkipsSnapshotAndPromoUsage(t *testing.T) {
	f := newTestFixture(t)
	_, payments, _ := newBillingStack(f.DB)

	result, err := payments.Settle(SettleRequest{
		BookingID: f.Booking.ID,
		Amount:    floatPtr(10000),
		PromoCode: "WELCOME10",
		Method:    "cash",
	})
	require.NoError(t, err)

	assert.False(t, result.IsFullPayment)
	assert.Equal(t, 10000.0, result.PaymentAmount)

	// 21500 subtotal, 2150 promo, 10% tax on 19350.
	assert.Equal(t, 21285.0, result.Breakdown.GrandTotal)
	assert.Equal(t, 11285.0, result.Summary.OutstandingAmount)

	// A partial installment must not write the receipt or spend the promo.
	var snapshots, taxLines, discountLines int64
	f.DB.Model(&models.BreakdownSnapshot{}).Count(&snapshots)
	f.DB.Model(&models.TaxLineSnapshot{}).Count(&taxLines)
	f.DB.Model(&models.DiscountLineSnapshot{}).Count(&discountLines)
	assert.Zero(t, snapshots)
	assert.Zero(t, taxLines)
	assert.Zero(t, discountLines)

	var rule models.DiscountRule
	require.NoError(t, f.DB.First(&rule, f.Discount.ID).Error)
	assert.Equal(t, 0, rule.UsageCount)
}

func TestSettle_FullPaymentWritesSnapshotAndConsumesPromoOnce(t *testing.T) {
	f := newTestFixture(t)
	_, payments, _ := newBillingStack(f.DB)

	_, err := payments.Settle(SettleRequest{
		BookingID: f.Booking.ID,
		Amount:    floatPtr(10000),
		PromoCode: "WELCOME10",
		Method:    "cash",
	})
	require.NoError(t, err)

	// Completing installment: pay the remaining balance.
	result, err := payments.Settle(SettleRequest{
		BookingID: f.Booking.ID,
		PromoCode: "WELCOME10",
		Method:    "card",
	})
	require.NoError(t, err)
	assert.True(t, result.IsFullPayment)
	assert.Equal(t, 11285.0, result.PaymentAmount)
	assert.True(t, result.Breakdown.IsFullyPaid)

	var snapshot models.BreakdownSnapshot
	require.NoError(t, f.DB.Where("booking_id = ?", f.Booking.ID).First(&snapshot).Error)
	assert.Equal(t, 21285.0, snapshot.GrandTotal)
	assert.NotEmpty(t, snapshot.Document)

	var taxLines, discountLines int64
	f.DB.Model(&models.TaxLineSnapshot{}).Where("booking_id = ?", f.Booking.ID).Count(&taxLines)
	f.DB.Model(&models.DiscountLineSnapshot{}).Where("booking_id = ?", f.Booking.ID).Count(&discountLines)
	assert.EqualValues(t, 1, taxLines)
	assert.EqualValues(t, 1, discountLines)

	// The promo spanned two installments but is spent exactly once.
	var rule models.DiscountRule
	require.NoError(t, f.DB.First(&rule, f.Discount.ID).Error)
	assert.Equal(t, 1, rule.UsageCount)

	// Nothing owed: a further settle is rejected, not a zero payment.
	_, err = payments.Settle(SettleRequest{BookingID: f.Booking.ID, Method: "cash"})
	assert.ErrorIs(t, err, ErrAlreadySettled)
}

func TestSettle_FeeReopenDoesNotReconsumePromo(t *testing.T) {
	f := newTestFixture(t)
	_, payments, fees := newBillingStack(f.DB)

	_, err := payments.Settle(SettleRequest{
		BookingID: f.Booking.ID,
		PromoCode: "WELCOME10",
		Method:    "card",
	})
	require.NoError(t, err)

	// A late-checkout fee reopens the fully paid booking.
	_, err = fees.ApplyFee(f.Booking.ID, models.FeeLateCheckout, floatPtr(1500), "late checkout", "frontdesk")
	require.NoError(t, err)

	var booking models.Booking
	require.NoError(t, f.DB.First(&booking, f.Booking.ID).Error)
	assert.Equal(t, models.SettlementPartiallyPaid, booking.SettlementState())
	assert.Equal(t, 1500.0, booking.OutstandingAmount)

	result, err := payments.Settle(SettleRequest{
		BookingID: f.Booking.ID,
		PromoCode: "WELCOME10",
		Method:    "card",
	})
	require.NoError(t, err)
	assert.True(t, result.IsFullPayment)
	assert.Equal(t, 1500.0, result.PaymentAmount)

	// The booking-promo pairing was already committed once; re-settling after
	// the fee must not spend a second use.
	var rule models.DiscountRule
	require.NoError(t, f.DB.First(&rule, f.Discount.ID).Error)
	assert.Equal(t, 1, rule.UsageCount)

	var snapshot models.BreakdownSnapshot
	require.NoError(t, f.DB.Where("booking_id = ?", f.Booking.ID).First(&snapshot).Error)
	assert.Equal(t, 22785.0, snapshot.GrandTotal)
}
