package services

import (
	"testing"
	"time"

	"hotel-billing/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFeeAmount(t *testing.T) {
	cap := 10000.0

	tests := []struct {
		name  string
		cfg   models.FeeConfig
		base  float64
		hours float64
		want  float64
	}{
		{
			name: "fixed amount",
			cfg:  models.FeeConfig{CalcKind: models.FeeCalcFixedAmount, Value: 1500},
			want: 1500,
		},
		{
			name: "percentage of booking total",
			cfg:  models.FeeConfig{CalcKind: models.FeeCalcPercentage, Value: 50},
			base: 23650,
			want: 11825,
		},
		{
			name:  "per hour",
			cfg:   models.FeeConfig{CalcKind: models.FeeCalcPerHour, Value: 500},
			hours: 3,
			want:  1500,
		},
		{
			name:  "per hour clamped by cap",
			cfg:   models.FeeConfig{CalcKind: models.FeeCalcPerHour, Value: 500, MaxAmount: &cap},
			hours: 30,
			want:  10000,
		},
		{
			name: "percentage clamped by cap",
			cfg:  models.FeeConfig{CalcKind: models.FeeCalcPercentage, Value: 50, MaxAmount: &cap},
			base: 100000,
			want: 10000,
		},
		{
			name:  "zero hours means no charge",
			cfg:   models.FeeConfig{CalcKind: models.FeeCalcPerHour, Value: 500},
			hours: 0,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFeeAmount(&tt.cfg, tt.base, tt.hours)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLateHours(t *testing.T) {
	checkout := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	// Inside the grace window: free.
	assert.Equal(t, 0.0, LateHours(checkout, checkout.Add(30*time.Minute), 60))
	assert.Equal(t, 0.0, LateHours(checkout, checkout.Add(60*time.Minute), 60))

	// A started hour counts as a full hour.
	assert.Equal(t, 1.0, LateHours(checkout, checkout.Add(61*time.Minute), 60))
	assert.Equal(t, 1.0, LateHours(checkout, checkout.Add(2*time.Hour), 60))
	assert.Equal(t, 2.0, LateHours(checkout, checkout.Add(2*time.Hour+time.Minute), 60))

	// No grace configured.
	assert.Equal(t, 1.0, LateHours(checkout, checkout.Add(time.Minute), 0))
	assert.Equal(t, 0.0, LateHours(checkout, checkout, 0))
}

func TestApplyFee_AddsToBookingTotals(t *testing.T) {
	f := newTestFixture(t)
	_, _, fees := newBillingStack(f.DB)

	record, err := fees.ApplyFee(f.Booking.ID, models.FeeLateCheckout, floatPtr(1500), "late checkout", "frontdesk")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, record.Amount)

	var booking models.Booking
	require.NoError(t, f.DB.First(&booking, f.Booking.ID).Error)
	assert.Equal(t, 1500.0, booking.TotalAmount)
	assert.Equal(t, 1500.0, booking.OutstandingAmount)

	_, err = fees.ApplyFee(f.Booking.ID, models.FeeOther, floatPtr(-1), "bogus", "")
	assert.ErrorIs(t, err, ErrInvalidFeeAmount)
}

func TestWaiveFee_RepeatWaiveReversesTotalsOnce(t *testing.T) {
	f := newTestFixture(t)
	_, _, fees := newBillingStack(f.DB)

	record, err := fees.ApplyFee(f.Booking.ID, models.FeeLateCheckout, floatPtr(1500), "late checkout", "frontdesk")
	require.NoError(t, err)

	waived, err := fees.WaiveFee(record.ID, "goodwill", "manager")
	require.NoError(t, err)
	assert.True(t, waived.Waived)

	var booking models.Booking
	require.NoError(t, f.DB.First(&booking, f.Booking.ID).Error)
	assert.Equal(t, 0.0, booking.TotalAmount)
	assert.Equal(t, 0.0, booking.OutstandingAmount)

	// Waiving again succeeds but must not reverse the totals a second time
	// or write a second audit row.
	waived, err = fees.WaiveFee(record.ID, "goodwill again", "manager")
	require.NoError(t, err)
	assert.True(t, waived.Waived)

	require.NoError(t, f.DB.First(&booking, f.Booking.ID).Error)
	assert.Equal(t, 0.0, booking.TotalAmount)
	assert.Equal(t, 0.0, booking.OutstandingAmount)

	var audits int64
	f.DB.Model(&models.FeeWaiverLog{}).Where("fee_record_id = ?", record.ID).Count(&audits)
	assert.EqualValues(t, 1, audits)

	_, err = fees.WaiveFee(99999, "missing", "")
	assert.ErrorIs(t, err, ErrFeeNotFound)
}
