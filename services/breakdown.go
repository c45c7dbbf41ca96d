package services

import (
	"time"

	"hotel-billing/models"
	"hotel-billing/utils"
)

// BreakdownInput carries everything ComputeBreakdown needs. Taxes must arrive
// in the catalog reader's deterministic order; Payments newest-first.
type BreakdownInput struct {
	Booking    models.Booking
	Nights     int
	Rate       float64
	UsageLines []models.ServiceUsageLine
	Taxes      []models.TaxRule
	Fees       []models.FeeRecord
	Payments   []models.PaymentRecord

	// Discount is the resolved promo candidate, nil when no code was supplied.
	Discount *models.DiscountRule
	Now      time.Time
}

// ComputeBreakdown is the billing engine's pure core: no I/O, no mutation, so
// it is safe to call repeatedly for previews. Usage counters and ledgers are
// touched only by the settlement commit path.
func ComputeBreakdown(in BreakdownInput) (models.Breakdown, error) {
	b := models.Breakdown{
		BookingID:        in.Booking.ID,
		ReferenceCode:    in.Booking.ReferenceCode,
		Nights:           in.Nights,
		RatePerNight:     utils.Round2(in.Rate),
		Services:         []models.BreakdownServiceLine{},
		Taxes:            []models.BreakdownTaxLine{},
		Fees:             []models.BreakdownFeeLine{},
		PreviousPayments: []models.BreakdownPayment{},
	}

	b.RoomCharge = utils.Round2(in.Rate * float64(in.Nights))

	for _, line := range in.UsageLines {
		b.Services = append(b.Services, models.BreakdownServiceLine{
			ServiceID: line.ServiceID,
			Name:      line.Service.Name,
			Category:  line.Service.Category,
			Quantity:  line.Quantity,
			UnitPrice: utils.Round2(line.UnitPrice),
			LineTotal: utils.Round2(line.LineTotal),
		})
		b.ServicesTotal = utils.Round2(b.ServicesTotal + line.LineTotal)
	}

	b.Subtotal = utils.Round2(b.RoomCharge + b.ServicesTotal)

	if in.Discount != nil {
		amount, err := ResolveDiscountAmount(in.Discount, b.Subtotal, in.Now)
		if err != nil {
			return models.Breakdown{}, err
		}
		b.DiscountAmount = amount
		b.Discount = &models.BreakdownDiscount{
			RuleID:    in.Discount.ID,
			Name:      in.Discount.Name,
			Kind:      in.Discount.Kind,
			Value:     in.Discount.Value,
			PromoCode: in.Discount.PromoCode,
			Amount:    amount,
		}
	}

	b.TotalBeforeTax = utils.Round2(b.Subtotal - b.DiscountAmount)

	for _, rule := range in.Taxes {
		base := taxableBase(rule, b)
		var amount float64
		if rule.IsPercentage {
			amount = utils.Round2(base * rule.Rate / 100)
		} else {
			// Fixed-amount taxes charge the same regardless of base.
			amount = utils.Round2(rule.Rate)
		}
		b.Taxes = append(b.Taxes, models.BreakdownTaxLine{
			RuleID:        rule.ID,
			Name:          rule.Name,
			TaxType:       rule.TaxType,
			Rate:          rule.Rate,
			IsPercentage:  rule.IsPercentage,
			TaxableAmount: base,
			TaxAmount:     amount,
		})
		b.TaxAmount = utils.Round2(b.TaxAmount + amount)
	}

	for _, fee := range in.Fees {
		if fee.Waived {
			continue
		}
		b.Fees = append(b.Fees, models.BreakdownFeeLine{
			FeeRecordID: fee.ID,
			FeeType:     fee.FeeType,
			Reason:      fee.Reason,
			Amount:      utils.Round2(fee.Amount),
		})
		b.FeesAmount = utils.Round2(b.FeesAmount + fee.Amount)
	}

	// Fees are additive and post-tax; they are never taxed themselves.
	b.GrandTotal = utils.Round2(b.TotalBeforeTax + b.TaxAmount + b.FeesAmount)

	for _, p := range in.Payments {
		b.PreviousPayments = append(b.PreviousPayments, models.BreakdownPayment{
			PaymentID: p.ID,
			Amount:    utils.Round2(p.Amount),
			Method:    p.Method,
			Reference: p.Reference,
			PaidAt:    p.PaidAt,
		})
		b.PaidAmount = utils.Round2(b.PaidAmount + p.Amount)
	}

	b.OutstandingAmount = utils.Round2(b.GrandTotal - b.PaidAmount)
	b.IsFullyPaid = b.OutstandingAmount <= 0

	return b, nil
}

// taxableBase picks the base a tax rule applies to. For services-only rules
// the discount is allocated proportionally to the services share first, so a
// discount is never counted against both the room and the service bases.
func taxableBase(rule models.TaxRule, b models.Breakdown) float64 {
	switch rule.TaxType {
	case models.TaxTypeServicesOnly:
		if b.Subtotal <= 0 {
			return 0
		}
		return utils.Round2(b.ServicesTotal * (1 - b.DiscountAmount/b.Subtotal))
	default:
		// flat_rate_all and generic rules tax the full discounted total.
		return b.TotalBeforeTax
	}
}

// ResolveDiscountAmount validates a promo rule against the subtotal and
// returns the discount it grants. Validation only: the usage counter is not
// consumed here.
func ResolveDiscountAmount(rule *models.DiscountRule, subtotal float64, now time.Time) (float64, error) {
	if rule == nil || !rule.IsActive || !rule.InWindow(now) {
		return 0, ErrPromoInvalid
	}
	if subtotal < rule.MinBookingAmount {
		return 0, ErrPromoMinimumNotMet
	}
	if rule.Exhausted() {
		return 0, ErrPromoExhausted
	}

	var amount float64
	switch rule.Kind {
	case models.DiscountPercentage:
		amount = subtotal * rule.Value / 100
	case models.DiscountFixedAmount:
		amount = rule.Value
	default:
		return 0, ErrPromoInvalid
	}
	if rule.MaxDiscountAmount != nil && amount > *rule.MaxDiscountAmount {
		amount = *rule.MaxDiscountAmount
	}
	return utils.Round2(amount), nil
}

// PromoValidation is the read-only answer to "would this code apply?".
type PromoValidation struct {
	Valid          bool    `json:"valid"`
	DiscountAmount float64 `json:"discountAmount"`
	Reason         string  `json:"reason,omitempty"`
}

// ValidatePromo runs discount resolution without touching any state and folds
// the rejection, if any, into the result rather than an error.
func ValidatePromo(rule *models.DiscountRule, subtotal float64, now time.Time) PromoValidation {
	amount, err := ResolveDiscountAmount(rule, subtotal, now)
	if err != nil {
		return PromoValidation{Valid: false, Reason: err.Error()}
	}
	return PromoValidation{Valid: true, DiscountAmount: amount}
}
