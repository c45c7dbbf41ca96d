package models

import "time"

// Breakdown is the itemized monetary computation for a booking at a point in
// time. Every monetary field is rounded to 2 decimals. It is a plain value,
// not a table; the persisted form is BreakdownSnapshot.
type Breakdown struct {
	BookingID     uint   `json:"booking_id"`
	ReferenceCode string `json:"reference_code,omitempty"`

	Nights       int     `json:"nights"`
	RatePerNight float64 `json:"rate_per_night"`
	RoomCharge   float64 `json:"room_charge"`

	Services      []BreakdownServiceLine `json:"services"`
	ServicesTotal float64                `json:"services_total"`

	Subtotal float64 `json:"subtotal"`

	Discount       *BreakdownDiscount `json:"discount,omitempty"`
	DiscountAmount float64            `json:"discount_amount"`

	TotalBeforeTax float64 `json:"total_before_tax"`

	Taxes     []BreakdownTaxLine `json:"taxes"`
	TaxAmount float64            `json:"tax_amount"`

	Fees       []BreakdownFeeLine `json:"fees"`
	FeesAmount float64            `json:"fees_amount"`

	GrandTotal float64 `json:"grand_total"`

	PaidAmount        float64 `json:"paid_amount"`
	OutstandingAmount float64 `json:"outstanding_amount"`
	IsFullyPaid       bool    `json:"is_fully_paid"`

	PreviousPayments []BreakdownPayment `json:"previous_payments"`
}

type BreakdownServiceLine struct {
	ServiceID uint    `json:"service_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

type BreakdownDiscount struct {
	RuleID    uint    `json:"rule_id"`
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Value     float64 `json:"value"`
	PromoCode string  `json:"promo_code,omitempty"`
	Amount    float64 `json:"amount"`
}

type BreakdownTaxLine struct {
	RuleID        uint    `json:"rule_id"`
	Name          string  `json:"name"`
	TaxType       string  `json:"tax_type"`
	Rate          float64 `json:"rate"`
	IsPercentage  bool    `json:"is_percentage"`
	TaxableAmount float64 `json:"taxable_amount"`
	TaxAmount     float64 `json:"tax_amount"`
}

type BreakdownFeeLine struct {
	FeeRecordID uint    `json:"fee_record_id"`
	FeeType     string  `json:"fee_type"`
	Reason      string  `json:"reason,omitempty"`
	Amount      float64 `json:"amount"`
}

type BreakdownPayment struct {
	PaymentID uint      `json:"payment_id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	Reference string    `json:"reference"`
	PaidAt    time.Time `json:"paid_at"`
}
