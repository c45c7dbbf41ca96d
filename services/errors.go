package services

import "errors"

// Sentinel error codes. Controllers map these to HTTP statuses; the string
// form doubles as the machine-readable code in the response envelope.
var (
	// Caller-fixable validation errors.
	ErrInvalidDateRange     = errors.New("invalid_date_range")
	ErrInvalidPaymentAmount = errors.New("invalid_payment_amount")
	ErrInvalidFeeAmount     = errors.New("invalid_fee_amount")
	ErrInvalidQuantity      = errors.New("invalid_quantity")
	ErrAlreadySettled       = errors.New("already_settled")

	// Lookup failures.
	ErrBookingNotFound = errors.New("booking_not_found")
	ErrRoomNotFound    = errors.New("room_not_found")
	ErrGuestNotFound   = errors.New("guest_not_found")
	ErrServiceNotFound = errors.New("service_not_found")
	ErrFeeNotFound     = errors.New("fee_not_found")
	ErrPromoInvalid    = errors.New("promo_invalid")

	// Business-rule rejections.
	ErrPromoMinimumNotMet = errors.New("promo_minimum_not_met")
	ErrPromoExhausted     = errors.New("promo_exhausted")
)
