package controllers

import (
	"errors"
	"net/http"

	"hotel-billing/services"
)

// statusFor maps service sentinel errors to HTTP statuses. Anything unknown
// is an infrastructure failure the caller may retry as a whole.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrGuestNotFound),
		errors.Is(err, services.ErrServiceNotFound),
		errors.Is(err, services.ErrFeeNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrInvalidPaymentAmount),
		errors.Is(err, services.ErrInvalidFeeAmount),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrPromoInvalid),
		errors.Is(err, services.ErrPromoMinimumNotMet),
		errors.Is(err, services.ErrPromoExhausted):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAlreadySettled):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorCode keeps the machine-readable sentinel string for known errors and
// hides internal detail otherwise.
func errorCode(err error) string {
	if statusFor(err) == http.StatusInternalServerError {
		return "internal_error"
	}
	return err.Error()
}
