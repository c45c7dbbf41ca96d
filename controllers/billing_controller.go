package controllers

import (
	"net/http"
	"strconv"

	"hotel-billing/services"
	"hotel-billing/utils"

	"github.com/gin-gonic/gin"
)

type BillingController struct {
	BillingSvc *services.BillingService
	PaymentSvc *services.PaymentService
}

func NewBillingController(billing *services.BillingService, payment *services.PaymentService) *BillingController {
	return &BillingController{BillingSvc: billing, PaymentSvc: payment}
}

type ValidatePromoPayload struct {
	Code string `json:"code" binding:"required"`
}

type SettlePayload struct {
	Amount      *float64 `json:"amount,omitempty"`
	PromoCode   string   `json:"promo_code,omitempty"`
	Method      string   `json:"method" binding:"required"`
	Reference   string   `json:"reference,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	ProcessedBy string   `json:"processed_by,omitempty"`
}

func bookingIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid_booking_id")
		return 0, false
	}
	return uint(id), true
}

// GetBreakdown is the read-only preview: recompute now, persist nothing.
func (bc *BillingController) GetBreakdown(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	breakdown, err := bc.BillingSvc.CalculateBreakdown(id, c.Query("promoCode"))
	if err != nil {
		utils.JSONError(c, statusFor(err), errorCode(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, breakdown)
}

func (bc *BillingController) ValidatePromo(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var payload ValidatePromoPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}
	validation, err := bc.BillingSvc.ValidatePromoCode(id, payload.Code)
	if err != nil {
		utils.JSONError(c, statusFor(err), errorCode(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, validation)
}

// Settle is the only mutating billing endpoint.
func (bc *BillingController) Settle(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var payload SettlePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}

	result, err := bc.PaymentSvc.Settle(services.SettleRequest{
		BookingID:   id,
		Amount:      payload.Amount,
		PromoCode:   payload.PromoCode,
		Method:      payload.Method,
		Reference:   payload.Reference,
		Notes:       payload.Notes,
		ProcessedBy: payload.ProcessedBy,
	})
	if err != nil {
		utils.JSONError(c, statusFor(err), errorCode(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

func (bc *BillingController) GetSummary(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	summary, err := bc.BillingSvc.GetSummary(id)
	if err != nil {
		utils.JSONError(c, statusFor(err), errorCode(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}
