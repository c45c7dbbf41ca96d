package controllers

import (
	"net/http"
	"strconv"

	"hotel-billing/services"
	"hotel-billing/utils"

	"github.com/gin-gonic/gin"
)

type FeeController struct {
	FeeSvc *services.FeeService
}

func NewFeeController(svc *services.FeeService) *FeeController {
	return &FeeController{FeeSvc: svc}
}

type ApplyFeePayload struct {
	FeeType string `json:"type" binding:"required"`
	// Amount omitted: compute from the branch's fee policy.
	Amount    *float64 `json:"amount,omitempty"`
	Reason    string   `json:"reason" binding:"required"`
	AppliedBy string   `json:"applied_by,omitempty"`
}

type WaiveFeePayload struct {
	Reason   string `json:"reason" binding:"required"`
	WaivedBy string `json:"waived_by,omitempty"`
}

func (fc *FeeController) ApplyFee(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var payload ApplyFeePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}
	record, err := fc.FeeSvc.ApplyFee(id, payload.FeeType, payload.Amount, payload.Reason, payload.AppliedBy)
	if err != nil {
		utils.JSONError(c, statusFor(err), errorCode(err))
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, record)
}

func (fc *FeeController) WaiveFee(c *gin.Context) {
	feeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || feeID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid_fee_id")
		return
	}
	var payload WaiveFeePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}
	record, err := fc.FeeSvc.WaiveFee(uint(feeID), payload.Reason, payload.WaivedBy)
	if err != nil {
		utils.JSONError(c, statusFor(err), errorCode(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, record)
}

func (fc *FeeController) ListFees(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	fees, err := fc.FeeSvc.ListFees(id)
	if err != nil {
		utils.JSONError(c, statusFor(err), errorCode(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, fees)
}
