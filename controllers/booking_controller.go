package controllers

import (
	"net/http"
	"strconv"

	"hotel-billing/services"
	"hotel-billing/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	BookingSvc *services.BookingService
	UsageSvc   *services.UsageService
}

func NewBookingController(booking *services.BookingService, usage *services.UsageService) *BookingController {
	return &BookingController{BookingSvc: booking, UsageSvc: usage}
}

type AddUsagePayload struct {
	ServiceID uint `json:"service_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}
	booking, err := bc.BookingSvc.Create(req)
	if err != nil {
		utils.JSONError(c, statusFor(err), errorCode(err))
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

func (bc *BookingController) GetBookings(c *gin.Context) {
	bookings, err := bc.BookingSvc.List()
	if err != nil {
		utils.JSONError(c, statusFor(err), errorCode(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (bc *BookingController) GetBookingByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid_booking_id")
		return
	}
	booking, err := bc.BookingSvc.GetByID(uint(id))
	if err != nil {
		utils.JSONError(c, statusFor(err), errorCode(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) AddServiceUsage(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var payload AddUsagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload")
		return
	}
	line, err := bc.UsageSvc.AddLine(id, payload.ServiceID, payload.Quantity)
	if err != nil {
		utils.JSONError(c, statusFor(err), errorCode(err))
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, line)
}

func (bc *BookingController) GetServiceUsage(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	lines, err := bc.UsageSvc.List(id)
	if err != nil {
		utils.JSONError(c, statusFor(err), errorCode(err))
		return
	}
	utils.JSONSuccess(c, http.StatusOK, lines)
}
