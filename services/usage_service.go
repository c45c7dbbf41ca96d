package services

import (
	"errors"
	"fmt"

	"hotel-billing/models"
	"hotel-billing/utils"

	"gorm.io/gorm"
)

// UsageService records ancillary service consumption against a booking.
// Lines capture the unit price at time of use and are immutable afterwards.
type UsageService struct {
	DB *gorm.DB
}

func NewUsageService(db *gorm.DB) *UsageService {
	return &UsageService{DB: db}
}

// AddLine records one consumption. The unit price is the branch override when
// one exists, otherwise the catalog price.
func (s *UsageService) AddLine(bookingID, serviceID uint, quantity int) (models.ServiceUsageLine, error) {
	if quantity <= 0 {
		return models.ServiceUsageLine{}, ErrInvalidQuantity
	}

	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ServiceUsageLine{}, ErrBookingNotFound
		}
		return models.ServiceUsageLine{}, fmt.Errorf("failed to load booking: %w", err)
	}

	var svc models.HotelService
	if err := s.DB.Where("is_active = ?", true).First(&svc, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ServiceUsageLine{}, ErrServiceNotFound
		}
		return models.ServiceUsageLine{}, fmt.Errorf("failed to load service: %w", err)
	}

	unitPrice := svc.Price
	var override models.BranchServicePrice
	err := s.DB.Where("branch_id = ? AND service_id = ? AND is_active = ?", booking.BranchID, serviceID, true).
		First(&override).Error
	if err == nil {
		unitPrice = override.Price
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ServiceUsageLine{}, fmt.Errorf("failed to load branch price: %w", err)
	}

	line := models.ServiceUsageLine{
		BookingID: booking.ID,
		ServiceID: svc.ID,
		Quantity:  quantity,
		UnitPrice: utils.Round2(unitPrice),
		LineTotal: utils.Round2(unitPrice * float64(quantity)),
	}
	if err := s.DB.Create(&line).Error; err != nil {
		return models.ServiceUsageLine{}, fmt.Errorf("failed to create usage line: %w", err)
	}
	line.Service = svc
	return line, nil
}

func (s *UsageService) List(bookingID uint) ([]models.ServiceUsageLine, error) {
	var lines []models.ServiceUsageLine
	if err := s.DB.Preload("Service").
		Where("booking_id = ?", bookingID).
		Order("id ASC").
		Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("failed to load usage lines: %w", err)
	}
	return lines, nil
}
