package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-billing/models"
	"hotel-billing/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingService is the thin booking provider the billing engine runs
// against: create/list/fetch with running totals. Lifecycle workflow beyond
// that lives elsewhere.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

const dateLayout = "2006-01-02"

type CreateBookingRequest struct {
	BranchID       uint   `json:"branch_id" binding:"required"`
	RoomID         uint   `json:"room_id" binding:"required"`
	GuestID        uint   `json:"guest_id" binding:"required"`
	CheckIn        string `json:"check_in" binding:"required"`
	CheckOut       string `json:"check_out" binding:"required"`
	NumberOfGuests int    `json:"number_of_guests"`
}

// Create validates the date range, snapshots the room's nightly rate and
// writes the booking with zeroed totals (state Unbilled until first payment).
func (s *BookingService) Create(req CreateBookingRequest) (models.Booking, error) {
	checkIn, err := time.Parse(dateLayout, strings.TrimSpace(req.CheckIn))
	if err != nil {
		return models.Booking{}, ErrInvalidDateRange
	}
	checkOut, err := time.Parse(dateLayout, strings.TrimSpace(req.CheckOut))
	if err != nil {
		return models.Booking{}, ErrInvalidDateRange
	}
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights <= 0 {
		return models.Booking{}, ErrInvalidDateRange
	}

	var room models.Room
	if err := s.DB.First(&room, req.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrRoomNotFound
		}
		return models.Booking{}, fmt.Errorf("failed to load room: %w", err)
	}

	var guest models.Guest
	if err := s.DB.First(&guest, req.GuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrGuestNotFound
		}
		return models.Booking{}, fmt.Errorf("failed to load guest: %w", err)
	}

	booking := models.Booking{
		BranchID:       req.BranchID,
		RoomID:         room.ID,
		GuestID:        guest.ID,
		ReferenceCode:  newBookingReference(),
		Status:         models.BookingStatusBooked,
		CheckInDate:    &checkIn,
		CheckOutDate:   &checkOut,
		Nights:         nights,
		NumberOfGuests: req.NumberOfGuests,
		RatePerNight:   utils.Round2(room.PricePerNight),
	}
	if err := s.DB.Create(&booking).Error; err != nil {
		return models.Booking{}, fmt.Errorf("failed to create booking: %w", err)
	}
	return booking, nil
}

func (s *BookingService) GetByID(id uint) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.Preload("Branch").Preload("Room").Preload("Guest").First(&booking, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to load booking: %w", err)
	}
	return booking, nil
}

func (s *BookingService) List() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Room").Preload("Guest").Order("id DESC").Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func newBookingReference() string {
	return "BK-" + strings.ToUpper(uuid.NewString()[:8])
}
