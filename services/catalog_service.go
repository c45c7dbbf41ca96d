package services

import (
	"errors"
	"fmt"
	"strings"

	"hotel-billing/models"

	"gorm.io/gorm"
)

// CatalogService is the rate catalog reader: pure reads of room rates,
// recorded usage lines, active tax rules and promo discount rules. All
// methods have Tx variants so the settlement transaction sees a consistent
// view.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// ResolvedCatalog is everything the calculator needs that lives in catalog
// tables rather than on the booking itself.
type ResolvedCatalog struct {
	Nights     int
	Rate       float64
	UsageLines []models.ServiceUsageLine
	Taxes      []models.TaxRule
	Discount   *models.DiscountRule
}

func (s *CatalogService) Resolve(booking *models.Booking, promoCode string) (ResolvedCatalog, error) {
	return s.ResolveTx(s.DB, booking, promoCode)
}

func (s *CatalogService) ResolveTx(tx *gorm.DB, booking *models.Booking, promoCode string) (ResolvedCatalog, error) {
	var out ResolvedCatalog

	nights, err := bookingNights(booking)
	if err != nil {
		return out, err
	}
	out.Nights = nights

	out.Rate = booking.RatePerNight
	if out.Rate <= 0 {
		var room models.Room
		if err := tx.First(&room, booking.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return out, ErrRoomNotFound
			}
			return out, fmt.Errorf("failed to load room rate: %w", err)
		}
		out.Rate = room.PricePerNight
	}

	// Lines are read verbatim: the unit price at time of use stands even if
	// the catalog price has since changed.
	if err := tx.Preload("Service").
		Where("booking_id = ?", booking.ID).
		Order("id ASC").
		Find(&out.UsageLines).Error; err != nil {
		return out, fmt.Errorf("failed to load service usage: %w", err)
	}

	taxes, err := s.ActiveTaxesTx(tx, booking.BranchID)
	if err != nil {
		return out, err
	}
	out.Taxes = taxes

	if code := strings.TrimSpace(promoCode); code != "" {
		rule, err := s.FindDiscountByPromoCodeTx(tx, booking.BranchID, code)
		if err != nil {
			return out, err
		}
		out.Discount = rule
	}

	return out, nil
}

// ActiveTaxesTx returns the branch's active tax rules ordered by name, ties
// broken by id, so repeated computations and snapshots line up.
func (s *CatalogService) ActiveTaxesTx(tx *gorm.DB, branchID uint) ([]models.TaxRule, error) {
	var taxes []models.TaxRule
	if err := tx.Where("branch_id = ? AND is_active = ?", branchID, true).
		Order("name ASC, id ASC").
		Find(&taxes).Error; err != nil {
		return nil, fmt.Errorf("failed to load tax rules: %w", err)
	}
	return taxes, nil
}

func (s *CatalogService) ActiveTaxes(branchID uint) ([]models.TaxRule, error) {
	return s.ActiveTaxesTx(s.DB, branchID)
}

func (s *CatalogService) FindDiscountByPromoCode(branchID uint, code string) (*models.DiscountRule, error) {
	return s.FindDiscountByPromoCodeTx(s.DB, branchID, code)
}

func (s *CatalogService) FindDiscountByPromoCodeTx(tx *gorm.DB, branchID uint, code string) (*models.DiscountRule, error) {
	var rule models.DiscountRule
	err := tx.Where("branch_id = ? AND promo_code = ?", branchID, strings.TrimSpace(code)).
		First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPromoInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up promo code: %w", err)
	}
	return &rule, nil
}

// GetFeeConfig returns the branch's active policy for a fee type, or
// (nil, nil) when the branch simply has none. Absence is a valid state, not
// an error to swallow.
func (s *CatalogService) GetFeeConfig(branchID uint, feeType string) (*models.FeeConfig, error) {
	return s.GetFeeConfigTx(s.DB, branchID, feeType)
}

func (s *CatalogService) GetFeeConfigTx(tx *gorm.DB, branchID uint, feeType string) (*models.FeeConfig, error) {
	var cfg models.FeeConfig
	err := tx.Where("branch_id = ? AND fee_type = ? AND is_active = ?", branchID, feeType, true).
		First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load fee config: %w", err)
	}
	return &cfg, nil
}

// BranchServices returns the active service catalog with the branch's price
// overrides applied.
func (s *CatalogService) BranchServices(branchID uint) ([]models.HotelService, error) {
	var catalog []models.HotelService
	if err := s.DB.Where("is_active = ?", true).
		Order("name ASC").
		Find(&catalog).Error; err != nil {
		return nil, fmt.Errorf("failed to load service catalog: %w", err)
	}

	var overrides []models.BranchServicePrice
	if err := s.DB.Where("branch_id = ? AND is_active = ?", branchID, true).
		Find(&overrides).Error; err != nil {
		return nil, fmt.Errorf("failed to load branch prices: %w", err)
	}

	priceFor := make(map[uint]float64, len(overrides))
	for _, o := range overrides {
		priceFor[o.ServiceID] = o.Price
	}
	for i := range catalog {
		if price, ok := priceFor[catalog[i].ID]; ok {
			catalog[i].Price = price
		}
	}
	return catalog, nil
}

func (s *CatalogService) ActiveDiscounts(branchID uint) ([]models.DiscountRule, error) {
	var rules []models.DiscountRule
	if err := s.DB.Where("branch_id = ? AND is_active = ?", branchID, true).
		Order("name ASC").
		Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to load discount rules: %w", err)
	}
	return rules, nil
}

// bookingNights derives the stay length in whole days. A zero or negative
// span is a caller error.
func bookingNights(booking *models.Booking) (int, error) {
	if booking.CheckInDate != nil && booking.CheckOutDate != nil {
		nights := int(booking.CheckOutDate.Sub(*booking.CheckInDate).Hours() / 24)
		if nights <= 0 {
			return 0, ErrInvalidDateRange
		}
		return nights, nil
	}
	if booking.Nights <= 0 {
		return 0, ErrInvalidDateRange
	}
	return booking.Nights, nil
}
