package services

import (
	"testing"
	"time"

	"hotel-billing/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives each test a fresh in-memory database with the full schema.
// A single connection keeps every query on the one in-memory instance.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.StaffUser{},
		&models.Branch{},
		&models.RoomType{},
		&models.Room{},
		&models.Guest{},
		&models.Booking{},
		&models.HotelService{},
		&models.BranchServicePrice{},
		&models.ServiceUsageLine{},
		&models.TaxRule{},
		&models.DiscountRule{},
		&models.FeeConfig{},
		&models.FeeRecord{},
		&models.FeeWaiverLog{},
		&models.PaymentRecord{},
		&models.BreakdownSnapshot{},
		&models.TaxLineSnapshot{},
		&models.DiscountLineSnapshot{},
	))

	return db
}

// testFixture is the standard billing scenario: 2 nights @ 10000, one 1500
// service line, one flat 10% tax, and a 10% promo with a usage limit.
type testFixture struct {
	DB       *gorm.DB
	Booking  models.Booking
	Discount models.DiscountRule
}

func newTestFixture(t *testing.T) testFixture {
	t.Helper()
	db := openTestDB(t)

	branch := models.Branch{Name: "Main Branch"}
	require.NoError(t, db.Create(&branch).Error)

	room := models.Room{BranchID: branch.ID, RoomNumber: "101", PricePerNight: 10000}
	require.NoError(t, db.Create(&room).Error)

	guest := models.Guest{FullName: "Walk-in Guest"}
	require.NoError(t, db.Create(&guest).Error)

	checkIn := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 2)
	booking := models.Booking{
		BranchID:      branch.ID,
		RoomID:        room.ID,
		GuestID:       guest.ID,
		ReferenceCode: "BK-FIXTURE",
		Status:        models.BookingStatusBooked,
		CheckInDate:   &checkIn,
		CheckOutDate:  &checkOut,
		Nights:        2,
		RatePerNight:  10000,
	}
	require.NoError(t, db.Create(&booking).Error)

	svc := models.HotelService{Name: "Airport Transfer", Category: "Transport", Price: 1500, IsActive: true}
	require.NoError(t, db.Create(&svc).Error)
	require.NoError(t, db.Create(&models.ServiceUsageLine{
		BookingID: booking.ID, ServiceID: svc.ID, Quantity: 1, UnitPrice: 1500, LineTotal: 1500,
	}).Error)

	require.NoError(t, db.Create(&models.TaxRule{
		BranchID: branch.ID, Name: "VAT", TaxType: models.TaxTypeFlatRateAll,
		Rate: 10, IsPercentage: true, IsActive: true,
	}).Error)

	discount := models.DiscountRule{
		BranchID: branch.ID, Name: "Welcome 10%", Kind: models.DiscountPercentage,
		Value: 10, PromoCode: "WELCOME10", UsageLimit: 5, IsActive: true,
	}
	require.NoError(t, db.Create(&discount).Error)

	return testFixture{DB: db, Booking: booking, Discount: discount}
}

func newBillingStack(db *gorm.DB) (*BillingService, *PaymentService, *FeeService) {
	catalog := NewCatalogService(db)
	billing := NewBillingService(db, catalog)
	return billing, NewPaymentService(db, billing), NewFeeService(db, catalog)
}
