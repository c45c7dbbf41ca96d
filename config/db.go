package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-billing/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_billing_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order.
	if err := DB.AutoMigrate(
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
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// SeedDatabase loads a minimal demo dataset so the billing endpoints have
// something to work against on a fresh database.
func SeedDatabase() {
	// ---------------- Staff ----------------
	var staffCount int64
	DB.Model(&models.StaffUser{}).Count(&staffCount)
	if staffCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default staff password: %v", err)
		} else {
			staff := models.StaffUser{
				FullName: "Front Desk",
				Username: "frontdesk@hotel.local",
				Password: string(hash),
				Role:     "Receptionist",
			}
			if err := DB.Create(&staff).Error; err != nil {
				log.Printf("warning: failed to create default staff user: %v", err)
			} else {
				log.Println("Default staff user seeded")
			}
		}
	}

	// ---------------- Branch ----------------
	var branch models.Branch
	if err := DB.First(&branch).Error; err != nil {
		branch = models.Branch{Name: "Main Branch", Address: "1 Hotel Road"}
		if err := DB.Create(&branch).Error; err != nil {
			log.Printf("warning: failed to seed branch: %v", err)
			return
		}
		log.Println("Branch seeded")
	}

	// ---------------- RoomTypes & Rooms ----------------
	var rtCount int64
	DB.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{TypeName: "Standard", Description: "Standard Room", MaxGuests: 2},
			{TypeName: "Superior", Description: "Superior Room", MaxGuests: 3},
			{TypeName: "Deluxe", Description: "Deluxe Room", MaxGuests: 4},
		}
		DB.Create(&roomTypes)

		rooms := []models.Room{
			{BranchID: branch.ID, RoomTypeID: &roomTypes[0].ID, RoomNumber: "101", Floor: "1", PricePerNight: 10000, MaxOccupancy: 2, Status: "Available"},
			{BranchID: branch.ID, RoomTypeID: &roomTypes[1].ID, RoomNumber: "201", Floor: "2", PricePerNight: 15000, MaxOccupancy: 3, Status: "Available"},
			{BranchID: branch.ID, RoomTypeID: &roomTypes[2].ID, RoomNumber: "301", Floor: "3", PricePerNight: 22000, MaxOccupancy: 4, Status: "Available"},
		}
		DB.Create(&rooms)
		log.Println("RoomTypes and Rooms seeded")
	}

	// ---------------- Services ----------------
	var svcCount int64
	DB.Model(&models.HotelService{}).Count(&svcCount)
	if svcCount == 0 {
		servicesList := []models.HotelService{
			{Name: "Breakfast", Category: "Dining", Price: 350, IsActive: true},
			{Name: "Laundry", Category: "Housekeeping", Price: 200, IsActive: true},
			{Name: "Airport Transfer", Category: "Transport", Price: 1500, IsActive: true},
		}
		DB.Create(&servicesList)
		log.Println("Services seeded")
	}

	// ---------------- Tax rules ----------------
	var taxCount int64
	DB.Model(&models.TaxRule{}).Count(&taxCount)
	if taxCount == 0 {
		taxes := []models.TaxRule{
			{BranchID: branch.ID, Name: "Service Charge", TaxType: models.TaxTypeServicesOnly, Rate: 10, IsPercentage: true, IsActive: true},
			{BranchID: branch.ID, Name: "VAT", TaxType: models.TaxTypeFlatRateAll, Rate: 7, IsPercentage: true, IsActive: true},
		}
		DB.Create(&taxes)
		log.Println("Tax rules seeded")
	}

	// ---------------- Discount rules ----------------
	var discountCount int64
	DB.Model(&models.DiscountRule{}).Count(&discountCount)
	if discountCount == 0 {
		cap := 5000.0
		discounts := []models.DiscountRule{
			{BranchID: branch.ID, Name: "Welcome 10%", Kind: models.DiscountPercentage, Value: 10, PromoCode: "WELCOME10", MinBookingAmount: 5000, MaxDiscountAmount: &cap, UsageLimit: 100, IsActive: true},
			{BranchID: branch.ID, Name: "Flat 500", Kind: models.DiscountFixedAmount, Value: 500, PromoCode: "FLAT500", IsActive: true},
		}
		DB.Create(&discounts)
		log.Println("Discount rules seeded")
	}

	// ---------------- Fee configs ----------------
	var feeCfgCount int64
	DB.Model(&models.FeeConfig{}).Count(&feeCfgCount)
	if feeCfgCount == 0 {
		lateCap := 10000.0
		configs := []models.FeeConfig{
			{BranchID: branch.ID, FeeType: models.FeeLateCheckout, CalcKind: models.FeeCalcPerHour, Value: 500, GraceMinutes: 60, MaxAmount: &lateCap, IsActive: true},
			{BranchID: branch.ID, FeeType: models.FeeNoShow, CalcKind: models.FeeCalcPercentage, Value: 50, IsActive: true},
		}
		DB.Create(&configs)
		log.Println("Fee configs seeded")
	}

	// ---------------- Demo guest ----------------
	var guestCount int64
	DB.Model(&models.Guest{}).Count(&guestCount)
	if guestCount == 0 {
		guest := models.Guest{FullName: "Walk-in Guest", Email: "guest@example.com"}
		if err := DB.Create(&guest).Error; err != nil {
			log.Printf("warning: failed to seed guest: %v", err)
		} else {
			log.Println("Guest seeded")
		}
	}
}
