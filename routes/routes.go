package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-billing/controllers"
	"hotel-billing/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	bkc *controllers.BookingController,
	blc *controllers.BillingController,
	fc *controllers.FeeController,
	cc *controllers.CatalogController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		bookings := api.Group("/bookings")
		{
			bookings.GET("", bkc.GetBookings)
			bookings.POST("", bkc.CreateBooking)
			bookings.GET("/:id", bkc.GetBookingByID)
			bookings.POST("/:id/services", bkc.AddServiceUsage)
			bookings.GET("/:id/services", bkc.GetServiceUsage)
		}

		billing := api.Group("/billing")
		{
			billing.GET("/bookings/:id/breakdown", blc.GetBreakdown)
			billing.POST("/bookings/:id/promo/validate", blc.ValidatePromo)
			billing.POST("/bookings/:id/settle", blc.Settle)
			billing.GET("/bookings/:id/summary", blc.GetSummary)

			billing.GET("/bookings/:id/fees", fc.ListFees)
			billing.POST("/bookings/:id/fees", fc.ApplyFee)
			billing.POST("/fees/:id/waive", fc.WaiveFee)
		}

		branches := api.Group("/branches")
		{
			branches.GET("", cc.GetBranches)
			branches.GET("/:id/taxes", cc.GetBranchTaxes)
			branches.GET("/:id/discounts", cc.GetBranchDiscounts)
			branches.GET("/:id/services", cc.GetBranchServices)
		}

		api.GET("/rooms", cc.GetRooms)
		api.GET("/services", cc.GetServices)
	}

	return r
}
