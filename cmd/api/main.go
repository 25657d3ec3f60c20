package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/ogarridot/transfersol-backend/internal/database"
	"github.com/ogarridot/transfersol-backend/internal/handlers"
	"github.com/ogarridot/transfersol-backend/internal/middleware"
	"github.com/ogarridot/transfersol-backend/internal/services"
	"github.com/ogarridot/transfersol-backend/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	// Initialize database with better error handling
	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Get underlying SQL DB instance
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	bookings := store.NewBookings(db)
	drivers := store.NewDrivers(db)

	// Translations drive all customer-facing email content. Unknown
	// languages resolve through English, then the raw key.
	translator := services.NewTranslationService("en")
	localesDir := os.Getenv("LOCALES_DIR")
	if localesDir == "" {
		localesDir = "./locales"
	}
	if err := translator.LoadDir(localesDir); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}

	// Initialize push notifications (optional - will log warning if not configured)
	push, err := services.NewPushService(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize push notifications: %v", err)
	}

	// Dashboard cache (optional - charts recompute on every request without it)
	cache, err := services.NewDashboardCache(context.Background(), 5*time.Minute)
	if err != nil {
		log.Printf("Dashboard cache warning: %v", err)
		cache = nil
	}

	// Export archive storage (S3 or local fallback)
	storage, err := services.NewExportStorage()
	if err != nil {
		log.Printf("Export storage warning: %v", err)
		storage = nil
	}

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	mailer := services.NewSMTPMailerFromEnv()
	engine := services.NewBookingService(bookings, mailer, push, hub, translator)

	// Initialize router
	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Routes
	api := r.Group("/api")
	{
		// Public routes
		api.POST("/register", handlers.Register(db))
		api.POST("/login", handlers.Login(db))

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		bookingRoutes := api.Group("/bookings")
		{
			// Public: customers submit bookings and check their status
			bookingRoutes.POST("", handlers.CreateBooking(engine))
			bookingRoutes.GET("/status/:id", handlers.GetBookingStatus(bookings))

			// Staff-only booking management
			protected := bookingRoutes.Group("")
			protected.Use(middleware.AuthMiddleware())
			{
				protected.GET("", handlers.GetAllBookings(bookings))
				protected.GET("/search", handlers.SearchBookings(bookings))
				protected.GET("/export", handlers.ExportBookingsCSV(bookings, storage))
				protected.POST("/archive", handlers.ArchiveBookings(bookings))
				protected.POST("/:id/confirm", handlers.ConfirmBooking(engine))
				protected.POST("/:id/cancel", handlers.CancelBooking(engine))
				protected.PUT("/:id", handlers.UpdateBooking(engine))
				protected.POST("/:id/request-info", handlers.RequestInfo(engine))
			}
		}

		driverRoutes := api.Group("/drivers")
		driverRoutes.Use(middleware.AuthMiddleware())
		{
			driverRoutes.GET("", handlers.GetAllDrivers(drivers))
			driverRoutes.POST("", handlers.CreateDriver(drivers))
			driverRoutes.PUT("/:id", handlers.UpdateDriver(drivers))
			driverRoutes.DELETE("/:id", handlers.DeleteDriver(drivers))
		}

		dashboardRoutes := api.Group("/dashboard")
		dashboardRoutes.Use(middleware.AuthMiddleware())
		{
			dashboardRoutes.GET("/phone-origin-distribution", handlers.GetPhoneOriginDistribution(bookings, cache))
			dashboardRoutes.GET("/roundtrip-vs-oneway", handlers.GetRoundtripVsOneway(bookings, cache))
			dashboardRoutes.GET("/bookings-by-period", handlers.GetBookingsByPeriod(bookings, cache))
			dashboardRoutes.GET("/popular-destinations", handlers.GetPopularDestinations(bookings, cache))
			dashboardRoutes.GET("/bookings-by-hour", handlers.GetBookingsByHour(bookings, cache))
		}

		notificationRoutes := api.Group("/notifications")
		notificationRoutes.Use(middleware.AuthMiddleware())
		{
			notificationRoutes.POST("/subscribe", handlers.SubscribePush(push))
			notificationRoutes.DELETE("/unsubscribe", handlers.UnsubscribePush(push))
			notificationRoutes.POST("/test", handlers.TestPush(push))
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
