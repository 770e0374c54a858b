package main

import (
	"log"
	"os"
	"time"

	"github.com/driveline/rental-backend/internal/database"
	"github.com/driveline/rental-backend/internal/handlers"
	"github.com/driveline/rental-backend/internal/logger"
	"github.com/driveline/rental-backend/internal/middleware"
	"github.com/driveline/rental-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	// Structured logging to a rotating file
	logger.Setup()

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
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

	// Initialize Redis
	if err := services.InitRedis(); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Initialize Storage (S3 or local fallback)
	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	// Initialize router
	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Serve locally stored uploads when S3 is not configured
	if !services.IsUsingS3() {
		r.Static("/uploads", "./uploads")
	}

	const (
		admin       = "admin"
		employee    = "employee"
		stakeholder = "stakeholder"
	)

	// Routes
	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
		}

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))
		api.GET("/ws/status", middleware.AuthMiddleware(), middleware.RequireRoles(admin), handlers.HubStatus(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// User routes
			users := protected.Group("/users")
			{
				users.GET("/profile", handlers.GetProfile(db))
				users.PUT("/profile", handlers.UpdateProfile(db))
				users.GET("", middleware.RequireRoles(admin), handlers.GetUsers(db))
				users.PATCH("/:id", middleware.RequireRoles(admin), handlers.UpdateUser(db))
			}

			// Vehicle routes
			vehicles := protected.Group("/vehicles")
			{
				vehicles.POST("", middleware.RequireRoles(admin, employee, stakeholder), handlers.CreateVehicle(db))
				vehicles.GET("", handlers.GetVehicles(db))
				vehicles.GET("/:id", handlers.GetVehicle(db))
				vehicles.PATCH("/:id", middleware.RequireRoles(admin, employee), handlers.UpdateVehicle(db))
				vehicles.DELETE("/:id", middleware.RequireRoles(admin), handlers.DeleteVehicle(db))
				vehicles.POST("/:id/photo", middleware.RequireRoles(admin, employee), handlers.UploadVehiclePhoto(db))
			}

			// Driver routes
			drivers := protected.Group("/drivers")
			drivers.Use(middleware.RequireRoles(admin, employee))
			{
				drivers.POST("", handlers.CreateDriver(db))
				drivers.GET("", handlers.GetDrivers(db))
				drivers.GET("/:id", handlers.GetDriver(db))
				drivers.PATCH("/:id", handlers.UpdateDriver(db))
				drivers.DELETE("/:id", handlers.DeactivateDriver(db))
				drivers.GET("/:id/availability", handlers.GetDriverAvailabilityStatus(db))
				drivers.POST("/:id/availability", handlers.UpdateDriverAvailability(db))
				drivers.POST("/:id/photo", handlers.UploadDriverPhoto(db))
			}

			// Customer routes
			customers := protected.Group("/customers")
			customers.Use(middleware.RequireRoles(admin, employee))
			{
				customers.GET("", handlers.GetCustomers(db))
				customers.GET("/:id", handlers.GetCustomer(db))
			}

			// Booking routes
			bookings := protected.Group("/bookings")
			bookings.Use(middleware.RequireRoles(admin, employee))
			{
				bookings.POST("", handlers.CreateBooking(db, hub))
				bookings.GET("", handlers.GetBookings(db))
				bookings.GET("/:id", handlers.GetBooking(db))
				bookings.PATCH("/:id", handlers.UpdateBooking(db, hub))
				bookings.POST("/:id/cancel", handlers.CancelBooking(db, hub))
				bookings.POST("/:id/complete", handlers.CompleteBooking(db, hub))
			}

			// Expense routes
			expenses := protected.Group("/expenses")
			expenses.Use(middleware.RequireRoles(admin, employee))
			{
				expenses.POST("", handlers.CreateExpense(db))
				expenses.GET("", handlers.GetExpenses(db))
				expenses.PATCH("/:id", handlers.UpdateExpense(db))
				expenses.DELETE("/:id", handlers.DeleteExpense(db))
			}

			// Dashboard routes
			dashboard := protected.Group("/dashboard")
			dashboard.Use(middleware.RequireRoles(admin, employee))
			{
				dashboard.GET("/summary", handlers.GetDashboardSummary(db))
				dashboard.GET("/monthly", handlers.GetMonthlyBreakdown(db))
			}

			// Report routes
			reports := protected.Group("/reports")
			{
				reports.GET("/vehicles/:id", middleware.RequireRoles(admin, employee), handlers.GetVehicleReport(db))
				reports.GET("/stakeholders/:id", middleware.RequireRoles(admin, employee, stakeholder), handlers.GetStakeholderReport(db))
			}
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
