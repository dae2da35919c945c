package main

import (
	"log"
	"os"
	"time"

	"github.com/farebid/farebid-backend/internal/database"
	"github.com/farebid/farebid-backend/internal/handlers"
	"github.com/farebid/farebid-backend/internal/middleware"
	"github.com/farebid/farebid-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

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

	// Initialize Redis (event channel for the presentation layer)
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

	// Serve locally stored uploads
	r.Static("/uploads", "/app/uploads")

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

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// User routes
			users := protected.Group("/users")
			{
				users.GET("/profile", handlers.GetProfile(db))
				users.PUT("/profile", handlers.UpdateProfile(db))
				users.POST("/avatar", handlers.UploadAvatar(db))
			}

			// Driver vehicle details
			driver := protected.Group("/driver")
			{
				driver.GET("/details", handlers.GetDriverDetails(db))
				driver.PUT("/details", handlers.UpdateDriverDetails(db))
			}

			// Trip routes
			trips := protected.Group("/trips")
			{
				trips.POST("", handlers.CreateTrip(db, hub))
				trips.GET("", handlers.GetOpenTrips(db))
				trips.GET("/mine", handlers.GetMyTrips(db))
				trips.POST("/:id/cancel", handlers.CancelTrip(db))
				trips.DELETE("/:id", handlers.DeleteTrip(db))
				trips.GET("/:id/bids", handlers.GetBidsForTrip(db))
				trips.POST("/:id/complete", handlers.CompleteTrip(db, hub))
				trips.POST("/:id/review", handlers.CreateReview(db))
				trips.GET("/:id/review", handlers.GetTripReview(db))
			}

			// Bid routes
			bids := protected.Group("/bids")
			{
				bids.POST("", handlers.SubmitBid(db, hub))
				bids.GET("/mine", handlers.GetMyBids(db))
				bids.POST("/:id/accept", handlers.AcceptBid(db, hub))
				bids.POST("/:id/reject", handlers.RejectBid(db, hub))
			}

			// Booking routes
			bookings := protected.Group("/bookings")
			{
				bookings.GET("/mine", handlers.GetMyBookings(db))
			}

			// Driver notification routes
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", handlers.GetMyNotifications(db))
				notifications.POST("/:id/read", handlers.MarkNotificationRead(db))
				notifications.POST("/:id/archive", handlers.ArchiveNotification(db))
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
