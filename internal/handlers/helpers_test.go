package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/farebid/farebid-backend/internal/middleware"
	"github.com/farebid/farebid-backend/internal/models"
	"github.com/farebid/farebid-backend/internal/services"
	"github.com/farebid/farebid-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Trip{},
		&models.DriverBid{},
		&models.Booking{},
		&models.DriverNotification{},
		&models.Review{},
	))

	return db
}

// setupTest builds a router wired the same way as cmd/api, backed by an
// in-memory database and a miniredis instance.
func setupTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	mr := miniredis.RunT(t)
	services.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	db := setupTestDB(t)

	hub := services.NewHub()
	go hub.Run()

	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", Register(db))
		auth.POST("/login", Login(db))
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/users/profile", GetProfile(db))
		protected.PUT("/users/profile", UpdateProfile(db))

		protected.GET("/driver/details", GetDriverDetails(db))
		protected.PUT("/driver/details", UpdateDriverDetails(db))

		protected.POST("/trips", CreateTrip(db, hub))
		protected.GET("/trips", GetOpenTrips(db))
		protected.GET("/trips/mine", GetMyTrips(db))
		protected.POST("/trips/:id/cancel", CancelTrip(db))
		protected.DELETE("/trips/:id", DeleteTrip(db))
		protected.GET("/trips/:id/bids", GetBidsForTrip(db))
		protected.POST("/trips/:id/complete", CompleteTrip(db, hub))
		protected.POST("/trips/:id/review", CreateReview(db))
		protected.GET("/trips/:id/review", GetTripReview(db))

		protected.POST("/bids", SubmitBid(db, hub))
		protected.GET("/bids/mine", GetMyBids(db))
		protected.POST("/bids/:id/accept", AcceptBid(db, hub))
		protected.POST("/bids/:id/reject", RejectBid(db, hub))

		protected.GET("/bookings/mine", GetMyBookings(db))

		protected.GET("/notifications", GetMyNotifications(db))
		protected.POST("/notifications/:id/read", MarkNotificationRead(db))
		protected.POST("/notifications/:id/archive", ArchiveNotification(db))
	}

	return db, r
}

func createUser(t *testing.T, db *gorm.DB, username string, userType models.UserType, verified bool) models.User {
	t.Helper()

	user := models.User{
		Username:    username,
		Email:       username + "@example.com",
		PhoneNumber: "0700000000",
		UserType:    userType,
		IsVerified:  verified,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createOpenTrip(t *testing.T, db *gorm.DB, traveler models.User) models.Trip {
	t.Helper()

	trip := models.Trip{
		TravelerID:    traveler.ID,
		Origin:        "Kampala",
		Destination:   "Entebbe",
		DepartureDate: time.Now().Add(48 * time.Hour),
		SeatsNeeded:   2,
		MaxPrice:      50,
		Status:        models.TripStatusOpen,
	}
	require.NoError(t, db.Create(&trip).Error)
	return trip
}

func createPendingBid(t *testing.T, db *gorm.DB, trip models.Trip, driver models.User, amount float64) models.DriverBid {
	t.Helper()

	bid := models.DriverBid{
		TripID:       trip.ID,
		DriverID:     driver.ID,
		BidAmount:    amount,
		VehicleType:  "Van",
		LicensePlate: "UAX 123B",
		Status:       models.BidStatusPending,
	}
	require.NoError(t, db.Create(&bid).Error)
	return bid
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token, err := utils.GenerateToken(&user)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
