package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/farebid/farebid-backend/internal/models"
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
	// A single connection serializes concurrent transactions the way row
	// locks would on postgres.
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
