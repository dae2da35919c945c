package database

import (
	"github.com/farebid/farebid-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.Trip{},
		&models.DriverBid{},
		&models.Booking{},
		&models.DriverNotification{},
		&models.Review{},
	)
	if err != nil {
		return err
	}

	// Status and range columns carry check constraints so a bad write fails
	// loudly instead of parking a row in an unknown state.
	db.Exec(`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_user_type_check`)
	if err := db.Exec(`ALTER TABLE users ADD CONSTRAINT users_user_type_check CHECK (user_type IN ('traveler', 'driver'))`).Error; err != nil {
		return err
	}

	db.Exec(`ALTER TABLE trips DROP CONSTRAINT IF EXISTS trips_status_check`)
	if err := db.Exec(`ALTER TABLE trips ADD CONSTRAINT trips_status_check CHECK (status IN ('open', 'booked', 'completed', 'cancelled'))`).Error; err != nil {
		return err
	}

	db.Exec(`ALTER TABLE trips DROP CONSTRAINT IF EXISTS trips_seats_needed_check`)
	if err := db.Exec(`ALTER TABLE trips ADD CONSTRAINT trips_seats_needed_check CHECK (seats_needed >= 1)`).Error; err != nil {
		return err
	}

	db.Exec(`ALTER TABLE driver_bids DROP CONSTRAINT IF EXISTS driver_bids_status_check`)
	if err := db.Exec(`ALTER TABLE driver_bids ADD CONSTRAINT driver_bids_status_check CHECK (status IN ('pending', 'accepted', 'rejected'))`).Error; err != nil {
		return err
	}

	db.Exec(`ALTER TABLE driver_bids DROP CONSTRAINT IF EXISTS driver_bids_amount_check`)
	if err := db.Exec(`ALTER TABLE driver_bids ADD CONSTRAINT driver_bids_amount_check CHECK (bid_amount > 0)`).Error; err != nil {
		return err
	}

	db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`)
	if err := db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('confirmed', 'completed'))`).Error; err != nil {
		return err
	}

	db.Exec(`ALTER TABLE reviews DROP CONSTRAINT IF EXISTS reviews_rating_check`)
	if err := db.Exec(`ALTER TABLE reviews ADD CONSTRAINT reviews_rating_check CHECK (rating BETWEEN 1 AND 5)`).Error; err != nil {
		return err
	}

	return nil
}
