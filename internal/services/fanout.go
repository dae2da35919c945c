package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/farebid/farebid-backend/internal/models"
	"gorm.io/gorm"
)

// NotifyDriversOfTrip writes one notification row per verified driver for a
// newly created trip. The trip fields are snapshotted into each row so the
// notification survives later edits to the trip. Zero verified drivers is a
// success with a count of zero. Per-driver insert failures are logged and
// skipped; the returned count is the number of rows actually written.
//
// Callers treat the whole operation as best-effort: trip creation must not
// fail because fanout did.
func NotifyDriversOfTrip(db *gorm.DB, hub *Hub, tripID uint) (int, error) {
	var trip models.Trip
	if err := db.Preload("Traveler").First(&trip, tripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: trip %d", models.ErrNotFound, tripID)
		}
		return 0, err
	}

	var drivers []models.User
	if err := db.Where("user_type = ? AND is_verified = ?", models.UserTypeDriver, true).
		Find(&drivers).Error; err != nil {
		return 0, err
	}

	if len(drivers) == 0 {
		return 0, nil
	}

	sent := 0
	for _, driver := range drivers {
		notification := models.DriverNotification{
			DriverID:      driver.ID,
			TripID:        trip.ID,
			Origin:        trip.Origin,
			Destination:   trip.Destination,
			DepartureDate: trip.DepartureDate,
			SeatsNeeded:   trip.SeatsNeeded,
			MaxPrice:      trip.MaxPrice,
			TravelerName:  trip.Traveler.Username,
			TravelerPhone: trip.Traveler.PhoneNumber,
			Status:        models.NotificationStatusUnread,
		}

		if err := db.Create(&notification).Error; err != nil {
			log.Printf("Failed to notify driver %d of trip %d: %v", driver.ID, trip.ID, err)
			continue
		}
		sent++
	}

	if hub != nil {
		hub.SendTripCreatedToDrivers(TripCreated{
			TripID:        trip.ID,
			Origin:        trip.Origin,
			Destination:   trip.Destination,
			DepartureDate: trip.DepartureDate,
			SeatsNeeded:   trip.SeatsNeeded,
			MaxPrice:      trip.MaxPrice,
		})
	}

	return sent, nil
}
