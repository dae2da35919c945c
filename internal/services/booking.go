package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/farebid/farebid-backend/internal/models"
	"gorm.io/gorm"
)

// AcceptBid converts a pending bid into a confirmed booking. The trip and bid
// transitions are guarded conditional updates: each only applies if the row is
// still in the expected state, and zero rows affected means another acceptance
// won the race. All three writes commit or roll back together, so a trip can
// never end up booked without a booking row.
//
// Other pending bids on the trip are left pending on purpose: the traveler
// rejects them explicitly via RejectBid once they have looked at them.
func AcceptBid(db *gorm.DB, bidID, callerID uint, pickupTime time.Time) (*models.DriverBid, *models.Booking, error) {
	var bid models.DriverBid
	if err := db.Preload("Trip").Preload("Driver").First(&bid, bidID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: bid %d", models.ErrNotFound, bidID)
		}
		return nil, nil, err
	}

	if bid.Trip.TravelerID != callerID {
		return nil, nil, fmt.Errorf("%w: only the trip owner can accept a bid", models.ErrNotAllowed)
	}

	if bid.Status != models.BidStatusPending {
		return nil, nil, fmt.Errorf("%w: bid is %s", models.ErrConflict, bid.Status)
	}

	booking := models.Booking{
		TripID:      bid.TripID,
		DriverID:    bid.DriverID,
		DriverBidID: bid.ID,
		FinalPrice:  bid.BidAmount,
		Status:      models.BookingStatusConfirmed,
		PickupTime:  pickupTime,
	}

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	result := tx.Model(&models.Trip{}).
		Where("id = ? AND status = ?", bid.TripID, models.TripStatusOpen).
		Update("status", models.TripStatusBooked)
	if result.Error != nil {
		tx.Rollback()
		return nil, nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, nil, fmt.Errorf("%w: trip is no longer open", models.ErrConflict)
	}

	result = tx.Model(&models.DriverBid{}).
		Where("id = ? AND status = ?", bid.ID, models.BidStatusPending).
		Update("status", models.BidStatusAccepted)
	if result.Error != nil {
		tx.Rollback()
		return nil, nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, nil, fmt.Errorf("%w: bid is no longer pending", models.ErrConflict)
	}

	if err := tx.Create(&booking).Error; err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}

	bid.Status = models.BidStatusAccepted
	bid.Trip.Status = models.TripStatusBooked
	return &bid, &booking, nil
}

// CompleteTrip closes out a booked trip. Allowed for the trip owner or the
// booked driver. Uses the same guarded-update discipline as AcceptBid: the
// trip must still be booked and the booking still confirmed, otherwise the
// call lost a race with another completion and gets a conflict.
func CompleteTrip(db *gorm.DB, tripID, callerID uint) (*models.Booking, error) {
	var trip models.Trip
	if err := db.First(&trip, tripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: trip %d", models.ErrNotFound, tripID)
		}
		return nil, err
	}

	var booking models.Booking
	if err := db.Where("trip_id = ?", tripID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no booking for trip %d", models.ErrNotFound, tripID)
		}
		return nil, err
	}

	if trip.TravelerID != callerID && booking.DriverID != callerID {
		return nil, fmt.Errorf("%w: only the trip owner or the booked driver can complete a trip", models.ErrNotAllowed)
	}

	if booking.Status != models.BookingStatusConfirmed {
		return nil, fmt.Errorf("%w: booking is %s", models.ErrConflict, booking.Status)
	}

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	result := tx.Model(&models.Trip{}).
		Where("id = ? AND status = ?", tripID, models.TripStatusBooked).
		Update("status", models.TripStatusCompleted)
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, fmt.Errorf("%w: trip is not booked", models.ErrConflict)
	}

	result = tx.Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, models.BookingStatusConfirmed).
		Update("status", models.BookingStatusCompleted)
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, fmt.Errorf("%w: booking is no longer confirmed", models.ErrConflict)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusCompleted
	return &booking, nil
}
