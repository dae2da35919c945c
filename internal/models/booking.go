package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking is the contract created when a bid is accepted. FinalPrice is
// copied from the bid at acceptance time and never changes afterwards, so a
// later bid mutation cannot reprice a confirmed booking. The unique index on
// trip_id enforces one booking per trip.
type Booking struct {
	gorm.Model
	TripID      uint          `json:"tripId" gorm:"not null;uniqueIndex"`
	Trip        Trip          `json:"trip"`
	DriverID    uint          `json:"driverId" gorm:"not null;index"`
	Driver      User          `json:"driver"`
	DriverBidID uint          `json:"driverBidId" gorm:"not null"`
	FinalPrice  float64       `json:"finalPrice" gorm:"not null"`
	Status      BookingStatus `json:"status" gorm:"not null;default:'confirmed'"`
	PickupTime  time.Time     `json:"pickupTime"`
}
