package models

import (
	"time"

	"gorm.io/gorm"
)

type TripStatus string

const (
	TripStatusOpen      TripStatus = "open"
	TripStatusBooked    TripStatus = "booked"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// Trip is a traveler's transport request. Status only ever moves forward:
// open -> booked -> completed, or open -> cancelled.
type Trip struct {
	gorm.Model
	TravelerID    uint       `json:"travelerId" gorm:"not null;index"`
	Traveler      User       `json:"traveler"`
	Origin        string     `json:"origin" gorm:"not null"`
	Destination   string     `json:"destination" gorm:"not null"`
	DepartureDate time.Time  `json:"departureDate" gorm:"not null"`
	SeatsNeeded   int        `json:"seatsNeeded" gorm:"not null"`
	MaxPrice      float64    `json:"maxPrice" gorm:"not null"`
	VehicleType   string     `json:"vehicleType" gorm:"column:vehicle_type"`
	Description   string     `json:"description"`
	Status        TripStatus `json:"status" gorm:"not null;default:'open';index"`
}
