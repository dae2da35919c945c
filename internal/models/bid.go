package models

import (
	"gorm.io/gorm"
)

type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusAccepted BidStatus = "accepted"
	BidStatusRejected BidStatus = "rejected"
)

// DriverBid is a driver's priced offer on a trip. The unique index on
// (trip_id, driver_id) makes resubmission an update, never a second row.
type DriverBid struct {
	gorm.Model
	TripID       uint      `json:"tripId" gorm:"not null;uniqueIndex:idx_bids_trip_driver"`
	Trip         Trip      `json:"trip"`
	DriverID     uint      `json:"driverId" gorm:"not null;uniqueIndex:idx_bids_trip_driver"`
	Driver       User      `json:"driver"`
	BidAmount    float64   `json:"bidAmount" gorm:"not null"`
	VehicleType  string    `json:"vehicleType" gorm:"not null"`
	LicensePlate string    `json:"licensePlate" gorm:"not null"`
	VehicleColor string    `json:"vehicleColor"`
	Notes        string    `json:"notes"`
	Status       BidStatus `json:"status" gorm:"not null;default:'pending';index"`
}
