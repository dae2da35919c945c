package models

import (
	"time"

	"gorm.io/gorm"
)

type NotificationStatus string

const (
	NotificationStatusUnread   NotificationStatus = "unread"
	NotificationStatusRead     NotificationStatus = "read"
	NotificationStatusArchived NotificationStatus = "archived"
)

// DriverNotification tells a verified driver about a new trip. The trip
// fields are copied at fanout time so the notification stays meaningful even
// if the trip is edited or deleted later.
type DriverNotification struct {
	gorm.Model
	DriverID uint `json:"driverId" gorm:"not null;index"`
	TripID   uint `json:"tripId" gorm:"not null;index"`

	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureDate time.Time `json:"departureDate"`
	SeatsNeeded   int       `json:"seatsNeeded"`
	MaxPrice      float64   `json:"maxPrice"`
	TravelerName  string    `json:"travelerName"`
	TravelerPhone string    `json:"travelerPhone"`

	Status NotificationStatus `json:"status" gorm:"not null;default:'unread';index"`
	ReadAt *time.Time         `json:"readAt"`
}
