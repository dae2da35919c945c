package models

import (
	"gorm.io/gorm"
)

// Review is a traveler's rating of the driver after a completed trip. One
// review per trip, enforced by the unique index.
type Review struct {
	gorm.Model
	TripID     uint   `json:"tripId" gorm:"not null;uniqueIndex"`
	ReviewerID uint   `json:"reviewerId" gorm:"not null"`
	RevieweeID uint   `json:"revieweeId" gorm:"not null;index"`
	Rating     int    `json:"rating" gorm:"not null"`
	Comment    string `json:"comment"`
}
