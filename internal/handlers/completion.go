package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/farebid/farebid-backend/internal/models"
	"github.com/farebid/farebid-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CompleteTrip closes out a booked trip. Either the trip owner or the booked
// driver may call it.
func CompleteTrip(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		tripIDStr := c.Param("id")
		userId := c.GetUint("userId")

		tripID, err := strconv.ParseUint(tripIDStr, 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid trip ID"})
			return
		}

		booking, err := services.CompleteTrip(db, uint(tripID), userId)
		if err != nil {
			c.JSON(statusFromError(err), gin.H{"error": err.Error()})
			return
		}

		var trip models.Trip
		if err := db.First(&trip, tripID).Error; err == nil {
			completed := services.TripCompleted{TripID: trip.ID, BookingID: booking.ID}
			hub.SendTripCompleted(trip.TravelerID, completed)
			hub.SendTripCompleted(booking.DriverID, completed)
		}

		ctx := context.Background()
		if err := services.PublishTripEvent(ctx, uint(tripID), "completed", map[string]interface{}{
			"bookingId": booking.ID,
		}); err != nil {
			log.Printf("Failed to publish trip completed event: %v", err)
		}

		c.JSON(200, gin.H{
			"message": "Trip completed successfully",
			"tripId":  tripID,
			"booking": booking,
		})
	}
}

// CreateReview lets the traveler rate the driver after a completed trip.
// Rating is informational: completion never depends on a review existing.
func CreateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tripIDStr := c.Param("id")
		userId := c.GetUint("userId")

		tripID, err := strconv.ParseUint(tripIDStr, 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid trip ID"})
			return
		}

		var input struct {
			RevieweeID uint   `json:"revieweeId" binding:"required"`
			Rating     int    `json:"rating" binding:"required"`
			Comment    string `json:"comment"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.Rating < 1 || input.Rating > 5 {
			c.JSON(400, gin.H{"error": "Rating must be between 1 and 5"})
			return
		}

		var trip models.Trip
		if err := db.First(&trip, tripID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Trip not found"})
			return
		}

		if trip.TravelerID != userId {
			c.JSON(403, gin.H{"error": "Only the trip owner can review the driver"})
			return
		}

		if trip.Status != models.TripStatusCompleted {
			c.JSON(409, gin.H{"error": "Trip must be completed before reviewing"})
			return
		}

		review := models.Review{
			TripID:     trip.ID,
			ReviewerID: userId,
			RevieweeID: input.RevieweeID,
			Rating:     input.Rating,
			Comment:    input.Comment,
		}

		if err := db.Create(&review).Error; err != nil {
			// One review per trip, enforced by the unique index.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(409, gin.H{"error": "Trip has already been reviewed"})
				return
			}
			c.JSON(500, gin.H{"error": "Failed to create review"})
			return
		}

		c.JSON(201, review)
	}
}

// GetTripReview returns the review for a trip, if any
func GetTripReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tripID := c.Param("id")

		var review models.Review
		if err := db.Where("trip_id = ?", tripID).First(&review).Error; err != nil {
			c.JSON(404, gin.H{"error": "Review not found"})
			return
		}

		c.JSON(200, review)
	}
}
