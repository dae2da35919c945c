package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/farebid/farebid-backend/internal/models"
	"github.com/farebid/farebid-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateTrip handles the creation of a new trip request by a traveler
func CreateTrip(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userType := c.GetString("userType")

		if userType != string(models.UserTypeTraveler) {
			c.JSON(403, gin.H{"error": "Only travelers can create trips"})
			return
		}

		var input struct {
			Origin        string    `json:"origin" binding:"required"`
			Destination   string    `json:"destination" binding:"required"`
			DepartureDate time.Time `json:"departureDate" binding:"required"`
			SeatsNeeded   int       `json:"seatsNeeded" binding:"required"`
			MaxPrice      *float64  `json:"maxPrice" binding:"required"`
			VehicleType   string    `json:"vehicleType"`
			Description   string    `json:"description"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.SeatsNeeded < 1 {
			c.JSON(400, gin.H{"error": "Seats needed must be at least 1"})
			return
		}
		if *input.MaxPrice < 0 {
			c.JSON(400, gin.H{"error": "Max price must not be negative"})
			return
		}
		if input.DepartureDate.Before(time.Now()) {
			c.JSON(400, gin.H{"error": "Departure date must be in the future"})
			return
		}

		trip := models.Trip{
			TravelerID:    userId,
			Origin:        input.Origin,
			Destination:   input.Destination,
			DepartureDate: input.DepartureDate,
			SeatsNeeded:   input.SeatsNeeded,
			MaxPrice:      *input.MaxPrice,
			VehicleType:   input.VehicleType,
			Description:   input.Description,
			Status:        models.TripStatusOpen,
		}

		if err := db.Create(&trip).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create trip"})
			return
		}

		// Fan out notifications to verified drivers. Best-effort: the trip is
		// already committed and visible, a fanout failure only gets logged.
		go func(tripID uint) {
			if _, err := services.NotifyDriversOfTrip(db, hub, tripID); err != nil {
				log.Printf("Failed to notify drivers of trip %d: %v", tripID, err)
			}
		}(trip.ID)

		ctx := context.Background()
		if err := services.PublishTripEvent(ctx, trip.ID, "created", map[string]interface{}{
			"origin":      trip.Origin,
			"destination": trip.Destination,
			"maxPrice":    trip.MaxPrice,
		}); err != nil {
			log.Printf("Failed to publish trip created event: %v", err)
		}

		c.JSON(201, trip)
	}
}

// GetOpenTrips retrieves open trips, newest first, optionally narrowed by
// vehicle type
func GetOpenTrips(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicleType := c.Query("vehicleType")

		limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if err != nil || limit < 1 || limit > 100 {
			limit = 50
		}

		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			offset = 0
		}

		query := db.Preload("Traveler").
			Where("status = ?", models.TripStatusOpen)

		if vehicleType != "" {
			query = query.Where("vehicle_type = ?", vehicleType)
		}

		var trips []models.Trip
		if err := query.Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&trips).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch trips"})
			return
		}

		c.JSON(200, trips)
	}
}

// GetMyTrips retrieves all trips owned by the caller regardless of status
func GetMyTrips(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var trips []models.Trip
		if err := db.Where("traveler_id = ?", userId).
			Order("created_at DESC").
			Find(&trips).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch trips"})
			return
		}

		c.JSON(200, trips)
	}
}

// CancelTrip cancels an open trip. The status update is conditional on the
// trip still being open, so a cancellation racing an acceptance cannot undo
// the booking.
func CancelTrip(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tripID := c.Param("id")
		userId := c.GetUint("userId")

		var trip models.Trip
		if err := db.First(&trip, tripID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Trip not found"})
			return
		}

		if trip.TravelerID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized to cancel this trip"})
			return
		}

		result := db.Model(&models.Trip{}).
			Where("id = ? AND status = ?", trip.ID, models.TripStatusOpen).
			Update("status", models.TripStatusCancelled)
		if result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to cancel trip"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(409, gin.H{"error": "Trip is no longer open"})
			return
		}

		ctx := context.Background()
		if err := services.PublishTripEvent(ctx, trip.ID, "cancelled", nil); err != nil {
			log.Printf("Failed to publish trip cancelled event: %v", err)
		}

		c.JSON(200, gin.H{"message": "Trip cancelled successfully"})
	}
}

// DeleteTrip soft deletes a trip that is still open
func DeleteTrip(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tripID := c.Param("id")
		userId := c.GetUint("userId")

		var trip models.Trip
		if err := db.First(&trip, tripID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Trip not found"})
			return
		}

		if trip.TravelerID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized to delete this trip"})
			return
		}

		result := db.Where("status = ?", models.TripStatusOpen).Delete(&trip)
		if result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to delete trip"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(409, gin.H{"error": "Only open trips can be deleted"})
			return
		}

		c.JSON(200, gin.H{"message": "Trip successfully deleted"})
	}
}
