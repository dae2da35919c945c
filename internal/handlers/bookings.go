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

// AcceptBid turns a pending bid into a confirmed booking for the trip owner.
// The heavy lifting (guarded transitions, transaction) lives in the booking
// service; this handler only binds input and translates errors.
func AcceptBid(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		bidIDStr := c.Param("id")
		userId := c.GetUint("userId")

		bidID, err := strconv.ParseUint(bidIDStr, 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid bid ID"})
			return
		}

		var input struct {
			PickupTime time.Time `json:"pickupTime" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		bid, booking, err := services.AcceptBid(db, uint(bidID), userId, input.PickupTime)
		if err != nil {
			c.JSON(statusFromError(err), gin.H{"error": err.Error()})
			return
		}

		hub.SendBidAccepted(bid.DriverID, services.BidAccepted{
			BidID:      bid.ID,
			TripID:     bid.TripID,
			BookingID:  booking.ID,
			FinalPrice: booking.FinalPrice,
			PickupTime: booking.PickupTime,
		})

		ctx := context.Background()
		if err := services.PublishBidEvent(ctx, bid.ID, bid.TripID, "accepted", map[string]interface{}{
			"bookingId":  booking.ID,
			"finalPrice": booking.FinalPrice,
		}); err != nil {
			log.Printf("Failed to publish bid accepted event: %v", err)
		}

		c.JSON(200, gin.H{
			"bid":     bid,
			"booking": booking,
		})
	}
}

// GetMyBookings retrieves bookings where the caller is either the booked
// driver or the trip owner
func GetMyBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		ownedTrips := db.Model(&models.Trip{}).Select("id").Where("traveler_id = ?", userId)

		var bookings []models.Booking
		if err := db.Preload("Trip").Preload("Driver").
			Where("driver_id = ? OR trip_id IN (?)", userId, ownedTrips).
			Order("created_at DESC").
			Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, bookings)
	}
}
