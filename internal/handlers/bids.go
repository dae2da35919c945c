package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/farebid/farebid-backend/internal/models"
	"github.com/farebid/farebid-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SubmitBid places or updates a driver's bid on an open trip. A driver has at
// most one bid per trip: a second submission overwrites the first and resets
// it to pending, unless the bid was already accepted.
func SubmitBid(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID := c.GetUint("userId")
		userType := c.GetString("userType")

		if userType != string(models.UserTypeDriver) {
			c.JSON(403, gin.H{"error": "Only drivers can submit bids"})
			return
		}

		var input struct {
			TripID       uint    `json:"tripId" binding:"required"`
			BidAmount    float64 `json:"bidAmount" binding:"required"`
			VehicleType  string  `json:"vehicleType" binding:"required"`
			LicensePlate string  `json:"licensePlate" binding:"required"`
			VehicleColor string  `json:"vehicleColor"`
			Notes        string  `json:"notes"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.BidAmount <= 0 {
			c.JSON(400, gin.H{"error": "Bid amount must be greater than zero"})
			return
		}

		// A missing trip and a trip that already left "open" look the same to
		// the bidder: nothing to bid on.
		var trip models.Trip
		if err := db.First(&trip, input.TripID).Error; err != nil || trip.Status != models.TripStatusOpen {
			c.JSON(404, gin.H{"error": "Trip not found or no longer open"})
			return
		}

		var bid models.DriverBid
		err := db.Where("trip_id = ? AND driver_id = ?", input.TripID, driverID).First(&bid).Error
		switch {
		case err == nil:
			if bid.Status == models.BidStatusAccepted {
				c.JSON(409, gin.H{"error": "Bid has already been accepted"})
				return
			}

			bid.BidAmount = input.BidAmount
			bid.VehicleType = input.VehicleType
			bid.LicensePlate = input.LicensePlate
			bid.VehicleColor = input.VehicleColor
			bid.Notes = input.Notes
			bid.Status = models.BidStatusPending

			if err := db.Save(&bid).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to update bid"})
				return
			}

		case errors.Is(err, gorm.ErrRecordNotFound):
			bid = models.DriverBid{
				TripID:       input.TripID,
				DriverID:     driverID,
				BidAmount:    input.BidAmount,
				VehicleType:  input.VehicleType,
				LicensePlate: input.LicensePlate,
				VehicleColor: input.VehicleColor,
				Notes:        input.Notes,
				Status:       models.BidStatusPending,
			}

			if err := db.Create(&bid).Error; err != nil {
				// The unique index catches two first-time submissions racing.
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					c.JSON(409, gin.H{"error": "Bid already submitted, retry to update it"})
					return
				}
				c.JSON(500, gin.H{"error": "Failed to submit bid"})
				return
			}

		default:
			c.JSON(500, gin.H{"error": "Failed to look up existing bid"})
			return
		}

		db.First(&bid.Driver, driverID)

		hub.SendBidSubmitted(trip.TravelerID, services.BidSubmitted{
			BidID:     bid.ID,
			TripID:    trip.ID,
			DriverID:  driverID,
			BidAmount: bid.BidAmount,
		})

		ctx := context.Background()
		if err := services.PublishBidEvent(ctx, bid.ID, trip.ID, "submitted", map[string]interface{}{
			"bidAmount": bid.BidAmount,
		}); err != nil {
			log.Printf("Failed to publish bid submitted event: %v", err)
		}

		c.JSON(201, bid)
	}
}

// GetBidsForTrip retrieves all bids on a trip for its owner, newest first,
// with each bidding driver's public profile
func GetBidsForTrip(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tripID := c.Param("id")
		userId := c.GetUint("userId")

		var trip models.Trip
		if err := db.First(&trip, tripID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Trip not found"})
			return
		}

		if trip.TravelerID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized to view bids for this trip"})
			return
		}

		var bids []models.DriverBid
		if err := db.Preload("Driver").
			Where("trip_id = ?", trip.ID).
			Order("created_at DESC").
			Find(&bids).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bids"})
			return
		}

		c.JSON(200, bids)
	}
}

// GetMyBids retrieves all bids by the calling driver with trip context
func GetMyBids(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID := c.GetUint("userId")
		userType := c.GetString("userType")

		if userType != string(models.UserTypeDriver) {
			c.JSON(403, gin.H{"error": "Only drivers can view their bids"})
			return
		}

		var bids []models.DriverBid
		if err := db.Preload("Trip").Preload("Trip.Traveler").
			Where("driver_id = ?", driverID).
			Order("created_at DESC").
			Find(&bids).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bids"})
			return
		}

		c.JSON(200, bids)
	}
}

// RejectBid lets the trip owner decline a pending bid. The trip itself is
// untouched; other bids stay as they are.
func RejectBid(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		bidID := c.Param("id")
		userId := c.GetUint("userId")

		var bid models.DriverBid
		if err := db.Preload("Trip").First(&bid, bidID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Bid not found"})
			return
		}

		if bid.Trip.TravelerID != userId {
			c.JSON(403, gin.H{"error": "Only the trip owner can reject a bid"})
			return
		}

		result := db.Model(&models.DriverBid{}).
			Where("id = ? AND status = ?", bid.ID, models.BidStatusPending).
			Update("status", models.BidStatusRejected)
		if result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to reject bid"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(409, gin.H{"error": "Bid is no longer pending"})
			return
		}

		hub.SendBidRejected(bid.DriverID, services.BidRejected{
			BidID:  bid.ID,
			TripID: bid.TripID,
		})

		ctx := context.Background()
		if err := services.PublishBidEvent(ctx, bid.ID, bid.TripID, "rejected", nil); err != nil {
			log.Printf("Failed to publish bid rejected event: %v", err)
		}

		c.JSON(200, gin.H{"message": "Bid rejected successfully"})
	}
}
