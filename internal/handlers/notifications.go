package handlers

import (
	"time"

	"github.com/farebid/farebid-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetMyNotifications retrieves the calling driver's unarchived notifications,
// newest first
func GetMyNotifications(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID := c.GetUint("userId")
		userType := c.GetString("userType")

		if userType != string(models.UserTypeDriver) {
			c.JSON(403, gin.H{"error": "Only drivers receive trip notifications"})
			return
		}

		var notifications []models.DriverNotification
		if err := db.Where("driver_id = ? AND status <> ?", driverID, models.NotificationStatusArchived).
			Order("created_at DESC").
			Find(&notifications).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch notifications"})
			return
		}

		c.JSON(200, notifications)
	}
}

// MarkNotificationRead marks a notification as read. Only the addressed
// driver may touch it.
func MarkNotificationRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		notificationID := c.Param("id")
		userId := c.GetUint("userId")

		var notification models.DriverNotification
		if err := db.First(&notification, notificationID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Notification not found"})
			return
		}

		if notification.DriverID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized to update this notification"})
			return
		}

		now := time.Now()
		notification.Status = models.NotificationStatusRead
		notification.ReadAt = &now

		if err := db.Save(&notification).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update notification"})
			return
		}

		c.JSON(200, notification)
	}
}

// ArchiveNotification archives a notification for the addressed driver
func ArchiveNotification(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		notificationID := c.Param("id")
		userId := c.GetUint("userId")

		var notification models.DriverNotification
		if err := db.First(&notification, notificationID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Notification not found"})
			return
		}

		if notification.DriverID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized to update this notification"})
			return
		}

		notification.Status = models.NotificationStatusArchived

		if err := db.Save(&notification).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update notification"})
			return
		}

		c.JSON(200, notification)
	}
}
