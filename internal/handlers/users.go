package handlers

import (
	"github.com/farebid/farebid-backend/internal/models"
	"github.com/farebid/farebid-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProfile retrieves the caller's profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		c.JSON(200, user)
	}
}

// UpdateProfile updates the caller's profile information
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			Username    *string `json:"username"`
			PhoneNumber *string `json:"phoneNumber"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		// Update fields individually to handle empty strings properly
		if input.Username != nil {
			user.Username = *input.Username
		}
		if input.PhoneNumber != nil {
			user.PhoneNumber = *input.PhoneNumber
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update profile"})
			return
		}

		c.JSON(200, user)
	}
}

// UploadAvatar stores a profile picture and saves its URL on the user
func UploadAvatar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		file, err := c.FormFile("avatar")
		if err != nil {
			c.JSON(400, gin.H{"error": "Avatar file is required"})
			return
		}

		url, err := services.UploadImage(file, "avatars")
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to upload avatar"})
			return
		}

		if err := db.Model(&models.User{}).Where("id = ?", userId).
			Update("avatar_url", url).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to save avatar URL"})
			return
		}

		c.JSON(200, gin.H{"avatarUrl": url})
	}
}

// GetDriverDetails returns the caller's vehicle details
func GetDriverDetails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userType := c.GetString("userType")

		if userType != string(models.UserTypeDriver) {
			c.JSON(403, gin.H{"error": "Only drivers have vehicle details"})
			return
		}

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		c.JSON(200, gin.H{
			"vehicleType":  user.VehicleType,
			"vehicleModel": user.VehicleModel,
			"licensePlate": user.LicensePlate,
			"vehicleColor": user.VehicleColor,
			"isVerified":   user.IsVerified,
		})
	}
}

// UpdateDriverDetails updates the caller's vehicle details. The verification
// flag is operator-controlled and cannot be set here.
func UpdateDriverDetails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userType := c.GetString("userType")

		if userType != string(models.UserTypeDriver) {
			c.JSON(403, gin.H{"error": "Only drivers can update vehicle details"})
			return
		}

		var input struct {
			VehicleType  *string `json:"vehicleType"`
			VehicleModel *string `json:"vehicleModel"`
			LicensePlate *string `json:"licensePlate"`
			VehicleColor *string `json:"vehicleColor"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		if input.VehicleType != nil {
			user.VehicleType = *input.VehicleType
		}
		if input.VehicleModel != nil {
			user.VehicleModel = *input.VehicleModel
		}
		if input.LicensePlate != nil {
			user.LicensePlate = *input.LicensePlate
		}
		if input.VehicleColor != nil {
			user.VehicleColor = *input.VehicleColor
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update vehicle details"})
			return
		}

		c.JSON(200, user)
	}
}
