package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserType string

const (
	UserTypeTraveler UserType = "traveler"
	UserTypeDriver   UserType = "driver"
)

type User struct {
	gorm.Model
	Username     string   `json:"username" gorm:"column:username;unique;not null"`
	Email        string   `json:"email" gorm:"column:email;unique;not null"`
	PasswordHash string   `json:"-" gorm:"column:password_hash;not null"`
	PhoneNumber  string   `json:"phoneNumber" gorm:"column:phone_number"`
	UserType     UserType `json:"userType" gorm:"column:user_type;not null"`
	AvatarURL    string   `json:"avatarUrl" gorm:"column:avatar_url"`

	// Driver-only fields. IsVerified gates trip notifications and is set by
	// an operator, never by the driver.
	VehicleType  string `json:"vehicleType" gorm:"column:vehicle_type"`
	VehicleModel string `json:"vehicleModel" gorm:"column:vehicle_model"`
	LicensePlate string `json:"licensePlate" gorm:"column:license_plate"`
	VehicleColor string `json:"vehicleColor" gorm:"column:vehicle_color"`
	IsVerified   bool   `json:"isVerified" gorm:"column:is_verified;default:false"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
