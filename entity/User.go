package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	City        string `json:"city"`
	Role        string `gorm:"not null;default:customer" json:"role"`

	// Relations; preload only when needed
	BusinessesOwned []Business     `gorm:"foreignKey:UserID" json:"-"`
	Claims          []Claim        `json:"-"`
	Reviews         []Review       `json:"-"`
	Reports         []Report       `json:"-"`
	RewardCards     []RewardCard   `json:"-"`
	Notifications   []Notification `json:"-"`
}
