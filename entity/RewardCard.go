package entity

import (
	"gorm.io/gorm"
)

// Digital punch card: points per user per business, earned on visits and
// redeemed for a free drink.
type RewardCard struct {
	gorm.Model
	UserID     uint     `gorm:"uniqueIndex:idx_user_business;not null" json:"userId"`
	User       User     `json:"-"`
	BusinessID uint     `gorm:"uniqueIndex:idx_user_business;not null" json:"businessId"`
	Business   Business `json:"-"`

	Points   int `gorm:"not null;default:0" json:"points"`
	Redeemed int `gorm:"not null;default:0" json:"redeemed"` // lifetime redemptions
}
