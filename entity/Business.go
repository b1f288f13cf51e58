package entity

import (
	"gorm.io/gorm"
)

// A nutrition-club listing. Unclaimed listings come from the directory import;
// ownership is attached only through an approved claim.
type Business struct {
	gorm.Model
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	Description string `json:"description"`
	Picture     string `json:"picture"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`

	Claimed bool `gorm:"not null;default:false" json:"claimed"`

	BusinessCategoryID uint             `json:"businessCategoryId"`
	BusinessCategory   BusinessCategory `json:"-"`
	BusinessStatusID   uint             `json:"businessStatusId"`
	BusinessStatus     BusinessStatus   `json:"-"`

	UserID *uint `json:"userId,omitempty"` // owner (users.id), nil until claimed
	User   *User `json:"-"`

	MenuItems  []MenuItem  `json:"-"`
	Reviews    []Review    `json:"-"`
	Promotions []Promotion `json:"-"`
	Claims     []Claim     `json:"-"`
	Reports    []Report    `json:"-"`
}
