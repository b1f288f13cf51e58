package entity

import (
	"gorm.io/gorm"
)

type Admin struct {
	gorm.Model
	Name string `json:"name"`

	UserID uint `json:"userId"`
	User   User `json:"-"` // preload separately when needed

	// Relations hidden to keep payloads small
	ClaimsReviewed []Claim  `gorm:"foreignKey:ReviewedBy" json:"-"`
	Reports        []Report `json:"-"`
}
