package entity

import (
	"gorm.io/gorm"
)

// Live menu of a claimed business, managed by the owner.
type MenuItem struct {
	gorm.Model
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Price       int64  `json:"price"` // cents
	Popular     bool   `json:"popular"`
	Ingredients string `json:"ingredients"`
	Picture     string `json:"picture"`

	BusinessID uint     `gorm:"index" json:"businessId"`
	Business   Business `json:"-"` // preload when needed
}
