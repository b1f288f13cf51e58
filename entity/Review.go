package entity

import (
	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	Rating   int    `json:"rating"` // 1..5
	Comments string `json:"comments"`

	UserID     uint     `json:"userId"`
	User       User     `json:"-"`
	BusinessID uint     `gorm:"index" json:"businessId"`
	Business   Business `json:"-"`
}
