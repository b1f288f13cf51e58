package entity

import (
	"gorm.io/gorm"
)

type BusinessCategory struct {
	gorm.Model
	CategoryName string     `json:"categoryName"`
	Businesses   []Business `json:"-"`
}
