package entity

import (
	"gorm.io/gorm"
)

type BusinessStatus struct {
	gorm.Model
	StatusName string     `json:"statusName"`
	Businesses []Business `json:"-"`
}
