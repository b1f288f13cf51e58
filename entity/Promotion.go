package entity

import (
	"time"

	"gorm.io/gorm"
)

// Owner-published promotion on a claimed listing.
type Promotion struct {
	gorm.Model
	Title   string     `gorm:"not null" json:"title"`
	Detail  string     `json:"detail"`
	StartAt *time.Time `json:"startAt,omitempty"`
	EndAt   *time.Time `json:"endAt,omitempty"`

	BusinessID uint     `gorm:"index" json:"businessId"`
	Business   Business `json:"-"` // preload on detail only
}
