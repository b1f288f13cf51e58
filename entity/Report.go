package entity

import (
	"time"

	"gorm.io/gorm"
)

// User report against a listing (wrong info, closed, duplicate, ...).
type Report struct {
	gorm.Model
	Description string `json:"description"`

	IssueTypeID uint      `json:"issueTypeId"`
	IssueType   IssueType `json:"-"`
	BusinessID  uint      `gorm:"index" json:"businessId"`
	Business    Business  `json:"-"`
	UserID      uint      `json:"userId"`
	User        User      `json:"-"`

	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
	AdminID    *uint      `json:"adminId,omitempty"`
	Admin      *Admin     `json:"-"`
}
