package entity

import (
	"gorm.io/gorm"
)

const (
	NotifClaimSubmitted      = "claim_submitted"
	NotifVerificationUpdate  = "verification_update"
	NotifClaimApproved       = "claim_approved"
	NotifClaimRejected       = "claim_rejected"
	NotifAdminClaimSubmitted = "admin_claim_submitted"
)

// In-app notification row; email delivery rides on top of this.
type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"index" json:"userId"`
	Type    string `gorm:"not null" json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	IsRead  bool   `gorm:"not null;default:false" json:"isRead"`
}
