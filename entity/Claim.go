package entity

import (
	"time"

	"gorm.io/gorm"
)

// pending / approved / rejected
const (
	ClaimPending  = "pending"
	ClaimApproved = "approved"
	ClaimRejected = "rejected"
)

// One ownership assertion for one business by one user. The business itself
// is untouched until the claim is approved.
type Claim struct {
	gorm.Model

	BusinessID uint     `gorm:"index" json:"businessId"`
	Business   Business `json:"-"`
	UserID     uint     `gorm:"index" json:"userId"`
	User       User     `json:"-"`

	Status string `gorm:"not null;default:pending;index" json:"status"`

	// Contact info snapshotted at claim time; verification codes are routed here,
	// not to whatever the listing currently says.
	BusinessEmail string `json:"businessEmail"`
	BusinessPhone string `json:"businessPhone"`

	// Billing: written by the payment flow, read (never written) by verification.
	PaymentStatus       string     `json:"paymentStatus"`
	PaymentAmount       int64      `json:"paymentAmount"` // cents
	SubscriptionEndDate *time.Time `json:"subscriptionEndDate,omitempty"`

	// Admin finalization, set once
	ReviewNotes     *string    `json:"reviewNotes,omitempty"`
	ReviewedBy      *uint      `json:"reviewedBy,omitempty"` // admins.id
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	RejectedBy      *uint      `json:"rejectedBy,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`

	Documents []ClaimDocument       `json:"documents,omitempty"`
	Channels  []VerificationChannel `json:"channels,omitempty"`
	MenuItems []ClaimMenuItem       `json:"menuItems,omitempty"`
}

// Proof document reference, append-only while the claim is pending.
type ClaimDocument struct {
	gorm.Model
	ClaimID uint   `gorm:"index" json:"claimId"`
	FileKey string `gorm:"not null" json:"fileKey"` // storage key under /uploads
	Label   string `json:"label"`
}

// Menu content submitted with the claim, checked by the menu validator.
// Embedded snapshot, separate from the live MenuItem table.
type ClaimMenuItem struct {
	gorm.Model
	ClaimID     uint   `gorm:"index" json:"claimId"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Price       int64  `json:"price"` // cents
	Popular     bool   `json:"popular"`
	Ingredients string `json:"ingredients"`
	Photos      string `json:"photos"` // comma separated keys
}
