package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	MethodDocuments = "documents"
	MethodEmail     = "email"
	MethodPhone     = "phone"
	MethodMail      = "mail"
	MethodMenu      = "menu"
)

// MaxCodeAttempts caps failed submissions on code channels. After the cap the
// channel is permanently unverifiable; the claimant must use another channel.
const MaxCodeAttempts = 3

// Per-channel verification state on a claim. One row per (claim, method);
// created lazily on first initiation, never deleted. Once Verified is true the
// row is immutable.
type VerificationChannel struct {
	gorm.Model
	ClaimID uint   `gorm:"uniqueIndex:idx_claim_method;not null" json:"claimId"`
	Method  string `gorm:"uniqueIndex:idx_claim_method;not null" json:"method"`

	// Code channels only (email/phone/mail). Single use, regenerated on
	// re-initiation.
	Code      string     `json:"-"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`

	Attempts    int        `gorm:"not null;default:0" json:"attempts"`
	LastAttempt *time.Time `json:"lastAttempt,omitempty"`

	Verified   bool       `gorm:"not null;default:false" json:"verified"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`

	// Menu channel only: reviewer reasoning for accept/reject.
	MenuNotes *string `json:"menuNotes,omitempty"`
}

func IsCodeMethod(method string) bool {
	return method == MethodEmail || method == MethodPhone || method == MethodMail
}

func IsValidMethod(method string) bool {
	switch method {
	case MethodDocuments, MethodEmail, MethodPhone, MethodMail, MethodMenu:
		return true
	}
	return false
}
