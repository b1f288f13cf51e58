package services

import (
	"errors"
	"strings"
)

// Claim workflow errors. All recoverable; controllers map them to 4xx.
var (
	ErrClaimNotFound       = errors.New("claim not found")
	ErrInvalidState        = errors.New("claim is not pending")
	ErrMissingContactInfo  = errors.New("claim has no contact info for this channel")
	ErrMissingMenu         = errors.New("claim has no submitted menu")
	ErrChannelNotInitiated = errors.New("verification channel not initiated")
	ErrMaxAttemptsExceeded = errors.New("verification attempts exhausted")
	ErrUnknownMethod       = errors.New("unknown verification method")
	ErrClaimExists         = errors.New("business already has an active claim")
	ErrReapplyBlocked      = errors.New("re-claiming after rejection is disabled")
	ErrNotFullyVerified    = errors.New("claim is not fully verified")
	ErrPaymentRequired     = errors.New("claim billing is not settled")
)

// MenuValidationError carries the validator findings for user-facing display.
type MenuValidationError struct {
	MissingCategories []string
	Errors            []string
}

func (e *MenuValidationError) Error() string {
	if len(e.MissingCategories) > 0 {
		return "menu is missing required categories: " + strings.Join(e.MissingCategories, ", ")
	}
	return "menu validation failed: " + strings.Join(e.Errors, "; ")
}
