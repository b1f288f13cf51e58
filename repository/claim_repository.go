package repository

import (
	"time"

	"github.com/cluns13/loadedteaclub-backend/entity"
	"gorm.io/gorm"
)

type ClaimRepository struct {
	DB *gorm.DB
}

func NewClaimRepository(db *gorm.DB) *ClaimRepository {
	return &ClaimRepository{DB: db}
}

// Create stores the claim with its documents and menu snapshot in one insert.
func (r *ClaimRepository) Create(claim *entity.Claim) error {
	return r.DB.Create(claim).Error
}

func (r *ClaimRepository) FindByID(id uint) (*entity.Claim, error) {
	var claim entity.Claim
	if err := r.DB.
		Preload("Documents").
		Preload("Channels").
		Preload("MenuItems").
		First(&claim, id).Error; err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *ClaimRepository) FindByStatus(status string) ([]entity.Claim, error) {
	var claims []entity.Claim
	err := r.DB.
		Preload("User").
		Preload("Business").
		Preload("Channels").
		Where("status = ?", status).
		Order("id DESC").
		Find(&claims).Error
	return claims, err
}

func (r *ClaimRepository) FindByUser(userID uint) ([]entity.Claim, error) {
	var claims []entity.Claim
	err := r.DB.
		Preload("Business").
		Preload("Channels").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&claims).Error
	return claims, err
}

// HasActiveClaim reports whether the business already has a pending or
// approved claim. Rejected claims are kept for audit and never block.
func (r *ClaimRepository) HasActiveClaim(businessID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.Claim{}).
		Where("business_id = ? AND status IN ?", businessID, []string{entity.ClaimPending, entity.ClaimApproved}).
		Count(&count).Error
	return count > 0, err
}

func (r *ClaimRepository) HasRejectedClaim(businessID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.Claim{}).
		Where("business_id = ? AND user_id = ? AND status = ?", businessID, userID, entity.ClaimRejected).
		Count(&count).Error
	return count > 0, err
}

func (r *ClaimRepository) FindChannel(claimID uint, method string) (*entity.VerificationChannel, error) {
	var ch entity.VerificationChannel
	if err := r.DB.Where("claim_id = ? AND method = ?", claimID, method).First(&ch).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

// ResetChannel re-arms an unverified channel: new code, attempts back to 0.
// Returns the number of rows touched; 0 means the channel is either missing or
// already verified, callers disambiguate with FindChannel.
func (r *ClaimRepository) ResetChannel(claimID uint, method, code string, expiresAt *time.Time) (int64, error) {
	res := r.DB.Model(&entity.VerificationChannel{}).
		Where("claim_id = ? AND method = ? AND verified = ?", claimID, method, false).
		Updates(map[string]any{
			"code":         code,
			"expires_at":   expiresAt,
			"attempts":     0,
			"last_attempt": nil,
		})
	return res.RowsAffected, res.Error
}

func (r *ClaimRepository) CreateChannel(ch *entity.VerificationChannel) error {
	return r.DB.Create(ch).Error
}

// RecordCodeAttempt applies one validation attempt as a single conditional
// UPDATE so two racing submissions can neither blow past the attempt cap nor
// double-verify. The attempt counter and last_attempt move unconditionally
// (a miss still costs an attempt); verified flips only when the code matches
// and has not expired. Returns the fresh channel row and whether this call
// consumed an attempt.
func (r *ClaimRepository) RecordCodeAttempt(claimID uint, method, code string, now time.Time) (*entity.VerificationChannel, bool, error) {
	res := r.DB.Model(&entity.VerificationChannel{}).
		Where("claim_id = ? AND method = ? AND verified = ? AND attempts < ?",
			claimID, method, false, entity.MaxCodeAttempts).
		Updates(map[string]any{
			"attempts":     gorm.Expr("attempts + 1"),
			"last_attempt": now,
			"verified":     gorm.Expr("CASE WHEN code = ? AND expires_at > ? THEN ? ELSE verified END", code, now, true),
			"verified_at":  gorm.Expr("CASE WHEN code = ? AND expires_at > ? THEN ? ELSE verified_at END", code, now, now),
		})
	if res.Error != nil {
		return nil, false, res.Error
	}

	ch, err := r.FindChannel(claimID, method)
	if err != nil {
		return nil, false, err
	}
	return ch, res.RowsAffected > 0, nil
}

// MarkChannelVerified flips an unverified channel to verified (admin review
// outcome for documents, menu finalization). A verified channel is immutable:
// rows already verified are left alone and 0 is returned.
func (r *ClaimRepository) MarkChannelVerified(claimID uint, method string, now time.Time, notes *string) (int64, error) {
	updates := map[string]any{
		"verified":    true,
		"verified_at": now,
	}
	if notes != nil {
		updates["menu_notes"] = *notes
	}
	res := r.DB.Model(&entity.VerificationChannel{}).
		Where("claim_id = ? AND method = ? AND verified = ?", claimID, method, false).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// SetChannelNotes records reviewer reasoning without changing verification
// state (menu rejected after human review).
func (r *ClaimRepository) SetChannelNotes(claimID uint, method string, now time.Time, notes string) error {
	return r.DB.Model(&entity.VerificationChannel{}).
		Where("claim_id = ? AND method = ? AND verified = ?", claimID, method, false).
		Updates(map[string]any{
			"menu_notes":   notes,
			"last_attempt": now,
		}).Error
}

func (r *ClaimRepository) AppendDocument(doc *entity.ClaimDocument) error {
	return r.DB.Create(doc).Error
}

func (r *ClaimRepository) ReplaceMenu(claimID uint, items []entity.ClaimMenuItem) error {
	tx := r.DB.Begin()
	if err := tx.Where("claim_id = ?", claimID).Delete(&entity.ClaimMenuItem{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	for i := range items {
		items[i].ClaimID = claimID
	}
	if len(items) > 0 {
		if err := tx.Create(&items).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

// SetPayment writes the billing fields while the claim is still pending.
func (r *ClaimRepository) SetPayment(claimID uint, status string, amount int64, until time.Time) (int64, error) {
	res := r.DB.Model(&entity.Claim{}).
		Where("id = ? AND status = ?", claimID, entity.ClaimPending).
		Updates(map[string]any{
			"payment_status":        status,
			"payment_amount":        amount,
			"subscription_end_date": until,
		})
	return res.RowsAffected, res.Error
}

// Approve flips the claim pending→approved and transfers the business to the
// claimant in one transaction. The status change is a compare-and-set on
// status='pending'; if another finalize won the race, 0 rows move and nothing
// else happens.
func (r *ClaimRepository) Approve(claim *entity.Claim, adminID uint, notes *string, now time.Time) (bool, error) {
	tx := r.DB.Begin()

	res := tx.Model(&entity.Claim{}).
		Where("id = ? AND status = ?", claim.ID, entity.ClaimPending).
		Updates(map[string]any{
			"status":       entity.ClaimApproved,
			"reviewed_by":  adminID,
			"reviewed_at":  now,
			"review_notes": notes,
		})
	if res.Error != nil {
		tx.Rollback()
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return false, nil
	}

	// Ownership transfer
	if err := tx.Model(&entity.Business{}).
		Where("id = ?", claim.BusinessID).
		Updates(map[string]any{"claimed": true, "user_id": claim.UserID}).Error; err != nil {
		tx.Rollback()
		return false, err
	}

	// Upgrade claimant role customer → owner
	if err := tx.Model(&entity.User{}).
		Where("id = ?", claim.UserID).
		Where("role = '' OR role = 'customer'").
		Update("role", "owner").Error; err != nil {
		tx.Rollback()
		return false, err
	}

	return true, tx.Commit().Error
}

// Reject is the same compare-and-set without the ownership transfer.
func (r *ClaimRepository) Reject(claimID uint, adminID uint, reason string, now time.Time) (bool, error) {
	res := r.DB.Model(&entity.Claim{}).
		Where("id = ? AND status = ?", claimID, entity.ClaimPending).
		Updates(map[string]any{
			"status":           entity.ClaimRejected,
			"rejection_reason": reason,
			"rejected_by":      adminID,
			"rejected_at":      now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
