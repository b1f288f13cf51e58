package repository

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cluns13/loadedteaclub-backend/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:claimrepo%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Business{},
		&entity.Claim{}, &entity.ClaimDocument{}, &entity.ClaimMenuItem{},
		&entity.VerificationChannel{},
	))
	return db
}

func seedClaim(t *testing.T, db *gorm.DB) (*ClaimRepository, *entity.Claim, *entity.Business, *entity.User) {
	t.Helper()
	user := &entity.User{Email: "owner@example.com", Role: "customer"}
	require.NoError(t, db.Create(user).Error)
	business := &entity.Business{Name: "Lakeside Nutrition"}
	require.NoError(t, db.Create(business).Error)

	repo := NewClaimRepository(db)
	claim := &entity.Claim{BusinessID: business.ID, UserID: user.ID, Status: entity.ClaimPending}
	require.NoError(t, repo.Create(claim))
	return repo, claim, business, user
}

func armedChannel(t *testing.T, repo *ClaimRepository, claimID uint, method, code string, expiresAt time.Time) {
	t.Helper()
	require.NoError(t, repo.CreateChannel(&entity.VerificationChannel{
		ClaimID:   claimID,
		Method:    method,
		Code:      code,
		ExpiresAt: &expiresAt,
	}))
}

func TestRecordCodeAttempt(t *testing.T) {
	repo, claim, _, _ := seedClaim(t, newTestDB(t))
	armedChannel(t, repo, claim.ID, entity.MethodEmail, "GOODCODE", time.Now().Add(time.Hour))

	// mismatch still consumes an attempt
	ch, attempted, err := repo.RecordCodeAttempt(claim.ID, entity.MethodEmail, "BADCODE1", time.Now())
	require.NoError(t, err)
	assert.True(t, attempted)
	assert.False(t, ch.Verified)
	assert.Equal(t, 1, ch.Attempts)
	assert.NotNil(t, ch.LastAttempt)

	// match flips verified
	ch, attempted, err = repo.RecordCodeAttempt(claim.ID, entity.MethodEmail, "GOODCODE", time.Now())
	require.NoError(t, err)
	assert.True(t, attempted)
	assert.True(t, ch.Verified)
	assert.NotNil(t, ch.VerifiedAt)
	assert.Equal(t, 2, ch.Attempts)

	// verified rows never match the conditional update again
	ch, attempted, err = repo.RecordCodeAttempt(claim.ID, entity.MethodEmail, "BADCODE2", time.Now())
	require.NoError(t, err)
	assert.False(t, attempted)
	assert.True(t, ch.Verified)
	assert.Equal(t, 2, ch.Attempts)
}

func TestRecordCodeAttemptExpiredCode(t *testing.T) {
	repo, claim, _, _ := seedClaim(t, newTestDB(t))
	armedChannel(t, repo, claim.ID, entity.MethodPhone, "GOODCODE", time.Now().Add(-time.Minute))

	ch, attempted, err := repo.RecordCodeAttempt(claim.ID, entity.MethodPhone, "GOODCODE", time.Now())
	require.NoError(t, err)
	assert.True(t, attempted)
	assert.False(t, ch.Verified)
	assert.Equal(t, 1, ch.Attempts)
}

func TestRecordCodeAttemptCap(t *testing.T) {
	repo, claim, _, _ := seedClaim(t, newTestDB(t))
	armedChannel(t, repo, claim.ID, entity.MethodEmail, "GOODCODE", time.Now().Add(time.Hour))

	for i := 0; i < entity.MaxCodeAttempts; i++ {
		_, attempted, err := repo.RecordCodeAttempt(claim.ID, entity.MethodEmail, "BADCODE1", time.Now())
		require.NoError(t, err)
		assert.True(t, attempted)
	}

	ch, attempted, err := repo.RecordCodeAttempt(claim.ID, entity.MethodEmail, "GOODCODE", time.Now())
	require.NoError(t, err)
	assert.False(t, attempted)
	assert.False(t, ch.Verified)
	assert.Equal(t, entity.MaxCodeAttempts, ch.Attempts)
}

func TestRecordCodeAttemptMissingChannel(t *testing.T) {
	repo, claim, _, _ := seedClaim(t, newTestDB(t))
	_, _, err := repo.RecordCodeAttempt(claim.ID, entity.MethodEmail, "ANYCODE1", time.Now())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestResetChannel(t *testing.T) {
	repo, claim, _, _ := seedClaim(t, newTestDB(t))
	armedChannel(t, repo, claim.ID, entity.MethodEmail, "OLDCODE1", time.Now().Add(time.Hour))

	_, _, err := repo.RecordCodeAttempt(claim.ID, entity.MethodEmail, "BADCODE1", time.Now())
	require.NoError(t, err)

	expires := time.Now().Add(time.Hour)
	rows, err := repo.ResetChannel(claim.ID, entity.MethodEmail, "NEWCODE1", &expires)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	ch, err := repo.FindChannel(claim.ID, entity.MethodEmail)
	require.NoError(t, err)
	assert.Equal(t, "NEWCODE1", ch.Code)
	assert.Equal(t, 0, ch.Attempts)
	assert.Nil(t, ch.LastAttempt)

	// verified channels are out of reach
	_, _, err = repo.RecordCodeAttempt(claim.ID, entity.MethodEmail, "NEWCODE1", time.Now())
	require.NoError(t, err)
	rows, err = repo.ResetChannel(claim.ID, entity.MethodEmail, "NEWCODE2", &expires)
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)
}

func TestMarkChannelVerifiedIsOneWay(t *testing.T) {
	repo, claim, _, _ := seedClaim(t, newTestDB(t))
	require.NoError(t, repo.CreateChannel(&entity.VerificationChannel{ClaimID: claim.ID, Method: entity.MethodDocuments}))

	rows, err := repo.MarkChannelVerified(claim.ID, entity.MethodDocuments, time.Now(), nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	rows, err = repo.MarkChannelVerified(claim.ID, entity.MethodDocuments, time.Now(), nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)
}

func TestApproveTransfersOwnership(t *testing.T) {
	db := newTestDB(t)
	repo, claim, business, user := seedClaim(t, db)

	ok, err := repo.Approve(claim, 1, nil, time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	var got entity.Claim
	require.NoError(t, db.First(&got, claim.ID).Error)
	assert.Equal(t, entity.ClaimApproved, got.Status)

	var b entity.Business
	require.NoError(t, db.First(&b, business.ID).Error)
	assert.True(t, b.Claimed)
	require.NotNil(t, b.UserID)
	assert.Equal(t, user.ID, *b.UserID)

	var u entity.User
	require.NoError(t, db.First(&u, user.ID).Error)
	assert.Equal(t, "owner", u.Role)

	// compare-and-set: the losing finalize moves nothing
	ok, err = repo.Approve(claim, 1, nil, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Reject(claim.ID, 1, "late", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestApproveKeepsAdminRole(t *testing.T) {
	db := newTestDB(t)
	repo, claim, _, user := seedClaim(t, db)
	require.NoError(t, db.Model(&entity.User{}).Where("id = ?", user.ID).Update("role", "admin").Error)

	ok, err := repo.Approve(claim, 1, nil, time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	var u entity.User
	require.NoError(t, db.First(&u, user.ID).Error)
	assert.Equal(t, "admin", u.Role)
}

func TestSetPaymentOnlyWhilePending(t *testing.T) {
	db := newTestDB(t)
	repo, claim, _, _ := seedClaim(t, db)

	rows, err := repo.SetPayment(claim.ID, "paid", 2900, time.Now().AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	ok, err := repo.Reject(claim.ID, 1, "dup", time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	rows, err = repo.SetPayment(claim.ID, "paid", 2900, time.Now().AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)
}

func TestClaimExistenceChecks(t *testing.T) {
	db := newTestDB(t)
	repo, claim, business, user := seedClaim(t, db)

	active, err := repo.HasActiveClaim(business.ID)
	require.NoError(t, err)
	assert.True(t, active)

	ok, err := repo.Reject(claim.ID, 1, "nope", time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	active, err = repo.HasActiveClaim(business.ID)
	require.NoError(t, err)
	assert.False(t, active)

	rejected, err := repo.HasRejectedClaim(business.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, rejected)

	rejected, err = repo.HasRejectedClaim(business.ID, user.ID+1)
	require.NoError(t, err)
	assert.False(t, rejected)
}

func TestReplaceMenu(t *testing.T) {
	db := newTestDB(t)
	repo, claim, _, _ := seedClaim(t, db)

	require.NoError(t, repo.ReplaceMenu(claim.ID, []entity.ClaimMenuItem{
		{Name: "Tropical Blast", Category: "Loaded Teas"},
		{Name: "Mermaid", Category: "Lit Teas"},
	}))
	require.NoError(t, repo.ReplaceMenu(claim.ID, []entity.ClaimMenuItem{
		{Name: "Blue Hawaiian", Category: "Loaded Teas"},
	}))

	got, err := repo.FindByID(claim.ID)
	require.NoError(t, err)
	require.Len(t, got.MenuItems, 1)
	assert.Equal(t, "Blue Hawaiian", got.MenuItems[0].Name)
}
