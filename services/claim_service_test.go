package services

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cluns13/loadedteaclub-backend/entity"
	"github.com/cluns13/loadedteaclub-backend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// Shared-cache in-memory DSN: a plain :memory: gives every pooled connection
// its own empty database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:claimsvc%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Admin{},
		&entity.Business{}, &entity.BusinessCategory{}, &entity.BusinessStatus{},
		&entity.Claim{}, &entity.ClaimDocument{}, &entity.ClaimMenuItem{},
		&entity.VerificationChannel{}, &entity.Notification{},
	))
	return db
}

type recordingNotifier struct {
	calls []string
	codes []string
}

func (n *recordingNotifier) ClaimSubmitted(claim *entity.Claim, businessName, userEmail string) error {
	n.calls = append(n.calls, "submitted")
	return nil
}
func (n *recordingNotifier) VerificationCode(claim *entity.Claim, businessName, userEmail, code string, expiresAt time.Time) error {
	n.calls = append(n.calls, "code")
	n.codes = append(n.codes, code)
	return nil
}
func (n *recordingNotifier) VerificationUpdate(claim *entity.Claim, businessName, userEmail string, ch *entity.VerificationChannel) error {
	n.calls = append(n.calls, "update:"+ch.Method)
	return nil
}
func (n *recordingNotifier) MenuReviewed(claim *entity.Claim, businessName, userEmail string, approved bool, notes *string) error {
	n.calls = append(n.calls, fmt.Sprintf("menu:%t", approved))
	return nil
}
func (n *recordingNotifier) ClaimDecision(claim *entity.Claim, businessName, userEmail, decision string, notes *string) error {
	n.calls = append(n.calls, "decision:"+decision)
	return nil
}
func (n *recordingNotifier) AdminAlert(claim *entity.Claim, businessName, userName string) error {
	n.calls = append(n.calls, "admin-alert")
	return nil
}

type recordingPublisher struct {
	events []ClaimEvent
}

func (p *recordingPublisher) Publish(ev ClaimEvent) {
	p.events = append(p.events, ev)
}

type claimHarness struct {
	db       *gorm.DB
	svc      *ClaimService
	repo     *repository.ClaimRepository
	notifier *recordingNotifier
	events   *recordingPublisher
	user     *entity.User
	business *entity.Business
	admin    *entity.Admin
}

func newClaimHarness(t *testing.T) *claimHarness {
	t.Helper()
	db := newTestDB(t)

	user := &entity.User{Email: "jess@example.com", FirstName: "Jess", LastName: "Hale", Role: "customer"}
	require.NoError(t, db.Create(user).Error)

	adminUser := &entity.User{Email: "admin@example.com", Role: "admin"}
	require.NoError(t, db.Create(adminUser).Error)
	admin := &entity.Admin{Name: "Admin", UserID: adminUser.ID}
	require.NoError(t, db.Create(admin).Error)

	business := &entity.Business{
		Name:    "Main Street Nutrition",
		Address: "12 Main St",
		City:    "Tulsa",
		State:   "OK",
	}
	require.NoError(t, db.Create(business).Error)

	repo := repository.NewClaimRepository(db)
	notifier := &recordingNotifier{}
	events := &recordingPublisher{}
	svc := NewClaimService(
		repo,
		repository.NewBusinessRepository(db),
		repository.NewUserRepository(db),
		notifier,
		LogSMSSender{}, LogMailSender{},
		24*time.Hour,
		false,
	)
	svc.Events = events

	return &claimHarness{
		db: db, svc: svc, repo: repo,
		notifier: notifier, events: events,
		user: user, business: business, admin: admin,
	}
}

func (h *claimHarness) createClaim(t *testing.T, items []entity.ClaimMenuItem) *entity.Claim {
	t.Helper()
	claim, err := h.svc.Create(CreateClaimIn{
		BusinessID:    h.business.ID,
		UserID:        h.user.ID,
		BusinessEmail: "club@example.com",
		BusinessPhone: "+19185550100",
		MenuItems:     items,
	})
	require.NoError(t, err)
	return claim
}

func (h *claimHarness) channelCode(t *testing.T, claimID uint, method string) string {
	t.Helper()
	ch, err := h.repo.FindChannel(claimID, method)
	require.NoError(t, err)
	return ch.Code
}

// ===== creation =====

func TestCreateClaim(t *testing.T) {
	h := newClaimHarness(t)

	claim := h.createClaim(t, fullMenu())
	assert.Equal(t, entity.ClaimPending, claim.Status)
	assert.Contains(t, h.notifier.calls, "submitted")
	assert.Contains(t, h.notifier.calls, "admin-alert")
	require.Len(t, h.events.events, 1)
	assert.Equal(t, "claim_submitted", h.events.events[0].Event)

	// second claim on the same business is blocked while one is active
	_, err := h.svc.Create(CreateClaimIn{BusinessID: h.business.ID, UserID: h.user.ID})
	assert.ErrorIs(t, err, ErrClaimExists)
}

func TestCreateAfterRejection(t *testing.T) {
	h := newClaimHarness(t)
	claim := h.createClaim(t, nil)

	ok, err := h.repo.Reject(claim.ID, h.admin.ID, "insufficient proof", time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	// re-apply disabled: same user stays blocked
	_, err = h.svc.Create(CreateClaimIn{BusinessID: h.business.ID, UserID: h.user.ID})
	assert.ErrorIs(t, err, ErrReapplyBlocked)

	// re-apply enabled: rejected history no longer blocks
	h.svc.AllowReapply = true
	again, err := h.svc.Create(CreateClaimIn{BusinessID: h.business.ID, UserID: h.user.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.ClaimPending, again.Status)
}

// ===== code channels =====

func TestEmailCodeRoundTrip(t *testing.T) {
	h := newClaimHarness(t)
	claim := h.createClaim(t, nil)

	require.NoError(t, h.svc.InitiateVerification(claim.ID, entity.MethodEmail))
	code := h.channelCode(t, claim.ID, entity.MethodEmail)
	require.Len(t, h.notifier.codes, 1)
	assert.Equal(t, code, h.notifier.codes[0])

	ok, err := h.svc.ValidateCode(claim.ID, entity.MethodEmail, "WRONGCOD")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = h.svc.ValidateCode(claim.ID, entity.MethodEmail, code)
	require.NoError(t, err)
	assert.True(t, ok)

	ch, err := h.repo.FindChannel(claim.ID, entity.MethodEmail)
	require.NoError(t, err)
	assert.True(t, ch.Verified)
	assert.NotNil(t, ch.VerifiedAt)
	assert.Equal(t, 2, ch.Attempts)
}

func TestValidateCodeOnVerifiedChannelIsNoop(t *testing.T) {
	h := newClaimHarness(t)
	claim := h.createClaim(t, nil)

	require.NoError(t, h.svc.InitiateVerification(claim.ID, entity.MethodEmail))
	code := h.channelCode(t, claim.ID, entity.MethodEmail)

	ok, err := h.svc.ValidateCode(claim.ID, entity.MethodEmail, code)
	require.NoError(t, err)
	require.True(t, ok)

	// even a wrong code reports success and burns nothing
	ok, err = h.svc.ValidateCode(claim.ID, entity.MethodEmail, "WRONGCOD")
	require.NoError(t, err)
	assert.True(t, ok)

	ch, err := h.repo.FindChannel(claim.ID, entity.MethodEmail)
	require.NoError(t, err)
	assert.Equal(t, 1, ch.Attempts)
}

func TestAttemptCapExhaustsChannel(t *testing.T) {
	h := newClaimHarness(t)
	claim := h.createClaim(t, nil)

	require.NoError(t, h.svc.InitiateVerification(claim.ID, entity.MethodPhone))
	code := h.channelCode(t, claim.ID, entity.MethodPhone)

	for i := 0; i < entity.MaxCodeAttempts; i++ {
		ok, err := h.svc.ValidateCode(claim.ID, entity.MethodPhone, "WRONGCOD")
		require.NoError(t, err)
		assert.False(t, ok)
	}

	// the correct code is useless once the cap is hit
	_, err := h.svc.ValidateCode(claim.ID, entity.MethodPhone, code)
	assert.ErrorIs(t, err, ErrMaxAttemptsExceeded)

	ch, err := h.repo.FindChannel(claim.ID, entity.MethodPhone)
	require.NoError(t, err)
	assert.Equal(t, entity.MaxCodeAttempts, ch.Attempts)
	assert.False(t, ch.Verified)
}

func TestReinitiationResetsChannel(t *testing.T) {
	h := newClaimHarness(t)
	claim := h.createClaim(t, nil)

	require.NoError(t, h.svc.InitiateVerification(claim.ID, entity.MethodEmail))
	oldCode := h.channelCode(t, claim.ID, entity.MethodEmail)

	_, err := h.svc.ValidateCode(claim.ID, entity.MethodEmail, "WRONGCOD")
	require.NoError(t, err)
	_, err = h.svc.ValidateCode(claim.ID, entity.MethodEmail, "WRONGCOD")
	require.NoError(t, err)

	require.NoError(t, h.svc.InitiateVerification(claim.ID, entity.MethodEmail))

	ch, err := h.repo.FindChannel(claim.ID, entity.MethodEmail)
	require.NoError(t, err)
	assert.Equal(t, 0, ch.Attempts)
	assert.Nil(t, ch.LastAttempt)
	assert.NotEqual(t, oldCode, ch.Code)

	// the stale code no longer verifies
	ok, err := h.svc.ValidateCode(claim.ID, entity.MethodEmail, oldCode)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReinitiationOfVerifiedChannelLeavesItAlone(t *testing.T) {
	h := newClaimHarness(t)
	claim := h.createClaim(t, nil)

	require.NoError(t, h.svc.InitiateVerification(claim.ID, entity.MethodEmail))
	code := h.channelCode(t, claim.ID, entity.MethodEmail)
	ok, err := h.svc.ValidateCode(claim.ID, entity.MethodEmail, code)
	require.NoError(t, err)
	require.True(t, ok)

	dispatches := len(h.notifier.codes)
	require.NoError(t, h.svc.InitiateVerification(claim.ID, entity.MethodEmail))

	ch, err := h.repo.FindChannel(claim.ID, entity.MethodEmail)
	require.NoError(t, err)
	assert.True(t, ch.Verified)
	assert.Equal(t, code, ch.Code)

	// no fresh code goes out for a channel that is already verified; an
	// unstored code could never validate anyway
	assert.Len(t, h.notifier.codes, dispatches)
}

func TestExpiredCodeBurnsAttempt(t *testing.T) {
	h := newClaimHarness(t)
	claim := h.createClaim(t, nil)

	h.svc.CodeTTL = -time.Minute // code is born expired
	require.NoError(t, h.svc.InitiateVerification(claim.ID, entity.MethodEmail))
	code := h.channelCode(t, claim.ID, entity.MethodEmail)

	ok, err := h.svc.ValidateCode(claim.ID, entity.MethodEmail, code)
	require.NoError(t, err)
	assert.False(t, ok)

	ch, err := h.repo.FindChannel(claim.ID, entity.MethodEmail)
	require.NoError(t, err)
	assert.False(t, ch.Verified)
	assert.Equal(t, 1, ch.Attempts)
}

func TestInitiateGuards(t *testing.T) {
	h := newClaimHarness(t)

	claim, err := h.svc.Create(CreateClaimIn{BusinessID: h.business.ID, UserID: h.user.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, h.svc.InitiateVerification(claim.ID, "carrier-pigeon"), ErrUnknownMethod)
	assert.ErrorIs(t, h.svc.InitiateVerification(claim.ID, entity.MethodEmail), ErrMissingContactInfo)
	assert.ErrorIs(t, h.svc.InitiateVerification(claim.ID, entity.MethodPhone), ErrMissingContactInfo)
	assert.ErrorIs(t, h.svc.InitiateVerification(9999, entity.MethodEmail), ErrClaimNotFound)

	// postal mail routes to the listing address and needs no snapshot contact
	assert.NoError(t, h.svc.InitiateVerification(claim.ID, entity.MethodMail))

	_, err = h.svc.ValidateCode(claim.ID, entity.MethodEmail, "ANYTHING")
	assert.ErrorIs(t, err, ErrChannelNotInitiated)

	_, err = h.svc.ValidateCode(claim.ID, entity.MethodMenu, "ANYTHING")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

// ===== menu channel =====

func TestMenuInitiationRejectsInvalidMenu(t *testing.T) {
	h := newClaimHarness(t)
	claim := h.createClaim(t, []entity.ClaimMenuItem{
		menuItem("Tropical Blast", "Loaded Teas"),
	})

	err := h.svc.InitiateVerification(claim.ID, entity.MethodMenu)
	var mvErr *MenuValidationError
	require.ErrorAs(t, err, &mvErr)
	assert.Contains(t, mvErr.MissingCategories, "Lit Teas")
	assert.Contains(t, mvErr.MissingCategories, "Meal Replacements")

	// no channel row until the content check passes
	_, err = h.repo.FindChannel(claim.ID, entity.MethodMenu)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMenuResubmitThenVerify(t *testing.T) {
	h := newClaimHarness(t)
	claim := h.createClaim(t, []entity.ClaimMenuItem{
		menuItem("Tropical Blast", "Loaded Teas"),
	})

	require.NoError(t, h.svc.ResubmitMenu(claim.ID, fullMenu()))
	require.NoError(t, h.svc.InitiateVerification(claim.ID, entity.MethodMenu))

	ch, err := h.repo.FindChannel(claim.ID, entity.MethodMenu)
	require.NoError(t, err)
	assert.False(t, ch.Verified)

	notes := "confirmed against the in-store board"
	require.NoError(t, h.svc.VerifyMenu(claim.ID, true, &notes))

	ch, err = h.repo.FindChannel(claim.ID, entity.MethodMenu)
	require.NoError(t, err)
	assert.True(t, ch.Verified)
	require.NotNil(t, ch.MenuNotes)
	assert.Equal(t, notes, *ch.MenuNotes)
	assert.Contains(t, h.notifier.calls, "menu:true")
}

func TestMenuReviewRejectionKeepsChannelUnverified(t *testing.T) {
	h := newClaimHarness(t)
	claim := h.createClaim(t, fullMenu())
	require.NoError(t, h.svc.InitiateVerification(claim.ID, entity.MethodMenu))

	notes := "photos do not match the submitted items"
	require.NoError(t, h.svc.VerifyMenu(claim.ID, false, &notes))

	ch, err := h.repo.FindChannel(claim.ID, entity.MethodMenu)
	require.NoError(t, err)
	assert.False(t, ch.Verified)
	require.NotNil(t, ch.MenuNotes)
	assert.Equal(t, notes, *ch.MenuNotes)
	assert.Contains(t, h.notifier.calls, "menu:false")
}

func TestMenuInitiationRequiresItems(t *testing.T) {
	h := newClaimHarness(t)
	claim := h.createClaim(t, nil)
	assert.ErrorIs(t, h.svc.InitiateVerification(claim.ID, entity.MethodMenu), ErrMissingMenu)
}

// ===== documents channel =====

func TestDocumentReviewVerifiesOnlyUpward(t *testing.T) {
	h := newClaimHarness(t)
	claim := h.createClaim(t, nil)

	assert.ErrorIs(t, h.svc.VerifyDocuments(claim.ID, true), ErrChannelNotInitiated)

	require.NoError(t, h.svc.InitiateVerification(claim.ID, entity.MethodDocuments))
	require.NoError(t, h.svc.AddDocument(claim.ID, "uploads/lease.pdf", "lease"))

	require.NoError(t, h.svc.VerifyDocuments(claim.ID, true))
	ch, err := h.repo.FindChannel(claim.ID, entity.MethodDocuments)
	require.NoError(t, err)
	assert.True(t, ch.Verified)

	// a later negative review cannot un-verify
	require.NoError(t, h.svc.VerifyDocuments(claim.ID, false))
	ch, err = h.repo.FindChannel(claim.ID, entity.MethodDocuments)
	require.NoError(t, err)
	assert.True(t, ch.Verified)
}

// ===== aggregate and finalization =====

func (h *claimHarness) verifyAllChannels(t *testing.T, claimID uint) {
	t.Helper()

	require.NoError(t, h.svc.InitiateVerification(claimID, entity.MethodEmail))
	code := h.channelCode(t, claimID, entity.MethodEmail)
	ok, err := h.svc.ValidateCode(claimID, entity.MethodEmail, code)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, h.svc.InitiateVerification(claimID, entity.MethodDocuments))
	require.NoError(t, h.svc.VerifyDocuments(claimID, true))

	require.NoError(t, h.svc.InitiateVerification(claimID, entity.MethodMenu))
	require.NoError(t, h.svc.VerifyMenu(claimID, true, nil))
}

func TestAggregateNeedsAllThreeLegs(t *testing.T) {
	h := newClaimHarness(t)
	claim := h.createClaim(t, fullMenu())

	full, err := h.svc.IsFullyVerified(claim.ID)
	require.NoError(t, err)
	assert.False(t, full)

	// documents + menu but no contact channel is not enough
	require.NoError(t, h.svc.InitiateVerification(claim.ID, entity.MethodDocuments))
	require.NoError(t, h.svc.VerifyDocuments(claim.ID, true))
	require.NoError(t, h.svc.InitiateVerification(claim.ID, entity.MethodMenu))
	require.NoError(t, h.svc.VerifyMenu(claim.ID, true, nil))

	full, err = h.svc.IsFullyVerified(claim.ID)
	require.NoError(t, err)
	assert.False(t, full)

	require.NoError(t, h.svc.InitiateVerification(claim.ID, entity.MethodPhone))
	code := h.channelCode(t, claim.ID, entity.MethodPhone)
	ok, err := h.svc.ValidateCode(claim.ID, entity.MethodPhone, code)
	require.NoError(t, err)
	require.True(t, ok)

	full, err = h.svc.IsFullyVerified(claim.ID)
	require.NoError(t, err)
	assert.True(t, full)
}

func TestApproveHappyPath(t *testing.T) {
	h := newClaimHarness(t)
	claim := h.createClaim(t, fullMenu())
	h.verifyAllChannels(t, claim.ID)

	// billing gate first
	err := h.svc.FinalizeReview(claim.ID, "approve", h.admin.ID, nil)
	assert.ErrorIs(t, err, ErrPaymentRequired)

	until := time.Now().AddDate(1, 0, 0)
	require.NoError(t, h.svc.RecordPayment(claim.ID, 2900, until))

	notes := "all checks passed"
	require.NoError(t, h.svc.FinalizeReview(claim.ID, "approve", h.admin.ID, &notes))

	got, err := h.svc.Get(claim.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ClaimApproved, got.Status)
	require.NotNil(t, got.ReviewedBy)
	assert.Equal(t, h.admin.ID, *got.ReviewedBy)

	var business entity.Business
	require.NoError(t, h.db.First(&business, h.business.ID).Error)
	assert.True(t, business.Claimed)
	require.NotNil(t, business.UserID)
	assert.Equal(t, h.user.ID, *business.UserID)

	var user entity.User
	require.NoError(t, h.db.First(&user, h.user.ID).Error)
	assert.Equal(t, "owner", user.Role)

	assert.Contains(t, h.notifier.calls, "decision:"+entity.ClaimApproved)

	// terminal: a second finalize of either kind is refused
	assert.ErrorIs(t, h.svc.FinalizeReview(claim.ID, "approve", h.admin.ID, nil), ErrInvalidState)
	assert.ErrorIs(t, h.svc.FinalizeReview(claim.ID, "reject", h.admin.ID, nil), ErrInvalidState)
}

func TestApproveRequiresFullVerification(t *testing.T) {
	h := newClaimHarness(t)
	claim := h.createClaim(t, fullMenu())

	require.NoError(t, h.svc.InitiateVerification(claim.ID, entity.MethodDocuments))
	require.NoError(t, h.svc.VerifyDocuments(claim.ID, true))
	require.NoError(t, h.svc.RecordPayment(claim.ID, 2900, time.Now().AddDate(1, 0, 0)))

	err := h.svc.FinalizeReview(claim.ID, "approve", h.admin.ID, nil)
	assert.ErrorIs(t, err, ErrNotFullyVerified)
}

func TestRejectIsTerminal(t *testing.T) {
	h := newClaimHarness(t)
	claim := h.createClaim(t, fullMenu())

	reason := "listing is a duplicate"
	require.NoError(t, h.svc.FinalizeReview(claim.ID, "reject", h.admin.ID, &reason))

	got, err := h.svc.Get(claim.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ClaimRejected, got.Status)
	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, reason, *got.RejectionReason)

	// business untouched
	var business entity.Business
	require.NoError(t, h.db.First(&business, h.business.ID).Error)
	assert.False(t, business.Claimed)
	assert.Nil(t, business.UserID)

	// rejected claims refuse further verification activity
	assert.ErrorIs(t, h.svc.InitiateVerification(claim.ID, entity.MethodEmail), ErrInvalidState)
	_, err = h.svc.ValidateCode(claim.ID, entity.MethodEmail, "ANYTHING")
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, h.svc.RecordPayment(claim.ID, 2900, time.Now()), ErrInvalidState)
}

func TestFinalizeUnknownAction(t *testing.T) {
	h := newClaimHarness(t)
	claim := h.createClaim(t, fullMenu())
	err := h.svc.FinalizeReview(claim.ID, "escalate", h.admin.ID, nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidState))
}
