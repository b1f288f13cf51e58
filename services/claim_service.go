package services

import (
	"errors"
	"log"
	"time"

	"github.com/cluns13/loadedteaclub-backend/entity"
	"github.com/cluns13/loadedteaclub-backend/repository"
	"github.com/cluns13/loadedteaclub-backend/utils"
	"gorm.io/gorm"
)

// ClaimEvent is pushed to the admin live feed on every lifecycle change.
type ClaimEvent struct {
	Event      string `json:"event"`
	ClaimID    uint   `json:"claimId"`
	BusinessID uint   `json:"businessId"`
	Method     string `json:"method,omitempty"`
}

type EventPublisher interface {
	Publish(ev ClaimEvent)
}

// ClaimService owns the claim lifecycle. It is the only component that moves
// Claim.Status, and every notification it sends is fire-and-forget: the state
// change commits first, a delivery failure is logged and swallowed.
type ClaimService struct {
	Repo         *repository.ClaimRepository
	BusinessRepo *repository.BusinessRepository
	UserRepo     *repository.UserRepository
	Notifier     Notifier
	SMS          CodeSender
	PostalMail   CodeSender
	Events       EventPublisher // optional

	CodeTTL      time.Duration
	AllowReapply bool
}

func NewClaimService(
	repo *repository.ClaimRepository,
	businessRepo *repository.BusinessRepository,
	userRepo *repository.UserRepository,
	notifier Notifier,
	sms, postalMail CodeSender,
	codeTTL time.Duration,
	allowReapply bool,
) *ClaimService {
	return &ClaimService{
		Repo:         repo,
		BusinessRepo: businessRepo,
		UserRepo:     userRepo,
		Notifier:     notifier,
		SMS:          sms,
		PostalMail:   postalMail,
		CodeTTL:      codeTTL,
		AllowReapply: allowReapply,
	}
}

type CreateClaimIn struct {
	BusinessID    uint
	UserID        uint
	BusinessEmail string
	BusinessPhone string
	Documents     []entity.ClaimDocument
	MenuItems     []entity.ClaimMenuItem
}

// ===== helpers =====

func (s *ClaimService) notify(op string, err error) {
	if err != nil {
		log.Printf("notify %s failed: %v", op, err)
	}
}

func (s *ClaimService) publish(event string, claim *entity.Claim, method string) {
	if s.Events != nil {
		s.Events.Publish(ClaimEvent{Event: event, ClaimID: claim.ID, BusinessID: claim.BusinessID, Method: method})
	}
}

// businessName / claimant email+name for notification routing.
func (s *ClaimService) targets(claim *entity.Claim) (string, string, string) {
	name := ""
	if b, err := s.BusinessRepo.FindByID(claim.BusinessID); err == nil {
		name = b.Name
	}
	email, userName := "", ""
	if u, err := s.UserRepo.FindByID(claim.UserID); err == nil {
		email = u.Email
		userName = u.FirstName + " " + u.LastName
	}
	return name, email, userName
}

func (s *ClaimService) pendingClaim(claimID uint) (*entity.Claim, error) {
	claim, err := s.Repo.FindByID(claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, err
	}
	if claim.Status != entity.ClaimPending {
		return nil, ErrInvalidState
	}
	return claim, nil
}

// initiateChannel creates or re-arms the channel row. Re-initiation of an
// unverified channel regenerates the code and zeroes attempts; a verified
// channel is left untouched and reported as not armed so the caller can stop
// before dispatching anything.
func (s *ClaimService) initiateChannel(claimID uint, method, code string, expiresAt *time.Time) (bool, error) {
	rows, err := s.Repo.ResetChannel(claimID, method, code, expiresAt)
	if err != nil {
		return false, err
	}
	if rows > 0 {
		return true, nil
	}

	ch, err := s.Repo.FindChannel(claimID, method)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, s.Repo.CreateChannel(&entity.VerificationChannel{
			ClaimID:   claimID,
			Method:    method,
			Code:      code,
			ExpiresAt: expiresAt,
		})
	}
	if err != nil {
		return false, err
	}
	// The reset matched nothing and the row exists: already verified.
	return !ch.Verified, nil
}

// ===== lifecycle =====

// Create opens a new pending claim for a business. A business with a pending
// or approved claim cannot be claimed again; a rejected claim blocks the same
// user only when re-apply is disabled.
func (s *ClaimService) Create(in CreateClaimIn) (*entity.Claim, error) {
	business, err := s.BusinessRepo.FindByID(in.BusinessID)
	if err != nil {
		return nil, err
	}

	active, err := s.Repo.HasActiveClaim(in.BusinessID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, ErrClaimExists
	}
	if !s.AllowReapply {
		rejected, err := s.Repo.HasRejectedClaim(in.BusinessID, in.UserID)
		if err != nil {
			return nil, err
		}
		if rejected {
			return nil, ErrReapplyBlocked
		}
	}

	claim := &entity.Claim{
		BusinessID:    in.BusinessID,
		UserID:        in.UserID,
		Status:        entity.ClaimPending,
		BusinessEmail: in.BusinessEmail,
		BusinessPhone: in.BusinessPhone,
		Documents:     in.Documents,
		MenuItems:     in.MenuItems,
	}
	if err := s.Repo.Create(claim); err != nil {
		return nil, err
	}

	_, userEmail, userName := s.targets(claim)
	s.notify("claim submitted", s.Notifier.ClaimSubmitted(claim, business.Name, userEmail))
	s.notify("admin alert", s.Notifier.AdminAlert(claim, business.Name, userName))
	s.publish("claim_submitted", claim, "")

	return claim, nil
}

// InitiateVerification starts (or re-arms) one verification channel.
func (s *ClaimService) InitiateVerification(claimID uint, method string) error {
	if !entity.IsValidMethod(method) {
		return ErrUnknownMethod
	}
	claim, err := s.pendingClaim(claimID)
	if err != nil {
		return err
	}

	switch method {
	case entity.MethodEmail, entity.MethodPhone, entity.MethodMail:
		destination := ""
		switch method {
		case entity.MethodEmail:
			destination = claim.BusinessEmail
		case entity.MethodPhone:
			destination = claim.BusinessPhone
		case entity.MethodMail:
			// routed to the listing's street address
			if b, err := s.BusinessRepo.FindByID(claim.BusinessID); err == nil {
				destination = b.Address
			}
		}
		if method != entity.MethodMail && destination == "" {
			return ErrMissingContactInfo
		}

		code, err := utils.GenerateVerificationCode()
		if err != nil {
			return err
		}
		expires := time.Now().Add(s.CodeTTL)
		armed, err := s.initiateChannel(claimID, method, code, &expires)
		if err != nil {
			return err
		}
		if !armed {
			// Already verified: succeed without dispatching a code that was
			// never stored.
			return nil
		}

		businessName, _, _ := s.targets(claim)
		switch method {
		case entity.MethodEmail:
			s.notify("verification code", s.Notifier.VerificationCode(claim, businessName, destination, code, expires))
		case entity.MethodPhone:
			if err := s.SMS.Send(destination, code); err != nil {
				log.Printf("sms send failed: %v", err)
			}
		case entity.MethodMail:
			if err := s.PostalMail.Send(destination, code); err != nil {
				log.Printf("postal send failed: %v", err)
			}
		}

	case entity.MethodDocuments:
		// Verified only through admin review of submitted documents.
		armed, err := s.initiateChannel(claimID, method, "", nil)
		if err != nil {
			return err
		}
		if !armed {
			return nil
		}

	case entity.MethodMenu:
		if len(claim.MenuItems) == 0 {
			return ErrMissingMenu
		}
		result := ValidateMenu(claim.MenuItems)
		if !result.IsValid {
			// Channel is not created; claimant must resubmit the menu.
			return &MenuValidationError{
				MissingCategories: result.MissingCategories,
				Errors:            result.Errors,
			}
		}
		armed, err := s.initiateChannel(claimID, method, "", nil)
		if err != nil {
			return err
		}
		if !armed {
			return nil
		}
		businessName, userEmail, _ := s.targets(claim)
		if ch, err := s.Repo.FindChannel(claimID, method); err == nil {
			s.notify("menu under review", s.Notifier.VerificationUpdate(claim, businessName, userEmail, ch))
		}
	}

	s.publish("verification_initiated", claim, method)
	return nil
}

// ValidateCode checks a submitted code against a code channel. Every call
// below the attempt cap burns an attempt, match or not. A channel that is
// already verified reports success without consuming anything.
func (s *ClaimService) ValidateCode(claimID uint, method, submitted string) (bool, error) {
	if !entity.IsCodeMethod(method) {
		return false, ErrUnknownMethod
	}
	claim, err := s.pendingClaim(claimID)
	if err != nil {
		return false, err
	}

	ch, attempted, err := s.Repo.RecordCodeAttempt(claimID, method, submitted, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrChannelNotInitiated
		}
		return false, err
	}
	if !attempted {
		if ch.Verified {
			return true, nil
		}
		return false, ErrMaxAttemptsExceeded
	}

	if ch.Verified {
		businessName, userEmail, _ := s.targets(claim)
		s.notify("channel verified", s.Notifier.VerificationUpdate(claim, businessName, userEmail, ch))
		s.publish("channel_verified", claim, method)
		return true, nil
	}
	return false, nil
}

// VerifyDocuments records the admin's review of the submitted proof documents.
// The channel can be re-reviewed any number of times while the claim is
// pending, but a verified channel never goes back.
func (s *ClaimService) VerifyDocuments(claimID uint, verified bool) error {
	claim, err := s.pendingClaim(claimID)
	if err != nil {
		return err
	}

	ch, err := s.Repo.FindChannel(claimID, entity.MethodDocuments)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrChannelNotInitiated
	}
	if err != nil {
		return err
	}

	if verified && !ch.Verified {
		if _, err := s.Repo.MarkChannelVerified(claimID, entity.MethodDocuments, time.Now(), nil); err != nil {
			return err
		}
		ch.Verified = true
		s.publish("channel_verified", claim, entity.MethodDocuments)
	}

	businessName, userEmail, _ := s.targets(claim)
	s.notify("documents reviewed", s.Notifier.VerificationUpdate(claim, businessName, userEmail, ch))
	return nil
}

// VerifyMenu is the human confirmation behind the menu channel: the automated
// category check only proves the menu claims the right coverage, not that the
// business actually serves it.
func (s *ClaimService) VerifyMenu(claimID uint, isValid bool, notes *string) error {
	claim, err := s.pendingClaim(claimID)
	if err != nil {
		return err
	}
	if _, err := s.Repo.FindChannel(claimID, entity.MethodMenu); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChannelNotInitiated
		}
		return err
	}

	now := time.Now()
	if isValid {
		if _, err := s.Repo.MarkChannelVerified(claimID, entity.MethodMenu, now, notes); err != nil {
			return err
		}
		s.publish("channel_verified", claim, entity.MethodMenu)
	} else {
		n := ""
		if notes != nil {
			n = *notes
		}
		if err := s.Repo.SetChannelNotes(claimID, entity.MethodMenu, now, n); err != nil {
			return err
		}
	}

	businessName, userEmail, _ := s.targets(claim)
	s.notify("menu reviewed", s.Notifier.MenuReviewed(claim, businessName, userEmail, isValid, notes))
	return nil
}

// aggregateVerified: documents AND menu AND at least one out-of-band channel.
func aggregateVerified(channels []entity.VerificationChannel) bool {
	var docs, menu, contact bool
	for _, ch := range channels {
		if !ch.Verified {
			continue
		}
		switch ch.Method {
		case entity.MethodDocuments:
			docs = true
		case entity.MethodMenu:
			menu = true
		case entity.MethodEmail, entity.MethodPhone, entity.MethodMail:
			contact = true
		}
	}
	return docs && menu && contact
}

// IsFullyVerified is a fresh read every time; channels verify concurrently
// and independently, so the aggregate is recomputed, never cached.
func (s *ClaimService) IsFullyVerified(claimID uint) (bool, error) {
	claim, err := s.Repo.FindByID(claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrClaimNotFound
		}
		return false, err
	}
	return aggregateVerified(claim.Channels), nil
}

// RecordPayment writes the billing fields the approval gate requires.
// Capture mechanics live elsewhere; this only records the outcome.
func (s *ClaimService) RecordPayment(claimID uint, amount int64, until time.Time) error {
	rows, err := s.Repo.SetPayment(claimID, "paid", amount, until)
	if err != nil {
		return err
	}
	if rows == 0 {
		if _, err := s.pendingClaim(claimID); err != nil {
			return err
		}
	}
	return nil
}

// FinalizeReview is the single terminal transition. Approve demands full
// verification and settled billing, then transfers ownership; reject records
// the reason and keeps the claim for audit. Either way the persistence write
// lands before any notification goes out.
func (s *ClaimService) FinalizeReview(claimID uint, action string, adminID uint, notes *string) error {
	claim, err := s.pendingClaim(claimID)
	if err != nil {
		return err
	}

	switch action {
	case "approve":
		if !aggregateVerified(claim.Channels) {
			return ErrNotFullyVerified
		}
		if claim.PaymentStatus == "" || claim.SubscriptionEndDate == nil {
			return ErrPaymentRequired
		}
		ok, err := s.Repo.Approve(claim, adminID, notes, time.Now())
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidState // lost the race to another finalize
		}
		businessName, userEmail, _ := s.targets(claim)
		s.notify("claim approved", s.Notifier.ClaimDecision(claim, businessName, userEmail, entity.ClaimApproved, notes))
		s.publish("claim_approved", claim, "")
		return nil

	case "reject":
		reason := ""
		if notes != nil {
			reason = *notes
		}
		ok, err := s.Repo.Reject(claimID, adminID, reason, time.Now())
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidState
		}
		businessName, userEmail, _ := s.targets(claim)
		s.notify("claim rejected", s.Notifier.ClaimDecision(claim, businessName, userEmail, entity.ClaimRejected, notes))
		s.publish("claim_rejected", claim, "")
		return nil
	}

	return errors.New("unknown action: " + action)
}

// AddDocument appends one proof document while the claim is pending.
func (s *ClaimService) AddDocument(claimID uint, fileKey, label string) error {
	if _, err := s.pendingClaim(claimID); err != nil {
		return err
	}
	return s.Repo.AppendDocument(&entity.ClaimDocument{ClaimID: claimID, FileKey: fileKey, Label: label})
}

// ResubmitMenu replaces the menu snapshot after a failed validation or a
// rejected menu review, while the claim is still pending.
func (s *ClaimService) ResubmitMenu(claimID uint, items []entity.ClaimMenuItem) error {
	if _, err := s.pendingClaim(claimID); err != nil {
		return err
	}
	return s.Repo.ReplaceMenu(claimID, items)
}

// Get loads one claim with channels, documents and menu.
func (s *ClaimService) Get(claimID uint) (*entity.Claim, error) {
	claim, err := s.Repo.FindByID(claimID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClaimNotFound
	}
	return claim, err
}

func (s *ClaimService) ListByStatus(status string) ([]entity.Claim, error) {
	if status == "" {
		status = entity.ClaimPending
	}
	return s.Repo.FindByStatus(status)
}

func (s *ClaimService) ListForUser(userID uint) ([]entity.Claim, error) {
	return s.Repo.FindByUser(userID)
}
