package services

import (
	"fmt"
	"log"
	"net/smtp"
	"time"

	"github.com/cluns13/loadedteaclub-backend/entity"
	"gorm.io/gorm"
)

// Notifier delivers claim-lifecycle messages to the claimant (and admins).
// The orchestrator treats every call as fire-and-forget: failures are logged
// by the caller and never roll back the state change that triggered them.
type Notifier interface {
	ClaimSubmitted(claim *entity.Claim, businessName, userEmail string) error
	VerificationCode(claim *entity.Claim, businessName, userEmail, code string, expiresAt time.Time) error
	VerificationUpdate(claim *entity.Claim, businessName, userEmail string, ch *entity.VerificationChannel) error
	MenuReviewed(claim *entity.Claim, businessName, userEmail string, approved bool, notes *string) error
	ClaimDecision(claim *entity.Claim, businessName, userEmail, decision string, notes *string) error
	AdminAlert(claim *entity.Claim, businessName, userName string) error
}

// EmailNotifier persists an in-app notification row and, when SMTP is
// configured, sends the same content by email. With no SMTP host it degrades
// to log + in-app only, which is what dev and tests run on.
type EmailNotifier struct {
	DB       *gorm.DB
	Host     string
	Port     string
	From     string
	AdminsTo string // optional admin inbox
}

func NewEmailNotifier(db *gorm.DB, host, port, from string) *EmailNotifier {
	return &EmailNotifier{DB: db, Host: host, Port: port, From: from}
}

func (n *EmailNotifier) deliver(userID uint, notifType, to, subject, body string) error {
	if userID != 0 {
		row := entity.Notification{UserID: userID, Type: notifType, Title: subject, Message: body}
		if err := n.DB.Create(&row).Error; err != nil {
			return err
		}
	}

	if n.Host == "" || to == "" {
		log.Printf("mail (log only) to=%s subject=%q", to, subject)
		return nil
	}

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", n.From, to, subject, body))
	return smtp.SendMail(n.Host+":"+n.Port, nil, n.From, []string{to}, msg)
}

func (n *EmailNotifier) ClaimSubmitted(claim *entity.Claim, businessName, userEmail string) error {
	return n.deliver(claim.UserID, entity.NotifClaimSubmitted, userEmail,
		fmt.Sprintf("Your claim for %s was received", businessName),
		fmt.Sprintf("We received your ownership claim for %s. Complete the verification steps to move it to review.", businessName))
}

func (n *EmailNotifier) VerificationCode(claim *entity.Claim, businessName, userEmail, code string, expiresAt time.Time) error {
	return n.deliver(claim.UserID, entity.NotifVerificationUpdate, userEmail,
		fmt.Sprintf("Verification code for %s", businessName),
		fmt.Sprintf("Your verification code is %s. It expires %s.", code, expiresAt.Format(time.RFC1123)))
}

func (n *EmailNotifier) VerificationUpdate(claim *entity.Claim, businessName, userEmail string, ch *entity.VerificationChannel) error {
	state := "is under review"
	if ch.Verified {
		state = "has been verified"
	}
	return n.deliver(claim.UserID, entity.NotifVerificationUpdate, userEmail,
		fmt.Sprintf("Verification update for %s", businessName),
		fmt.Sprintf("The %s verification step for your claim %s.", ch.Method, state))
}

func (n *EmailNotifier) MenuReviewed(claim *entity.Claim, businessName, userEmail string, approved bool, notes *string) error {
	subject := fmt.Sprintf("Menu approved for %s", businessName)
	body := "Your submitted menu passed review."
	if !approved {
		subject = fmt.Sprintf("Menu needs updates for %s", businessName)
		body = "Your submitted menu needs updates before it can be verified."
	}
	if notes != nil && *notes != "" {
		body += " Reviewer notes: " + *notes
	}
	return n.deliver(claim.UserID, entity.NotifVerificationUpdate, userEmail, subject, body)
}

func (n *EmailNotifier) ClaimDecision(claim *entity.Claim, businessName, userEmail, decision string, notes *string) error {
	notifType := entity.NotifClaimApproved
	subject := fmt.Sprintf("Your claim for %s was approved", businessName)
	body := fmt.Sprintf("Congratulations! You now manage %s on Loaded Tea Finder.", businessName)
	if decision == entity.ClaimRejected {
		notifType = entity.NotifClaimRejected
		subject = fmt.Sprintf("Your claim for %s was rejected", businessName)
		body = fmt.Sprintf("Your ownership claim for %s was not approved.", businessName)
	}
	if notes != nil && *notes != "" {
		body += " Notes: " + *notes
	}
	return n.deliver(claim.UserID, notifType, userEmail, subject, body)
}

func (n *EmailNotifier) AdminAlert(claim *entity.Claim, businessName, userName string) error {
	return n.deliver(0, entity.NotifAdminClaimSubmitted, n.AdminsTo,
		"New business claim submitted",
		fmt.Sprintf("%s submitted a claim for %s (claim #%d).", userName, businessName, claim.ID))
}
