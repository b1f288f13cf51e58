package controllers

import (
	"errors"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cluns13/loadedteaclub-backend/entity"
	"github.com/cluns13/loadedteaclub-backend/pkg/resp"
	"github.com/cluns13/loadedteaclub-backend/services"
	"github.com/cluns13/loadedteaclub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClaimController struct {
	Svc *services.ClaimService
}

func NewClaimController(svc *services.ClaimService) *ClaimController {
	return &ClaimController{Svc: svc}
}

// claimError maps workflow errors to responses. Everything in the taxonomy is
// recoverable and user-facing.
func claimError(c *gin.Context, err error) {
	var mve *services.MenuValidationError
	switch {
	case errors.As(err, &mve):
		resp.UnprocessableEntity(c, "menu validation failed", gin.H{
			"missingCategories": mve.MissingCategories,
			"errors":            mve.Errors,
		})
	case errors.Is(err, services.ErrClaimNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "claim not found")
	case errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrChannelNotInitiated),
		errors.Is(err, services.ErrMaxAttemptsExceeded),
		errors.Is(err, services.ErrClaimExists),
		errors.Is(err, services.ErrReapplyBlocked),
		errors.Is(err, services.ErrNotFullyVerified),
		errors.Is(err, services.ErrPaymentRequired):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrMissingContactInfo),
		errors.Is(err, services.ErrMissingMenu),
		errors.Is(err, services.ErrUnknownMethod):
		resp.BadRequest(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}

// ====== Request DTOs ======

type ClaimDocumentIn struct {
	FileKey string `json:"fileKey" binding:"required"`
	Label   string `json:"label"`
}

type ClaimMenuItemIn struct {
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Popular     bool     `json:"popular"`
	Ingredients string   `json:"ingredients"`
	Photos      []string `json:"photos"`
}

type CreateClaimReq struct {
	BusinessID    uint              `json:"businessId" binding:"required"`
	BusinessEmail string            `json:"businessEmail"`
	BusinessPhone string            `json:"businessPhone"`
	Documents     []ClaimDocumentIn `json:"documents"`
	MenuItems     []ClaimMenuItemIn `json:"menuItems"`
}

func menuItemsFromReq(in []ClaimMenuItemIn) []entity.ClaimMenuItem {
	items := make([]entity.ClaimMenuItem, 0, len(in))
	for _, m := range in {
		photos := ""
		for i, p := range m.Photos {
			if i > 0 {
				photos += ","
			}
			photos += p
		}
		items = append(items, entity.ClaimMenuItem{
			Name:        m.Name,
			Category:    m.Category,
			Description: m.Description,
			Price:       m.Price,
			Popular:     m.Popular,
			Ingredients: m.Ingredients,
			Photos:      photos,
		})
	}
	return items
}

// POST /claims: claimant asserts ownership of a listing
func (ctl *ClaimController) Create(c *gin.Context) {
	var req CreateClaimReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	docs := make([]entity.ClaimDocument, 0, len(req.Documents))
	for _, d := range req.Documents {
		docs = append(docs, entity.ClaimDocument{FileKey: d.FileKey, Label: d.Label})
	}

	claim, err := ctl.Svc.Create(services.CreateClaimIn{
		BusinessID:    req.BusinessID,
		UserID:        utils.CurrentUserID(c),
		BusinessEmail: req.BusinessEmail,
		BusinessPhone: req.BusinessPhone,
		Documents:     docs,
		MenuItems:     menuItemsFromReq(req.MenuItems),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "business not found")
			return
		}
		claimError(c, err)
		return
	}

	resp.Created(c, gin.H{"id": claim.ID, "status": claim.Status})
}

// GET /claims/mine
func (ctl *ClaimController) Mine(c *gin.Context) {
	claims, err := ctl.Svc.ListForUser(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, claims)
}

// loadOwnClaim enforces that the caller owns the claim (admins pass too).
func (ctl *ClaimController) loadOwnClaim(c *gin.Context) (*entity.Claim, bool) {
	id, _ := strconv.Atoi(c.Param("id"))
	claim, err := ctl.Svc.Get(uint(id))
	if err != nil {
		claimError(c, err)
		return nil, false
	}
	if claim.UserID != utils.CurrentUserID(c) && utils.CurrentRole(c) != "admin" {
		resp.Forbidden(c, "not your claim")
		return nil, false
	}
	return claim, true
}

// GET /claims/:id
func (ctl *ClaimController) Detail(c *gin.Context) {
	claim, ok := ctl.loadOwnClaim(c)
	if !ok {
		return
	}
	resp.OK(c, claim)
}

// GET /claims/:id/verification: per-channel states + the aggregate
func (ctl *ClaimController) VerificationStatus(c *gin.Context) {
	claim, ok := ctl.loadOwnClaim(c)
	if !ok {
		return
	}
	fully, err := ctl.Svc.IsFullyVerified(claim.ID)
	if err != nil {
		claimError(c, err)
		return
	}
	resp.OK(c, gin.H{"channels": claim.Channels, "fullyVerified": fully})
}

// POST /claims/:id/verification/:method
func (ctl *ClaimController) Initiate(c *gin.Context) {
	claim, ok := ctl.loadOwnClaim(c)
	if !ok {
		return
	}
	if err := ctl.Svc.InitiateVerification(claim.ID, c.Param("method")); err != nil {
		claimError(c, err)
		return
	}
	resp.OK(c, gin.H{"initiated": true})
}

type SubmitCodeReq struct {
	Code string `json:"code" binding:"required"`
}

// POST /claims/:id/verification/:method/code
func (ctl *ClaimController) SubmitCode(c *gin.Context) {
	claim, ok := ctl.loadOwnClaim(c)
	if !ok {
		return
	}
	var req SubmitCodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	verified, err := ctl.Svc.ValidateCode(claim.ID, c.Param("method"), req.Code)
	if err != nil {
		claimError(c, err)
		return
	}
	resp.OK(c, gin.H{"verified": verified})
}

// POST /claims/:id/documents: multipart proof upload, stored under ./uploads
func (ctl *ClaimController) UploadDocument(c *gin.Context) {
	claim, ok := ctl.loadOwnClaim(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		resp.BadRequest(c, "missing file")
		return
	}

	key := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join("uploads", key)); err != nil {
		resp.ServerError(c, err)
		return
	}

	if err := ctl.Svc.AddDocument(claim.ID, key, c.PostForm("label")); err != nil {
		claimError(c, err)
		return
	}
	resp.Created(c, gin.H{"fileKey": key})
}

type ResubmitMenuReq struct {
	MenuItems []ClaimMenuItemIn `json:"menuItems" binding:"required"`
}

// PUT /claims/:id/menu: replace the submitted menu after a failed validation
func (ctl *ClaimController) ResubmitMenu(c *gin.Context) {
	claim, ok := ctl.loadOwnClaim(c)
	if !ok {
		return
	}
	var req ResubmitMenuReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Svc.ResubmitMenu(claim.ID, menuItemsFromReq(req.MenuItems)); err != nil {
		claimError(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

type RecordPaymentReq struct {
	Amount int64 `json:"amount" binding:"required"` // cents
	Months int   `json:"months" binding:"required,min=1"`
}

// POST /claims/:id/payment: records the subscription payment outcome.
// Capture itself happens at the payment provider; this endpoint is the
// callback surface.
func (ctl *ClaimController) RecordPayment(c *gin.Context) {
	claim, ok := ctl.loadOwnClaim(c)
	if !ok {
		return
	}
	var req RecordPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	until := time.Now().AddDate(0, req.Months, 0)
	if err := ctl.Svc.RecordPayment(claim.ID, req.Amount, until); err != nil {
		claimError(c, err)
		return
	}
	resp.OK(c, gin.H{"paymentStatus": "paid", "subscriptionEndDate": until})
}

// POST /claims/menu/validate: dry-run the validator for live-editing UIs
func (ctl *ClaimController) ValidateMenu(c *gin.Context) {
	var req ResubmitMenuReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, services.ValidateMenu(menuItemsFromReq(req.MenuItems)))
}
