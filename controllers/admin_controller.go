package controllers

import (
	"strconv"

	"github.com/cluns13/loadedteaclub-backend/pkg/resp"
	"github.com/cluns13/loadedteaclub-backend/repository"
	"github.com/cluns13/loadedteaclub-backend/services"
	"github.com/cluns13/loadedteaclub-backend/utils"

	"github.com/gin-gonic/gin"
)

// AdminController is the review side of the claim workflow plus report
// moderation.
type AdminController struct {
	ClaimSvc  *services.ClaimService
	ReportSvc *services.ReportService
	UserRepo  *repository.UserRepository
}

func NewAdminController(claimSvc *services.ClaimService, reportSvc *services.ReportService, userRepo *repository.UserRepository) *AdminController {
	return &AdminController{ClaimSvc: claimSvc, ReportSvc: reportSvc, UserRepo: userRepo}
}

// currentAdmin resolves the admin profile behind the logged-in user.
func (ctl *AdminController) currentAdmin(c *gin.Context) (uint, bool) {
	admin, err := ctl.UserRepo.FindAdminByUserID(utils.CurrentUserID(c))
	if err != nil {
		resp.Forbidden(c, "not an admin")
		return 0, false
	}
	return admin.ID, true
}

// GET /admin/claims?status=pending
func (ctl *AdminController) Claims(c *gin.Context) {
	claims, err := ctl.ClaimSvc.ListByStatus(c.DefaultQuery("status", "pending"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, claims)
}

// GET /admin/claims/:id
func (ctl *AdminController) ClaimDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	claim, err := ctl.ClaimSvc.Get(uint(id))
	if err != nil {
		claimError(c, err)
		return
	}
	fully, err := ctl.ClaimSvc.IsFullyVerified(claim.ID)
	if err != nil {
		claimError(c, err)
		return
	}
	resp.OK(c, gin.H{"claim": claim, "fullyVerified": fully})
}

type ReviewDocumentsReq struct {
	Verified bool `json:"verified"`
}

// PATCH /admin/claims/:id/documents
func (ctl *AdminController) ReviewDocuments(c *gin.Context) {
	if _, ok := ctl.currentAdmin(c); !ok {
		return
	}
	id, _ := strconv.Atoi(c.Param("id"))

	var req ReviewDocumentsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.ClaimSvc.VerifyDocuments(uint(id), req.Verified); err != nil {
		claimError(c, err)
		return
	}
	resp.OK(c, gin.H{"verified": req.Verified})
}

type ReviewMenuReq struct {
	IsValid bool    `json:"isValid"`
	Notes   *string `json:"notes"`
}

// PATCH /admin/claims/:id/menu
func (ctl *AdminController) ReviewMenu(c *gin.Context) {
	if _, ok := ctl.currentAdmin(c); !ok {
		return
	}
	id, _ := strconv.Atoi(c.Param("id"))

	var req ReviewMenuReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.ClaimSvc.VerifyMenu(uint(id), req.IsValid, req.Notes); err != nil {
		claimError(c, err)
		return
	}
	resp.OK(c, gin.H{"isValid": req.IsValid})
}

type ApproveClaimReq struct {
	Notes *string `json:"notes"`
}

// PATCH /admin/claims/:id/approve
func (ctl *AdminController) ApproveClaim(c *gin.Context) {
	adminID, ok := ctl.currentAdmin(c)
	if !ok {
		return
	}
	id, _ := strconv.Atoi(c.Param("id"))

	var req ApproveClaimReq
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.ClaimSvc.FinalizeReview(uint(id), "approve", adminID, req.Notes); err != nil {
		claimError(c, err)
		return
	}
	resp.OK(c, gin.H{"claimId": id, "status": "approved"})
}

type RejectClaimReq struct {
	Reason string `json:"reason" binding:"required"`
}

// PATCH /admin/claims/:id/reject
func (ctl *AdminController) RejectClaim(c *gin.Context) {
	adminID, ok := ctl.currentAdmin(c)
	if !ok {
		return
	}
	id, _ := strconv.Atoi(c.Param("id"))

	var req RejectClaimReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.ClaimSvc.FinalizeReview(uint(id), "reject", adminID, &req.Reason); err != nil {
		claimError(c, err)
		return
	}
	resp.OK(c, gin.H{"claimId": id, "status": "rejected", "reason": req.Reason})
}

// GET /admin/reports
func (ctl *AdminController) Reports(c *gin.Context) {
	reports, err := ctl.ReportSvc.ListOpen()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, reports)
}

// PATCH /admin/reports/:id/resolve
func (ctl *AdminController) ResolveReport(c *gin.Context) {
	adminID, ok := ctl.currentAdmin(c)
	if !ok {
		return
	}
	id, _ := strconv.Atoi(c.Param("id"))
	if err := ctl.ReportSvc.Resolve(uint(id), adminID); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, gin.H{"resolved": true})
}
