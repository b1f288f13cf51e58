package controllers

import (
	"strconv"

	"github.com/cluns13/loadedteaclub-backend/pkg/resp"
	"github.com/cluns13/loadedteaclub-backend/services"
	"github.com/cluns13/loadedteaclub-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Svc *services.ReportService
}

func NewReportController(svc *services.ReportService) *ReportController {
	return &ReportController{Svc: svc}
}

type CreateReportReq struct {
	IssueTypeID uint   `json:"issueTypeId" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// POST /businesses/:id/reports: flag a listing
func (ctl *ReportController) Create(c *gin.Context) {
	businessID, _ := strconv.Atoi(c.Param("id"))

	var req CreateReportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	report, err := ctl.Svc.Create(utils.CurrentUserID(c), uint(businessID), req.IssueTypeID, req.Description)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, gin.H{"id": report.ID})
}
