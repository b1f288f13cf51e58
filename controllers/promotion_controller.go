package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/cluns13/loadedteaclub-backend/entity"
	"github.com/cluns13/loadedteaclub-backend/pkg/resp"
	"github.com/cluns13/loadedteaclub-backend/services"
	"github.com/cluns13/loadedteaclub-backend/utils"

	"github.com/gin-gonic/gin"
)

type PromotionController struct {
	Svc *services.PromotionService
}

func NewPromotionController(svc *services.PromotionService) *PromotionController {
	return &PromotionController{Svc: svc}
}

type CreatePromotionReq struct {
	BusinessID uint       `json:"businessId" binding:"required"`
	Title      string     `json:"title" binding:"required"`
	Detail     string     `json:"detail"`
	StartAt    *time.Time `json:"startAt"`
	EndAt      *time.Time `json:"endAt"`
}

// POST /partner/promotions
func (ctl *PromotionController) Create(c *gin.Context) {
	var req CreatePromotionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	promo := entity.Promotion{
		BusinessID: req.BusinessID,
		Title:      req.Title,
		Detail:     req.Detail,
		StartAt:    req.StartAt,
		EndAt:      req.EndAt,
	}
	if err := ctl.Svc.Create(utils.CurrentUserID(c), &promo); err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			resp.Forbidden(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, promo)
}

// GET /promotions: active promotions across the directory
func (ctl *PromotionController) ListActive(c *gin.Context) {
	promos, err := ctl.Svc.ListActive()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": promos})
}

// GET /businesses/:id/promotions
func (ctl *PromotionController) ListByBusiness(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	promos, err := ctl.Svc.ListByBusiness(uint(id))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": promos})
}

// DELETE /partner/promotions/:id
func (ctl *PromotionController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := ctl.Svc.Delete(utils.CurrentUserID(c), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			resp.Forbidden(c, err.Error())
			return
		}
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}
