package controllers

import (
	"errors"

	"github.com/cluns13/loadedteaclub-backend/pkg/resp"
	"github.com/cluns13/loadedteaclub-backend/services"
	"github.com/cluns13/loadedteaclub-backend/utils"

	"github.com/gin-gonic/gin"
)

type RewardController struct {
	Svc *services.RewardService
}

func NewRewardController(svc *services.RewardService) *RewardController {
	return &RewardController{Svc: svc}
}

// GET /rewards: the caller's punch cards
func (ctl *RewardController) Cards(c *gin.Context) {
	cards, err := ctl.Svc.Cards(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": cards, "target": ctl.Svc.Target})
}

type StampReq struct {
	VisitorID  uint `json:"visitorId" binding:"required"`
	BusinessID uint `json:"businessId" binding:"required"`
	Points     int  `json:"points"`
}

// POST /partner/rewards/stamp: owner stamps a visitor's card
func (ctl *RewardController) Stamp(c *gin.Context) {
	var req StampReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	card, err := ctl.Svc.Stamp(utils.CurrentUserID(c), req.VisitorID, req.BusinessID, req.Points)
	if err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			resp.Forbidden(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, card)
}

type RedeemReq struct {
	BusinessID uint `json:"businessId" binding:"required"`
}

// POST /rewards/redeem
func (ctl *RewardController) Redeem(c *gin.Context) {
	var req RedeemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	card, err := ctl.Svc.Redeem(utils.CurrentUserID(c), req.BusinessID)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, card)
}
