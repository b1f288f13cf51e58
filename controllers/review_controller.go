package controllers

import (
	"strconv"

	"github.com/cluns13/loadedteaclub-backend/pkg/resp"
	"github.com/cluns13/loadedteaclub-backend/services"
	"github.com/cluns13/loadedteaclub-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Svc *services.ReviewService
}

func NewReviewController(svc *services.ReviewService) *ReviewController {
	return &ReviewController{Svc: svc}
}

type CreateReviewReq struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comments string `json:"comments"`
}

// POST /businesses/:id/reviews
func (ctl *ReviewController) Create(c *gin.Context) {
	businessID, _ := strconv.Atoi(c.Param("id"))

	var req CreateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	review, err := ctl.Svc.Create(utils.CurrentUserID(c), uint(businessID), req.Rating, req.Comments)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, review)
}

// GET /businesses/:id/reviews
func (ctl *ReviewController) List(c *gin.Context) {
	businessID, _ := strconv.Atoi(c.Param("id"))
	reviews, err := ctl.Svc.ListByBusiness(uint(businessID))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": reviews})
}
