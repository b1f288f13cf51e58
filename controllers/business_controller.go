package controllers

import (
	"errors"
	"strconv"

	"github.com/cluns13/loadedteaclub-backend/entity"
	"github.com/cluns13/loadedteaclub-backend/pkg/resp"
	"github.com/cluns13/loadedteaclub-backend/services"
	"github.com/cluns13/loadedteaclub-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BusinessController struct {
	Svc *services.BusinessService
}

func NewBusinessController(svc *services.BusinessService) *BusinessController {
	return &BusinessController{Svc: svc}
}

// GET /businesses?q=&city=&categoryId=
func (ctl *BusinessController) List(c *gin.Context) {
	categoryID, _ := strconv.Atoi(c.Query("categoryId"))
	list, err := ctl.Svc.Search(c.Query("q"), c.Query("city"), uint(categoryID))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": list})
}

// GET /businesses/:id
func (ctl *BusinessController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	detail, err := ctl.Svc.Detail(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "business not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, detail)
}

// GET /partner/businesses: listings the caller manages
func (ctl *BusinessController) Owned(c *gin.Context) {
	list, err := ctl.Svc.ListOwned(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": list})
}

type CreateBusinessReq struct {
	Name               string  `json:"name" binding:"required"`
	Address            string  `json:"address"`
	City               string  `json:"city" binding:"required"`
	State              string  `json:"state"`
	ZipCode            string  `json:"zipCode"`
	Phone              string  `json:"phone"`
	Email              string  `json:"email"`
	Website            string  `json:"website"`
	Description        string  `json:"description"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	BusinessCategoryID uint    `json:"businessCategoryId" binding:"required"`
	BusinessStatusID   uint    `json:"businessStatusId"`
}

// POST /admin/businesses: directory entries are admin-curated; ownership
// comes later through an approved claim
func (ctl *BusinessController) Create(c *gin.Context) {
	var req CreateBusinessReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	statusID := req.BusinessStatusID
	if statusID == 0 {
		statusID = 1 // default Open
	}

	b := entity.Business{
		Name:               req.Name,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		ZipCode:            req.ZipCode,
		Phone:              req.Phone,
		Email:              req.Email,
		Website:            req.Website,
		Description:        req.Description,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		BusinessCategoryID: req.BusinessCategoryID,
		BusinessStatusID:   statusID,
	}
	if err := ctl.Svc.Create(&b); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, gin.H{"id": b.ID})
}

type UpdateBusinessReq struct {
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Website     *string `json:"website"`
	Picture     *string `json:"picture"`
	StatusID    *uint   `json:"businessStatusId"`
}

// PATCH /partner/businesses/:id: owner edits their claimed listing
func (ctl *BusinessController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	if utils.CurrentRole(c) != "admin" {
		ok, err := ctl.Svc.OwnedBy(uint(id), utils.CurrentUserID(c))
		if err != nil || !ok {
			resp.Forbidden(c, "listing is not managed by this user")
			return
		}
	}

	var req UpdateBusinessReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	updates := map[string]any{}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}
	if req.Picture != nil {
		updates["picture"] = *req.Picture
	}
	if req.StatusID != nil {
		updates["business_status_id"] = *req.StatusID
	}
	if len(updates) == 0 {
		resp.BadRequest(c, "nothing to update")
		return
	}

	if err := ctl.Svc.Update(uint(id), updates); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}
