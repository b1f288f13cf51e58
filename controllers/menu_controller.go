package controllers

import (
	"errors"
	"strconv"

	"github.com/cluns13/loadedteaclub-backend/entity"
	"github.com/cluns13/loadedteaclub-backend/pkg/resp"
	"github.com/cluns13/loadedteaclub-backend/services"
	"github.com/cluns13/loadedteaclub-backend/utils"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Svc *services.MenuService
}

func NewMenuController(svc *services.MenuService) *MenuController {
	return &MenuController{Svc: svc}
}

type MenuItemReq struct {
	BusinessID  uint   `json:"businessId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Popular     bool   `json:"popular"`
	Ingredients string `json:"ingredients"`
	Picture     string `json:"picture"`
}

// GET /businesses/:id/menu
func (ctl *MenuController) List(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	items, err := ctl.Svc.ListByBusiness(uint(id))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// POST /partner/menu
func (ctl *MenuController) Create(c *gin.Context) {
	var req MenuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item := entity.MenuItem{
		BusinessID:  req.BusinessID,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Popular:     req.Popular,
		Ingredients: req.Ingredients,
		Picture:     req.Picture,
	}
	if err := ctl.Svc.Create(utils.CurrentUserID(c), &item); err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			resp.Forbidden(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, item)
}

// PATCH /partner/menu/:id
func (ctl *MenuController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req MenuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item, err := ctl.Svc.Update(utils.CurrentUserID(c), uint(id), &entity.MenuItem{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Popular:     req.Popular,
		Ingredients: req.Ingredients,
		Picture:     req.Picture,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			resp.Forbidden(c, err.Error())
			return
		}
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, item)
}

// DELETE /partner/menu/:id
func (ctl *MenuController) Delete(c *gin.Context) {
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
