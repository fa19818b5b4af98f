package handler

import (
	"net/http"

	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/middleware"
	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type MenuItemHandler struct {
	svc service.MenuItemService
}

func NewMenuItemHandler(svc service.MenuItemService) *MenuItemHandler {
	return &MenuItemHandler{svc: svc}
}

func (h *MenuItemHandler) RegisterRoutes(rg *gin.RouterGroup, validator middleware.TokenValidator) {
	rg.GET("/vendor/:vendorId", h.ListByVendor)
	rg.GET("/:id", h.Get)

	owners := rg.Group("", middleware.AuthMiddleware(validator), middleware.RequireRole(models.RoleVendor, models.RoleAdmin))
	owners.POST("", h.Create)
	owners.PUT("/:id", h.Update)
	owners.DELETE("/:id", h.Delete)
}

func (h *MenuItemHandler) ListByVendor(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	items, err := h.svc.ListByVendor(ctx, c.Param("vendorId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MenuItemHandler) Get(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	item, err := h.svc.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuItemHandler) Create(c *gin.Context) {
	var req dto.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	item, err := h.svc.Create(ctx, middleware.CallerFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *MenuItemHandler) Update(c *gin.Context) {
	var req dto.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	item, err := h.svc.Update(ctx, middleware.CallerFrom(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuItemHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Delete(ctx, middleware.CallerFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
