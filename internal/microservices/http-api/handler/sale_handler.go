package handler

import (
	"net/http"

	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/middleware"
	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	svc service.SaleService
}

func NewSaleHandler(svc service.SaleService) *SaleHandler {
	return &SaleHandler{svc: svc}
}

func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup, validator middleware.TokenValidator) {
	authed := rg.Group("", middleware.AuthMiddleware(validator))
	authed.GET("/vendor/:vendorId", h.ListByVendor)
	authed.POST("", middleware.RequireRole(models.RoleVendor, models.RoleAdmin), h.Record)
}

func (h *SaleHandler) Record(c *gin.Context) {
	var req dto.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	sale, err := h.svc.Record(ctx, middleware.CallerFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) ListByVendor(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	sales, err := h.svc.ListByVendor(ctx, c.Param("vendorId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}
