package handler

import (
	"context"
	"net/http"

	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/middleware"
	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/http-api/repository"
	"festivalhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type VendorHandler struct {
	svc service.VendorService
}

func NewVendorHandler(svc service.VendorService) *VendorHandler {
	return &VendorHandler{svc: svc}
}

func (h *VendorHandler) RegisterRoutes(rg *gin.RouterGroup, validator middleware.TokenValidator) {
	rg.GET("", h.List)
	rg.GET("/status-counts", h.StatusCounts)
	rg.GET("/:id", h.Get)

	authed := rg.Group("", middleware.AuthMiddleware(validator))
	authed.POST("", h.Register)
	authed.PATCH("/:id/payment-attachment", middleware.RequireRole(models.RoleVendor, models.RoleAdmin), h.AttachPayment)

	admin := authed.Group("", middleware.RequireAdmin())
	admin.PATCH("/:id/registration-status", h.UpdateRegistrationStatus)
	admin.PATCH("/:id/payment-status", h.UpdatePaymentStatus)
	admin.DELETE("/:id", h.Delete)
}

// List supports registration_status, payment_status, festival_id and has_payment=true filters
func (h *VendorHandler) List(c *gin.Context) {
	filter := repository.VendorFilter{
		RegistrationStatus: models.Status(c.Query("registration_status")),
		PaymentStatus:      models.Status(c.Query("payment_status")),
		FestivalID:         c.Query("festival_id"),
		HasPayment:         c.Query("has_payment") == "true",
	}
	for _, s := range []models.Status{filter.RegistrationStatus, filter.PaymentStatus} {
		if s != "" && !s.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status " + string(s)})
			return
		}
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	vendors, err := h.svc.List(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendors)
}

func (h *VendorHandler) Get(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	vendor, err := h.svc.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}

func (h *VendorHandler) StatusCounts(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	counts, err := h.svc.StatusCounts(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *VendorHandler) Register(c *gin.Context) {
	var req dto.VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	vendor, err := h.svc.Register(ctx, middleware.CallerFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vendor)
}

func (h *VendorHandler) UpdateRegistrationStatus(c *gin.Context) {
	h.updateStatus(c, h.svc.UpdateRegistrationStatus)
}

func (h *VendorHandler) UpdatePaymentStatus(c *gin.Context) {
	h.updateStatus(c, h.svc.UpdatePaymentStatus)
}

func (h *VendorHandler) updateStatus(c *gin.Context, update func(ctx context.Context, id string, status models.Status) (*models.Vendor, error)) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	vendor, err := update(ctx, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// AttachPayment records the URL of a payment document uploaded elsewhere
func (h *VendorHandler) AttachPayment(c *gin.Context) {
	var req dto.PaymentAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	vendor, err := h.svc.AttachPayment(ctx, c.Param("id"), middleware.CallerFrom(c), req.URL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}

func (h *VendorHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
