package handler

import (
	"net/http"

	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/middleware"
	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/http-api/repository"
	"festivalhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	svc service.TicketService
}

func NewTicketHandler(svc service.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

// RegisterRoutes puts every ticket route behind authentication.
func (h *TicketHandler) RegisterRoutes(rg *gin.RouterGroup, validator middleware.TokenValidator) {
	authed := rg.Group("", middleware.AuthMiddleware(validator))
	authed.GET("", h.List)
	authed.GET("/:id", h.Get)
	authed.POST("", h.Purchase)

	admin := authed.Group("", middleware.RequireAdmin())
	admin.GET("/status-counts", h.StatusCounts)
	admin.PATCH("/:id/payment-status", h.UpdatePaymentStatus)
}

func (h *TicketHandler) List(c *gin.Context) {
	filter := repository.TicketFilter{
		UserID:        c.Query("user_id"),
		FestivalID:    c.Query("festival_id"),
		PaymentStatus: models.Status(c.Query("payment_status")),
	}
	if filter.PaymentStatus != "" && !filter.PaymentStatus.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status " + string(filter.PaymentStatus)})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	tickets, err := h.svc.List(ctx, middleware.CallerFrom(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

func (h *TicketHandler) Get(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	ticket, err := h.svc.Get(ctx, middleware.CallerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) Purchase(c *gin.Context) {
	var req dto.TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	ticket, err := h.svc.Purchase(ctx, middleware.CallerFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

func (h *TicketHandler) UpdatePaymentStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	ticket, err := h.svc.UpdatePaymentStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) StatusCounts(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	counts, err := h.svc.StatusCounts(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
