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

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// RegisterRoutes lets anonymous callers read published events. Admins see drafts too.
func (h *EventHandler) RegisterRoutes(rg *gin.RouterGroup, validator middleware.TokenValidator) {
	public := rg.Group("", middleware.OptionalAuth(validator))
	public.GET("", h.List)
	public.GET("/:id", h.Get)

	admin := rg.Group("", middleware.AuthMiddleware(validator), middleware.RequireAdmin())
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.PATCH("/:id/status", h.UpdateStatus)
	admin.DELETE("/:id", h.Delete)
}

// List supports festival_id and status filters
func (h *EventHandler) List(c *gin.Context) {
	filter := repository.EventFilter{
		FestivalID: c.Query("festival_id"),
		Status:     models.EventStatus(c.Query("status")),
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	events, err := h.svc.List(ctx, middleware.CallerFrom(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Get(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	event, err := h.svc.Get(ctx, middleware.CallerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	event, err := h.svc.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) Update(c *gin.Context) {
	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	event, err := h.svc.Update(ctx, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) UpdateStatus(c *gin.Context) {
	var req dto.EventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	event, err := h.svc.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
