package handler

import (
	"net/http"
	"strconv"

	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/middleware"
	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// RegisterRoutes expects OptionalAuth (or AuthMiddleware) on rg.
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/unread-count", h.UnreadCount)
	rg.PATCH("/read-all", h.MarkAllRead)
	rg.PATCH("/:id/read", h.MarkRead)
}

// scopeFrom prefers the token's identity. Without a token the role and user_id
// query parameters name the scope.
func scopeFrom(c *gin.Context) models.NotificationScope {
	if caller := middleware.CallerFrom(c); caller.Role != "" {
		return models.NotificationScope{Role: caller.Role, UserID: caller.UserID}
	}
	return models.NotificationScope{
		Role:   models.Role(c.Query("role")),
		UserID: c.Query("user_id"),
	}
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
		return 0, false
	}
	return v, true
}

// List returns the notifications addressed to the scope, newest first
func (h *NotificationHandler) List(c *gin.Context) {
	limit, ok := queryInt(c, "limit", service.DefaultNotificationLimit)
	if !ok {
		return
	}
	skip, ok := queryInt(c, "skip", 0)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	notifications, err := h.svc.List(ctx, scopeFrom(c), limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	count, err := h.svc.UnreadCount(ctx, scopeFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

// MarkRead marks a specific notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	notification, err := h.svc.MarkRead(ctx, c.Param("id"), scopeFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

// MarkAllRead marks every unread notification in the scope as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	updated, err := h.svc.MarkAllRead(ctx, scopeFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: updated})
}
