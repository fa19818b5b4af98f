package handler

import (
	"net/http"

	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/middleware"
	"festivalhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type FestivalHandler struct {
	svc service.FestivalService
}

func NewFestivalHandler(svc service.FestivalService) *FestivalHandler {
	return &FestivalHandler{svc: svc}
}

func (h *FestivalHandler) RegisterRoutes(rg *gin.RouterGroup, validator middleware.TokenValidator) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/reviews", h.ListReviews)

	authed := rg.Group("", middleware.AuthMiddleware(validator))
	authed.POST("/:id/reviews", h.AddReview)

	admin := authed.Group("", middleware.RequireAdmin())
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

func (h *FestivalHandler) List(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	festivals, err := h.svc.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, festivals)
}

func (h *FestivalHandler) Get(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	festival, err := h.svc.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, festival)
}

func (h *FestivalHandler) Create(c *gin.Context) {
	var req dto.FestivalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	festival, err := h.svc.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, festival)
}

func (h *FestivalHandler) Update(c *gin.Context) {
	var req dto.FestivalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	festival, err := h.svc.Update(ctx, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, festival)
}

func (h *FestivalHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FestivalHandler) AddReview(c *gin.Context) {
	var req dto.FestivalReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	review, err := h.svc.AddReview(ctx, c.Param("id"), middleware.CallerFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *FestivalHandler) ListReviews(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	reviews, err := h.svc.ListReviews(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
