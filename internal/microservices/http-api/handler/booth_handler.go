package handler

import (
	"net/http"

	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/middleware"
	"festivalhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type BoothHandler struct {
	svc service.BoothService
}

func NewBoothHandler(svc service.BoothService) *BoothHandler {
	return &BoothHandler{svc: svc}
}

func (h *BoothHandler) RegisterRoutes(rg *gin.RouterGroup, validator middleware.TokenValidator) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)

	admin := rg.Group("", middleware.AuthMiddleware(validator), middleware.RequireAdmin())
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)

	admin.GET("/assignments", h.ListAssignments)
	admin.POST("/assignments", h.Assign)
	admin.DELETE("/assignments/:id", h.Unassign)
}

// List supports a festival_id filter
func (h *BoothHandler) List(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	booths, err := h.svc.List(ctx, c.Query("festival_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booths)
}

func (h *BoothHandler) Get(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	booth, err := h.svc.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booth)
}

func (h *BoothHandler) Create(c *gin.Context) {
	var req dto.BoothRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	booth, err := h.svc.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booth)
}

func (h *BoothHandler) Update(c *gin.Context) {
	var req dto.BoothRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	booth, err := h.svc.Update(ctx, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booth)
}

func (h *BoothHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BoothHandler) ListAssignments(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	assignments, err := h.svc.ListAssignments(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

func (h *BoothHandler) Assign(c *gin.Context) {
	var req dto.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	assignment, err := h.svc.Assign(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

func (h *BoothHandler) Unassign(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Unassign(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
