package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gzanette/lifetrack-engine/internal/adapters/handler/http/middleware"
	"github.com/gzanette/lifetrack-engine/internal/core/domain"
	"github.com/gzanette/lifetrack-engine/internal/core/services"
)

type FitnessHandler struct {
	svc *services.FitnessService
}

func NewFitnessHandler(svc *services.FitnessService) *FitnessHandler {
	return &FitnessHandler{svc: svc}
}

type createFitnessGoalRequest struct {
	Name        string  `json:"name" binding:"required"`
	Unit        string  `json:"unit"`
	StartValue  float64 `json:"start_value"`
	TargetValue float64 `json:"target_value"`
}

type recordProgressRequest struct {
	Value float64 `json:"value"`
}

func (h *FitnessHandler) RegisterRoutes(router *gin.RouterGroup) {
	fitness := router.Group("/fitness-goals")
	{
		fitness.POST("", h.Create)
		fitness.GET("", h.List)
		fitness.GET("/:id", h.Get)
		fitness.DELETE("/:id", h.Delete)

		fitness.POST("/:id/progress", h.RecordProgress)
		fitness.GET("/:id/progress", h.ListProgress)
	}
}

func respondFitnessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrFitnessGoalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrFitnessNameEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *FitnessHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createFitnessGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.svc.Create(c.Request.Context(), services.CreateFitnessGoalInput{
		UserID:      userID,
		Name:        req.Name,
		Unit:        req.Unit,
		StartValue:  req.StartValue,
		TargetValue: req.TargetValue,
	})
	if err != nil {
		respondFitnessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, goal)
}

func (h *FitnessHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		respondFitnessError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *FitnessHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	goal, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondFitnessError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *FitnessHandler) RecordProgress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req recordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.svc.RecordProgress(c.Request.Context(), c.Param("id"), userID, req.Value)
	if err != nil {
		respondFitnessError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *FitnessHandler) ListProgress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	entries, err := h.svc.ListProgress(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondFitnessError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *FitnessHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondFitnessError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
