package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gzanette/lifetrack-engine/internal/adapters/handler/http/middleware"
	"github.com/gzanette/lifetrack-engine/internal/core/domain"
	"github.com/gzanette/lifetrack-engine/internal/core/services"
)

type RecurringHandler struct {
	svc *services.SchedulerService
}

func NewRecurringHandler(svc *services.SchedulerService) *RecurringHandler {
	return &RecurringHandler{svc: svc}
}

type createContributionRequest struct {
	GoalID    string     `json:"goal_id" binding:"required"`
	Amount    float64    `json:"amount" binding:"required"`
	Frequency string     `json:"frequency" binding:"required"`
	FirstRun  *time.Time `json:"first_run"`
}

func (h *RecurringHandler) RegisterRoutes(router *gin.RouterGroup) {
	contributions := router.Group("/contributions")
	{
		contributions.POST("", h.Create)
		contributions.GET("", h.List)
		contributions.PUT("/:id/active", h.SetActive)
		contributions.DELETE("/:id", h.Delete)

		contributions.GET("/forecast", h.Forecast)
	}

	// Batch entry point for the external cron. Still behind auth: any
	// authenticated caller may trigger it, the run itself is user-agnostic.
	router.POST("/contributions/process-due", h.ProcessDue)
}

func respondContributionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrContributionNotFound), errors.Is(err, domain.ErrGoalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidContribution), errors.Is(err, domain.ErrInvalidRunFrequency):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *RecurringHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.CreateContributionInput{
		UserID:    userID,
		GoalID:    req.GoalID,
		Amount:    req.Amount,
		Frequency: req.Frequency,
	}
	if req.FirstRun != nil {
		input.FirstRun = *req.FirstRun
	}

	rc, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondContributionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rc)
}

func (h *RecurringHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		respondContributionError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *RecurringHandler) SetActive(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rc, err := h.svc.SetActive(c.Request.Context(), c.Param("id"), userID, req.Active)
	if err != nil {
		respondContributionError(c, err)
		return
	}

	c.JSON(http.StatusOK, rc)
}

func (h *RecurringHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondContributionError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecurringHandler) ProcessDue(c *gin.Context) {
	results, err := h.svc.ProcessDue(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"processed": results,
		"count":     len(results),
	})
}

func (h *RecurringHandler) Forecast(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	months := 3
	if monthsStr := c.Query("months"); monthsStr != "" {
		parsed, err := strconv.Atoi(monthsStr)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "months must be a positive integer"})
			return
		}
		months = parsed
	}

	forecast, err := h.svc.ForecastUpcoming(c.Request.Context(), userID, months)
	if err != nil {
		respondContributionError(c, err)
		return
	}

	c.JSON(http.StatusOK, forecast)
}
