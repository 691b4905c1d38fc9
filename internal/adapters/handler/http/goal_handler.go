package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gzanette/lifetrack-engine/internal/adapters/handler/http/middleware"
	"github.com/gzanette/lifetrack-engine/internal/core/analytics"
	"github.com/gzanette/lifetrack-engine/internal/core/domain"
	"github.com/gzanette/lifetrack-engine/internal/core/services"
)

type GoalHandler struct {
	svc         *services.GoalService
	projections *services.ProjectionService
}

func NewGoalHandler(svc *services.GoalService, projections *services.ProjectionService) *GoalHandler {
	return &GoalHandler{
		svc:         svc,
		projections: projections,
	}
}

type createGoalRequest struct {
	Name                string     `json:"name" binding:"required"`
	Type                string     `json:"type"`
	TargetAmount        float64    `json:"target_amount" binding:"required"`
	CurrentAmount       float64    `json:"current_amount"`
	MonthlyContribution float64    `json:"monthly_contribution"`
	TargetDate          *time.Time `json:"target_date"`
}

type updateGoalRequest struct {
	Name                *string    `json:"name"`
	TargetAmount        *float64   `json:"target_amount"`
	MonthlyContribution *float64   `json:"monthly_contribution"`
	TargetDate          *time.Time `json:"target_date"`
	AnnualReturnRate    *float64   `json:"annual_return_rate"`
}

type contributeRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

type pauseRequest struct {
	Paused bool `json:"paused"`
}

type archiveRequest struct {
	Archived bool `json:"archived"`
}

type whatIfRequest struct {
	MonthlyContribution *float64 `json:"monthly_contribution"`
	Months              *int     `json:"months"`
	AnnualReturnRate    *float64 `json:"annual_return_rate"`
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.POST("", h.Create)
		goals.GET("", h.List)
		goals.GET("/:id", h.Get)
		goals.PUT("/:id", h.Update)
		goals.DELETE("/:id", h.Delete)

		goals.POST("/:id/contribute", h.Contribute)
		goals.PUT("/:id/pause", h.Pause)
		goals.PUT("/:id/archive", h.Archive)

		goals.GET("/:id/projection", h.Projection)
		goals.GET("/:id/scenarios", h.Scenarios)
		goals.POST("/:id/what-if", h.WhatIf)
	}
}

func goalErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrGoalNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrGoalNameEmpty),
		errors.Is(err, domain.ErrGoalNameTooLong),
		errors.Is(err, domain.ErrInvalidTargetAmount),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidContribution),
		errors.Is(err, domain.ErrInvalidTargetDate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondGoalError(c *gin.Context, err error) {
	status := goalErrorStatus(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (h *GoalHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.CreateGoalInput{
		UserID:              userID,
		Name:                req.Name,
		Type:                req.Type,
		TargetAmount:        req.TargetAmount,
		CurrentAmount:       req.CurrentAmount,
		MonthlyContribution: req.MonthlyContribution,
	}
	if req.TargetDate != nil {
		input.TargetDate = *req.TargetDate
	}

	goal, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondGoalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, goal)
}

func (h *GoalHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		respondGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *GoalHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	goal, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req updateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.svc.Update(c.Request.Context(), services.UpdateGoalInput{
		ID:                  c.Param("id"),
		UserID:              userID,
		Name:                req.Name,
		TargetAmount:        req.TargetAmount,
		MonthlyContribution: req.MonthlyContribution,
		TargetDate:          req.TargetDate,
		AnnualReturnRate:    req.AnnualReturnRate,
	})
	if err != nil {
		respondGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondGoalError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *GoalHandler) Contribute(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req contributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.svc.Contribute(c.Request.Context(), services.ContributeInput{
		GoalID: c.Param("id"),
		UserID: userID,
		Amount: req.Amount,
	})
	if err != nil {
		respondGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Pause(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req pauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.svc.SetPaused(c.Request.Context(), c.Param("id"), userID, req.Paused)
	if err != nil {
		respondGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Archive(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req archiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.svc.SetArchived(c.Request.Context(), c.Param("id"), userID, req.Archived)
	if err != nil {
		respondGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Projection(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	projection, err := h.projections.Project(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, projection)
}

func (h *GoalHandler) Scenarios(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	scenarios, err := h.projections.Scenarios(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, scenarios)
}

func (h *GoalHandler) WhatIf(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req whatIfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.projections.WhatIf(c.Request.Context(), services.WhatIfInput{
		GoalID:              c.Param("id"),
		UserID:              userID,
		MonthlyContribution: req.MonthlyContribution,
		Months:              req.Months,
		AnnualReturnRate:    req.AnnualReturnRate,
	})
	if err != nil {
		if errors.Is(err, analytics.ErrWhatIfInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
