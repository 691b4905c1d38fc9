package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gzanette/lifetrack-engine/internal/adapters/handler/http/middleware"
	"github.com/gzanette/lifetrack-engine/internal/core/domain"
	"github.com/gzanette/lifetrack-engine/internal/core/services"
)

type SystemHandler struct {
	svc *services.SystemService
}

func NewSystemHandler(svc *services.SystemService) *SystemHandler {
	return &SystemHandler{svc: svc}
}

type createSystemRequest struct {
	Name            string `json:"name" binding:"required"`
	Category        string `json:"category"`
	AdherenceTarget int    `json:"adherence_target"`
}

type logAdherenceRequest struct {
	Date    *time.Time `json:"date"`
	Adhered bool       `json:"adhered"`
}

func (h *SystemHandler) RegisterRoutes(router *gin.RouterGroup) {
	systems := router.Group("/systems")
	{
		systems.POST("", h.Create)
		systems.GET("", h.List)
		systems.GET("/:id", h.Get)
		systems.PUT("/:id/active", h.SetActive)
		systems.DELETE("/:id", h.Delete)

		systems.POST("/:id/logs", h.LogAdherence)
		systems.GET("/:id/adherence", h.Adherence)
	}
}

func respondSystemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSystemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSystemNameEmpty), errors.Is(err, domain.ErrInvalidAdherenceGoal):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *SystemHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createSystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	system, err := h.svc.Create(c.Request.Context(), services.CreateSystemInput{
		UserID:          userID,
		Name:            req.Name,
		Category:        req.Category,
		AdherenceTarget: req.AdherenceTarget,
	})
	if err != nil {
		respondSystemError(c, err)
		return
	}

	c.JSON(http.StatusCreated, system)
}

func (h *SystemHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		respondSystemError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *SystemHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	system, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondSystemError(c, err)
		return
	}

	c.JSON(http.StatusOK, system)
}

func (h *SystemHandler) LogAdherence(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req logAdherenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day := time.Now().UTC()
	if req.Date != nil {
		day = *req.Date
	}

	entry, err := h.svc.LogAdherence(c.Request.Context(), c.Param("id"), userID, day, req.Adhered)
	if err != nil {
		respondSystemError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *SystemHandler) Adherence(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	report, err := h.svc.Adherence(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondSystemError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *SystemHandler) SetActive(c *gin.Context) {
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

	system, err := h.svc.SetActive(c.Request.Context(), c.Param("id"), userID, req.Active)
	if err != nil {
		respondSystemError(c, err)
		return
	}

	c.JSON(http.StatusOK, system)
}

func (h *SystemHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondSystemError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
