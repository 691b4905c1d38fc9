package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gzanette/lifetrack-engine/internal/adapters/handler/http/middleware"
	"github.com/gzanette/lifetrack-engine/internal/core/services"
)

type AchievementHandler struct {
	svc *services.AchievementService
}

func NewAchievementHandler(svc *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{svc: svc}
}

func (h *AchievementHandler) RegisterRoutes(router *gin.RouterGroup) {
	achievements := router.Group("/achievements")
	{
		achievements.GET("/catalog", h.Catalog)
		achievements.GET("", h.Unlocked)
		achievements.POST("/evaluate", h.Evaluate)
	}
}

func (h *AchievementHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Catalog())
}

func (h *AchievementHandler) Unlocked(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.ListUnlocked(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// Evaluate runs the check synchronously, unlike the background worker path,
// so the client sees what it just unlocked.
func (h *AchievementHandler) Evaluate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	newlyUnlocked, err := h.svc.Evaluate(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"newly_unlocked": newlyUnlocked,
		"count":          len(newlyUnlocked),
	})
}
