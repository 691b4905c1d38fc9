package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/gzanette/lifetrack-engine/internal/adapters/handler/http"
	"github.com/gzanette/lifetrack-engine/internal/adapters/handler/http/middleware"
	"github.com/gzanette/lifetrack-engine/internal/adapters/repository"
	"github.com/gzanette/lifetrack-engine/internal/core/domain"
	"github.com/gzanette/lifetrack-engine/internal/core/services"
	"github.com/gzanette/lifetrack-engine/internal/core/workers"
)

type goalResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	CurrentAmount float64 `json:"current_amount"`
	TargetAmount  float64 `json:"target_amount"`
	Status        string  `json:"status"`
}

type loginResult struct {
	Token string `json:"token"`
}

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := repository.NewInMemoryUserRepository()
	goalRepo := repository.NewInMemoryGoalRepository()
	recurringRepo := repository.NewInMemoryRecurringRepository()

	worker := workers.NewAchievementWorker(noEval{})

	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService("e2e-secret", "lifetrack-test", time.Hour, userRepo)
	goalService := services.NewGoalService(goalRepo, worker)
	projectionService := services.NewProjectionService(goalRepo)
	schedulerService := services.NewSchedulerService(recurringRepo, goalRepo)

	authHandler := adapterHTTP.NewAuthHandler(authService, tokenService)
	goalHandler := adapterHTTP.NewGoalHandler(goalService, projectionService)
	recurringHandler := adapterHTTP.NewRecurringHandler(schedulerService)

	router := gin.New()
	api := router.Group("/api/v1")

	authHandler.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokenService))
	{
		goalHandler.RegisterRoutes(protected)
		recurringHandler.RegisterRoutes(protected)
	}

	return router
}

type noEval struct{}

func (noEval) Evaluate(ctx context.Context, userID string) ([]*domain.UserAchievement, error) {
	return nil, nil
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEndToEnd_GoalLifecycle(t *testing.T) {
	router := setupTestServer(t)

	var token string
	var goalID string

	t.Run("1. Register", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "",
			`{"email": "e2e@example.com", "password": "supersecret1"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("2. Login", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "",
			`{"email": "e2e@example.com", "password": "supersecret1"}`)

		require.Equal(t, http.StatusOK, w.Code)

		var resp loginResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Token)
		token = resp.Token
	})

	t.Run("3. Unauthorized request is rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/goals", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("4. Create goal", func(t *testing.T) {
		require.NotEmpty(t, token)

		w := doJSON(t, router, http.MethodPost, "/api/v1/goals", token,
			`{"name": "Emergency Fund", "type": "savings", "target_amount": 1000, "current_amount": 400}`)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp goalResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "needs_focus", resp.Status)
		goalID = resp.ID
	})

	t.Run("5. Contribute moves progress and status", func(t *testing.T) {
		require.NotEmpty(t, goalID)

		w := doJSON(t, router, http.MethodPost, "/api/v1/goals/"+goalID+"/contribute", token,
			`{"amount": 600}`)

		require.Equal(t, http.StatusOK, w.Code)

		var resp goalResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.InDelta(t, 1000, resp.CurrentAmount, 1e-9)
		assert.Equal(t, "completed", resp.Status)
	})

	t.Run("6. Recurring contribution processes when due", func(t *testing.T) {
		require.NotEmpty(t, goalID)

		yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(time.RFC3339)
		payload := fmt.Sprintf(`{"goal_id": %q, "amount": 50, "frequency": "monthly", "first_run": %q}`,
			goalID, yesterday)

		w := doJSON(t, router, http.MethodPost, "/api/v1/contributions", token, payload)
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, router, http.MethodPost, "/api/v1/contributions/process-due", token, "")
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodGet, "/api/v1/goals/"+goalID, token, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp goalResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.InDelta(t, 1050, resp.CurrentAmount, 1e-9)
	})

	t.Run("7. Second process-due run applies nothing", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/contributions/process-due", token, "")
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodGet, "/api/v1/goals/"+goalID, token, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp goalResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.InDelta(t, 1050, resp.CurrentAmount, 1e-9)
	})

	t.Run("8. Projection endpoint responds", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/goals/"+goalID+"/projection", token, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
