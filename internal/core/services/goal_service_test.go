package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
	"github.com/gzanette/lifetrack-engine/internal/core/services"
	"github.com/gzanette/lifetrack-engine/internal/core/workers"
)

func newGoalService(repo *mockGoalRepo) *services.GoalService {
	return services.NewGoalService(repo, workers.NewAchievementWorker(noopEvaluator{}))
}

func TestGoalService_Create(t *testing.T) {
	t.Run("Success: persists goal with derived status", func(t *testing.T) {
		repo := newMockGoalRepo()
		svc := newGoalService(repo)

		created, err := svc.Create(context.Background(), services.CreateGoalInput{
			UserID:        "user-1",
			Name:          "Emergency Fund",
			TargetAmount:  10000,
			CurrentAmount: 8000,
			TargetDate:    time.Now().AddDate(1, 0, 0),
		})

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, domain.GoalStatusOnTrack, created.Status)

		stored, err := repo.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Status, stored.Status)
	})

	t.Run("Fail: zero target rejected before persistence", func(t *testing.T) {
		repo := newMockGoalRepo()
		svc := newGoalService(repo)

		_, err := svc.Create(context.Background(), services.CreateGoalInput{
			UserID:       "user-1",
			Name:         "Broken",
			TargetAmount: 0,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidTargetAmount)
		assert.Empty(t, repo.store)
	})

	t.Run("Fail: negative starting amount", func(t *testing.T) {
		repo := newMockGoalRepo()
		svc := newGoalService(repo)

		_, err := svc.Create(context.Background(), services.CreateGoalInput{
			UserID:        "user-1",
			Name:          "Broken",
			TargetAmount:  100,
			CurrentAmount: -5,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}

func TestGoalService_Contribute(t *testing.T) {
	setup := func(t *testing.T, current, target float64) (*services.GoalService, *mockGoalRepo, *domain.FinancialGoal) {
		repo := newMockGoalRepo()
		svc := newGoalService(repo)

		goal, err := domain.NewFinancialGoal("user-1", "House", domain.GoalTypeSavings, target, current, 0, time.Time{})
		require.NoError(t, err)
		require.NoError(t, repo.Create(context.Background(), goal))

		return svc, repo, goal
	}

	t.Run("Success: credits through the atomic increment", func(t *testing.T) {
		svc, repo, goal := setup(t, 100, 1000)

		updated, err := svc.Contribute(context.Background(), services.ContributeInput{
			GoalID: goal.ID, UserID: "user-1", Amount: 300,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, repo.incrementCall, "must not read-modify-write")
		assert.InDelta(t, 400, updated.CurrentAmount, 1e-9)
		assert.Equal(t, domain.GoalStatusNeedsFocus, updated.Status)
	})

	t.Run("Status recomputed on every contribution", func(t *testing.T) {
		svc, repo, goal := setup(t, 700, 1000)

		updated, err := svc.Contribute(context.Background(), services.ContributeInput{
			GoalID: goal.ID, UserID: "user-1", Amount: 300,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.GoalStatusCompleted, updated.Status)
		assert.Equal(t, []string{domain.GoalStatusCompleted}, repo.statusCalls)
	})

	t.Run("Fail: non-positive amount", func(t *testing.T) {
		svc, _, goal := setup(t, 0, 1000)

		_, err := svc.Contribute(context.Background(), services.ContributeInput{
			GoalID: goal.ID, UserID: "user-1", Amount: 0,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidContribution)
	})

	t.Run("Fail: foreign goal looks like not-found", func(t *testing.T) {
		svc, _, goal := setup(t, 0, 1000)

		_, err := svc.Contribute(context.Background(), services.ContributeInput{
			GoalID: goal.ID, UserID: "user-2", Amount: 50,
		})
		assert.ErrorIs(t, err, domain.ErrGoalNotFound)
	})
}

func TestGoalService_PauseRestoresClassification(t *testing.T) {
	repo := newMockGoalRepo()
	svc := newGoalService(repo)
	ctx := context.Background()

	goal, err := domain.NewFinancialGoal("user-1", "Car", domain.GoalTypeSavings, 100, 80, 0, time.Time{})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, goal))

	paused, err := svc.SetPaused(ctx, goal.ID, "user-1", true)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalStatusPaused, paused.Status)

	resumed, err := svc.SetPaused(ctx, goal.ID, "user-1", false)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalStatusOnTrack, resumed.Status, "numeric classification restored")
}

func TestGoalService_UpdateRecomputesStatus(t *testing.T) {
	repo := newMockGoalRepo()
	svc := newGoalService(repo)
	ctx := context.Background()

	goal, err := domain.NewFinancialGoal("user-1", "Trip", domain.GoalTypeSavings, 1000, 800, 0, time.Time{})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, goal))

	newTarget := 10000.0
	updated, err := svc.Update(ctx, services.UpdateGoalInput{
		ID: goal.ID, UserID: "user-1", TargetAmount: &newTarget,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.GoalStatusBehind, updated.Status, "bigger target drops the classification")

	badTarget := -1.0
	_, err = svc.Update(ctx, services.UpdateGoalInput{
		ID: goal.ID, UserID: "user-1", TargetAmount: &badTarget,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTargetAmount)
}

func TestGoalService_Delete(t *testing.T) {
	repo := newMockGoalRepo()
	svc := newGoalService(repo)
	ctx := context.Background()

	goal, err := domain.NewFinancialGoal("user-1", "Gone", domain.GoalTypeSavings, 100, 0, 0, time.Time{})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, goal))

	assert.ErrorIs(t, svc.Delete(ctx, goal.ID, "user-2"), domain.ErrGoalNotFound)
	assert.NoError(t, svc.Delete(ctx, goal.ID, "user-1"))

	_, err = repo.GetByID(ctx, goal.ID)
	assert.ErrorIs(t, err, domain.ErrGoalNotFound)
}
