package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gzanette/lifetrack-engine/internal/core/analytics"
	"github.com/gzanette/lifetrack-engine/internal/core/domain"
	"github.com/gzanette/lifetrack-engine/internal/core/workers"
)

type FitnessService struct {
	repo   domain.FitnessGoalRepository
	worker *workers.AchievementWorker
}

func NewFitnessService(repo domain.FitnessGoalRepository, worker *workers.AchievementWorker) *FitnessService {
	return &FitnessService{
		repo:   repo,
		worker: worker,
	}
}

type CreateFitnessGoalInput struct {
	UserID      string
	Name        string
	Unit        string
	StartValue  float64
	TargetValue float64
}

func (s *FitnessService) Create(ctx context.Context, input CreateFitnessGoalInput) (*domain.FitnessGoal, error) {
	goal, err := domain.NewFitnessGoal(input.UserID, input.Name, input.Unit, input.StartValue, input.TargetValue)
	if err != nil {
		return nil, err
	}

	s.deriveProgress(goal)

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, err
	}

	s.worker.Enqueue(goal.UserID)

	return goal, nil
}

func (s *FitnessService) deriveProgress(goal *domain.FitnessGoal) {
	progress := analytics.FitnessProgress(goal.StartValue, goal.CurrentValue, goal.TargetValue)
	goal.IsAchieved = progress >= 100
	goal.Status = analytics.StatusForProgress(progress)
}

func (s *FitnessService) getOwned(ctx context.Context, id, userID string) (*domain.FitnessGoal, error) {
	goal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, domain.ErrFitnessGoalNotFound
	}
	return goal, nil
}

func (s *FitnessService) GetByID(ctx context.Context, id, userID string) (*domain.FitnessGoal, error) {
	return s.getOwned(ctx, id, userID)
}

func (s *FitnessService) ListByUserID(ctx context.Context, userID string) ([]*domain.FitnessGoal, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// RecordProgress moves the goal's current value and appends one immutable
// history entry. Achievement state is re-derived, never stored on its own.
func (s *FitnessService) RecordProgress(ctx context.Context, id, userID string, value float64) (*domain.FitnessGoal, error) {
	goal, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	goal.CurrentValue = value
	goal.UpdatedAt = now
	s.deriveProgress(goal)

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}

	entry := &domain.FitnessProgressEntry{
		ID:         uuid.NewString(),
		GoalID:     goal.ID,
		Value:      value,
		RecordedAt: now,
	}
	if err := s.repo.AddProgressEntry(ctx, entry); err != nil {
		return nil, err
	}

	s.worker.Enqueue(goal.UserID)

	return goal, nil
}

func (s *FitnessService) ListProgress(ctx context.Context, id, userID string) ([]*domain.FitnessProgressEntry, error) {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.repo.ListProgress(ctx, id)
}

func (s *FitnessService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
