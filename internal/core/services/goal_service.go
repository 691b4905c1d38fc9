package services

import (
	"context"
	"time"

	"github.com/gzanette/lifetrack-engine/internal/core/analytics"
	"github.com/gzanette/lifetrack-engine/internal/core/domain"
	"github.com/gzanette/lifetrack-engine/internal/core/workers"
)

type GoalService struct {
	repo   domain.FinancialGoalRepository
	worker *workers.AchievementWorker
}

func NewGoalService(repo domain.FinancialGoalRepository, worker *workers.AchievementWorker) *GoalService {
	return &GoalService{
		repo:   repo,
		worker: worker,
	}
}

type CreateGoalInput struct {
	UserID              string
	Name                string
	Type                string
	TargetAmount        float64
	CurrentAmount       float64
	MonthlyContribution float64
	TargetDate          time.Time
}

type UpdateGoalInput struct {
	ID                  string
	UserID              string
	Name                *string
	TargetAmount        *float64
	MonthlyContribution *float64
	TargetDate          *time.Time
	AnnualReturnRate    *float64
}

func (s *GoalService) Create(ctx context.Context, input CreateGoalInput) (*domain.FinancialGoal, error) {
	goal, err := domain.NewFinancialGoal(input.UserID, input.Name, input.Type,
		input.TargetAmount, input.CurrentAmount, input.MonthlyContribution, input.TargetDate)
	if err != nil {
		return nil, err
	}

	goal.Status = analytics.GoalStatus(goal)

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, err
	}

	s.worker.Enqueue(goal.UserID)

	return goal, nil
}

// getOwned fetches a goal and hides other users' rows behind not-found.
func (s *GoalService) getOwned(ctx context.Context, id, userID string) (*domain.FinancialGoal, error) {
	goal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}
	return goal, nil
}

func (s *GoalService) GetByID(ctx context.Context, id, userID string) (*domain.FinancialGoal, error) {
	return s.getOwned(ctx, id, userID)
}

func (s *GoalService) ListByUserID(ctx context.Context, userID string) ([]*domain.FinancialGoal, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *GoalService) Update(ctx context.Context, input UpdateGoalInput) (*domain.FinancialGoal, error) {
	goal, err := s.getOwned(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		goal.Name = *input.Name
	}
	if input.TargetAmount != nil {
		if *input.TargetAmount <= 0 {
			return nil, domain.ErrInvalidTargetAmount
		}
		goal.TargetAmount = *input.TargetAmount
	}
	if input.MonthlyContribution != nil {
		if *input.MonthlyContribution < 0 {
			return nil, domain.ErrInvalidAmount
		}
		goal.MonthlyContribution = *input.MonthlyContribution
	}
	if input.TargetDate != nil {
		goal.TargetDate = *input.TargetDate
	}
	if input.AnnualReturnRate != nil {
		goal.AnnualReturnRate = *input.AnnualReturnRate
	}

	// Target changes shift the classification, so it is never persisted
	// stale relative to the amounts.
	goal.Status = analytics.GoalStatus(goal)
	goal.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}

	s.worker.Enqueue(goal.UserID)

	return goal, nil
}

type ContributeInput struct {
	GoalID string
	UserID string
	Amount float64
}

// Contribute credits a goal through the repository's atomic increment, so
// two concurrent contributions to the same goal both land.
func (s *GoalService) Contribute(ctx context.Context, input ContributeInput) (*domain.FinancialGoal, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidContribution
	}

	goal, err := s.getOwned(ctx, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	newAmount, err := s.repo.IncrementAmount(ctx, goal.ID, input.Amount)
	if err != nil {
		return nil, err
	}

	goal.CurrentAmount = newAmount
	goal.Status = analytics.GoalStatus(goal)
	goal.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateStatus(ctx, goal.ID, goal.Status); err != nil {
		return nil, err
	}

	s.worker.Enqueue(goal.UserID)

	return goal, nil
}

func (s *GoalService) SetPaused(ctx context.Context, id, userID string, paused bool) (*domain.FinancialGoal, error) {
	goal, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if paused {
		goal.Pause()
	} else {
		goal.Resume()
	}
	goal.Status = analytics.GoalStatus(goal)

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) SetArchived(ctx context.Context, id, userID string, archived bool) (*domain.FinancialGoal, error) {
	goal, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if archived {
		goal.Archive()
	} else {
		goal.Restore()
	}
	goal.Status = analytics.GoalStatus(goal)

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
