package services

import (
	"context"
	"time"

	"github.com/gzanette/lifetrack-engine/internal/core/analytics"
	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

// ProjectionService answers "will I get there" questions for financial
// goals. All the math lives in analytics; this layer only fetches the goal
// and checks ownership.
type ProjectionService struct {
	goalRepo domain.FinancialGoalRepository
}

func NewProjectionService(goalRepo domain.FinancialGoalRepository) *ProjectionService {
	return &ProjectionService{goalRepo: goalRepo}
}

func (s *ProjectionService) goalInput(ctx context.Context, goalID, userID string) (analytics.ProjectionInput, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		return analytics.ProjectionInput{}, err
	}
	if goal.UserID != userID {
		return analytics.ProjectionInput{}, domain.ErrGoalNotFound
	}

	in := analytics.ProjectionInput{
		CurrentAmount: goal.CurrentAmount,
		TargetAmount:  goal.TargetAmount,
		TargetDate:    goal.TargetDate,
	}
	if goal.MonthlyContribution > 0 {
		c := goal.MonthlyContribution
		in.MonthlyContribution = &c
	}
	if goal.AnnualReturnRate > 0 {
		r := goal.AnnualReturnRate
		in.AnnualReturnRate = &r
	}

	return in, nil
}

func (s *ProjectionService) Project(ctx context.Context, goalID, userID string) (*analytics.Projection, error) {
	in, err := s.goalInput(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	p := analytics.Project(in, time.Now().UTC())
	return &p, nil
}

func (s *ProjectionService) Scenarios(ctx context.Context, goalID, userID string) ([]analytics.Scenario, error) {
	in, err := s.goalInput(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	return analytics.Scenarios(in, time.Now().UTC()), nil
}

type WhatIfInput struct {
	GoalID              string
	UserID              string
	MonthlyContribution *float64
	Months              *int
	AnnualReturnRate    *float64
}

func (s *ProjectionService) WhatIf(ctx context.Context, input WhatIfInput) (*analytics.WhatIfResult, error) {
	in, err := s.goalInput(ctx, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	rate := input.AnnualReturnRate
	if rate == nil {
		rate = in.AnnualReturnRate
	}

	return analytics.WhatIf(analytics.WhatIfInput{
		CurrentAmount:       in.CurrentAmount,
		TargetAmount:        in.TargetAmount,
		MonthlyContribution: input.MonthlyContribution,
		Months:              input.Months,
		AnnualReturnRate:    rate,
	})
}
