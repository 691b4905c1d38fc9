package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gzanette/lifetrack-engine/internal/core/analytics"
	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

// ScoreProvider is the slice of ScoreService the achievement engine needs.
type ScoreProvider interface {
	Compute(ctx context.Context, userID string) (*analytics.ScoreBreakdown, error)
	BestAdherence(ctx context.Context, userID string) (int, error)
}

// AchievementService evaluates the static catalog against a user's
// aggregate metrics and unlocks whatever newly qualifies. Unlocks are
// idempotent and irreversible.
type AchievementService struct {
	catalog     []domain.Achievement
	uaRepo      domain.UserAchievementRepository
	goalRepo    domain.FinancialGoalRepository
	fitnessRepo domain.FitnessGoalRepository
	habitRepo   domain.HabitRepository
	scores      ScoreProvider
}

func NewAchievementService(
	catalog []domain.Achievement,
	uaRepo domain.UserAchievementRepository,
	goalRepo domain.FinancialGoalRepository,
	fitnessRepo domain.FitnessGoalRepository,
	habitRepo domain.HabitRepository,
	scores ScoreProvider,
) *AchievementService {
	return &AchievementService{
		catalog:     catalog,
		uaRepo:      uaRepo,
		goalRepo:    goalRepo,
		fitnessRepo: fitnessRepo,
		habitRepo:   habitRepo,
		scores:      scores,
	}
}

func (s *AchievementService) Catalog() []domain.Achievement {
	return s.catalog
}

func (s *AchievementService) ListUnlocked(ctx context.Context, userID string) ([]*domain.UserAchievement, error) {
	return s.uaRepo.ListByUserID(ctx, userID)
}

func (s *AchievementService) aggregates(ctx context.Context, userID string) (analytics.Aggregates, error) {
	var agg analytics.Aggregates

	goals, err := s.goalRepo.ListByUserID(ctx, userID)
	if err != nil {
		return agg, fmt.Errorf("aggregates: goals: %w", err)
	}
	for _, g := range goals {
		agg.GoalCount++
		agg.TotalSaved += g.CurrentAmount
		if g.Status == domain.GoalStatusCompleted {
			agg.CompletedGoalCount++
		}
	}

	fitnessGoals, err := s.fitnessRepo.ListByUserID(ctx, userID)
	if err != nil {
		return agg, fmt.Errorf("aggregates: fitness goals: %w", err)
	}
	for _, g := range fitnessGoals {
		agg.FitnessGoalCount++
		if g.IsAchieved {
			agg.FitnessCompleted++
		}
	}

	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return agg, fmt.Errorf("aggregates: habits: %w", err)
	}
	for _, h := range habits {
		agg.HabitCount++
		if h.LongestStreak > agg.MaxStreak {
			agg.MaxStreak = h.LongestStreak
		}
	}

	best, err := s.scores.BestAdherence(ctx, userID)
	if err != nil {
		return agg, fmt.Errorf("aggregates: adherence: %w", err)
	}
	agg.BestSystemAdherence = best

	breakdown, err := s.scores.Compute(ctx, userID)
	if err != nil {
		return agg, fmt.Errorf("aggregates: life score: %w", err)
	}
	agg.LifeScore = breakdown.Total

	return agg, nil
}

// Evaluate computes the aggregates once, skips everything already unlocked,
// and tests the rest of the catalog. Running it twice with no new
// qualifying data unlocks nothing the second time.
func (s *AchievementService) Evaluate(ctx context.Context, userID string) ([]*domain.UserAchievement, error) {
	unlockedCodes, err := s.uaRepo.ListCodesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	already := make(map[string]bool, len(unlockedCodes))
	for _, code := range unlockedCodes {
		already[code] = true
	}

	agg, err := s.aggregates(ctx, userID)
	if err != nil {
		return nil, err
	}

	var newlyUnlocked []*domain.UserAchievement
	for _, a := range s.catalog {
		if already[a.Code] {
			continue
		}

		met, err := analytics.CriterionMet(a, agg)
		if err != nil {
			return nil, err
		}
		if !met {
			continue
		}

		ua := &domain.UserAchievement{
			ID:         uuid.NewString(),
			UserID:     userID,
			Code:       a.Code,
			UnlockedAt: time.Now().UTC(),
		}
		if err := s.uaRepo.Create(ctx, ua); err != nil {
			return nil, err
		}

		newlyUnlocked = append(newlyUnlocked, ua)
	}

	return newlyUnlocked, nil
}
