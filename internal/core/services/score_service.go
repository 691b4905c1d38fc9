package services

import (
	"context"
	"time"

	"github.com/gzanette/lifetrack-engine/internal/core/analytics"
	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

// ScoreService composes the four domain sub-scores into the Life Score and
// freezes daily snapshots of it.
type ScoreService struct {
	goalRepo     domain.FinancialGoalRepository
	fitnessRepo  domain.FitnessGoalRepository
	habitRepo    domain.HabitRepository
	systemRepo   domain.LifeSystemRepository
	logRepo      domain.AdherenceLogRepository
	snapshotRepo domain.SnapshotRepository
}

func NewScoreService(
	goalRepo domain.FinancialGoalRepository,
	fitnessRepo domain.FitnessGoalRepository,
	habitRepo domain.HabitRepository,
	systemRepo domain.LifeSystemRepository,
	logRepo domain.AdherenceLogRepository,
	snapshotRepo domain.SnapshotRepository,
) *ScoreService {
	return &ScoreService{
		goalRepo:     goalRepo,
		fitnessRepo:  fitnessRepo,
		habitRepo:    habitRepo,
		systemRepo:   systemRepo,
		logRepo:      logRepo,
		snapshotRepo: snapshotRepo,
	}
}

// adherenceRates computes the trailing-window adherence of every active
// system. Returned alongside the best rate for achievement evaluation.
func (s *ScoreService) adherenceRates(ctx context.Context, userID string) ([]int, int, error) {
	systems, err := s.systemRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	since := time.Now().UTC().AddDate(0, 0, -analytics.AdherenceWindowDays)

	var rates []int
	best := 0
	for _, sys := range systems {
		if !sys.IsActive {
			continue
		}

		window, err := s.logRepo.ListBySystemSince(ctx, sys.ID, since)
		if err != nil {
			return nil, 0, err
		}

		rate := analytics.AdherenceRate(window)
		rates = append(rates, rate)
		if rate > best {
			best = rate
		}
	}

	return rates, best, nil
}

// Compute aggregates the current Life Score breakdown for a user.
func (s *ScoreService) Compute(ctx context.Context, userID string) (*analytics.ScoreBreakdown, error) {
	goals, err := s.goalRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fitnessGoals, err := s.fitnessRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rates, _, err := s.adherenceRates(ctx, userID)
	if err != nil {
		return nil, err
	}

	b := &analytics.ScoreBreakdown{
		Finance: analytics.FinanceScore(goals),
		Fitness: analytics.FitnessScore(fitnessGoals),
		Habits:  analytics.HabitsScore(habits),
		Systems: analytics.SystemsScore(rates),
	}
	b.Total = analytics.LifeScore(b.Finance, b.Fitness, b.Habits, b.Systems)

	return b, nil
}

// BestAdherence exposes the single best per-system adherence rate; the
// achievement engine tests system_adherence criteria against it.
func (s *ScoreService) BestAdherence(ctx context.Context, userID string) (int, error) {
	_, best, err := s.adherenceRates(ctx, userID)
	return best, err
}

// Snapshot writes today's breakdown. One row per (user, day): calling it
// twice on the same day overwrites rather than appends.
func (s *ScoreService) Snapshot(ctx context.Context, userID string) (*domain.ProgressSnapshot, error) {
	b, err := s.Compute(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := domain.NewProgressSnapshot(userID, time.Now().UTC(), b.Finance, b.Fitness, b.Habits, b.Systems, b.Total)
	if err := s.snapshotRepo.Upsert(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// History returns snapshots from the trailing number of days, oldest first.
func (s *ScoreService) History(ctx context.Context, userID string, days int) ([]*domain.ProgressSnapshot, error) {
	if days < 1 {
		days = analytics.AdherenceWindowDays
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.snapshotRepo.ListByUserID(ctx, userID, since)
}
