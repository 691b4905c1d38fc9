package services

import (
	"context"
	"time"

	"github.com/gzanette/lifetrack-engine/internal/core/analytics"
	"github.com/gzanette/lifetrack-engine/internal/core/domain"
	"github.com/gzanette/lifetrack-engine/internal/core/workers"
)

type HabitService struct {
	repo        domain.HabitRepository
	checkInRepo domain.CheckInRepository
	worker      *workers.AchievementWorker
}

func NewHabitService(repo domain.HabitRepository, checkInRepo domain.CheckInRepository, worker *workers.AchievementWorker) *HabitService {
	return &HabitService{
		repo:        repo,
		checkInRepo: checkInRepo,
		worker:      worker,
	}
}

type CreateHabitInput struct {
	UserID      string
	Title       string
	Description string
	Frequency   string
	TargetCount int
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.UserID, input.Title, input.Description, input.Frequency, input.TargetCount)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	s.worker.Enqueue(habit.UserID)

	return habit, nil
}

func (s *HabitService) getOwned(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

func (s *HabitService) GetByID(ctx context.Context, id, userID string) (*domain.Habit, error) {
	return s.getOwned(ctx, id, userID)
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

type CheckInInput struct {
	HabitID   string
	UserID    string
	Date      time.Time
	Completed bool
	Quantity  int
	Notes     string
}

// CheckIn upserts the day's check-in and synchronously recomputes both
// streaks from the full history. Streaks are never patched incrementally.
func (s *HabitService) CheckIn(ctx context.Context, input CheckInInput) (*domain.Habit, error) {
	habit, err := s.getOwned(ctx, input.HabitID, input.UserID)
	if err != nil {
		return nil, err
	}

	day := input.Date
	if day.IsZero() {
		day = time.Now().UTC()
	}

	checkIn := domain.NewHabitCheckIn(habit.ID, habit.UserID, day, input.Completed, input.Quantity, input.Notes)
	if err := s.checkInRepo.Upsert(ctx, checkIn); err != nil {
		return nil, err
	}

	if err := s.refreshStreaks(ctx, habit); err != nil {
		return nil, err
	}

	s.worker.Enqueue(habit.UserID)

	return habit, nil
}

// Uncheck removes the day's check-in and recomputes streaks. The longest
// streak survives thanks to the monotonic rule.
func (s *HabitService) Uncheck(ctx context.Context, habitID, userID string, day time.Time) (*domain.Habit, error) {
	habit, err := s.getOwned(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.checkInRepo.DeleteByDay(ctx, habit.ID, day); err != nil {
		return nil, err
	}

	if err := s.refreshStreaks(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) refreshStreaks(ctx context.Context, habit *domain.Habit) error {
	history, err := s.checkInRepo.ListCompletedByHabitID(ctx, habit.ID)
	if err != nil {
		return err
	}

	current := analytics.CurrentStreak(history, habit.Frequency, time.Now().UTC())
	longest := analytics.LongestStreak(habit.LongestStreak, current)

	if current == habit.CurrentStreak && longest == habit.LongestStreak {
		return nil
	}

	habit.CurrentStreak = current
	habit.LongestStreak = longest

	return s.repo.UpdateStreaks(ctx, habit.ID, current, longest)
}

func (s *HabitService) ListCheckIns(ctx context.Context, habitID, userID string, from, to time.Time) ([]*domain.HabitCheckIn, error) {
	if _, err := s.getOwned(ctx, habitID, userID); err != nil {
		return nil, err
	}
	return s.checkInRepo.ListByHabitID(ctx, habitID, from, to)
}

func (s *HabitService) SetActive(ctx context.Context, id, userID string, active bool) (*domain.Habit, error) {
	habit, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	habit.IsActive = active
	habit.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *HabitService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
