package services

import (
	"context"
	"time"

	"github.com/gzanette/lifetrack-engine/internal/core/analytics"
	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

// SchedulerService owns recurring contributions: their CRUD, the batch
// "process everything due" run, and the forward forecast. The batch run is
// expected to be driven by an external cron, not a loop in here.
type SchedulerService struct {
	repo     domain.RecurringContributionRepository
	goalRepo domain.FinancialGoalRepository
}

func NewSchedulerService(repo domain.RecurringContributionRepository, goalRepo domain.FinancialGoalRepository) *SchedulerService {
	return &SchedulerService{
		repo:     repo,
		goalRepo: goalRepo,
	}
}

type CreateContributionInput struct {
	UserID    string
	GoalID    string
	Amount    float64
	Frequency string
	FirstRun  time.Time
}

func (s *SchedulerService) Create(ctx context.Context, input CreateContributionInput) (*domain.RecurringContribution, error) {
	goal, err := s.goalRepo.GetByID(ctx, input.GoalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != input.UserID {
		return nil, domain.ErrGoalNotFound
	}

	firstRun := input.FirstRun
	if firstRun.IsZero() {
		firstRun, err = analytics.NextRunDate(input.Frequency, time.Now().UTC())
		if err != nil {
			return nil, err
		}
	}

	rc, err := domain.NewRecurringContribution(input.UserID, input.GoalID, input.Amount, input.Frequency, firstRun)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rc); err != nil {
		return nil, err
	}
	return rc, nil
}

func (s *SchedulerService) ListByUserID(ctx context.Context, userID string) ([]*domain.RecurringContribution, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *SchedulerService) getOwned(ctx context.Context, id, userID string) (*domain.RecurringContribution, error) {
	rc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rc.UserID != userID {
		return nil, domain.ErrContributionNotFound
	}
	return rc, nil
}

func (s *SchedulerService) SetActive(ctx context.Context, id, userID string, active bool) (*domain.RecurringContribution, error) {
	rc, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	rc.IsActive = active
	rc.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, rc); err != nil {
		return nil, err
	}
	return rc, nil
}

func (s *SchedulerService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ProcessResult records the outcome of one due item in a batch run.
type ProcessResult struct {
	ContributionID string  `json:"contribution_id"`
	GoalID         string  `json:"goal_id"`
	Amount         float64 `json:"amount"`
	Status         string  `json:"status"`
	Error          string  `json:"error,omitempty"`
}

// processOne advances the schedule before crediting the goal. Ordering
// matters for idempotence: once next_run_date has moved past today, a
// second run of the same batch no longer sees the item as due, so a credit
// can never be applied twice for the same due date.
func (s *SchedulerService) processOne(ctx context.Context, rc *domain.RecurringContribution, now time.Time) error {
	next, err := analytics.NextRunDate(rc.Frequency, now)
	if err != nil {
		return err
	}

	runAt := now
	rc.LastRunDate = &runAt
	rc.NextRunDate = next
	rc.UpdatedAt = now

	if err := s.repo.Update(ctx, rc); err != nil {
		return err
	}

	newAmount, err := s.goalRepo.IncrementAmount(ctx, rc.GoalID, rc.Amount)
	if err != nil {
		return err
	}

	goal, err := s.goalRepo.GetByID(ctx, rc.GoalID)
	if err != nil {
		return err
	}
	goal.CurrentAmount = newAmount

	return s.goalRepo.UpdateStatus(ctx, rc.GoalID, analytics.GoalStatus(goal))
}

// ProcessDue walks every active contribution due by end of today. Items are
// processed sequentially and independently: one failure is recorded and the
// rest still run. At-least-once, best-effort; no automatic retry.
func (s *SchedulerService) ProcessDue(ctx context.Context) ([]ProcessResult, error) {
	now := time.Now().UTC()

	due, err := s.repo.ListDue(ctx, analytics.EndOfDay(now))
	if err != nil {
		return nil, err
	}

	results := make([]ProcessResult, 0, len(due))
	for _, rc := range due {
		res := ProcessResult{
			ContributionID: rc.ID,
			GoalID:         rc.GoalID,
			Amount:         rc.Amount,
			Status:         "processed",
		}

		if err := s.processOne(ctx, rc, now); err != nil {
			res.Status = "failed"
			res.Error = err.Error()
		}

		results = append(results, res)
	}

	return results, nil
}

// ForecastEntry is one projected future occurrence of a contribution.
type ForecastEntry struct {
	ContributionID string    `json:"contribution_id"`
	GoalID         string    `json:"goal_id"`
	Amount         float64   `json:"amount"`
	RunDate        time.Time `json:"run_date"`
}

type Forecast struct {
	Horizon time.Time          `json:"horizon"`
	Entries []ForecastEntry    `json:"entries"`
	PerGoal map[string]float64 `json:"per_goal"`
	Total   float64            `json:"total"`
}

// ForecastUpcoming projects every active contribution forward up to months
// ahead, accumulating the expected credit per goal.
func (s *SchedulerService) ForecastUpcoming(ctx context.Context, userID string, months int) (*Forecast, error) {
	if months < 1 {
		months = 1
	}

	list, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	horizon := time.Now().UTC().AddDate(0, months, 0)

	fc := &Forecast{
		Horizon: horizon,
		Entries: []ForecastEntry{},
		PerGoal: make(map[string]float64),
	}

	for _, rc := range list {
		if !rc.IsActive {
			continue
		}

		run := rc.NextRunDate
		for !run.After(horizon) {
			fc.Entries = append(fc.Entries, ForecastEntry{
				ContributionID: rc.ID,
				GoalID:         rc.GoalID,
				Amount:         rc.Amount,
				RunDate:        run,
			})
			fc.PerGoal[rc.GoalID] += rc.Amount
			fc.Total += rc.Amount

			run, err = analytics.NextRunDate(rc.Frequency, run)
			if err != nil {
				return nil, err
			}
		}
	}

	return fc, nil
}
