package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrContributionNotFound = errors.New("recurring contribution not found")
	ErrInvalidRunFrequency  = errors.New("invalid contribution frequency")
)

const (
	RunDaily    = "daily"
	RunWeekly   = "weekly"
	RunBiweekly = "biweekly"
	RunMonthly  = "monthly"
)

func ValidRunFrequency(f string) bool {
	switch f {
	case RunDaily, RunWeekly, RunBiweekly, RunMonthly:
		return true
	}
	return false
}

// RecurringContribution schedules an automatic credit against a financial
// goal. NextRunDate is always derived from the previous run (or creation)
// plus one frequency step; after processing it never points into the past.
type RecurringContribution struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	GoalID      string     `json:"goal_id" db:"goal_id"`
	Amount      float64    `json:"amount" db:"amount"`
	Frequency   string     `json:"frequency" db:"frequency"`
	NextRunDate time.Time  `json:"next_run_date" db:"next_run_date"`
	LastRunDate *time.Time `json:"last_run_date,omitempty" db:"last_run_date"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

func NewRecurringContribution(userID, goalID string, amount float64, frequency string, firstRun time.Time) (*RecurringContribution, error) {
	if userID == "" {
		return nil, ErrGoalInvalidUserID
	}
	if amount <= 0 {
		return nil, ErrInvalidContribution
	}
	if !ValidRunFrequency(frequency) {
		return nil, ErrInvalidRunFrequency
	}

	now := time.Now().UTC()

	y, m, d := firstRun.UTC().Date()
	next := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return &RecurringContribution{
		ID:          uuid.NewString(),
		UserID:      userID,
		GoalID:      goalID,
		Amount:      amount,
		Frequency:   frequency,
		NextRunDate: next,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

type RecurringContributionRepository interface {
	Create(ctx context.Context, rc *RecurringContribution) error
	GetByID(ctx context.Context, id string) (*RecurringContribution, error)
	ListByUserID(ctx context.Context, userID string) ([]*RecurringContribution, error)

	// ListDue returns active contributions with next_run_date <= before.
	ListDue(ctx context.Context, before time.Time) ([]*RecurringContribution, error)

	Update(ctx context.Context, rc *RecurringContribution) error
	Delete(ctx context.Context, id string) error
}
