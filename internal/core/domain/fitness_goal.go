package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrFitnessGoalNotFound = errors.New("fitness goal not found")
	ErrFitnessNameEmpty    = errors.New("fitness goal name cannot be empty")
)

// FitnessGoal tracks a measured value moving from a start toward a target,
// in either direction (weight loss counts down, lifting totals count up).
type FitnessGoal struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	StartValue   float64   `json:"start_value" db:"start_value"`
	CurrentValue float64   `json:"current_value" db:"current_value"`
	TargetValue  float64   `json:"target_value" db:"target_value"`
	Unit         string    `json:"unit" db:"unit"`
	Status       string    `json:"status" db:"status"`
	IsAchieved   bool      `json:"is_achieved" db:"is_achieved"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// FitnessProgressEntry is an append-only record written every time the
// goal's current value changes.
type FitnessProgressEntry struct {
	ID         string    `json:"id" db:"id"`
	GoalID     string    `json:"goal_id" db:"goal_id"`
	Value      float64   `json:"value" db:"value"`
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
}

func NewFitnessGoal(userID, name, unit string, start, target float64) (*FitnessGoal, error) {
	if userID == "" {
		return nil, ErrGoalInvalidUserID
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrFitnessNameEmpty
	}

	now := time.Now().UTC()
	return &FitnessGoal{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         name,
		StartValue:   start,
		CurrentValue: start,
		TargetValue:  target,
		Unit:         unit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

type FitnessGoalRepository interface {
	Create(ctx context.Context, goal *FitnessGoal) error
	GetByID(ctx context.Context, id string) (*FitnessGoal, error)
	ListByUserID(ctx context.Context, userID string) ([]*FitnessGoal, error)
	Update(ctx context.Context, goal *FitnessGoal) error
	Delete(ctx context.Context, id string) error

	// AddProgressEntry appends one history row; history is never mutated.
	AddProgressEntry(ctx context.Context, entry *FitnessProgressEntry) error

	// ListProgress returns history rows for a goal, oldest first.
	ListProgress(ctx context.Context, goalID string) ([]*FitnessProgressEntry, error)
}
