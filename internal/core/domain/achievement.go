package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUnknownCriteria = errors.New("unsupported achievement criteria type")
)

const (
	CriteriaGoalCount        = "goal_count"
	CriteriaStreak           = "streak"
	CriteriaHabitCount       = "habit_count"
	CriteriaTotalSaved       = "total_saved"
	CriteriaSavings          = "savings"
	CriteriaGoalCompleted    = "goal_completed"
	CriteriaFitnessGoal      = "fitness_goal"
	CriteriaFitnessCompleted = "fitness_completed"
	CriteriaSystemAdherence  = "system_adherence"
	CriteriaLifeScore        = "life_score"
)

// Achievement is one entry of the static catalog. The catalog is loaded once
// at startup and never mutated, so concurrent readers need no locking.
type Achievement struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Criteria    string  `json:"criteria"`
	Threshold   float64 `json:"threshold"`
}

// UserAchievement records an unlock. Unlocks are monotonic: a row, once
// written, is never re-evaluated or revoked.
type UserAchievement struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Code       string    `json:"code" db:"code"`
	UnlockedAt time.Time `json:"unlocked_at" db:"unlocked_at"`
}

// DefaultAchievements is the built-in catalog.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{Code: "first_goal", Name: "Getting Started", Description: "Create your first financial goal", Criteria: CriteriaGoalCount, Threshold: 1},
		{Code: "goal_collector", Name: "Goal Collector", Description: "Have five financial goals", Criteria: CriteriaGoalCount, Threshold: 5},
		{Code: "first_save", Name: "First Save", Description: "Put money toward any goal", Criteria: CriteriaSavings, Threshold: 0},
		{Code: "saved_1k", Name: "Four Figures", Description: "Save a total of 1,000", Criteria: CriteriaTotalSaved, Threshold: 1000},
		{Code: "saved_10k", Name: "Five Figures", Description: "Save a total of 10,000", Criteria: CriteriaTotalSaved, Threshold: 10000},
		{Code: "goal_done", Name: "Finisher", Description: "Complete a financial goal", Criteria: CriteriaGoalCompleted, Threshold: 1},
		{Code: "week_streak", Name: "One Week Strong", Description: "Hold a 7-day habit streak", Criteria: CriteriaStreak, Threshold: 7},
		{Code: "month_streak", Name: "Habit Machine", Description: "Hold a 30-day habit streak", Criteria: CriteriaStreak, Threshold: 30},
		{Code: "habit_builder", Name: "Habit Builder", Description: "Track three habits", Criteria: CriteriaHabitCount, Threshold: 3},
		{Code: "first_fitness", Name: "In Motion", Description: "Create a fitness goal", Criteria: CriteriaFitnessGoal, Threshold: 1},
		{Code: "fitness_done", Name: "Personal Best", Description: "Achieve a fitness goal", Criteria: CriteriaFitnessCompleted, Threshold: 1},
		{Code: "systems_90", Name: "Systems Thinker", Description: "Reach 90% adherence on a life system", Criteria: CriteriaSystemAdherence, Threshold: 90},
		{Code: "score_80", Name: "Well Rounded", Description: "Reach a Life Score of 80", Criteria: CriteriaLifeScore, Threshold: 80},
	}
}

type UserAchievementRepository interface {
	// Create inserts an unlock row. Inserting the same (user, code) twice is
	// a no-op, not an error.
	Create(ctx context.Context, ua *UserAchievement) error

	// ListCodesByUserID returns the codes already unlocked for a user.
	ListCodesByUserID(ctx context.Context, userID string) ([]string, error)

	// ListByUserID returns unlock rows, newest first.
	ListByUserID(ctx context.Context, userID string) ([]*UserAchievement, error)
}
