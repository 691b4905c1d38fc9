package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProgressSnapshot freezes the four domain sub-scores plus the composite
// Life Score for one calendar day. Append-only, one row per (user, day).
type ProgressSnapshot struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	Date         time.Time `json:"date" db:"snapshot_date"`
	FinanceScore float64   `json:"finance_score" db:"finance_score"`
	FitnessScore float64   `json:"fitness_score" db:"fitness_score"`
	HabitsScore  float64   `json:"habits_score" db:"habits_score"`
	SystemsScore float64   `json:"systems_score" db:"systems_score"`
	LifeScore    int       `json:"life_score" db:"life_score"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func NewProgressSnapshot(userID string, day time.Time, finance, fitness, habits, systems float64, lifeScore int) *ProgressSnapshot {
	y, m, d := day.UTC().Date()

	return &ProgressSnapshot{
		ID:           uuid.NewString(),
		UserID:       userID,
		Date:         time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		FinanceScore: finance,
		FitnessScore: fitness,
		HabitsScore:  habits,
		SystemsScore: systems,
		LifeScore:    lifeScore,
		CreatedAt:    time.Now().UTC(),
	}
}

type SnapshotRepository interface {
	// Upsert writes the snapshot, overwriting the row already present for
	// the same user and day.
	Upsert(ctx context.Context, snap *ProgressSnapshot) error

	// ListByUserID returns snapshots dated on or after since, oldest first.
	ListByUserID(ctx context.Context, userID string, since time.Time) ([]*ProgressSnapshot, error)
}
