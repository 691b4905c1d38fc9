package domain

import (
	"context"
	"time"
)

type HabitRepository interface {
	Create(ctx context.Context, habit *Habit) error
	GetByID(ctx context.Context, id string) (*Habit, error)
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)
	Update(ctx context.Context, habit *Habit) error
	Delete(ctx context.Context, id string) error

	// UpdateStreaks persists only the derived streak columns.
	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}

type CheckInRepository interface {
	// Upsert inserts the check-in, or overwrites the row already present for
	// the same habit and calendar day.
	Upsert(ctx context.Context, checkIn *HabitCheckIn) error

	// DeleteByDay removes the check-in for one calendar day ("uncheck").
	DeleteByDay(ctx context.Context, habitID string, day time.Time) error

	// ListCompletedByHabitID returns completed check-ins, newest first.
	ListCompletedByHabitID(ctx context.Context, habitID string) ([]*HabitCheckIn, error)

	// ListByHabitID returns all check-ins in the date range, newest first.
	ListByHabitID(ctx context.Context, habitID string, from, to time.Time) ([]*HabitCheckIn, error)
}
