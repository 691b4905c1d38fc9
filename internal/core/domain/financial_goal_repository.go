package domain

import "context"

type FinancialGoalRepository interface {
	// Create persists a new goal.
	Create(ctx context.Context, goal *FinancialGoal) error

	// GetByID retrieves a goal by its unique identifier.
	GetByID(ctx context.Context, id string) (*FinancialGoal, error)

	// ListByUserID retrieves all goals owned by a user, newest first.
	ListByUserID(ctx context.Context, userID string) ([]*FinancialGoal, error)

	// Update persists the full state of an existing goal.
	Update(ctx context.Context, goal *FinancialGoal) error

	// Delete permanently removes a goal.
	Delete(ctx context.Context, id string) error

	// IncrementAmount atomically adds delta to current_amount and returns the
	// new balance. Contributions must go through this instead of a
	// read-modify-write so concurrent requests against the same goal cannot
	// lose updates.
	IncrementAmount(ctx context.Context, id string, delta float64) (float64, error)

	// UpdateStatus persists only the derived status column.
	UpdateStatus(ctx context.Context, id string, status string) error
}
