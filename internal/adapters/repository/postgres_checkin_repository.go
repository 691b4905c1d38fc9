package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

type PostgresCheckInRepository struct {
	db *sqlx.DB
}

func NewPostgresCheckInRepository(db *sqlx.DB) *PostgresCheckInRepository {
	return &PostgresCheckInRepository{db: db}
}

// Upsert relies on the (habit_id, checkin_date) unique constraint: a second
// check-in on the same day overwrites the first row instead of adding one.
func (r *PostgresCheckInRepository) Upsert(ctx context.Context, checkIn *domain.HabitCheckIn) error {
	query := `
		INSERT INTO habit_checkins (
			id, habit_id, user_id, checkin_date, completed, quantity, notes,
			created_at, updated_at
		) VALUES (
			:id, :habit_id, :user_id, :checkin_date, :completed, :quantity, :notes,
			:created_at, :updated_at
		)
		ON CONFLICT (habit_id, checkin_date) DO UPDATE SET
			completed = EXCLUDED.completed,
			quantity = EXCLUDED.quantity,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.NamedExecContext(ctx, query, checkIn)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return domain.ErrHabitNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresCheckInRepository) DeleteByDay(ctx context.Context, habitID string, day time.Time) error {
	y, m, d := day.UTC().Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	query := `DELETE FROM habit_checkins WHERE habit_id = $1 AND checkin_date = $2`

	result, err := r.db.ExecContext(ctx, query, habitID, midnight)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCheckInNotFound
	}
	return nil
}

func (r *PostgresCheckInRepository) ListCompletedByHabitID(ctx context.Context, habitID string) ([]*domain.HabitCheckIn, error) {
	checkIns := []*domain.HabitCheckIn{}

	query := `
		SELECT * FROM habit_checkins
		WHERE habit_id = $1 AND completed = TRUE
		ORDER BY checkin_date DESC`

	err := r.db.SelectContext(ctx, &checkIns, query, habitID)
	if err != nil {
		return nil, err
	}
	return checkIns, nil
}

func (r *PostgresCheckInRepository) ListByHabitID(ctx context.Context, habitID string, from, to time.Time) ([]*domain.HabitCheckIn, error) {
	checkIns := []*domain.HabitCheckIn{}

	query := `
		SELECT * FROM habit_checkins
		WHERE habit_id = $1
		  AND checkin_date >= $2
		  AND checkin_date <= $3
		ORDER BY checkin_date DESC`

	err := r.db.SelectContext(ctx, &checkIns, query, habitID, from, to)
	if err != nil {
		return nil, err
	}
	return checkIns, nil
}
