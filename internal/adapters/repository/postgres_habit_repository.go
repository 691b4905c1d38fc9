package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

func (r *PostgresHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	query := `
		INSERT INTO habits (
			id, user_id, title, description, frequency, target_count,
			current_streak, longest_streak, is_active, created_at, updated_at
		) VALUES (
			:id, :user_id, :title, :description, :frequency, :target_count,
			:current_streak, :longest_streak, :is_active, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, habit)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return domain.ErrHabitInvalidUserID
		}
		return err
	}
	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	var habit domain.Habit
	query := `SELECT * FROM habits WHERE id = $1`

	err := r.db.GetContext(ctx, &habit, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, err
	}
	return &habit, nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	habits := []*domain.Habit{}

	query := `SELECT * FROM habits WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &habits, query, userID)
	if err != nil {
		return nil, err
	}
	return habits, nil
}

func (r *PostgresHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	query := `
		UPDATE habits SET
			title = :title,
			description = :description,
			frequency = :frequency,
			target_count = :target_count,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, habit)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

func (r *PostgresHabitRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

func (r *PostgresHabitRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	query := `
		UPDATE habits
		SET current_streak = $2,
		    longest_streak = $3,
		    updated_at = $4
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, current, longest, time.Now().UTC())
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}
