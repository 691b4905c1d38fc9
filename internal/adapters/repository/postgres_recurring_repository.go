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

type PostgresRecurringRepository struct {
	db *sqlx.DB
}

func NewPostgresRecurringRepository(db *sqlx.DB) *PostgresRecurringRepository {
	return &PostgresRecurringRepository{db: db}
}

func (r *PostgresRecurringRepository) Create(ctx context.Context, rc *domain.RecurringContribution) error {
	query := `
		INSERT INTO recurring_contributions (
			id, user_id, goal_id, amount, frequency,
			next_run_date, last_run_date, is_active, created_at, updated_at
		) VALUES (
			:id, :user_id, :goal_id, :amount, :frequency,
			:next_run_date, :last_run_date, :is_active, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, rc)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return domain.ErrGoalNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresRecurringRepository) GetByID(ctx context.Context, id string) (*domain.RecurringContribution, error) {
	var rc domain.RecurringContribution
	query := `SELECT * FROM recurring_contributions WHERE id = $1`

	err := r.db.GetContext(ctx, &rc, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrContributionNotFound
		}
		return nil, err
	}
	return &rc, nil
}

func (r *PostgresRecurringRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.RecurringContribution, error) {
	list := []*domain.RecurringContribution{}

	query := `SELECT * FROM recurring_contributions WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &list, query, userID)
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PostgresRecurringRepository) ListDue(ctx context.Context, before time.Time) ([]*domain.RecurringContribution, error) {
	list := []*domain.RecurringContribution{}

	query := `
		SELECT * FROM recurring_contributions
		WHERE is_active = TRUE AND next_run_date <= $1
		ORDER BY next_run_date ASC`

	err := r.db.SelectContext(ctx, &list, query, before)
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PostgresRecurringRepository) Update(ctx context.Context, rc *domain.RecurringContribution) error {
	query := `
		UPDATE recurring_contributions SET
			amount = :amount,
			frequency = :frequency,
			next_run_date = :next_run_date,
			last_run_date = :last_run_date,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, rc)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrContributionNotFound
	}
	return nil
}

func (r *PostgresRecurringRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM recurring_contributions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrContributionNotFound
	}
	return nil
}
