package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

type PostgresGoalRepository struct {
	db *sqlx.DB
}

func NewPostgresGoalRepository(db *sqlx.DB) *PostgresGoalRepository {
	return &PostgresGoalRepository{db: db}
}

func (r *PostgresGoalRepository) Create(ctx context.Context, goal *domain.FinancialGoal) error {
	query := `
		INSERT INTO financial_goals (
			id, user_id, name, type,
			target_amount, current_amount, monthly_contribution, annual_return_rate,
			status, is_paused, is_archived,
			start_date, target_date, created_at, updated_at
		) VALUES (
			:id, :user_id, :name, :type,
			:target_amount, :current_amount, :monthly_contribution, :annual_return_rate,
			:status, :is_paused, :is_archived,
			:start_date, :target_date, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, goal)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return domain.ErrGoalInvalidUserID
		}
		return fmt.Errorf("repository: create goal failed: %w", err)
	}
	return nil
}

func (r *PostgresGoalRepository) GetByID(ctx context.Context, id string) (*domain.FinancialGoal, error) {
	var goal domain.FinancialGoal
	query := `SELECT * FROM financial_goals WHERE id = $1`

	err := r.db.GetContext(ctx, &goal, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (r *PostgresGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.FinancialGoal, error) {
	goals := []*domain.FinancialGoal{}

	query := `SELECT * FROM financial_goals WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &goals, query, userID)
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *PostgresGoalRepository) Update(ctx context.Context, goal *domain.FinancialGoal) error {
	query := `
		UPDATE financial_goals SET
			name = :name,
			target_amount = :target_amount,
			monthly_contribution = :monthly_contribution,
			annual_return_rate = :annual_return_rate,
			status = :status,
			is_paused = :is_paused,
			is_archived = :is_archived,
			target_date = :target_date,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, goal)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func (r *PostgresGoalRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM financial_goals WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

// IncrementAmount pushes the addition into the database so concurrent
// contributions serialize on the row instead of racing in application code.
func (r *PostgresGoalRepository) IncrementAmount(ctx context.Context, id string, delta float64) (float64, error) {
	query := `
		UPDATE financial_goals
		SET current_amount = current_amount + $2,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING current_amount`

	var newAmount float64
	err := r.db.QueryRowContext(ctx, query, id, delta).Scan(&newAmount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrGoalNotFound
		}
		return 0, fmt.Errorf("repository: increment amount failed: %w", err)
	}
	return newAmount, nil
}

func (r *PostgresGoalRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	query := `UPDATE financial_goals SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}
