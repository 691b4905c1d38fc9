package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

type PostgresFitnessRepository struct {
	db *sqlx.DB
}

func NewPostgresFitnessRepository(db *sqlx.DB) *PostgresFitnessRepository {
	return &PostgresFitnessRepository{db: db}
}

func (r *PostgresFitnessRepository) Create(ctx context.Context, goal *domain.FitnessGoal) error {
	query := `
		INSERT INTO fitness_goals (
			id, user_id, name, start_value, current_value, target_value,
			unit, status, is_achieved, created_at, updated_at
		) VALUES (
			:id, :user_id, :name, :start_value, :current_value, :target_value,
			:unit, :status, :is_achieved, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, goal)
	return err
}

func (r *PostgresFitnessRepository) GetByID(ctx context.Context, id string) (*domain.FitnessGoal, error) {
	var goal domain.FitnessGoal
	query := `SELECT * FROM fitness_goals WHERE id = $1`

	err := r.db.GetContext(ctx, &goal, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFitnessGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (r *PostgresFitnessRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.FitnessGoal, error) {
	goals := []*domain.FitnessGoal{}

	query := `SELECT * FROM fitness_goals WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &goals, query, userID)
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *PostgresFitnessRepository) Update(ctx context.Context, goal *domain.FitnessGoal) error {
	query := `
		UPDATE fitness_goals SET
			name = :name,
			current_value = :current_value,
			target_value = :target_value,
			unit = :unit,
			status = :status,
			is_achieved = :is_achieved,
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
		return domain.ErrFitnessGoalNotFound
	}
	return nil
}

func (r *PostgresFitnessRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM fitness_goals WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrFitnessGoalNotFound
	}
	return nil
}

func (r *PostgresFitnessRepository) AddProgressEntry(ctx context.Context, entry *domain.FitnessProgressEntry) error {
	query := `
		INSERT INTO fitness_progress (id, goal_id, value, recorded_at)
		VALUES (:id, :goal_id, :value, :recorded_at)`

	_, err := r.db.NamedExecContext(ctx, query, entry)
	return err
}

func (r *PostgresFitnessRepository) ListProgress(ctx context.Context, goalID string) ([]*domain.FitnessProgressEntry, error) {
	entries := []*domain.FitnessProgressEntry{}

	query := `SELECT * FROM fitness_progress WHERE goal_id = $1 ORDER BY recorded_at ASC`

	err := r.db.SelectContext(ctx, &entries, query, goalID)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
