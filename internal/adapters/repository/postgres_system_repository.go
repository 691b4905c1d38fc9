package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

type PostgresSystemRepository struct {
	db *sqlx.DB
}

func NewPostgresSystemRepository(db *sqlx.DB) *PostgresSystemRepository {
	return &PostgresSystemRepository{db: db}
}

func (r *PostgresSystemRepository) Create(ctx context.Context, system *domain.LifeSystem) error {
	query := `
		INSERT INTO life_systems (
			id, user_id, name, category, adherence_target, is_active,
			created_at, updated_at
		) VALUES (
			:id, :user_id, :name, :category, :adherence_target, :is_active,
			:created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, system)
	return err
}

func (r *PostgresSystemRepository) GetByID(ctx context.Context, id string) (*domain.LifeSystem, error) {
	var system domain.LifeSystem
	query := `SELECT * FROM life_systems WHERE id = $1`

	err := r.db.GetContext(ctx, &system, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSystemNotFound
		}
		return nil, err
	}
	return &system, nil
}

func (r *PostgresSystemRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.LifeSystem, error) {
	systems := []*domain.LifeSystem{}

	query := `SELECT * FROM life_systems WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &systems, query, userID)
	if err != nil {
		return nil, err
	}
	return systems, nil
}

func (r *PostgresSystemRepository) Update(ctx context.Context, system *domain.LifeSystem) error {
	query := `
		UPDATE life_systems SET
			name = :name,
			category = :category,
			adherence_target = :adherence_target,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, system)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrSystemNotFound
	}
	return nil
}

func (r *PostgresSystemRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM life_systems WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrSystemNotFound
	}
	return nil
}

type PostgresAdherenceLogRepository struct {
	db *sqlx.DB
}

func NewPostgresAdherenceLogRepository(db *sqlx.DB) *PostgresAdherenceLogRepository {
	return &PostgresAdherenceLogRepository{db: db}
}

// Upsert relies on the (system_id, log_date) unique constraint, so re-logging
// a day flips the adhered flag instead of duplicating the row.
func (r *PostgresAdherenceLogRepository) Upsert(ctx context.Context, entry *domain.SystemAdherenceLog) error {
	query := `
		INSERT INTO system_adherence_logs (
			id, system_id, user_id, log_date, adhered, created_at
		) VALUES (
			:id, :system_id, :user_id, :log_date, :adhered, :created_at
		)
		ON CONFLICT (system_id, log_date) DO UPDATE SET
			adhered = EXCLUDED.adhered`

	_, err := r.db.NamedExecContext(ctx, query, entry)
	return err
}

func (r *PostgresAdherenceLogRepository) ListBySystemSince(ctx context.Context, systemID string, since time.Time) ([]*domain.SystemAdherenceLog, error) {
	logs := []*domain.SystemAdherenceLog{}

	query := `
		SELECT * FROM system_adherence_logs
		WHERE system_id = $1 AND log_date >= $2
		ORDER BY log_date DESC`

	err := r.db.SelectContext(ctx, &logs, query, systemID, since)
	if err != nil {
		return nil, err
	}
	return logs, nil
}
