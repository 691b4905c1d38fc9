package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

type PostgresSnapshotRepository struct {
	db *sqlx.DB
}

func NewPostgresSnapshotRepository(db *sqlx.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

// Upsert keeps one row per (user, day): recomputing the score later the same
// day overwrites the morning's snapshot.
func (r *PostgresSnapshotRepository) Upsert(ctx context.Context, snap *domain.ProgressSnapshot) error {
	query := `
		INSERT INTO progress_snapshots (
			id, user_id, snapshot_date,
			finance_score, fitness_score, habits_score, systems_score,
			life_score, created_at
		) VALUES (
			:id, :user_id, :snapshot_date,
			:finance_score, :fitness_score, :habits_score, :systems_score,
			:life_score, :created_at
		)
		ON CONFLICT (user_id, snapshot_date) DO UPDATE SET
			finance_score = EXCLUDED.finance_score,
			fitness_score = EXCLUDED.fitness_score,
			habits_score = EXCLUDED.habits_score,
			systems_score = EXCLUDED.systems_score,
			life_score = EXCLUDED.life_score`

	_, err := r.db.NamedExecContext(ctx, query, snap)
	return err
}

func (r *PostgresSnapshotRepository) ListByUserID(ctx context.Context, userID string, since time.Time) ([]*domain.ProgressSnapshot, error) {
	snaps := []*domain.ProgressSnapshot{}

	query := `
		SELECT * FROM progress_snapshots
		WHERE user_id = $1 AND snapshot_date >= $2
		ORDER BY snapshot_date ASC`

	err := r.db.SelectContext(ctx, &snaps, query, userID, since)
	if err != nil {
		return nil, err
	}
	return snaps, nil
}
