package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

type PostgresUserAchievementRepository struct {
	db *sqlx.DB
}

func NewPostgresUserAchievementRepository(db *sqlx.DB) *PostgresUserAchievementRepository {
	return &PostgresUserAchievementRepository{db: db}
}

// Create uses DO NOTHING on the (user_id, code) constraint: the evaluator
// may race with itself across workers, and the first insert must win quietly.
func (r *PostgresUserAchievementRepository) Create(ctx context.Context, ua *domain.UserAchievement) error {
	query := `
		INSERT INTO user_achievements (id, user_id, code, unlocked_at)
		VALUES (:id, :user_id, :code, :unlocked_at)
		ON CONFLICT (user_id, code) DO NOTHING`

	_, err := r.db.NamedExecContext(ctx, query, ua)
	return err
}

func (r *PostgresUserAchievementRepository) ListCodesByUserID(ctx context.Context, userID string) ([]string, error) {
	codes := []string{}

	query := `SELECT code FROM user_achievements WHERE user_id = $1`

	err := r.db.SelectContext(ctx, &codes, query, userID)
	if err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *PostgresUserAchievementRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.UserAchievement, error) {
	list := []*domain.UserAchievement{}

	query := `SELECT * FROM user_achievements WHERE user_id = $1 ORDER BY unlocked_at DESC`

	err := r.db.SelectContext(ctx, &list, query, userID)
	if err != nil {
		return nil, err
	}
	return list, nil
}
