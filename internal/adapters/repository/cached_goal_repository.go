package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

var _ domain.FinancialGoalRepository = (*CachedGoalRepository)(nil)

// CachedGoalRepository caches the per-user goal list, the hottest read on
// the dashboard. Single goals and writes pass straight through; every write
// invalidates the owner's list.
type CachedGoalRepository struct {
	next  domain.FinancialGoalRepository
	cache *redis.Client
}

func NewCachedGoalRepository(next domain.FinancialGoalRepository, cache *redis.Client) *CachedGoalRepository {
	return &CachedGoalRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedGoalRepository) cacheKey(userID string) string {
	return fmt.Sprintf("goals:%s", userID)
}

func (r *CachedGoalRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate for user %s: %v", userID, err)
	}
}

// invalidateByGoalID resolves the owner first; used by the narrow writes
// that only receive a goal id.
func (r *CachedGoalRepository) invalidateByGoalID(ctx context.Context, id string) {
	goal, err := r.next.GetByID(ctx, id)
	if err != nil {
		return
	}
	r.invalidate(ctx, goal.UserID)
}

func (r *CachedGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.FinancialGoal, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var goals []*domain.FinancialGoal
		if err := json.Unmarshal([]byte(val), &goals); err == nil {
			return goals, nil
		}

		log.Printf("[CACHE] Corrupted data for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	goals, err := r.next.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(goals); err == nil {
		if setErr := r.cache.Set(ctx, key, data, 30*time.Minute).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return goals, nil
}

func (r *CachedGoalRepository) GetByID(ctx context.Context, id string) (*domain.FinancialGoal, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedGoalRepository) Create(ctx context.Context, goal *domain.FinancialGoal) error {
	if err := r.next.Create(ctx, goal); err != nil {
		return err
	}
	r.invalidate(ctx, goal.UserID)
	return nil
}

func (r *CachedGoalRepository) Update(ctx context.Context, goal *domain.FinancialGoal) error {
	if err := r.next.Update(ctx, goal); err != nil {
		return err
	}
	r.invalidate(ctx, goal.UserID)
	return nil
}

func (r *CachedGoalRepository) Delete(ctx context.Context, id string) error {
	goal, err := r.next.GetByID(ctx, id)
	if err == nil && goal != nil {
		defer r.invalidate(ctx, goal.UserID)
	}

	return r.next.Delete(ctx, id)
}

func (r *CachedGoalRepository) IncrementAmount(ctx context.Context, id string, delta float64) (float64, error) {
	defer r.invalidateByGoalID(ctx, id)

	return r.next.IncrementAmount(ctx, id, delta)
}

func (r *CachedGoalRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	defer r.invalidateByGoalID(ctx, id)

	return r.next.UpdateStatus(ctx, id, status)
}
