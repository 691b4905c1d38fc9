package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

// In-memory implementations backing the end-to-end tests, so the full HTTP
// stack can run without Postgres.

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	r.store[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type InMemoryGoalRepository struct {
	store map[string]*domain.FinancialGoal

	mu sync.RWMutex
}

func NewInMemoryGoalRepository() *InMemoryGoalRepository {
	return &InMemoryGoalRepository{
		store: make(map[string]*domain.FinancialGoal),
	}
}

func (r *InMemoryGoalRepository) Create(ctx context.Context, goal *domain.FinancialGoal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *goal
	r.store[goal.ID] = &clone
	return nil
}

func (r *InMemoryGoalRepository) GetByID(ctx context.Context, id string) (*domain.FinancialGoal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	goal, ok := r.store[id]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	clone := *goal
	return &clone, nil
}

func (r *InMemoryGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.FinancialGoal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var goals []*domain.FinancialGoal
	for _, g := range r.store {
		if g.UserID == userID {
			clone := *g
			goals = append(goals, &clone)
		}
	}

	sort.Slice(goals, func(i, j int) bool {
		return goals[i].CreatedAt.After(goals[j].CreatedAt)
	})

	return goals, nil
}

func (r *InMemoryGoalRepository) Update(ctx context.Context, goal *domain.FinancialGoal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[goal.ID]; !ok {
		return domain.ErrGoalNotFound
	}
	clone := *goal
	r.store[goal.ID] = &clone
	return nil
}

func (r *InMemoryGoalRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrGoalNotFound
	}
	delete(r.store, id)
	return nil
}

// IncrementAmount holds the lock across read-add-write, giving the same
// serialization the SQL UPDATE provides.
func (r *InMemoryGoalRepository) IncrementAmount(ctx context.Context, id string, delta float64) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	goal, ok := r.store[id]
	if !ok {
		return 0, domain.ErrGoalNotFound
	}

	goal.CurrentAmount += delta
	goal.UpdatedAt = time.Now().UTC()
	return goal.CurrentAmount, nil
}

func (r *InMemoryGoalRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	goal, ok := r.store[id]
	if !ok {
		return domain.ErrGoalNotFound
	}

	goal.Status = status
	goal.UpdatedAt = time.Now().UTC()
	return nil
}

type InMemoryRecurringRepository struct {
	store map[string]*domain.RecurringContribution

	mu sync.RWMutex
}

func NewInMemoryRecurringRepository() *InMemoryRecurringRepository {
	return &InMemoryRecurringRepository{
		store: make(map[string]*domain.RecurringContribution),
	}
}

func (r *InMemoryRecurringRepository) Create(ctx context.Context, rc *domain.RecurringContribution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *rc
	r.store[rc.ID] = &clone
	return nil
}

func (r *InMemoryRecurringRepository) GetByID(ctx context.Context, id string) (*domain.RecurringContribution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rc, ok := r.store[id]
	if !ok {
		return nil, domain.ErrContributionNotFound
	}
	clone := *rc
	return &clone, nil
}

func (r *InMemoryRecurringRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.RecurringContribution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []*domain.RecurringContribution
	for _, rc := range r.store {
		if rc.UserID == userID {
			clone := *rc
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *InMemoryRecurringRepository) ListDue(ctx context.Context, before time.Time) ([]*domain.RecurringContribution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []*domain.RecurringContribution
	for _, rc := range r.store {
		if rc.IsActive && !rc.NextRunDate.After(before) {
			clone := *rc
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *InMemoryRecurringRepository) Update(ctx context.Context, rc *domain.RecurringContribution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[rc.ID]; !ok {
		return domain.ErrContributionNotFound
	}
	clone := *rc
	r.store[rc.ID] = &clone
	return nil
}

func (r *InMemoryRecurringRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrContributionNotFound
	}
	delete(r.store, id)
	return nil
}
