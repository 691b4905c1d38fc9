package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

// Hand-rolled in-memory fakes. Each one can be primed with simulateError to
// exercise failure paths.

type mockGoalRepo struct {
	mu            sync.Mutex
	store         map[string]*domain.FinancialGoal
	simulateError error
	incrementCall int
	statusCalls   []string
}

func newMockGoalRepo() *mockGoalRepo {
	return &mockGoalRepo{store: make(map[string]*domain.FinancialGoal)}
}

func (m *mockGoalRepo) Create(ctx context.Context, g *domain.FinancialGoal) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *g
	m.store[g.ID] = &clone
	return nil
}

func (m *mockGoalRepo) GetByID(ctx context.Context, id string) (*domain.FinancialGoal, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.store[id]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	clone := *g
	return &clone, nil
}

func (m *mockGoalRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.FinancialGoal, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*domain.FinancialGoal
	for _, g := range m.store {
		if g.UserID == userID {
			clone := *g
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *mockGoalRepo) Update(ctx context.Context, g *domain.FinancialGoal) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[g.ID]; !ok {
		return domain.ErrGoalNotFound
	}
	clone := *g
	m.store[g.ID] = &clone
	return nil
}

func (m *mockGoalRepo) Delete(ctx context.Context, id string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrGoalNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *mockGoalRepo) IncrementAmount(ctx context.Context, id string, delta float64) (float64, error) {
	if m.simulateError != nil {
		return 0, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.store[id]
	if !ok {
		return 0, domain.ErrGoalNotFound
	}
	m.incrementCall++
	g.CurrentAmount += delta
	return g.CurrentAmount, nil
}

func (m *mockGoalRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.store[id]
	if !ok {
		return domain.ErrGoalNotFound
	}
	g.Status = status
	m.statusCalls = append(m.statusCalls, status)
	return nil
}

type noopEvaluator struct{}

func (noopEvaluator) Evaluate(ctx context.Context, userID string) ([]*domain.UserAchievement, error) {
	return nil, nil
}

type mockHabitRepo struct {
	store         map[string]*domain.Habit
	simulateError error
}

func newMockHabitRepo() *mockHabitRepo {
	return &mockHabitRepo{store: make(map[string]*domain.Habit)}
}

func (m *mockHabitRepo) Create(ctx context.Context, h *domain.Habit) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	clone := *h
	m.store[h.ID] = &clone
	return nil
}

func (m *mockHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	h, ok := m.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	clone := *h
	return &clone, nil
}

func (m *mockHabitRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.Habit
	for _, h := range m.store {
		if h.UserID == userID {
			clone := *h
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *mockHabitRepo) Update(ctx context.Context, h *domain.Habit) error {
	if _, ok := m.store[h.ID]; !ok {
		return domain.ErrHabitNotFound
	}
	clone := *h
	m.store[h.ID] = &clone
	return nil
}

func (m *mockHabitRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.store[id]; !ok {
		return domain.ErrHabitNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *mockHabitRepo) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	h, ok := m.store[id]
	if !ok {
		return domain.ErrHabitNotFound
	}
	h.CurrentStreak = current
	h.LongestStreak = longest
	return nil
}

type mockCheckInRepo struct {
	byDay         map[string]*domain.HabitCheckIn
	simulateError error
}

func newMockCheckInRepo() *mockCheckInRepo {
	return &mockCheckInRepo{byDay: make(map[string]*domain.HabitCheckIn)}
}

func dayKey(habitID string, day time.Time) string {
	return habitID + ":" + day.UTC().Format("2006-01-02")
}

func (m *mockCheckInRepo) Upsert(ctx context.Context, c *domain.HabitCheckIn) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	clone := *c
	m.byDay[dayKey(c.HabitID, c.Date)] = &clone
	return nil
}

func (m *mockCheckInRepo) DeleteByDay(ctx context.Context, habitID string, day time.Time) error {
	key := dayKey(habitID, day)
	if _, ok := m.byDay[key]; !ok {
		return domain.ErrCheckInNotFound
	}
	delete(m.byDay, key)
	return nil
}

func (m *mockCheckInRepo) ListCompletedByHabitID(ctx context.Context, habitID string) ([]*domain.HabitCheckIn, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.HabitCheckIn
	for _, c := range m.byDay {
		if c.HabitID == habitID && c.Completed {
			clone := *c
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *mockCheckInRepo) ListByHabitID(ctx context.Context, habitID string, from, to time.Time) ([]*domain.HabitCheckIn, error) {
	var list []*domain.HabitCheckIn
	for _, c := range m.byDay {
		if c.HabitID == habitID && !c.Date.Before(from) && !c.Date.After(to) {
			clone := *c
			list = append(list, &clone)
		}
	}
	return list, nil
}

type mockRecurringRepo struct {
	store         map[string]*domain.RecurringContribution
	simulateError error
	failUpdateFor map[string]error
}

func newMockRecurringRepo() *mockRecurringRepo {
	return &mockRecurringRepo{
		store:         make(map[string]*domain.RecurringContribution),
		failUpdateFor: make(map[string]error),
	}
}

func (m *mockRecurringRepo) Create(ctx context.Context, rc *domain.RecurringContribution) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	clone := *rc
	m.store[rc.ID] = &clone
	return nil
}

func (m *mockRecurringRepo) GetByID(ctx context.Context, id string) (*domain.RecurringContribution, error) {
	rc, ok := m.store[id]
	if !ok {
		return nil, domain.ErrContributionNotFound
	}
	clone := *rc
	return &clone, nil
}

func (m *mockRecurringRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.RecurringContribution, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.RecurringContribution
	for _, rc := range m.store {
		if rc.UserID == userID {
			clone := *rc
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *mockRecurringRepo) ListDue(ctx context.Context, before time.Time) ([]*domain.RecurringContribution, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.RecurringContribution
	for _, rc := range m.store {
		if rc.IsActive && !rc.NextRunDate.After(before) {
			clone := *rc
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *mockRecurringRepo) Update(ctx context.Context, rc *domain.RecurringContribution) error {
	if err, ok := m.failUpdateFor[rc.ID]; ok {
		return err
	}
	if _, ok := m.store[rc.ID]; !ok {
		return domain.ErrContributionNotFound
	}
	clone := *rc
	m.store[rc.ID] = &clone
	return nil
}

func (m *mockRecurringRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.store[id]; !ok {
		return domain.ErrContributionNotFound
	}
	delete(m.store, id)
	return nil
}

type mockFitnessRepo struct {
	store         map[string]*domain.FitnessGoal
	entries       []*domain.FitnessProgressEntry
	simulateError error
}

func newMockFitnessRepo() *mockFitnessRepo {
	return &mockFitnessRepo{store: make(map[string]*domain.FitnessGoal)}
}

func (m *mockFitnessRepo) Create(ctx context.Context, g *domain.FitnessGoal) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	clone := *g
	m.store[g.ID] = &clone
	return nil
}

func (m *mockFitnessRepo) GetByID(ctx context.Context, id string) (*domain.FitnessGoal, error) {
	g, ok := m.store[id]
	if !ok {
		return nil, domain.ErrFitnessGoalNotFound
	}
	clone := *g
	return &clone, nil
}

func (m *mockFitnessRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.FitnessGoal, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.FitnessGoal
	for _, g := range m.store {
		if g.UserID == userID {
			clone := *g
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *mockFitnessRepo) Update(ctx context.Context, g *domain.FitnessGoal) error {
	if _, ok := m.store[g.ID]; !ok {
		return domain.ErrFitnessGoalNotFound
	}
	clone := *g
	m.store[g.ID] = &clone
	return nil
}

func (m *mockFitnessRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.store[id]; !ok {
		return domain.ErrFitnessGoalNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *mockFitnessRepo) AddProgressEntry(ctx context.Context, e *domain.FitnessProgressEntry) error {
	clone := *e
	m.entries = append(m.entries, &clone)
	return nil
}

func (m *mockFitnessRepo) ListProgress(ctx context.Context, goalID string) ([]*domain.FitnessProgressEntry, error) {
	var list []*domain.FitnessProgressEntry
	for _, e := range m.entries {
		if e.GoalID == goalID {
			list = append(list, e)
		}
	}
	return list, nil
}

type mockUserAchievementRepo struct {
	rows          []*domain.UserAchievement
	simulateError error
}

func (m *mockUserAchievementRepo) Create(ctx context.Context, ua *domain.UserAchievement) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	for _, existing := range m.rows {
		if existing.UserID == ua.UserID && existing.Code == ua.Code {
			return nil
		}
	}
	clone := *ua
	m.rows = append(m.rows, &clone)
	return nil
}

func (m *mockUserAchievementRepo) ListCodesByUserID(ctx context.Context, userID string) ([]string, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var codes []string
	for _, ua := range m.rows {
		if ua.UserID == userID {
			codes = append(codes, ua.Code)
		}
	}
	return codes, nil
}

func (m *mockUserAchievementRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.UserAchievement, error) {
	var list []*domain.UserAchievement
	for _, ua := range m.rows {
		if ua.UserID == userID {
			list = append(list, ua)
		}
	}
	return list, nil
}
