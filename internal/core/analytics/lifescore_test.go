package analytics

import (
	"testing"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestLifeScore_WeightsSumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, WeightFinance+WeightFitness+WeightHabits+WeightSystems, 1e-12)
}

func TestLifeScore(t *testing.T) {
	assert.Equal(t, 100, LifeScore(100, 100, 100, 100))
	assert.Equal(t, 0, LifeScore(0, 0, 0, 0))

	// 80*.4 + 60*.3 + 50*.2 + 40*.1 = 64
	assert.Equal(t, 64, LifeScore(80, 60, 50, 40))

	// Rounded, not truncated: 51*.4 + 51*.3 + 51*.2 + 51*.1 = 51
	assert.Equal(t, 51, LifeScore(51, 51, 51, 51))
}

func TestFinanceScore(t *testing.T) {
	goals := []*domain.FinancialGoal{
		{CurrentAmount: 50, TargetAmount: 100},
		{CurrentAmount: 100, TargetAmount: 100},
		{CurrentAmount: 0, TargetAmount: 100, IsPaused: true},
		{CurrentAmount: 0, TargetAmount: 100, IsArchived: true},
	}

	// Paused and archived goals stay out of the mean.
	assert.InDelta(t, 75, FinanceScore(goals), 1e-9)
	assert.Zero(t, FinanceScore(nil))
}

func TestFitnessScore(t *testing.T) {
	goals := []*domain.FitnessGoal{
		{StartValue: 90, CurrentValue: 85, TargetValue: 80},
		{StartValue: 0, CurrentValue: 100, TargetValue: 100, IsAchieved: true},
	}

	assert.InDelta(t, 50, FitnessScore(goals), 1e-9)
	assert.Zero(t, FitnessScore(nil))
}

func TestHabitsScore(t *testing.T) {
	habits := []*domain.Habit{
		{CurrentStreak: 15, IsActive: true},
		{CurrentStreak: 45, IsActive: true},
		{CurrentStreak: 30, IsActive: false},
	}

	// 15/30 -> 50, 45 days capped at 100; inactive habit ignored.
	assert.InDelta(t, 75, HabitsScore(habits), 1e-9)
	assert.Zero(t, HabitsScore(nil))
}

func TestSystemsScore(t *testing.T) {
	assert.InDelta(t, 80, SystemsScore([]int{70, 90}), 1e-9)
	assert.Zero(t, SystemsScore(nil))
}
