package analytics

import (
	"math"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

// Life Score weights. They must sum to 1.0; lifescore_test.go guards the
// invariant should they ever become configurable.
const (
	WeightFinance = 0.40
	WeightFitness = 0.30
	WeightHabits  = 0.20
	WeightSystems = 0.10

	// A 30-day streak counts as a fully maxed habit.
	maxedStreakDays = 30
)

// ScoreBreakdown carries the four domain sub-scores and their composite.
type ScoreBreakdown struct {
	Finance float64 `json:"finance"`
	Fitness float64 `json:"fitness"`
	Habits  float64 `json:"habits"`
	Systems float64 `json:"systems"`
	Total   int     `json:"total"`
}

// LifeScore folds the four sub-scores into the composite 0-100 value.
func LifeScore(finance, fitness, habits, systems float64) int {
	weighted := finance*WeightFinance + fitness*WeightFitness + habits*WeightHabits + systems*WeightSystems
	return int(math.Round(weighted))
}

// FinanceScore is the mean progress across active goals (paused and archived
// goals do not count). No active goals scores 0.
func FinanceScore(goals []*domain.FinancialGoal) float64 {
	var sum float64
	n := 0

	for _, g := range goals {
		if !g.IsActive() {
			continue
		}
		sum += FinancialProgress(g.CurrentAmount, g.TargetAmount)
		n++
	}

	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// FitnessScore is the mean progress across goals still being worked toward.
func FitnessScore(goals []*domain.FitnessGoal) float64 {
	var sum float64
	n := 0

	for _, g := range goals {
		if g.IsAchieved {
			continue
		}
		sum += FitnessProgress(g.StartValue, g.CurrentValue, g.TargetValue)
		n++
	}

	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// HabitsScore is the mean over active habits of their streak measured
// against a 30-day ceiling.
func HabitsScore(habits []*domain.Habit) float64 {
	var sum float64
	n := 0

	for _, h := range habits {
		if !h.IsActive {
			continue
		}
		sum += math.Min(float64(h.CurrentStreak)/maxedStreakDays*100, 100)
		n++
	}

	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// SystemsScore is the mean of per-system adherence rates.
func SystemsScore(rates []int) float64 {
	if len(rates) == 0 {
		return 0
	}

	sum := 0
	for _, r := range rates {
		sum += r
	}
	return float64(sum) / float64(len(rates))
}
