package analytics

import (
	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

// Aggregates holds the per-user metrics achievement criteria are tested
// against. They are computed once per evaluation pass, not per criterion.
type Aggregates struct {
	GoalCount           int
	CompletedGoalCount  int
	TotalSaved          float64
	HabitCount          int
	MaxStreak           int
	FitnessGoalCount    int
	FitnessCompleted    int
	BestSystemAdherence int
	LifeScore           int
}

// CriterionMet tests one catalog entry against the aggregates. All criteria
// use >= against the threshold except savings, which unlocks on any saved
// amount at all.
func CriterionMet(a domain.Achievement, agg Aggregates) (bool, error) {
	switch a.Criteria {
	case domain.CriteriaGoalCount:
		return float64(agg.GoalCount) >= a.Threshold, nil
	case domain.CriteriaStreak:
		return float64(agg.MaxStreak) >= a.Threshold, nil
	case domain.CriteriaHabitCount:
		return float64(agg.HabitCount) >= a.Threshold, nil
	case domain.CriteriaTotalSaved:
		return agg.TotalSaved >= a.Threshold, nil
	case domain.CriteriaSavings:
		return agg.TotalSaved > 0, nil
	case domain.CriteriaGoalCompleted:
		return float64(agg.CompletedGoalCount) >= a.Threshold, nil
	case domain.CriteriaFitnessGoal:
		return float64(agg.FitnessGoalCount) >= a.Threshold, nil
	case domain.CriteriaFitnessCompleted:
		return float64(agg.FitnessCompleted) >= a.Threshold, nil
	case domain.CriteriaSystemAdherence:
		return float64(agg.BestSystemAdherence) >= a.Threshold, nil
	case domain.CriteriaLifeScore:
		return float64(agg.LifeScore) >= a.Threshold, nil
	}
	return false, domain.ErrUnknownCriteria
}
