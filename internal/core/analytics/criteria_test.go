package analytics

import (
	"testing"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriterionMet(t *testing.T) {
	agg := Aggregates{
		GoalCount:           5,
		CompletedGoalCount:  1,
		TotalSaved:          2500,
		HabitCount:          3,
		MaxStreak:           14,
		FitnessGoalCount:    2,
		FitnessCompleted:    0,
		BestSystemAdherence: 85,
		LifeScore:           72,
	}

	tests := []struct {
		name      string
		criteria  string
		threshold float64
		want      bool
	}{
		{"Goal count met at boundary", domain.CriteriaGoalCount, 5, true},
		{"Goal count not met", domain.CriteriaGoalCount, 6, false},
		{"Streak met", domain.CriteriaStreak, 7, true},
		{"Streak not met", domain.CriteriaStreak, 30, false},
		{"Habit count met", domain.CriteriaHabitCount, 3, true},
		{"Total saved met", domain.CriteriaTotalSaved, 1000, true},
		{"Total saved not met", domain.CriteriaTotalSaved, 10000, false},
		{"Goal completed met", domain.CriteriaGoalCompleted, 1, true},
		{"Fitness goal met", domain.CriteriaFitnessGoal, 1, true},
		{"Fitness completed not met", domain.CriteriaFitnessCompleted, 1, false},
		{"System adherence not met", domain.CriteriaSystemAdherence, 90, false},
		{"Life score met", domain.CriteriaLifeScore, 70, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CriterionMet(domain.Achievement{Criteria: tt.criteria, Threshold: tt.threshold}, agg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCriterionMet_Savings(t *testing.T) {
	// savings is the one criterion that ignores its threshold: any saved
	// amount at all unlocks it.
	a := domain.Achievement{Criteria: domain.CriteriaSavings, Threshold: 0}

	got, err := CriterionMet(a, Aggregates{TotalSaved: 0.01})
	require.NoError(t, err)
	assert.True(t, got)

	got, err = CriterionMet(a, Aggregates{TotalSaved: 0})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestCriterionMet_UnknownCriteria(t *testing.T) {
	_, err := CriterionMet(domain.Achievement{Criteria: "phases_of_the_moon"}, Aggregates{})
	assert.ErrorIs(t, err, domain.ErrUnknownCriteria)
}

func TestDefaultAchievements_AllCriteriaSupported(t *testing.T) {
	for _, a := range domain.DefaultAchievements() {
		_, err := CriterionMet(a, Aggregates{})
		assert.NoError(t, err, "catalog entry %s", a.Code)
	}
}
