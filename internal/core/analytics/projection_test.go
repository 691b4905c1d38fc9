package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }
func n(v int) *int         { return &v }

func TestProject_YearOfSaving(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	p := Project(ProjectionInput{
		CurrentAmount:       0,
		TargetAmount:        12000,
		TargetDate:          now.AddDate(0, 0, 360),
		MonthlyContribution: f(1000),
	}, now)

	assert.InDelta(t, 12000, p.Remaining, 1e-9)
	assert.Equal(t, 360, p.DaysRemaining)
	assert.Equal(t, 12, p.MonthsRemaining)
	assert.InDelta(t, 1000, p.MonthlyRequired, 1e-9)
	assert.True(t, p.IsOnTrack)
	assert.InDelta(t, 12000, p.ProjectedFinal, 1e-9)
}

func TestProject_PastTargetDate(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	p := Project(ProjectionInput{
		CurrentAmount: 500,
		TargetAmount:  1000,
		TargetDate:    now.AddDate(0, 0, -10),
	}, now)

	assert.Equal(t, 0, p.DaysRemaining)
	assert.Zero(t, p.DailyRequired, "no duration left means no required rate")
	assert.Zero(t, p.MonthlyRequired)
	assert.False(t, p.IsOnTrack)
}

func TestProject_AlreadyFunded(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	p := Project(ProjectionInput{
		CurrentAmount: 1200,
		TargetAmount:  1000,
		TargetDate:    now.AddDate(0, 6, 0),
	}, now)

	assert.Zero(t, p.Remaining)
	assert.True(t, p.IsOnTrack, "no contribution supplied, nothing remaining")
}

func TestFutureValue(t *testing.T) {
	// Zero rate degrades to the linear form.
	assert.InDelta(t, 13000, FutureValue(1000, 1000, 0, 12), 1e-9)

	// 6% annual = 0.5% monthly over 12 months.
	fv := FutureValue(10000, 500, 0.005, 12)
	assert.InDelta(t, 16784.56, fv, 0.5)
	assert.Greater(t, fv, 10000.0+500*12, "compounding beats the linear path")
}

func TestScenarios_Ordering(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	in := ProjectionInput{
		CurrentAmount: 2000,
		TargetAmount:  10000,
		TargetDate:    now.AddDate(0, 0, 300),
	}

	scenarios := Scenarios(in, now)
	require.Len(t, scenarios, 3)

	conservative, onTrack, aggressive := scenarios[0], scenarios[1], scenarios[2]

	assert.Equal(t, "conservative", conservative.Name)
	assert.Equal(t, "on_track", onTrack.Name)
	assert.Equal(t, "aggressive", aggressive.Name)

	assert.GreaterOrEqual(t, aggressive.MonthlyAmount, onTrack.MonthlyAmount)
	assert.GreaterOrEqual(t, onTrack.MonthlyAmount, conservative.MonthlyAmount)

	for _, s := range scenarios {
		assert.InDelta(t, in.TargetAmount, s.FinalAmount, 1e-9)
		assert.True(t, s.CompletionDate.After(now))
	}

	assert.True(t, conservative.CompletionDate.After(aggressive.CompletionDate))
}

func TestScenarios_NothingRemaining(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	in := ProjectionInput{
		CurrentAmount: 10000,
		TargetAmount:  10000,
		TargetDate:    now.AddDate(0, 6, 0),
	}

	assert.Nil(t, Scenarios(in, now))
}

func TestWhatIf_Outcome(t *testing.T) {
	res, err := WhatIf(WhatIfInput{
		CurrentAmount:       1000,
		TargetAmount:        10000,
		MonthlyContribution: f(1000),
		Months:              n(12),
	})

	require.NoError(t, err)
	assert.Equal(t, "outcome", res.Mode)
	assert.InDelta(t, 13000, res.FinalAmount, 1e-9)
	assert.True(t, res.GoalReached)
	assert.InDelta(t, 3000, res.Surplus, 1e-9)
}

func TestWhatIf_Duration(t *testing.T) {
	t.Run("Zero rate divides evenly", func(t *testing.T) {
		res, err := WhatIf(WhatIfInput{
			CurrentAmount:       0,
			TargetAmount:        12000,
			MonthlyContribution: f(1000),
		})

		require.NoError(t, err)
		assert.Equal(t, "duration", res.Mode)
		assert.InDelta(t, 12, res.MonthsNeeded, 1e-9)
	})

	t.Run("Growth shortens the wait", func(t *testing.T) {
		res, err := WhatIf(WhatIfInput{
			CurrentAmount:       0,
			TargetAmount:        12000,
			MonthlyContribution: f(1000),
			AnnualReturnRate:    f(6),
		})

		require.NoError(t, err)
		assert.Less(t, res.MonthsNeeded, 12.0)
		assert.Greater(t, res.MonthsNeeded, 10.0)
	})
}

func TestWhatIf_Contribution(t *testing.T) {
	t.Run("Zero rate divides evenly", func(t *testing.T) {
		res, err := WhatIf(WhatIfInput{
			CurrentAmount: 0,
			TargetAmount:  12000,
			Months:        n(12),
		})

		require.NoError(t, err)
		assert.Equal(t, "contribution", res.Mode)
		assert.InDelta(t, 1000, res.RequiredMonthly, 1e-9)
	})

	t.Run("Growth lowers the payment", func(t *testing.T) {
		res, err := WhatIf(WhatIfInput{
			CurrentAmount:    0,
			TargetAmount:     12000,
			Months:           n(12),
			AnnualReturnRate: f(6),
		})

		require.NoError(t, err)
		assert.Less(t, res.RequiredMonthly, 1000.0)
	})
}

func TestWhatIf_InvalidInputs(t *testing.T) {
	_, err := WhatIf(WhatIfInput{CurrentAmount: 0, TargetAmount: 1000})
	assert.ErrorIs(t, err, ErrWhatIfInput)

	_, err = WhatIf(WhatIfInput{TargetAmount: 1000, MonthlyContribution: f(0)})
	assert.ErrorIs(t, err, ErrWhatIfInput)

	_, err = WhatIf(WhatIfInput{TargetAmount: 1000, Months: n(0)})
	assert.ErrorIs(t, err, ErrWhatIfInput)
}
