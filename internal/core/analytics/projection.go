package analytics

import (
	"errors"
	"math"
	"time"
)

var (
	ErrWhatIfInput = errors.New("what-if needs a monthly contribution, a duration in months, or both")
)

// ProjectionInput is a snapshot of the goal fields the projection math
// needs. MonthlyContribution and AnnualReturnRate are optional: nil means
// "not supplied" rather than zero.
type ProjectionInput struct {
	CurrentAmount       float64
	TargetAmount        float64
	TargetDate          time.Time
	MonthlyContribution *float64
	AnnualReturnRate    *float64
}

type Projection struct {
	Remaining       float64 `json:"remaining"`
	DaysRemaining   int     `json:"days_remaining"`
	WeeksRemaining  int     `json:"weeks_remaining"`
	MonthsRemaining int     `json:"months_remaining"`
	DailyRequired   float64 `json:"daily_required"`
	WeeklyRequired  float64 `json:"weekly_required"`
	MonthlyRequired float64 `json:"monthly_required"`
	IsOnTrack       bool    `json:"is_on_track"`
	ProjectedFinal  float64 `json:"projected_final"`
}

type Scenario struct {
	Name           string    `json:"name"`
	MonthlyAmount  float64   `json:"monthly_amount"`
	CompletionDate time.Time `json:"completion_date"`
	FinalAmount    float64   `json:"final_amount"`
}

type WhatIfResult struct {
	Mode            string  `json:"mode"`
	FinalAmount     float64 `json:"final_amount,omitempty"`
	GoalReached     bool    `json:"goal_reached"`
	Surplus         float64 `json:"surplus,omitempty"`
	MonthsNeeded    float64 `json:"months_needed,omitempty"`
	RequiredMonthly float64 `json:"required_monthly,omitempty"`
}

// FutureValue compounds a principal plus level monthly contributions at a
// monthly rate over n months. The standard FV-of-annuity formula; a zero
// rate degrades to the linear form to avoid dividing by zero.
func FutureValue(principal, contribution, monthlyRate float64, months float64) float64 {
	if monthlyRate == 0 {
		return principal + contribution*months
	}

	growth := math.Pow(1+monthlyRate, months)
	return principal*growth + contribution*(growth-1)/monthlyRate
}

func monthlyRate(annual *float64) float64 {
	if annual == nil {
		return 0
	}
	return *annual / 12 / 100
}

// Project derives the remaining-amount arithmetic and required contribution
// rates for a goal as of now. Weeks and months are calendar-approximate
// (days/7, days/30), matching how the durations are presented to the user.
func Project(in ProjectionInput, now time.Time) Projection {
	p := Projection{
		Remaining: math.Max(0, in.TargetAmount-in.CurrentAmount),
	}

	if in.TargetDate.After(now) {
		p.DaysRemaining = int(math.Ceil(in.TargetDate.Sub(now).Hours() / 24))
	}
	p.WeeksRemaining = p.DaysRemaining / 7
	p.MonthsRemaining = p.DaysRemaining / 30

	if p.DaysRemaining > 0 {
		p.DailyRequired = p.Remaining / float64(p.DaysRemaining)
	}
	if p.WeeksRemaining > 0 {
		p.WeeklyRequired = p.Remaining / float64(p.WeeksRemaining)
	}
	if p.MonthsRemaining > 0 {
		p.MonthlyRequired = p.Remaining / float64(p.MonthsRemaining)
	}

	if in.MonthlyContribution != nil {
		p.IsOnTrack = *in.MonthlyContribution >= p.MonthlyRequired
		p.ProjectedFinal = FutureValue(in.CurrentAmount, *in.MonthlyContribution, monthlyRate(in.AnnualReturnRate), float64(p.MonthsRemaining))
	} else {
		p.IsOnTrack = p.Remaining <= 0
		p.ProjectedFinal = in.CurrentAmount
	}

	return p
}

// Scenarios builds the three fixed contribution presets for the same
// remaining amount: a relaxed plan over 1.5x the time, the exact plan, and
// a compressed plan over 0.8x the time. Monthly amounts are rounded; for
// any positive remaining amount and time they order
// aggressive >= on-track >= conservative.
func Scenarios(in ProjectionInput, now time.Time) []Scenario {
	p := Project(in, now)

	months := float64(p.MonthsRemaining)
	if months <= 0 || p.Remaining <= 0 {
		return nil
	}

	build := func(name string, stretch float64) Scenario {
		m := months * stretch
		return Scenario{
			Name:           name,
			MonthlyAmount:  math.Round(p.Remaining / m),
			CompletionDate: now.AddDate(0, 0, int(m*30)),
			FinalAmount:    in.TargetAmount,
		}
	}

	return []Scenario{
		build("conservative", 1.5),
		build("on_track", 1.0),
		build("aggressive", 0.8),
	}
}

// WhatIfInput drives the solver. Exactly one of the three supported input
// combinations must hold: contribution and months (solve the outcome),
// contribution alone (solve the time), or months alone (solve the payment).
type WhatIfInput struct {
	CurrentAmount       float64
	TargetAmount        float64
	MonthlyContribution *float64
	Months              *int
	AnnualReturnRate    *float64
}

func WhatIf(in WhatIfInput) (*WhatIfResult, error) {
	remaining := math.Max(0, in.TargetAmount-in.CurrentAmount)
	r := monthlyRate(in.AnnualReturnRate)

	switch {
	case in.MonthlyContribution != nil && in.Months != nil:
		final := FutureValue(in.CurrentAmount, *in.MonthlyContribution, r, float64(*in.Months))
		return &WhatIfResult{
			Mode:        "outcome",
			FinalAmount: final,
			GoalReached: final >= in.TargetAmount,
			Surplus:     final - in.TargetAmount,
		}, nil

	case in.MonthlyContribution != nil:
		c := *in.MonthlyContribution
		if c <= 0 {
			return nil, ErrWhatIfInput
		}

		var months float64
		if r == 0 {
			months = remaining / c
		} else {
			// Closed form of the annuity growth equation solved for time.
			months = math.Log((c+r*in.TargetAmount)/(c+r*in.CurrentAmount)) / math.Log(1+r)
		}

		return &WhatIfResult{
			Mode:         "duration",
			MonthsNeeded: months,
			GoalReached:  true,
		}, nil

	case in.Months != nil:
		n := float64(*in.Months)
		if n <= 0 {
			return nil, ErrWhatIfInput
		}

		var payment float64
		if r == 0 {
			payment = remaining / n
		} else {
			// Standard annuity payment (PMT) for the remaining amount.
			payment = remaining * r / (math.Pow(1+r, n) - 1)
		}

		return &WhatIfResult{
			Mode:            "contribution",
			RequiredMonthly: payment,
			GoalReached:     true,
		}, nil
	}

	return nil, ErrWhatIfInput
}
