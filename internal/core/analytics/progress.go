// Package analytics holds the pure calculations behind goal progress,
// streaks, adherence, the Life Score and financial projections. Nothing in
// here touches storage or the clock implicitly: functions that depend on
// "today" take it as a parameter.
package analytics

import (
	"math"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

// FinancialProgress returns the percentage of a money target reached,
// capped at 100. Callers guarantee target > 0; goal creation rejects
// anything else.
func FinancialProgress(current, target float64) float64 {
	return math.Min(current/target*100, 100)
}

// StatusForProgress classifies a progress percentage. Total over all inputs,
// boundaries inclusive: exactly 75 is on_track, exactly 40 is needs_focus.
func StatusForProgress(progress float64) string {
	switch {
	case progress >= 100:
		return domain.GoalStatusCompleted
	case progress >= 75:
		return domain.GoalStatusOnTrack
	case progress >= 40:
		return domain.GoalStatusNeedsFocus
	default:
		return domain.GoalStatusBehind
	}
}

// GoalStatus returns the effective status of a goal: the pause/archive flags
// override the numeric classification, and releasing them restores it.
func GoalStatus(g *domain.FinancialGoal) string {
	if g.IsArchived {
		return domain.GoalStatusArchived
	}
	if g.IsPaused {
		return domain.GoalStatusPaused
	}
	return StatusForProgress(FinancialProgress(g.CurrentAmount, g.TargetAmount))
}

// FitnessProgress measures movement from start toward target, clamped to
// [0, 100]. A goal whose target equals its start has nothing left to do and
// is trivially complete.
func FitnessProgress(start, current, target float64) float64 {
	totalChange := target - start
	if totalChange == 0 {
		return 100
	}

	p := (current - start) / totalChange * 100
	return math.Min(math.Max(p, 0), 100)
}
