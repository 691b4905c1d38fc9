package analytics

import (
	"sort"
	"time"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

type weekKey struct {
	year int
	week int
}

// CurrentStreak counts consecutive qualifying periods ending at or near now.
// It is always derived from the full completed check-in history rather than
// patched incrementally, so deletes and unchecks cannot leave it drifted.
//
// Weekly habits count ISO weeks (Monday-anchored); everything else counts
// calendar days.
func CurrentStreak(checkIns []*domain.HabitCheckIn, frequency string, now time.Time) int {
	if frequency == domain.FreqWeekly {
		return weeklyStreak(checkIns, now)
	}
	return dailyStreak(checkIns, now)
}

// LongestStreak applies the monotonic rule: the stored longest never
// decreases, even when the current streak later breaks.
func LongestStreak(stored, current int) int {
	if current > stored {
		return current
	}
	return stored
}

func uniqueDays(checkIns []*domain.HabitCheckIn) []time.Time {
	seen := make(map[string]bool)
	var days []time.Time

	for _, c := range checkIns {
		key := c.Date.UTC().Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			t, _ := time.Parse("2006-01-02", key)
			days = append(days, t)
		}
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})

	return days
}

func dailyStreak(checkIns []*domain.HabitCheckIn, now time.Time) int {
	days := uniqueDays(checkIns)
	if len(days) == 0 {
		return 0
	}

	today := now.UTC().Truncate(24 * time.Hour)

	// More than one day since the last check-in means the chain is broken.
	if today.Sub(days[0]).Hours()/24 > 1 {
		return 0
	}

	streak := 1
	for i := 0; i < len(days)-1; i++ {
		if days[i].Sub(days[i+1]).Hours() == 24 {
			streak++
		} else {
			break
		}
	}

	return streak
}

func weeklyStreak(checkIns []*domain.HabitCheckIn, now time.Time) int {
	weeks := make(map[weekKey]bool)
	for _, c := range checkIns {
		y, w := c.Date.UTC().ISOWeek()
		weeks[weekKey{y, w}] = true
	}
	if len(weeks) == 0 {
		return 0
	}

	year, week := now.UTC().ISOWeek()

	streak := 0
	for weeks[weekKey{year, week}] {
		streak++
		week--
		if week < 1 {
			week = 52
			year--
		}
	}

	return streak
}
