package analytics

import (
	"testing"
	"time"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func day(now time.Time, daysAgo int) time.Time {
	return now.AddDate(0, 0, -daysAgo)
}

func checkIns(now time.Time, daysAgo ...int) []*domain.HabitCheckIn {
	var list []*domain.HabitCheckIn
	for _, d := range daysAgo {
		list = append(list, &domain.HabitCheckIn{Date: day(now, d), Completed: true})
	}
	return list
}

func TestCurrentStreak_Daily(t *testing.T) {
	now := time.Date(2026, 3, 18, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		daysAgo []int
		want    int
	}{
		{"No check-ins", nil, 0},
		{"Today only", []int{0}, 1},
		{"Yesterday only, still alive", []int{1}, 1},
		{"Two days ago, broken", []int{2}, 0},
		{"Today and yesterday", []int{0, 1}, 2},
		{"Perfect run of three", []int{0, 1, 2}, 3},
		{"Gap stops the walk", []int{0, 1, 4, 5}, 2},
		{"Unsorted input", []int{2, 0, 1}, 3},
		{"Duplicate day counts once", []int{0, 0, 1}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentStreak(checkIns(now, tt.daysAgo...), domain.FreqDaily, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrentStreak_Weekly(t *testing.T) {
	// A Wednesday; ISO week boundaries are Mondays.
	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		daysAgo []int
		want    int
	}{
		{"No check-ins", nil, 0},
		{"This week only", []int{1}, 1},
		{"This week and last week", []int{1, 8}, 2},
		{"Three consecutive weeks", []int{0, 7, 14}, 3},
		{"Missed this week breaks it", []int{8, 15}, 0},
		{"Gap week stops the count", []int{1, 15}, 1},
		{"Two check-ins same week count once", []int{1, 2, 8}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentStreak(checkIns(now, tt.daysAgo...), domain.FreqWeekly, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrentStreak_WeeklyYearRollover(t *testing.T) {
	// Early January: the streak walk has to roll from week 1 back into the
	// previous year.
	now := time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)

	list := checkIns(now, 1, 8, 15)
	got := CurrentStreak(list, domain.FreqWeekly, now)
	assert.Equal(t, 3, got)
}

func TestCurrentStreak_OtherFrequenciesUseDailyWalk(t *testing.T) {
	now := time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC)
	list := checkIns(now, 0, 1, 2)

	for _, freq := range []string{domain.FreqWeekdays, domain.FreqWeekends, domain.FreqCustom} {
		assert.Equal(t, 3, CurrentStreak(list, freq, now), "frequency %s", freq)
	}
}

func TestLongestStreak_Monotonic(t *testing.T) {
	assert.Equal(t, 5, LongestStreak(5, 3), "never decreases")
	assert.Equal(t, 7, LongestStreak(5, 7), "grows with the current streak")
	assert.Equal(t, 5, LongestStreak(5, 0), "survives a broken streak")
}
