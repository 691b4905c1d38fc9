package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNotFound      = errors.New("habit not found")
	ErrHabitTitleEmpty    = errors.New("habit title cannot be empty")
	ErrHabitTitleTooLong  = errors.New("habit title is too long (max 100 chars)")
	ErrInvalidFrequency   = errors.New("invalid habit frequency")
	ErrInvalidTargetCount = errors.New("target count must be at least 1")
	ErrHabitInvalidUserID = errors.New("invalid user id")
	ErrCheckInNotFound    = errors.New("check-in not found")
)

const (
	FreqDaily    = "daily"
	FreqWeekly   = "weekly"
	FreqWeekdays = "weekdays"
	FreqWeekends = "weekends"
	FreqCustom   = "custom"

	MaxHabitTitleLen = 100
)

func validFrequency(f string) bool {
	switch f {
	case FreqDaily, FreqWeekly, FreqWeekdays, FreqWeekends, FreqCustom:
		return true
	}
	return false
}

type Habit struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description,omitempty" db:"description"`
	Frequency     string    `json:"frequency" db:"frequency"`
	TargetCount   int       `json:"target_count" db:"target_count"`
	CurrentStreak int       `json:"current_streak" db:"current_streak"`
	LongestStreak int       `json:"longest_streak" db:"longest_streak"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// HabitCheckIn is unique per (habit, calendar day) and upsertable: checking
// in twice on the same day overwrites the existing row instead of adding one.
type HabitCheckIn struct {
	ID        string    `json:"id" db:"id"`
	HabitID   string    `json:"habit_id" db:"habit_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Date      time.Time `json:"date" db:"checkin_date"`
	Completed bool      `json:"completed" db:"completed"`
	Quantity  int       `json:"quantity,omitempty" db:"quantity"`
	Notes     string    `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewHabit(userID, title, description, frequency string, targetCount int) (*Habit, error) {
	if userID == "" {
		return nil, ErrHabitInvalidUserID
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrHabitTitleEmpty
	}
	if len(title) > MaxHabitTitleLen {
		return nil, ErrHabitTitleTooLong
	}

	if frequency == "" {
		frequency = FreqDaily
	}
	if !validFrequency(frequency) {
		return nil, ErrInvalidFrequency
	}

	if targetCount < 1 {
		targetCount = 1
	}

	now := time.Now().UTC()
	return &Habit{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Frequency:   frequency,
		TargetCount: targetCount,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func NewHabitCheckIn(habitID, userID string, day time.Time, completed bool, quantity int, notes string) *HabitCheckIn {
	now := time.Now().UTC()
	y, m, d := day.UTC().Date()

	return &HabitCheckIn{
		ID:        uuid.NewString(),
		HabitID:   habitID,
		UserID:    userID,
		Date:      time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Completed: completed,
		Quantity:  quantity,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
