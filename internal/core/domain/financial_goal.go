package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGoalNotFound        = errors.New("financial goal not found")
	ErrGoalNameEmpty       = errors.New("goal name cannot be empty")
	ErrGoalNameTooLong     = errors.New("goal name is too long (max 100 chars)")
	ErrInvalidTargetAmount = errors.New("target amount must be greater than zero")
	ErrInvalidAmount       = errors.New("amount cannot be negative")
	ErrInvalidContribution = errors.New("contribution amount must be greater than zero")
	ErrInvalidTargetDate   = errors.New("target date must be after the start date")
	ErrGoalInvalidUserID   = errors.New("invalid user id")
)

const (
	GoalStatusCompleted  = "completed"
	GoalStatusOnTrack    = "on_track"
	GoalStatusNeedsFocus = "needs_focus"
	GoalStatusBehind     = "behind"
	GoalStatusPaused     = "paused"
	GoalStatusArchived   = "archived"

	GoalTypeSavings    = "savings"
	GoalTypeDebt       = "debt_payoff"
	GoalTypeInvestment = "investment"
	GoalTypePurchase   = "purchase"

	MaxGoalNameLen = 100
)

// FinancialGoal tracks a single money target. Status is derived from the
// amount/target pair and is recomputed on every amount change; it is never
// edited directly.
type FinancialGoal struct {
	ID                  string    `json:"id" db:"id"`
	UserID              string    `json:"user_id" db:"user_id"`
	Name                string    `json:"name" db:"name"`
	Type                string    `json:"type" db:"type"`
	TargetAmount        float64   `json:"target_amount" db:"target_amount"`
	CurrentAmount       float64   `json:"current_amount" db:"current_amount"`
	MonthlyContribution float64   `json:"monthly_contribution" db:"monthly_contribution"`
	AnnualReturnRate    float64   `json:"annual_return_rate" db:"annual_return_rate"`
	Status              string    `json:"status" db:"status"`
	IsPaused            bool      `json:"is_paused" db:"is_paused"`
	IsArchived          bool      `json:"is_archived" db:"is_archived"`
	StartDate           time.Time `json:"start_date" db:"start_date"`
	TargetDate          time.Time `json:"target_date" db:"target_date"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

func NewFinancialGoal(userID, name, goalType string, target, current, monthly float64, targetDate time.Time) (*FinancialGoal, error) {
	if userID == "" {
		return nil, ErrGoalInvalidUserID
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrGoalNameEmpty
	}
	if len(name) > MaxGoalNameLen {
		return nil, ErrGoalNameTooLong
	}

	if target <= 0 {
		return nil, ErrInvalidTargetAmount
	}
	if current < 0 || monthly < 0 {
		return nil, ErrInvalidAmount
	}

	now := time.Now().UTC()
	if !targetDate.IsZero() && !targetDate.After(now) {
		return nil, ErrInvalidTargetDate
	}

	if goalType == "" {
		goalType = GoalTypeSavings
	}

	return &FinancialGoal{
		ID:                  uuid.NewString(),
		UserID:              userID,
		Name:                name,
		Type:                goalType,
		TargetAmount:        target,
		CurrentAmount:       current,
		MonthlyContribution: monthly,
		StartDate:           now,
		TargetDate:          targetDate,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

func (g *FinancialGoal) Pause() {
	if g.IsPaused {
		return
	}
	g.IsPaused = true
	g.UpdatedAt = time.Now().UTC()
}

func (g *FinancialGoal) Resume() {
	if !g.IsPaused {
		return
	}
	g.IsPaused = false
	g.UpdatedAt = time.Now().UTC()
}

func (g *FinancialGoal) Archive() {
	if g.IsArchived {
		return
	}
	g.IsArchived = true
	g.UpdatedAt = time.Now().UTC()
}

func (g *FinancialGoal) Restore() {
	if !g.IsArchived {
		return
	}
	g.IsArchived = false
	g.UpdatedAt = time.Now().UTC()
}

// IsActive reports whether the goal participates in score aggregation.
func (g *FinancialGoal) IsActive() bool {
	return !g.IsPaused && !g.IsArchived
}
