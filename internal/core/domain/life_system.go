package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSystemNotFound       = errors.New("life system not found")
	ErrSystemNameEmpty      = errors.New("system name cannot be empty")
	ErrInvalidAdherenceGoal = errors.New("adherence target must be between 0 and 100")
	ErrSystemInvalidUserID  = errors.New("invalid user id")
)

// LifeSystem is a recurring behavioral commitment ("no phone after 22:00")
// scored by the share of logged days marked adhered.
type LifeSystem struct {
	ID              string    `json:"id" db:"id"`
	UserID          string    `json:"user_id" db:"user_id"`
	Name            string    `json:"name" db:"name"`
	Category        string    `json:"category" db:"category"`
	AdherenceTarget int       `json:"adherence_target" db:"adherence_target"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// SystemAdherenceLog is unique per (system, calendar day), upsertable.
type SystemAdherenceLog struct {
	ID        string    `json:"id" db:"id"`
	SystemID  string    `json:"system_id" db:"system_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Date      time.Time `json:"date" db:"log_date"`
	Adhered   bool      `json:"adhered" db:"adhered"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func NewLifeSystem(userID, name, category string, adherenceTarget int) (*LifeSystem, error) {
	if userID == "" {
		return nil, ErrSystemInvalidUserID
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrSystemNameEmpty
	}

	if adherenceTarget < 0 || adherenceTarget > 100 {
		return nil, ErrInvalidAdherenceGoal
	}

	now := time.Now().UTC()
	return &LifeSystem{
		ID:              uuid.NewString(),
		UserID:          userID,
		Name:            name,
		Category:        category,
		AdherenceTarget: adherenceTarget,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func NewAdherenceLog(systemID, userID string, day time.Time, adhered bool) *SystemAdherenceLog {
	y, m, d := day.UTC().Date()

	return &SystemAdherenceLog{
		ID:        uuid.NewString(),
		SystemID:  systemID,
		UserID:    userID,
		Date:      time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Adhered:   adhered,
		CreatedAt: time.Now().UTC(),
	}
}

type LifeSystemRepository interface {
	Create(ctx context.Context, system *LifeSystem) error
	GetByID(ctx context.Context, id string) (*LifeSystem, error)
	ListByUserID(ctx context.Context, userID string) ([]*LifeSystem, error)
	Update(ctx context.Context, system *LifeSystem) error
	Delete(ctx context.Context, id string) error
}

type AdherenceLogRepository interface {
	// Upsert inserts the log, or overwrites the row already present for the
	// same system and calendar day.
	Upsert(ctx context.Context, entry *SystemAdherenceLog) error

	// ListBySystemSince returns logs dated on or after since, newest first.
	ListBySystemSince(ctx context.Context, systemID string, since time.Time) ([]*SystemAdherenceLog, error)
}
