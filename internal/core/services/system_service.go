package services

import (
	"context"
	"time"

	"github.com/gzanette/lifetrack-engine/internal/core/analytics"
	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

type SystemService struct {
	repo    domain.LifeSystemRepository
	logRepo domain.AdherenceLogRepository
}

func NewSystemService(repo domain.LifeSystemRepository, logRepo domain.AdherenceLogRepository) *SystemService {
	return &SystemService{
		repo:    repo,
		logRepo: logRepo,
	}
}

type CreateSystemInput struct {
	UserID          string
	Name            string
	Category        string
	AdherenceTarget int
}

func (s *SystemService) Create(ctx context.Context, input CreateSystemInput) (*domain.LifeSystem, error) {
	system, err := domain.NewLifeSystem(input.UserID, input.Name, input.Category, input.AdherenceTarget)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, system); err != nil {
		return nil, err
	}
	return system, nil
}

func (s *SystemService) getOwned(ctx context.Context, id, userID string) (*domain.LifeSystem, error) {
	system, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if system.UserID != userID {
		return nil, domain.ErrSystemNotFound
	}
	return system, nil
}

func (s *SystemService) GetByID(ctx context.Context, id, userID string) (*domain.LifeSystem, error) {
	return s.getOwned(ctx, id, userID)
}

func (s *SystemService) ListByUserID(ctx context.Context, userID string) ([]*domain.LifeSystem, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// LogAdherence upserts the day's adhered/missed flag for a system.
func (s *SystemService) LogAdherence(ctx context.Context, systemID, userID string, day time.Time, adhered bool) (*domain.SystemAdherenceLog, error) {
	system, err := s.getOwned(ctx, systemID, userID)
	if err != nil {
		return nil, err
	}

	if day.IsZero() {
		day = time.Now().UTC()
	}

	entry := domain.NewAdherenceLog(system.ID, userID, day, adhered)
	if err := s.logRepo.Upsert(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

type AdherenceReport struct {
	SystemID  string `json:"system_id"`
	Rate      int    `json:"rate"`
	Target    int    `json:"target"`
	LogCount  int    `json:"log_count"`
	IsOnTrack bool   `json:"is_on_track"`
}

// Adherence scores a system over the trailing 30-day log window.
func (s *SystemService) Adherence(ctx context.Context, systemID, userID string) (*AdherenceReport, error) {
	system, err := s.getOwned(ctx, systemID, userID)
	if err != nil {
		return nil, err
	}

	since := time.Now().UTC().AddDate(0, 0, -analytics.AdherenceWindowDays)
	window, err := s.logRepo.ListBySystemSince(ctx, system.ID, since)
	if err != nil {
		return nil, err
	}

	rate := analytics.AdherenceRate(window)

	return &AdherenceReport{
		SystemID:  system.ID,
		Rate:      rate,
		Target:    system.AdherenceTarget,
		LogCount:  len(window),
		IsOnTrack: analytics.IsOnTrack(rate, system.AdherenceTarget),
	}, nil
}

func (s *SystemService) SetActive(ctx context.Context, id, userID string, active bool) (*domain.LifeSystem, error) {
	system, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	system.IsActive = active
	system.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, system); err != nil {
		return nil, err
	}
	return system, nil
}

func (s *SystemService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
