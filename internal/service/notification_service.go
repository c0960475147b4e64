package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"votehub/internal/model"
	"votehub/internal/repository"
)

// PreferencesInput carries the full set of notification flags.
type PreferencesInput struct {
	PollOpened       bool
	PollClosing      bool
	ResultsPublished bool
}

// NotificationService reads and updates per-user notification preferences.
// Delivery is out of scope.
type NotificationService interface {
	GetPreferences(ctx context.Context, userID uuid.UUID) (*model.NotificationPreference, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, input PreferencesInput) (*model.NotificationPreference, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a new notification preference service.
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

// GetPreferences returns the user's stored preferences, or the defaults when
// no row exists yet.
func (s *notificationService) GetPreferences(ctx context.Context, userID uuid.UUID) (*model.NotificationPreference, error) {
	pref, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.NotificationPreference{
				UserID:           userID,
				PollOpened:       true,
				PollClosing:      true,
				ResultsPublished: true,
			}, nil
		}
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	return pref, nil
}

// UpdatePreferences stores the user's preference flags, creating the row on
// first write.
func (s *notificationService) UpdatePreferences(ctx context.Context, userID uuid.UUID, input PreferencesInput) (*model.NotificationPreference, error) {
	pref := &model.NotificationPreference{
		UserID:           userID,
		PollOpened:       input.PollOpened,
		PollClosing:      input.PollClosing,
		ResultsPublished: input.ResultsPublished,
	}
	if err := s.repo.Upsert(ctx, pref); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}
	return pref, nil
}
