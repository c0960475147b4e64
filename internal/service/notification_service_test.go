package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"votehub/internal/model"
)

// MockNotificationRepository is a mock implementation of NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*model.NotificationPreference, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NotificationPreference), args.Error(1)
}

func (m *MockNotificationRepository) Upsert(ctx context.Context, pref *model.NotificationPreference) error {
	args := m.Called(ctx, pref)
	return args.Error(0)
}

func TestNotificationService_GetPreferences(t *testing.T) {
	userID := uuid.New()

	t.Run("missing row returns opt-in defaults", func(t *testing.T) {
		mockRepo := new(MockNotificationRepository)
		mockRepo.On("FindByUser", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		service := NewNotificationService(mockRepo)
		pref, err := service.GetPreferences(context.Background(), userID)

		assert.NoError(t, err)
		assert.True(t, pref.PollOpened)
		assert.True(t, pref.PollClosing)
		assert.True(t, pref.ResultsPublished)
	})

	t.Run("stored row wins over defaults", func(t *testing.T) {
		mockRepo := new(MockNotificationRepository)
		mockRepo.On("FindByUser", mock.Anything, userID).Return(&model.NotificationPreference{
			UserID:      userID,
			PollOpened:  false,
			PollClosing: true,
		}, nil)

		service := NewNotificationService(mockRepo)
		pref, err := service.GetPreferences(context.Background(), userID)

		assert.NoError(t, err)
		assert.False(t, pref.PollOpened)
		assert.True(t, pref.PollClosing)
	})
}

func TestNotificationService_UpdatePreferences(t *testing.T) {
	userID := uuid.New()

	mockRepo := new(MockNotificationRepository)
	mockRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *model.NotificationPreference) bool {
		return p.UserID == userID && !p.PollOpened && p.ResultsPublished
	})).Return(nil)

	service := NewNotificationService(mockRepo)
	pref, err := service.UpdatePreferences(context.Background(), userID, PreferencesInput{
		PollOpened:       false,
		PollClosing:      false,
		ResultsPublished: true,
	})

	assert.NoError(t, err)
	assert.False(t, pref.PollOpened)
	assert.True(t, pref.ResultsPublished)
	mockRepo.AssertExpectations(t)
}
