package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"votehub/internal/model"
)

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mock.Mock
	mu      sync.Mutex
	flushed []model.AuditLog
}

func (m *MockAuditRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) CreateBatch(ctx context.Context, entries []model.AuditLog) error {
	m.mu.Lock()
	m.flushed = append(m.flushed, entries...)
	m.mu.Unlock()
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockAuditRepository) flushedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.flushed)
}

func TestAuditService_RecordFlushes(t *testing.T) {
	mockRepo := new(MockAuditRepository)
	mockRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

	service := NewAuditService(mockRepo)
	actorID := uuid.New()
	service.Record(actorID, "vote.cast", "poll", uuid.New(), "")
	service.Record(actorID, "poll.create", "poll", uuid.New(), "status=draft")

	// The worker flushes on its one-second ticker.
	assert.Eventually(t, func() bool {
		return mockRepo.flushedCount() == 2
	}, 3*time.Second, 50*time.Millisecond)
}

func TestAuditService_NilReceiverIsSafe(t *testing.T) {
	var service *AuditService
	assert.NotPanics(t, func() {
		service.Record(uuid.New(), "vote.cast", "poll", uuid.New(), "")
	})
}
