package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"votehub/internal/model"
)

func TestNextStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name      string
		status    model.PollStatus
		startTime *time.Time
		endTime   *time.Time
		expected  model.PollStatus
	}{
		{
			name:      "scheduled poll past start time activates",
			status:    model.PollStatusScheduled,
			startTime: &past,
			endTime:   &future,
			expected:  model.PollStatusActive,
		},
		{
			name:      "scheduled poll before start time stays scheduled",
			status:    model.PollStatusScheduled,
			startTime: &future,
			expected:  model.PollStatusScheduled,
		},
		{
			name:     "scheduled poll without start time stays scheduled",
			status:   model.PollStatusScheduled,
			expected: model.PollStatusScheduled,
		},
		{
			name:      "active poll past end time closes",
			status:    model.PollStatusActive,
			startTime: &past,
			endTime:   &past,
			expected:  model.PollStatusClosed,
		},
		{
			name:      "active poll before end time stays active",
			status:    model.PollStatusActive,
			startTime: &past,
			endTime:   &future,
			expected:  model.PollStatusActive,
		},
		{
			name:     "active poll without end time stays active",
			status:   model.PollStatusActive,
			expected: model.PollStatusActive,
		},
		{
			name:      "draft never auto-transitions",
			status:    model.PollStatusDraft,
			startTime: &past,
			endTime:   &past,
			expected:  model.PollStatusDraft,
		},
		{
			name:      "closed never reopens",
			status:    model.PollStatusClosed,
			startTime: &past,
			endTime:   &future,
			expected:  model.PollStatusClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextStatus(tt.status, tt.startTime, tt.endTime, now)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNextStatus_Idempotent(t *testing.T) {
	now := time.Now()
	start := now.Add(-2 * time.Hour)
	end := now.Add(time.Hour)

	first := NextStatus(model.PollStatusScheduled, &start, &end, now)
	second := NextStatus(first, &start, &end, now)

	assert.Equal(t, model.PollStatusActive, first)
	assert.Equal(t, first, second)
}

func TestStatusSweeper_Sweep(t *testing.T) {
	pollRepo := new(MockPollRepository)
	pollRepo.On("ApplyDueTransitions", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(2), nil)

	sweeper := NewStatusSweeper(pollRepo, nil, time.Minute)
	sweeper.Sweep(context.Background())

	pollRepo.AssertExpectations(t)
}

func TestStatusSweeper_SweepErrorDoesNotPanic(t *testing.T) {
	pollRepo := new(MockPollRepository)
	pollRepo.On("ApplyDueTransitions", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(0), assert.AnError)

	sweeper := NewStatusSweeper(pollRepo, nil, time.Minute)
	assert.NotPanics(t, func() {
		sweeper.Sweep(context.Background())
	})
}
