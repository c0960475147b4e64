package service

import (
	"fmt"
	"strings"
	"time"

	apperrors "votehub/internal/errors"
	"votehub/internal/model"
)

const (
	minTitleLength = 3
	minOptionCount = 2
)

// PollValidator validates poll creation and activation preconditions.
type PollValidator struct{}

// NewPollValidator creates a new poll validator.
func NewPollValidator() *PollValidator {
	return &PollValidator{}
}

// ValidateCreate checks a poll creation request. Returns the trimmed,
// non-empty option labels when valid.
func (v *PollValidator) ValidateCreate(input CreatePollInput) ([]string, error) {
	if len(strings.TrimSpace(input.Title)) < minTitleLength {
		return nil, fmt.Errorf("%w: title must be at least %d characters", apperrors.ErrInvalidInput, minTitleLength)
	}

	options := make([]string, 0, len(input.Options))
	for _, opt := range input.Options {
		if trimmed := strings.TrimSpace(opt); trimmed != "" {
			options = append(options, trimmed)
		}
	}
	if len(options) < minOptionCount {
		return nil, fmt.Errorf("%w: a poll needs at least %d options", apperrors.ErrInvalidInput, minOptionCount)
	}

	if input.StartTime != nil && input.EndTime != nil && !input.EndTime.After(*input.StartTime) {
		return nil, fmt.Errorf("%w: end time must be after start time", apperrors.ErrInvalidInput)
	}

	target := input.TargetStatus
	if target == "" {
		target = model.PollStatusDraft
	}
	if !target.Valid() || target == model.PollStatusClosed {
		return nil, fmt.Errorf("%w: invalid target status %q", apperrors.ErrInvalidInput, input.TargetStatus)
	}
	if (target == model.PollStatusScheduled || target == model.PollStatusActive) && input.StartTime == nil {
		return nil, fmt.Errorf("%w: a %s poll requires a start time", apperrors.ErrInvalidInput, target)
	}

	return options, nil
}

// ValidateActivation checks the preconditions for making a poll active or
// scheduled: enough options and a start time.
func (v *PollValidator) ValidateActivation(optionCount int64, startTime *time.Time) error {
	if optionCount < minOptionCount {
		return fmt.Errorf("%w: a poll needs at least %d options before activation", apperrors.ErrInvalidInput, minOptionCount)
	}
	if startTime == nil {
		return fmt.Errorf("%w: an activated poll requires a start time", apperrors.ErrInvalidInput)
	}
	return nil
}
