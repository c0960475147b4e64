package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"votehub/internal/model"
)

// MediaRepository defines poll and option media persistence operations.
type MediaRepository interface {
	CreatePollMedia(ctx context.Context, media *model.PollMedia) error
	ListPollMedia(ctx context.Context, pollID uuid.UUID) ([]model.PollMedia, error)
	CreateOptionMedia(ctx context.Context, media *model.OptionMedia) error
	FindOptionMedia(ctx context.Context, optionID uuid.UUID) (*model.OptionMedia, error)
}

type mediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new media repository.
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

// CreatePollMedia creates a poll-level media row.
func (r *mediaRepository) CreatePollMedia(ctx context.Context, media *model.PollMedia) error {
	return r.db.WithContext(ctx).Create(media).Error
}

// ListPollMedia lists a poll's media rows.
func (r *mediaRepository) ListPollMedia(ctx context.Context, pollID uuid.UUID) ([]model.PollMedia, error) {
	var media []model.PollMedia
	if err := r.db.WithContext(ctx).Where("poll_id = ?", pollID).Find(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

// CreateOptionMedia creates an option image row. The unique index on
// option_id rejects a second image as gorm.ErrDuplicatedKey.
func (r *mediaRepository) CreateOptionMedia(ctx context.Context, media *model.OptionMedia) error {
	return r.db.WithContext(ctx).Create(media).Error
}

// FindOptionMedia returns the image row for an option, if any.
func (r *mediaRepository) FindOptionMedia(ctx context.Context, optionID uuid.UUID) (*model.OptionMedia, error) {
	var media model.OptionMedia
	if err := r.db.WithContext(ctx).Where("option_id = ?", optionID).First(&media).Error; err != nil {
		return nil, err
	}
	return &media, nil
}
