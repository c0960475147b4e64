package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"votehub/internal/model"
)

// PollRepository defines poll and option persistence operations.
type PollRepository interface {
	Create(ctx context.Context, poll *model.Poll) error
	Update(ctx context.Context, poll *model.Poll) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Poll, error)
	FindBySlug(ctx context.Context, slug string) (*model.Poll, error)
	List(ctx context.Context, status model.PollStatus) ([]model.Poll, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.PollStatus) error
	CountBySlugPrefix(ctx context.Context, prefix string) (int64, error)

	CreateOption(ctx context.Context, option *model.PollOption) error
	FindOption(ctx context.Context, id uuid.UUID) (*model.PollOption, error)
	ListOptions(ctx context.Context, pollID uuid.UUID) ([]model.PollOption, error)
	CountOptions(ctx context.Context, pollID uuid.UUID) (int64, error)

	// ApplyDueTransitions bulk-applies the lifecycle rule across all polls:
	// scheduled polls whose start time has passed become active, active polls
	// whose end time has passed become closed. Returns rows affected.
	ApplyDueTransitions(ctx context.Context, now time.Time) (int64, error)
}

type pollRepository struct {
	db *gorm.DB
}

// NewPollRepository creates a new poll repository.
func NewPollRepository(db *gorm.DB) PollRepository {
	return &pollRepository{db: db}
}

// Create creates a new poll row.
func (r *pollRepository) Create(ctx context.Context, poll *model.Poll) error {
	return r.db.WithContext(ctx).Omit("Options", "Media", "Creator").Create(poll).Error
}

// Update updates an existing poll row.
func (r *pollRepository) Update(ctx context.Context, poll *model.Poll) error {
	return r.db.WithContext(ctx).Omit("Options", "Media", "Creator").Save(poll).Error
}

// FindByID finds a poll by ID with its options and media preloaded.
func (r *pollRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Poll, error) {
	var poll model.Poll
	if err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Options.Media").
		Preload("Media").
		Where("id = ?", id).First(&poll).Error; err != nil {
		return nil, err
	}
	return &poll, nil
}

// FindBySlug finds a poll by its slug.
func (r *pollRepository) FindBySlug(ctx context.Context, slug string) (*model.Poll, error) {
	var poll model.Poll
	if err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("slug = ?", slug).First(&poll).Error; err != nil {
		return nil, err
	}
	return &poll, nil
}

// List lists polls, optionally filtered by status, newest first.
func (r *pollRepository) List(ctx context.Context, status model.PollStatus) ([]model.Poll, error) {
	var polls []model.Poll
	q := r.db.WithContext(ctx).Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at DESC").Find(&polls).Error; err != nil {
		return nil, err
	}
	return polls, nil
}

// UpdateStatus sets a poll's status without touching other columns.
func (r *pollRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.PollStatus) error {
	return r.db.WithContext(ctx).Model(&model.Poll{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// CountBySlugPrefix counts polls whose slug starts with prefix. Used to
// derive a unique slug on title collision.
func (r *pollRepository) CountBySlugPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Poll{}).
		Where("slug = ? OR slug LIKE ?", prefix, prefix+"-%").
		Count(&count).Error
	return count, err
}

// CreateOption creates a new option row.
func (r *pollRepository) CreateOption(ctx context.Context, option *model.PollOption) error {
	return r.db.WithContext(ctx).Create(option).Error
}

// FindOption finds an option by ID.
func (r *pollRepository) FindOption(ctx context.Context, id uuid.UUID) (*model.PollOption, error) {
	var option model.PollOption
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&option).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

// ListOptions lists a poll's options in display order.
func (r *pollRepository) ListOptions(ctx context.Context, pollID uuid.UUID) ([]model.PollOption, error) {
	var options []model.PollOption
	if err := r.db.WithContext(ctx).
		Where("poll_id = ?", pollID).
		Order("position").
		Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// CountOptions counts a poll's options.
func (r *pollRepository) CountOptions(ctx context.Context, pollID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PollOption{}).
		Where("poll_id = ?", pollID).
		Count(&count).Error
	return count, err
}

// ApplyDueTransitions applies scheduled→active then active→closed in two bulk
// updates. Ordering matters: a poll whose window has fully elapsed passes
// through active to closed in a single sweep.
func (r *pollRepository) ApplyDueTransitions(ctx context.Context, now time.Time) (int64, error) {
	var affected int64

	res := r.db.WithContext(ctx).Model(&model.Poll{}).
		Where("status = ? AND start_time IS NOT NULL AND start_time < ?", model.PollStatusScheduled, now).
		Update("status", model.PollStatusActive)
	if res.Error != nil {
		return affected, res.Error
	}
	affected += res.RowsAffected

	res = r.db.WithContext(ctx).Model(&model.Poll{}).
		Where("status = ? AND end_time IS NOT NULL AND end_time < ?", model.PollStatusActive, now).
		Update("status", model.PollStatusClosed)
	if res.Error != nil {
		return affected, res.Error
	}
	affected += res.RowsAffected

	return affected, nil
}
