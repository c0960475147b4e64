package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"votehub/internal/model"
)

// VoteRepository defines vote persistence operations. Votes are insert-only.
type VoteRepository interface {
	Create(ctx context.Context, vote *model.Vote) error
	FindByPollAndUser(ctx context.Context, pollID, userID uuid.UUID) (*model.Vote, error)
	CountByOption(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// Create inserts a vote row. A duplicate (poll_id, user_id) surfaces as
// gorm.ErrDuplicatedKey through the driver's error translation.
func (r *voteRepository) Create(ctx context.Context, vote *model.Vote) error {
	return r.db.WithContext(ctx).Create(vote).Error
}

// FindByPollAndUser returns the user's vote on the poll, if any.
func (r *voteRepository) FindByPollAndUser(ctx context.Context, pollID, userID uuid.UUID) (*model.Vote, error) {
	var vote model.Vote
	if err := r.db.WithContext(ctx).
		Where("poll_id = ? AND user_id = ?", pollID, userID).
		First(&vote).Error; err != nil {
		return nil, err
	}
	return &vote, nil
}

// CountByOption tallies vote rows per option for a poll.
func (r *voteRepository) CountByOption(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error) {
	type row struct {
		OptionID uuid.UUID
		Count    int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).Model(&model.Vote{}).
		Select("option_id, COUNT(*) AS count").
		Where("poll_id = ?", pollID).
		Group("option_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.OptionID] = r.Count
	}
	return counts, nil
}

