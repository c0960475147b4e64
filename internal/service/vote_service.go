package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"votehub/internal/cache"
	apperrors "votehub/internal/errors"
	"votehub/internal/model"
	"votehub/internal/repository"
)

// privilegedWriteTimeout bounds the one-shot elevated retry path.
const privilegedWriteTimeout = 30 * time.Second

// startTimeFormat is how a scheduled poll's opening time is shown to voters.
const startTimeFormat = "Jan 2, 2006 at 15:04 MST"

// VoteService handles vote submission. A successful insert is terminal:
// votes are never updated or deleted by this flow.
type VoteService interface {
	SubmitVote(ctx context.Context, pollID, optionID, userID uuid.UUID) (*model.Vote, error)
}

type voteService struct {
	pollRepo repository.PollRepository
	voteRepo repository.VoteRepository
	// privilegedVotes is the elevated-credential fallback used once when the
	// standard grant rejects the insert. Nil disables the retry.
	privilegedVotes repository.VoteRepository
	cache           *cache.Client
	audit           *AuditService
}

// NewVoteService creates a new vote service.
func NewVoteService(
	pollRepo repository.PollRepository,
	voteRepo repository.VoteRepository,
	privilegedVotes repository.VoteRepository,
	cache *cache.Client,
	audit *AuditService,
) VoteService {
	return &voteService{
		pollRepo:        pollRepo,
		voteRepo:        voteRepo,
		privilegedVotes: privilegedVotes,
		cache:           cache,
		audit:           audit,
	}
}

// SubmitVote validates the poll is open, the option belongs to it and the
// user has not voted, then inserts the vote row. The uniqueness constraint
// is the race-safe backstop for the pre-check: a duplicate-key violation on
// insert reports AlreadyVoted, never a generic failure.
func (s *voteService) SubmitVote(ctx context.Context, pollID, optionID, userID uuid.UUID) (*model.Vote, error) {
	poll, err := s.pollRepo.FindByID(ctx, pollID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPollNotFound
		}
		return nil, fmt.Errorf("load poll: %w", err)
	}

	now := time.Now()

	// Promote a scheduled poll whose window has opened before judging it,
	// covering evaluator lag on the activation side.
	if poll.Status == model.PollStatusScheduled {
		if next := NextStatus(poll.Status, poll.StartTime, poll.EndTime, now); next == model.PollStatusActive {
			s.persistStatus(ctx, poll, model.PollStatusActive)
		}
	}

	switch poll.Status {
	case model.PollStatusActive:
		// Stored status may lag a passed end time; close it now and report
		// the expiry rather than accepting a late vote.
		if poll.EndTime != nil && now.After(*poll.EndTime) {
			s.persistStatus(ctx, poll, model.PollStatusClosed)
			return nil, apperrors.ErrPollExpired
		}
	case model.PollStatusScheduled:
		if poll.StartTime != nil {
			return nil, fmt.Errorf("%w: voting opens %s", apperrors.ErrPollNotActive, poll.StartTime.Format(startTimeFormat))
		}
		return nil, fmt.Errorf("%w: poll is not open yet", apperrors.ErrPollNotActive)
	case model.PollStatusClosed:
		return nil, fmt.Errorf("%w: poll has closed", apperrors.ErrPollNotActive)
	default:
		return nil, fmt.Errorf("%w: poll is not open for voting", apperrors.ErrPollNotActive)
	}

	option, err := s.pollRepo.FindOption(ctx, optionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOptionNotFound
		}
		return nil, fmt.Errorf("load option: %w", err)
	}
	if option.PollID != pollID {
		return nil, apperrors.ErrInvalidOption
	}

	if _, err := s.voteRepo.FindByPollAndUser(ctx, pollID, userID); err == nil {
		return nil, apperrors.ErrAlreadyVoted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing vote: %w", err)
	}

	vote := &model.Vote{
		PollID:   pollID,
		OptionID: optionID,
		UserID:   userID,
	}
	if err := s.insertVote(ctx, vote); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, pollCacheKey(pollID))
	_ = s.cache.Delete(ctx, resultsCacheKey(pollID))
	s.audit.Record(userID, "vote.cast", "poll", pollID, "")

	return vote, nil
}

// insertVote writes the vote row, translating duplicate-key violations to
// AlreadyVoted and retrying exactly once through the elevated credential
// when the standard grant rejects the write.
func (s *voteService) insertVote(ctx context.Context, vote *model.Vote) error {
	err := s.voteRepo.Create(ctx, vote)
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrAlreadyVoted
	}

	if isPermissionDenied(err) && s.privilegedVotes != nil {
		logrus.Warnf("vote insert denied for user %s on poll %s, retrying with elevated credential", vote.UserID, vote.PollID)
		retryCtx, cancel := context.WithTimeout(ctx, privilegedWriteTimeout)
		defer cancel()

		err = s.privilegedVotes.Create(retryCtx, vote)
		if err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrAlreadyVoted
		}
	}

	return fmt.Errorf("insert vote: %w", err)
}

// persistStatus writes a lazily-computed transition and invalidates the
// poll's cached views. Write failures are logged; the sweep converges the
// row later.
func (s *voteService) persistStatus(ctx context.Context, poll *model.Poll, status model.PollStatus) {
	if err := s.pollRepo.UpdateStatus(ctx, poll.ID, status); err != nil {
		logrus.Warnf("persist status %s for poll %s: %v", status, poll.ID, err)
	}
	poll.Status = status
	_ = s.cache.Delete(ctx, pollCacheKey(poll.ID))
	_ = s.cache.Delete(ctx, resultsCacheKey(poll.ID))
}

// isPermissionDenied reports whether the driver rejected the statement for
// lack of privileges (MySQL 1044 db-level, 1142 table-level, 1227 operation).
func isPermissionDenied(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1044, 1142, 1227:
			return true
		}
	}
	return false
}
