package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "votehub/internal/errors"
	"votehub/internal/model"
)

func activePoll(pollID uuid.UUID) *model.Poll {
	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)
	return &model.Poll{
		ID:        pollID,
		Status:    model.PollStatusActive,
		StartTime: &start,
		EndTime:   &end,
	}
}

func TestVoteService_SubmitVote(t *testing.T) {
	pollID := uuid.New()
	optionID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockPollRepository, *MockVoteRepository)
		expectedError error
	}{
		{
			name: "successful vote",
			setupMock: func(pollRepo *MockPollRepository, voteRepo *MockVoteRepository) {
				pollRepo.On("FindByID", mock.Anything, pollID).Return(activePoll(pollID), nil)
				pollRepo.On("FindOption", mock.Anything, optionID).Return(&model.PollOption{ID: optionID, PollID: pollID}, nil)
				voteRepo.On("FindByPollAndUser", mock.Anything, pollID, userID).Return(nil, gorm.ErrRecordNotFound)
				voteRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Vote")).Return(nil)
			},
		},
		{
			name: "poll not found",
			setupMock: func(pollRepo *MockPollRepository, voteRepo *MockVoteRepository) {
				pollRepo.On("FindByID", mock.Anything, pollID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrPollNotFound,
		},
		{
			name: "closed poll rejects votes",
			setupMock: func(pollRepo *MockPollRepository, voteRepo *MockVoteRepository) {
				pollRepo.On("FindByID", mock.Anything, pollID).Return(&model.Poll{
					ID: pollID, Status: model.PollStatusClosed,
				}, nil)
			},
			expectedError: apperrors.ErrPollNotActive,
		},
		{
			name: "draft poll rejects votes",
			setupMock: func(pollRepo *MockPollRepository, voteRepo *MockVoteRepository) {
				pollRepo.On("FindByID", mock.Anything, pollID).Return(&model.Poll{
					ID: pollID, Status: model.PollStatusDraft,
				}, nil)
			},
			expectedError: apperrors.ErrPollNotActive,
		},
		{
			name: "option not found",
			setupMock: func(pollRepo *MockPollRepository, voteRepo *MockVoteRepository) {
				pollRepo.On("FindByID", mock.Anything, pollID).Return(activePoll(pollID), nil)
				pollRepo.On("FindOption", mock.Anything, optionID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrOptionNotFound,
		},
		{
			name: "option belongs to another poll",
			setupMock: func(pollRepo *MockPollRepository, voteRepo *MockVoteRepository) {
				pollRepo.On("FindByID", mock.Anything, pollID).Return(activePoll(pollID), nil)
				pollRepo.On("FindOption", mock.Anything, optionID).Return(&model.PollOption{
					ID: optionID, PollID: uuid.New(),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidOption,
		},
		{
			name: "user already voted",
			setupMock: func(pollRepo *MockPollRepository, voteRepo *MockVoteRepository) {
				pollRepo.On("FindByID", mock.Anything, pollID).Return(activePoll(pollID), nil)
				pollRepo.On("FindOption", mock.Anything, optionID).Return(&model.PollOption{ID: optionID, PollID: pollID}, nil)
				voteRepo.On("FindByPollAndUser", mock.Anything, pollID, userID).Return(&model.Vote{}, nil)
			},
			expectedError: apperrors.ErrAlreadyVoted,
		},
		{
			name: "duplicate key on insert reports already voted",
			setupMock: func(pollRepo *MockPollRepository, voteRepo *MockVoteRepository) {
				pollRepo.On("FindByID", mock.Anything, pollID).Return(activePoll(pollID), nil)
				pollRepo.On("FindOption", mock.Anything, optionID).Return(&model.PollOption{ID: optionID, PollID: pollID}, nil)
				voteRepo.On("FindByPollAndUser", mock.Anything, pollID, userID).Return(nil, gorm.ErrRecordNotFound)
				voteRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Vote")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrAlreadyVoted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pollRepo := new(MockPollRepository)
			voteRepo := new(MockVoteRepository)
			tt.setupMock(pollRepo, voteRepo)

			svc := NewVoteService(pollRepo, voteRepo, nil, nil, nil)
			vote, err := svc.SubmitVote(context.Background(), pollID, optionID, userID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, vote)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, vote)
				assert.Equal(t, optionID, vote.OptionID)
				assert.Equal(t, userID, vote.UserID)
			}
			pollRepo.AssertExpectations(t)
			voteRepo.AssertExpectations(t)
		})
	}
}

func TestVoteService_SubmitVote_ScheduledShowsOpeningTime(t *testing.T) {
	pollID := uuid.New()
	start := time.Now().Add(2 * time.Hour)

	pollRepo := new(MockPollRepository)
	pollRepo.On("FindByID", mock.Anything, pollID).Return(&model.Poll{
		ID: pollID, Status: model.PollStatusScheduled, StartTime: &start,
	}, nil)

	svc := NewVoteService(pollRepo, new(MockVoteRepository), nil, nil, nil)
	vote, err := svc.SubmitVote(context.Background(), pollID, uuid.New(), uuid.New())

	assert.ErrorIs(t, err, apperrors.ErrPollNotActive)
	assert.Contains(t, err.Error(), start.Format("Jan 2, 2006 at 15:04 MST"))
	assert.Nil(t, vote)
}

func TestVoteService_SubmitVote_ScheduledPastStartPromotes(t *testing.T) {
	pollID := uuid.New()
	optionID := uuid.New()
	userID := uuid.New()
	start := time.Now().Add(-time.Minute)
	end := time.Now().Add(time.Hour)

	pollRepo := new(MockPollRepository)
	voteRepo := new(MockVoteRepository)
	pollRepo.On("FindByID", mock.Anything, pollID).Return(&model.Poll{
		ID: pollID, Status: model.PollStatusScheduled, StartTime: &start, EndTime: &end,
	}, nil)
	pollRepo.On("UpdateStatus", mock.Anything, pollID, model.PollStatusActive).Return(nil)
	pollRepo.On("FindOption", mock.Anything, optionID).Return(&model.PollOption{ID: optionID, PollID: pollID}, nil)
	voteRepo.On("FindByPollAndUser", mock.Anything, pollID, userID).Return(nil, gorm.ErrRecordNotFound)
	voteRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Vote")).Return(nil)

	svc := NewVoteService(pollRepo, voteRepo, nil, nil, nil)
	vote, err := svc.SubmitVote(context.Background(), pollID, optionID, userID)

	assert.NoError(t, err)
	assert.NotNil(t, vote)
	pollRepo.AssertExpectations(t)
}

func TestVoteService_SubmitVote_ExpiredPollCloses(t *testing.T) {
	pollID := uuid.New()
	start := time.Now().Add(-2 * time.Hour)
	end := time.Now().Add(-time.Hour)

	pollRepo := new(MockPollRepository)
	pollRepo.On("FindByID", mock.Anything, pollID).Return(&model.Poll{
		ID: pollID, Status: model.PollStatusActive, StartTime: &start, EndTime: &end,
	}, nil)
	pollRepo.On("UpdateStatus", mock.Anything, pollID, model.PollStatusClosed).Return(nil)

	svc := NewVoteService(pollRepo, new(MockVoteRepository), nil, nil, nil)
	vote, err := svc.SubmitVote(context.Background(), pollID, uuid.New(), uuid.New())

	assert.ErrorIs(t, err, apperrors.ErrPollExpired)
	assert.Nil(t, vote)
	pollRepo.AssertExpectations(t)
}

func TestVoteService_SubmitVote_PrivilegedRetry(t *testing.T) {
	pollID := uuid.New()
	optionID := uuid.New()
	userID := uuid.New()
	denied := &mysql.MySQLError{Number: 1142, Message: "INSERT command denied"}

	pollRepo := new(MockPollRepository)
	voteRepo := new(MockVoteRepository)
	privilegedRepo := new(MockVoteRepository)

	pollRepo.On("FindByID", mock.Anything, pollID).Return(activePoll(pollID), nil)
	pollRepo.On("FindOption", mock.Anything, optionID).Return(&model.PollOption{ID: optionID, PollID: pollID}, nil)
	voteRepo.On("FindByPollAndUser", mock.Anything, pollID, userID).Return(nil, gorm.ErrRecordNotFound)
	voteRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Vote")).Return(denied)
	privilegedRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Vote")).Return(nil)

	svc := NewVoteService(pollRepo, voteRepo, privilegedRepo, nil, nil)
	vote, err := svc.SubmitVote(context.Background(), pollID, optionID, userID)

	assert.NoError(t, err)
	assert.NotNil(t, vote)
	privilegedRepo.AssertExpectations(t)
}

func TestVoteService_SubmitVote_PermissionDeniedWithoutFallback(t *testing.T) {
	pollID := uuid.New()
	optionID := uuid.New()
	userID := uuid.New()
	denied := &mysql.MySQLError{Number: 1044, Message: "access denied"}

	pollRepo := new(MockPollRepository)
	voteRepo := new(MockVoteRepository)
	pollRepo.On("FindByID", mock.Anything, pollID).Return(activePoll(pollID), nil)
	pollRepo.On("FindOption", mock.Anything, optionID).Return(&model.PollOption{ID: optionID, PollID: pollID}, nil)
	voteRepo.On("FindByPollAndUser", mock.Anything, pollID, userID).Return(nil, gorm.ErrRecordNotFound)
	voteRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Vote")).Return(denied)

	svc := NewVoteService(pollRepo, voteRepo, nil, nil, nil)
	vote, err := svc.SubmitVote(context.Background(), pollID, optionID, userID)

	assert.Error(t, err)
	assert.ErrorIs(t, err, denied)
	assert.Nil(t, vote)
}

// fakeVoteStore enforces the one-vote-per-user constraint the way the
// database unique index does, so racing submissions can be exercised
// without a real connection.
type fakeVoteStore struct {
	mu    sync.Mutex
	votes map[string]*model.Vote
}

func newFakeVoteStore() *fakeVoteStore {
	return &fakeVoteStore{votes: make(map[string]*model.Vote)}
}

func voteKey(pollID, userID uuid.UUID) string {
	return fmt.Sprintf("%s/%s", pollID, userID)
}

func (f *fakeVoteStore) Create(ctx context.Context, vote *model.Vote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := voteKey(vote.PollID, vote.UserID)
	if _, exists := f.votes[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	f.votes[key] = vote
	return nil
}

func (f *fakeVoteStore) FindByPollAndUser(ctx context.Context, pollID, userID uuid.UUID) (*model.Vote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if vote, ok := f.votes[voteKey(pollID, userID)]; ok {
		return vote, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVoteStore) CountByOption(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[uuid.UUID]int64)
	for _, vote := range f.votes {
		if vote.PollID == pollID {
			counts[vote.OptionID]++
		}
	}
	return counts, nil
}

func (f *fakeVoteStore) CountByPoll(ctx context.Context, pollID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, vote := range f.votes {
		if vote.PollID == pollID {
			count++
		}
	}
	return count, nil
}

func TestVoteService_SubmitVote_ConcurrentDuplicates(t *testing.T) {
	pollID := uuid.New()
	optionID := uuid.New()
	userID := uuid.New()

	pollRepo := new(MockPollRepository)
	pollRepo.On("FindByID", mock.Anything, pollID).Return(activePoll(pollID), nil)
	pollRepo.On("FindOption", mock.Anything, optionID).Return(&model.PollOption{ID: optionID, PollID: pollID}, nil)

	store := newFakeVoteStore()
	svc := NewVoteService(pollRepo, store, nil, nil, nil)

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SubmitVote(context.Background(), pollID, optionID, userID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, duplicates int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, apperrors.ErrAlreadyVoted):
			duplicates++
		}
	}

	assert.Equal(t, 1, successes, "exactly one submission should win")
	assert.Equal(t, attempts-1, duplicates)

	count, err := store.CountByPoll(context.Background(), pollID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
