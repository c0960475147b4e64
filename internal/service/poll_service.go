package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"votehub/internal/cache"
	apperrors "votehub/internal/errors"
	"votehub/internal/model"
	"votehub/internal/repository"
)

const (
	pollCacheTTL    = time.Minute
	resultsCacheTTL = 30 * time.Second
)

func pollCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("poll:%s", id.String())
}

func resultsCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("results:%s", id.String())
}

// LinkInput is an external link attached to a poll at creation time.
type LinkInput struct {
	URL         string
	Description string
}

// CreatePollInput carries the poll creation workflow's parameters.
type CreatePollInput struct {
	Title        string
	Description  string
	StartTime    *time.Time
	EndTime      *time.Time
	Options      []string
	Links        []LinkInput
	TargetStatus model.PollStatus
	CreatedBy    uuid.UUID
}

// OptionResult is the tally for a single option.
type OptionResult struct {
	OptionID uuid.UUID `json:"option_id"`
	Label    string    `json:"label"`
	Count    int64     `json:"count"`
	Percent  int64     `json:"percent"`
}

// PollResults is the aggregated result view for a poll, recomputed from vote
// rows on every read.
type PollResults struct {
	PollID     uuid.UUID      `json:"poll_id"`
	TotalVotes int64          `json:"total_votes"`
	Options    []OptionResult `json:"options"`
}

// UpdatePollInput carries an admin edit of poll metadata. Nil fields are left
// unchanged.
type UpdatePollInput struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
}

// PollService handles poll creation, browsing, lifecycle and results.
type PollService interface {
	CreatePoll(ctx context.Context, input CreatePollInput) (*model.Poll, error)
	GetPoll(ctx context.Context, id uuid.UUID) (*model.Poll, error)
	GetPollBySlug(ctx context.Context, slug string) (*model.Poll, error)
	ListPolls(ctx context.Context, status model.PollStatus) ([]model.Poll, error)
	UpdatePoll(ctx context.Context, id uuid.UUID, input UpdatePollInput, actorID uuid.UUID) (*model.Poll, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, target model.PollStatus, actorID uuid.UUID) (*model.Poll, error)
	Results(ctx context.Context, id uuid.UUID) (*PollResults, error)
}

type pollService struct {
	pollRepo  repository.PollRepository
	voteRepo  repository.VoteRepository
	mediaRepo repository.MediaRepository
	cache     *cache.Client
	validator *PollValidator
	audit     *AuditService
}

// NewPollService creates a new poll service.
func NewPollService(
	pollRepo repository.PollRepository,
	voteRepo repository.VoteRepository,
	mediaRepo repository.MediaRepository,
	cache *cache.Client,
	audit *AuditService,
) PollService {
	return &pollService{
		pollRepo:  pollRepo,
		voteRepo:  voteRepo,
		mediaRepo: mediaRepo,
		cache:     cache,
		validator: NewPollValidator(),
		audit:     audit,
	}
}

// CreatePoll runs the multi-step creation workflow. The poll row is inserted
// as draft regardless of the requested target, so a half-constructed poll is
// never visible or votable; the status flips only after all options exist.
func (s *pollService) CreatePoll(ctx context.Context, input CreatePollInput) (*model.Poll, error) {
	options, err := s.validator.ValidateCreate(input)
	if err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, input.Title)
	if err != nil {
		return nil, fmt.Errorf("derive slug: %w", err)
	}

	poll := &model.Poll{
		Title:       input.Title,
		Slug:        slug,
		Description: input.Description,
		Status:      model.PollStatusDraft,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		CreatedBy:   input.CreatedBy,
	}
	if err := s.pollRepo.Create(ctx, poll); err != nil {
		return nil, fmt.Errorf("create poll: %w", err)
	}

	// Sequential inserts; a mid-sequence failure leaves a draft with partial
	// options, which is invisible to voters and repairable by the admin.
	for i, label := range options {
		option := &model.PollOption{
			PollID:   poll.ID,
			Label:    label,
			Position: i,
		}
		if err := s.pollRepo.CreateOption(ctx, option); err != nil {
			return poll, fmt.Errorf("create option %d: %w", i+1, err)
		}
		poll.Options = append(poll.Options, *option)
	}

	for _, link := range input.Links {
		media := &model.PollMedia{
			PollID:      poll.ID,
			MediaType:   model.MediaTypeLink,
			URL:         link.URL,
			Description: link.Description,
		}
		if err := s.mediaRepo.CreatePollMedia(ctx, media); err != nil {
			// Non-fatal: the poll stands without the link.
			logrus.Warnf("create link media for poll %s: %v", poll.ID, err)
			continue
		}
		poll.Media = append(poll.Media, *media)
	}

	target := input.TargetStatus
	if target == "" {
		target = model.PollStatusDraft
	}
	if target != model.PollStatusDraft {
		if err := s.pollRepo.UpdateStatus(ctx, poll.ID, target); err != nil {
			return poll, fmt.Errorf("set poll status %s: %w", target, err)
		}
		poll.Status = target
	}

	s.audit.Record(input.CreatedBy, "poll.create", "poll", poll.ID, fmt.Sprintf("status=%s options=%d", poll.Status, len(options)))
	return poll, nil
}

// uniqueSlug derives the title's slug and suffixes it on collision.
func (s *pollService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := TitleToSlug(title)
	taken, err := s.pollRepo.CountBySlugPrefix(ctx, base)
	if err != nil {
		return "", err
	}
	if taken == 0 {
		return base, nil
	}
	return fmt.Sprintf("%s-%d", base, taken+1), nil
}

// GetPoll returns a poll with options and media, applying the lazy lifecycle
// check. The detail view is briefly cached.
func (s *pollService) GetPoll(ctx context.Context, id uuid.UUID) (*model.Poll, error) {
	if data, _ := s.cache.Get(ctx, pollCacheKey(id)); data != nil {
		var cached model.Poll
		if err := json.Unmarshal(data, &cached); err == nil {
			s.refreshStatus(ctx, &cached)
			return &cached, nil
		}
	}

	poll, err := s.pollRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPollNotFound
		}
		return nil, err
	}
	s.refreshStatus(ctx, poll)

	if payload, err := json.Marshal(poll); err == nil {
		_ = s.cache.Set(ctx, pollCacheKey(id), payload, pollCacheTTL)
	}
	return poll, nil
}

// GetPollBySlug resolves a poll by its permalink slug, applying the lazy
// lifecycle check. Slug lookups bypass the cache, which is keyed by ID.
func (s *pollService) GetPollBySlug(ctx context.Context, slug string) (*model.Poll, error) {
	poll, err := s.pollRepo.FindBySlug(ctx, slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPollNotFound
		}
		return nil, err
	}
	s.refreshStatus(ctx, poll)
	return poll, nil
}

// ListPolls lists polls filtered by status, applying the lazy lifecycle
// check to each returned row.
func (s *pollService) ListPolls(ctx context.Context, status model.PollStatus) ([]model.Poll, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidInput, status)
	}

	polls, err := s.pollRepo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	for i := range polls {
		s.refreshStatus(ctx, &polls[i])
	}

	// A lazily-applied transition may move a poll out of the requested
	// bucket; drop it rather than return a stale listing.
	if status != "" {
		filtered := polls[:0]
		for _, p := range polls {
			if p.Status == status {
				filtered = append(filtered, p)
			}
		}
		polls = filtered
	}
	return polls, nil
}

// refreshStatus applies a due lifecycle transition to the loaded poll and
// persists it. Failures are logged only; the caller still sees the computed
// status and the sweeper will converge the row.
func (s *pollService) refreshStatus(ctx context.Context, poll *model.Poll) {
	next := NextStatus(poll.Status, poll.StartTime, poll.EndTime, time.Now())
	if next == poll.Status {
		return
	}
	if err := s.pollRepo.UpdateStatus(ctx, poll.ID, next); err != nil {
		logrus.Warnf("persist status %s for poll %s: %v", next, poll.ID, err)
	}
	poll.Status = next
	_ = s.cache.Delete(ctx, pollCacheKey(poll.ID))
	_ = s.cache.Delete(ctx, resultsCacheKey(poll.ID))
}

// UpdatePoll applies an admin edit to poll metadata. The slug is the poll's
// permalink and stays fixed even when the title changes.
func (s *pollService) UpdatePoll(ctx context.Context, id uuid.UUID, input UpdatePollInput, actorID uuid.UUID) (*model.Poll, error) {
	poll, err := s.pollRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPollNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", apperrors.ErrInvalidInput)
		}
		poll.Title = *input.Title
	}
	if input.Description != nil {
		poll.Description = *input.Description
	}
	if input.StartTime != nil {
		poll.StartTime = input.StartTime
	}
	if input.EndTime != nil {
		poll.EndTime = input.EndTime
	}
	if poll.StartTime != nil && poll.EndTime != nil && !poll.EndTime.After(*poll.StartTime) {
		return nil, fmt.Errorf("%w: end time must be after start time", apperrors.ErrInvalidInput)
	}

	if err := s.pollRepo.Update(ctx, poll); err != nil {
		return nil, fmt.Errorf("update poll: %w", err)
	}

	_ = s.cache.Delete(ctx, pollCacheKey(id))
	_ = s.cache.Delete(ctx, resultsCacheKey(id))
	s.audit.Record(actorID, "poll.update", "poll", id, fmt.Sprintf("title=%q", poll.Title))
	return poll, nil
}

// UpdateStatus is the explicit admin override: any target is allowed,
// including backward moves, but activation preconditions still hold.
func (s *pollService) UpdateStatus(ctx context.Context, id uuid.UUID, target model.PollStatus, actorID uuid.UUID) (*model.Poll, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidInput, target)
	}

	poll, err := s.pollRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPollNotFound
		}
		return nil, err
	}

	if target == model.PollStatusActive || target == model.PollStatusScheduled {
		count, err := s.pollRepo.CountOptions(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("count options: %w", err)
		}
		if err := s.validator.ValidateActivation(count, poll.StartTime); err != nil {
			return nil, err
		}
	}

	if err := s.pollRepo.UpdateStatus(ctx, id, target); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	previous := poll.Status
	poll.Status = target

	_ = s.cache.Delete(ctx, pollCacheKey(id))
	_ = s.cache.Delete(ctx, resultsCacheKey(id))
	s.audit.Record(actorID, "poll.status_override", "poll", id, fmt.Sprintf("%s -> %s", previous, target))
	return poll, nil
}

// Results tallies vote rows per option at read time. Every option appears in
// the result set, zero-vote options included; no tally is persisted.
func (s *pollService) Results(ctx context.Context, id uuid.UUID) (*PollResults, error) {
	if data, _ := s.cache.Get(ctx, resultsCacheKey(id)); data != nil {
		var cached PollResults
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	options, err := s.pollRepo.ListOptions(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(options) == 0 {
		if _, err := s.pollRepo.FindByID(ctx, id); err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPollNotFound
		}
	}

	counts, err := s.voteRepo.CountByOption(ctx, id)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, opt := range options {
		total += counts[opt.ID]
	}

	results := &PollResults{
		PollID:     id,
		TotalVotes: total,
		Options:    make([]OptionResult, 0, len(options)),
	}
	for _, opt := range options {
		count := counts[opt.ID]
		results.Options = append(results.Options, OptionResult{
			OptionID: opt.ID,
			Label:    opt.Label,
			Count:    count,
			Percent:  percentOf(count, total),
		})
	}

	if payload, err := json.Marshal(results); err == nil {
		_ = s.cache.Set(ctx, resultsCacheKey(id), payload, resultsCacheTTL)
	}
	return results, nil
}

// percentOf computes round(count/total*100); a zero total yields 0 for every
// option rather than dividing by zero.
func percentOf(count, total int64) int64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(count).
		Div(decimal.NewFromInt(total)).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}
