package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"votehub/internal/cache"
	"votehub/internal/model"
	"votehub/internal/repository"
)

// NextStatus computes the lifecycle transition due for a poll at the given
// instant. It only ever moves forward: active polls past their end time
// close, scheduled polls past their start time activate, everything else is
// unchanged. Idempotent and safe to invoke from any call site; concurrent
// invocations converge on the same result.
func NextStatus(status model.PollStatus, startTime, endTime *time.Time, now time.Time) model.PollStatus {
	switch status {
	case model.PollStatusActive:
		if endTime != nil && now.After(*endTime) {
			return model.PollStatusClosed
		}
	case model.PollStatusScheduled:
		if startTime != nil && now.After(*startTime) {
			return model.PollStatusActive
		}
	}
	return status
}

// StatusSweeper periodically applies due lifecycle transitions across all
// polls in bulk. Read paths still run a lazy per-poll check, so the sweep
// interval only bounds how stale a never-read poll's status can get.
type StatusSweeper struct {
	polls    repository.PollRepository
	cache    *cache.Client
	interval time.Duration
}

// NewStatusSweeper creates a sweeper over the poll repository.
func NewStatusSweeper(polls repository.PollRepository, cache *cache.Client, interval time.Duration) *StatusSweeper {
	return &StatusSweeper{polls: polls, cache: cache, interval: interval}
}

// Run sweeps on a fixed interval until ctx is cancelled.
func (s *StatusSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Sweep(ctx)
	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Sweep applies due transitions once and invalidates poll view caches when
// anything changed.
func (s *StatusSweeper) Sweep(ctx context.Context) {
	affected, err := s.polls.ApplyDueTransitions(ctx, time.Now())
	if err != nil {
		logrus.Errorf("status sweep failed: %v", err)
		return
	}
	if affected > 0 {
		logrus.Infof("status sweep applied %d poll transitions", affected)
		_ = s.cache.DeletePattern(ctx, "poll:*")
		_ = s.cache.DeletePattern(ctx, "polls:*")
		_ = s.cache.DeletePattern(ctx, "results:*")
	}
}
