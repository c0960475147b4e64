package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"votehub/internal/model"
	"votehub/internal/repository"
)

// AuditService records administrative and voting actions asynchronously.
// Entries are batched and flushed periodically so audit writes never sit on
// the request path.
type AuditService struct {
	repo    repository.AuditRepository
	entries chan model.AuditLog
}

// NewAuditService creates the audit service and starts its flush worker.
func NewAuditService(repo repository.AuditRepository) *AuditService {
	s := &AuditService{
		repo:    repo,
		entries: make(chan model.AuditLog, 100),
	}
	go s.worker(context.Background())
	return s
}

// Record enqueues an audit entry without blocking. Safe on a nil receiver so
// callers can skip auditing in tests.
func (s *AuditService) Record(actorID uuid.UUID, action, entityType string, entityID uuid.UUID, detail string) {
	if s == nil {
		return
	}
	entry := model.AuditLog{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}

	select {
	case s.entries <- entry:
	default:
		// Channel full, write synchronously as fallback
		_ = s.repo.Create(context.Background(), &entry)
	}
}

// worker flushes batched entries on size or time thresholds.
func (s *AuditService) worker(ctx context.Context) {
	batch := make([]model.AuditLog, 0, 10)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case entry, ok := <-s.entries:
			if !ok {
				if len(batch) > 0 {
					_ = s.repo.CreateBatch(ctx, batch)
				}
				return
			}
			batch = append(batch, entry)
			if len(batch) >= 10 {
				_ = s.repo.CreateBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				_ = s.repo.CreateBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ctx.Done():
			return
		}
	}
}
