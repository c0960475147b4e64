package repository

import (
	"context"

	"gorm.io/gorm"

	"votehub/internal/model"
)

// AuditRepository defines audit log persistence operations.
type AuditRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	CreateBatch(ctx context.Context, entries []model.AuditLog) error
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit log repository.
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

// Create creates a single audit log entry.
func (r *auditRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// CreateBatch creates multiple audit log entries in a single statement.
func (r *auditRepository) CreateBatch(ctx context.Context, entries []model.AuditLog) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(entries, 100).Error
}
