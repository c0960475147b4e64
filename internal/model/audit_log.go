package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog records an administrative or voting action. Entries are written
// asynchronously in batches.
type AuditLog struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	ActorID    uuid.UUID `json:"actor_id" gorm:"type:char(36);not null;index"`
	Action     string    `json:"action" gorm:"size:100;not null;index"`
	EntityType string    `json:"entity_type" gorm:"size:50;not null"`
	EntityID   uuid.UUID `json:"entity_id" gorm:"type:char(36);index"`
	Detail     string    `json:"detail,omitempty" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
