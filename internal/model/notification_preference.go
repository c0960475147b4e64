package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationPreference holds per-user flags for notification types.
// Delivery is out of scope; the row is only read and updated.
type NotificationPreference struct {
	ID               uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID           uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex"`
	PollOpened       bool      `json:"poll_opened" gorm:"default:true"`
	PollClosing      bool      `json:"poll_closing" gorm:"default:true"`
	ResultsPublished bool      `json:"results_published" gorm:"default:true"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (n *NotificationPreference) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
