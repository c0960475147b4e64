package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vote records a single user's choice in a poll. The composite unique index
// on (poll_id, user_id) holds the one-vote-per-poll invariant; the voting
// flow never updates or deletes rows.
type Vote struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	PollID    uuid.UUID `json:"poll_id" gorm:"type:char(36);not null;uniqueIndex:idx_votes_poll_user,priority:1"`
	OptionID  uuid.UUID `json:"option_id" gorm:"type:char(36);not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_votes_poll_user,priority:2"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
