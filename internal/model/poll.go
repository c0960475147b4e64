package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PollStatus represents the lifecycle state of a poll.
type PollStatus string

const (
	PollStatusDraft     PollStatus = "draft"
	PollStatusScheduled PollStatus = "scheduled"
	PollStatusActive    PollStatus = "active"
	PollStatusClosed    PollStatus = "closed"
)

// statusRank orders lifecycle states; transitions only move forward except
// explicit admin override.
var statusRank = map[PollStatus]int{
	PollStatusDraft:     0,
	PollStatusScheduled: 1,
	PollStatusActive:    2,
	PollStatusClosed:    3,
}

// Valid reports whether s is a known lifecycle state.
func (s PollStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// ForwardOf reports whether s is strictly later in the lifecycle than other.
func (s PollStatus) ForwardOf(other PollStatus) bool {
	return statusRank[s] > statusRank[other]
}

// Poll represents a question with discrete options open for votes during a
// time window.
type Poll struct {
	ID          uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Status      PollStatus     `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`
	StartTime   *time.Time     `json:"start_time"`
	EndTime     *time.Time     `json:"end_time"`
	CreatedBy   uuid.UUID      `json:"created_by" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Creator User         `json:"-" gorm:"foreignKey:CreatedBy"`
	Options []PollOption `json:"options,omitempty" gorm:"foreignKey:PollID"`
	Media   []PollMedia  `json:"media,omitempty" gorm:"foreignKey:PollID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Poll) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PollOption represents an option within a poll.
type PollOption struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	PollID    uuid.UUID      `json:"poll_id" gorm:"type:char(36);not null;index"`
	Label     string         `json:"label" gorm:"size:500;not null"`
	Position  int            `json:"position" gorm:"not null;default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Media []OptionMedia `json:"media,omitempty" gorm:"foreignKey:OptionID"`
}

// BeforeCreate sets UUID before creating the record.
func (o *PollOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
