package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MediaType classifies an attachment.
type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeDocument MediaType = "document"
	MediaTypeLink     MediaType = "link"
)

// PollMedia is an attachment associated with a poll: an uploaded object
// (StoragePath set) or an external link (URL only).
type PollMedia struct {
	ID          uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	PollID      uuid.UUID      `json:"poll_id" gorm:"type:char(36);not null;index"`
	MediaType   MediaType      `json:"media_type" gorm:"type:varchar(20);not null"`
	StoragePath string         `json:"storage_path,omitempty" gorm:"size:512"`
	URL         string         `json:"url,omitempty" gorm:"size:1024"`
	Description string         `json:"description,omitempty" gorm:"size:500"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (m *PollMedia) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// OptionMedia is the image attached to a specific option. The unique index
// on option_id enforces at most one image per option.
type OptionMedia struct {
	ID          uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	OptionID    uuid.UUID      `json:"option_id" gorm:"type:char(36);not null;uniqueIndex"`
	StoragePath string         `json:"storage_path" gorm:"size:512;not null"`
	URL         string         `json:"url,omitempty" gorm:"size:1024"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (m *OptionMedia) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
