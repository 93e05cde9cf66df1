package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LogbookEntry is a personal jump record. LocationName is free text so users
// can log jumps at sites not in the directory.
type LogbookEntry struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID       string    `gorm:"type:char(36);not null;index" json:"user_id"`
	LocationName string    `gorm:"size:255;not null" json:"location_name"`
	ExitType     *string   `gorm:"size:20" json:"exit_type"` // Building | Antenna | Span | Earth
	DelaySeconds *int      `json:"delay_seconds"`
	JumpDate     *string   `gorm:"size:10" json:"jump_date"` // YYYY-MM-DD
	Details      *string   `gorm:"type:text" json:"details"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (LogbookEntry) TableName() string {
	return "logbook_entries"
}

func (e *LogbookEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
