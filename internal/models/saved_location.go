package models

import (
	"time"
)

// SavedLocation is a user's favorite; unique per (user, location).
type SavedLocation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"type:char(36);not null;index:idx_saved_user_location,unique" json:"user_id"`
	LocationID uint      `gorm:"not null;index:idx_saved_user_location,unique" json:"location_id"`
	CreatedAt  time.Time `json:"created_at"`

	Location Location `gorm:"foreignKey:LocationID" json:"-"`
}

func (SavedLocation) TableName() string {
	return "user_saved_locations"
}
