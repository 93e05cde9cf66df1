package models

import (
	"time"
)

// Location is a published jump site in the directory. Rows are created either
// directly by an admin or by approving a "new" submission.
type Location struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	Name          string   `gorm:"size:255;not null;index" json:"name"`
	Country       *string  `gorm:"size:100;index" json:"country"`
	Latitude      float64  `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude     float64  `gorm:"type:decimal(11,8);not null" json:"longitude"`
	RockDropFt    *int     `json:"rock_drop_ft"`
	TotalHeightFt *int     `gorm:"index" json:"total_height_ft"`
	CliffAspect   *string  `gorm:"size:50" json:"cliff_aspect"`
	AnchorInfo    *string  `gorm:"type:text" json:"anchor_info"`
	AccessInfo    *string  `gorm:"type:text" json:"access_info"`
	Notes         *string  `gorm:"type:text" json:"notes"`
	OpenedByName  *string  `gorm:"size:255" json:"opened_by_name"`
	OpenedDate    *string  `gorm:"size:10" json:"opened_date"`
	VideoLink     *string  `gorm:"size:512" json:"video_link"`
	Hidden        bool     `gorm:"default:false" json:"hidden"`
	CreatedBy     *string  `gorm:"type:char(36)" json:"created_by"`
	UpdatedBy     *string  `gorm:"type:char(36)" json:"updated_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Location) TableName() string {
	return "locations"
}
