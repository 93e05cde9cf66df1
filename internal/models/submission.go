package models

import (
	"time"

	"basemap/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission is a user-proposed new location or update to an existing one.
// It stays owned by the submitting user while pending; review makes it
// immutable.
type Submission struct {
	ID                 string     `gorm:"type:char(36);primaryKey" json:"id"`
	UserID             string     `gorm:"type:char(36);not null;index" json:"user_id"`
	Name               string     `gorm:"size:255;not null" json:"name"`
	Country            *string    `gorm:"size:100" json:"country"`
	Latitude           float64    `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude          float64    `gorm:"type:decimal(11,8);not null" json:"longitude"`
	RockDropFt         *int       `json:"rock_drop_ft"`
	TotalHeightFt      *int       `json:"total_height_ft"`
	CliffAspect        *string    `gorm:"size:50" json:"cliff_aspect"`
	AnchorInfo         *string    `gorm:"type:text" json:"anchor_info"`
	AccessInfo         *string    `gorm:"type:text" json:"access_info"`
	Notes              *string    `gorm:"type:text" json:"notes"`
	OpenedByName       *string    `gorm:"size:255" json:"opened_by_name"`
	OpenedDate         *string    `gorm:"size:10" json:"opened_date"`
	VideoLink          *string    `gorm:"size:512" json:"video_link"`
	SubmissionType     string     `gorm:"size:10;not null;index" json:"submission_type"` // new | update
	ExistingLocationID *uint      `gorm:"index" json:"existing_location_id"`
	Status             string     `gorm:"size:10;not null;default:pending;index" json:"status"` // pending | approved | rejected
	AdminNotes         *string    `gorm:"type:text" json:"admin_notes"`
	ReviewedAt         *time.Time `json:"reviewed_at"`
	ReviewedBy         *string    `gorm:"type:char(36)" json:"reviewed_by"`
	CreatedAt          time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	Images []SubmissionImage `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Submission) TableName() string {
	return "location_submissions"
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = domain.SubmissionStatusPending
	}
	return nil
}

// SubmissionImage is one photo attached to a submission. ImageOrder preserves
// the order the client sent the URLs in.
type SubmissionImage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubmissionID string    `gorm:"type:char(36);not null;index" json:"submission_id"`
	ImageURL     string    `gorm:"size:512;not null" json:"image_url"`
	ImageOrder   int       `gorm:"not null" json:"image_order"`
	CreatedAt    time.Time `json:"created_at"`
}

func (SubmissionImage) TableName() string {
	return "location_submission_images"
}
