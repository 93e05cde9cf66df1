package models

import (
	"time"
)

// Profile mirrors one identity in the external auth provider; the ID is the
// provider's user UUID. Role and subscription state live here, not in the
// provider.
type Profile struct {
	ID                    string     `gorm:"type:char(36);primaryKey" json:"id"`
	Email                 string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name                  *string    `gorm:"size:100" json:"name"`
	Username              *string    `gorm:"size:30;uniqueIndex" json:"username"`
	JumpNumber            int        `gorm:"default:0" json:"jump_number"`
	Role                  string     `gorm:"size:20;not null;default:USER;index" json:"role"` // USER | ADMIN | SUPERUSER
	SubscriptionStatus    string     `gorm:"size:20;not null;default:free" json:"subscription_status"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at"`
	SubscriptionUpdatedAt *time.Time `json:"subscription_updated_at"`
	RevenueCatCustomerID  *string    `gorm:"column:revenuecat_customer_id;size:255;index" json:"revenuecat_customer_id"`
	FCMToken              string     `gorm:"size:512" json:"-"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
