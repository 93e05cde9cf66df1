package service

import (
	"log"
	"time"

	"basemap/internal/apperrors"
	"basemap/internal/domain"
	"basemap/internal/models"
	"basemap/internal/repository"
)

// SubscriptionService syncs profile subscription state with RevenueCat.
type SubscriptionService struct {
	profiles *repository.ProfileRepository
}

func NewSubscriptionService(profiles *repository.ProfileRepository) *SubscriptionService {
	return &SubscriptionService{profiles: profiles}
}

// WebhookEvent is the inner event object of a RevenueCat webhook payload.
type WebhookEvent struct {
	Type           string `json:"type"`
	AppUserID      string `json:"app_user_id"`
	PeriodType     string `json:"period_type"`
	ExpirationAtMs int64  `json:"expiration_at_ms"`
	ProductID      string `json:"product_id"`
}

// WebhookPayload is the RevenueCat webhook envelope.
type WebhookPayload struct {
	Event WebhookEvent `json:"event"`
}

// HandleWebhook applies a billing event to the matching profile. Unknown
// event types and unknown users are acknowledged without processing so
// RevenueCat does not retry them forever.
func (s *SubscriptionService) HandleWebhook(ev WebhookEvent) (bool, error) {
	var status string
	switch ev.Type {
	case "INITIAL_PURCHASE", "RENEWAL", "PRODUCT_CHANGE":
		if ev.PeriodType == "TRIAL" {
			status = domain.SubscriptionStatusTrial
		} else {
			status = domain.SubscriptionStatusActive
		}
	case "CANCELLATION":
		// Access persists until the paid period runs out; EXPIRATION
		// downgrades later.
		status = domain.SubscriptionStatusActive
	case "UNCANCELLATION":
		status = domain.SubscriptionStatusActive
	case "EXPIRATION":
		status = domain.SubscriptionStatusExpired
	default:
		log.Printf("subscription: ignoring webhook event type %s", ev.Type)
		return false, nil
	}

	if ev.AppUserID == "" {
		return false, apperrors.InvalidInput("app_user_id is required")
	}
	p, err := s.profiles.GetByID(ev.AppUserID)
	if err != nil {
		return false, apperrors.Upstream("failed to fetch profile", err)
	}
	if p == nil {
		log.Printf("subscription: webhook for unknown user %s", ev.AppUserID)
		return false, nil
	}

	now := time.Now()
	fields := map[string]interface{}{
		"subscription_status":     status,
		"subscription_updated_at": now,
		"revenuecat_customer_id":  ev.AppUserID,
	}
	if ev.ExpirationAtMs > 0 {
		fields["subscription_expires_at"] = time.UnixMilli(ev.ExpirationAtMs)
	}
	if err := s.profiles.Update(p.ID, fields); err != nil {
		return false, apperrors.Upstream("failed to update subscription", err)
	}
	return true, nil
}

// Restore links a RevenueCat customer id to the caller's profile, for
// purchases made before the account existed or on another device. A customer
// id already linked to a different profile conflicts.
func (s *SubscriptionService) Restore(userID, customerID string) (*models.Profile, error) {
	if customerID == "" {
		return nil, apperrors.InvalidInput("customer_id is required")
	}
	other, err := s.profiles.FindByRevenueCatCustomerID(customerID, userID)
	if err != nil {
		return nil, apperrors.Upstream("failed to check customer id", err)
	}
	if other != nil {
		return nil, apperrors.Conflict("this purchase is already linked to another account")
	}
	now := time.Now()
	fields := map[string]interface{}{
		"revenuecat_customer_id":  customerID,
		"subscription_updated_at": now,
	}
	if err := s.profiles.Update(userID, fields); err != nil {
		return nil, apperrors.Upstream("failed to link customer id", err)
	}
	p, err := s.profiles.GetByID(userID)
	if err != nil {
		return nil, apperrors.Upstream("failed to fetch profile", err)
	}
	if p == nil {
		return nil, apperrors.NotFound("profile not found")
	}
	return p, nil
}
