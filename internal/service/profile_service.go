package service

import (
	"regexp"

	"basemap/internal/apperrors"
	"basemap/internal/domain"
	"basemap/internal/models"
	"basemap/internal/repository"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

const maxJumpNumber = 10000

// ProfileService manages the app-side profile row that mirrors each identity
// provider account.
type ProfileService struct {
	profiles *repository.ProfileRepository
}

func NewProfileService(profiles *repository.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// EnsureProfile returns the profile for an authenticated identity, creating
// it on first contact. New profiles start as free-tier users.
func (s *ProfileService) EnsureProfile(userID, email string) (*models.Profile, error) {
	p, err := s.profiles.GetByID(userID)
	if err != nil {
		return nil, apperrors.Upstream("failed to fetch profile", err)
	}
	if p != nil {
		return p, nil
	}
	p = &models.Profile{
		ID:                 userID,
		Email:              email,
		Role:               domain.RoleUser,
		SubscriptionStatus: domain.SubscriptionStatusFree,
	}
	if err := s.profiles.Create(p); err != nil {
		// Concurrent first requests can race the insert; reread.
		if existing, gerr := s.profiles.GetByID(userID); gerr == nil && existing != nil {
			return existing, nil
		}
		return nil, apperrors.Upstream("failed to create profile", err)
	}
	return p, nil
}

func (s *ProfileService) Get(userID string) (*models.Profile, error) {
	p, err := s.profiles.GetByID(userID)
	if err != nil {
		return nil, apperrors.Upstream("failed to fetch profile", err)
	}
	if p == nil {
		return nil, apperrors.NotFound("profile not found")
	}
	return p, nil
}

// UpdateProfileInput is a partial profile edit.
type UpdateProfileInput struct {
	Name       *string `json:"name"`
	Username   *string `json:"username"`
	JumpNumber *int    `json:"jump_number"`
}

func (s *ProfileService) Update(userID string, in UpdateProfileInput) (*models.Profile, error) {
	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Username != nil {
		if !usernameRe.MatchString(*in.Username) {
			return nil, apperrors.InvalidInput("username must be 3-30 characters of letters, digits or underscores")
		}
		taken, err := s.profiles.UsernameTaken(*in.Username, userID)
		if err != nil {
			return nil, apperrors.Upstream("failed to check username", err)
		}
		if taken {
			return nil, apperrors.Conflict("username already taken")
		}
		fields["username"] = *in.Username
	}
	if in.JumpNumber != nil {
		if *in.JumpNumber < 0 || *in.JumpNumber > maxJumpNumber {
			return nil, apperrors.InvalidInput("jump_number must be between 0 and 10000")
		}
		fields["jump_number"] = *in.JumpNumber
	}
	if len(fields) == 0 {
		return nil, apperrors.InvalidInput("at least one field must be provided for update")
	}
	if err := s.profiles.Update(userID, fields); err != nil {
		return nil, apperrors.Upstream("failed to update profile", err)
	}
	return s.Get(userID)
}

// RegisterFCMToken stores the device push token for the user.
func (s *ProfileService) RegisterFCMToken(userID, token string) error {
	if token == "" {
		return apperrors.InvalidInput("fcm_token is required")
	}
	if err := s.profiles.Update(userID, map[string]interface{}{"fcm_token": token}); err != nil {
		return apperrors.Upstream("failed to register FCM token", err)
	}
	return nil
}
