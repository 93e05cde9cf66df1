package service

import (
	"context"
	"log"

	"basemap/internal/apperrors"
	"basemap/internal/identity"
	"basemap/internal/repository"

	"gorm.io/gorm"
)

// AccountService deletes an account and everything it owns: app data first,
// then the identity provider record.
type AccountService struct {
	db            *gorm.DB
	profiles      *repository.ProfileRepository
	submissions   *repository.SubmissionRepository
	saved         *repository.SavedLocationRepository
	logbook       *repository.LogbookRepository
	notifications *repository.NotificationRepository
	deleter       identity.Deleter
}

func NewAccountService(
	db *gorm.DB,
	profiles *repository.ProfileRepository,
	submissions *repository.SubmissionRepository,
	saved *repository.SavedLocationRepository,
	logbook *repository.LogbookRepository,
	notifications *repository.NotificationRepository,
	deleter identity.Deleter,
) *AccountService {
	return &AccountService{
		db:            db,
		profiles:      profiles,
		submissions:   submissions,
		saved:         saved,
		logbook:       logbook,
		notifications: notifications,
		deleter:       deleter,
	}
}

// DeleteAccount removes all app data in one transaction, then asks the
// identity provider to drop the account. A provider failure after local
// cleanup is logged, not surfaced: the orphaned identity record can no longer
// reach any data and re-auth simply recreates an empty profile.
func (s *AccountService) DeleteAccount(ctx context.Context, userID string) error {
	p, err := s.profiles.GetByID(userID)
	if err != nil {
		return apperrors.Upstream("failed to fetch profile", err)
	}
	if p == nil {
		return apperrors.NotFound("profile not found")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.submissions.WithTx(tx).DeleteByUser(userID); err != nil {
			return err
		}
		if err := s.saved.WithTx(tx).DeleteByUser(userID); err != nil {
			return err
		}
		if err := s.logbook.WithTx(tx).DeleteByUser(userID); err != nil {
			return err
		}
		if err := s.notifications.WithTx(tx).DeleteByUser(userID); err != nil {
			return err
		}
		return s.profiles.WithTx(tx).Delete(userID)
	})
	if err != nil {
		return apperrors.Upstream("failed to delete account data", err)
	}

	if s.deleter != nil {
		if err := s.deleter.DeleteIdentity(ctx, userID); err != nil {
			log.Printf("account: identity deletion failed for %s: %v", userID, err)
		}
	}
	return nil
}
