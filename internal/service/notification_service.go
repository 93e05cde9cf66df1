package service

import (
	"context"
	"encoding/json"
	"log"

	"basemap/internal/apperrors"
	"basemap/internal/domain"
	"basemap/internal/models"
	"basemap/internal/repository"
)

type NotificationService struct {
	repo     *repository.NotificationRepository
	profiles *repository.ProfileRepository
	fcm      *FCMService
}

func NewNotificationService(repo *repository.NotificationRepository, profiles *repository.ProfileRepository, fcm *FCMService) *NotificationService {
	return &NotificationService{repo: repo, profiles: profiles, fcm: fcm}
}

func (s *NotificationService) Notify(userID, notifType, title, body string, data map[string]string) error {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	err := s.repo.Create(&models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   dataJSON,
	})
	if err != nil {
		return err
	}
	// Push via FCM
	s.sendPush(userID, notifType, title, body, data)
	return nil
}

func (s *NotificationService) sendPush(userID, notifType, title, body string, data map[string]string) {
	if s.fcm == nil || s.profiles == nil {
		return
	}
	p, err := s.profiles.GetByID(userID)
	if err != nil || p == nil || p.FCMToken == "" {
		return
	}
	_ = s.fcm.Push(context.Background(), p.FCMToken, notifType, title, body, data)
}

// NotifySubmissionReviewed tells the submitter how their submission came out.
// A failed notification never fails the review itself.
func (s *NotificationService) NotifySubmissionReviewed(userID, submissionID, locationName, status string, adminNotes *string) {
	var title, body string
	if status == domain.SubmissionStatusApproved {
		title = "Submission approved"
		body = "Your submission for " + locationName + " has been approved"
	} else {
		title = "Submission reviewed"
		body = "Your submission for " + locationName + " was not approved"
	}
	data := map[string]string{"submission_id": submissionID, "status": status}
	if adminNotes != nil && *adminNotes != "" {
		data["admin_notes"] = *adminNotes
	}
	if err := s.Notify(userID, "SUBMISSION_REVIEWED", title, body, data); err != nil {
		log.Printf("notify: submission review push failed for %s: %v", userID, err)
	}
}

// List returns a page of a user's notifications.
func (s *NotificationService) List(userID string, limit, offset int) ([]models.Notification, int64, error) {
	list, total, err := s.repo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Upstream("failed to fetch notifications", err)
	}
	return list, total, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(userID string, id uint) error {
	affected, err := s.repo.MarkRead(id, userID)
	if err != nil {
		return apperrors.Upstream("failed to mark notification read", err)
	}
	if affected == 0 {
		return apperrors.NotFound("notification not found")
	}
	return nil
}
