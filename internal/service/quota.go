package service

import (
	"fmt"
	"log"
	"time"

	"basemap/internal/domain"
)

// SubmissionLimits is the quota snapshot shown to the client before it
// attempts a submission.
type SubmissionLimits struct {
	MaxPendingSubmissions   int    `json:"max_pending_submissions"`
	CurrentPendingCount     int64  `json:"current_pending_count"`
	MaxDailySubmissions     int    `json:"max_daily_submissions"`
	CurrentDailyCount       int64  `json:"current_daily_count"`
	CanSubmit               bool   `json:"can_submit"`
	NextSubmissionAvailable string `json:"next_submission_available"`
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// canSubmit enforces both quotas. Count failures fail open: a broken counter
// must not block submissions.
func (s *SubmissionService) canSubmit(userID string) (bool, string) {
	pending, err := s.submissions.CountPending(userID)
	if err != nil {
		log.Printf("quota: pending count failed for %s: %v", userID, err)
		return true, ""
	}
	if pending >= int64(domain.MaxPendingSubmissions) {
		return false, fmt.Sprintf(
			"You have reached the maximum of %d pending submissions. Please wait for review before submitting more.",
			domain.MaxPendingSubmissions)
	}
	daily, err := s.submissions.CountCreatedSince(userID, startOfToday())
	if err != nil {
		log.Printf("quota: daily count failed for %s: %v", userID, err)
		return true, ""
	}
	if daily >= int64(domain.MaxDailySubmissions) {
		return false, fmt.Sprintf(
			"You have reached the daily limit of %d submissions. Please try again tomorrow.",
			domain.MaxDailySubmissions)
	}
	return true, ""
}

// CheckLimits reports the caller's current quota usage.
func (s *SubmissionService) CheckLimits(userID string) (*SubmissionLimits, error) {
	pending, err := s.submissions.CountPending(userID)
	if err != nil {
		log.Printf("quota: pending count failed for %s: %v", userID, err)
		pending = 0
	}
	daily, err := s.submissions.CountCreatedSince(userID, startOfToday())
	if err != nil {
		log.Printf("quota: daily count failed for %s: %v", userID, err)
		daily = 0
	}

	limits := &SubmissionLimits{
		MaxPendingSubmissions: domain.MaxPendingSubmissions,
		CurrentPendingCount:   pending,
		MaxDailySubmissions:   domain.MaxDailySubmissions,
		CurrentDailyCount:     daily,
	}
	limits.CanSubmit = pending < int64(domain.MaxPendingSubmissions) &&
		daily < int64(domain.MaxDailySubmissions)
	if limits.CanSubmit {
		limits.NextSubmissionAvailable = "now"
	} else {
		tomorrow := startOfToday().AddDate(0, 0, 1)
		limits.NextSubmissionAvailable = tomorrow.Format(time.RFC3339)
	}
	return limits, nil
}
