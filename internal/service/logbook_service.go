package service

import (
	"time"

	"basemap/internal/apperrors"
	"basemap/internal/domain"
	"basemap/internal/models"
	"basemap/internal/repository"
)

// LogbookService manages a user's private jump log.
type LogbookService struct {
	logbook *repository.LogbookRepository
}

func NewLogbookService(logbook *repository.LogbookRepository) *LogbookService {
	return &LogbookService{logbook: logbook}
}

// LogbookEntryInput carries logbook fields; LocationName is required on
// create, everything else optional.
type LogbookEntryInput struct {
	LocationName *string `json:"location_name"`
	ExitType     *string `json:"exit_type"`
	DelaySeconds *int    `json:"delay_seconds"`
	JumpDate     *string `json:"jump_date"`
	Details      *string `json:"details"`
}

func (in *LogbookEntryInput) validate() error {
	if in.ExitType != nil && !domain.IsValidExitType(*in.ExitType) {
		return apperrors.InvalidInput("exit_type must be one of Building, Antenna, Span, Earth")
	}
	if in.DelaySeconds != nil && *in.DelaySeconds < 0 {
		return apperrors.InvalidInput("delay_seconds must not be negative")
	}
	if in.JumpDate != nil {
		if _, err := time.Parse("2006-01-02", *in.JumpDate); err != nil {
			return apperrors.InvalidInput("jump_date must be formatted YYYY-MM-DD")
		}
	}
	return nil
}

func (s *LogbookService) Create(userID string, in LogbookEntryInput) (*models.LogbookEntry, error) {
	if in.LocationName == nil || *in.LocationName == "" {
		return nil, apperrors.InvalidInput("location_name is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	entry := &models.LogbookEntry{
		UserID:       userID,
		LocationName: *in.LocationName,
		ExitType:     in.ExitType,
		DelaySeconds: in.DelaySeconds,
		JumpDate:     in.JumpDate,
		Details:      in.Details,
	}
	if err := s.logbook.Create(entry); err != nil {
		return nil, apperrors.Upstream("failed to create logbook entry", err)
	}
	return entry, nil
}

func (s *LogbookService) Update(userID, id string, in LogbookEntryInput) (*models.LogbookEntry, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	entry, err := s.logbook.GetOwned(id, userID)
	if err != nil {
		return nil, apperrors.Upstream("failed to fetch logbook entry", err)
	}
	if entry == nil {
		return nil, apperrors.NotFound("logbook entry not found")
	}

	fields := map[string]interface{}{}
	if in.LocationName != nil {
		if *in.LocationName == "" {
			return nil, apperrors.InvalidInput("location_name must not be empty")
		}
		fields["location_name"] = *in.LocationName
	}
	if in.ExitType != nil {
		fields["exit_type"] = *in.ExitType
	}
	if in.DelaySeconds != nil {
		fields["delay_seconds"] = *in.DelaySeconds
	}
	if in.JumpDate != nil {
		fields["jump_date"] = *in.JumpDate
	}
	if in.Details != nil {
		fields["details"] = *in.Details
	}
	if len(fields) == 0 {
		return nil, apperrors.InvalidInput("at least one field must be provided for update")
	}
	if err := s.logbook.UpdateFields(id, fields); err != nil {
		return nil, apperrors.Upstream("failed to update logbook entry", err)
	}
	updated, err := s.logbook.GetOwned(id, userID)
	if err != nil {
		return nil, apperrors.Upstream("failed to fetch logbook entry", err)
	}
	return updated, nil
}

func (s *LogbookService) Delete(userID, id string) error {
	entry, err := s.logbook.GetOwned(id, userID)
	if err != nil {
		return apperrors.Upstream("failed to fetch logbook entry", err)
	}
	if entry == nil {
		return apperrors.NotFound("logbook entry not found")
	}
	if err := s.logbook.Delete(id); err != nil {
		return apperrors.Upstream("failed to delete logbook entry", err)
	}
	return nil
}

func (s *LogbookService) List(userID string, limit, offset int) ([]models.LogbookEntry, int64, error) {
	list, total, err := s.logbook.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Upstream("failed to fetch logbook entries", err)
	}
	return list, total, nil
}
