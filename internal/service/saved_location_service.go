package service

import (
	"basemap/internal/apperrors"
	"basemap/internal/models"
	"basemap/internal/repository"
)

// SavedLocationService manages a user's favorites list.
type SavedLocationService struct {
	saved     *repository.SavedLocationRepository
	locations *repository.LocationRepository
}

func NewSavedLocationService(saved *repository.SavedLocationRepository, locations *repository.LocationRepository) *SavedLocationService {
	return &SavedLocationService{saved: saved, locations: locations}
}

// Save adds a location to the user's favorites. Saving twice conflicts.
func (s *SavedLocationService) Save(userID string, locationID uint) (*models.SavedLocation, error) {
	loc, err := s.locations.GetByID(locationID)
	if err != nil {
		return nil, apperrors.Upstream("failed to fetch location", err)
	}
	if loc == nil {
		return nil, apperrors.NotFound("location not found")
	}
	already, err := s.saved.IsSaved(userID, locationID)
	if err != nil {
		return nil, apperrors.Upstream("failed to check saved state", err)
	}
	if already {
		return nil, apperrors.Conflict("location already saved")
	}
	save, err := s.saved.Add(userID, locationID)
	if err != nil {
		return nil, apperrors.Upstream("failed to save location", err)
	}
	return save, nil
}

// Unsave removes a location from the user's favorites.
func (s *SavedLocationService) Unsave(userID string, locationID uint) error {
	affected, err := s.saved.Remove(userID, locationID)
	if err != nil {
		return apperrors.Upstream("failed to remove saved location", err)
	}
	if affected == 0 {
		return apperrors.NotFound("saved location not found")
	}
	return nil
}

// List returns a page of the user's favorites, newest first.
func (s *SavedLocationService) List(userID string, limit, offset int) ([]models.SavedLocation, int64, error) {
	list, total, err := s.saved.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Upstream("failed to fetch saved locations", err)
	}
	return list, total, nil
}
