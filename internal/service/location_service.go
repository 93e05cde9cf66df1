package service

import (
	"basemap/internal/apperrors"
	"basemap/internal/models"
	"basemap/internal/repository"
)

// LocationService serves the public location directory plus the admin-only
// direct mutations that bypass the submission pipeline.
type LocationService struct {
	locations *repository.LocationRepository
}

func NewLocationService(locations *repository.LocationRepository) *LocationService {
	return &LocationService{locations: locations}
}

// List returns all visible locations matching the filter.
func (s *LocationService) List(f repository.LocationFilter) ([]models.Location, error) {
	list, err := s.locations.List(f)
	if err != nil {
		return nil, apperrors.Upstream("failed to fetch locations", err)
	}
	return list, nil
}

// Get returns one location by id, hidden or not. Hidden rows stay reachable
// by direct id so already-shared links keep working.
func (s *LocationService) Get(id uint) (*models.Location, error) {
	loc, err := s.locations.GetByID(id)
	if err != nil {
		return nil, apperrors.Upstream("failed to fetch location", err)
	}
	if loc == nil {
		return nil, apperrors.NotFound("location not found")
	}
	return loc, nil
}

// CreateLocationInput is a direct admin insert: name and coordinates are
// mandatory, the rest optional.
type CreateLocationInput struct {
	Name          string   `json:"name"`
	Country       *string  `json:"country"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	RockDropFt    *int     `json:"rock_drop_ft"`
	TotalHeightFt *int     `json:"total_height_ft"`
	CliffAspect   *string  `json:"cliff_aspect"`
	AnchorInfo    *string  `json:"anchor_info"`
	AccessInfo    *string  `json:"access_info"`
	Notes         *string  `json:"notes"`
	OpenedByName  *string  `json:"opened_by_name"`
	OpenedDate    *string  `json:"opened_date"`
	VideoLink     *string  `json:"video_link"`
	Hidden        bool     `json:"hidden"`
}

// Create inserts a location directly, bypassing the submission pipeline.
func (s *LocationService) Create(adminID string, in CreateLocationInput) (*models.Location, error) {
	if in.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if in.Latitude == nil || in.Longitude == nil {
		return nil, apperrors.InvalidInput("latitude and longitude are required")
	}
	if err := validateCoordinates(*in.Latitude, *in.Longitude); err != nil {
		return nil, err
	}
	if err := validateHeights(in.RockDropFt, in.TotalHeightFt); err != nil {
		return nil, err
	}
	loc := &models.Location{
		Name:          in.Name,
		Country:       in.Country,
		Latitude:      *in.Latitude,
		Longitude:     *in.Longitude,
		RockDropFt:    in.RockDropFt,
		TotalHeightFt: in.TotalHeightFt,
		CliffAspect:   in.CliffAspect,
		AnchorInfo:    in.AnchorInfo,
		AccessInfo:    in.AccessInfo,
		Notes:         in.Notes,
		OpenedByName:  in.OpenedByName,
		OpenedDate:    in.OpenedDate,
		VideoLink:     in.VideoLink,
		Hidden:        in.Hidden,
		CreatedBy:     &adminID,
	}
	if err := s.locations.Create(loc); err != nil {
		return nil, apperrors.Upstream("failed to create location", err)
	}
	return loc, nil
}

// AdminUpdateInput is a partial direct edit of a location row.
type AdminUpdateInput struct {
	SubmissionFields
	Hidden *bool `json:"hidden"`
}

// Update applies an admin edit directly, skipping the submission pipeline.
func (s *LocationService) Update(adminID string, id uint, in AdminUpdateInput) (*models.Location, error) {
	loc, err := s.locations.GetByID(id)
	if err != nil {
		return nil, apperrors.Upstream("failed to fetch location", err)
	}
	if loc == nil {
		return nil, apperrors.NotFound("location not found")
	}
	if in.Latitude != nil || in.Longitude != nil {
		lat, lng := loc.Latitude, loc.Longitude
		if in.Latitude != nil {
			lat = *in.Latitude
		}
		if in.Longitude != nil {
			lng = *in.Longitude
		}
		if err := validateCoordinates(lat, lng); err != nil {
			return nil, err
		}
	}
	if err := validateHeights(in.RockDropFt, in.TotalHeightFt); err != nil {
		return nil, err
	}

	fields := (&UpdateSubmissionInput{SubmissionFields: in.SubmissionFields}).fieldMap()
	if in.Hidden != nil {
		fields["hidden"] = *in.Hidden
	}
	if len(fields) == 0 {
		return nil, apperrors.InvalidInput("at least one field must be provided for update")
	}
	fields["updated_by"] = adminID
	if err := s.locations.Update(id, fields); err != nil {
		return nil, apperrors.Upstream("failed to update location", err)
	}
	updated, err := s.locations.GetByID(id)
	if err != nil {
		return nil, apperrors.Upstream("failed to fetch location", err)
	}
	return updated, nil
}

// DeleteResult reports what a hard delete left dangling.
type DeleteResult struct {
	SavedReferences      int64 `json:"saved_references"`
	SubmissionReferences int64 `json:"submission_references"`
}

// Delete hard-deletes a location. Saved-list rows and update submissions that
// referenced it are left in place; the counts are returned so the caller can
// warn about them.
func (s *LocationService) Delete(id uint) (*DeleteResult, error) {
	loc, err := s.locations.GetByID(id)
	if err != nil {
		return nil, apperrors.Upstream("failed to fetch location", err)
	}
	if loc == nil {
		return nil, apperrors.NotFound("location not found")
	}
	saved, subs, err := s.locations.CountReferences(id)
	if err != nil {
		return nil, apperrors.Upstream("failed to count references", err)
	}
	if err := s.locations.Delete(id); err != nil {
		return nil, apperrors.Upstream("failed to delete location", err)
	}
	return &DeleteResult{SavedReferences: saved, SubmissionReferences: subs}, nil
}
