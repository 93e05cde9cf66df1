package service

import (
	"fmt"

	"basemap/internal/apperrors"
	"basemap/internal/domain"
	"basemap/internal/models"
	"basemap/internal/repository"

	"gorm.io/gorm"
)

// SubmissionService owns the submission state machine: quota-gated creation,
// owner-only mutation while pending, and admin review with materialization of
// approved submissions into the locations table.
type SubmissionService struct {
	db          *gorm.DB
	submissions *repository.SubmissionRepository
	locations   *repository.LocationRepository
	notifSvc    *NotificationService
}

func NewSubmissionService(
	db *gorm.DB,
	submissions *repository.SubmissionRepository,
	locations *repository.LocationRepository,
	notifSvc *NotificationService,
) *SubmissionService {
	return &SubmissionService{
		db:          db,
		submissions: submissions,
		locations:   locations,
		notifSvc:    notifSvc,
	}
}

// SubmissionFields are the descriptive site fields shared by create, edit and
// review override. Pointers carry presence: a non-nil pointer is "provided",
// including zero values.
type SubmissionFields struct {
	Name          *string  `json:"name"`
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
}

func (f *SubmissionFields) empty() bool {
	return f.Name == nil && f.Country == nil && f.Latitude == nil && f.Longitude == nil &&
		f.RockDropFt == nil && f.TotalHeightFt == nil && f.CliffAspect == nil &&
		f.AnchorInfo == nil && f.AccessInfo == nil && f.Notes == nil &&
		f.OpenedByName == nil && f.OpenedDate == nil && f.VideoLink == nil
}

func validateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return apperrors.InvalidInput("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return apperrors.InvalidInput("longitude must be between -180 and 180")
	}
	return nil
}

func validateHeights(rockDrop, totalHeight *int) error {
	if rockDrop != nil && *rockDrop <= 0 {
		return apperrors.InvalidInput("rock_drop_ft must be positive")
	}
	if totalHeight != nil && *totalHeight <= 0 {
		return apperrors.InvalidInput("total_height_ft must be positive")
	}
	return nil
}

// CreateSubmissionInput is a full submission: name and coordinates are
// mandatory, the rest optional.
type CreateSubmissionInput struct {
	Name               string   `json:"name"`
	Country            *string  `json:"country"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	RockDropFt         *int     `json:"rock_drop_ft"`
	TotalHeightFt      *int     `json:"total_height_ft"`
	CliffAspect        *string  `json:"cliff_aspect"`
	AnchorInfo         *string  `json:"anchor_info"`
	AccessInfo         *string  `json:"access_info"`
	Notes              *string  `json:"notes"`
	OpenedByName       *string  `json:"opened_by_name"`
	OpenedDate         *string  `json:"opened_date"`
	VideoLink          *string  `json:"video_link"`
	SubmissionType     string   `json:"submission_type"`
	ExistingLocationID *uint    `json:"existing_location_id"`
	ImageURLs          []string `json:"image_urls"`
}

// Create validates the proposal, enforces quotas and inserts the pending
// submission with its ordered images.
func (s *SubmissionService) Create(userID string, in CreateSubmissionInput) (*models.Submission, error) {
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
	switch in.SubmissionType {
	case domain.SubmissionTypeNew:
		if in.ExistingLocationID != nil {
			return nil, apperrors.InvalidInput("existing_location_id is only valid for update submissions")
		}
	case domain.SubmissionTypeUpdate:
		if in.ExistingLocationID == nil {
			return nil, apperrors.InvalidInput("an existing location ID is required for update submissions")
		}
		loc, err := s.locations.GetByID(*in.ExistingLocationID)
		if err != nil {
			return nil, apperrors.Upstream("failed to verify existing location", err)
		}
		if loc == nil {
			return nil, apperrors.NotFound("existing location not found")
		}
	default:
		return nil, apperrors.InvalidInput("submission_type must be new or update")
	}

	if allowed, reason := s.canSubmit(userID); !allowed {
		return nil, apperrors.RateLimited(reason)
	}

	sub := &models.Submission{
		UserID:             userID,
		Name:               in.Name,
		Country:            in.Country,
		Latitude:           *in.Latitude,
		Longitude:          *in.Longitude,
		RockDropFt:         in.RockDropFt,
		TotalHeightFt:      in.TotalHeightFt,
		CliffAspect:        in.CliffAspect,
		AnchorInfo:         in.AnchorInfo,
		AccessInfo:         in.AccessInfo,
		Notes:              in.Notes,
		OpenedByName:       in.OpenedByName,
		OpenedDate:         in.OpenedDate,
		VideoLink:          in.VideoLink,
		SubmissionType:     in.SubmissionType,
		ExistingLocationID: in.ExistingLocationID,
		Status:             domain.SubmissionStatusPending,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.submissions.WithTx(tx)
		if err := repo.Create(sub); err != nil {
			return err
		}
		return repo.InsertImages(sub.ID, in.ImageURLs)
	})
	if err != nil {
		return nil, apperrors.Upstream("failed to create submission", err)
	}
	return sub, nil
}

// UpdateSubmissionInput is a partial edit of a pending submission. A non-nil
// ImageURLs replaces the whole image set; an empty list clears it.
type UpdateSubmissionInput struct {
	SubmissionFields
	ImageURLs *[]string `json:"image_urls"`
}

// Update applies an owner edit to a pending submission. Missing, foreign and
// already-reviewed submissions are indistinguishable: all NotFound.
func (s *SubmissionService) Update(userID, id string, in UpdateSubmissionInput) (*models.Submission, error) {
	if in.empty() && in.ImageURLs == nil {
		return nil, apperrors.InvalidInput("at least one field must be provided for update")
	}
	if in.Latitude != nil || in.Longitude != nil {
		if in.Latitude == nil || in.Longitude == nil {
			return nil, apperrors.InvalidInput("latitude and longitude must be updated together")
		}
		if err := validateCoordinates(*in.Latitude, *in.Longitude); err != nil {
			return nil, err
		}
	}
	if err := validateHeights(in.RockDropFt, in.TotalHeightFt); err != nil {
		return nil, err
	}

	sub, err := s.submissions.GetPendingOwned(id, userID)
	if err != nil {
		return nil, apperrors.Upstream("failed to fetch submission", err)
	}
	if sub == nil {
		return nil, apperrors.NotFound("submission not found")
	}

	fields := in.fieldMap()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.submissions.WithTx(tx)
		if len(fields) > 0 {
			if err := repo.UpdateFields(id, fields); err != nil {
				return err
			}
		}
		if in.ImageURLs != nil {
			if err := repo.ReplaceImages(id, *in.ImageURLs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Upstream("failed to update submission", err)
	}
	updated, err := s.submissions.GetByID(id)
	if err != nil {
		return nil, apperrors.Upstream("failed to fetch submission", err)
	}
	return updated, nil
}

func (in *UpdateSubmissionInput) fieldMap() map[string]interface{} {
	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Country != nil {
		fields["country"] = *in.Country
	}
	if in.Latitude != nil {
		fields["latitude"] = *in.Latitude
	}
	if in.Longitude != nil {
		fields["longitude"] = *in.Longitude
	}
	if in.RockDropFt != nil {
		fields["rock_drop_ft"] = *in.RockDropFt
	}
	if in.TotalHeightFt != nil {
		fields["total_height_ft"] = *in.TotalHeightFt
	}
	if in.CliffAspect != nil {
		fields["cliff_aspect"] = *in.CliffAspect
	}
	if in.AnchorInfo != nil {
		fields["anchor_info"] = *in.AnchorInfo
	}
	if in.AccessInfo != nil {
		fields["access_info"] = *in.AccessInfo
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}
	if in.OpenedByName != nil {
		fields["opened_by_name"] = *in.OpenedByName
	}
	if in.OpenedDate != nil {
		fields["opened_date"] = *in.OpenedDate
	}
	if in.VideoLink != nil {
		fields["video_link"] = *in.VideoLink
	}
	return fields
}

// Withdraw deletes a pending submission owned by userID. Images go with it.
func (s *SubmissionService) Withdraw(userID, id string) error {
	sub, err := s.submissions.GetPendingOwned(id, userID)
	if err != nil {
		return apperrors.Upstream("failed to fetch submission", err)
	}
	if sub == nil {
		return apperrors.NotFound("submission not found")
	}
	if err := s.submissions.Delete(id); err != nil {
		return apperrors.Upstream("failed to delete submission", err)
	}
	return nil
}

// ReviewInput is the admin decision. OverrideData fields, when present,
// replace the submitted values in the materialized location; presence is
// pointer non-nilness, so zero values override too.
type ReviewInput struct {
	Status       string            `json:"status"` // approved | rejected
	AdminNotes   *string           `json:"admin_notes"`
	OverrideData *SubmissionFields `json:"override_data"`
}

// ReviewResult carries the reviewed submission and, on approval, the location
// it materialized into.
type ReviewResult struct {
	Submission      *models.Submission
	CreatedLocation *models.Location
	UpdatedLocation *models.Location
	Message         string
}

// Review transitions a pending submission to approved or rejected, exactly
// once. Approval materializes the effective field set into the locations
// table — insert for type=new, update for type=update — in the same
// transaction as the status flip. The status flip itself is a conditional
// update, so a concurrent second review fails with Conflict instead of
// double-materializing.
func (s *SubmissionService) Review(reviewerID, id string, in ReviewInput) (*ReviewResult, error) {
	if in.Status != domain.SubmissionStatusApproved && in.Status != domain.SubmissionStatusRejected {
		return nil, apperrors.InvalidInput("status must be approved or rejected")
	}
	if in.OverrideData != nil {
		if in.OverrideData.Latitude != nil || in.OverrideData.Longitude != nil {
			lat, lng := in.OverrideData.Latitude, in.OverrideData.Longitude
			if lat != nil && (*lat < -90 || *lat > 90) {
				return nil, apperrors.InvalidInput("override latitude must be between -90 and 90")
			}
			if lng != nil && (*lng < -180 || *lng > 180) {
				return nil, apperrors.InvalidInput("override longitude must be between -180 and 180")
			}
		}
		if err := validateHeights(in.OverrideData.RockDropFt, in.OverrideData.TotalHeightFt); err != nil {
			return nil, err
		}
	}

	sub, err := s.submissions.GetByID(id)
	if err != nil {
		return nil, apperrors.Upstream("failed to fetch submission", err)
	}
	if sub == nil {
		return nil, apperrors.NotFound("submission not found")
	}
	if sub.Status != domain.SubmissionStatusPending {
		return nil, apperrors.Conflict(fmt.Sprintf("submission already %s", sub.Status))
	}

	result := &ReviewResult{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		transitioned, err := s.submissions.WithTx(tx).MarkReviewed(id, in.Status, reviewerID, in.AdminNotes)
		if err != nil {
			return err
		}
		if !transitioned {
			// Lost the race to another reviewer.
			return apperrors.Conflict("submission has already been reviewed")
		}
		if in.Status != domain.SubmissionStatusApproved {
			return nil
		}

		locRepo := s.locations.WithTx(tx)
		switch sub.SubmissionType {
		case domain.SubmissionTypeNew:
			loc := s.effectiveLocation(sub, in.OverrideData)
			loc.CreatedBy = &sub.UserID
			loc.UpdatedBy = &reviewerID
			if err := locRepo.Create(loc); err != nil {
				return err
			}
			result.CreatedLocation = loc
		case domain.SubmissionTypeUpdate:
			if sub.ExistingLocationID == nil {
				return apperrors.Conflict("update submission has no target location")
			}
			fields := s.effectiveLocationFields(sub, in.OverrideData)
			fields["updated_by"] = reviewerID
			if err := locRepo.Update(*sub.ExistingLocationID, fields); err != nil {
				return err
			}
			updated, err := locRepo.GetByID(*sub.ExistingLocationID)
			if err != nil {
				return err
			}
			if updated == nil {
				return apperrors.NotFound("existing location not found")
			}
			result.UpdatedLocation = updated
		}
		return nil
	})
	if err != nil {
		if ae, ok := apperrors.As(err); ok {
			return nil, ae
		}
		return nil, apperrors.Upstream("failed to review submission", err)
	}

	reviewed, err := s.submissions.GetByID(id)
	if err != nil {
		return nil, apperrors.Upstream("failed to fetch submission", err)
	}
	result.Submission = reviewed

	switch {
	case result.CreatedLocation != nil:
		result.Message = "Submission approved and location created"
	case result.UpdatedLocation != nil:
		result.Message = "Submission approved and location updated"
	case in.Status == domain.SubmissionStatusApproved:
		result.Message = "Submission approved"
	default:
		result.Message = "Submission rejected"
	}

	if s.notifSvc != nil {
		s.notifSvc.NotifySubmissionReviewed(sub.UserID, sub.ID, sub.Name, in.Status, in.AdminNotes)
	}
	return result, nil
}

// effectiveLocation merges override over the submitted values into a fresh
// location row.
func (s *SubmissionService) effectiveLocation(sub *models.Submission, o *SubmissionFields) *models.Location {
	loc := &models.Location{
		Name:          sub.Name,
		Country:       sub.Country,
		Latitude:      sub.Latitude,
		Longitude:     sub.Longitude,
		RockDropFt:    sub.RockDropFt,
		TotalHeightFt: sub.TotalHeightFt,
		CliffAspect:   sub.CliffAspect,
		AnchorInfo:    sub.AnchorInfo,
		AccessInfo:    sub.AccessInfo,
		Notes:         sub.Notes,
		OpenedByName:  sub.OpenedByName,
		OpenedDate:    sub.OpenedDate,
		VideoLink:     sub.VideoLink,
	}
	if o == nil {
		return loc
	}
	if o.Name != nil {
		loc.Name = *o.Name
	}
	if o.Country != nil {
		loc.Country = o.Country
	}
	if o.Latitude != nil {
		loc.Latitude = *o.Latitude
	}
	if o.Longitude != nil {
		loc.Longitude = *o.Longitude
	}
	if o.RockDropFt != nil {
		loc.RockDropFt = o.RockDropFt
	}
	if o.TotalHeightFt != nil {
		loc.TotalHeightFt = o.TotalHeightFt
	}
	if o.CliffAspect != nil {
		loc.CliffAspect = o.CliffAspect
	}
	if o.AnchorInfo != nil {
		loc.AnchorInfo = o.AnchorInfo
	}
	if o.AccessInfo != nil {
		loc.AccessInfo = o.AccessInfo
	}
	if o.Notes != nil {
		loc.Notes = o.Notes
	}
	if o.OpenedByName != nil {
		loc.OpenedByName = o.OpenedByName
	}
	if o.OpenedDate != nil {
		loc.OpenedDate = o.OpenedDate
	}
	if o.VideoLink != nil {
		loc.VideoLink = o.VideoLink
	}
	return loc
}

// effectiveLocationFields is the map form of effectiveLocation, for updating
// an existing row in place.
func (s *SubmissionService) effectiveLocationFields(sub *models.Submission, o *SubmissionFields) map[string]interface{} {
	loc := s.effectiveLocation(sub, o)
	return map[string]interface{}{
		"name":            loc.Name,
		"country":         loc.Country,
		"latitude":        loc.Latitude,
		"longitude":       loc.Longitude,
		"rock_drop_ft":    loc.RockDropFt,
		"total_height_ft": loc.TotalHeightFt,
		"cliff_aspect":    loc.CliffAspect,
		"anchor_info":     loc.AnchorInfo,
		"access_info":     loc.AccessInfo,
		"notes":           loc.Notes,
		"opened_by_name":  loc.OpenedByName,
		"opened_date":     loc.OpenedDate,
		"video_link":      loc.VideoLink,
	}
}

// SubmissionView is a submission with images flattened to ordered URLs and
// the target location's name joined in for update submissions.
type SubmissionView struct {
	models.Submission
	Images               []string `json:"images"`
	ExistingLocationName *string  `json:"existing_location_name"`
}

// SubmissionPage is one page of a submission listing.
type SubmissionPage struct {
	Submissions []SubmissionView `json:"submissions"`
	TotalCount  int64            `json:"total_count"`
	HasMore     bool             `json:"has_more"`
}

// List returns a page of submissions matching the filter.
func (s *SubmissionService) List(f repository.SubmissionFilter) (*SubmissionPage, error) {
	list, total, err := s.submissions.List(f)
	if err != nil {
		return nil, apperrors.Upstream("failed to fetch submissions", err)
	}
	views := make([]SubmissionView, len(list))
	for i := range list {
		views[i] = s.toView(&list[i])
	}
	return &SubmissionPage{
		Submissions: views,
		TotalCount:  total,
		HasMore:     total > int64(f.Offset+f.Limit),
	}, nil
}

// Get returns one submission view for its owner, any status.
func (s *SubmissionService) Get(userID, id string) (*SubmissionView, error) {
	sub, err := s.submissions.GetByID(id)
	if err != nil {
		return nil, apperrors.Upstream("failed to fetch submission", err)
	}
	if sub == nil || sub.UserID != userID {
		return nil, apperrors.NotFound("submission not found")
	}
	v := s.toView(sub)
	return &v, nil
}

func (s *SubmissionService) toView(sub *models.Submission) SubmissionView {
	urls := make([]string, len(sub.Images))
	for i, img := range sub.Images {
		urls[i] = img.ImageURL
	}
	v := SubmissionView{Submission: *sub, Images: urls}
	if sub.SubmissionType == domain.SubmissionTypeUpdate && sub.ExistingLocationID != nil {
		if loc, err := s.locations.GetByID(*sub.ExistingLocationID); err == nil && loc != nil {
			v.ExistingLocationName = &loc.Name
		}
	}
	return v
}

// Summary returns per-status totals for the admin dashboard header.
func (s *SubmissionService) Summary() (map[string]int64, error) {
	summary, err := s.submissions.StatusSummary()
	if err != nil {
		return nil, apperrors.Upstream("failed to fetch summary", err)
	}
	return summary, nil
}
