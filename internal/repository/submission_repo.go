package repository

import (
	"errors"
	"time"

	"basemap/internal/domain"
	"basemap/internal/models"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) WithTx(tx *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: tx}
}

func (r *SubmissionRepository) Create(s *models.Submission) error {
	return r.db.Create(s).Error
}

func (r *SubmissionRepository) GetByID(id string) (*models.Submission, error) {
	var s models.Submission
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("image_order")
	}).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetPendingOwned fetches a submission only if it exists, belongs to userID
// and is still pending. Ownership and existence are deliberately folded into
// one predicate so callers cannot distinguish "not yours" from "not there".
func (r *SubmissionRepository) GetPendingOwned(id, userID string) (*models.Submission, error) {
	var s models.Submission
	err := r.db.Where("id = ? AND user_id = ? AND status = ?", id, userID, domain.SubmissionStatusPending).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepository) UpdateFields(id string, fields map[string]interface{}) error {
	return r.db.Model(&models.Submission{}).Where("id = ?", id).Updates(fields).Error
}

func (r *SubmissionRepository) Delete(id string) error {
	return r.db.Select("Images").Delete(&models.Submission{ID: id}).Error
}

// MarkReviewed flips a pending submission to its terminal status. The status
// predicate makes the transition conditional: with two concurrent reviews
// only one sees RowsAffected == 1.
func (r *SubmissionRepository) MarkReviewed(id, status, reviewedBy string, adminNotes *string) (bool, error) {
	now := time.Now()
	res := r.db.Model(&models.Submission{}).
		Where("id = ? AND status = ?", id, domain.SubmissionStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"admin_notes": adminNotes,
			"reviewed_at": now,
			"reviewed_by": reviewedBy,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *SubmissionRepository) ReplaceImages(submissionID string, urls []string) error {
	if err := r.db.Where("submission_id = ?", submissionID).Delete(&models.SubmissionImage{}).Error; err != nil {
		return err
	}
	if len(urls) == 0 {
		return nil
	}
	images := make([]models.SubmissionImage, len(urls))
	for i, u := range urls {
		images[i] = models.SubmissionImage{SubmissionID: submissionID, ImageURL: u, ImageOrder: i}
	}
	return r.db.Create(&images).Error
}

func (r *SubmissionRepository) InsertImages(submissionID string, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	images := make([]models.SubmissionImage, len(urls))
	for i, u := range urls {
		images[i] = models.SubmissionImage{SubmissionID: submissionID, ImageURL: u, ImageOrder: i}
	}
	return r.db.Create(&images).Error
}

func (r *SubmissionRepository) ListImages(submissionID string) ([]models.SubmissionImage, error) {
	var images []models.SubmissionImage
	err := r.db.Where("submission_id = ?", submissionID).Order("image_order").Find(&images).Error
	return images, err
}

// SubmissionFilter narrows submission listings.
type SubmissionFilter struct {
	UserID         string // empty for the admin view
	Status         string
	SubmissionType string
	SortBy         string // created_at | name | status
	SortOrder      string // asc | desc
	Limit          int
	Offset         int
}

func (f SubmissionFilter) apply(q *gorm.DB) *gorm.DB {
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.SubmissionType != "" {
		q = q.Where("submission_type = ?", f.SubmissionType)
	}
	return q
}

func (r *SubmissionRepository) List(f SubmissionFilter) ([]models.Submission, int64, error) {
	var total int64
	if err := f.apply(r.db.Model(&models.Submission{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := f.SortBy
	switch sortBy {
	case "created_at", "name", "status":
	default:
		sortBy = "created_at"
	}
	order := sortBy + " desc"
	if f.SortOrder == "asc" {
		order = sortBy + " asc"
	}

	var list []models.Submission
	err := f.apply(r.db.Model(&models.Submission{})).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("image_order") }).
		Order(order).
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&list).Error
	return list, total, err
}

func (r *SubmissionRepository) CountPending(userID string) (int64, error) {
	var c int64
	err := r.db.Model(&models.Submission{}).
		Where("user_id = ? AND status = ?", userID, domain.SubmissionStatusPending).
		Count(&c).Error
	return c, err
}

func (r *SubmissionRepository) CountCreatedSince(userID string, since time.Time) (int64, error) {
	var c int64
	err := r.db.Model(&models.Submission{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&c).Error
	return c, err
}

// StatusSummary returns total submissions per status across all users.
func (r *SubmissionRepository) StatusSummary() (map[string]int64, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := r.db.Model(&models.Submission{}).
		Select("status, count(*) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	summary := map[string]int64{
		domain.SubmissionStatusPending:  0,
		domain.SubmissionStatusApproved: 0,
		domain.SubmissionStatusRejected: 0,
	}
	for _, r := range rows {
		summary[r.Status] = r.N
	}
	return summary, nil
}

func (r *SubmissionRepository) DeleteByUser(userID string) error {
	var ids []string
	if err := r.db.Model(&models.Submission{}).Where("user_id = ?", userID).Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.Where("submission_id IN ?", ids).Delete(&models.SubmissionImage{}).Error; err != nil {
		return err
	}
	return r.db.Where("user_id = ?", userID).Delete(&models.Submission{}).Error
}
