package repository

import (
	"errors"

	"basemap/internal/models"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *ProfileRepository) WithTx(tx *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: tx}
}

func (r *ProfileRepository) GetByID(id string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) Create(p *models.Profile) error {
	return r.db.Create(p).Error
}

func (r *ProfileRepository) Update(id string, fields map[string]interface{}) error {
	return r.db.Model(&models.Profile{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ProfileRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Profile{}).Error
}

// UsernameTaken reports whether another profile already uses the username.
func (r *ProfileRepository) UsernameTaken(username, excludeID string) (bool, error) {
	var c int64
	err := r.db.Model(&models.Profile{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&c).Error
	return c > 0, err
}

// FindByRevenueCatCustomerID returns the profile linked to the billing
// customer id, excluding excludeID, or nil.
func (r *ProfileRepository) FindByRevenueCatCustomerID(customerID, excludeID string) (*models.Profile, error) {
	var p models.Profile
	q := r.db.Where("revenuecat_customer_id = ?", customerID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
