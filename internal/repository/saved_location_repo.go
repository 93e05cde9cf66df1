package repository

import (
	"basemap/internal/models"

	"gorm.io/gorm"
)

type SavedLocationRepository struct {
	db *gorm.DB
}

func NewSavedLocationRepository(db *gorm.DB) *SavedLocationRepository {
	return &SavedLocationRepository{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *SavedLocationRepository) WithTx(tx *gorm.DB) *SavedLocationRepository {
	return &SavedLocationRepository{db: tx}
}

func (r *SavedLocationRepository) Add(userID string, locationID uint) (*models.SavedLocation, error) {
	save := &models.SavedLocation{UserID: userID, LocationID: locationID}
	if err := r.db.Create(save).Error; err != nil {
		return nil, err
	}
	return save, nil
}

func (r *SavedLocationRepository) Remove(userID string, locationID uint) (int64, error) {
	res := r.db.Where("user_id = ? AND location_id = ?", userID, locationID).Delete(&models.SavedLocation{})
	return res.RowsAffected, res.Error
}

func (r *SavedLocationRepository) IsSaved(userID string, locationID uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.SavedLocation{}).
		Where("user_id = ? AND location_id = ?", userID, locationID).
		Count(&c).Error
	return c > 0, err
}

func (r *SavedLocationRepository) ListByUser(userID string, limit, offset int) ([]models.SavedLocation, int64, error) {
	var total int64
	if err := r.db.Model(&models.SavedLocation{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.SavedLocation
	err := r.db.Where("user_id = ?", userID).
		Preload("Location").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	return list, total, err
}

func (r *SavedLocationRepository) DeleteByUser(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.SavedLocation{}).Error
}
