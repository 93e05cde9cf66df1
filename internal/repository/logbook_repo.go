package repository

import (
	"errors"

	"basemap/internal/models"

	"gorm.io/gorm"
)

type LogbookRepository struct {
	db *gorm.DB
}

func NewLogbookRepository(db *gorm.DB) *LogbookRepository {
	return &LogbookRepository{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *LogbookRepository) WithTx(tx *gorm.DB) *LogbookRepository {
	return &LogbookRepository{db: tx}
}

func (r *LogbookRepository) Create(e *models.LogbookEntry) error {
	return r.db.Create(e).Error
}

// GetOwned fetches an entry only if it belongs to userID (404 otherwise, the
// same folding as submissions).
func (r *LogbookRepository) GetOwned(id, userID string) (*models.LogbookEntry, error) {
	var e models.LogbookEntry
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *LogbookRepository) UpdateFields(id string, fields map[string]interface{}) error {
	return r.db.Model(&models.LogbookEntry{}).Where("id = ?", id).Updates(fields).Error
}

func (r *LogbookRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.LogbookEntry{}).Error
}

func (r *LogbookRepository) ListByUser(userID string, limit, offset int) ([]models.LogbookEntry, int64, error) {
	var total int64
	if err := r.db.Model(&models.LogbookEntry{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.LogbookEntry
	err := r.db.Where("user_id = ?", userID).
		Order("jump_date DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	return list, total, err
}

func (r *LogbookRepository) DeleteByUser(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.LogbookEntry{}).Error
}
