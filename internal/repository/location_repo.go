package repository

import (
	"errors"

	"basemap/internal/models"

	"gorm.io/gorm"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *LocationRepository) WithTx(tx *gorm.DB) *LocationRepository {
	return &LocationRepository{db: tx}
}

// LocationFilter narrows the directory listing.
type LocationFilter struct {
	Country   string
	MinHeight *int
	MaxHeight *int
	Search    string
}

func (r *LocationRepository) List(f LocationFilter) ([]models.Location, error) {
	q := r.db.Model(&models.Location{}).Where("hidden = ?", false)
	if f.Country != "" {
		q = q.Where("country LIKE ?", "%"+f.Country+"%")
	}
	if f.MinHeight != nil {
		q = q.Where("total_height_ft >= ?", *f.MinHeight)
	}
	if f.MaxHeight != nil {
		q = q.Where("total_height_ft <= ?", *f.MaxHeight)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR country LIKE ? OR notes LIKE ?", like, like, like)
	}
	var list []models.Location
	err := q.Order("name").Find(&list).Error
	return list, err
}

func (r *LocationRepository) GetByID(id uint) (*models.Location, error) {
	var loc models.Location
	err := r.db.First(&loc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *LocationRepository) Create(loc *models.Location) error {
	return r.db.Create(loc).Error
}

// Update writes the given fields to the row. A map is used so zero values
// (e.g. clearing a note) are written too.
func (r *LocationRepository) Update(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Location{}).Where("id = ?", id).Updates(fields).Error
}

func (r *LocationRepository) Delete(id uint) error {
	return r.db.Delete(&models.Location{}, id).Error
}

// CountReferences reports rows in other tables that point at this location.
// Used for the pre-delete dependency warning.
func (r *LocationRepository) CountReferences(id uint) (saved int64, submissions int64, err error) {
	if err = r.db.Model(&models.SavedLocation{}).Where("location_id = ?", id).Count(&saved).Error; err != nil {
		return
	}
	err = r.db.Model(&models.Submission{}).Where("existing_location_id = ?", id).Count(&submissions).Error
	return
}
