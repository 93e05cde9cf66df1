package database

import (
	"log"

	"basemap/config"
	"basemap/internal/domain"
	"basemap/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Profile{},
		&models.Location{},
		&models.Submission{},
		&models.SubmissionImage{},
		&models.SavedLocation{},
		&models.LogbookEntry{},
		&models.Notification{},
	)
}

// SeedSuperuser promotes the profile named in SUPERUSER_EMAIL, if any exists.
// Identities are provisioned by the external auth provider, so there is
// nothing to create here; the first superuser just needs its role flipped.
func SeedSuperuser(db *gorm.DB, email string) {
	if email == "" {
		return
	}
	res := db.Model(&models.Profile{}).
		Where("email = ? AND role <> ?", email, domain.RoleSuperuser).
		Update("role", domain.RoleSuperuser)
	if res.Error != nil {
		log.Printf("seed superuser: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("promoted %s to SUPERUSER", email)
	}
}
