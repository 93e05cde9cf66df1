package service

import (
	"testing"

	"basemap/internal/database"
	"basemap/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func newSubmissionService(t *testing.T) (*SubmissionService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewSubmissionService(
		db,
		repository.NewSubmissionRepository(db),
		repository.NewLocationRepository(db),
		nil,
	)
	return svc, db
}

func strPtr(s string) *string     { return &s }
func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }
