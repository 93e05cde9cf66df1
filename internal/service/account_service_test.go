package service

import (
	"context"
	"errors"
	"testing"

	"basemap/internal/models"
	"basemap/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingDeleter struct {
	deleted []string
	err     error
}

func (d *recordingDeleter) DeleteIdentity(_ context.Context, userID string) error {
	d.deleted = append(d.deleted, userID)
	return d.err
}

func newAccountFixture(t *testing.T, deleter *recordingDeleter) (*AccountService, *SubmissionService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	profileRepo := repository.NewProfileRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	savedRepo := repository.NewSavedLocationRepository(db)
	logbookRepo := repository.NewLogbookRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	accountSvc := NewAccountService(db, profileRepo, submissionRepo, savedRepo, logbookRepo, notificationRepo, deleter)
	submissionSvc := NewSubmissionService(db, submissionRepo, repository.NewLocationRepository(db), nil)
	return accountSvc, submissionSvc, db
}

func TestDeleteAccountCascades(t *testing.T) {
	deleter := &recordingDeleter{}
	accountSvc, submissionSvc, db := newAccountFixture(t, deleter)

	profileSvc := NewProfileService(repository.NewProfileRepository(db))
	_, err := profileSvc.EnsureProfile("user-1", "a@example.com")
	require.NoError(t, err)
	_, err = profileSvc.EnsureProfile("user-2", "b@example.com")
	require.NoError(t, err)

	mustCreate(t, submissionSvc, "user-1", validCreateInput())
	mustCreate(t, submissionSvc, "user-2", validCreateInput())

	locRepo := repository.NewLocationRepository(db)
	loc := &models.Location{Name: "Brento", Latitude: 45.9, Longitude: 10.9}
	require.NoError(t, locRepo.Create(loc))
	savedSvc := NewSavedLocationService(repository.NewSavedLocationRepository(db), locRepo)
	_, err = savedSvc.Save("user-1", loc.ID)
	require.NoError(t, err)

	logbookSvc := NewLogbookService(repository.NewLogbookRepository(db))
	_, err = logbookSvc.Create("user-1", LogbookEntryInput{LocationName: strPtr("Brento")})
	require.NoError(t, err)

	require.NoError(t, accountSvc.DeleteAccount(context.Background(), "user-1"))
	assert.Equal(t, []string{"user-1"}, deleter.deleted)

	// Everything owned by user-1 is gone.
	for model, where := range map[interface{}]string{
		&models.Submission{}:    "user_id = ?",
		&models.SavedLocation{}: "user_id = ?",
		&models.LogbookEntry{}:  "user_id = ?",
		&models.Profile{}:       "id = ?",
	} {
		var count int64
		require.NoError(t, db.Model(model).Where(where, "user-1").Count(&count).Error)
		assert.EqualValues(t, 0, count)
	}

	// The other user's data is untouched.
	var count int64
	require.NoError(t, db.Model(&models.Submission{}).Where("user_id = ?", "user-2").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteAccountSurvivesProviderFailure(t *testing.T) {
	deleter := &recordingDeleter{err: errors.New("provider down")}
	accountSvc, _, db := newAccountFixture(t, deleter)

	profileSvc := NewProfileService(repository.NewProfileRepository(db))
	_, err := profileSvc.EnsureProfile("user-1", "a@example.com")
	require.NoError(t, err)

	// Local cleanup already happened; the provider error is logged only.
	require.NoError(t, accountSvc.DeleteAccount(context.Background(), "user-1"))
	assert.Equal(t, []string{"user-1"}, deleter.deleted)
}

func TestDeleteAccountUnknownProfile(t *testing.T) {
	deleter := &recordingDeleter{}
	accountSvc, _, _ := newAccountFixture(t, deleter)

	err := accountSvc.DeleteAccount(context.Background(), "ghost")
	require.Error(t, err)
	assert.Empty(t, deleter.deleted)
}
