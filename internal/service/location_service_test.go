package service

import (
	"net/http"
	"testing"

	"basemap/internal/apperrors"
	"basemap/internal/models"
	"basemap/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLocationFixture(t *testing.T) (*LocationService, *repository.LocationRepository, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	repo := repository.NewLocationRepository(db)
	return NewLocationService(repo), repo, db
}

// seedLocations inserts two visible sites and one hidden one, returning the
// hidden site's id.
func seedLocations(t *testing.T, repo *repository.LocationRepository) uint {
	t.Helper()
	hidden := &models.Location{Name: "Secret Spot", Country: strPtr("Italy"), Latitude: 46.0, Longitude: 11.0, Hidden: true}
	for _, loc := range []*models.Location{
		{Name: "Kjerag", Country: strPtr("Norway"), Latitude: 59.0, Longitude: 6.6, TotalHeightFt: intPtr(3200)},
		{Name: "Brento", Country: strPtr("Italy"), Latitude: 45.9, Longitude: 10.9, TotalHeightFt: intPtr(4000)},
		hidden,
	} {
		require.NoError(t, repo.Create(loc))
	}
	return hidden.ID
}

func TestListLocations(t *testing.T) {
	svc, repo, _ := newLocationFixture(t)
	seedLocations(t, repo)

	list, err := svc.List(repository.LocationFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2, "hidden locations stay out of listings")

	list, err = svc.List(repository.LocationFilter{Country: "Italy"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Brento", list[0].Name)

	list, err = svc.List(repository.LocationFilter{MinHeight: intPtr(3500)})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Brento", list[0].Name)

	list, err = svc.List(repository.LocationFilter{Search: "kjer"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Kjerag", list[0].Name)
}

func TestGetLocationReachesHidden(t *testing.T) {
	svc, repo, _ := newLocationFixture(t)
	hiddenID := seedLocations(t, repo)

	loc, err := svc.Get(hiddenID)
	require.NoError(t, err)
	assert.True(t, loc.Hidden)

	_, err = svc.Get(999)
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ae.HTTPCode)
}

func TestAdminUpdateLocation(t *testing.T) {
	svc, repo, _ := newLocationFixture(t)
	loc := &models.Location{Name: "Brento", Latitude: 45.9, Longitude: 10.9}
	require.NoError(t, repo.Create(loc))

	updated, err := svc.Update("admin-1", loc.ID, AdminUpdateInput{
		SubmissionFields: SubmissionFields{Notes: strPtr("exit moved after rockfall")},
		Hidden:           boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, updated.Hidden)
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, "admin-1", *updated.UpdatedBy)

	_, err = svc.Update("admin-1", loc.ID, AdminUpdateInput{})
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPCode)

	_, err = svc.Update("admin-1", loc.ID, AdminUpdateInput{
		SubmissionFields: SubmissionFields{Latitude: floatPtr(200)},
	})
	ae, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPCode)
}

func TestAdminDeleteLocationReportsReferences(t *testing.T) {
	svc, repo, db := newLocationFixture(t)
	loc := &models.Location{Name: "Brento", Latitude: 45.9, Longitude: 10.9}
	require.NoError(t, repo.Create(loc))

	savedSvc := NewSavedLocationService(repository.NewSavedLocationRepository(db), repo)
	_, err := savedSvc.Save("user-1", loc.ID)
	require.NoError(t, err)

	result, err := svc.Delete(loc.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.SavedReferences)

	_, err = svc.Delete(loc.ID)
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ae.HTTPCode)
}
