package service

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"basemap/internal/apperrors"
	"basemap/internal/domain"
	"basemap/internal/models"
	"basemap/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateInput() CreateSubmissionInput {
	return CreateSubmissionInput{
		Name:           "Kjerag",
		Country:        strPtr("Norway"),
		Latitude:       floatPtr(59.0336),
		Longitude:      floatPtr(6.5915),
		RockDropFt:     intPtr(3200),
		SubmissionType: domain.SubmissionTypeNew,
		ImageURLs:      []string{"https://img.example/a.jpg", "https://img.example/b.jpg"},
	}
}

func mustCreate(t *testing.T, svc *SubmissionService, userID string, in CreateSubmissionInput) *models.Submission {
	t.Helper()
	sub, err := svc.Create(userID, in)
	require.NoError(t, err)
	return sub
}

func TestCreateSubmission(t *testing.T) {
	svc, _ := newSubmissionService(t)

	sub := mustCreate(t, svc, "user-1", validCreateInput())
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, domain.SubmissionStatusPending, sub.Status)
	assert.Equal(t, "user-1", sub.UserID)

	view, err := svc.Get("user-1", sub.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example/a.jpg", "https://img.example/b.jpg"}, view.Images)
}

func TestCreateSubmissionValidation(t *testing.T) {
	svc, _ := newSubmissionService(t)

	cases := []struct {
		name   string
		mutate func(*CreateSubmissionInput)
	}{
		{"missing name", func(in *CreateSubmissionInput) { in.Name = "" }},
		{"missing coordinates", func(in *CreateSubmissionInput) { in.Latitude = nil }},
		{"latitude out of range", func(in *CreateSubmissionInput) { in.Latitude = floatPtr(91) }},
		{"longitude out of range", func(in *CreateSubmissionInput) { in.Longitude = floatPtr(-181) }},
		{"zero rock drop", func(in *CreateSubmissionInput) { in.RockDropFt = intPtr(0) }},
		{"negative total height", func(in *CreateSubmissionInput) { in.TotalHeightFt = intPtr(-10) }},
		{"unknown type", func(in *CreateSubmissionInput) { in.SubmissionType = "merge" }},
		{"update without target", func(in *CreateSubmissionInput) { in.SubmissionType = domain.SubmissionTypeUpdate }},
		{"new with target", func(in *CreateSubmissionInput) { in.ExistingLocationID = uintPtr(1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateInput()
			tc.mutate(&in)
			_, err := svc.Create("user-1", in)
			ae, ok := apperrors.As(err)
			require.True(t, ok, "expected typed error, got %v", err)
			assert.Equal(t, http.StatusBadRequest, ae.HTTPCode)
		})
	}
}

func TestCreateSubmissionUpdateTargetMustExist(t *testing.T) {
	svc, _ := newSubmissionService(t)

	in := validCreateInput()
	in.SubmissionType = domain.SubmissionTypeUpdate
	in.ExistingLocationID = uintPtr(999)
	_, err := svc.Create("user-1", in)
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ae.HTTPCode)
}

func TestPendingQuota(t *testing.T) {
	svc, _ := newSubmissionService(t)

	for i := 0; i < domain.MaxPendingSubmissions; i++ {
		in := validCreateInput()
		in.Name = fmt.Sprintf("Site %d", i)
		mustCreate(t, svc, "user-1", in)
	}
	_, err := svc.Create("user-1", validCreateInput())
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusTooManyRequests, ae.HTTPCode)
	assert.Contains(t, ae.Message, "maximum of 5 pending submissions")

	// Another user is unaffected.
	mustCreate(t, svc, "user-2", validCreateInput())
}

func TestDailyQuota(t *testing.T) {
	svc, _ := newSubmissionService(t)

	// Keep the pending count below its cap by rejecting as we go; only the
	// daily counter should trip.
	for i := 0; i < domain.MaxDailySubmissions; i++ {
		in := validCreateInput()
		in.Name = fmt.Sprintf("Site %d", i)
		sub := mustCreate(t, svc, "user-1", in)
		_, err := svc.Review("admin-1", sub.ID, ReviewInput{Status: domain.SubmissionStatusRejected})
		require.NoError(t, err)
	}
	_, err := svc.Create("user-1", validCreateInput())
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusTooManyRequests, ae.HTTPCode)
	assert.Contains(t, ae.Message, "daily limit of 10 submissions")
}

func TestQuotaFailsOpen(t *testing.T) {
	svc, db := newSubmissionService(t)

	require.NoError(t, db.Migrator().DropTable(&models.Submission{}))
	allowed, reason := svc.canSubmit("user-1")
	assert.True(t, allowed)
	assert.Empty(t, reason)
}

func TestCheckLimits(t *testing.T) {
	svc, _ := newSubmissionService(t)

	limits, err := svc.CheckLimits("user-1")
	require.NoError(t, err)
	assert.True(t, limits.CanSubmit)
	assert.Equal(t, "now", limits.NextSubmissionAvailable)
	assert.EqualValues(t, 0, limits.CurrentPendingCount)

	for i := 0; i < domain.MaxPendingSubmissions; i++ {
		in := validCreateInput()
		in.Name = fmt.Sprintf("Site %d", i)
		mustCreate(t, svc, "user-1", in)
	}
	limits, err = svc.CheckLimits("user-1")
	require.NoError(t, err)
	assert.False(t, limits.CanSubmit)
	assert.EqualValues(t, 5, limits.CurrentPendingCount)
	tomorrow := startOfToday().AddDate(0, 0, 1).Format(time.RFC3339)
	assert.Equal(t, tomorrow, limits.NextSubmissionAvailable)
}

func TestUpdateSubmission(t *testing.T) {
	svc, _ := newSubmissionService(t)
	sub := mustCreate(t, svc, "user-1", validCreateInput())

	updated, err := svc.Update("user-1", sub.ID, UpdateSubmissionInput{
		SubmissionFields: SubmissionFields{Notes: strPtr("long hike in")},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "long hike in", *updated.Notes)
	assert.Equal(t, "Kjerag", updated.Name, "untouched fields keep their values")
	assert.Len(t, updated.Images, 2, "images untouched when image_urls absent")
}

func TestUpdateSubmissionReplacesImages(t *testing.T) {
	svc, _ := newSubmissionService(t)
	sub := mustCreate(t, svc, "user-1", validCreateInput())

	urls := []string{"https://img.example/new2.jpg", "https://img.example/new1.jpg"}
	updated, err := svc.Update("user-1", sub.ID, UpdateSubmissionInput{ImageURLs: &urls})
	require.NoError(t, err)
	require.Len(t, updated.Images, 2)
	assert.Equal(t, "https://img.example/new2.jpg", updated.Images[0].ImageURL)
	assert.Equal(t, 0, updated.Images[0].ImageOrder)
	assert.Equal(t, 1, updated.Images[1].ImageOrder)

	// An explicit empty list clears the set.
	empty := []string{}
	updated, err = svc.Update("user-1", sub.ID, UpdateSubmissionInput{ImageURLs: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Images)
}

func TestUpdateSubmissionRequiresAField(t *testing.T) {
	svc, _ := newSubmissionService(t)
	sub := mustCreate(t, svc, "user-1", validCreateInput())

	_, err := svc.Update("user-1", sub.ID, UpdateSubmissionInput{})
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPCode)
}

func TestUpdateSubmissionOwnershipFolding(t *testing.T) {
	svc, _ := newSubmissionService(t)
	sub := mustCreate(t, svc, "user-1", validCreateInput())

	// Someone else's submission reads as missing.
	_, err := svc.Update("user-2", sub.ID, UpdateSubmissionInput{
		SubmissionFields: SubmissionFields{Notes: strPtr("x")},
	})
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ae.HTTPCode)

	// So does one that has already been reviewed.
	_, err = svc.Review("admin-1", sub.ID, ReviewInput{Status: domain.SubmissionStatusRejected})
	require.NoError(t, err)
	_, err = svc.Update("user-1", sub.ID, UpdateSubmissionInput{
		SubmissionFields: SubmissionFields{Notes: strPtr("x")},
	})
	ae, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ae.HTTPCode)

	// Withdrawal folds the same way once reviewed.
	err = svc.Withdraw("user-1", sub.ID)
	ae, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ae.HTTPCode)
}

func TestWithdraw(t *testing.T) {
	svc, _ := newSubmissionService(t)
	sub := mustCreate(t, svc, "user-1", validCreateInput())

	require.NoError(t, svc.Withdraw("user-1", sub.ID))
	_, err := svc.Get("user-1", sub.ID)
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ae.HTTPCode)

	err = svc.Withdraw("user-1", sub.ID)
	ae, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ae.HTTPCode)
}

func TestReviewApproveNewCreatesLocation(t *testing.T) {
	svc, db := newSubmissionService(t)
	sub := mustCreate(t, svc, "user-1", validCreateInput())

	result, err := svc.Review("admin-1", sub.ID, ReviewInput{
		Status:     domain.SubmissionStatusApproved,
		AdminNotes: strPtr("verified against video"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Submission approved and location created", result.Message)
	require.NotNil(t, result.CreatedLocation)
	assert.Equal(t, "Kjerag", result.CreatedLocation.Name)
	require.NotNil(t, result.CreatedLocation.CreatedBy)
	assert.Equal(t, "user-1", *result.CreatedLocation.CreatedBy)

	assert.Equal(t, domain.SubmissionStatusApproved, result.Submission.Status)
	require.NotNil(t, result.Submission.ReviewedBy)
	assert.Equal(t, "admin-1", *result.Submission.ReviewedBy)
	assert.NotNil(t, result.Submission.ReviewedAt)

	var count int64
	require.NoError(t, db.Model(&models.Location{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestReviewApproveUpdateTouchesOnlyTarget(t *testing.T) {
	svc, db := newSubmissionService(t)
	locRepo := repository.NewLocationRepository(db)
	target := &models.Location{Name: "Old Name", Latitude: 46.0, Longitude: 7.0}
	other := &models.Location{Name: "Bystander", Latitude: 47.0, Longitude: 8.0}
	require.NoError(t, locRepo.Create(target))
	require.NoError(t, locRepo.Create(other))

	in := validCreateInput()
	in.Name = "New Name"
	in.SubmissionType = domain.SubmissionTypeUpdate
	in.ExistingLocationID = &target.ID
	sub := mustCreate(t, svc, "user-1", in)

	result, err := svc.Review("admin-1", sub.ID, ReviewInput{Status: domain.SubmissionStatusApproved})
	require.NoError(t, err)
	assert.Equal(t, "Submission approved and location updated", result.Message)
	require.NotNil(t, result.UpdatedLocation)
	assert.Equal(t, target.ID, result.UpdatedLocation.ID)
	assert.Equal(t, "New Name", result.UpdatedLocation.Name)

	unchanged, err := locRepo.GetByID(other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bystander", unchanged.Name)

	var count int64
	require.NoError(t, db.Model(&models.Location{}).Count(&count).Error)
	assert.EqualValues(t, 2, count, "approval of an update must not insert")
}

func TestReviewRejectCreatesNothing(t *testing.T) {
	svc, db := newSubmissionService(t)
	sub := mustCreate(t, svc, "user-1", validCreateInput())

	result, err := svc.Review("admin-1", sub.ID, ReviewInput{
		Status:     domain.SubmissionStatusRejected,
		AdminNotes: strPtr("duplicate of an existing site"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Submission rejected", result.Message)
	assert.Nil(t, result.CreatedLocation)

	var count int64
	require.NoError(t, db.Model(&models.Location{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestReviewIsTerminal(t *testing.T) {
	svc, db := newSubmissionService(t)
	sub := mustCreate(t, svc, "user-1", validCreateInput())

	_, err := svc.Review("admin-1", sub.ID, ReviewInput{Status: domain.SubmissionStatusRejected})
	require.NoError(t, err)

	for _, status := range []string{domain.SubmissionStatusApproved, domain.SubmissionStatusRejected} {
		_, err = svc.Review("admin-2", sub.ID, ReviewInput{Status: status})
		ae, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, ae.HTTPCode)
	}

	// The failed re-approval must not have materialized anything.
	var count int64
	require.NoError(t, db.Model(&models.Location{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestReviewOverrideZeroValueWins(t *testing.T) {
	svc, _ := newSubmissionService(t)
	in := validCreateInput()
	in.Notes = strPtr("rowdy landing area")
	sub := mustCreate(t, svc, "user-1", in)

	// An explicitly provided empty string is an override, not an omission.
	result, err := svc.Review("admin-1", sub.ID, ReviewInput{
		Status: domain.SubmissionStatusApproved,
		OverrideData: &SubmissionFields{
			Name:  strPtr("Kjeragbolten"),
			Notes: strPtr(""),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result.CreatedLocation)
	assert.Equal(t, "Kjeragbolten", result.CreatedLocation.Name)
	require.NotNil(t, result.CreatedLocation.Notes)
	assert.Equal(t, "", *result.CreatedLocation.Notes)
	// Fields without an override keep the submitted values.
	require.NotNil(t, result.CreatedLocation.Country)
	assert.Equal(t, "Norway", *result.CreatedLocation.Country)
}

func TestReviewOverrideValidation(t *testing.T) {
	svc, _ := newSubmissionService(t)
	sub := mustCreate(t, svc, "user-1", validCreateInput())

	_, err := svc.Review("admin-1", sub.ID, ReviewInput{
		Status:       domain.SubmissionStatusApproved,
		OverrideData: &SubmissionFields{Latitude: floatPtr(123)},
	})
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPCode)
}

func TestListSubmissions(t *testing.T) {
	svc, _ := newSubmissionService(t)
	for i := 0; i < 3; i++ {
		in := validCreateInput()
		in.Name = fmt.Sprintf("Site %d", i)
		mustCreate(t, svc, "user-1", in)
	}
	mustCreate(t, svc, "user-2", validCreateInput())

	page, err := svc.List(repository.SubmissionFilter{UserID: "user-1", Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalCount)
	assert.Len(t, page.Submissions, 2)
	assert.True(t, page.HasMore)

	all, err := svc.List(repository.SubmissionFilter{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 4, all.TotalCount)
}

func TestSummary(t *testing.T) {
	svc, _ := newSubmissionService(t)
	a := mustCreate(t, svc, "user-1", validCreateInput())
	b := mustCreate(t, svc, "user-1", validCreateInput())
	mustCreate(t, svc, "user-1", validCreateInput())
	_, err := svc.Review("admin-1", a.ID, ReviewInput{Status: domain.SubmissionStatusApproved})
	require.NoError(t, err)
	_, err = svc.Review("admin-1", b.ID, ReviewInput{Status: domain.SubmissionStatusRejected})
	require.NoError(t, err)

	summary, err := svc.Summary()
	require.NoError(t, err)
	assert.EqualValues(t, 1, summary[domain.SubmissionStatusPending])
	assert.EqualValues(t, 1, summary[domain.SubmissionStatusApproved])
	assert.EqualValues(t, 1, summary[domain.SubmissionStatusRejected])
}

func uintPtr(n uint) *uint { return &n }
