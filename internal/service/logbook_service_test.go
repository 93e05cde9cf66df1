package service

import (
	"net/http"
	"testing"

	"basemap/internal/apperrors"
	"basemap/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogbookService(t *testing.T) *LogbookService {
	t.Helper()
	return NewLogbookService(repository.NewLogbookRepository(newTestDB(t)))
}

func TestLogbookCreate(t *testing.T) {
	svc := newLogbookService(t)

	entry, err := svc.Create("user-1", LogbookEntryInput{
		LocationName: strPtr("Perrine Bridge"),
		ExitType:     strPtr("Span"),
		DelaySeconds: intPtr(3),
		JumpDate:     strPtr("2026-08-15"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "Perrine Bridge", entry.LocationName)
}

func TestLogbookValidation(t *testing.T) {
	svc := newLogbookService(t)

	cases := []struct {
		name string
		in   LogbookEntryInput
	}{
		{"missing location name", LogbookEntryInput{ExitType: strPtr("Earth")}},
		{"bad exit type", LogbookEntryInput{LocationName: strPtr("x"), ExitType: strPtr("Cliff")}},
		{"negative delay", LogbookEntryInput{LocationName: strPtr("x"), DelaySeconds: intPtr(-1)}},
		{"bad date format", LogbookEntryInput{LocationName: strPtr("x"), JumpDate: strPtr("15/08/2026")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create("user-1", tc.in)
			ae, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, ae.HTTPCode)
		})
	}
}

func TestLogbookUpdateAndDeleteAreOwnerOnly(t *testing.T) {
	svc := newLogbookService(t)
	entry, err := svc.Create("user-1", LogbookEntryInput{LocationName: strPtr("Perrine Bridge")})
	require.NoError(t, err)

	_, err = svc.Update("user-2", entry.ID, LogbookEntryInput{Details: strPtr("windy")})
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ae.HTTPCode)

	err = svc.Delete("user-2", entry.ID)
	ae, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ae.HTTPCode)

	updated, err := svc.Update("user-1", entry.ID, LogbookEntryInput{Details: strPtr("windy")})
	require.NoError(t, err)
	require.NotNil(t, updated.Details)
	assert.Equal(t, "windy", *updated.Details)

	require.NoError(t, svc.Delete("user-1", entry.ID))
	list, total, err := svc.List("user-1", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.EqualValues(t, 0, total)
}
