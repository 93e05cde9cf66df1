package service

import (
	"net/http"
	"testing"

	"basemap/internal/apperrors"
	"basemap/internal/domain"
	"basemap/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(t *testing.T) *ProfileService {
	t.Helper()
	return NewProfileService(repository.NewProfileRepository(newTestDB(t)))
}

func TestEnsureProfile(t *testing.T) {
	svc := newProfileService(t)

	p, err := svc.EnsureProfile("id-1", "jumper@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, p.Role)
	assert.Equal(t, domain.SubscriptionStatusFree, p.SubscriptionStatus)

	// Second contact returns the same row.
	again, err := svc.EnsureProfile("id-1", "jumper@example.com")
	require.NoError(t, err)
	assert.Equal(t, p.ID, again.ID)
}

func TestProfileUpdate(t *testing.T) {
	svc := newProfileService(t)
	_, err := svc.EnsureProfile("id-1", "a@example.com")
	require.NoError(t, err)
	_, err = svc.EnsureProfile("id-2", "b@example.com")
	require.NoError(t, err)

	p, err := svc.Update("id-1", UpdateProfileInput{
		Name:       strPtr("Alex"),
		Username:   strPtr("alex_b"),
		JumpNumber: intPtr(120),
	})
	require.NoError(t, err)
	assert.Equal(t, "alex_b", *p.Username)
	assert.Equal(t, 120, p.JumpNumber)

	// The top of the jump-count range is still valid.
	p, err = svc.Update("id-2", UpdateProfileInput{JumpNumber: intPtr(10000)})
	require.NoError(t, err)
	assert.Equal(t, 10000, p.JumpNumber)

	// Username collisions conflict; own username is reusable.
	_, err = svc.Update("id-2", UpdateProfileInput{Username: strPtr("alex_b")})
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, ae.HTTPCode)
	_, err = svc.Update("id-1", UpdateProfileInput{Username: strPtr("alex_b")})
	require.NoError(t, err)
}

func TestProfileUpdateValidation(t *testing.T) {
	svc := newProfileService(t)
	_, err := svc.EnsureProfile("id-1", "a@example.com")
	require.NoError(t, err)

	for name, in := range map[string]UpdateProfileInput{
		"empty update":         {},
		"bad username":         {Username: strPtr("x!")},
		"negative jump count":  {JumpNumber: intPtr(-1)},
		"jump count above cap": {JumpNumber: intPtr(10001)},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Update("id-1", in)
			ae, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, ae.HTTPCode)
		})
	}
}

func TestRegisterFCMToken(t *testing.T) {
	svc := newProfileService(t)
	_, err := svc.EnsureProfile("id-1", "a@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.RegisterFCMToken("id-1", "fcm-token-abc"))
	p, err := svc.Get("id-1")
	require.NoError(t, err)
	assert.Equal(t, "fcm-token-abc", p.FCMToken)

	err = svc.RegisterFCMToken("id-1", "")
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPCode)
}
