package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"basemap/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func newTestClient(baseURL string) *Client {
	return NewClient(&config.IdentityConfig{
		URL:            baseURL,
		JWTSecret:      testSecret,
		ServiceRoleKey: "service-role-key",
		Timeout:        time.Second,
	})
}

func signToken(t *testing.T, secret string, cl claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestVerify(t *testing.T) {
	c := newTestClient("http://identity.local")
	token := signToken(t, testSecret, claims{
		Email: "jumper@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-uuid-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	ident, err := c.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-uuid-1", ident.UserID)
	assert.Equal(t, "jumper@example.com", ident.Email)
}

func TestVerifyRejects(t *testing.T) {
	c := newTestClient("http://identity.local")

	expired := signToken(t, testSecret, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-uuid-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	wrongKey := signToken(t, "other-secret", claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-uuid-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	noSubject := signToken(t, testSecret, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	for name, token := range map[string]string{
		"expired":       expired,
		"wrong secret":  wrongKey,
		"no subject":    noSubject,
		"garbage input": "not.a.jwt",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := c.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestDeleteIdentity(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	require.NoError(t, c.DeleteIdentity(context.Background(), "user-uuid-1"))
	assert.Equal(t, "/admin/users/user-uuid-1", gotPath)
	assert.Equal(t, "Bearer service-role-key", gotAuth)
}

func TestDeleteIdentityFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	err := c.DeleteIdentity(context.Background(), "user-uuid-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
