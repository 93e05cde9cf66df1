// Package identity adapts the external auth provider. The provider owns
// credentials, token issuance and OAuth; this service only verifies the
// bearer tokens it mints and deletes identities on account removal.
package identity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"basemap/config"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated principal extracted from a bearer token.
// Role is resolved separately from the profiles table.
type Identity struct {
	UserID string
	Email  string
}

// Verifier checks a bearer token and returns the identity it carries.
type Verifier interface {
	Verify(token string) (*Identity, error)
}

// Deleter removes an identity from the provider (account deletion).
type Deleter interface {
	DeleteIdentity(ctx context.Context, userID string) error
}

var ErrInvalidToken = errors.New("invalid or expired token")

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Client talks to the auth provider. Token verification is local (the
// provider signs access tokens with a shared HS256 secret); admin operations
// go over HTTP with the service-role key.
type Client struct {
	baseURL        string
	jwtSecret      []byte
	serviceRoleKey string
	http           *http.Client
}

func NewClient(cfg *config.IdentityConfig) *Client {
	return &Client{
		baseURL:        strings.TrimSuffix(cfg.URL, "/"),
		jwtSecret:      []byte(cfg.JWTSecret),
		serviceRoleKey: cfg.ServiceRoleKey,
		http:           &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	cl, ok := token.Claims.(*claims)
	if !ok || !token.Valid || cl.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &Identity{UserID: cl.Subject, Email: cl.Email}, nil
}

func (c *Client) DeleteIdentity(ctx context.Context, userID string) error {
	url := fmt.Sprintf("%s/admin/users/%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceRoleKey)
	req.Header.Set("apikey", c.serviceRoleKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("identity delete failed: %d %s", resp.StatusCode, string(body))
	}
	return nil
}

var (
	_ Verifier = (*Client)(nil)
	_ Deleter  = (*Client)(nil)
)
