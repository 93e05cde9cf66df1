package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Identity IdentityConfig
	API      APIConfig
	Firebase FirebaseConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	SuperuserEmail string // promoted on startup if the profile exists
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// IdentityConfig points at the external auth provider. JWTSecret verifies the
// HS256 access tokens it issues; ServiceRoleKey authorizes admin calls
// (identity deletion).
type IdentityConfig struct {
	URL            string
	JWTSecret      string
	ServiceRoleKey string
	Timeout        time.Duration
}

type APIConfig struct {
	Key             string // required in x-api-key on every request
	WebhookSecret   string // RevenueCat webhook Authorization header value
	RateLimit       int
	RateLimitWindow time.Duration
}

type FirebaseConfig struct {
	ServiceAccountPath string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            getEnv("ENV", "development"),
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			SuperuserEmail: getEnv("SUPERUSER_EMAIL", ""),
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DATABASE_DSN", ""),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: time.Hour,
		},
		Identity: IdentityConfig{
			URL:            getEnv("IDENTITY_URL", ""),
			JWTSecret:      getEnv("IDENTITY_JWT_SECRET", ""),
			ServiceRoleKey: getEnv("IDENTITY_SERVICE_ROLE_KEY", ""),
			Timeout:        10 * time.Second,
		},
		API: APIConfig{
			Key:             getEnv("API_KEY", ""),
			WebhookSecret:   getEnv("REVENUECAT_WEBHOOK_SECRET", ""),
			RateLimit:       getEnvInt("RATE_LIMIT_MAX", 100),
			RateLimitWindow: time.Minute,
		},
		Firebase: FirebaseConfig{
			ServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		},
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required")
	}
	if cfg.Identity.URL == "" {
		return nil, fmt.Errorf("IDENTITY_URL is required")
	}
	if cfg.Identity.JWTSecret == "" {
		return nil, fmt.Errorf("IDENTITY_JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
