package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"eventbooking/internal/domain"
)

// Store drivers accepted in STORE_DRIVER.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Environment    string
	Port           string
	StoreDriver    string
	MongoURI       string
	MongoDatabase  string
	DBUrl          string
	JWTSecret      string
	RequestTimeout time.Duration
	CORSOrigins    []string
	Email          EmailConfig
}

// EmailConfig holds the mailer settings.
type EmailConfig struct {
	Provider              string
	FromAddress           string
	FromName              string
	AWSRegion             string
	AWSAccessKeyID        string
	AWSSecretAccessKey    string
	SESInsecureSkipVerify bool
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production there is no .env and the process environment is authoritative.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			slog.Warn(".env file not found or couldn't be loaded", "err", err)
		}
	}

	cfg := &Config{
		Environment:   env,
		Port:          getenv("PORT", "8080"),
		StoreDriver:   strings.ToLower(getenv("STORE_DRIVER", StoreMongo)),
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: getenv("MONGODB_DATABASE", "eventbooking"),
		DBUrl:         os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		CORSOrigins:   splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		Email: EmailConfig{
			Provider:           getenv("EMAIL_PROVIDER", "noop"),
			FromAddress:        os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:           os.Getenv("EMAIL_FROM_NAME"),
			AWSRegion:          getenv("AWS_REGION", "us-east-1"),
			AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}

	var err error
	if cfg.RequestTimeout, err = time.ParseDuration(getenv("REQUEST_TIMEOUT", "5s")); err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}
	if s := os.Getenv("SES_INSECURE_SKIP_VERIFY"); s != "" {
		if cfg.Email.SESInsecureSkipVerify, err = strconv.ParseBool(s); err != nil {
			return nil, fmt.Errorf("invalid SES_INSECURE_SKIP_VERIFY: %w", err)
		}
	}

	switch cfg.StoreDriver {
	case StoreMongo:
		// MONGODB_URI is checked when the connection is first acquired.
	case StorePostgres:
		if cfg.DBUrl == "" {
			return nil, &domain.ConfigurationError{Key: "DATABASE_URL"}
		}
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: want %s or %s", cfg.StoreDriver, StoreMongo, StorePostgres)
	}
	if cfg.JWTSecret == "" {
		return nil, &domain.ConfigurationError{Key: "JWT_SECRET"}
	}
	if cfg.Email.Provider == "ses" && cfg.Email.FromAddress == "" {
		return nil, &domain.ConfigurationError{Key: "EMAIL_FROM_ADDRESS"}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
