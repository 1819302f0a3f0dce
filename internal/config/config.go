package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"travel-admin/internal/utils"

	"github.com/joho/godotenv"
)

var (
	ErrMissingUpstream = errors.New("UPSTREAM_GRAPHQL_URL is not set")
	ErrMissingSecret   = errors.New("SESSION_SECRET is not set")
)

const defaultUpstreamTimeout = 15 * time.Second

type Config struct {
	AppEnv  string
	AppPort string

	UpstreamURL     string
	UpstreamTimeout time.Duration
	MediaBaseURL    string

	SessionSecret string
	CookieSecure  bool
	AllowedOrigin string

	// DBURL is optional; the audit journal is disabled when empty.
	DBURL string

	ReencodeImages     bool
	RequiredCategories []string
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:             os.Getenv("APP_ENV"),
		AppPort:            os.Getenv("APP_PORT"),
		UpstreamURL:        os.Getenv("UPSTREAM_GRAPHQL_URL"),
		UpstreamTimeout:    parseDuration(os.Getenv("UPSTREAM_TIMEOUT"), defaultUpstreamTimeout),
		MediaBaseURL:       os.Getenv("MEDIA_BASE_URL"),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		CookieSecure:       parseBool(os.Getenv("COOKIE_SECURE"), true),
		AllowedOrigin:      os.Getenv("ALLOWED_ORIGIN"),
		DBURL:              os.Getenv("DB_URL"),
		ReencodeImages:     parseBool(os.Getenv("HYDRATE_REENCODE_IMAGES"), false),
		RequiredCategories: utils.SplitCSV(os.Getenv("REQUIRED_CATEGORIES")),
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = "http://localhost:8080"
	}

	if cfg.UpstreamURL == "" {
		return nil, ErrMissingUpstream
	}
	if cfg.SessionSecret == "" {
		return nil, ErrMissingSecret
	}

	return cfg, nil
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseBool(raw string, fallback bool) bool {
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return b
}
