package db

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"travel-admin/internal/config"

	_ "github.com/lib/pq"
)

var ErrNoDatabase = errors.New("DB_URL is not set")

// buildDSN turns DB_URL into a lib/pq DSN, disabling TLS outside production
// unless the URL says otherwise.
func buildDSN(cfg *config.Config) (string, error) {
	if cfg.DBURL == "" {
		return "", ErrNoDatabase
	}
	u, err := url.Parse(cfg.DBURL)
	if err != nil {
		return "", fmt.Errorf("invalid DB_URL: %w", err)
	}
	q := u.Query()
	if q.Get("sslmode") == "" && cfg.AppEnv != "production" {
		q.Set("sslmode", "disable")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func NewDatabase(cfg *config.Config) (*sql.DB, error) {
	return newDatabaseWithDriver(cfg, "postgres")
}

func newDatabaseWithDriver(cfg *config.Config, driverName string) (*sql.DB, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	return db, nil
}
