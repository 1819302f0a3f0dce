package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		// t.Setenv restores the previous value after the test.
		t.Setenv("APP_ENV", "test")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("UPSTREAM_GRAPHQL_URL", "http://backend/graphql/")
		t.Setenv("UPSTREAM_TIMEOUT", "5s")
		t.Setenv("MEDIA_BASE_URL", "http://media")
		t.Setenv("SESSION_SECRET", "secret")
		t.Setenv("COOKIE_SECURE", "false")
		t.Setenv("DB_URL", "postgres://localhost/audit")
		t.Setenv("HYDRATE_REENCODE_IMAGES", "true")
		t.Setenv("REQUIRED_CATEGORIES", "provinces, activities")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "http://backend/graphql/", cfg.UpstreamURL)
		assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
		assert.Equal(t, "http://media", cfg.MediaBaseURL)
		assert.Equal(t, "secret", cfg.SessionSecret)
		assert.False(t, cfg.CookieSecure)
		assert.Equal(t, "postgres://localhost/audit", cfg.DBURL)
		assert.True(t, cfg.ReencodeImages)
		assert.Equal(t, []string{"provinces", "activities"}, cfg.RequiredCategories)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("APP_PORT", "")
		t.Setenv("UPSTREAM_GRAPHQL_URL", "http://backend/graphql/")
		t.Setenv("UPSTREAM_TIMEOUT", "not-a-duration")
		t.Setenv("SESSION_SECRET", "secret")
		t.Setenv("COOKIE_SECURE", "")
		t.Setenv("HYDRATE_REENCODE_IMAGES", "")
		t.Setenv("REQUIRED_CATEGORIES", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, defaultUpstreamTimeout, cfg.UpstreamTimeout)
		assert.True(t, cfg.CookieSecure)
		assert.False(t, cfg.ReencodeImages)
		assert.Empty(t, cfg.RequiredCategories)
	})

	t.Run("Missing upstream", func(t *testing.T) {
		t.Setenv("UPSTREAM_GRAPHQL_URL", "")
		t.Setenv("SESSION_SECRET", "secret")

		cfg, err := LoadConfig()
		assert.ErrorIs(t, err, ErrMissingUpstream)
		assert.Nil(t, cfg)
	})

	t.Run("Missing secret", func(t *testing.T) {
		t.Setenv("UPSTREAM_GRAPHQL_URL", "http://backend/graphql/")
		t.Setenv("SESSION_SECRET", "")

		_, err := LoadConfig()
		assert.ErrorIs(t, err, ErrMissingSecret)
	})
}
