package main

import (
	"database/sql"
	"database/sql/driver"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel-admin/internal/auth"
	"travel-admin/internal/config"
	"travel-admin/internal/handler"
	"travel-admin/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AppPort:         "8080",
		AppEnv:          "test",
		UpstreamURL:     "http://upstream.invalid/graphql/",
		UpstreamTimeout: 0,
		SessionSecret:   "dummy_secret",
		AllowedOrigin:   "http://localhost:5173",
	}
}

func TestNewServer(t *testing.T) {
	// A mock driver so we don't need a real Postgres connection.
	db, err := sql.Open("mock_driver_main", "")
	require.NoError(t, err)

	router, cleanup, err := newServer(testConfig(), db)
	require.NoError(t, err)
	defer cleanup()

	t.Run("Health Check", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/health", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "OK")
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	})

	t.Run("Private route requires session", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/trips", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "/login")
	})

	t.Run("CORS preflight", func(t *testing.T) {
		req, _ := http.NewRequest("OPTIONS", "/api/trips", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

type headerAuthenticator struct{}

func (headerAuthenticator) Authenticate(r *http.Request) (auth.Session, error) {
	return auth.Session{Username: r.Header.Get("X-Test-User")}, nil
}

func (headerAuthenticator) ClearCookie() *http.Cookie {
	return &http.Cookie{Name: auth.CookieName, MaxAge: -1}
}

func TestSetupRouter_GeneralQuotaPerUser(t *testing.T) {
	limiter := middleware.NewLimiter(time.Minute)
	defer limiter.Close()
	router := setupRouter(&handler.Handler{}, headerAuthenticator{}, limiter, "http://localhost:5173")

	get := func(user string) int {
		req := httptest.NewRequest("GET", "/api/session", nil)
		req.Header.Set("X-Test-User", user)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr.Code
	}

	for i := 0; i < middleware.General.Burst; i++ {
		require.Equal(t, http.StatusOK, get("alice"))
	}
	assert.Equal(t, http.StatusTooManyRequests, get("alice"))
	// Same address, different user: a separate bucket.
	assert.Equal(t, http.StatusOK, get("bob"))
}

func TestNewServer_WithoutDatabase(t *testing.T) {
	router, cleanup, err := newServer(testConfig(), nil)
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, router)
}

func TestNewServer_UnknownRequiredCategory(t *testing.T) {
	cfg := testConfig()
	cfg.RequiredCategories = []string{"hotels"}

	_, _, err := newServer(cfg, nil)
	assert.Error(t, err)
}

// --- Mock Driver for Testing ---
type mockDriver struct{}

func (m *mockDriver) Open(name string) (driver.Conn, error)         { return &mockConn{}, nil }
func (c *mockConn) Prepare(query string) (driver.Stmt, error)       { return &mockStmt{}, nil }
func (c *mockConn) Close() error                                    { return nil }
func (c *mockConn) Begin() (driver.Tx, error)                       { return nil, nil }
func (s *mockStmt) Close() error                                    { return nil }
func (s *mockStmt) NumInput() int                                   { return 0 }
func (s *mockStmt) Exec(args []driver.Value) (driver.Result, error) { return nil, nil }
func (s *mockStmt) Query(args []driver.Value) (driver.Rows, error)  { return nil, nil }

type mockConn struct{}
type mockStmt struct{}

func init() {
	sql.Register("mock_driver_main", &mockDriver{})
}

func TestRun(t *testing.T) {
	origInitDB := initDBFunc
	defer func() { initDBFunc = origInitDB }()
	initDBFunc = func(cfg *config.Config) (*sql.DB, error) {
		return sql.Open("mock_driver_main", "")
	}

	var gotAddr string
	origStartServer := startServerFunc
	defer func() { startServerFunc = origStartServer }()
	startServerFunc = func(addr string, handler http.Handler) error {
		gotAddr = addr
		return nil
	}

	t.Setenv("APP_PORT", "9191")
	t.Setenv("APP_ENV", "test")
	t.Setenv("UPSTREAM_GRAPHQL_URL", "http://upstream.invalid/graphql/")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("REQUIRED_CATEGORIES", "")

	assert.NoError(t, run())
	assert.Equal(t, ":9191", gotAddr)
}

func TestRun_MissingUpstream(t *testing.T) {
	t.Setenv("UPSTREAM_GRAPHQL_URL", "")
	t.Setenv("SESSION_SECRET", "secret")

	assert.ErrorIs(t, run(), config.ErrMissingUpstream)
}
