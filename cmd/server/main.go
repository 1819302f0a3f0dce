package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"travel-admin/internal/audit"
	"travel-admin/internal/auth"
	"travel-admin/internal/catalog"
	"travel-admin/internal/config"
	"travel-admin/internal/db"
	"travel-admin/internal/handler"
	"travel-admin/internal/hydrate"
	"travel-admin/internal/logger"
	"travel-admin/internal/media"
	"travel-admin/internal/middleware"
	"travel-admin/internal/resource"
	"travel-admin/internal/trip"
	"travel-admin/internal/upstream"
	"travel-admin/internal/validation"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = initDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := initDBFunc(cfg)
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
	}

	router, cleanup, err := newServer(cfg, database)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.L().Info("admin API listening",
		zap.String("port", cfg.AppPort),
		zap.String("upstream", cfg.UpstreamURL),
		zap.Bool("audit", database != nil),
	)
	return startServerFunc(":"+cfg.AppPort, router)
}

// initDB opens the audit database. No DB_URL means the journal runs disabled.
func initDB(cfg *config.Config) (*sql.DB, error) {
	if cfg.DBURL == "" {
		logger.L().Warn("DB_URL not set, submission audit disabled")
		return nil, nil
	}
	return db.NewDatabase(cfg)
}

// newServer wires every service. database may be nil.
func newServer(cfg *config.Config, database *sql.DB) (http.Handler, func(), error) {
	policy, err := validation.NewPolicy(cfg.RequiredCategories)
	if err != nil {
		return nil, nil, err
	}

	client := upstream.NewClient(cfg.UpstreamURL, cfg.UpstreamTimeout, auth.TokenFromCtx)
	provider := catalog.NewProvider(client)

	var reencoder hydrate.Reencoder
	if cfg.ReencodeImages {
		reencoder = media.NewFetcher(cfg.UpstreamTimeout)
	}
	hydrator := hydrate.New(cfg.MediaBaseURL, reencoder)

	var recorder *audit.Recorder
	if database != nil {
		recorder = audit.NewRecorder(audit.NewRepository(database))
	} else {
		recorder = audit.NewRecorder(nil)
	}

	revocations := auth.NewRevocations()
	sessions := auth.NewService(client, auth.NewSealer(cfg.SessionSecret), revocations, cfg.CookieSecure)

	h := &handler.Handler{
		Sessions:     sessions,
		Options:      provider,
		Trips:        trip.NewService(client, provider, hydrator, recorder, policy),
		Resources:    resource.NewService(client, recorder),
		Journal:      recorder,
		Stats:        client.Stats(),
		SecureCookie: cfg.CookieSecure,
	}

	limiter := middleware.NewLimiter(0)
	cleanup := func() {
		limiter.Close()
		revocations.Close()
	}
	return setupRouter(h, sessions, limiter, cfg.AllowedOrigin), cleanup, nil
}

// setupRouter mounts the API behind the shared middleware stack. The general
// tier runs after the session is attached so quotas are per user.
func setupRouter(h *handler.Handler, authn middleware.Authenticator, limiter *middleware.Limiter, origin string) http.Handler {
	requireSession := middleware.RequireSession(authn)
	general := limiter.Middleware(middleware.General)

	mux := h.Routes(
		func(next http.Handler) http.Handler { return requireSession(general(next)) },
		limiter.Middleware(middleware.Strict),
	)
	return middleware.Chain(mux,
		logger.RequestIDMiddleware,
		logger.LoggingMiddleware,
		middleware.CORS(origin),
		middleware.Locale,
	)
}

// startServer serves until SIGINT or SIGTERM, then drains in-flight requests.
func startServer(addr string, h http.Handler) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		// Submissions carry inline images.
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
