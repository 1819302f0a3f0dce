package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"travel-admin/internal/logger"
	"travel-admin/internal/upstream"

	"go.uber.org/zap"
)

var tokenAuthMutation = upstream.MustParse(`
mutation TokenAuth($input: ObtainJSONWebTokenInput!) {
  tokenAuth(input: $input) {
    token
  }
}`)

type Service struct {
	client      upstream.Doer
	sealer      *Sealer
	revocations *Revocations
	secure      bool
	now         func() time.Time
}

func NewService(client upstream.Doer, sealer *Sealer, revocations *Revocations, secureCookie bool) *Service {
	return &Service{
		client:      client,
		sealer:      sealer,
		revocations: revocations,
		secure:      secureCookie,
		now:         time.Now,
	}
}

// Login exchanges credentials for an upstream token and returns the sealed session cookie.
func (s *Service) Login(ctx context.Context, username, password string) (Session, *http.Cookie, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
		zap.String("username", username),
	)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		log.Warn("missing credentials")
		return Session{}, nil, ErrInvalidCredentials
	}

	var out struct {
		TokenAuth *struct {
			Token string `json:"token"`
		} `json:"tokenAuth"`
	}
	vars := map[string]any{"input": map[string]any{"username": username, "password": password}}
	if err := s.client.Do(ctx, tokenAuthMutation, vars, &out); err != nil {
		var gqlErr *upstream.Error
		if errors.As(err, &gqlErr) {
			log.Warn("login rejected", zap.Error(err))
			return Session{}, nil, ErrInvalidCredentials
		}
		log.Error("login failed", zap.Error(err))
		return Session{}, nil, err
	}
	if out.TokenAuth == nil || out.TokenAuth.Token == "" {
		log.Warn("login returned no token")
		return Session{}, nil, ErrInvalidCredentials
	}

	sess, err := ParseSession(out.TokenAuth.Token)
	if err != nil {
		log.Error("upstream issued unreadable token", zap.Error(err))
		return Session{}, nil, err
	}

	sealed, err := s.sealer.Seal(sess.Token)
	if err != nil {
		log.Error("failed to seal session", zap.Error(err))
		return Session{}, nil, err
	}

	log.Info("login success", zap.Time("expires_at", sess.ExpiresAt))
	return sess, s.cookie(sealed, sess.ExpiresAt), nil
}

// Authenticate resolves the request's session. Cookie values are opened first.
func (s *Service) Authenticate(r *http.Request) (Session, error) {
	raw, fromCookie := ExtractAccessToken(r)
	if raw == "" {
		return Session{}, ErrNoSession
	}

	token := raw
	if fromCookie {
		opened, err := s.sealer.Open(raw)
		if err != nil {
			return Session{}, err
		}
		token = opened
	}

	sess, err := ParseSession(token)
	if err != nil {
		return Session{}, err
	}
	if sess.Expired(s.now()) {
		return Session{}, ErrSessionExpired
	}
	if s.revocations.IsRevoked(token) {
		return Session{}, ErrSessionRevoked
	}
	return sess, nil
}

// Logout revokes the token until its exp and returns a clearing cookie.
func (s *Service) Logout(ctx context.Context, sess Session) *http.Cookie {
	if sess.Token != "" {
		s.revocations.Revoke(sess.Token, sess.ExpiresAt)
		logger.FromCtx(ctx).Info("logout", zap.String("username", sess.Username))
	}
	return s.ClearCookie()
}

func (s *Service) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func (s *Service) cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
