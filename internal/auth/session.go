package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the explicit per-request authentication state.
type Session struct {
	Token     string    `json:"-"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// ParseSession reads username and exp from the token payload.
// The signature is not checked here; the upstream verifies every call.
func ParseSession(token string) (Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return Session{}, fmt.Errorf("%w: missing exp", ErrMalformedToken)
	}

	username, _ := claims["username"].(string)
	if username == "" {
		username, _ = claims.GetSubject()
	}

	return Session{Token: token, Username: username, ExpiresAt: exp.Time}, nil
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromCtx(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

// TokenFromCtx is the upstream client's token source.
func TokenFromCtx(ctx context.Context) string {
	s, _ := FromCtx(ctx)
	return s.Token
}
