package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel-admin/internal/upstream"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// --- Mocks ---

type MockDoer struct {
	mock.Mock
}

func (m *MockDoer) Do(ctx context.Context, op *upstream.Operation, vars map[string]any, out any) error {
	args := m.Called(ctx, op.Name, vars)
	if raw, ok := args.Get(0).(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), out); err != nil {
			return err
		}
	}
	return args.Error(1)
}

func makeToken(t *testing.T, username string, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"exp":      exp.Unix(),
	}).SignedString([]byte("upstream-secret"))
	require.NoError(t, err)
	return tok
}

// --- Tests ---

func TestParseSession(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	t.Run("Success", func(t *testing.T) {
		tok := makeToken(t, "admin", exp)
		sess, err := ParseSession(tok)
		require.NoError(t, err)
		assert.Equal(t, "admin", sess.Username)
		assert.True(t, exp.Equal(sess.ExpiresAt))
		assert.False(t, sess.Expired(time.Now()))
		assert.True(t, sess.Expired(exp))
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ParseSession("not-a-jwt")
		assert.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("Missing exp", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"username": "a"}).SignedString([]byte("k"))
		require.NoError(t, err)
		_, err = ParseSession(tok)
		assert.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("Context", func(t *testing.T) {
		ctx := WithSession(context.Background(), Session{Token: "tok"})
		assert.Equal(t, "tok", TokenFromCtx(ctx))
		assert.Equal(t, "", TokenFromCtx(context.Background()))
	})
}

func TestSealer(t *testing.T) {
	s := NewSealer("secret")

	sealed, err := s.Seal("jwt-value")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "jwt-value")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "jwt-value", plain)

	_, err = NewSealer("other").Open(sealed)
	assert.ErrorIs(t, err, ErrInvalidCookie)

	_, err = s.Open("short")
	assert.ErrorIs(t, err, ErrInvalidCookie)
}

func TestRevocations(t *testing.T) {
	t.Run("Revoked until expiry", func(t *testing.T) {
		r := NewRevocations()
		defer r.Close()

		r.Revoke("tok", time.Now().Add(50*time.Millisecond))
		assert.True(t, r.IsRevoked("tok"))
		assert.False(t, r.IsRevoked("other"))

		assert.Eventually(t, func() bool { return !r.IsRevoked("tok") }, time.Second, 10*time.Millisecond)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("Already expired is ignored", func(t *testing.T) {
		r := NewRevocations()
		r.Revoke("tok", time.Now().Add(-time.Minute))
		assert.Equal(t, 0, r.Len())
	})

	t.Run("Close stops timers", func(t *testing.T) {
		r := NewRevocations()
		r.Revoke("a", time.Now().Add(time.Hour))
		r.Revoke("b", time.Now().Add(time.Hour))
		assert.Equal(t, 2, r.Len())
		r.Close()
		assert.Equal(t, 0, r.Len())
		r.Revoke("c", time.Now().Add(time.Hour))
		assert.Equal(t, 0, r.Len())
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	vars := map[string]any{"input": map[string]any{"username": "admin", "password": "pw"}}

	t.Run("Success", func(t *testing.T) {
		tok := makeToken(t, "admin", time.Now().Add(time.Hour))
		doer := new(MockDoer)
		doer.On("Do", ctx, "TokenAuth", vars).Return(`{"tokenAuth":{"token":"`+tok+`"}}`, nil)

		svc := NewService(doer, NewSealer("secret"), NewRevocations(), true)
		sess, cookie, err := svc.Login(ctx, "admin", "pw")
		require.NoError(t, err)
		assert.Equal(t, "admin", sess.Username)
		assert.Equal(t, CookieName, cookie.Name)
		assert.True(t, cookie.HttpOnly)
		assert.True(t, cookie.Secure)
		assert.NotEqual(t, tok, cookie.Value)
		doer.AssertExpectations(t)
	})

	t.Run("Rejected credentials", func(t *testing.T) {
		doer := new(MockDoer)
		doer.On("Do", ctx, "TokenAuth", vars).Return("", &upstream.Error{
			Operation: "TokenAuth",
			Errors:    gqlerror.List{{Message: "Please enter valid credentials"}},
		})

		svc := NewService(doer, NewSealer("secret"), NewRevocations(), true)
		_, _, err := svc.Login(ctx, "admin", "pw")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Transport failure", func(t *testing.T) {
		doer := new(MockDoer)
		doer.On("Do", ctx, "TokenAuth", vars).Return("", errors.New("connection refused"))

		svc := NewService(doer, NewSealer("secret"), NewRevocations(), true)
		_, _, err := svc.Login(ctx, "admin", "pw")
		assert.EqualError(t, err, "connection refused")
	})

	t.Run("Missing credentials", func(t *testing.T) {
		doer := new(MockDoer)
		svc := NewService(doer, NewSealer("secret"), NewRevocations(), true)
		_, _, err := svc.Login(ctx, " ", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		doer.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_Authenticate(t *testing.T) {
	sealer := NewSealer("secret")
	rev := NewRevocations()
	defer rev.Close()
	svc := NewService(new(MockDoer), sealer, rev, false)

	valid := makeToken(t, "admin", time.Now().Add(time.Hour))
	sealed, err := sealer.Seal(valid)
	require.NoError(t, err)

	t.Run("Cookie session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: sealed})
		sess, err := svc.Authenticate(req)
		require.NoError(t, err)
		assert.Equal(t, valid, sess.Token)
	})

	t.Run("Header session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "JWT "+valid)
		_, err := svc.Authenticate(req)
		assert.NoError(t, err)
	})

	t.Run("No session", func(t *testing.T) {
		_, err := svc.Authenticate(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("Tampered cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: valid})
		_, err := svc.Authenticate(req)
		assert.ErrorIs(t, err, ErrInvalidCookie)
	})

	t.Run("Expired", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "JWT "+makeToken(t, "admin", time.Now().Add(-time.Minute)))
		_, err := svc.Authenticate(req)
		assert.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("Revoked after logout", func(t *testing.T) {
		tok := makeToken(t, "other", time.Now().Add(time.Hour))
		sess, err := ParseSession(tok)
		require.NoError(t, err)

		cookie := svc.Logout(context.Background(), sess)
		assert.Equal(t, -1, cookie.MaxAge)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "JWT "+tok)
		_, err = svc.Authenticate(req)
		assert.ErrorIs(t, err, ErrSessionRevoked)
	})
}
