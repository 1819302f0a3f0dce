package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel-admin/internal/auth"
	"travel-admin/internal/locale"
	"travel-admin/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(r *http.Request) (auth.Session, error) {
	args := m.Called(r.URL.Path)
	return args.Get(0).(auth.Session), args.Error(1)
}

func (m *MockAuthenticator) ClearCookie() *http.Cookie {
	return &http.Cookie{Name: auth.CookieName, MaxAge: -1}
}

// --- Tests ---

func TestCors(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := CORS("http://localhost:3000")(nextHandler)

	t.Run("Preflight", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/test", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "PUT")
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Normal request", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Foreign origin", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireSession(t *testing.T) {
	t.Run("Missing Session", func(t *testing.T) {
		a := new(MockAuthenticator)
		a.On("Authenticate", "/api/trips").Return(auth.Session{}, auth.ErrNoSession)

		req := httptest.NewRequest("GET", "/api/trips", nil)
		w := httptest.NewRecorder()

		// We use a dummy next handler, but it shouldn't be reached if auth fails
		RequireSession(a)(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var body map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, LoginPath, body["redirect"])
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("Expired Cookie Is Cleared", func(t *testing.T) {
		a := new(MockAuthenticator)
		a.On("Authenticate", "/api/trips").Return(auth.Session{}, auth.ErrSessionExpired)

		req := httptest.NewRequest("GET", "/api/trips", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "sealed"})
		w := httptest.NewRecorder()

		RequireSession(a)(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, auth.CookieName, cookies[0].Name)
		assert.True(t, cookies[0].MaxAge < 0)
	})

	t.Run("Valid Session", func(t *testing.T) {
		sess := auth.Session{Token: "tok", Username: "admin", ExpiresAt: time.Now().Add(time.Hour)}
		a := new(MockAuthenticator)
		a.On("Authenticate", "/api/trips").Return(sess, nil)

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := auth.FromCtx(r.Context())
			assert.True(t, ok)
			assert.Equal(t, "admin", got.Username)
			assert.Equal(t, "admin", logger.ActorFrom(r.Context()))
			w.WriteHeader(http.StatusOK)
		})

		w := httptest.NewRecorder()
		RequireSession(a)(next).ServeHTTP(w, httptest.NewRequest("GET", "/api/trips", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		a.AssertExpectations(t)
	})
}

func TestLocale(t *testing.T) {
	var got locale.Locale
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = locale.FromCtx(r.Context())
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: locale.CookieName, Value: "ar"})
	w := httptest.NewRecorder()
	Locale(next).ServeHTTP(w, req)

	assert.Equal(t, locale.Arabic, got)
	assert.Equal(t, "rtl", w.Header().Get("X-Text-Direction"))
}

func TestLimiter(t *testing.T) {
	t.Run("Strict tier blocks after burst", func(t *testing.T) {
		l := NewLimiter(time.Minute)
		defer l.Close()

		handler := l.Middleware(Strict)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		var codes []int
		for i := 0; i < Strict.Burst+1; i++ {
			req := httptest.NewRequest("POST", "/api/login", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}
		assert.Equal(t, http.StatusOK, codes[0])
		assert.Equal(t, http.StatusTooManyRequests, codes[len(codes)-1])
	})

	t.Run("Separate identities", func(t *testing.T) {
		l := NewLimiter(time.Minute)
		defer l.Close()

		handler := l.Middleware(Tier{Name: "one", Limit: 1, Burst: 1})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		for _, dev := range []string{"a", "b"} {
			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("X-Device-ID", dev)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
		assert.Equal(t, 2, l.size())
	})

	t.Run("Idle visitors are evicted", func(t *testing.T) {
		l := NewLimiter(time.Minute)
		defer l.Close()

		l.getVisitor("ip:1", General)
		l.evict(time.Now().Add(2 * time.Minute))
		assert.Equal(t, 0, l.size())
	})
}

func TestChain(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}), mw("a"), mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, []string{"a", "b"}, order)
}
