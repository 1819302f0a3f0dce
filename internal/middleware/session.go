package middleware

import (
	"net/http"

	"travel-admin/internal/auth"
	"travel-admin/internal/logger"
	"travel-admin/internal/utils"

	"go.uber.org/zap"
)

// Authenticator resolves the session of a request.
type Authenticator interface {
	Authenticate(r *http.Request) (auth.Session, error)
	ClearCookie() *http.Cookie
}

type unauthorized struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

// LoginPath is where unauthenticated clients are sent.
const LoginPath = "/login"

// RequireSession rejects requests without a live session and attaches it to the context.
func RequireSession(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := a.Authenticate(r)
			if err != nil {
				logger.FromCtx(r.Context()).Info("unauthenticated request",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				if _, cerr := r.Cookie(auth.CookieName); cerr == nil {
					http.SetCookie(w, a.ClearCookie())
				}
				utils.WriteJSON(w, http.StatusUnauthorized, unauthorized{Error: err.Error(), Redirect: LoginPath})
				return
			}

			ctx := auth.WithSession(r.Context(), sess)
			ctx = logger.WithActor(ctx, sess.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
