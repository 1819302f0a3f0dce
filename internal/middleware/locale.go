package middleware

import (
	"net/http"

	"travel-admin/internal/locale"
)

// Locale resolves the request language once and exposes its direction to clients.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := locale.Resolve(r)
		w.Header().Set("Content-Language", string(l))
		w.Header().Set("X-Text-Direction", string(l.Direction()))
		next.ServeHTTP(w, r.WithContext(locale.WithLocale(r.Context(), l)))
	})
}
