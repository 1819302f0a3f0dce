package auth

import (
	"net/http"
	"strings"
)

// CookieName is the session cookie the dashboard has always used.
const CookieName = "authToken"

// ExtractAccessToken returns the raw credential and whether it came from the session cookie.
// A cookie value is sealed and must be opened before use.
func ExtractAccessToken(r *http.Request) (string, bool) {
	// 1️⃣ Cookie (preferred)
	if cookie, err := r.Cookie(CookieName); err == nil {
		if cookie.Value != "" {
			return cookie.Value, true
		}
	}

	// 2️⃣ Authorization header (fallback)
	authHeader := r.Header.Get("Authorization")
	for _, scheme := range []string{"JWT ", "Bearer "} {
		if strings.HasPrefix(authHeader, scheme) {
			return strings.TrimPrefix(authHeader, scheme), false
		}
	}

	return "", false
}
