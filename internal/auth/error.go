package auth

import "errors"

var (
	ErrNoSession          = errors.New("no session")
	ErrMalformedToken     = errors.New("malformed session token")
	ErrSessionExpired     = errors.New("session expired")
	ErrSessionRevoked     = errors.New("session revoked")
	ErrInvalidCookie      = errors.New("session cookie cannot be opened")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
