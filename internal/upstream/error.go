package upstream

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

var (
	ErrUnauthenticated    = errors.New("upstream: unauthenticated")
	ErrMissingVariable    = errors.New("upstream: missing required variable")
	ErrUndeclaredVariable = errors.New("upstream: undeclared variable")
	ErrNoOperation        = errors.New("upstream: document has no operation")
)

// Error carries the GraphQL errors returned for one operation.
type Error struct {
	Operation string
	Errors    gqlerror.List
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream %s: %s", e.Operation, e.Errors.Error())
}

// Is reports ErrUnauthenticated when any entry signals an expired or missing token.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthenticated && unauthenticated(e.Errors)
}

// StatusError is a non-GraphQL HTTP failure from the upstream.
type StatusError struct {
	Operation string
	Code      int
	Body      string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s: http status %d", e.Operation, e.Code)
}

// Is reports ErrUnauthenticated for 401 and 403 so callers force a new login.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthenticated && rejected(e.Code)
}

func rejected(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

func unauthenticated(list gqlerror.List) bool {
	for _, e := range list {
		if e == nil {
			continue
		}
		if code, _ := e.Extensions["code"].(string); code == "UNAUTHENTICATED" {
			return true
		}
		if strings.Contains(strings.ToLower(e.Message), "signature has expired") {
			return true
		}
	}
	return false
}
