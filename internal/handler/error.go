package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"travel-admin/internal/audit"
	"travel-admin/internal/auth"
	"travel-admin/internal/catalog"
	"travel-admin/internal/draft"
	"travel-admin/internal/logger"
	"travel-admin/internal/middleware"
	"travel-admin/internal/resource"
	"travel-admin/internal/trip"
	"travel-admin/internal/upstream"
	"travel-admin/internal/utils"
	"travel-admin/internal/validation"

	"go.uber.org/zap"
)

var errBadRequest = errors.New("malformed request body")

type unauthorized struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

// statusOf maps service errors to HTTP status codes.
func statusOf(err error) int {
	var (
		verrs     *validation.Errors
		gqlErr    *upstream.Error
		statusErr *upstream.StatusError
		urlErr    *url.Error
	)
	switch {
	case errors.As(err, &verrs):
		return http.StatusUnprocessableEntity
	case errors.Is(err, upstream.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, trip.ErrNotFound),
		errors.Is(err, resource.ErrNotFound),
		errors.Is(err, resource.ErrUnknownKind),
		errors.Is(err, catalog.ErrUnknownCategory):
		return http.StatusNotFound
	case errors.Is(err, resource.ErrReadOnly):
		return http.StatusMethodNotAllowed
	case errors.Is(err, errBadRequest),
		errors.Is(err, trip.ErrMissingID),
		errors.Is(err, trip.ErrKindMismatch),
		errors.Is(err, trip.ErrInvalidLengthType),
		errors.Is(err, resource.ErrMissingID),
		errors.Is(err, draft.ErrSingleSelect),
		errors.Is(err, draft.ErrStepOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, audit.ErrDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &gqlErr),
		errors.As(err, &statusErr),
		errors.As(err, &urlErr),
		errors.Is(err, trip.ErrEmptyResult):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusOf(err)
	log := logger.FromCtx(r.Context())
	if code >= http.StatusInternalServerError {
		log.Error("request failed", zap.String("path", r.URL.Path), zap.Int("status", code), zap.Error(err))
	} else {
		log.Info("request rejected", zap.String("path", r.URL.Path), zap.Int("status", code), zap.Error(err))
	}

	var verrs *validation.Errors
	switch {
	case errors.As(err, &verrs):
		utils.WriteJSON(w, code, verrs)
	case errors.Is(err, upstream.ErrUnauthenticated):
		// The upstream no longer accepts the token; drop the local session too.
		if h.Sessions != nil {
			http.SetCookie(w, h.Sessions.ClearCookie())
		}
		utils.WriteJSON(w, code, unauthorized{Error: "session expired", Redirect: middleware.LoginPath})
	case code == http.StatusInternalServerError:
		utils.WriteJSONError(w, "internal server error", code)
	default:
		utils.WriteJSONError(w, err.Error(), code)
	}
}
