package handler

import (
	"fmt"
	"net/http"

	"travel-admin/internal/auth"
	"travel-admin/internal/locale"
	"travel-admin/internal/utils"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	sess, cookie, err := h.Sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	http.SetCookie(w, cookie)
	utils.WriteJSON(w, http.StatusOK, h.sessionResponse(r, sess))
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.FromCtx(r.Context())
	http.SetCookie(w, h.Sessions.Logout(r.Context(), sess))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.FromCtx(r.Context())
	utils.WriteJSON(w, http.StatusOK, h.sessionResponse(r, sess))
}

func (h *Handler) setLocale(w http.ResponseWriter, r *http.Request) {
	var req LocaleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	l, ok := locale.Parse(req.Locale)
	if !ok {
		h.fail(w, r, fmt.Errorf("%w: unsupported locale %q", errBadRequest, req.Locale))
		return
	}

	http.SetCookie(w, locale.Cookie(l, h.SecureCookie))
	w.Header().Set("Content-Language", string(l))
	w.Header().Set("X-Text-Direction", string(l.Direction()))
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"locale":    string(l),
		"direction": string(l.Direction()),
	})
}

func (h *Handler) sessionResponse(r *http.Request, sess auth.Session) SessionResponse {
	l := locale.FromCtx(r.Context())
	return SessionResponse{
		Username:  sess.Username,
		ExpiresAt: sess.ExpiresAt,
		Locale:    string(l),
		Direction: string(l.Direction()),
	}
}
