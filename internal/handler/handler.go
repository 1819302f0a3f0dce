package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"travel-admin/internal/audit"
	"travel-admin/internal/auth"
	"travel-admin/internal/catalog"
	"travel-admin/internal/metrics"
	"travel-admin/internal/resource"
	"travel-admin/internal/trip"
	"travel-admin/internal/utils"
)

// Request bodies carry inline images, several of up to 2.5 MB each.
const maxBodyBytes = 32 << 20

// Sessions is the login surface of auth.Service.
type Sessions interface {
	Login(ctx context.Context, username, password string) (auth.Session, *http.Cookie, error)
	Logout(ctx context.Context, sess auth.Session) *http.Cookie
	ClearCookie() *http.Cookie
}

type OptionSource interface {
	Options(ctx context.Context, cat catalog.Category) ([]catalog.Option, error)
}

// Stats reports upstream call counters on /health.
type Stats interface {
	Snapshot() metrics.Snapshot
}

type Journal interface {
	List(ctx context.Context, f audit.Filter) ([]audit.Entry, int64, error)
}

// Handler serves the admin JSON API.
type Handler struct {
	Sessions     Sessions
	Options      OptionSource
	Trips        trip.Service
	Resources    resource.Service
	Journal      Journal
	Stats        Stats
	SecureCookie bool
}

// Routes registers every endpoint. requireSession wraps all but login and
// health; loginLimit guards login.
func (h *Handler) Routes(requireSession, loginLimit func(http.Handler) http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	private := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, requireSession(fn))
	}

	mux.HandleFunc("GET /health", h.health)
	mux.Handle("POST /api/login", loginLimit(http.HandlerFunc(h.login)))

	private("POST /api/logout", h.logout)
	private("GET /api/session", h.session)
	private("PUT /api/locale", h.setLocale)

	private("GET /api/options/{category}", h.options)
	private("POST /api/drafts/validate", h.validateDraft)

	private("GET /api/trips", h.listTrips)
	private("GET /api/trips/{id}", h.getTrip)
	private("DELETE /api/trips/{id}", h.deleteTrip)
	private("GET /api/trips/{id}/draft", h.tripDraft)
	private("POST /api/trips/one-day", h.createOneDay)
	private("PUT /api/trips/one-day/{id}", h.editOneDay)
	private("POST /api/trips/multi-day", h.createMultiDay)
	private("PUT /api/trips/multi-day/{id}", h.editMultiDay)

	private("GET /api/resources/{kind}", h.listResources)
	private("POST /api/resources/{kind}", h.createResource)
	private("PUT /api/resources/{kind}/{id}", h.editResource)
	private("DELETE /api/resources/{kind}/{id}", h.deleteResource)

	private("GET /api/audit", h.listAudit)

	mux.HandleFunc("/", h.notFound)
	return mux
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{"status": "OK"}
	if h.Stats != nil {
		body["upstream"] = h.Stats.Snapshot()
	}
	utils.WriteJSON(w, http.StatusOK, body)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONError(w, "route not found", http.StatusNotFound)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
