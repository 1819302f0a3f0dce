package handler

import (
	"context"
	"fmt"
	"net/http"

	"travel-admin/internal/draft"
	"travel-admin/internal/trip"
	"travel-admin/internal/utils"
)

type submitFunc func(ctx context.Context, t *draft.Trip) (trip.Summary, error)

func (h *Handler) listTrips(w http.ResponseWriter, r *http.Request) {
	kind := draft.Kind(r.URL.Query().Get("kind"))
	list, err := h.Trips.List(r.Context(), kind)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) getTrip(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Trips.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) tripDraft(w http.ResponseWriter, r *http.Request) {
	res, err := h.Trips.Hydrate(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, DraftResponse{
		Trip:     fromDraft(res.Trip),
		Options:  res.Options,
		Previews: res.Previews,
	})
}

func (h *Handler) deleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := h.Trips.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"tripId": id})
}

func (h *Handler) createOneDay(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, draft.OneDay, http.StatusCreated, h.Trips.CreateOneDay)
}

func (h *Handler) editOneDay(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, draft.OneDay, http.StatusOK, h.Trips.EditOneDay)
}

func (h *Handler) createMultiDay(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, draft.MultiDay, http.StatusCreated, h.Trips.CreateMultiDay)
}

func (h *Handler) editMultiDay(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, draft.MultiDay, http.StatusOK, h.Trips.EditMultiDay)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, kind draft.Kind, code int, fn submitFunc) {
	var req TripRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	// The path decides identity; a body id never turns a create into an edit.
	req.ID = r.PathValue("id")

	t, err := req.toDraft(kind)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := fn(r.Context(), t)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.WriteJSON(w, code, res)
}

// validateDraft is a dry run of the submission checks.
func (h *Handler) validateDraft(w http.ResponseWriter, r *http.Request) {
	var req TripRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if !req.Kind.Valid() {
		h.fail(w, r, fmt.Errorf("%w: unknown trip kind %q", errBadRequest, req.Kind))
		return
	}

	t, err := req.toDraft(req.Kind)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Trips.Check(r.Context(), t); err != nil {
		h.fail(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"valid": true})
}
