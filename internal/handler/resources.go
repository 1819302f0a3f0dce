package handler

import (
	"net/http"
	"strconv"

	"travel-admin/internal/audit"
	"travel-admin/internal/catalog"
	"travel-admin/internal/resource"
	"travel-admin/internal/utils"
)

func (h *Handler) listResources(w http.ResponseWriter, r *http.Request) {
	list, err := h.Resources.List(r.Context(), resource.Kind(r.PathValue("kind")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) createResource(w http.ResponseWriter, r *http.Request) {
	var values map[string]any
	if err := decodeJSON(w, r, &values); err != nil {
		h.fail(w, r, err)
		return
	}
	rec, err := h.Resources.Create(r.Context(), resource.Kind(r.PathValue("kind")), values)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, rec)
}

func (h *Handler) editResource(w http.ResponseWriter, r *http.Request) {
	var values map[string]any
	if err := decodeJSON(w, r, &values); err != nil {
		h.fail(w, r, err)
		return
	}
	rec, err := h.Resources.Edit(r.Context(), resource.Kind(r.PathValue("kind")), r.PathValue("id"), values)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) deleteResource(w http.ResponseWriter, r *http.Request) {
	id, err := h.Resources.Delete(r.Context(), resource.Kind(r.PathValue("kind")), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *Handler) options(w http.ResponseWriter, r *http.Request) {
	cat := catalog.Category(r.PathValue("category"))
	opts, err := h.Options.Options(r.Context(), cat)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, OptionsResponse{
		Category: cat,
		Single:   catalog.IsSingle(cat),
		Options:  opts,
	})
}

func (h *Handler) listAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := audit.Filter{
		Entities: q["entity"],
		Limit:    queryInt32(q.Get("limit")),
		Page:     queryInt32(q.Get("page")),
	}
	entries, total, err := h.Journal.List(r.Context(), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, AuditResponse{Entries: entries, Total: total})
}

// queryInt32 parses a paging parameter; bad input falls back to the repository default.
func queryInt32(raw string) int32 {
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n < 0 {
		return 0
	}
	return int32(n)
}
