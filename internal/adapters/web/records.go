package web

import (
	"net/http"
	"strconv"

	"backoffice/internal/app"

	"github.com/go-chi/chi/v5"
)

// apiListRecords handles GET /api/{entity}.
func (h *Handler) apiListRecords(w http.ResponseWriter, r *http.Request) {
	entity := entityParam(r)
	q := r.URL.Query()

	res, err := h.svc.ListRecords(r.Context(), app.ListRecordsRequest{
		Entity: entity,
		Page:   q.Get("page"),
		Limit:  q.Get("limit"),
		Search: q.Get("search"),
		Month:  q.Get("month"),
	})
	if err != nil {
		h.writeServiceError(w, r, "list", entity, err)
		return
	}
	writeJSON(w, toListResponse(res.Summary))
}

// apiGetRecord handles GET /api/{entity}/{id}.
func (h *Handler) apiGetRecord(w http.ResponseWriter, r *http.Request) {
	entity := entityParam(r)
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, "id must be a positive integer", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	res, err := h.svc.GetRecord(r.Context(), entity, id)
	if err != nil {
		h.writeServiceError(w, r, "get", entity, err)
		return
	}
	writeJSON(w, recordResponse{Data: toRecordDTO(*res.Record)})
}

// apiListCategories handles GET /api/categorias/{entity}.
func (h *Handler) apiListCategories(w http.ResponseWriter, r *http.Request) {
	entity := entityParam(r)

	res, err := h.svc.ListCategories(r.Context(), entity)
	if err != nil {
		h.writeServiceError(w, r, "categories", entity, err)
		return
	}
	out := make([]categoryDTO, len(res.Categories))
	for i, c := range res.Categories {
		out[i] = toCategoryDTO(c)
	}
	writeJSON(w, categoryListResponse{Data: out})
}
