package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"erp-dashboard/internal/app"
	"erp-dashboard/internal/core"

	"github.com/go-chi/chi/v5"
)

// collection resolves the {name} URL parameter, writing a 404 when unknown.
func (h *Handler) collection(w http.ResponseWriter, r *http.Request) (app.CollectionService, bool) {
	c, err := h.svc.Collection(chi.URLParam(r, "name"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return nil, false
	}
	return c, true
}

// recordID parses the {id} URL parameter, writing a 400 when malformed.
func recordID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, r, "id must be a positive integer", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// filterFromQuery reads ?search=&category=&status=&fuzzy=.
func filterFromQuery(r *http.Request) core.Filter {
	q := r.URL.Query()
	fuzzy, _ := strconv.ParseBool(q.Get("fuzzy"))
	return core.Filter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Fuzzy:    fuzzy,
	}
}

// listCollections handles GET /api/collections.
func (h *Handler) listCollections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.Collections())
}

// listRecords handles GET /api/collections/{name}.
func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	res, err := c.List(r.Context(), filterFromQuery(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// getRecord handles GET /api/collections/{name}/{id}.
func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	rec, err := c.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rec)
}

// createRecord handles POST /api/collections/{name}.
func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}
	res, err := c.Create(r.Context(), fields)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/collections/%s/%d", c.Info().Name, res.ID))
	writeJSONStatus(w, http.StatusCreated, res)
}

// updateRecord handles PUT /api/collections/{name}/{id}. The body replaces
// the whole record.
func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}
	res, err := c.Update(r.Context(), id, fields)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// deleteRecord handles DELETE /api/collections/{name}/{id}.
func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	res, err := c.Delete(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// validateRecord handles POST /api/collections/{name}/validate[?id=N].
// It always answers 200; the field map is empty when the submission would
// be accepted.
func (h *Handler) validateRecord(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	editingID := 0
	if v := r.URL.Query().Get("id"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, r, "id must be a positive integer", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		editingID = n
	}
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}
	errs, err := c.Validate(r.Context(), fields, editingID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	type response struct {
		Valid  bool             `json:"valid"`
		Errors core.FieldErrors `json:"errors"`
	}
	writeJSON(w, response{Valid: len(errs) == 0, Errors: errs})
}

// recordSchema handles GET /api/collections/{name}/schema.
func (h *Handler) recordSchema(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	_ = json.NewEncoder(w).Encode(c.Schema())
}

// exportRecords handles GET /api/collections/{name}/export, honouring the
// same filter query as the list.
func (h *Handler) exportRecords(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	name := c.Info().Name
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, name))
	if err := h.svc.Export(r.Context(), app.ExportRequest{Collection: name, Filter: filterFromQuery(r)}, w); err != nil {
		w.Header().Del("Content-Disposition")
		h.writeServiceError(w, r, err)
	}
}

// resetCollection handles POST /api/collections/{name}/reset (admin only).
func (h *Handler) resetCollection(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	res, err := c.Reset(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}
